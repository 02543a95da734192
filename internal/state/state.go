package state

import (
	"slices"
	"strings"
	"sync"

	"tvbrowse/internal/textutil"
	"tvbrowse/internal/tvmaze"
)

// View identifies which list is on screen.
type View string

const (
	ViewShows    View = "shows"
	ViewEpisodes View = "episodes"
)

// AllEpisodes is the selector value meaning "no specific episode".
const AllEpisodes = "all"

// ShowRef identifies the show whose episodes are loaded or loading.
type ShowRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Snapshot is a point-in-time copy of the state. Its slices are shared with
// the state and must not be modified; collections are only ever replaced.
type Snapshot struct {
	Shows               []tvmaze.Show
	Episodes            []tvmaze.Episode
	View                View
	ShowSearchTerm      string
	EpisodeSearchTerm   string
	SelectedEpisodeCode string
	CurrentShow         ShowRef
	EpisodesLoading     bool
	EpisodeLoadToken    uint64
	Version             uint64
}

// State is the session's application state. The zero value is not usable;
// call New.
type State struct {
	mu   sync.RWMutex
	snap Snapshot
}

// New returns a state showing the (empty) show list.
func New() *State {
	return &State{snap: Snapshot{
		Shows:               []tvmaze.Show{},
		Episodes:            []tvmaze.Episode{},
		View:                ViewShows,
		SelectedEpisodeCode: AllEpisodes,
	}}
}

// Snapshot returns the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Version returns the mutation counter.
func (s *State) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Version
}

func (s *State) update(fn func(*Snapshot)) {
	s.mu.Lock()
	fn(&s.snap)
	s.snap.Version++
	s.mu.Unlock()
}

// SetShows replaces the catalog, ordered by case-insensitive name.
func (s *State) SetShows(shows []tvmaze.Show) {
	sorted := make([]tvmaze.Show, len(shows))
	copy(sorted, shows)
	collator := textutil.NewCollator()
	slices.SortStableFunc(sorted, func(a, b tvmaze.Show) int {
		return collator.Compare(a.Name, b.Name)
	})
	s.update(func(snap *Snapshot) { snap.Shows = sorted })
}

// SetView switches the active view.
func (s *State) SetView(view View) {
	s.update(func(snap *Snapshot) { snap.View = view })
}

// SetShowSearchTerm records the show filter input.
func (s *State) SetShowSearchTerm(term string) {
	s.update(func(snap *Snapshot) { snap.ShowSearchTerm = term })
}

// SetEpisodeSearchTerm records the episode filter input and drops any
// specific episode selection.
func (s *State) SetEpisodeSearchTerm(term string) {
	s.update(func(snap *Snapshot) {
		snap.EpisodeSearchTerm = term
		snap.SelectedEpisodeCode = AllEpisodes
	})
}

// SelectEpisode records the selector value and clears the episode search.
// An empty code means AllEpisodes.
func (s *State) SelectEpisode(code string) {
	code = strings.TrimSpace(code)
	if code == "" {
		code = AllEpisodes
	}
	s.update(func(snap *Snapshot) {
		snap.SelectedEpisodeCode = code
		snap.EpisodeSearchTerm = ""
	})
}

// BeginEpisodeLoad starts loading episodes for show: filters are reset, the
// previous show's episodes are dropped, and the episodes view becomes
// active. The returned token must be passed to CommitEpisodes.
func (s *State) BeginEpisodeLoad(show ShowRef) uint64 {
	var token uint64
	s.update(func(snap *Snapshot) {
		snap.EpisodeLoadToken++
		token = snap.EpisodeLoadToken
		snap.CurrentShow = show
		snap.Episodes = []tvmaze.Episode{}
		snap.EpisodesLoading = true
		snap.EpisodeSearchTerm = ""
		snap.SelectedEpisodeCode = AllEpisodes
		snap.View = ViewEpisodes
	})
	return token
}

// CommitEpisodes stores episodes for the load identified by token. It
// reports false, changing nothing, when a newer load has started since.
func (s *State) CommitEpisodes(token uint64, episodes []tvmaze.Episode) bool {
	if episodes == nil {
		episodes = []tvmaze.Episode{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.snap.EpisodeLoadToken {
		return false
	}
	s.snap.Episodes = episodes
	s.snap.EpisodesLoading = false
	s.snap.Version++
	return true
}

// FailEpisodeLoad empties the episode list for a failed load. Like
// CommitEpisodes it ignores superseded tokens.
func (s *State) FailEpisodeLoad(token uint64) bool {
	return s.CommitEpisodes(token, nil)
}

// ReturnToShows switches to the show list and clears the show search.
func (s *State) ReturnToShows() {
	s.update(func(snap *Snapshot) {
		snap.View = ViewShows
		snap.ShowSearchTerm = ""
	})
}
