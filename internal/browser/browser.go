package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"tvbrowse/internal/cache"
	"tvbrowse/internal/filter"
	"tvbrowse/internal/logging"
	"tvbrowse/internal/state"
	"tvbrowse/internal/tvmaze"
)

// ErrStale reports an episode load that finished after a newer one began.
var ErrStale = errors.New("episode load superseded")

// Sweeper removes expired persistent cache entries.
type Sweeper interface {
	SweepExpired(ctx context.Context) (cache.SweepResult, error)
}

// Browser coordinates state, catalog access, and derived views.
type Browser struct {
	client  *tvmaze.Client
	state   *state.State
	sweeper Sweeper
	logger  *slog.Logger

	memoMu   sync.Mutex
	memo     derived
	memoSet  bool
	computes int
}

type derived struct {
	version  uint64
	shows    []tvmaze.Show
	episodes []tvmaze.Episode
}

// Option configures a Browser.
type Option func(*Browser)

// WithSweeper sets the cache sweeper run by Start.
func WithSweeper(s Sweeper) Option {
	return func(b *Browser) { b.sweeper = s }
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Browser) { b.logger = logging.NewComponentLogger(logger, "browser") }
}

// New creates a Browser backed by client.
func New(client *tvmaze.Client, opts ...Option) (*Browser, error) {
	if client == nil {
		return nil, errors.New("browser catalog client required")
	}
	b := &Browser{
		client: client,
		state:  state.New(),
		logger: logging.NewComponentLogger(nil, "browser"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Start performs session startup housekeeping: expired cache entries are
// swept. Sweep failures are logged, never returned.
func (b *Browser) Start(ctx context.Context) cache.SweepResult {
	if b.sweeper == nil {
		return cache.SweepResult{}
	}
	result, err := b.sweeper.SweepExpired(ctx)
	if err != nil {
		logging.WarnWithContext(b.logger, "cache sweep failed", "cache_sweep_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "run `tvbrowse cache clear` if the cache file is corrupt"),
			logging.String(logging.FieldImpact, "expired entries stay on disk until the next sweep"),
		)
	}
	return result
}

// Snapshot exposes the current state.
func (b *Browser) Snapshot() state.Snapshot {
	return b.state.Snapshot()
}

// LoadShows fetches the catalog and shows the show list.
func (b *Browser) LoadShows(ctx context.Context) error {
	shows, err := b.client.Shows(ctx)
	if err != nil {
		b.logger.Error("shows load failed", logging.Error(err))
		return fmt.Errorf("load shows: %w", err)
	}
	b.state.SetShows(shows)
	b.state.SetView(state.ViewShows)
	b.logger.Info("shows loaded", logging.Int("count", len(shows)))
	return nil
}

// LoadShow opens the episode list of show id. Filters reset immediately;
// the episodes are committed only if no other show was opened meanwhile,
// otherwise ErrStale is returned. A failed fetch leaves an empty list.
func (b *Browser) LoadShow(ctx context.Context, id int64, name string) error {
	token := b.state.BeginEpisodeLoad(state.ShowRef{ID: id, Name: name})
	ctx = logging.WithShowID(ctx, id)
	logger := logging.WithContext(ctx, b.logger)

	episodes, err := b.client.Episodes(ctx, id)
	if err != nil {
		if !b.state.FailEpisodeLoad(token) {
			return ErrStale
		}
		logger.Error("episodes load failed", logging.Error(err))
		return fmt.Errorf("load episodes for show %d: %w", id, err)
	}
	if !b.state.CommitEpisodes(token, episodes) {
		logger.Debug("discarded superseded episode list", logging.Int("count", len(episodes)))
		return ErrStale
	}
	logger.Info("episodes loaded", logging.Int("count", len(episodes)))
	return nil
}

// OpenShow opens a show already present in the catalog by id.
func (b *Browser) OpenShow(ctx context.Context, id int64) error {
	show, ok := b.FindShow(id)
	if !ok {
		return fmt.Errorf("show %d not in catalog", id)
	}
	return b.LoadShow(ctx, show.ID, show.Name)
}

// FindShow looks up a loaded show by id.
func (b *Browser) FindShow(id int64) (tvmaze.Show, bool) {
	for _, show := range b.state.Snapshot().Shows {
		if show.ID == id {
			return show, true
		}
	}
	return tvmaze.Show{}, false
}

// BackToShows returns to the show list with an empty show search.
func (b *Browser) BackToShows() {
	b.state.ReturnToShows()
}

// SetShowSearch updates the show filter. Input is trimmed.
func (b *Browser) SetShowSearch(term string) {
	b.state.SetShowSearchTerm(strings.TrimSpace(term))
}

// SetEpisodeSearch updates the episode filter and clears the selection.
func (b *Browser) SetEpisodeSearch(term string) {
	b.state.SetEpisodeSearchTerm(strings.TrimSpace(term))
}

// SelectEpisode narrows the list to one episode code ("all" for none) and
// clears the episode search.
func (b *Browser) SelectEpisode(code string) {
	code = strings.TrimSpace(code)
	if strings.EqualFold(code, state.AllEpisodes) {
		code = state.AllEpisodes
	} else {
		code = strings.ToUpper(code)
	}
	b.state.SelectEpisode(code)
}

// FilteredShows returns the visible shows.
func (b *Browser) FilteredShows() []tvmaze.Show {
	return b.derive(b.state.Snapshot()).shows
}

// FilteredEpisodes returns the visible episodes.
func (b *Browser) FilteredEpisodes() []tvmaze.Episode {
	return b.derive(b.state.Snapshot()).episodes
}

// TotalShows returns the size of the loaded catalog.
func (b *Browser) TotalShows() int {
	return len(b.state.Snapshot().Shows)
}

// TotalEpisodes returns the number of episodes of the current show.
func (b *Browser) TotalEpisodes() int {
	return len(b.state.Snapshot().Episodes)
}

func (b *Browser) derive(snap state.Snapshot) derived {
	b.memoMu.Lock()
	defer b.memoMu.Unlock()
	if b.memoSet && b.memo.version == snap.Version {
		return b.memo
	}
	b.memo = derived{
		version:  snap.Version,
		shows:    filter.Shows(snap),
		episodes: filter.Episodes(snap),
	}
	b.memoSet = true
	b.computes++
	return b.memo
}
