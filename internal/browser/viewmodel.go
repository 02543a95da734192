package browser

import (
	"fmt"
	"strings"

	"tvbrowse/internal/state"
	"tvbrowse/internal/textutil"
	"tvbrowse/internal/tvmaze"
)

const (
	noSummary = "No summary available."
	noImage   = "No image available"
	notAvail  = "N/A"
)

// EpisodeOption is one entry of the episode selector.
type EpisodeOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ViewModel is everything a renderer needs to draw the current screen.
type ViewModel struct {
	View            state.View       `json:"view"`
	Shows           []tvmaze.Show    `json:"shows,omitempty"`
	Episodes        []tvmaze.Episode `json:"episodes,omitempty"`
	Displayed       int              `json:"displayed"`
	Total           int              `json:"total"`
	HighlightTerm   string           `json:"highlight_term,omitempty"`
	CurrentShow     state.ShowRef    `json:"current_show"`
	SelectedEpisode string           `json:"selected_episode,omitempty"`
	EpisodeOptions  []EpisodeOption  `json:"episode_options,omitempty"`
	Loading         bool             `json:"loading,omitempty"`
}

// CountLabel renders the "Displaying X/Y shows" line.
func (vm ViewModel) CountLabel() string {
	noun := "episodes"
	if vm.View == state.ViewShows {
		noun = "shows"
	}
	return fmt.Sprintf("Displaying %d/%d %s", vm.Displayed, vm.Total, noun)
}

// ViewModel projects the current state for rendering.
func (b *Browser) ViewModel() ViewModel {
	snap := b.state.Snapshot()
	d := b.derive(snap)
	if snap.View == state.ViewShows {
		return ViewModel{
			View:          state.ViewShows,
			Shows:         d.shows,
			Displayed:     len(d.shows),
			Total:         len(snap.Shows),
			HighlightTerm: snap.ShowSearchTerm,
		}
	}
	return ViewModel{
		View:            state.ViewEpisodes,
		Episodes:        d.episodes,
		Displayed:       len(d.episodes),
		Total:           len(snap.Episodes),
		HighlightTerm:   snap.EpisodeSearchTerm,
		CurrentShow:     snap.CurrentShow,
		SelectedEpisode: snap.SelectedEpisodeCode,
		EpisodeOptions:  episodeOptions(snap.Episodes),
		Loading:         snap.EpisodesLoading,
	}
}

// EpisodeOptions returns the selector entries for the current show.
func (b *Browser) EpisodeOptions() []EpisodeOption {
	return episodeOptions(b.state.Snapshot().Episodes)
}

func episodeOptions(episodes []tvmaze.Episode) []EpisodeOption {
	opts := make([]EpisodeOption, 0, len(episodes)+1)
	opts = append(opts, EpisodeOption{Value: state.AllEpisodes, Label: "All episodes"})
	for _, ep := range episodes {
		code := ep.Code()
		opts = append(opts, EpisodeOption{Value: code, Label: code + " - " + ep.Name})
	}
	return opts
}

// ShowCard is the display text of one show.
type ShowCard struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Genres  string `json:"genres"`
	Status  string `json:"status"`
	Rating  string `json:"rating"`
	Runtime string `json:"runtime"`
	Image   string `json:"image"`

	TitleMarkup   string `json:"title_markup,omitempty"`
	SummaryMarkup string `json:"summary_markup,omitempty"`
}

// EpisodeCard is the display text of one episode.
type EpisodeCard struct {
	Code    string `json:"code"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Link    string `json:"link"`
	Image   string `json:"image"`

	TitleMarkup   string `json:"title_markup,omitempty"`
	SummaryMarkup string `json:"summary_markup,omitempty"`
}

// NewShowCard fills in placeholders for missing show fields.
func NewShowCard(show tvmaze.Show) ShowCard {
	return ShowCard{
		ID:      show.ID,
		Title:   show.Name,
		Summary: summaryText(show.Summary),
		Genres:  orNA(strings.Join(show.Genres, ", ")),
		Status:  orNA(show.Status),
		Rating:  show.RatingLabel(),
		Runtime: show.RuntimeLabel(),
		Image:   imageText(show.Image),
	}
}

// NewEpisodeCard fills in placeholders for missing episode fields.
func NewEpisodeCard(ep tvmaze.Episode) EpisodeCard {
	code := ep.Code()
	link := ep.URL
	if link == "" {
		link = "#"
	}
	return EpisodeCard{
		Code:    code,
		Title:   ep.Name + " - " + code,
		Summary: summaryText(ep.Summary),
		Link:    link,
		Image:   imageText(ep.Image),
	}
}

// Mark fills the markup fields with term wrapped in <mark> tags. An empty
// term leaves c unchanged.
func (c ShowCard) Mark(term string) ShowCard {
	if term == "" {
		return c
	}
	c.TitleMarkup = textutil.HighlightMatches(c.Title, term)
	c.SummaryMarkup = textutil.HighlightMatches(c.Summary, term)
	return c
}

// Mark is ShowCard.Mark for episodes.
func (c EpisodeCard) Mark(term string) EpisodeCard {
	if term == "" {
		return c
	}
	c.TitleMarkup = textutil.HighlightMatches(c.Title, term)
	c.SummaryMarkup = textutil.HighlightMatches(c.Summary, term)
	return c
}

func summaryText(markup string) string {
	if markup == "" {
		return noSummary
	}
	return textutil.StripHTML(markup)
}

func imageText(img *tvmaze.Image) string {
	if url := tvmaze.ImageURL(img); url != "" {
		return url
	}
	return noImage
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvail
	}
	return s
}
