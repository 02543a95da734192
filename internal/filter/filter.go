package filter

import (
	"strings"

	"tvbrowse/internal/state"
	"tvbrowse/internal/textutil"
	"tvbrowse/internal/tvmaze"
)

// Shows returns the shows matching the snapshot's show search term. An empty
// term yields the catalog slice itself.
func Shows(snap state.Snapshot) []tvmaze.Show {
	if snap.ShowSearchTerm == "" {
		return snap.Shows
	}
	term := textutil.Lower(snap.ShowSearchTerm)
	out := make([]tvmaze.Show, 0, len(snap.Shows))
	for _, show := range snap.Shows {
		if matchShow(show, term) {
			out = append(out, show)
		}
	}
	return out
}

// Episodes returns the visible episodes. A specific selection wins over the
// search term; a selection that matches nothing shows the whole list.
func Episodes(snap state.Snapshot) []tvmaze.Episode {
	if snap.SelectedEpisodeCode != state.AllEpisodes {
		if ep, ok := FindEpisode(snap.Episodes, snap.SelectedEpisodeCode); ok {
			return []tvmaze.Episode{ep}
		}
		return snap.Episodes
	}
	if snap.EpisodeSearchTerm == "" {
		return snap.Episodes
	}
	term := textutil.Lower(snap.EpisodeSearchTerm)
	out := make([]tvmaze.Episode, 0, len(snap.Episodes))
	for _, ep := range snap.Episodes {
		if matchEpisode(ep, term) {
			out = append(out, ep)
		}
	}
	return out
}

// MatchShow reports whether term occurs, case-insensitively, in the show's
// name, plain-text summary, or space-joined genres.
func MatchShow(show tvmaze.Show, term string) bool {
	return matchShow(show, textutil.Lower(term))
}

// MatchEpisode reports whether term occurs, case-insensitively, in the
// episode's name or plain-text summary.
func MatchEpisode(ep tvmaze.Episode, term string) bool {
	return matchEpisode(ep, textutil.Lower(term))
}

// FindEpisode returns the first episode whose code equals code.
func FindEpisode(episodes []tvmaze.Episode, code string) (tvmaze.Episode, bool) {
	for _, ep := range episodes {
		if ep.Code() == code {
			return ep, true
		}
	}
	return tvmaze.Episode{}, false
}

func matchShow(show tvmaze.Show, lowered string) bool {
	return strings.Contains(textutil.Lower(show.Name), lowered) ||
		strings.Contains(textutil.Lower(textutil.StripHTML(show.Summary)), lowered) ||
		strings.Contains(textutil.Lower(strings.Join(show.Genres, " ")), lowered)
}

func matchEpisode(ep tvmaze.Episode, lowered string) bool {
	return strings.Contains(textutil.Lower(ep.Name), lowered) ||
		strings.Contains(textutil.Lower(textutil.StripHTML(ep.Summary)), lowered)
}
