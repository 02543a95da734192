package main

import (
	"bytes"
	"strings"
	"testing"

	"tvbrowse/internal/browser"
	"tvbrowse/internal/state"
	"tvbrowse/internal/tvmaze"
)

func TestRendererHighlightsOnlyWhenColorized(t *testing.T) {
	vm := browser.ViewModel{
		View:          state.ViewShows,
		Shows:         []tvmaze.Show{{ID: 9, Name: "Breaking Bad"}},
		Displayed:     1,
		Total:         4,
		HighlightTerm: "bad",
	}

	var plain bytes.Buffer
	renderer{}.render(&plain, vm)
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("unexpected escape codes:\n%s", plain.String())
	}
	requireContains(t, plain.String(), "Displaying 1/4 shows")

	var colored bytes.Buffer
	r := renderer{colorize: true}
	r.render(&colored, vm)
	requireContains(t, colored.String(), ansiCyan+"Displaying 1/4 shows"+ansiReset)
	if got := r.highlight("Breaking Bad", "bad"); got != "Breaking "+ansiMark("Bad") {
		t.Fatalf("unexpected highlight %q", got)
	}
}

func TestRendererEpisodesLoading(t *testing.T) {
	var buf bytes.Buffer
	renderer{}.render(&buf, browser.ViewModel{
		View:        state.ViewEpisodes,
		CurrentShow: state.ShowRef{ID: 3},
		Loading:     true,
	})
	requireContains(t, buf.String(), "Episodes of show 3")
	requireContains(t, buf.String(), "Loading episodes...")
	requireContains(t, buf.String(), "Displaying 0/0 episodes")
}

func TestNewListOutputOmitsAllSelection(t *testing.T) {
	out := newListOutput(browser.ViewModel{
		View:            state.ViewEpisodes,
		SelectedEpisode: state.AllEpisodes,
		Episodes:        []tvmaze.Episode{{Season: 1, Number: 1, Name: "Pilot"}},
	})
	if out.Selected != "" || out.CurrentShow == nil || len(out.Episodes) != 1 {
		t.Fatalf("unexpected output: %+v", out)
	}
	if out.Episodes[0].Title != "Pilot - S01E01" {
		t.Fatalf("unexpected card: %+v", out.Episodes[0])
	}
}
