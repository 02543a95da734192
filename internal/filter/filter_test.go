package filter_test

import (
	"testing"

	"tvbrowse/internal/filter"
	"tvbrowse/internal/state"
	"tvbrowse/internal/tvmaze"
)

var catalog = []tvmaze.Show{
	{ID: 2, Name: "Alpha", Summary: "<p>A <b>chemistry</b> teacher.</p>", Genres: []string{"Drama", "Crime"}},
	{ID: 3, Name: "Mystery Hour", Summary: "", Genres: []string{"Science-Fiction"}},
	{ID: 1, Name: "Zeta", Summary: "<p>Space opera.</p>", Genres: nil},
}

var episodes = []tvmaze.Episode{
	{Season: 1, Number: 1, Name: "Pilot", Summary: "<p>It begins.</p>"},
	{Season: 1, Number: 2, Name: "Cat's in the Bag", Summary: "<p>A mess &amp; a cleanup.</p>"},
	{Season: 2, Number: 1, Name: "Seven Thirty-Seven"},
}

func TestShowsEmptyTermReturnsSameSlice(t *testing.T) {
	snap := state.Snapshot{Shows: catalog}
	got := filter.Shows(snap)
	if len(got) != len(catalog) || &got[0] != &catalog[0] {
		t.Fatal("expected the catalog slice itself")
	}
}

func TestShowsMatching(t *testing.T) {
	cases := []struct {
		term string
		want []int64
	}{
		{"ALP", []int64{2}},
		{"chemistry", []int64{2}},
		{"b>", nil},
		{"science-fiction", []int64{3}},
		{"drama crime", []int64{2}},
		{"a", []int64{2, 1}},
		{"nothing", nil},
	}
	for _, tc := range cases {
		t.Run(tc.term, func(t *testing.T) {
			got := filter.Shows(state.Snapshot{Shows: catalog, ShowSearchTerm: tc.term})
			if len(got) != len(tc.want) {
				t.Fatalf("got %d shows, want %d", len(got), len(tc.want))
			}
			for i, id := range tc.want {
				if got[i].ID != id {
					t.Fatalf("position %d: got id %d want %d", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestEpisodesSelectionWins(t *testing.T) {
	snap := state.Snapshot{Episodes: episodes, SelectedEpisodeCode: "S01E02", EpisodeSearchTerm: "pilot"}
	got := filter.Episodes(snap)
	if len(got) != 1 || got[0].Name != "Cat's in the Bag" {
		t.Fatalf("unexpected episodes: %+v", got)
	}
}

func TestEpisodesUnknownSelectionFallsBackToAll(t *testing.T) {
	snap := state.Snapshot{Episodes: episodes, SelectedEpisodeCode: "S09E09"}
	got := filter.Episodes(snap)
	if len(got) != len(episodes) {
		t.Fatalf("expected full list, got %d", len(got))
	}

	empty := state.Snapshot{Episodes: []tvmaze.Episode{}, SelectedEpisodeCode: "S01E01"}
	if got := filter.Episodes(empty); got == nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}

func TestEpisodesSearch(t *testing.T) {
	cases := []struct {
		term string
		want int
	}{
		{"", 3},
		{"PILOT", 1},
		{"& a clean", 1},
		{"seven", 1},
		{"S01", 0},
	}
	for _, tc := range cases {
		t.Run(tc.term, func(t *testing.T) {
			snap := state.Snapshot{Episodes: episodes, SelectedEpisodeCode: state.AllEpisodes, EpisodeSearchTerm: tc.term}
			if got := filter.Episodes(snap); len(got) != tc.want {
				t.Fatalf("term %q: got %d episodes want %d", tc.term, len(got), tc.want)
			}
		})
	}
}

func TestMatchHelpers(t *testing.T) {
	if !filter.MatchShow(catalog[1], "FICTION") {
		t.Fatal("expected genre match")
	}
	if filter.MatchEpisode(episodes[2], "begins") {
		t.Fatal("unexpected match")
	}
	if _, ok := filter.FindEpisode(episodes, "S02E01"); !ok {
		t.Fatal("expected to find S02E01")
	}
}
