package state_test

import (
	"testing"

	"tvbrowse/internal/state"
	"tvbrowse/internal/tvmaze"
)

func names(shows []tvmaze.Show) []string {
	out := make([]string, len(shows))
	for i, s := range shows {
		out[i] = s.Name
	}
	return out
}

func TestNewStartsOnEmptyShowList(t *testing.T) {
	snap := state.New().Snapshot()
	if snap.View != state.ViewShows {
		t.Fatalf("unexpected view %q", snap.View)
	}
	if snap.SelectedEpisodeCode != state.AllEpisodes {
		t.Fatalf("unexpected selection %q", snap.SelectedEpisodeCode)
	}
	if snap.Shows == nil || snap.Episodes == nil || len(snap.Shows) != 0 {
		t.Fatal("expected empty, non-nil collections")
	}
}

func TestSetShowsSortsCaseInsensitivelyAndStably(t *testing.T) {
	s := state.New()
	input := []tvmaze.Show{
		{ID: 1, Name: "zeta"},
		{ID: 2, Name: "Alpha"},
		{ID: 3, Name: "beta"},
		{ID: 4, Name: "ALPHA"},
	}
	s.SetShows(input)

	snap := s.Snapshot()
	got := names(snap.Shows)
	want := []string{"Alpha", "ALPHA", "beta", "zeta"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: %v", got)
		}
	}
	if input[0].Name != "zeta" {
		t.Fatal("SetShows must not reorder the caller's slice")
	}
}

func TestSearchAndSelectionAreMutuallyExclusive(t *testing.T) {
	s := state.New()
	s.SelectEpisode("S01E02")
	s.SetEpisodeSearchTerm("pilot")
	snap := s.Snapshot()
	if snap.SelectedEpisodeCode != state.AllEpisodes || snap.EpisodeSearchTerm != "pilot" {
		t.Fatalf("search should reset selection: %+v", snap)
	}

	s.SelectEpisode("S01E01")
	snap = s.Snapshot()
	if snap.SelectedEpisodeCode != "S01E01" || snap.EpisodeSearchTerm != "" {
		t.Fatalf("selection should clear search: %+v", snap)
	}

	s.SelectEpisode("  ")
	if got := s.Snapshot().SelectedEpisodeCode; got != state.AllEpisodes {
		t.Fatalf("blank selection should mean all, got %q", got)
	}
}

func TestStaleEpisodeLoadIsDiscarded(t *testing.T) {
	s := state.New()
	first := s.BeginEpisodeLoad(state.ShowRef{ID: 1, Name: "Zeta"})
	second := s.BeginEpisodeLoad(state.ShowRef{ID: 2, Name: "Alpha"})

	if s.CommitEpisodes(first, []tvmaze.Episode{{Season: 9, Number: 9}}) {
		t.Fatal("expected stale commit to be rejected")
	}
	snap := s.Snapshot()
	if len(snap.Episodes) != 0 || !snap.EpisodesLoading {
		t.Fatalf("stale commit must not change state: %+v", snap)
	}

	if !s.CommitEpisodes(second, []tvmaze.Episode{{Season: 1, Number: 1}}) {
		t.Fatal("expected current commit to succeed")
	}
	snap = s.Snapshot()
	if snap.CurrentShow.ID != 2 || len(snap.Episodes) != 1 || snap.EpisodesLoading {
		t.Fatalf("unexpected state after commit: %+v", snap)
	}
}

func TestBeginEpisodeLoadResetsFilters(t *testing.T) {
	s := state.New()
	s.SetEpisodeSearchTerm("old")
	s.SelectEpisode("S01E01")
	token := s.BeginEpisodeLoad(state.ShowRef{ID: 5})
	snap := s.Snapshot()
	if snap.View != state.ViewEpisodes || snap.EpisodeSearchTerm != "" || snap.SelectedEpisodeCode != state.AllEpisodes {
		t.Fatalf("unexpected state: %+v", snap)
	}
	if snap.EpisodeLoadToken != token {
		t.Fatalf("token mismatch: %d vs %d", snap.EpisodeLoadToken, token)
	}

	if !s.FailEpisodeLoad(token) {
		t.Fatal("expected failure to apply to current load")
	}
	if snap := s.Snapshot(); snap.Episodes == nil || len(snap.Episodes) != 0 || snap.EpisodesLoading {
		t.Fatalf("expected empty episodes after failure: %+v", snap)
	}
}

func TestReturnToShowsClearsShowSearch(t *testing.T) {
	s := state.New()
	s.SetShowSearchTerm("bad")
	s.BeginEpisodeLoad(state.ShowRef{ID: 1})
	s.ReturnToShows()
	snap := s.Snapshot()
	if snap.View != state.ViewShows || snap.ShowSearchTerm != "" {
		t.Fatalf("unexpected state: %+v", snap)
	}
}

func TestVersionIncrementsOnEveryMutation(t *testing.T) {
	s := state.New()
	v0 := s.Version()
	s.SetShowSearchTerm("x")
	s.SetView(state.ViewEpisodes)
	if got := s.Version(); got != v0+2 {
		t.Fatalf("expected version %d, got %d", v0+2, got)
	}
	token := s.BeginEpisodeLoad(state.ShowRef{ID: 1})
	before := s.Version()
	s.CommitEpisodes(token+1, nil)
	if s.Version() != before {
		t.Fatal("rejected commit must not bump version")
	}
}
