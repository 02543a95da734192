package main

import (
	"encoding/json"
	"testing"
)

func TestEpisodesCommandListsEpisodes(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "", "episodes", "2")
	if err != nil {
		t.Fatalf("episodes: %v", err)
	}
	requireContains(t, out, "Episodes of Alpha (show 2)")
	requireContains(t, out, "Pilot - S01E01")
	requireContains(t, out, "No summary available.")
	requireContains(t, out, "No image available")
	requireContains(t, out, "Displaying 3/3 episodes")
}

func TestEpisodesCommandSearchAndSelect(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "", "episodes", "1", "--search", "bag")
	if err != nil {
		t.Fatalf("episodes --search: %v", err)
	}
	requireContains(t, out, "Displaying 1/3 episodes")
	requireContains(t, out, "S01E02")

	out, _, err = runCLI(t, env, "", "episodes", "1", "--episode", "s02e01")
	if err != nil {
		t.Fatalf("episodes --episode: %v", err)
	}
	requireContains(t, out, "Seven Thirty-Seven")
	requireNotContains(t, out, "Pilot")

	out, _, err = runCLI(t, env, "", "episodes", "1", "--episode", "S09E09")
	if err != nil {
		t.Fatalf("episodes unknown code: %v", err)
	}
	requireContains(t, out, "Displaying 3/3 episodes")
}

func TestEpisodesCommandCodes(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "", "episodes", "1", "--codes")
	if err != nil {
		t.Fatalf("episodes --codes: %v", err)
	}
	requireContains(t, out, "> All episodes")
	requireContains(t, out, "S01E02 - Cat's in the Bag")

	out, _, err = runCLI(t, env, "", "-o", "json", "episodes", "1", "--codes")
	if err != nil {
		t.Fatalf("episodes --codes json: %v", err)
	}
	var opts []struct {
		Value string `json:"value"`
		Label string `json:"label"`
	}
	if err := json.Unmarshal([]byte(out), &opts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(opts) != 4 || opts[0].Value != "all" {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestEpisodesCommandValidatesArguments(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env, "", "episodes", "abc"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
	if _, _, err := runCLI(t, env, "", "episodes", "1", "-s", "x", "-e", "S01E01"); err == nil {
		t.Fatal("expected error for conflicting flags")
	}
	if env.server.TotalRequests() != 0 {
		t.Fatal("argument errors must not hit the network")
	}
}
