package main

import (
	"encoding/json"
	"net/http"
	"testing"

	"tvbrowse/internal/testsupport"
)

func TestCacheListSweepClear(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "", "cache", "list")
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	requireContains(t, out, "Cache is empty")

	if _, _, err := runCLI(t, env, "", "episodes", "1"); err != nil {
		t.Fatalf("episodes: %v", err)
	}

	out, _, err = runCLI(t, env, "", "cache", "list")
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	requireContains(t, out, env.server.URL+"/shows/1/episodes")
	requireContains(t, out, "fresh")

	out, _, err = runCLI(t, env, "", "-o", "json", "cache", "sweep")
	if err != nil {
		t.Fatalf("cache sweep: %v", err)
	}
	var result struct {
		Scanned int  `json:"scanned"`
		Removed int  `json:"removed"`
		Skipped bool `json:"skipped"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode sweep: %v", err)
	}
	if result.Scanned != 2 || result.Removed != 0 || result.Skipped {
		t.Fatalf("unexpected sweep result: %+v", result)
	}

	showsURL := env.server.URL + "/shows"
	out, _, err = runCLI(t, env, "", "cache", "forget", showsURL)
	if err != nil {
		t.Fatalf("cache forget: %v", err)
	}
	requireContains(t, out, "Forgot "+showsURL)
	out, _, err = runCLI(t, env, "", "cache", "list")
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	requireContains(t, out, env.server.URL+"/shows/1/episodes")
	if got := env.server.Requests("/shows"); got != 1 {
		t.Fatalf("expected one /shows request so far, got %d", got)
	}

	out, _, err = runCLI(t, env, "", "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "Cache cleared")

	out, _, err = runCLI(t, env, "", "-o", "json", "cache", "list")
	if err != nil {
		t.Fatalf("cache list json: %v", err)
	}
	var entries []map[string]any
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode entries: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty cache, got %v", entries)
	}
}

func TestCacheWarmFetchesEpisodeLists(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "", "cache", "warm", "--concurrency", "2")
	if err != nil {
		t.Fatalf("cache warm: %v", err)
	}
	requireContains(t, out, "Warmed 2 episode lists")
	for _, path := range []string{"/shows/1/episodes", "/shows/2/episodes"} {
		if env.server.Requests(path) != 1 {
			t.Fatalf("expected %s to be fetched once", path)
		}
	}

	if _, _, err := runCLI(t, env, "", "episodes", "2"); err != nil {
		t.Fatalf("episodes: %v", err)
	}
	if env.server.Requests("/shows/2/episodes") != 1 {
		t.Fatal("expected warmed list to be served from cache")
	}
}

func TestCacheWarmReportsFailures(t *testing.T) {
	env := setupCLITestEnv(t)
	env.server.FailWith("/shows/5/episodes", http.StatusNotFound)

	out, _, err := runCLI(t, env, "", "cache", "warm", "5", "1")
	if err == nil {
		t.Fatal("expected failure for show 5")
	}
	requireContains(t, out, "Warmed 2 episode lists")
	requireContains(t, err.Error(), "status 404")
}

func TestCorruptCacheDatabaseDoesNotAbortCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, env.cfg.Cache.Path, "definitely not an sqlite database file, only filler bytes")

	out, _, err := runCLI(t, env, "", "shows")
	if err != nil {
		t.Fatalf("shows with corrupt cache: %v", err)
	}
	requireContains(t, out, "Displaying 2/2 shows")

	if _, _, err := runCLI(t, env, "", "shows"); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if got := env.server.Requests("/shows"); got != 2 {
		t.Fatalf("expected each run to fetch without a persistent tier, got %d requests", got)
	}

	out, _, err = runCLI(t, env, "", "cache", "list")
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	requireContains(t, out, "Persistent cache unavailable")
}
