package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestShowsCommandRendersSortedTable(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "", "shows")
	if err != nil {
		t.Fatalf("shows: %v", err)
	}
	alpha := strings.Index(out, "Alpha")
	zeta := strings.Index(out, "Zeta")
	if alpha < 0 || zeta < 0 || alpha > zeta {
		t.Fatalf("expected Alpha before Zeta:\n%s", out)
	}
	requireContains(t, out, "Displaying 2/2 shows")
	requireContains(t, out, "No image available")
	requireContains(t, out, "http://img/zeta-m.jpg")
	requireContains(t, out, "N/A")
}

func TestShowsCommandSearchUsesCacheOnSecondRun(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "", "shows", "--search", "space")
	if err != nil {
		t.Fatalf("shows --search: %v", err)
	}
	requireContains(t, out, "Displaying 1/2 shows")
	requireContains(t, out, "Zeta")
	requireNotContains(t, out, "Alpha")

	if _, _, err := runCLI(t, env, "", "shows"); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if got := env.server.Requests("/shows"); got != 1 {
		t.Fatalf("expected the persistent cache to serve the second run, got %d requests", got)
	}
}

func TestShowsCommandJSONOutput(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "", "--output", "json", "shows")
	if err != nil {
		t.Fatalf("shows json: %v", err)
	}
	var payload struct {
		View  string `json:"view"`
		Count string `json:"count"`
		Total int    `json:"total"`
		Shows []struct {
			ID      int64  `json:"id"`
			Title   string `json:"title"`
			Summary string `json:"summary"`
		} `json:"shows"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if payload.View != "shows" || payload.Total != 2 || len(payload.Shows) != 2 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.Shows[0].Title != "Alpha" || payload.Shows[1].Summary != "A space opera." {
		t.Fatalf("unexpected shows: %+v", payload.Shows)
	}
}

func TestShowsCommandYAMLOutput(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "", "-o", "yaml", "shows", "-s", "alpha")
	if err != nil {
		t.Fatalf("shows yaml: %v", err)
	}
	requireContains(t, out, "view: shows")
	requireContains(t, out, "title: Alpha")
	requireContains(t, out, "search: alpha")
}

func TestShowsCommandRejectsUnknownOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, env, "", "-o", "xml", "shows"); err == nil {
		t.Fatal("expected error for unknown output format")
	}
}

func TestShowsCommandReportsNetworkFailure(t *testing.T) {
	env := setupCLITestEnv(t)
	env.server.FailWith("/shows", http.StatusBadGateway)

	_, _, err := runCLI(t, env, "", "shows")
	if err == nil {
		t.Fatal("expected error")
	}
	requireContains(t, err.Error(), "status 502")
}
