package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"tvbrowse/internal/config"
	"tvbrowse/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	server     *testsupport.TVMazeServer
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("TVBROWSE_API_BASE_URL", "")
	t.Setenv("NO_COLOR", "1")

	server := testsupport.NewTVMazeServer(t)
	cfg := testsupport.NewConfig(t, testsupport.WithBaseURL(server.URL))

	configPath := filepath.Join(t.TempDir(), "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, server: server, configPath: configPath}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[api]\nbase_url = %q\nuser_agent = %q\n\n[cache]\npath = %q\n\n[logging]\nlevel = %q\n",
		cfg.API.BaseURL,
		cfg.API.UserAgent,
		cfg.Cache.Path,
		cfg.Logging.Level,
	)
	testsupport.WriteFile(t, path, content)
}

func runCLI(t *testing.T, env *cliTestEnv, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
