package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"tvbrowse/internal/browser"
	"tvbrowse/internal/cache"
	"tvbrowse/internal/config"
	"tvbrowse/internal/fetcher"
	"tvbrowse/internal/logging"
	"tvbrowse/internal/tvmaze"
)

type commandContext struct {
	configFlag *string
	outputFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	sessionMu sync.Mutex
	session   *session
}

// session bundles the collaborators one command run shares.
type session struct {
	cache   *cache.Cache
	fetcher *fetcher.Fetcher
	client  *tvmaze.Client
	browser *browser.Browser
}

func newCommandContext(configFlag, outputFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		outputFlag: outputFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) outputFormat() string {
	if c.outputFlag == nil {
		return outputTable
	}
	return strings.ToLower(strings.TrimSpace(*c.outputFlag))
}

// ensureSession opens the cache and wires fetcher, client, and browser.
func (c *commandContext) ensureSession(ctx context.Context) (*session, error) {
	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()
	if c.session != nil {
		return c.session, nil
	}

	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger := c.ensureLogger()

	responseCache := cache.Open(ctx, cfg, logger)
	f, err := fetcher.NewFromConfig(cfg, responseCache, logger)
	if err != nil {
		_ = responseCache.Close()
		return nil, err
	}
	client, err := tvmaze.New(cfg.API.BaseURL, f)
	if err != nil {
		_ = responseCache.Close()
		return nil, err
	}
	b, err := browser.New(client, browser.WithSweeper(responseCache), browser.WithLogger(logger))
	if err != nil {
		_ = responseCache.Close()
		return nil, err
	}
	b.Start(ctx)

	c.session = &session{cache: responseCache, fetcher: f, client: client, browser: b}
	return c.session, nil
}

func (c *commandContext) close() error {
	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()
	if c.session == nil {
		return nil
	}
	err := c.session.cache.Close()
	c.session = nil
	if err != nil {
		return fmt.Errorf("close cache: %w", err)
	}
	return nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// describeFetchError adds a remediation hint to catalog failures.
func describeFetchError(err error) error {
	if err == nil {
		return nil
	}
	if hint := fetcher.Hint(err); hint != "" {
		return fmt.Errorf("%w (%s)", err, hint)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w (increase api.timeout_seconds)", err)
	}
	return err
}
