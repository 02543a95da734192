package config

const (
	defaultConfigPath           = "~/.config/tvbrowse/config.toml"
	defaultAPIBaseURL           = "https://api.tvmaze.com"
	defaultUserAgent            = "tvbrowse/dev"
	defaultTimeoutSeconds       = 10
	defaultRetryAttempts        = 1
	defaultCacheEnabled         = true
	defaultCacheWarmConcurrency = 4
	defaultLogFormat            = "console"
	defaultLogLevel             = "warn"
	defaultLogMaxSizeMB         = 10
	defaultLogMaxBackups        = 3
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		API: API{
			BaseURL:        defaultAPIBaseURL,
			UserAgent:      defaultUserAgent,
			TimeoutSeconds: defaultTimeoutSeconds,
			RetryAttempts:  defaultRetryAttempts,
		},
		Cache: Cache{
			Enabled:         defaultCacheEnabled,
			Path:            defaultCachePath(),
			WarmConcurrency: defaultCacheWarmConcurrency,
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
		},
	}
}
