// Package config loads, normalizes, and validates tvbrowse configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts and XDG_CACHE_HOME), reads TOML files, and honours environment
// fallbacks such as TVBROWSE_API_BASE_URL. The Config type centralizes every
// knob the CLI needs: catalog endpoint and HTTP behaviour, the persistent
// response cache, and log output.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
