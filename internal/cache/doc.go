// Package cache implements the two-tier response cache that fronts the TVmaze
// catalog.
//
// The process tier is a plain map that lives for the lifetime of the Cache.
// The persistent tier is a Store (SQLite on disk, or an in-memory map when
// persistence is disabled) holding one JSON blob per request URL:
//
//	{"data": <payload>, "timestamp": <ms epoch>, "expiresAt": <ms epoch>}
//
// Persistent entries expire TTL after they were written. Expiry is checked
// lazily on read and eagerly by SweepExpired, which callers run once at
// startup. Storage failures are logged and never surface to readers; a
// broken disk degrades the cache into a process-only cache.
package cache
