// Package tvmaze provides the typed view of the TVmaze catalog used by the
// browser.
//
// It builds the two read-only endpoint URLs (show list and per-show episode
// list), defines the Show and Episode records, and decodes raw JSON payloads
// into them. Transport and caching are delegated to a JSONFetcher so the same
// request URL doubles as the cache key.
package tvmaze
