// Command tvbrowse browses the TVmaze show catalog from the terminal.
//
// One-shot commands (`shows`, `episodes`) print a filtered list as a table,
// JSON, or YAML. `browse` opens an interactive session that keeps one
// browsing state alive: search, open a show, pick an episode, go back.
// Responses are cached for 24 hours in a local SQLite file; the `cache`
// commands inspect, sweep, clear, and pre-warm it.
package main
