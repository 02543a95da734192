// Package state holds the single mutable application state of a browsing
// session: the loaded catalog, the active view, and the user's search and
// selection inputs.
//
// Every mutation goes through a setter so each change is one auditable step
// that bumps Version. Readers take a Snapshot, an immutable value the
// filter engine derives views from. Episode loads are tagged with a token so
// a response for a show the user already navigated away from can be
// recognised and dropped.
package state
