// Package filter derives the visible show and episode lists from a state
// snapshot. Every function is pure; results depend only on the snapshot.
package filter
