// Package textutil provides the small text helpers shared by the filter
// engine and the renderers.
//
// The primary use cases are:
//   - Extracting visible text from the HTML summaries the catalog returns
//   - Highlighting case-insensitive literal matches of a search term
//   - Formatting canonical episode codes such as S01E05
//   - Language-neutral lower casing and collation of show names
//
// Every function is pure and safe for concurrent use.
package textutil
