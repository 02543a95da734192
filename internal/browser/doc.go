// Package browser is the view controller of a browsing session.
//
// A Browser owns one state.State and talks to the catalog through a
// tvmaze.Client. Callers drive it with navigation and input methods
// (LoadShows, LoadShow, BackToShows, SetShowSearch, SetEpisodeSearch,
// SelectEpisode) and read it back through the derived-view accessors or a
// ViewModel, which is all a renderer needs.
//
// Episode loads are guarded against reordering: when the user opens a
// second show before the first show's episodes arrive, the late response is
// dropped and LoadShow reports ErrStale.
package browser
