package textutil

import "fmt"

// FormatEpisodeCode renders the canonical SxxEyy code. Both numbers are
// zero-padded to at least two digits; wider values are kept whole.
func FormatEpisodeCode(season, number int) string {
	return fmt.Sprintf("S%02dE%02d", season, number)
}
