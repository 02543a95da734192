package tvmaze

import (
	"strconv"

	"tvbrowse/internal/textutil"
)

// Image holds the poster URLs TVmaze publishes for shows and episodes.
type Image struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

// Rating wraps the nullable average score.
type Rating struct {
	Average *float64 `json:"average"`
}

// Show is a series record from the catalog.
type Show struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Summary string   `json:"summary"`
	Genres  []string `json:"genres"`
	Status  string   `json:"status"`
	Rating  Rating   `json:"rating"`
	Runtime *int     `json:"runtime"`
	Image   *Image   `json:"image"`
}

// Episode is one installment of a show. Season and Number form its identity.
type Episode struct {
	ID      int64  `json:"id,omitempty"`
	Season  int    `json:"season"`
	Number  int    `json:"number"`
	Name    string `json:"name"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
	Image   *Image `json:"image"`
}

// Code returns the canonical SxxEyy identifier.
func (e Episode) Code() string {
	return textutil.FormatEpisodeCode(e.Season, e.Number)
}

// ImageURL prefers the medium poster and falls back to the original.
func ImageURL(img *Image) string {
	if img == nil {
		return ""
	}
	if img.Medium != "" {
		return img.Medium
	}
	return img.Original
}

// RatingLabel renders the average rating or "N/A".
func (s Show) RatingLabel() string {
	if s.Rating.Average == nil || *s.Rating.Average == 0 {
		return "N/A"
	}
	return strconv.FormatFloat(*s.Rating.Average, 'f', -1, 64)
}

// RuntimeLabel renders the runtime in minutes or "N/A".
func (s Show) RuntimeLabel() string {
	if s.Runtime == nil || *s.Runtime == 0 {
		return "N/A"
	}
	return strconv.Itoa(*s.Runtime)
}
