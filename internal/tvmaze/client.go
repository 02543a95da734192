package tvmaze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"tvbrowse/internal/fetcher"
)

// DefaultBaseURL is the public TVmaze API root.
const DefaultBaseURL = "https://api.tvmaze.com"

// JSONFetcher retrieves a JSON document by URL. The fetcher package provides
// the cached, single-flight implementation.
type JSONFetcher interface {
	FetchWithCache(ctx context.Context, rawURL string) (json.RawMessage, error)
}

// Client decodes catalog documents fetched through a JSONFetcher.
type Client struct {
	baseURL string
	fetcher JSONFetcher
}

// New creates a catalog client rooted at baseURL.
func New(baseURL string, fetcher JSONFetcher) (*Client, error) {
	if fetcher == nil {
		return nil, errors.New("tvmaze fetcher required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse tvmaze base url: %w", err)
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), fetcher: fetcher}, nil
}

// ShowsURL returns the show list endpoint.
func (c *Client) ShowsURL() string {
	return c.baseURL + "/shows"
}

// EpisodesURL returns the episode list endpoint for a show.
func (c *Client) EpisodesURL(showID int64) string {
	return fmt.Sprintf("%s/shows/%d/episodes", c.baseURL, showID)
}

// invalidator is implemented by fetchers that can drop a cached document.
type invalidator interface {
	Invalidate(ctx context.Context, rawURL string) error
}

// Shows fetches and decodes the show list. API order is preserved.
func (c *Client) Shows(ctx context.Context) ([]Show, error) {
	rawURL := c.ShowsURL()
	raw, err := c.fetcher.FetchWithCache(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	shows, err := DecodeShows(raw)
	if err != nil {
		return nil, c.rejectPayload(ctx, rawURL, err)
	}
	return shows, nil
}

// Episodes fetches and decodes the episode list of a show.
func (c *Client) Episodes(ctx context.Context, showID int64) ([]Episode, error) {
	if showID <= 0 {
		return nil, errors.New("show id must be positive")
	}
	rawURL := c.EpisodesURL(showID)
	raw, err := c.fetcher.FetchWithCache(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	episodes, err := DecodeEpisodes(raw)
	if err != nil {
		return nil, c.rejectPayload(ctx, rawURL, err)
	}
	return episodes, nil
}

// rejectPayload drops a cached document that does not have the expected
// shape so the next call refetches it, and reports a decode failure.
func (c *Client) rejectPayload(ctx context.Context, rawURL string, err error) error {
	if inv, ok := c.fetcher.(invalidator); ok {
		if invErr := inv.Invalidate(ctx, rawURL); invErr != nil {
			err = errors.Join(err, invErr)
		}
	}
	return &fetcher.Error{Kind: fetcher.KindDecode, URL: rawURL, Err: err}
}

// DecodeShows decodes a show list payload. JSON null yields an empty list;
// any other non-array payload is an error.
func DecodeShows(raw json.RawMessage) ([]Show, error) {
	var shows []Show
	if err := decodeList(raw, &shows); err != nil {
		return nil, fmt.Errorf("decode shows: %w", err)
	}
	if shows == nil {
		shows = []Show{}
	}
	return shows, nil
}

// DecodeEpisodes decodes an episode list payload with the same rules as
// DecodeShows.
func DecodeEpisodes(raw json.RawMessage) ([]Episode, error) {
	var episodes []Episode
	if err := decodeList(raw, &episodes); err != nil {
		return nil, fmt.Errorf("decode episodes: %w", err)
	}
	if episodes == nil {
		episodes = []Episode{}
	}
	return episodes, nil
}

var errNotList = errors.New("payload is not a JSON array")

func decodeList(raw json.RawMessage, dst any) error {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	if !strings.HasPrefix(trimmed, "[") {
		return errNotList
	}
	return json.Unmarshal(raw, dst)
}
