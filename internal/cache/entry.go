package cache

import (
	"encoding/json"
	"fmt"
	"time"
)

// TTL is how long a persisted response stays valid.
const TTL = 24 * time.Hour

// Entry is the persisted form of a cached response. Times are milliseconds
// since the Unix epoch.
type Entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
	ExpiresAt int64           `json:"expiresAt"`
}

// NewEntry stamps data with now and now+TTL.
func NewEntry(data json.RawMessage, now time.Time) Entry {
	ms := now.UnixMilli()
	return Entry{Data: data, Timestamp: ms, ExpiresAt: ms + TTL.Milliseconds()}
}

// Fresh reports whether the entry may still be served at now.
func (e Entry) Fresh(now time.Time) bool {
	return now.UnixMilli() < e.ExpiresAt
}

// Expired reports whether a sweep at now should evict the entry.
func (e Entry) Expired(now time.Time) bool {
	return now.UnixMilli() > e.ExpiresAt
}

// CreatedAt returns the write time.
func (e Entry) CreatedAt() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// ExpiryTime returns the expiry instant.
func (e Entry) ExpiryTime() time.Time {
	return time.UnixMilli(e.ExpiresAt)
}

func encodeEntry(e Entry) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode cache entry: %w", err)
	}
	return data, nil
}

func decodeEntry(raw []byte) (Entry, error) {
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrMalformedEntry, err)
	}
	if len(e.Data) == 0 || e.ExpiresAt == 0 {
		return Entry{}, fmt.Errorf("%w: missing data or expiresAt", ErrMalformedEntry)
	}
	return e, nil
}
