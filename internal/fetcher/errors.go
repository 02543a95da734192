package fetcher

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport indicates the request never produced a response.
	ErrTransport = errors.New("transport failure")
	// ErrNetwork indicates the server answered with a non-success status.
	ErrNetwork = errors.New("network response was not ok")
	// ErrDecode indicates the response body was not valid JSON.
	ErrDecode = errors.New("invalid json response")
)

// Kind classifies a fetch failure.
type Kind string

const (
	KindTransport Kind = "transport"
	KindNetwork   Kind = "network"
	KindDecode    Kind = "decode"
)

// Error describes a failed fetch.
type Error struct {
	Kind       Kind
	URL        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNetwork:
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	default:
		if e.Err != nil {
			return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
		}
		return fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrDecode:
		return e.Kind == KindDecode
	}
	return false
}

// Hint returns a short remediation string for user-facing messages.
func Hint(err error) string {
	switch {
	case errors.Is(err, ErrTransport):
		return "check network connectivity and api.base_url"
	case errors.Is(err, ErrNetwork):
		return "the catalog rejected the request; retry later"
	case errors.Is(err, ErrDecode):
		return "the catalog returned an unexpected payload"
	default:
		return ""
	}
}
