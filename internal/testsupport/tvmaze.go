package testsupport

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// SampleShows is a small unsorted show catalog.
const SampleShows = `[
  {"id": 1, "name": "Zeta", "summary": "<p>A <b>space</b> opera.</p>", "genres": ["Science-Fiction"], "status": "Ended", "rating": {"average": 7.5}, "runtime": 60, "image": {"medium": "http://img/zeta-m.jpg", "original": "http://img/zeta.jpg"}},
  {"id": 2, "name": "Alpha", "summary": "<p>Chemistry teacher.</p>", "genres": ["Drama", "Crime"], "status": "Running", "rating": {"average": null}, "runtime": null, "image": null}
]`

// SampleEpisodes returns the episode list served for show id.
func SampleEpisodes(id int64) string {
	return fmt.Sprintf(`[
  {"id": %[1]d01, "season": 1, "number": 1, "name": "Pilot", "summary": "<p>It begins.</p>", "url": "http://tv/%[1]d/1"},
  {"id": %[1]d02, "season": 1, "number": 2, "name": "Cat's in the Bag", "summary": "<p>A mess.</p>", "url": "http://tv/%[1]d/2"},
  {"id": %[1]d03, "season": 2, "number": 1, "name": "Seven Thirty-Seven", "summary": null, "url": "http://tv/%[1]d/3"}
]`, id)
}

// TVMazeServer is a fake TVmaze API that counts requests per path.
type TVMazeServer struct {
	*httptest.Server

	mu       sync.Mutex
	shows    string
	episodes map[int64]string
	status   map[string]int
	requests map[string]int
	gate     chan struct{}
}

// NewTVMazeServer starts a fake catalog seeded with SampleShows. Episodes
// default to SampleEpisodes for any id.
func NewTVMazeServer(t testing.TB) *TVMazeServer {
	t.Helper()

	s := &TVMazeServer{
		shows:    SampleShows,
		episodes: make(map[int64]string),
		status:   make(map[string]int),
		requests: make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// SetShows replaces the /shows payload.
func (s *TVMazeServer) SetShows(body string) {
	s.mu.Lock()
	s.shows = body
	s.mu.Unlock()
}

// SetEpisodes replaces the episode payload for id.
func (s *TVMazeServer) SetEpisodes(id int64, body string) {
	s.mu.Lock()
	s.episodes[id] = body
	s.mu.Unlock()
}

// FailWith makes path answer with status until cleared with status 0.
func (s *TVMazeServer) FailWith(path string, status int) {
	s.mu.Lock()
	if status == 0 {
		delete(s.status, path)
	} else {
		s.status[path] = status
	}
	s.mu.Unlock()
}

// Hold blocks every request until the returned release func is called.
func (s *TVMazeServer) Hold() (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.gate = gate
	s.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.gate = nil
			s.mu.Unlock()
			close(gate)
		})
	}
}

// Requests reports how many requests hit path.
func (s *TVMazeServer) Requests(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[path]
}

// TotalRequests reports the number of requests served so far.
func (s *TVMazeServer) TotalRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.requests {
		total += n
	}
	return total
}

func (s *TVMazeServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests[r.URL.Path]++
	gate := s.gate
	status := s.status[r.URL.Path]
	shows := s.shows
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}
	if status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/shows":
		_, _ = w.Write([]byte(shows))
	case strings.HasPrefix(r.URL.Path, "/shows/") && strings.HasSuffix(r.URL.Path, "/episodes"):
		raw := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/shows/"), "/episodes")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		s.mu.Lock()
		body, ok := s.episodes[id]
		s.mu.Unlock()
		if !ok {
			body = SampleEpisodes(id)
		}
		_, _ = w.Write([]byte(body))
	default:
		http.NotFound(w, r)
	}
}
