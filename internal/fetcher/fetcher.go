package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"tvbrowse/internal/config"
	"tvbrowse/internal/logging"
)

// Cache is the subset of the response cache the fetcher needs.
type Cache interface {
	Get(ctx context.Context, key string) (json.RawMessage, bool)
	Put(ctx context.Context, key string, value json.RawMessage)
	Forget(ctx context.Context, key string) error
}

// Fetcher performs cached, de-duplicated GET requests for JSON documents.
type Fetcher struct {
	cache      Cache
	httpClient *http.Client
	userAgent  string
	attempts   uint
	retryDelay time.Duration
	logger     *slog.Logger
	group      singleflight.Group
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.httpClient = client
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// WithRetryAttempts sets the total attempts made for transport failures.
// Values below 1 mean a single attempt.
func WithRetryAttempts(n int) Option {
	return func(f *Fetcher) {
		if n < 1 {
			n = 1
		}
		f.attempts = uint(n)
	}
}

// WithRetryDelay sets the base backoff between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(f *Fetcher) { f.retryDelay = d }
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) { f.logger = logging.NewComponentLogger(logger, "fetcher") }
}

// New creates a Fetcher in front of cache.
func New(cache Cache, opts ...Option) (*Fetcher, error) {
	if cache == nil {
		return nil, errors.New("fetcher cache required")
	}
	f := &Fetcher{
		cache:      cache,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		attempts:   1,
		retryDelay: 200 * time.Millisecond,
		logger:     logging.NewComponentLogger(nil, "fetcher"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// NewFromConfig builds a Fetcher using the [api] settings in cfg.
func NewFromConfig(cfg *config.Config, cache Cache, logger *slog.Logger) (*Fetcher, error) {
	if cfg == nil {
		return nil, errors.New("fetcher config required")
	}
	return New(cache,
		WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout()}),
		WithUserAgent(cfg.API.UserAgent),
		WithRetryAttempts(cfg.API.RetryAttempts),
		WithLogger(logger),
	)
}

// Invalidate drops the cached document for rawURL from every cache tier.
func (f *Fetcher) Invalidate(ctx context.Context, rawURL string) error {
	if err := f.cache.Forget(ctx, rawURL); err != nil {
		return err
	}
	f.logger.Debug("cached document invalidated", logging.String(logging.FieldCacheKey, rawURL))
	return nil
}

// FetchWithCache returns the JSON document at rawURL, from cache when
// possible. Concurrent callers for the same URL share one request. The
// shared request is not cancelled when one caller's context ends; that
// caller simply stops waiting.
func (f *Fetcher) FetchWithCache(ctx context.Context, rawURL string) (json.RawMessage, error) {
	if data, ok := f.cache.Get(ctx, rawURL); ok {
		return data, nil
	}

	flightCtx := context.WithoutCancel(ctx)
	ch := f.group.DoChan(rawURL, func() (any, error) {
		// A flight that finished between our miss and joining has already
		// populated the cache.
		if data, ok := f.cache.Get(flightCtx, rawURL); ok {
			return data, nil
		}
		data, err := f.fetch(flightCtx, rawURL)
		if err != nil {
			return nil, err
		}
		f.cache.Put(flightCtx, rawURL, data)
		return data, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(json.RawMessage), nil
	}
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) (json.RawMessage, error) {
	requestID := uuid.NewString()
	ctx = logging.WithRequestID(ctx, requestID)
	logger := logging.WithContext(ctx, f.logger)

	start := time.Now()
	data, err := retry.DoWithData(
		func() (json.RawMessage, error) {
			return f.fetchOnce(ctx, rawURL, requestID)
		},
		retry.Context(ctx),
		retry.Attempts(f.attempts),
		retry.Delay(f.retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool { return errors.Is(err, ErrTransport) }),
		retry.OnRetry(func(n uint, err error) {
			logger.Debug("retrying catalog request",
				logging.Int("attempt", int(n)+1),
				logging.String("url", rawURL),
				logging.Error(err))
		}),
	)
	latency := time.Since(start)
	if err != nil {
		logging.WarnWithContext(logger, "catalog request failed", "fetch_failed",
			logging.String("url", rawURL),
			logging.Duration("latency", latency),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, Hint(err)),
			logging.String(logging.FieldImpact, "the requested list could not be loaded"),
		)
		return nil, err
	}
	logger.Debug("catalog request completed",
		logging.String("url", rawURL),
		logging.Duration("latency", latency),
		logging.Int("bytes", len(data)))
	return data, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL, requestID string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{Kind: KindTransport, URL: rawURL, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &Error{Kind: KindNetwork, URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, URL: rawURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if !json.Valid(body) {
		return nil, &Error{Kind: KindDecode, URL: rawURL, StatusCode: resp.StatusCode, Err: errors.New("body is not valid json")}
	}
	return json.RawMessage(body), nil
}
