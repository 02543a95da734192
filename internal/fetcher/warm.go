package fetcher

import (
	"context"

	"github.com/sourcegraph/conc/pool"
)

// Warm fetches urls with at most concurrency requests in flight, filling the
// cache. It returns the failures joined; successful URLs stay cached.
func (f *Fetcher) Warm(ctx context.Context, urls []string, concurrency int) error {
	if concurrency < 1 {
		concurrency = 1
	}
	p := pool.New().
		WithMaxGoroutines(concurrency).
		WithContext(ctx)
	for _, u := range urls {
		p.Go(func(ctx context.Context) error {
			_, err := f.FetchWithCache(ctx, u)
			return err
		})
	}
	return p.Wait()
}
