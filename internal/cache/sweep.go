package cache

import (
	"context"
	"fmt"

	"github.com/gofrs/flock"

	"tvbrowse/internal/logging"
)

// SweepResult reports what a sweep did.
type SweepResult struct {
	Scanned   int  `json:"scanned"`
	Removed   int  `json:"removed"`
	Malformed int  `json:"malformed"`
	Skipped   bool `json:"skipped"`
}

// SweepExpired removes every persisted entry whose expiry has passed.
// Malformed values are left in place. When another process holds the sweep
// lock the sweep is skipped and Skipped is set.
func (c *Cache) SweepExpired(ctx context.Context) (SweepResult, error) {
	var result SweepResult

	if c.lockPath != "" {
		lock := flock.New(c.lockPath)
		locked, err := lock.TryLock()
		if err != nil {
			return result, fmt.Errorf("%w: acquire sweep lock: %v", ErrStorage, err)
		}
		if !locked {
			c.logger.Debug("cache sweep skipped; lock held by another process",
				logging.String("lock_path", c.lockPath))
			result.Skipped = true
			return result, nil
		}
		defer func() { _ = lock.Unlock() }()
	}

	keys, err := c.store.Keys(ctx)
	if err != nil {
		return result, fmt.Errorf("sweep cache: %w", err)
	}

	now := c.now()
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Scanned++
		raw, found, err := c.store.Load(ctx, key)
		if err != nil {
			return result, fmt.Errorf("sweep cache: %w", err)
		}
		if !found {
			continue
		}
		entry, err := decodeEntry(raw)
		if err != nil {
			result.Malformed++
			continue
		}
		if !entry.Expired(now) {
			continue
		}
		if err := c.store.Delete(ctx, key); err != nil {
			return result, fmt.Errorf("sweep cache: %w", err)
		}
		result.Removed++
	}

	if result.Removed > 0 {
		c.logger.Info("cache sweep removed expired entries",
			logging.Int("removed", result.Removed),
			logging.Int("scanned", result.Scanned))
	}
	return result, nil
}
