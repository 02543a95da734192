package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"tvbrowse/internal/config"
	"tvbrowse/internal/logging"
)

// Cache fronts a Store with an in-process map.
type Cache struct {
	store    Store
	logger   *slog.Logger
	now      func() time.Time
	lockPath string

	mu     sync.RWMutex
	memory map[string]json.RawMessage
}

// Option customizes a Cache.
type Option func(*Cache)

// WithClock overrides the time source used for stamping and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLockPath sets the advisory lock file that serialises sweeps across
// processes. Without one, sweeps run unguarded.
func WithLockPath(path string) Option {
	return func(c *Cache) { c.lockPath = path }
}

// New wraps store. A nil store becomes a MemoryStore.
func New(store Store, logger *slog.Logger, opts ...Option) *Cache {
	if store == nil {
		store = NewMemoryStore()
	}
	c := &Cache{
		store:  store,
		logger: logging.NewComponentLogger(logger, "cache"),
		now:    time.Now,
		memory: make(map[string]json.RawMessage),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open builds the cache described by cfg: SQLite-backed when the cache is
// enabled, memory-only otherwise. A store that cannot be opened degrades to
// memory-only with a warning.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) *Cache {
	if cfg == nil || !cfg.Cache.Enabled {
		return New(NewMemoryStore(), logger, opts...)
	}
	store, err := OpenSQLite(ctx, cfg.Cache.Path)
	if err != nil {
		c := New(NewMemoryStore(), logger, opts...)
		logging.WarnWithContext(logging.WithContext(ctx, c.logger), "persistent cache unavailable", "cache_open_failed",
			logging.String("path", cfg.Cache.Path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "remove or repair the cache database file"),
			logging.String(logging.FieldImpact, "responses are cached for this run only"),
		)
		return c
	}
	opts = append([]Option{WithLockPath(cfg.Cache.Path + ".lock")}, opts...)
	return New(store, logger, opts...)
}

// Persistent reports whether entries outlive the process.
func (c *Cache) Persistent() bool {
	_, ok := c.store.(*SQLiteStore)
	return ok
}

// Close releases the persistent tier.
func (c *Cache) Close() error {
	return c.store.Close()
}

// Get returns the cached payload for key. The process tier wins; otherwise a
// fresh persistent entry is promoted into it. Expired entries are removed.
// Storage problems read as a miss.
func (c *Cache) Get(ctx context.Context, key string) (json.RawMessage, bool) {
	c.mu.RLock()
	value, ok := c.memory[key]
	c.mu.RUnlock()
	if ok {
		return value, true
	}

	raw, found, err := c.store.Load(ctx, key)
	if err != nil {
		c.warnStorage(ctx, "cache read failed", "cache_read_failed", key, err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	entry, err := decodeEntry(raw)
	if err != nil {
		c.warnStorage(ctx, "cache entry unreadable", "cache_entry_malformed", key, err)
		if err := c.store.Delete(ctx, key); err != nil {
			c.warnStorage(ctx, "unreadable cache entry not removed", "cache_delete_failed", key, err)
		}
		return nil, false
	}
	if !entry.Fresh(c.now()) {
		if err := c.store.Delete(ctx, key); err != nil {
			c.warnStorage(ctx, "expired cache entry not removed", "cache_delete_failed", key, err)
		}
		c.logger.Debug("cache entry expired", logging.String(logging.FieldCacheKey, key))
		return nil, false
	}

	c.mu.Lock()
	c.memory[key] = entry.Data
	c.mu.Unlock()
	return entry.Data, true
}

// Put records value in both tiers. Persistent failures are logged only.
func (c *Cache) Put(ctx context.Context, key string, value json.RawMessage) {
	c.mu.Lock()
	c.memory[key] = value
	c.mu.Unlock()

	raw, err := encodeEntry(NewEntry(value, c.now()))
	if err == nil {
		err = c.store.Save(ctx, key, raw)
	}
	if err != nil {
		c.warnStorage(ctx, "cache write failed", "cache_write_failed", key, err)
	}
}

// Forget drops key from both tiers so the next Get is a miss.
func (c *Cache) Forget(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.memory, key)
	c.mu.Unlock()
	if err := c.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("forget %s: %w", key, err)
	}
	return nil
}

// Clear empties both tiers.
func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.memory = make(map[string]json.RawMessage)
	c.mu.Unlock()
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// EntryInfo summarises one persisted entry.
type EntryInfo struct {
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Size      int       `json:"size"`
	Expired   bool      `json:"expired"`
}

// Entries lists persisted entries, newest first. Malformed values are skipped.
func (c *Cache) Entries(ctx context.Context) ([]EntryInfo, error) {
	keys, err := c.store.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cache keys: %w", err)
	}
	now := c.now()
	infos := make([]EntryInfo, 0, len(keys))
	for _, key := range keys {
		raw, found, err := c.store.Load(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("load cache entry: %w", err)
		}
		if !found {
			continue
		}
		entry, err := decodeEntry(raw)
		if err != nil {
			continue
		}
		infos = append(infos, EntryInfo{
			Key:       key,
			CreatedAt: entry.CreatedAt(),
			ExpiresAt: entry.ExpiryTime(),
			Size:      len(entry.Data),
			Expired:   !entry.Fresh(now),
		})
	}
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos, nil
}

func (c *Cache) warnStorage(ctx context.Context, msg, eventType, key string, err error) {
	logging.WarnWithContext(logging.WithContext(ctx, c.logger), msg, eventType,
		logging.String(logging.FieldCacheKey, key),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check permissions and free space for the cache file"),
		logging.String(logging.FieldImpact, "responses will be fetched from the network again"),
	)
}
