package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Store is the minimal key/value surface a read-through cache needs.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// FetchFunc loads the value on a cache miss.
type FetchFunc[V any] func(ctx context.Context, id string) (V, error)

// ReadThrough caches fetch-once lookups, replacing the ad-hoc per-item
// lookup maps that used to accumulate inside callers.
type ReadThrough[V any] struct {
	store Store
	keyFn func(id string) string
	ttl   time.Duration
	fetch FetchFunc[V]
}

// NewReadThrough builds a cache over the given store. keyFn maps an id to
// the namespaced storage key.
func NewReadThrough[V any](store Store, keyFn func(string) string, ttl time.Duration, fetch FetchFunc[V]) (*ReadThrough[V], error) {
	if store == nil {
		return nil, fmt.Errorf("cache store required")
	}
	if keyFn == nil {
		return nil, fmt.Errorf("key function required")
	}
	if fetch == nil {
		return nil, fmt.Errorf("fetch function required")
	}
	return &ReadThrough[V]{store: store, keyFn: keyFn, ttl: ttl, fetch: fetch}, nil
}

// Get returns the cached value or fetches and stores it. A failure to write
// back is not fatal: the fetched value is still returned.
func (c *ReadThrough[V]) Get(ctx context.Context, id string) (V, error) {
	var zero V
	key := c.keyFn(id)

	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return zero, fmt.Errorf("cache get %s: %w", key, err)
	}
	if ok {
		var val V
		if err := json.Unmarshal([]byte(raw), &val); err == nil {
			return val, nil
		}
		// Corrupt entry falls through to a fresh fetch.
	}

	val, err := c.fetch(ctx, id)
	if err != nil {
		return zero, err
	}

	if buf, err := json.Marshal(val); err == nil {
		_ = c.store.Set(ctx, key, string(buf), c.ttl)
	}
	return val, nil
}

// MemoryStore is a process-local Store for tests and single-instance runs.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value   string
	expires time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if !entry.expires.IsZero() && time.Now().After(entry.expires) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return "", false, nil
	}
	return entry.value, true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expires = time.Now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}
