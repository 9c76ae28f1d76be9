package agent

import (
	"context"
	"sync"
	"time"
)

type Cache[S any] interface {
	Set(ctx context.Context, key string, val S) error
	Get(ctx context.Context, key string) (S, bool, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

type cacheEntry[S any] struct {
	val     S
	touched time.Time
}

// MemoryCache keeps values in process memory. With a positive ttl an entry
// that has not been written for ttl is treated as absent and swept on the
// next Set.
type MemoryCache[S any] struct {
	mu  sync.RWMutex
	ttl time.Duration
	now func() time.Time
	m   map[string]cacheEntry[S]
}

func NewMemoryCache[S any](ttl time.Duration) *MemoryCache[S] {
	return &MemoryCache[S]{
		ttl: ttl,
		now: time.Now,
		m:   map[string]cacheEntry[S]{},
	}
}

func (m *MemoryCache[S]) expired(e cacheEntry[S], now time.Time) bool {
	return m.ttl > 0 && now.Sub(e.touched) > m.ttl
}

func (m *MemoryCache[S]) Set(ctx context.Context, key string, val S) error {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, e := range m.m {
		if m.expired(e, now) {
			delete(m.m, k)
		}
	}
	m.m[key] = cacheEntry[S]{val: val, touched: now}
	return nil
}

func (m *MemoryCache[S]) Get(ctx context.Context, key string) (S, bool, error) {
	m.mu.RLock()
	e, ok := m.m[key]
	m.mu.RUnlock()
	if !ok || m.expired(e, m.now()) {
		var zero S
		return zero, false, nil
	}
	return e.val, true, nil
}

func (m *MemoryCache[S]) Del(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.m, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache[S]) Exists(ctx context.Context, key string) (bool, error) {
	_, ok, err := m.Get(ctx, key)
	return ok, err
}

func (m *MemoryCache[S]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.m)
}
