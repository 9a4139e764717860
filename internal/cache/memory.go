package cache

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryCache implements CacheBackend using sync.Map
type MemoryCache struct {
	data            sync.Map
	maxSize         int
	cleanupInterval time.Duration
	stopCh          chan struct{}
	stopOnce        sync.Once
	done            chan struct{}
}

type memoryCacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache creates a new in-memory cache and starts its cleanup loop
func NewMemoryCache(maxSize int, cleanupInterval time.Duration) *MemoryCache {
	mc := &MemoryCache{
		maxSize:         maxSize,
		cleanupInterval: cleanupInterval,
		stopCh:          make(chan struct{}),
		done:            make(chan struct{}),
	}
	go mc.cleanupLoop()
	return mc
}

func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, ok := m.data.Load(key)
	if !ok {
		return nil, false, nil
	}
	entry := val.(*memoryCacheEntry)
	if time.Now().After(entry.expiresAt) {
		m.data.Delete(key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.data.Store(key, &memoryCacheEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.data.Delete(key)
	return nil
}

func (m *MemoryCache) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	n := 0
	m.data.Range(func(key, _ interface{}) bool {
		if k := key.(string); strings.HasPrefix(k, prefix) {
			m.data.Delete(k)
			n++
		}
		return true
	})
	return n, nil
}

// Len returns the number of stored entries, expired ones included
func (m *MemoryCache) Len() int {
	n := 0
	m.data.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}

// Close stops the cleanup loop and waits for it to exit. Safe to call twice.
func (m *MemoryCache) Close() error {
	m.stopOnce.Do(func() { close(m.stopCh) })
	<-m.done
	return nil
}

func (m *MemoryCache) cleanupLoop() {
	defer close(m.done)
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.cleanup()
		}
	}
}

// cleanup drops expired entries, then the soonest-to-expire ones over maxSize
func (m *MemoryCache) cleanup() {
	now := time.Now()
	type live struct {
		key       string
		expiresAt time.Time
	}
	var entries []live

	m.data.Range(func(key, value interface{}) bool {
		k := key.(string)
		entry := value.(*memoryCacheEntry)
		if now.After(entry.expiresAt) {
			m.data.Delete(k)
		} else {
			entries = append(entries, live{k, entry.expiresAt})
		}
		return true
	})

	if len(entries) > m.maxSize {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].expiresAt.Before(entries[j].expiresAt)
		})
		for _, e := range entries[:len(entries)-m.maxSize] {
			m.data.Delete(e.key)
		}
	}
}
