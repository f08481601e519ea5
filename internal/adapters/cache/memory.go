package cache

import (
	"context"
	"sync"
	"time"

	"github.com/beyondeth/shop/internal/core/port"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryQueryCache - кэш запросов в памяти процесса, используется когда Redis не настроен.
type MemoryQueryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

var _ port.QueryCachePort = (*MemoryQueryCache)(nil)

func NewMemoryQueryCache() *MemoryQueryCache {
	return &MemoryQueryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryQueryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (c *MemoryQueryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{value: value, expiresAt: c.now().Add(ttl)}
	return nil
}

// Purge удаляет просроченные записи.
func (c *MemoryQueryCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}
