package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Local is an in-process Cache. Invalidations are only seen by this process,
// so it is meant for single-replica deployments.
type Local struct {
	store *ristretto.Cache[string, []byte]

	mu          sync.Mutex
	generations map[string]int64 // never evicted, unlike store entries
}

// NewLocal creates a cache holding roughly maxEntries listings.
func NewLocal(maxEntries int64) (*Local, error) {
	store, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: maxEntries * 10, // keys to track frequency of
		MaxCost:     maxEntries,
		BufferItems: 64, // keys per Get buffer
	})
	if err != nil {
		return nil, err
	}
	return &Local{store: store, generations: make(map[string]int64)}, nil
}

func (c *Local) Get(_ context.Context, key string, dest any) (bool, error) {
	b, ok := c.store.Get(key)
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (c *Local) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.store.SetWithTTL(key, b, 1, ttl)
	// Sets are buffered; wait so the next Get observes this write.
	c.store.Wait()
	return nil
}

func (c *Local) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		c.store.Del(key)
	}
	return nil
}

func (c *Local) Generation(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[key], nil
}

func (c *Local) Bump(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[key]++
	return c.generations[key], nil
}

// Close stops the cache's background goroutines.
func (c *Local) Close() {
	c.store.Close()
}
