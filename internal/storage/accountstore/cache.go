package accountstore

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedStore wraps a Store with an LRU of hot accounts, adapted from the
// teacher's internal/storage/nodestore cache used to avoid re-fetching
// recently touched SHAMap nodes. Here the hot set is the small, frequently
// re-read VerificationConfig / Rate / MintAuthority accounts touched by
// every dispatcher call.
type CachedStore struct {
	back  Store
	cache *lru.Cache[Key, []byte]
	mu    sync.Mutex
}

// NewCachedStore wraps back with an LRU cache holding up to size entries.
func NewCachedStore(back Store, size int) (*CachedStore, error) {
	c, err := lru.New[Key, []byte](size)
	if err != nil {
		return nil, err
	}
	return &CachedStore{back: back, cache: c}, nil
}

func (c *CachedStore) Get(ctx context.Context, key Key) ([]byte, error) {
	c.mu.Lock()
	if v, ok := c.cache.Get(key); ok {
		c.mu.Unlock()
		out := make([]byte, len(v))
		copy(out, v)
		return out, nil
	}
	c.mu.Unlock()

	v, err := c.back.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.cache.Add(key, v)
	c.mu.Unlock()
	return v, nil
}

func (c *CachedStore) Exists(ctx context.Context, key Key) (bool, error) {
	c.mu.Lock()
	if _, ok := c.cache.Get(key); ok {
		c.mu.Unlock()
		return true, nil
	}
	c.mu.Unlock()
	return c.back.Exists(ctx, key)
}

func (c *CachedStore) Create(ctx context.Context, key Key, data []byte) error {
	if err := c.back.Create(ctx, key, data); err != nil {
		return err
	}
	c.mu.Lock()
	c.cache.Add(key, data)
	c.mu.Unlock()
	return nil
}

func (c *CachedStore) Put(ctx context.Context, key Key, data []byte) error {
	if err := c.back.Put(ctx, key, data); err != nil {
		return err
	}
	c.mu.Lock()
	c.cache.Add(key, data)
	c.mu.Unlock()
	return nil
}

func (c *CachedStore) Delete(ctx context.Context, key Key) error {
	if err := c.back.Delete(ctx, key); err != nil {
		return err
	}
	c.mu.Lock()
	c.cache.Remove(key)
	c.mu.Unlock()
	return nil
}

func (c *CachedStore) Close() error {
	return c.back.Close()
}
