package sampler

import (
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache loads each instrument directory at most once and shares the result.
// Concurrent requests for a directory that is still loading wait for the
// same load. Failed loads are not cached.
type Cache struct {
	opts  []Option
	group singleflight.Group

	mu   sync.RWMutex
	sets map[string]Set
}

// NewCache returns an empty cache; opts are passed to every Load.
func NewCache(opts ...Option) *Cache {
	return &Cache{
		opts: opts,
		sets: make(map[string]Set),
	}
}

// Get returns the sample set for dir, loading it on first use.
func (c *Cache) Get(dir string) (Set, error) {
	key := filepath.Clean(dir)

	c.mu.RLock()
	set, ok := c.sets[key]
	c.mu.RUnlock()
	if ok {
		return set, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		c.mu.RLock()
		set, ok := c.sets[key]
		c.mu.RUnlock()
		if ok {
			return set, nil
		}

		set, err := Load(dir, c.opts...)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.sets[key] = set
		c.mu.Unlock()
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Set), nil
}

// Forget drops dir from the cache so the next Get reloads it.
func (c *Cache) Forget(dir string) {
	c.mu.Lock()
	delete(c.sets, filepath.Clean(dir))
	c.mu.Unlock()
}

// Len returns the number of cached directories.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sets)
}
