package texture

import (
	"image"
	"sort"
	"sync"
)

// Resolver resolves a texture name to a decoded RGBA image.
type Resolver interface {
	Resolve(texName string) *image.NRGBA
}

// Cache is a concurrency-safe texture cache shared by render workers.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	img *image.NRGBA
	err error // decode failure; img is nil
}

// NewCache creates a new texture cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Resolve loads and caches a texture by name. Returns nil if the name is not
// indexed or fails to decode; failures are cached too.
func (c *Cache) Resolve(texName string) *image.NRGBA {
	path, ok := c.index.ResolvePath(texName)
	if !ok {
		return nil
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, err := LoadTexture(path)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.img
	}
	c.items[path] = &cacheEntry{img: img, err: err}
	return img
}

// Failures returns the decode errors seen so far, ordered by path.
func (c *Cache) Failures() []error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	paths := make([]string, 0, len(c.items))
	for p, e := range c.items {
		if e.err != nil {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	errs := make([]error, len(paths))
	for i, p := range paths {
		errs[i] = c.items[p].err
	}
	return errs
}
