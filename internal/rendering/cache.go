package rendering

import "sync"

// DefaultCacheSize bounds the number of memoized section trees
const DefaultCacheSize = 512

// Cache memoizes rendered section trees keyed by section kind and raw text.
// When full it is emptied and refilled.
type Cache struct {
	mu      sync.Mutex
	max     int
	entries map[string]Node
	hits    int
	misses  int
}

// NewCache creates a cache holding at most size entries (DefaultCacheSize if size <= 0)
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{max: size, entries: make(map[string]Node, size)}
}

func (c *Cache) get(key string) (Node, bool) {
	if c == nil {
		return Node{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	node, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return node, ok
}

func (c *Cache) put(key string, node Node) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.max {
		c.entries = make(map[string]Node, c.max)
	}
	c.entries[key] = node
}

// Stats returns the hit and miss counts since creation
func (c *Cache) Stats() (hits, misses int) {
	if c == nil {
		return 0, 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Len returns the number of cached entries
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
