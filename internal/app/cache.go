package app

import "sync"

// renderCache keeps rendered chart bytes keyed by a digest of the inputs,
// so toggling options back and forth in the UI does not re-render.
type renderCache struct {
	mu  sync.RWMutex
	m   map[string][]byte
	max int
}

func newRenderCache() *renderCache {
	return &renderCache{m: make(map[string][]byte), max: 32}
}

func (c *renderCache) get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[key]
	return v, ok
}

func (c *renderCache) put(key string, v []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.m) >= c.max {
		// Drop everything rather than track recency; renders are cheap
		// enough that a cold cache only costs one redraw.
		c.m = make(map[string][]byte)
	}
	c.m[key] = v
}
