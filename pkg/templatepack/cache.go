package templatepack

import "sync"

// MemoCache memoizes loaded packs by requested id. It is safe for concurrent
// use; concurrent first loads of the same id are last-writer-wins, which is
// harmless because loads are deterministic.
type MemoCache struct {
	mu    sync.RWMutex
	packs map[string]*Pack
}

// NewMemoCache creates an empty cache.
func NewMemoCache() *MemoCache {
	return &MemoCache{packs: make(map[string]*Pack)}
}

// Get returns the cached pack for id.
func (c *MemoCache) Get(id string) (*Pack, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.packs[id]
	return p, ok
}

// Put stores p under id.
func (c *MemoCache) Put(id string, p *Pack) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.packs[id] = p
}

// Clear drops every entry.
func (c *MemoCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.packs = make(map[string]*Pack)
}

// Len returns the number of cached packs.
func (c *MemoCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.packs)
}
