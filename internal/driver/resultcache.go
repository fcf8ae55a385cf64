package driver

import (
	"sync"

	"lintel/internal/diag"
)

// per-process cache by path + content digest
type cached struct {
	key   Digest
	diags []diag.Diagnostic
}

// ResultCache keeps check results in memory so repeated runs inside one
// process (fix iterations, watch-style callers) skip unchanged files.
type ResultCache struct {
	mu     sync.RWMutex
	byPath map[string]cached
}

// NewResultCache creates a ResultCache with the given capacity hint.
func NewResultCache(capHint int) *ResultCache {
	return &ResultCache{byPath: make(map[string]cached, capHint)}
}

// Get returns the diagnostics stored for path if they were computed under key.
// Spans carry the file ID of the run that stored them.
func (c *ResultCache) Get(path string, key Digest) ([]diag.Diagnostic, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	rec, ok := c.byPath[path]
	c.mu.RUnlock()
	if !ok || rec.key != key {
		return nil, false
	}
	return rec.diags, true
}

// Put records the diagnostics of path, replacing older entries.
func (c *ResultCache) Put(path string, key Digest, diags []diag.Diagnostic) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.byPath[path] = cached{key: key, diags: diags}
	c.mu.Unlock()
}

// Len returns the number of cached files.
func (c *ResultCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byPath)
}
