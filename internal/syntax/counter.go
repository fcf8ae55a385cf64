package syntax

import (
	"runtime"
	"sync/atomic"
)

// Counter records green allocations made through a NodeCache. Tests own
// the counter and pass it in; production code passes nil.
type Counter struct {
	nodes  atomic.Int64
	tokens atomic.Int64
	hits   atomic.Int64
	live   atomic.Int64
}

// Nodes returns the number of green nodes allocated.
func (c *Counter) Nodes() int64 { return c.nodes.Load() }

// Tokens returns the number of green tokens allocated.
func (c *Counter) Tokens() int64 { return c.tokens.Load() }

// Hits returns how many requests were served from the cache.
func (c *Counter) Hits() int64 { return c.hits.Load() }

// Live returns allocations not yet reclaimed by the garbage collector.
// Reclamation is observed through cleanups and lags behind runtime.GC.
func (c *Counter) Live() int64 { return c.live.Load() }

func (c *Counter) hit() {
	if c != nil {
		c.hits.Add(1)
	}
}

func (c *Counter) trackNode(n *GreenNode) {
	if c == nil {
		return
	}
	c.nodes.Add(1)
	c.live.Add(1)
	runtime.AddCleanup(n, func(c *Counter) { c.live.Add(-1) }, c)
}

func (c *Counter) trackToken(t *GreenToken) {
	if c == nil {
		return
	}
	c.tokens.Add(1)
	c.live.Add(1)
	runtime.AddCleanup(t, func(c *Counter) { c.live.Add(-1) }, c)
}
