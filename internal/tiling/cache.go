package tiling

// CacheKey identifies a layout computation that can be reused verbatim:
// same algorithm, same window count and same geometric parameters
// always produce the same Result slice (Compute is pure), so the
// window manager only needs to recompute when one of these changes.
type CacheKey struct {
	Algorithm   Algorithm
	Count       int
	Width       uint32
	Height      uint32
	MasterRatio float64
	MasterCount int
	Gap         uint32
	Border      uint32
}

// Cache holds the single most recently computed layout, per spec.md
// §4.2 ("the tiling engine caches its last result; any change to the
// cache key invalidates it"). It is not safe for concurrent use;
// callers serialize access the same way they serialize the rest of
// the arrange path (§5, single event-loop goroutine).
type Cache struct {
	key    CacheKey
	result []Result
	valid  bool
}

// Get returns the cached results for key if they are still valid.
func (c *Cache) Get(key CacheKey) ([]Result, bool) {
	if !c.valid || c.key != key {
		return nil, false
	}
	return c.result, true
}

// Set stores result under key, replacing whatever was cached before.
func (c *Cache) Set(key CacheKey, result []Result) {
	c.key = key
	c.result = result
	c.valid = true
}

// Invalidate drops the cached entry unconditionally.
func (c *Cache) Invalidate() {
	c.valid = false
}

// KeyFor builds the CacheKey for a given Context and Algorithm.
func KeyFor(ctx Context, algo Algorithm) CacheKey {
	return CacheKey{
		Algorithm:   algo,
		Count:       ctx.Count,
		Width:       ctx.Area.W,
		Height:      ctx.Area.H,
		MasterRatio: ctx.MasterRatio,
		MasterCount: ctx.MasterCount,
		Gap:         ctx.Gap,
		Border:      ctx.Border,
	}
}

// ComputeCached is Compute with the cache consulted first.
func ComputeCached(c *Cache, ctx Context, algo Algorithm) []Result {
	key := KeyFor(ctx, algo)
	if cached, ok := c.Get(key); ok {
		return cached
	}
	result := Compute(ctx, algo)
	c.Set(key, result)
	return result
}
