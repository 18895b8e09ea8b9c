package ui

import (
	"hash/fnv"
	"math"
	"sync"
)

// RenderCache provides hash-based caching for rendered dashboards. View is
// called on every spinner frame and key press, while the dashboard only
// changes with the result, the width or the theme.
type RenderCache struct {
	mu      sync.Mutex
	entries map[uint64]string
	maxSize int
}

// NewRenderCache creates a new render cache holding at most maxSize entries.
func NewRenderCache(maxSize int) *RenderCache {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &RenderCache{
		entries: make(map[uint64]string),
		maxSize: maxSize,
	}
}

// computeHash computes a FNV-1a hash for cache keys.
// Supported types: string, int, float64, bool. Others are ignored.
func computeHash(inputs ...interface{}) uint64 {
	h := fnv.New64a()
	var b [8]byte

	putUint := func(u uint64) {
		for i := range b {
			b[i] = byte(u >> (8 * i))
		}
		h.Write(b[:])
	}

	for _, input := range inputs {
		switch v := input.(type) {
		case string:
			putUint(uint64(len(v)))
			h.Write([]byte(v))
		case int:
			putUint(uint64(v))
		case float64:
			putUint(math.Float64bits(v))
		case bool:
			if v {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}

	return h.Sum64()
}

// ComputeKey generates a cache key from multiple inputs.
func ComputeKey(inputs ...interface{}) uint64 {
	return computeHash(inputs...)
}

// Get retrieves cached content if available.
func (rc *RenderCache) Get(key uint64) (string, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	content, ok := rc.entries[key]
	return content, ok
}

// Set stores rendered content. A full cache is emptied first.
func (rc *RenderCache) Set(key uint64, content string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if _, ok := rc.entries[key]; !ok && len(rc.entries) >= rc.maxSize {
		rc.entries = make(map[uint64]string)
	}
	rc.entries[key] = content
}

// Len returns the number of cached entries.
func (rc *RenderCache) Len() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.entries)
}

// Clear empties the cache.
func (rc *RenderCache) Clear() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.entries = make(map[uint64]string)
}

// GetOrCompute retrieves from cache or computes if missing.
func (rc *RenderCache) GetOrCompute(key uint64, compute func() string) string {
	if content, ok := rc.Get(key); ok {
		return content
	}
	content := compute()
	rc.Set(key, content)
	return content
}

// CachedRender wraps a render function with caching.
type CachedRender struct {
	cache      *RenderCache
	lastKey    uint64
	lastResult string
}

// NewCachedRender creates a new cached render wrapper.
func NewCachedRender(cache *RenderCache) *CachedRender {
	if cache == nil {
		cache = NewRenderCache(8)
	}
	return &CachedRender{cache: cache}
}

// Render executes renderFunc unless keyInputs match a cached render.
func (cr *CachedRender) Render(keyInputs []interface{}, renderFunc func() string) string {
	key := ComputeKey(keyInputs...)

	// Fast path: same as last render.
	if key == cr.lastKey && cr.lastResult != "" {
		return cr.lastResult
	}

	result := cr.cache.GetOrCompute(key, renderFunc)
	cr.lastKey = key
	cr.lastResult = result
	return result
}

// Invalidate forgets the last render and empties the cache.
func (cr *CachedRender) Invalidate() {
	cr.lastKey = 0
	cr.lastResult = ""
	cr.cache.Clear()
}
