// Package cache keeps parsed configurations in memory, keyed by the
// canonical path of the file they came from. Entries go stale when they
// outlive the cache's max age or, when modification checks are enabled,
// when the file's mtime no longer matches the one recorded at load time.
// Staleness is evaluated lazily on access; there are no background timers.
package cache

import (
	"container/heap"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/lc/folio/internal/clock"
	"github.com/lc/folio/internal/config"
	"github.com/lc/folio/internal/filesys"
	"github.com/lc/folio/internal/log"
)

// DefaultMaxAge is the TTL of the process-wide cache.
const DefaultMaxAge = 5 * time.Minute

var global = sync.OnceValue(func() *Cache {
	return New(DefaultMaxAge, true)
})

// Global returns the process-wide cache, built on first use with
// DefaultMaxAge and modification checks enabled. Every caller gets the same
// instance. Tests that need isolation should construct their own with New.
func Global() *Cache { return global() }

// Option configures a Cache.
type Option func(*Cache)

// WithLoader replaces the loader used on a miss.
func WithLoader(p config.Provider) Option {
	return func(c *Cache) { c.loader = p }
}

// WithFS replaces the filesystem used to stat configuration files.
func WithFS(fs filesys.StatFS) Option {
	return func(c *Cache) { c.fs = fs }
}

// WithClock replaces the clock used to age entries.
func WithClock(clk clock.Clock) Option {
	return func(c *Cache) { c.clock = clk }
}

// Cache is a path-keyed store of loaded configurations.
// It is safe for concurrent use.
type Cache struct {
	maxAge        time.Duration
	checkModified bool
	loader        config.Provider
	fs            filesys.StatFS
	clock         clock.Clock

	mu      sync.RWMutex      // protects fields below
	entries map[string]*entry // canonical path -> entry
	expH    expiryHeap        // min-heap keyed by .loadedAt
	gen     uint64            // bumped by Clear

	hits   atomic.Int64
	misses atomic.Int64
	loads  atomic.Int64
}

// New creates an independent cache. maxAge bounds how long an entry is
// trusted regardless of the file's state. checkModified additionally stats
// the file on every access and reloads it when its mtime has changed; with
// it disabled, edits stay invisible until maxAge lapses or Clear is called.
func New(maxAge time.Duration, checkModified bool, opts ...Option) *Cache {
	c := &Cache{
		maxAge:        maxAge,
		checkModified: checkModified,
		loader:        config.NewLoader(filesys.OS()),
		fs:            filesys.OS(),
		clock:         clock.Real(),
		entries:       make(map[string]*entry),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Stats is a point-in-time view of cache activity.
type Stats struct {
	Entries int
	Hits    int64
	Misses  int64
	// Loads counts loader invocations, successful or not.
	Loads int64
}

// EntryInfo describes a cached entry.
type EntryInfo struct {
	Path     string
	LoadedAt time.Time
	ModTime  time.Time
}

// entry is immutable once published in entries, apart from heapIdx which
// is only touched under mu. A reload publishes a new entry.
type entry struct {
	key      string
	cfg      *config.Config
	modTime  time.Time
	loadedAt time.Time
	// index inside expiryHeap for O(log n) removal.
	heapIdx int
}

// CanonicalPath returns the cache key for path: absolute, cleaned, and
// with symlinks resolved when the file exists.
func CanonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// Get returns the configuration at path, loading it on a miss. A failed
// load is returned as-is and leaves the cache untouched, so the next call
// retries from scratch.
func (c *Cache) Get(path string) (*config.Config, error) {
	key := CanonicalPath(path)

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok {
		reason := c.staleReason(e)
		if reason == "" {
			c.hits.Inc()
			log.Debug("config cache hit", "path", key)
			return e.cfg, nil
		}
		log.Debug("config cache stale", "path", key, "reason", reason)
	}
	c.misses.Inc()
	return c.load(key)
}

// staleReason returns why e can no longer be served, or "" if it is fresh.
func (c *Cache) staleReason(e *entry) string {
	if c.clock.Now().Sub(e.loadedAt) > c.maxAge {
		return "max age exceeded"
	}
	if !c.checkModified {
		return ""
	}
	info, err := c.fs.Stat(e.key)
	if err != nil {
		return "stat failed: " + err.Error()
	}
	if !info.ModTime().Equal(e.modTime) {
		return "file modified"
	}
	return ""
}

func (c *Cache) load(key string) (*config.Config, error) {
	// Stat before reading: if the file changes in between, the recorded
	// mtime is the older one and the next access reloads.
	var modTime time.Time
	if info, err := c.fs.Stat(key); err == nil {
		modTime = info.ModTime()
	}

	c.mu.RLock()
	gen := c.gen
	c.mu.RUnlock()

	c.loads.Inc()
	cfg, err := c.loader.Load(key)
	if err != nil {
		log.Debug("config cache load failed", "path", key, "error", err)
		return nil, err
	}

	e := &entry{
		key:      key,
		cfg:      cfg,
		modTime:  modTime,
		loadedAt: c.clock.Now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// A Clear that ran during the load wins: the caller still gets cfg,
	// but it is not published.
	if c.gen != gen {
		log.Debug("config cache load discarded after clear", "path", key)
		return cfg, nil
	}
	if old, ok := c.entries[key]; ok {
		heap.Remove(&c.expH, old.heapIdx)
	}
	c.entries[key] = e
	heap.Push(&c.expH, e)

	log.Debug("config cache loaded", "path", key)
	return cfg, nil
}

// Clear evicts every entry. The next Get on any path is a miss, including
// paths whose load was still in flight when Clear was called.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	c.entries = make(map[string]*entry)
	c.expH = nil
	c.gen++
	log.Debug("config cache cleared", "evicted", n)
}

// Prune evicts entries older than the max age and returns how many were
// removed. Get never serves such entries anyway; Prune only releases them.
func (c *Cache) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	var n int
	// Keep popping while the oldest entry has outlived maxAge.
	for c.expH.Len() > 0 {
		if now.Sub(c.expH[0].loadedAt) <= c.maxAge {
			break
		}
		popped := heap.Pop(&c.expH)
		e, ok := popped.(*entry)
		if !ok {
			continue
		}
		delete(c.entries, e.key)
		n++
	}
	if n > 0 {
		log.Debug("config cache pruned", "evicted", n)
	}
	return n
}

// Lookup reports what the cache holds for path without loading or
// checking freshness.
func (c *Cache) Lookup(path string) (EntryInfo, bool) {
	key := CanonicalPath(path)

	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return EntryInfo{}, false
	}
	return EntryInfo{Path: e.key, LoadedAt: e.loadedAt, ModTime: e.modTime}, true
}

// Len returns the number of cached entries, fresh or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns hit/miss/load counters and the current entry count.
func (c *Cache) Stats() Stats {
	return Stats{
		Entries: c.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Loads:   c.loads.Load(),
	}
}

// expiryHeap is a min-heap ordered by entry.loadedAt. Every entry shares
// the cache's maxAge, so load order is also expiry order.
//
// Concurrency: the heap is *not* thread-safe. All access is protected by
// Cache.mu.
type expiryHeap []*entry

var _ heap.Interface = (*expiryHeap)(nil)

func (h expiryHeap) Len() int { return len(h) }

func (h expiryHeap) Less(i, j int) bool {
	return h[i].loadedAt.Before(h[j].loadedAt)
}

func (h expiryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIdx, h[j].heapIdx = i, j
}

func (h *expiryHeap) Push(x any) {
	e, ok := x.(*entry)
	if !ok {
		return
	}
	e.heapIdx = len(*h)
	*h = append(*h, e)
}

func (h *expiryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.heapIdx = -1 // no longer in heap
	*h = old[:n-1]
	return e
}
