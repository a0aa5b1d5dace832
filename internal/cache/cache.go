package cache

import (
	"sync"
	"time"
)

// Key identifies one (target, probe) pair.
type Key struct {
	Target string
	Probe  string
}

// Entry is the rendered exposition text block for one key, plus the time it
// was last written. The whole block is replaced under the lock, so readers
// never see a partially written entry.
type Entry struct {
	Text string
	At   time.Time
}

// Cache is the interface used by scheduler/metrics.
type Cache interface {
	Set(k Key, text string)
	Snapshot() map[Key]Entry
	DegradeAll(render func(Key) string)
}

// MemCache is an in-memory implementation of Cache. No eviction: entries
// live until overwritten or process restart.
type MemCache struct {
	mu   sync.RWMutex
	data map[Key]Entry
}

func NewMemCache() *MemCache {
	return &MemCache{
		data: make(map[Key]Entry),
	}
}

func (c *MemCache) Set(k Key, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[k] = Entry{Text: text, At: time.Now()}
}

func (c *MemCache) Snapshot() map[Key]Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[Key]Entry, len(c.data))
	for k, v := range c.data {
		out[k] = v
	}
	return out
}

// DegradeAll replaces every existing entry with whatever render produces for
// its key. Used when collection fails above the per-probe boundary, so the
// exposition endpoint keeps answering with an explanation instead of the
// process crashing.
func (c *MemCache) DegradeAll(render func(Key) string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k := range c.data {
		c.data[k] = Entry{Text: render(k), At: now}
	}
}
