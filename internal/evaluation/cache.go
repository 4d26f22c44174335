package evaluation

import (
	"container/list"
	"sync"

	"github.com/jonathan/careerreco/internal/types"
)

// DefaultCacheCapacity bounds the process-lifetime evaluation memo cache.
const DefaultCacheCapacity = 256

// verdictCache is a bounded LRU cache keyed by the exact (job text, resume
// text, model) triple. There is no invalidation beyond capacity eviction.
type verdictCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[string]*list.Element
}

type cacheEntry struct {
	key     string
	verdict *types.Verdict
}

func newVerdictCache(capacity int) *verdictCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &verdictCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element, capacity),
	}
}

func (c *verdictCache) get(key string) (*types.Verdict, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).verdict, true
}

func (c *verdictCache) put(key string, verdict *types.Verdict) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*cacheEntry).verdict = verdict
		return
	}

	elem := c.order.PushFront(&cacheEntry{key: key, verdict: verdict})
	c.entries[key] = elem

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

func (c *verdictCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
