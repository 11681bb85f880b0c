// Package rulecache memoizes compiled glob rules so repeated queries
// with the same pattern skip recompilation.
package rulecache

import (
	"container/list"
	"sync"

	"github.com/revittco/datapath/internal/index"
)

// Cache is an LRU cache of compiled rules keyed by pattern text, with
// built-in singleflight so concurrent lookups of the same pattern
// compile it once. Compilation failures are not cached; compiling is
// deterministic and cheap to fail again.
type Cache struct {
	mu         sync.Mutex
	items      map[string]*list.Element
	evictList  *list.List
	maxEntries int
	stats      Stats

	// in-progress compiles keyed by pattern
	inflight map[string]*call
}

type entry struct {
	pattern string
	rule    *index.Rule
}

type call struct {
	wg   sync.WaitGroup
	rule *index.Rule
	err  error
}

// Stats is a snapshot of cache performance counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Entries   int
	HitRate   float64
}

// New creates a rule cache holding at most maxEntries compiled rules.
func New(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &Cache{
		items:      make(map[string]*list.Element),
		evictList:  list.New(),
		maxEntries: maxEntries,
		inflight:   make(map[string]*call),
	}
}

// Get returns the compiled rule for pattern, compiling and caching it
// on a miss. Concurrent calls for the same pattern share one compile.
func (c *Cache) Get(pattern string) (*index.Rule, error) {
	c.mu.Lock()
	if el, ok := c.items[pattern]; ok {
		c.evictList.MoveToFront(el)
		c.stats.Hits++
		rule := el.Value.(*entry).rule
		c.mu.Unlock()
		return rule, nil
	}
	c.stats.Misses++

	if cl, ok := c.inflight[pattern]; ok {
		c.mu.Unlock()
		cl.wg.Wait()
		return cl.rule, cl.err
	}

	cl := &call{}
	cl.wg.Add(1)
	c.inflight[pattern] = cl
	c.mu.Unlock()

	cl.rule, cl.err = index.NewRule(pattern)

	c.mu.Lock()
	delete(c.inflight, pattern)
	if cl.err == nil {
		c.addLocked(pattern, cl.rule)
	}
	c.mu.Unlock()

	cl.wg.Done()
	return cl.rule, cl.err
}

// Len returns the number of cached rules.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Flush removes all cached rules.
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.evictList.Init()
}

// Stats returns a snapshot of cache statistics.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Entries = len(c.items)
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total)
	}
	return s
}

func (c *Cache) addLocked(pattern string, rule *index.Rule) {
	if el, ok := c.items[pattern]; ok {
		c.evictList.MoveToFront(el)
		el.Value.(*entry).rule = rule
		return
	}
	el := c.evictList.PushFront(&entry{pattern: pattern, rule: rule})
	c.items[pattern] = el

	for c.evictList.Len() > c.maxEntries {
		oldest := c.evictList.Back()
		if oldest == nil {
			break
		}
		delete(c.items, oldest.Value.(*entry).pattern)
		c.evictList.Remove(oldest)
		c.stats.Evictions++
	}
}
