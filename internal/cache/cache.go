// Package cache implements C8: the latest-wins metric store. A single
// writer (the dispatch loop) calls Add after every MQTT message; any
// number of readers (HTTP scrape handlers) call Visit concurrently. Each
// entry is replaced as a whole, so a reader never observes a torn mix of
// an old value with new labels or vice versa (the concurrency model's
// per-entry atomicity requirement).
package cache

import (
	"sort"
	"sync"

	"github.com/yafiyogi/yy-mqtt-bridge/internal/metric"
)

type key struct {
	id        metric.Id
	labelsKey string
}

// Cache is safe for one writer and many concurrent readers.
type Cache struct {
	mu   sync.RWMutex
	data map[key]*metric.Data
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{data: make(map[key]*metric.Data)}
}

// Add inserts or replaces every entry in vec, keyed by (metric id, label
// set). vec's entries must already be independently owned (Metric.Event
// clones before appending), since the cache retains the pointers directly.
func (c *Cache) Add(vec *metric.Vector) {
	items := vec.Items()
	if len(items) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range items {
		c.data[key{id: d.Id, labelsKey: d.Labels.Key()}] = d
	}
}

// Len reports the number of distinct (id, labels) entries currently
// cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Visit calls fn once per cached entry, in the stable rendering order
// spec §3 defines: grouped by metric id name, then location, then by the
// label set's lexicographic (name, value) order. fn must not retain the
// *metric.Data it is given past the call, nor mutate it.
func (c *Cache) Visit(fn func(d *metric.Data)) {
	c.mu.RLock()
	items := make([]*metric.Data, 0, len(c.data))
	for _, d := range c.data {
		items = append(items, d)
	}
	c.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Id.Name != b.Id.Name {
			return a.Id.Name < b.Id.Name
		}
		if a.Id.Location != b.Id.Location {
			return a.Id.Location < b.Id.Location
		}
		return a.Labels.Key() < b.Labels.Key()
	})

	for _, d := range items {
		fn(d)
	}
}
