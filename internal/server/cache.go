package server

import (
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/samcharles93/keyinfo/internal/loader"
)

// Entry is one loaded terminal. Its table is read-only once cached.
type Entry struct {
	ID       string
	Name     string
	Path     string
	LoadedAt time.Time
	Result   *loader.Result
	Doc      loader.Document
}

// Cache holds loaded terminals by name.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*Entry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]*Entry)}
}

func (c *Cache) Get(name string) (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[name]
	return e, ok
}

// Put stores e unless another load for the same name won the race, in which
// case the stored entry is returned instead.
func (c *Cache) Put(e *Entry) *Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[e.Name]; ok {
		return existing
	}
	c.entries[e.Name] = e
	return e
}

func (c *Cache) Delete(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[name]; !ok {
		return false
	}
	delete(c.entries, name)
	return true
}

// EvictPath drops every entry loaded from path and returns their names.
func (c *Cache) EvictPath(path string) []string {
	path = filepath.Clean(path)
	c.mu.Lock()
	defer c.mu.Unlock()
	var names []string
	for name, e := range c.entries {
		if e.Path == path {
			delete(c.entries, name)
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Names lists the cached terminal names, sorted.
func (c *Cache) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.entries))
	for n := range c.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
