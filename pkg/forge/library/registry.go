// Package library maintains an in-memory registry of rule documents
// loaded from a directory, with optional hot reload on file changes.
package library

import (
	"sort"
	"sync"
	"time"

	"rulesmith-hq/forge/pkg/forge/rule"
)

// Entry is one loaded rule and where it came from.
type Entry struct {
	Rule     *rule.Rule
	Path     string
	LoadedAt time.Time
}

// Registry is a concurrency-safe slug-indexed set of loaded rules.
// Reload replaces the whole set atomically, so readers never observe a
// half-loaded library.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Get returns the entry for a slug.
func (reg *Registry) Get(slug string) (*Entry, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	e, ok := reg.entries[slug]
	return e, ok
}

// Slugs returns all loaded slugs, sorted.
func (reg *Registry) Slugs() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	slugs := make([]string, 0, len(reg.entries))
	for slug := range reg.entries {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// Len returns the number of loaded rules.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.entries)
}

// Replace swaps in a freshly loaded entry set.
func (reg *Registry) Replace(entries map[string]*Entry) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.entries = entries
}
