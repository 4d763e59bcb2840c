package registry

import (
	"sync"
)

// Registry remembers which card names have been written and from which
// notes file, so duplicates across concurrently built files can be
// reported.
type Registry struct {
	mu   sync.RWMutex
	seen map[string]string // display name → first source
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		seen: make(map[string]string),
	}
}

// Lookup returns the source that first claimed name.
func (r *Registry) Lookup(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	source, ok := r.seen[name]
	return source, ok
}

// Claim records name for source. If name was already claimed it returns
// the first source and true; the first claim is kept.
func (r *Registry) Claim(name, source string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if first, ok := r.seen[name]; ok {
		return first, true
	}
	r.seen[name] = source
	return source, false
}

// Len returns the number of distinct names claimed.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.seen)
}
