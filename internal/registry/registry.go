// Package registry implements the identity-keyed change-tracking store: a
// side table mapping stable element handles to the last label the engine
// observed for them. It holds handles and strings only, never the elements
// themselves, so it cannot keep host objects alive.
package registry

import "sync"

// Registry maps element identity handles to last-known labels. A missing key
// simply means "never observed". Entries are evicted when the host signals
// element removal; without that signal they live for the engine's lifetime.
type Registry struct {
	mu     sync.Mutex
	labels map[uint64]string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{labels: make(map[uint64]string)}
}

// Get returns the last-known label for id, and whether one exists.
func (r *Registry) Get(id uint64) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	label, ok := r.labels[id]
	return label, ok
}

// Set records the most recently observed label for id, creating the entry on
// first observation.
func (r *Registry) Set(id uint64, label string) {
	r.mu.Lock()
	r.labels[id] = label
	r.mu.Unlock()
}

// Evict drops the entry for id. Evicting an unknown id is a no-op.
func (r *Registry) Evict(id uint64) {
	r.mu.Lock()
	delete(r.labels, id)
	r.mu.Unlock()
}

// Len returns the number of tracked elements.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.labels)
}
