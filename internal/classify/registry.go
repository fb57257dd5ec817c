package classify

import (
	"fmt"
	"sync"
)

// Registry holds compiled descriptors in registration order. Order is
// part of the contract: the factory breaks score ties in favor of the
// earliest-registered descriptor.
type Registry struct {
	mu       sync.RWMutex
	matchers []*matcher
	ids      map[string]bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ids: map[string]bool{}}
}

// Register compiles a descriptor's patterns and appends it. Bad glob
// patterns and duplicate IDs are rejected.
func (r *Registry) Register(desc Descriptor) error {
	if desc.ID == "" {
		return fmt.Errorf("classify: descriptor requires an ID")
	}
	m, err := compileMatcher(desc)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ids[desc.ID] {
		return fmt.Errorf("classify: descriptor %q already registered", desc.ID)
	}
	r.ids[desc.ID] = true
	r.matchers = append(r.matchers, m)
	return nil
}

// IDs returns the registered descriptor IDs in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.matchers))
	for _, m := range r.matchers {
		out = append(out, m.desc.ID)
	}
	return out
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.matchers)
}

func (r *Registry) snapshot() []*matcher {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*matcher, len(r.matchers))
	copy(out, r.matchers)
	return out
}
