package providers

import (
	"sort"
	"strings"
	"sync"
)

// Factory builds a provider instance. Construction may fail with ErrSchema
// when the declared schema is malformed.
type Factory func() (Provider, error)

// Registry maps provider names to factories. Names are normalized to
// lowercase and instances are built lazily on first lookup, then cached.
// Registration happens at program start; lookups are safe concurrently.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	instances map[string]Provider
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: map[string]Factory{},
		instances: map[string]Provider{},
	}
}

// Register adds a provider factory under its lowercase name.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[strings.ToLower(name)] = factory
}

// Lookup returns the named provider, constructing it on first use. The
// error is ErrNoSuchNotifier for unknown names, or the factory's own
// failure.
func (r *Registry) Lookup(name string) (Provider, error) {
	key := strings.ToLower(name)

	r.mu.RLock()
	if instance, ok := r.instances[key]; ok {
		r.mu.RUnlock()
		return instance, nil
	}
	factory, ok := r.factories[key]
	r.mu.RUnlock()
	if !ok {
		return nil, &ErrNoSuchNotifier{Name: name}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if instance, ok := r.instances[key]; ok {
		return instance, nil
	}
	instance, err := factory()
	if err != nil {
		return nil, err
	}
	r.instances[key] = instance
	return instance, nil
}

// Get is the permissive lookup: it returns nil for unknown names and
// swallows construction failures.
func (r *Registry) Get(name string) Provider {
	instance, err := r.Lookup(name)
	if err != nil {
		return nil
	}
	return instance
}

// Names returns the sorted list of registered provider names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
