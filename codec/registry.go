package codec

import (
	"slices"
	"sync"

	"github.com/arloliu/sparsa/format"
)

// Registry maps algorithm names to codec factories.
//
// Registration normally happens once at startup; lookups are safe for
// concurrent use afterwards. Every codec returned by Create is a fresh instance
// owned by the caller.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register stores factory under name, replacing any previous registration.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[name] = factory
}

// Create returns a new codec built by the factory registered under name.
//
// Returns:
//   - Codec: New codec instance
//   - bool: false if name is not registered, or its factory is nil or
//     returns nil
func (r *Registry) Create(name string) (Codec, bool) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok || factory == nil {
		return nil, false
	}

	c := factory()
	if c == nil {
		return nil, false
	}

	return c, true
}

// ListAlgorithms returns every registered name.
//
// The names are sorted for display; callers should treat the result as a set.
func (r *Registry) ListAlgorithms() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	r.mu.RUnlock()

	slices.Sort(names)

	return names
}

// RegisterBuiltins registers the seven built-in codecs under their mode names.
func RegisterBuiltins(r *Registry) {
	for _, mode := range format.Modes() {
		r.Register(mode.String(), func() Codec {
			c, _ := New(mode)
			return c
		})
	}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry holding the built-in codecs.
//
// It is populated on first use. Callers may register additional codecs on it.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		RegisterBuiltins(defaultRegistry)
	})

	return defaultRegistry
}
