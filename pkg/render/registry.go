package render

import (
	"fmt"
	"sync"
)

// Registry holds the page renderers an application can serve a settings
// page through, keyed by Name(). Registration order is preserved and the
// first renderer registered acts as the default, so callers can resolve an
// empty format selection without special-casing it.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	byName map[string]PageRenderer
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]PageRenderer),
	}
}

// Register adds a renderer under its Name(). Duplicate names return an
// error.
func (r *Registry) Register(renderer PageRenderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.byName[name] = renderer
	r.order = append(r.order, name)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer PageRenderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get resolves a renderer by name. An empty name returns the default
// renderer; unknown names list the registered alternatives.
func (r *Registry) Get(name string) (PageRenderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		return r.defaultLocked()
	}
	renderer, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("render: unknown renderer %q (have %v)", name, r.order)
	}
	return renderer, nil
}

// Default returns the first renderer registered.
func (r *Registry) Default() (PageRenderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultLocked()
}

func (r *Registry) defaultLocked() (PageRenderer, error) {
	if len(r.order) == 0 {
		return nil, fmt.Errorf("render: no renderers registered")
	}
	return r.byName[r.order[0]], nil
}

// Names returns the registered renderer names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Has reports whether a renderer is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byName[name]
	return ok
}
