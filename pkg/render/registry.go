package render

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-rowsummary/pkg/renderers/deflist"
)

// ErrRendererNotFound is returned by Registry.New for unknown names.
var ErrRendererNotFound = errors.New("render: renderer not found")

// Registry stores renderer factories by name, providing discovery and
// duplication safeguards.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Default returns a registry holding the built-in definition-list renderer.
func Default() *Registry {
	reg := NewRegistry()
	reg.MustRegister(deflist.Name, func(opts Options) (Renderer, error) {
		var options []deflist.Option
		if opts.ColumnSpan > 0 {
			options = append(options, deflist.WithColumnSpan(opts.ColumnSpan))
		}
		if opts.TemplatesDir != "" {
			options = append(options, deflist.WithTemplatesDir(opts.TemplatesDir))
		}
		return deflist.New(options...)
	})
	return reg
}

// Register adds a factory under name. Duplicate names return an error.
func (r *Registry) Register(name string, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("render: factory is required")
	}
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}

	r.factories[name] = factory
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// New builds the named renderer.
func (r *Registry) New(name string, opts Options) (Renderer, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	renderer, err := factory(opts)
	if err != nil {
		return nil, fmt.Errorf("render: build %q: %w", name, err)
	}
	return renderer, nil
}

// List returns a sorted list of renderer names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a renderer is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[name]
	return ok
}
