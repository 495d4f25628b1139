package template

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Engines stores renderer factories by name so callers (and the CLI) can pick
// a template language at runtime.
type Engines struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewEngines creates an empty engine registry.
func NewEngines() *Engines {
	return &Engines{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory by name. Duplicate names return an error.
func (e *Engines) Register(name string, factory Factory) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("template: engine name is required")
	}
	if factory == nil {
		return fmt.Errorf("template: engine %q factory is required", name)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.factories[name]; exists {
		return fmt.Errorf("template: engine %q already registered", name)
	}
	e.factories[name] = factory
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (e *Engines) MustRegister(name string, factory Factory) {
	if err := e.Register(name, factory); err != nil {
		panic(err)
	}
}

// Get retrieves a factory by name.
func (e *Engines) Get(name string) (Factory, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	factory, ok := e.factories[name]
	if !ok {
		return nil, fmt.Errorf("template: engine %q not found", name)
	}
	return factory, nil
}

// List returns the registered engine names, sorted.
func (e *Engines) List() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.factories))
	for name := range e.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
