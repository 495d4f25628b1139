package theme

import (
	"fmt"
	"sort"
	"sync"

	gotheme "github.com/goliatone/go-theme"
)

// Registry stores themes by name. Manifests are mirrored into a go-theme
// registry so the same set can back go-theme selectors.
type Registry struct {
	mu       sync.RWMutex
	themes   map[string]*Theme
	provider gotheme.ThemeProvider
	register func(*gotheme.Manifest) error
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	manifests := gotheme.NewRegistry()
	return &Registry{
		themes:   make(map[string]*Theme),
		provider: manifests,
		register: manifests.Register,
	}
}

// Register adds a theme by name. Duplicate names return an error.
func (r *Registry) Register(t *Theme) error {
	if t == nil {
		return fmt.Errorf("theme: theme is required")
	}
	name := t.Name()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.themes[name]; exists {
		return fmt.Errorf("theme: %q already registered", name)
	}
	if err := r.register(t.Manifest()); err != nil {
		return fmt.Errorf("theme: register manifest %q: %w", name, err)
	}

	r.themes[name] = t
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(t *Theme) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Get retrieves a theme by name.
func (r *Registry) Get(name string) (*Theme, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.themes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return t, nil
}

// Names returns the registered theme names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Provider exposes the go-theme view of the registered manifests.
func (r *Registry) Provider() gotheme.ThemeProvider {
	return r.provider
}
