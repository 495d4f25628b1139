package hierarchy

import (
	"sort"
	"sync"
)

const eventSuffix = "_template_hierarchy"

// Types lists the template types whose hierarchy can be filtered, in the
// order the host resolves them.
var Types = []string{
	"index",
	"404",
	"archive",
	"author",
	"category",
	"tag",
	"taxonomy",
	"date",
	"embed",
	"home",
	"frontpage",
	"page",
	"paged",
	"search",
	"single",
	"singular",
	"attachment",
}

// Event returns the filter event name for a template type.
func Event(typ string) string {
	return typ + eventSuffix
}

// Filter receives an ordered list of candidate templates (highest priority
// first) and returns the list to use instead.
type Filter func(templates []string) []string

// Registry stores filters by event name. Filters registered for the same
// event run in registration order, each receiving the previous result.
type Registry struct {
	mu      sync.RWMutex
	filters map[string][]Filter
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		filters: make(map[string][]Filter),
	}
}

// Add registers fn for event. Nil filters are ignored.
func (r *Registry) Add(event string, fn Filter) {
	if fn == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.filters[event] = append(r.filters[event], fn)
}

// Has reports whether any filter is registered for event.
func (r *Registry) Has(event string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.filters[event]) > 0
}

// Count returns the number of filters registered for event.
func (r *Registry) Count(event string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.filters[event])
}

// Apply runs the filters for event over templates. The input slice is never
// modified; with no filters a copy of it is returned.
func (r *Registry) Apply(event string, templates []string) []string {
	r.mu.RLock()
	filters := append([]Filter(nil), r.filters[event]...)
	r.mu.RUnlock()

	out := append([]string(nil), templates...)
	for _, fn := range filters {
		out = fn(append([]string(nil), out...))
	}
	return out
}

// Events returns the event names that have filters, sorted.
func (r *Registry) Events() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.filters))
	for name := range r.filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Locator returns the first existing file among candidates, or "".
type Locator func(candidates ...string) string

// Query filters the hierarchy for typ and returns the first template that
// locate finds. A nil registry leaves the hierarchy untouched.
func Query(r *Registry, typ string, templates []string, locate Locator) string {
	if locate == nil {
		return ""
	}
	if r != nil {
		templates = r.Apply(Event(typ), templates)
	}
	return locate(templates...)
}
