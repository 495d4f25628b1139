package hierarchy_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-viewloader/pkg/hierarchy"
)

func TestEvent(t *testing.T) {
	if got := hierarchy.Event("single"); got != "single_template_hierarchy" {
		t.Fatalf("unexpected event name %q", got)
	}
}

func TestTypes(t *testing.T) {
	if len(hierarchy.Types) != 17 {
		t.Fatalf("expected 17 template types, got %d", len(hierarchy.Types))
	}
	if hierarchy.Types[0] != "index" || hierarchy.Types[len(hierarchy.Types)-1] != "attachment" {
		t.Fatalf("unexpected type ordering: %v", hierarchy.Types)
	}
}

func TestRegistry_ApplyChainsFilters(t *testing.T) {
	registry := hierarchy.NewRegistry()
	event := hierarchy.Event("page")

	registry.Add(event, func(templates []string) []string {
		return append(templates, "first.tpl")
	})
	registry.Add(event, func(templates []string) []string {
		return append([]string{"second.tpl"}, templates...)
	})
	registry.Add(event, nil)

	in := []string{"page.tpl"}
	got := registry.Apply(event, in)

	want := []string{"second.tpl", "page.tpl", "first.tpl"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("apply mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"page.tpl"}, in); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}
	if registry.Count(event) != 2 {
		t.Fatalf("expected 2 filters, got %d", registry.Count(event))
	}
}

func TestRegistry_ApplyWithoutFiltersCopies(t *testing.T) {
	registry := hierarchy.NewRegistry()
	in := []string{"a.tpl", "b.tpl"}

	got := registry.Apply("unknown", in)
	got[0] = "changed"

	if in[0] != "a.tpl" {
		t.Fatalf("expected a copy of the input")
	}
	if registry.Has("unknown") {
		t.Fatalf("unexpected filter for unknown event")
	}
}

func TestRegistry_Events(t *testing.T) {
	registry := hierarchy.NewRegistry()
	identity := func(templates []string) []string { return templates }
	registry.Add(hierarchy.Event("single"), identity)
	registry.Add(hierarchy.Event("archive"), identity)

	want := []string{"archive_template_hierarchy", "single_template_hierarchy"}
	if diff := cmp.Diff(want, registry.Events()); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestQuery(t *testing.T) {
	registry := hierarchy.NewRegistry()
	registry.Add(hierarchy.Event("search"), func(templates []string) []string {
		return append(templates, "layout/search.tpl")
	})

	var seen []string
	locate := func(candidates ...string) string {
		seen = candidates
		for _, c := range candidates {
			if c == "layout/search.tpl" {
				return c
			}
		}
		return ""
	}

	if got := hierarchy.Query(registry, "search", []string{"search.tpl"}, locate); got != "layout/search.tpl" {
		t.Fatalf("query mismatch: got %q", got)
	}
	if diff := cmp.Diff([]string{"search.tpl", "layout/search.tpl"}, seen); diff != "" {
		t.Fatalf("locate candidates mismatch (-want +got):\n%s", diff)
	}

	if got := hierarchy.Query(nil, "search", []string{"search.tpl"}, locate); got != "" {
		t.Fatalf("expected no match without filters, got %q", got)
	}
	if got := hierarchy.Query(registry, "search", nil, nil); got != "" {
		t.Fatalf("expected empty result for nil locator")
	}
}
