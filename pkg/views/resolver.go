package views

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-viewloader/pkg/hierarchy"
	rendertemplate "github.com/goliatone/go-viewloader/pkg/render/template"
	"github.com/goliatone/go-viewloader/pkg/render/template/pongo"
	"github.com/goliatone/go-viewloader/pkg/theme"
)

const (
	viewHelper    = "view"
	partialHelper = "partial"
)

// Resolver locates views inside the active theme and renders them. It is
// safe for concurrent use once constructed.
type Resolver struct {
	cfg      Config
	active   *theme.Theme
	renderer rendertemplate.TemplateRenderer
	filters  *hierarchy.Registry
	globals  map[string]any
	logger   *slog.Logger
}

// New constructs a Resolver for the active theme. Missing dependencies are
// initialised with the built-in implementations.
func New(active *theme.Theme, options ...Option) (*Resolver, error) {
	if active == nil {
		return nil, errors.New("views: active theme is required")
	}

	r := &Resolver{active: active}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	r.cfg = r.cfg.Merge(DefaultConfig())

	if r.filters == nil {
		r.filters = hierarchy.NewRegistry()
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.renderer == nil {
		engine, err := pongo.New(pongo.WithFS(active.FS()), pongo.WithExtension(r.cfg.Extension))
		if err != nil {
			return nil, fmt.Errorf("views: create renderer: %w", err)
		}
		r.renderer = engine
	}
	if len(r.globals) > 0 {
		if err := r.renderer.GlobalContext(r.globals); err != nil {
			return nil, fmt.Errorf("views: apply globals: %w", err)
		}
	}
	if registrar, ok := r.renderer.(rendertemplate.HelperRegistrar); ok {
		if err := registrar.RegisterHelper(viewHelper, r.viewHelper); err != nil {
			return nil, fmt.Errorf("views: register %s helper: %w", viewHelper, err)
		}
		if err := registrar.RegisterHelper(partialHelper, r.partialHelper); err != nil {
			return nil, fmt.Errorf("views: register %s helper: %w", partialHelper, err)
		}
	}

	return r, nil
}

// Config returns the effective configuration.
func (r *Resolver) Config() Config {
	return r.cfg
}

// Theme returns the active theme.
func (r *Resolver) Theme() *theme.Theme {
	return r.active
}

// Filters returns the hierarchy filter registry the resolver hooks into.
func (r *Resolver) Filters() *hierarchy.Registry {
	return r.filters
}

// WatchHierarchies registers FilterHierarchy for every template type so the
// layout directory is searched after the conventional locations. Call it once:
// each call registers another copy of the filter.
func (r *Resolver) WatchHierarchies() {
	for _, typ := range hierarchy.Types {
		r.filters.Add(hierarchy.Event(typ), r.FilterHierarchy)
	}
}

// FilterHierarchy returns templates followed by every entry prefixed with the
// layout directory.
//
// The root index template is dropped from the first half when the active theme
// has no parent, or when it is a child theme that does not ship its own copy,
// so the mandatory fallback cannot shadow a layout template. Its prefixed
// variant is always kept: prefixes are computed from the unfiltered input.
func (r *Resolver) FilterHierarchy(templates []string) []string {
	index := "index" + r.cfg.Extension
	layout := theme.TrailingSlash(r.cfg.LayoutDir)
	keepIndex := r.active.HasParent() && r.active.Exists(index)

	kept := make([]string, 0, len(templates)*2)
	prefixed := make([]string, 0, len(templates))
	for _, tpl := range templates {
		if tpl != index || keepIndex {
			kept = append(kept, tpl)
		}
		prefixed = append(prefixed, layout+tpl)
	}
	return append(kept, prefixed...)
}

// Candidates lists the files tried for templates, in priority order: each
// name at the theme root, then under basePath (the configured BasePath when
// empty).
func (r *Resolver) Candidates(templates []string, basePath string) []string {
	if strings.TrimSpace(basePath) == "" {
		basePath = r.cfg.BasePath
	}
	base := theme.TrailingSlash(basePath)

	out := make([]string, 0, len(templates)*2)
	for _, name := range templates {
		out = append(out, name+r.cfg.Extension, base+name+r.cfg.Extension)
	}
	return out
}

// Locate returns the first existing candidate for templates, or "".
func (r *Resolver) Locate(templates []string, basePath string) string {
	return r.active.Locate(r.Candidates(templates, basePath)...)
}

// RenderView is GetView with render failures reported. A missing view is not
// an error: it renders as "".
func (r *Resolver) RenderView(templates []string, args map[string]any, basePath string) (string, error) {
	path := r.Locate(templates, basePath)
	if path == "" {
		r.logger.Debug("view not found", slog.Any("templates", templates), slog.String("base_path", basePath))
		return "", nil
	}
	return r.render(path, args)
}

// GetView renders the first existing view among templates and returns the
// output. Nothing is written anywhere; a missing or failing view yields "".
func (r *Resolver) GetView(templates []string, args map[string]any, basePath string) string {
	out, err := r.RenderView(templates, args, basePath)
	if err != nil {
		r.logger.Error("render view", slog.Any("templates", templates), slog.Any("error", err))
		return ""
	}
	return out
}

// View writes the output of GetView to w.
func (r *Resolver) View(w io.Writer, templates []string, args map[string]any, basePath string) {
	r.write(w, r.GetView(templates, args, basePath))
}

// GetPartial renders name from the partials directory.
func (r *Resolver) GetPartial(name string, args map[string]any) string {
	return r.GetView([]string{r.partialName(name)}, args, "")
}

// Partial writes the output of GetPartial to w.
func (r *Resolver) Partial(w io.Writer, name string, args map[string]any) {
	r.write(w, r.GetPartial(name, args))
}

// GetTemplate filters the hierarchy for typ, locates the first existing
// template and renders it. Like GetView it never fails loudly.
func (r *Resolver) GetTemplate(typ string, templates []string, args map[string]any) string {
	path := hierarchy.Query(r.filters, typ, templates, r.active.Locate)
	if path == "" {
		r.logger.Debug("template not found", slog.String("type", typ), slog.Any("templates", templates))
		return ""
	}
	out, err := r.render(path, args)
	if err != nil {
		r.logger.Error("render template", slog.String("type", typ), slog.Any("error", err))
		return ""
	}
	return out
}

// Template writes the output of GetTemplate to w.
func (r *Resolver) Template(w io.Writer, typ string, templates []string, args map[string]any) {
	r.write(w, r.GetTemplate(typ, templates, args))
}

func (r *Resolver) render(path string, args map[string]any) (string, error) {
	if args == nil {
		args = map[string]any{}
	}
	out, err := r.renderer.RenderTemplate(path, args)
	if err != nil {
		return "", fmt.Errorf("views: render %q: %w", path, err)
	}
	return out, nil
}

func (r *Resolver) write(w io.Writer, out string) {
	if w == nil || out == "" {
		return
	}
	if _, err := io.WriteString(w, out); err != nil {
		r.logger.Warn("write view output", slog.Any("error", err))
	}
}

func (r *Resolver) partialName(name string) string {
	return theme.TrailingSlash(r.cfg.PartialDir) + name
}

func (r *Resolver) viewHelper(name string, data ...any) string {
	return r.GetView([]string{name}, rendertemplate.MergeData(data...), "")
}

func (r *Resolver) partialHelper(name string, data ...any) string {
	return r.GetPartial(name, rendertemplate.MergeData(data...))
}
