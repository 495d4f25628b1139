package views

import (
	"log/slog"
	"strings"

	"github.com/goliatone/go-viewloader/pkg/hierarchy"
	rendertemplate "github.com/goliatone/go-viewloader/pkg/render/template"
)

// Option customises the resolver configuration.
type Option func(*Resolver)

// WithConfig copies every non-empty field of cfg into the resolver
// configuration.
func WithConfig(cfg Config) Option {
	return func(r *Resolver) {
		if v := strings.TrimSpace(cfg.BasePath); v != "" {
			r.cfg.BasePath = v
		}
		if v := strings.TrimSpace(cfg.LayoutDir); v != "" {
			r.cfg.LayoutDir = v
		}
		if v := strings.TrimSpace(cfg.PartialDir); v != "" {
			r.cfg.PartialDir = v
		}
		if v := strings.TrimSpace(cfg.Extension); v != "" {
			r.cfg.Extension = v
		}
	}
}

// WithBasePath overrides the views root.
func WithBasePath(path string) Option {
	return WithConfig(Config{BasePath: path})
}

// WithLayoutDir overrides the layout directory.
func WithLayoutDir(dir string) Option {
	return WithConfig(Config{LayoutDir: dir})
}

// WithPartialDir overrides the partials directory.
func WithPartialDir(dir string) Option {
	return WithConfig(Config{PartialDir: dir})
}

// WithExtension overrides the template file extension.
func WithExtension(ext string) Option {
	return WithConfig(Config{Extension: ext})
}

// WithRenderer injects the template engine. Without it the resolver builds a
// pongo2 engine over the active theme.
func WithRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(r *Resolver) {
		r.renderer = renderer
	}
}

// WithFilters shares a hierarchy filter registry with the resolver, typically
// the one the rest of the application queries.
func WithFilters(filters *hierarchy.Registry) Option {
	return func(r *Resolver) {
		r.filters = filters
	}
}

// WithGlobals seeds data visible to every rendered view.
func WithGlobals(globals map[string]any) Option {
	return func(r *Resolver) {
		if len(globals) == 0 {
			return
		}
		if r.globals == nil {
			r.globals = make(map[string]any, len(globals))
		}
		for key, value := range globals {
			r.globals[key] = value
		}
	}
}

// WithLogger sets the logger used to report misses and render failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}
