package viewloader

import (
	"fmt"
	"io/fs"

	"github.com/goliatone/go-viewloader/pkg/config"
	"github.com/goliatone/go-viewloader/pkg/hierarchy"
	rendertemplate "github.com/goliatone/go-viewloader/pkg/render/template"
	"github.com/goliatone/go-viewloader/pkg/theme"
	"github.com/goliatone/go-viewloader/pkg/views"
)

// Config mirrors views.Config; alias exported via the root package for
// convenience.
type Config = views.Config

// Resolver aliases views.Resolver.
type Resolver = views.Resolver

// Option aliases views.Option.
type Option = views.Option

// Theme aliases theme.Theme.
type Theme = theme.Theme

// NewResolver exposes the resolver constructor from the top-level module.
func NewResolver(active *Theme, options ...Option) (*Resolver, error) {
	return views.New(active, options...)
}

// NewTheme builds a theme over fsys, optionally inheriting from parent.
func NewTheme(name string, fsys fs.FS, parent *Theme) (*Theme, error) {
	var options []theme.Option
	if parent != nil {
		options = append(options, theme.WithParent(parent))
	}
	return theme.New(name, fsys, options...)
}

// Watch builds a resolver and registers its hierarchy filter for every
// template type in one step, which is what most applications want at boot.
func Watch(active *Theme, options ...Option) (*Resolver, error) {
	r, err := views.New(active, options...)
	if err != nil {
		return nil, err
	}
	r.WatchHierarchies()
	return r, nil
}

// NewFromConfig builds the theme chain declared in file and returns a
// resolver over the active theme rendered with the configured engine.
// Relative theme directories are resolved against baseDir. Extra options are
// applied after the ones derived from file.
func NewFromConfig(file config.File, baseDir string, options ...Option) (*Resolver, error) {
	_, active, err := file.Build(baseDir)
	if err != nil {
		return nil, err
	}

	if file.Views.Extension == "" {
		file.Views.Extension = EngineExtension(file.Engine)
	}
	cfg := file.Views.Merge(views.DefaultConfig())
	renderer, err := NewRenderer(DefaultEngines(), file.Engine, active, cfg.Extension)
	if err != nil {
		return nil, err
	}

	opts := append(file.ResolverOptions(), views.WithRenderer(renderer))
	opts = append(opts, options...)
	return views.New(active, opts...)
}

// NewRenderer builds the named engine over the layered files of active. An
// empty name selects the pongo engine.
func NewRenderer(engines *rendertemplate.Engines, name string, active *Theme, ext string) (rendertemplate.TemplateRenderer, error) {
	if name == "" {
		name = DefaultEngine
	}
	factory, err := engines.Get(name)
	if err != nil {
		return nil, err
	}
	renderer, err := factory(active.FS(), ext)
	if err != nil {
		return nil, fmt.Errorf("viewloader: create %s renderer: %w", name, err)
	}
	return renderer, nil
}

// TemplateTypes lists the template types the hierarchy filter is attached to.
func TemplateTypes() []string {
	return append([]string(nil), hierarchy.Types...)
}
