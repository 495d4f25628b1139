package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-viewloader/pkg/theme"
	"github.com/goliatone/go-viewloader/pkg/views"
)

// ErrInvalid wraps every validation failure reported by Build.
var ErrInvalid = errors.New("config: invalid")

// File is the on-disk configuration understood by the CLI and by Load.
type File struct {
	Views   views.Config   `json:"views" yaml:"views" toml:"views"`
	Engine  string         `json:"engine" yaml:"engine" toml:"engine"`
	Active  string         `json:"active" yaml:"active" toml:"active"`
	Themes  []ThemeSpec    `json:"themes" yaml:"themes" toml:"themes"`
	Globals map[string]any `json:"globals" yaml:"globals" toml:"globals"`
}

// ThemeSpec declares one theme directory. Parent names another ThemeSpec.
type ThemeSpec struct {
	Name    string `json:"name" yaml:"name" toml:"name"`
	Dir     string `json:"dir" yaml:"dir" toml:"dir"`
	Parent  string `json:"parent" yaml:"parent" toml:"parent"`
	Version string `json:"version" yaml:"version" toml:"version"`
}

// Load reads a YAML (.yaml, .yml) or TOML (.toml) configuration file.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes data according to ext.
func Parse(data []byte, ext string) (File, error) {
	var file File
	if len(strings.TrimSpace(string(data))) == 0 {
		return file, nil
	}

	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return File{}, fmt.Errorf("config: parse yaml: %w", err)
		}
	case "toml":
		if _, err := toml.Decode(string(data), &file); err != nil {
			return File{}, fmt.Errorf("config: parse toml: %w", err)
		}
	default:
		return File{}, fmt.Errorf("config: unsupported format %q", ext)
	}
	return file, nil
}

// Build constructs every declared theme, registers them, and returns the
// registry with the active theme. Relative theme directories are resolved
// against baseDir.
func (f File) Build(baseDir string) (*theme.Registry, *theme.Theme, error) {
	if len(f.Themes) == 0 {
		return nil, nil, fmt.Errorf("%w: no themes declared", ErrInvalid)
	}

	specs := make(map[string]ThemeSpec, len(f.Themes))
	for _, spec := range f.Themes {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return nil, nil, fmt.Errorf("%w: theme name is required", ErrInvalid)
		}
		if _, exists := specs[name]; exists {
			return nil, nil, fmt.Errorf("%w: duplicate theme %q", ErrInvalid, name)
		}
		specs[name] = spec
	}
	for name, spec := range specs {
		if spec.Parent != "" {
			if _, ok := specs[spec.Parent]; !ok {
				return nil, nil, fmt.Errorf("%w: theme %q has unknown parent %q", ErrInvalid, name, spec.Parent)
			}
		}
	}

	registry := theme.NewRegistry()
	built := make(map[string]*theme.Theme, len(specs))
	visiting := make(map[string]bool, len(specs))

	var build func(name string) (*theme.Theme, error)
	build = func(name string) (*theme.Theme, error) {
		if t, ok := built[name]; ok {
			return t, nil
		}
		if visiting[name] {
			return nil, fmt.Errorf("%w: theme %q inherits from itself", ErrInvalid, name)
		}
		visiting[name] = true

		spec := specs[name]
		options := []theme.Option{theme.WithVersion(spec.Version)}
		if spec.Parent != "" {
			parent, err := build(spec.Parent)
			if err != nil {
				return nil, err
			}
			options = append(options, theme.WithParent(parent))
		}

		dir := spec.Dir
		if dir != "" && !filepath.IsAbs(dir) {
			dir = filepath.Join(baseDir, dir)
		}
		t, err := theme.Dir(name, dir, options...)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(t); err != nil {
			return nil, err
		}
		built[name] = t
		return t, nil
	}

	// declaration order keeps registration deterministic
	for _, spec := range f.Themes {
		if _, err := build(strings.TrimSpace(spec.Name)); err != nil {
			return nil, nil, err
		}
	}

	active := strings.TrimSpace(f.Active)
	if active == "" {
		active = strings.TrimSpace(f.Themes[len(f.Themes)-1].Name)
	}
	t, err := registry.Get(active)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: active theme: %w", ErrInvalid, err)
	}
	return registry, t, nil
}

// ResolverOptions converts the file's view settings into resolver options.
func (f File) ResolverOptions() []views.Option {
	options := []views.Option{views.WithConfig(f.Views)}
	if len(f.Globals) > 0 {
		options = append(options, views.WithGlobals(f.Globals))
	}
	return options
}
