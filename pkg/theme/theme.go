package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	gotheme "github.com/goliatone/go-theme"
)

const defaultVersion = "0.0.0"

// ErrNotFound is returned when a theme lookup fails.
var ErrNotFound = errors.New("theme: not found")

// Option customises a Theme before construction.
type Option func(*Theme)

// WithParent links the theme to a parent theme. Files missing from the child
// are looked up in the parent (and its own parents) in order.
func WithParent(parent *Theme) Option {
	return func(t *Theme) {
		t.parent = parent
	}
}

// WithVersion records the theme version on its manifest.
func WithVersion(version string) Option {
	return func(t *Theme) {
		if v := strings.TrimSpace(version); v != "" {
			t.manifest.Version = v
		}
	}
}

// Theme describes a single theme: its own files and an optional parent it
// inherits from. Themes are immutable once constructed.
type Theme struct {
	manifest *gotheme.Manifest
	fsys     fs.FS
	parent   *Theme
}

// New constructs a Theme backed by fsys.
func New(name string, fsys fs.FS, options ...Option) (*Theme, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("theme: name is required")
	}
	if fsys == nil {
		return nil, fmt.Errorf("theme: %q: filesystem is required", name)
	}

	t := &Theme{
		manifest: &gotheme.Manifest{
			Name:    name,
			Version: defaultVersion,
		},
		fsys: fsys,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
	return t, nil
}

// Dir constructs a Theme rooted at a directory on disk.
func Dir(name, dir string, options ...Option) (*Theme, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("theme: %q: directory is required", name)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("theme: %q: stat %s: %w", name, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("theme: %q: %s is not a directory", name, dir)
	}
	return New(name, os.DirFS(dir), options...)
}

// Name returns the theme name.
func (t *Theme) Name() string {
	return t.manifest.Name
}

// Manifest returns the go-theme manifest describing this theme.
func (t *Theme) Manifest() *gotheme.Manifest {
	return t.manifest
}

// Parent returns the parent theme, or nil.
func (t *Theme) Parent() *Theme {
	return t.parent
}

// HasParent reports whether t is a child theme.
func (t *Theme) HasParent() bool {
	return t.parent != nil
}

// Exists reports whether rel exists as a regular file in this theme's own
// files. Parents are not consulted.
func (t *Theme) Exists(rel string) bool {
	name, ok := cleanPath(rel)
	if !ok {
		return false
	}
	info, err := fs.Stat(t.fsys, name)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// Locate returns the first candidate that exists in the theme or, failing
// that, in its parent chain. The returned path is the cleaned candidate. An
// empty string means none of the candidates exist.
func (t *Theme) Locate(candidates ...string) string {
	for _, candidate := range candidates {
		name, ok := cleanPath(candidate)
		if !ok {
			continue
		}
		for current := t; current != nil; current = current.parent {
			if current.Exists(name) {
				return name
			}
		}
	}
	return ""
}

// FS returns a filesystem that layers the theme over its parents so that a
// file in the child shadows the parent's copy.
func (t *Theme) FS() fs.FS {
	layers := make([]fs.FS, 0, 2)
	for current := t; current != nil; current = current.parent {
		layers = append(layers, current.fsys)
	}
	if len(layers) == 1 {
		return layers[0]
	}
	return layeredFS(layers)
}

// TrailingSlash normalises p so it ends with exactly one forward slash.
func TrailingSlash(p string) string {
	return strings.TrimRight(p, `/\`) + "/"
}

func cleanPath(p string) (string, bool) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", false
	}
	p = strings.TrimLeft(path.Clean(strings.ReplaceAll(p, `\`, "/")), "/")
	if !fs.ValidPath(p) || p == "." {
		return "", false
	}
	return p, true
}

type layeredFS []fs.FS

func (l layeredFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	var firstErr error
	for _, layer := range l {
		f, err := layer.Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
