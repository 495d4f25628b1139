package pongo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-viewloader/pkg/render/template"
)

// Name is the key the engine registers under in a template.Engines registry.
const Name = "pongo"

// DefaultExtension is appended to template names given without one.
const DefaultExtension = ".tpl"

// Option configures the pongo2 engine before construction.
type Option func(*options)

type options struct {
	files   fs.FS
	ext     string
	globals map[string]any
}

// WithFS sets the filesystem templates are loaded from.
func WithFS(files fs.FS) Option {
	return func(o *options) {
		o.files = files
	}
}

// WithExtension overrides DefaultExtension.
func WithExtension(ext string) Option {
	return func(o *options) {
		if ext = strings.TrimSpace(ext); ext != "" {
			o.ext = ext
		}
	}
}

// WithGlobalData seeds values visible to every template.
func WithGlobalData(data map[string]any) Option {
	return func(o *options) {
		if o.globals == nil {
			o.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			o.globals[key] = value
		}
	}
}

// Engine renders pongo2 templates loaded from an fs.FS.
//
// Globals live in an immutable context that writers replace wholesale, so a
// render never holds a lock while it executes and helpers may render nested
// templates while globals change.
type Engine struct {
	set *pongo2.TemplateSet
	ext string

	mu      sync.Mutex
	globals atomic.Pointer[pongo2.Context]
}

var (
	_ template.TemplateRenderer = (*Engine)(nil)
	_ template.HelperRegistrar  = (*Engine)(nil)
)

// New constructs an Engine. WithFS is required.
func New(opts ...Option) (*Engine, error) {
	o := &options{ext: DefaultExtension}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.files == nil {
		return nil, errors.New("pongo: template filesystem is required")
	}
	if !strings.HasPrefix(o.ext, ".") {
		o.ext = "." + o.ext
	}

	e := &Engine{
		set: pongo2.NewSet("viewloader", pongo2.NewFSLoader(o.files)),
		ext: o.ext,
	}
	e.globals.Store(&pongo2.Context{})
	registerFilters()

	if len(o.globals) > 0 {
		if err := e.GlobalContext(o.globals); err != nil {
			return nil, fmt.Errorf("pongo: apply global data: %w", err)
		}
	}
	return e, nil
}

// Factory adapts New to the template.Factory signature.
func Factory(fsys fs.FS, ext string) (template.TemplateRenderer, error) {
	return New(WithFS(fsys), WithExtension(ext))
}

// RenderTemplate renders name with data merged over the global context.
// Names that already carry an extension are loaded as given.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	path := template.TemplatePath(name, e.ext)

	tmpl, err := e.set.FromCache(path)
	if err != nil {
		return "", fmt.Errorf("pongo: load template %q: %w", path, err)
	}
	ctx, err := e.context(data)
	if err != nil {
		return "", fmt.Errorf("pongo: convert data for %q: %w", path, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("pongo: execute template %q: %w", path, err)
	}

	rendered := buf.String()
	if err := template.WriteAll(rendered, out...); err != nil {
		return "", err
	}
	return rendered, nil
}

// GlobalContext merges data into the values visible to every template. Data
// must be a map or a value that encodes to a JSON object.
func (e *Engine) GlobalContext(data any) error {
	if data == nil {
		return nil
	}
	ctx, err := toContext(data)
	if err != nil {
		return fmt.Errorf("pongo: global context: %w", err)
	}
	e.update(ctx)
	return nil
}

// RegisterHelper exposes fn to templates as a global function. Its output is
// marked safe so nested views are not escaped twice.
func (e *Engine) RegisterHelper(name string, fn template.Helper) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("pongo: helper name and function required")
	}
	e.update(pongo2.Context{
		name: func(view string, data ...any) *pongo2.Value {
			return pongo2.AsSafeValue(fn(view, data...))
		},
	})
	return nil
}

func (e *Engine) update(values pongo2.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	current := *e.globals.Load()
	next := make(pongo2.Context, len(current)+len(values))
	next.Update(current)
	next.Update(values)
	e.globals.Store(&next)
}

func (e *Engine) context(data any) (pongo2.Context, error) {
	view, err := toContext(data)
	if err != nil {
		return nil, err
	}
	globals := *e.globals.Load()

	ctx := make(pongo2.Context, len(globals)+len(view))
	ctx.Update(globals)
	ctx.Update(view)
	return ctx, nil
}

// toContext accepts maps directly. Any other value is exposed through its
// JSON field names.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%T is not an object: %w", data, err)
	}
	return pongo2.Context(m), nil
}

func registerFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}
