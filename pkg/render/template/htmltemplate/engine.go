package htmltemplate

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"sync"

	rendertemplate "github.com/goliatone/go-viewloader/pkg/render/template"
)

// Name is the key the engine registers under in a template.Engines registry.
const Name = "html"

// Engine renders Go html/template files from an fs.FS. Files are parsed on
// first use and cached until the helper set changes.
type Engine struct {
	fs  fs.FS
	ext string

	mu      sync.RWMutex
	set     map[string]*template.Template
	funcs   template.FuncMap
	globals map[string]any
}

var (
	_ rendertemplate.TemplateRenderer = (*Engine)(nil)
	_ rendertemplate.HelperRegistrar  = (*Engine)(nil)
)

// New creates an engine reading templates from fsys. ext is appended to names
// that lack it.
func New(fsys fs.FS, ext string) (*Engine, error) {
	if fsys == nil {
		return nil, errors.New("htmltemplate: filesystem is required")
	}
	ext = strings.TrimSpace(ext)
	if ext == "" {
		ext = ".html"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return &Engine{
		fs:      fsys,
		ext:     ext,
		set:     map[string]*template.Template{},
		funcs:   template.FuncMap{},
		globals: map[string]any{},
	}, nil
}

// Factory adapts New to the template.Factory signature.
func Factory(fsys fs.FS, ext string) (rendertemplate.TemplateRenderer, error) {
	return New(fsys, ext)
}

// RenderTemplate implements template.TemplateRenderer. Map data is merged
// over the global context; other values are passed through as dot. Names
// that already carry an extension are read as given.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	name = rendertemplate.TemplatePath(name, e.ext)

	tpl, err := e.parse(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, e.context(data)); err != nil {
		return "", fmt.Errorf("htmltemplate: execute template '%s': %w", name, err)
	}

	rendered := buf.String()
	if err := rendertemplate.WriteAll(rendered, out...); err != nil {
		return "", err
	}
	return rendered, nil
}

// GlobalContext implements template.TemplateRenderer. Only map data can be
// merged into the global context.
func (e *Engine) GlobalContext(data any) error {
	if data == nil {
		return nil
	}
	m, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("htmltemplate: global context must be a map, got %T", data)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for key, value := range m {
		e.globals[key] = value
	}
	return nil
}

// RegisterHelper implements template.HelperRegistrar. Helper output is
// returned as template.HTML so it is not escaped again.
func (e *Engine) RegisterHelper(name string, fn rendertemplate.Helper) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("htmltemplate: helper name and function required")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.funcs[name] = func(view string, data ...any) template.HTML {
		return template.HTML(fn(view, data...))
	}
	// parsed templates captured the previous FuncMap
	e.set = map[string]*template.Template{}
	return nil
}

func (e *Engine) parse(name string) (*template.Template, error) {
	e.mu.RLock()
	tpl, ok := e.set[name]
	e.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	b, err := fs.ReadFile(e.fs, name)
	if err != nil {
		return nil, fmt.Errorf("htmltemplate: error reading file '%s': %w", name, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	tpl, err = template.New(name).Funcs(e.funcs).Parse(string(b))
	if err != nil {
		return nil, fmt.Errorf("htmltemplate: error parsing template '%s': %w", name, err)
	}
	e.set[name] = tpl
	return tpl, nil
}

func (e *Engine) context(data any) any {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.globals) == 0 {
		return data
	}

	switch v := data.(type) {
	case nil:
		out := make(map[string]any, len(e.globals))
		for key, value := range e.globals {
			out[key] = value
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(e.globals)+len(v))
		for key, value := range e.globals {
			out[key] = value
		}
		for key, value := range v {
			out[key] = value
		}
		return out
	default:
		return data
	}
}
