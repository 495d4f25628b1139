package template

import (
	"io"
	"io/fs"
	"path"
)

// TemplateRenderer is the seam view resolution relies on. Name is a path
// relative to the renderer's filesystem. The rendered output is returned and
// also written to every out writer.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}

// Helper renders another view or partial from inside a template. The result
// is trusted markup and must not be escaped again by the engine.
type Helper func(name string, data ...any) string

// HelperRegistrar is implemented by renderers that can expose Go helpers to
// templates.
type HelperRegistrar interface {
	RegisterHelper(name string, fn Helper) error
}

// Factory builds a renderer over fsys for templates using ext.
type Factory func(fsys fs.FS, ext string) (TemplateRenderer, error)

// TemplatePath appends ext to name unless name already has an extension, so
// a path located by the caller is loaded exactly as given.
func TemplatePath(name, ext string) string {
	if path.Ext(name) != "" {
		return name
	}
	return name + ext
}

// WriteAll copies rendered to each writer, stopping at the first failure.
func WriteAll(rendered string, out ...io.Writer) error {
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return err
		}
	}
	return nil
}

// MergeData flattens helper arguments into a single context map. Maps are
// merged left to right; any other value is exposed under the "data" key.
func MergeData(data ...any) map[string]any {
	out := make(map[string]any)
	for _, d := range data {
		switch v := d.(type) {
		case nil:
		case map[string]any:
			for key, value := range v {
				out[key] = value
			}
		default:
			out["data"] = v
		}
	}
	return out
}
