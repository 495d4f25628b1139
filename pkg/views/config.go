package views

import "strings"

const (
	DefaultBasePath   = "resources/views"
	DefaultLayoutDir  = "layout"
	DefaultPartialDir = "partials"
	DefaultExtension  = ".tpl"
)

// Config holds the directory layout the resolver searches. Empty fields fall
// back to the package defaults.
type Config struct {
	// BasePath is the views root relative to the theme root.
	BasePath string `json:"base_path" yaml:"base_path" toml:"base_path"`

	// LayoutDir holds full-page templates resolved through the template
	// hierarchy. It is joined to hierarchy entries as-is, not to BasePath.
	LayoutDir string `json:"layout_dir" yaml:"layout_dir" toml:"layout_dir"`

	// PartialDir holds reusable fragments rendered with Partial.
	PartialDir string `json:"partial_dir" yaml:"partial_dir" toml:"partial_dir"`

	// Extension is appended to view names when building candidates.
	Extension string `json:"extension" yaml:"extension" toml:"extension"`
}

// DefaultConfig returns the conventional layout.
func DefaultConfig() Config {
	return Config{
		BasePath:   DefaultBasePath,
		LayoutDir:  DefaultLayoutDir,
		PartialDir: DefaultPartialDir,
		Extension:  DefaultExtension,
	}
}

// Merge returns c with every empty field of c taken from defaults.
func (c Config) Merge(defaults Config) Config {
	if strings.TrimSpace(c.BasePath) == "" {
		c.BasePath = defaults.BasePath
	}
	if strings.TrimSpace(c.LayoutDir) == "" {
		c.LayoutDir = defaults.LayoutDir
	}
	if strings.TrimSpace(c.PartialDir) == "" {
		c.PartialDir = defaults.PartialDir
	}
	if strings.TrimSpace(c.Extension) == "" {
		c.Extension = defaults.Extension
	}
	c.Extension = normalizeExt(c.Extension)
	return c
}

func normalizeExt(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}
