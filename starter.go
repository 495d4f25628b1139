package viewloader

import (
	"embed"
	"io/fs"
)

//go:embed starter
var embeddedStarter embed.FS

// StarterThemeFS exposes a minimal pongo2 theme laid out with the default
// directories: an index fallback at the root, full-page templates under
// layout/ and views and partials under resources/views. It backs the CLI
// scaffold command and is a working example of the layout.
//
// Typical use:
//
//	active, _ := viewloader.NewTheme("starter", viewloader.StarterThemeFS(), nil)
//	r, _ := viewloader.Watch(active)
//	html := r.GetPartial("header", nil)
func StarterThemeFS() fs.FS {
	sub, err := fs.Sub(embeddedStarter, "starter")
	if err != nil {
		return embeddedStarter
	}
	return sub
}
