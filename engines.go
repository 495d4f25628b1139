package viewloader

import (
	rendertemplate "github.com/goliatone/go-viewloader/pkg/render/template"
	"github.com/goliatone/go-viewloader/pkg/render/template/htmltemplate"
	"github.com/goliatone/go-viewloader/pkg/render/template/pongo"
	"github.com/goliatone/go-viewloader/pkg/views"
)

// DefaultEngine is used when no engine is configured.
const DefaultEngine = pongo.Name

// DefaultEngines returns a registry holding the built-in template engines so
// callers can pick one by name or add their own.
func DefaultEngines() *rendertemplate.Engines {
	engines := rendertemplate.NewEngines()
	engines.MustRegister(pongo.Name, pongo.Factory)
	engines.MustRegister(htmltemplate.Name, htmltemplate.Factory)
	return engines
}

// EngineExtension returns the conventional file extension for a built-in
// engine. Unknown engines get the views default.
func EngineExtension(name string) string {
	switch name {
	case htmltemplate.Name:
		return ".html"
	default:
		return views.DefaultExtension
	}
}
