// Package template defines the renderer-agnostic contract used by view
// resolution, plus a small registry of engine factories. Concrete engines
// live in the pongo (pongo2) and htmltemplate (html/template) subpackages.
package template
