// Package htmltemplate adapts Go's html/template to the renderer contract so
// themes can be written in the standard library's template language.
package htmltemplate
