// Package pongo is the default template engine: a pongo2 template set loaded
// from an fs.FS, with cached compiled templates, global context and helpers.
package pongo
