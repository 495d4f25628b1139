// Package viewloader resolves theme views by name and renders them. A child
// theme overrides individual files of its parent and inherits the rest.
//
// The root package wires the pkg/ building blocks together for the common
// cases; reach for package views directly for finer control.
package viewloader
