// Package views resolves named views against the active theme and renders
// them to strings.
//
// A view name is tried at the theme root first and then under the base path,
// so a theme can override a view by dropping a file next to its index
// template. Each candidate is looked up in the child theme before the parent.
// A view that cannot be found renders as the empty string; callers that need
// to distinguish render failures use RenderView.
//
// The resolver also hooks into the template hierarchy (see package hierarchy)
// so every hierarchy lookup falls through to the layout directory.
package views
