// Package theme models the host side of view resolution: a theme owns a
// filesystem of template files and may inherit from a parent theme. Lookups
// try the child first and fall back to the parent chain, which is how a
// child theme overrides individual templates without copying the rest.
package theme
