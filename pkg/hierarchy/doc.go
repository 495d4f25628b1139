// Package hierarchy provides the named filter hooks that rewrite a template
// hierarchy (the ordered list of candidate files tried for a request type)
// before the first existing file is located.
package hierarchy
