// Package config loads the viewloader configuration file. YAML and TOML are
// both accepted; the format is picked from the file extension.
package config
