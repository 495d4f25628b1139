package viewloader

import (
	"path/filepath"

	"github.com/goliatone/go-viewloader/pkg/config"
)

// LoadConfig reads a YAML or TOML configuration file.
func LoadConfig(path string) (config.File, error) {
	return config.Load(path)
}

// NewFromConfigFile loads path and builds the resolver it describes. Theme
// directories are relative to the configuration file.
func NewFromConfigFile(path string, options ...Option) (*Resolver, error) {
	file, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(file, filepath.Dir(path), options...)
}
