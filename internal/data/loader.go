// Package data loads the template context passed on the command line.
package data

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Stdin is the source name that reads from the provided reader.
const Stdin = "-"

// Load resolves source into a template context. source is either "-" for
// stdin, an inline JSON or YAML mapping (starting with "{"), or a file path.
// JSON is decoded through the YAML parser, which accepts it as a subset. An
// empty source yields an empty context.
func Load(ctx context.Context, source string, stdin io.Reader) (map[string]any, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return map[string]any{}, nil
	}

	var (
		raw []byte
		err error
	)
	switch {
	case source == Stdin:
		if stdin == nil {
			return nil, errors.New("data: stdin is not available")
		}
		raw, err = io.ReadAll(stdin)
	case strings.HasPrefix(source, "{"):
		raw = []byte(source)
	default:
		raw, err = loadFile(ctx, source)
	}
	if err != nil {
		return nil, fmt.Errorf("data: read %s: %w", source, err)
	}
	return Decode(raw)
}

// Decode parses a JSON or YAML mapping.
func Decode(raw []byte) (map[string]any, error) {
	out := map[string]any{}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return out, nil
	}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("data: decode: %w", err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

func loadFile(ctx context.Context, path string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}
