// Package cli implements the viewloader command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-viewloader"
	"github.com/goliatone/go-viewloader/pkg/theme"
	"github.com/goliatone/go-viewloader/pkg/views"
)

// Version is set at build time.
var Version = "dev"

// RootOptions holds the flags shared by every subcommand.
type RootOptions struct {
	ConfigPath string
	ThemeDir   string
	ParentDir  string
	Engine     string
	Verbose    bool
	Views      views.Config
}

func NewRootOptions() *RootOptions {
	return &RootOptions{}
}

// NewRootCmd assembles the viewloader command tree.
func NewRootCmd(o *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "viewloader",
		Version: Version,
		Short:   "viewloader resolves and renders theme views",
		Long: `viewloader resolves view names against a theme (and its parent theme)
and renders the first match.

Themes come either from a configuration file (--config) or from
--theme-dir with an optional --parent-dir.`,
	}

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.DisableAutoGenTag = true

	flags := cmd.PersistentFlags()
	flags.StringVarP(&o.ConfigPath, "config", "c", "", "Configuration file (.yaml, .yml or .toml)")
	flags.StringVar(&o.ThemeDir, "theme-dir", ".", "Active theme directory when no config is given")
	flags.StringVar(&o.ParentDir, "parent-dir", "", "Parent theme directory")
	flags.StringVar(&o.Engine, "engine", "", "Template engine (pongo, html)")
	flags.StringVar(&o.Views.BasePath, "base-path", "", "Views root inside the theme (default "+views.DefaultBasePath+")")
	flags.StringVar(&o.Views.LayoutDir, "layout-dir", "", "Layout directory (default "+views.DefaultLayoutDir+")")
	flags.StringVar(&o.Views.PartialDir, "partial-dir", "", "Partials directory (default "+views.DefaultPartialDir+")")
	flags.StringVar(&o.Views.Extension, "ext", "", "Template file extension (default depends on the engine)")
	flags.BoolVarP(&o.Verbose, "verbose", "v", false, "Log misses and render failures")

	cmd.AddCommand(NewViewCmd(NewViewOptions(o)))
	cmd.AddCommand(NewPartialCmd(NewPartialOptions(o)))
	cmd.AddCommand(NewCandidatesCmd(NewCandidatesOptions(o)))
	cmd.AddCommand(NewHierarchyCmd(NewHierarchyOptions(o)))
	cmd.AddCommand(NewScaffoldCmd(NewScaffoldOptions()))

	return cmd
}

// Resolver builds the resolver described by the root flags.
func (o *RootOptions) Resolver(logs io.Writer) (*views.Resolver, error) {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: level}))

	if o.ConfigPath != "" {
		file, err := viewloader.LoadConfig(o.ConfigPath)
		if err != nil {
			return nil, err
		}
		// flags win over the file
		if o.Engine != "" {
			file.Engine = o.Engine
		}
		file.Views = o.Views.Merge(file.Views)
		return viewloader.NewFromConfig(file, filepath.Dir(o.ConfigPath), views.WithLogger(logger))
	}

	var options []theme.Option
	if o.ParentDir != "" {
		parent, err := theme.Dir("parent", o.ParentDir)
		if err != nil {
			return nil, err
		}
		options = append(options, theme.WithParent(parent))
	}
	active, err := theme.Dir("active", o.ThemeDir, options...)
	if err != nil {
		return nil, err
	}

	cfg := o.Views
	if cfg.Extension == "" {
		cfg.Extension = viewloader.EngineExtension(o.Engine)
	}
	renderer, err := viewloader.NewRenderer(viewloader.DefaultEngines(), o.Engine, active, cfg.Merge(views.DefaultConfig()).Extension)
	if err != nil {
		return nil, err
	}
	return views.New(active,
		views.WithConfig(cfg),
		views.WithRenderer(renderer),
		views.WithLogger(logger),
	)
}

func writeOutput(w io.Writer, path, out string) error {
	if strings.TrimSpace(path) == "" {
		_, err := io.WriteString(w, out)
		return err
	}
	if err := atomic.WriteFile(path, strings.NewReader(out)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
