package cli

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-viewloader"
)

type ScaffoldOptions struct {
	Force bool
}

func NewScaffoldOptions() *ScaffoldOptions {
	return &ScaffoldOptions{}
}

func NewScaffoldCmd(o *ScaffoldOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scaffold DIR",
		Short: "Write the starter theme into DIR",
		Args:  cobra.ExactArgs(1),
		RunE:  func(cmd *cobra.Command, args []string) error { return o.Run(cmd, args[0]) },
	}
	cmd.Flags().BoolVarP(&o.Force, "force", "f", false, "Overwrite existing files")
	return cmd
}

func (o *ScaffoldOptions) Run(cmd *cobra.Command, dir string) error {
	starter := viewloader.StarterThemeFS()

	return fs.WalkDir(starter, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		if !o.Force {
			if _, err := os.Stat(target); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", target)
			}
		}
		content, err := fs.ReadFile(starter, path)
		if err != nil {
			return err
		}
		if err := atomic.WriteFile(target, bytes.NewReader(content)); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), target)
		return err
	})
}
