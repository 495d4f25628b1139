package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-viewloader/internal/data"
	"github.com/goliatone/go-viewloader/pkg/theme"
)

type PartialOptions struct {
	Root   *RootOptions
	Render RenderFlags
}

func NewPartialOptions(root *RootOptions) *PartialOptions {
	return &PartialOptions{Root: root}
}

func NewPartialCmd(o *PartialOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "partial NAME",
		Short: "Render a partial from the partials directory",
		Args:  cobra.ExactArgs(1),
		RunE:  func(cmd *cobra.Command, args []string) error { return o.Run(cmd, args[0]) },
	}
	o.Render.register(cmd)
	return cmd
}

func (o *PartialOptions) Run(cmd *cobra.Command, name string) error {
	r, err := o.Root.Resolver(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	args, err := data.Load(cmd.Context(), o.Render.Data, cmd.InOrStdin())
	if err != nil {
		return err
	}

	if o.Render.Strict {
		partial := theme.TrailingSlash(r.Config().PartialDir) + name
		if r.Locate([]string{partial}, "") == "" {
			return fmt.Errorf("partial not found: %s", name)
		}
	}
	return writeOutput(cmd.OutOrStdout(), o.Render.Output, r.GetPartial(name, args))
}
