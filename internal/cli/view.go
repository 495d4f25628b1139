package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-viewloader/internal/data"
)

// RenderFlags are shared by the commands that render output.
type RenderFlags struct {
	Data   string
	Output string
	Strict bool
}

func (f *RenderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Data, "data", "d", "", "Template data: JSON or YAML file, inline mapping, or - for stdin")
	cmd.Flags().StringVarP(&f.Output, "output", "o", "", "Write output to file instead of stdout")
	cmd.Flags().BoolVar(&f.Strict, "strict", false, "Fail when nothing is found")
}

type ViewOptions struct {
	Root     *RootOptions
	Render   RenderFlags
	BasePath string
}

func NewViewOptions(root *RootOptions) *ViewOptions {
	return &ViewOptions{Root: root}
}

func NewViewCmd(o *ViewOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view NAME [NAME...]",
		Short: "Render the first view found among NAMEs",
		Args:  cobra.MinimumNArgs(1),
		RunE:  func(cmd *cobra.Command, args []string) error { return o.Run(cmd, args) },
	}
	o.Render.register(cmd)
	cmd.Flags().StringVar(&o.BasePath, "in", "", "Directory to search after the theme root (default: the base path)")
	return cmd
}

func (o *ViewOptions) Run(cmd *cobra.Command, names []string) error {
	r, err := o.Root.Resolver(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	args, err := data.Load(cmd.Context(), o.Render.Data, cmd.InOrStdin())
	if err != nil {
		return err
	}

	if o.Render.Strict && r.Locate(names, o.BasePath) == "" {
		return fmt.Errorf("view not found: tried %v", r.Candidates(names, o.BasePath))
	}
	out, err := r.RenderView(names, args, o.BasePath)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), o.Render.Output, out)
}
