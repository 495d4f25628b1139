package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-viewloader/internal/data"
	"github.com/goliatone/go-viewloader/pkg/hierarchy"
)

type HierarchyOptions struct {
	Root    *RootOptions
	Render  RenderFlags
	NoWatch bool
	Resolve bool
}

func NewHierarchyOptions(root *RootOptions) *HierarchyOptions {
	return &HierarchyOptions{Root: root}
}

func NewHierarchyCmd(o *HierarchyOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hierarchy TYPE TEMPLATE [TEMPLATE...]",
		Short: "Show how a template hierarchy is filtered and resolved",
		Long: `Show how a template hierarchy is filtered and resolved.

TYPE is one of the template types (index, single, page, ...). TEMPLATEs are
the hierarchy entries in priority order, including the file extension.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error { return o.Run(cmd, args[0], args[1:]) },
	}
	o.Render.register(cmd)
	cmd.Flags().BoolVar(&o.NoWatch, "no-watch", false, "Skip the layout directory filter")
	cmd.Flags().BoolVar(&o.Resolve, "render", false, "Render the resolved template instead of listing the hierarchy")
	return cmd
}

func (o *HierarchyOptions) Run(cmd *cobra.Command, typ string, templates []string) error {
	if !slices.Contains(hierarchy.Types, typ) {
		return fmt.Errorf("unknown template type %q", typ)
	}

	r, err := o.Root.Resolver(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if !o.NoWatch {
		r.WatchHierarchies()
	}

	if o.Resolve {
		args, err := data.Load(cmd.Context(), o.Render.Data, cmd.InOrStdin())
		if err != nil {
			return err
		}
		if o.Render.Strict && hierarchy.Query(r.Filters(), typ, templates, r.Theme().Locate) == "" {
			return fmt.Errorf("no %s template found", typ)
		}
		return writeOutput(cmd.OutOrStdout(), o.Render.Output, r.GetTemplate(typ, templates, args))
	}

	w := cmd.OutOrStdout()
	for _, tpl := range r.Filters().Apply(hierarchy.Event(typ), templates) {
		if _, err := fmt.Fprintln(w, tpl); err != nil {
			return err
		}
	}
	return printResolved(w, hierarchy.Query(r.Filters(), typ, templates, r.Theme().Locate))
}

func printResolved(w io.Writer, path string) error {
	if path == "" {
		path = "(none)"
	}
	_, err := fmt.Fprintf(w, "=> %s\n", path)
	return err
}
