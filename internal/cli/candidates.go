package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

type CandidatesOptions struct {
	Root     *RootOptions
	BasePath string
}

func NewCandidatesOptions(root *RootOptions) *CandidatesOptions {
	return &CandidatesOptions{Root: root}
}

func NewCandidatesCmd(o *CandidatesOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "candidates NAME [NAME...]",
		Short: "List the files tried for NAMEs and the one that resolves",
		Args:  cobra.MinimumNArgs(1),
		RunE:  func(cmd *cobra.Command, args []string) error { return o.Run(cmd, args) },
	}
	cmd.Flags().StringVar(&o.BasePath, "in", "", "Directory to search after the theme root (default: the base path)")
	return cmd
}

func (o *CandidatesOptions) Run(cmd *cobra.Command, names []string) error {
	r, err := o.Root.Resolver(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, candidate := range r.Candidates(names, o.BasePath) {
		if _, err := fmt.Fprintln(w, candidate); err != nil {
			return err
		}
	}
	return printResolved(w, r.Locate(names, o.BasePath))
}
