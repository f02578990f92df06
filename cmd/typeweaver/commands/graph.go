package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/typeweaver/ir"
	"github.com/teranos/typeweaver/pipeline"
)

func newGraphCmd(opts *globalOptions) *cobra.Command {
	sel := &selection{}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the collected type graph as YAML",
		Long: `Collect types exactly as generate does and print the resulting graph
instead of writing signature files. Useful for seeing what each source
contributes:

  typeweaver graph --source yard --file app/models/user.rb`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := sel.options(opts)
			if err != nil {
				return err
			}

			report, err := pipeline.Collect(cmd.Context(), run, opts.logger(cmd))
			if err != nil {
				return err
			}
			return ir.Dump(cmd.OutOrStdout(), report.Graph)
		},
	}

	sel.addSourceFlags(cmd)
	return cmd
}
