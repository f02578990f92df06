package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/typeweaver/errors"
	"github.com/teranos/typeweaver/pipeline"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	sel := &selection{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check if generated types are up to date",
		Long: `Generate types into a temporary directory and compare them with the
existing output directories. Nothing on disk is modified.

Exit codes:
  0 - Types are up to date
  1 - Types are out of date
  2 - Error during check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := sel.options(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Checking generated types...")

			report, err := pipeline.Check(cmd.Context(), run, opts.logger(cmd))
			if err != nil {
				return err
			}

			if report.UpToDate() {
				fmt.Fprintln(out, pterm.LightGreen("✓ Types are up to date"))
				return nil
			}

			fmt.Fprintln(out, pterm.Red("✗ Types are out of date"))
			for _, f := range report.Formats {
				result := report.Results[f]
				for _, name := range result.Changed {
					fmt.Fprintf(out, "  %s: changed %s\n", f, name)
				}
				for _, name := range result.Missing {
					fmt.Fprintf(out, "  %s: missing %s\n", f, name)
				}
				for _, name := range result.Stale {
					fmt.Fprintf(out, "  %s: stale %s\n", f, name)
				}
			}

			return errors.WithHint(ErrOutOfDate, "run `typeweaver generate` to update")
		},
	}

	sel.addSourceFlags(cmd)
	sel.addFormatFlag(cmd)
	return cmd
}
