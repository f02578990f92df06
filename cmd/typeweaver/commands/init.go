package commands

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/typeweaver/config"
	"github.com/teranos/typeweaver/errors"
	"github.com/teranos/typeweaver/ir"
)

func newInitCmd(opts *globalOptions) *cobra.Command {
	var (
		format string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the typeweaver config and output directories",
		Long: `Create .typeweaver/config.toml with default settings and the output
directories for the selected formats.

Examples:
  typeweaver init                 # Both .rbi and .rbs
  typeweaver init --format rbs    # RBS only
  typeweaver init --force         # Overwrite an existing config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := parseFormatFlag(format)
			if err != nil {
				return err
			}

			root, err := opts.projectRoot()
			if err != nil {
				return err
			}

			path := config.Path(root)
			if _, err := os.Stat(path); err == nil && !force {
				return errors.WithHint(
					errors.Newf("%s already exists", relativeTo(root, path)),
					"pass --force to overwrite it")
			}

			cfg := config.Default()
			cfg.OutputFormats = make([]string, len(formats))
			for i, f := range formats {
				cfg.OutputFormats[i] = f.String()
			}

			if _, err := config.Save(root, cfg); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, pterm.LightGreen("✓ Created "+relativeTo(root, path)))

			for _, f := range formats {
				dir := cfg.OutputDir(root, f)
				if err := os.MkdirAll(dir, config.DefaultDirPermissions); err != nil {
					return errors.Wrapf(err, "failed to create %s", dir)
				}
				fmt.Fprintln(out, pterm.LightGreen("✓ Created "+relativeTo(root, dir)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "both", "Output format: rbi, rbs, both")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config")
	return cmd
}

// parseFormatFlag accepts a single format name or "both".
func parseFormatFlag(s string) ([]ir.Format, error) {
	if s == "both" {
		return ir.Formats(), nil
	}
	f, err := config.ParseFormat(s)
	if err != nil {
		return nil, err
	}
	return []ir.Format{f}, nil
}
