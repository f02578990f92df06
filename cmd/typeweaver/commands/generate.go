package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/typeweaver/config"
	"github.com/teranos/typeweaver/ir"
	"github.com/teranos/typeweaver/pipeline"
	"github.com/teranos/typeweaver/producer"
)

// selection holds the flags that narrow a run: --source, --format, --file.
type selection struct {
	sources []string
	formats []string
	files   []string
}

func (s *selection) addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&s.sources, "source", nil, "Type sources to use: static, yard, rails (default: generation_sources)")
	cmd.Flags().StringSliceVar(&s.files, "file", nil, "Only scan these files (default: every .rb file under the root)")
}

func (s *selection) addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&s.formats, "format", nil, "Output formats: rbi, rbs (default: output_formats)")
}

// parse checks every selector before anything is read.
func (s *selection) parse() ([]producer.Kind, []ir.Format, error) {
	var kinds []producer.Kind
	for _, name := range s.sources {
		k, err := config.ParseSource(name)
		if err != nil {
			return nil, nil, err
		}
		kinds = append(kinds, k)
	}

	var formats []ir.Format
	for _, name := range s.formats {
		f, err := config.ParseFormat(name)
		if err != nil {
			return nil, nil, err
		}
		formats = append(formats, f)
	}
	return kinds, formats, nil
}

// options loads the project and applies the selection on top of its config.
func (s *selection) options(opts *globalOptions) (pipeline.Options, error) {
	kinds, formats, err := s.parse()
	if err != nil {
		return pipeline.Options{}, err
	}

	root, cfg, err := opts.load()
	if err != nil {
		return pipeline.Options{}, err
	}

	run, err := pipeline.FromConfig(root, cfg)
	if err != nil {
		return pipeline.Options{}, err
	}

	if len(kinds) > 0 {
		run.Sources = kinds
		// Naming rails explicitly enables it
		run.Database = cfg.DatabasePath(root)
	}
	if len(formats) > 0 {
		run.Formats = formats
		for _, f := range formats {
			run.OutputDirs[f] = cfg.OutputDir(root, f)
		}
	}
	run.Files = s.files
	return run, nil
}

func newGenerateCmd(opts *globalOptions) *cobra.Command {
	sel := &selection{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate type signatures",
		Long: `Collect types from the configured sources and write one signature file
per class or module into each format's output directory.

A source file that cannot be handled is skipped with a warning; run with -v
to see why. Write errors abort the run.

Examples:
  typeweaver generate
  typeweaver generate --source static --source yard
  typeweaver generate --format rbs --file app/models/user.rb`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := sel.options(opts)
			if err != nil {
				return err
			}

			report, err := pipeline.Run(cmd.Context(), run, opts.logger(cmd))
			if err != nil {
				return err
			}

			printReport(cmd.OutOrStdout(), run, report)
			return nil
		},
	}

	sel.addSourceFlags(cmd)
	sel.addFormatFlag(cmd)
	return cmd
}

func printReport(w io.Writer, run pipeline.Options, report *pipeline.Report) {
	fmt.Fprintln(w, pterm.LightGreen(fmt.Sprintf("✓ Generated %d entities (%d modules, %d classes) from %d files in %dms",
		report.Graph.Len(), report.Modules(), report.Classes(), report.Files, report.Duration.Milliseconds())))

	formats := make([]ir.Format, 0, len(report.Written))
	for f := range report.Written {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })

	for _, f := range formats {
		result := report.Written[f]
		fmt.Fprintf(w, "  %s: %d files → %s\n", f, len(result.Files), relativeTo(run.Root, result.OutputDir))
		if result.Overwritten > 0 {
			fmt.Fprintln(w, pterm.Yellow(fmt.Sprintf("  %s: %d files written more than once (last writer wins)", f, result.Overwritten)))
		}
	}

	if report.Skipped > 0 {
		fmt.Fprintln(w, pterm.Yellow(fmt.Sprintf("⚠ Skipped %d sources (run with -v for details)", report.Skipped)))
	}
	for _, k := range report.Unavailable {
		fmt.Fprintln(w, pterm.Yellow(fmt.Sprintf("⚠ %s source unavailable", k)))
	}
}
