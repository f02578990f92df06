package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/typeweaver/logger"
	"github.com/teranos/typeweaver/pipeline"
)

func newWatchCmd(opts *globalOptions) *cobra.Command {
	sel := &selection{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate types whenever Ruby sources change",
		Long: `Run generate once, then again after every burst of changes to .rb files
under the project root. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := sel.options(opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := opts.logger(cmd)
			out := cmd.OutOrStdout()

			generate := func(ctx context.Context) error {
				report, err := pipeline.Run(ctx, run, log)
				if err != nil {
					return err
				}
				printReport(out, run, report)
				return nil
			}

			if err := generate(ctx); err != nil {
				return err
			}

			w, err := pipeline.NewWatcher(run.Root, run.Exclude, generate, log)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, pterm.LightBlue("Watching "+run.Root+" for changes (Ctrl-C to stop)"))
			log.Infow("Watching", logger.FieldFile, run.Root)
			return w.Watch(ctx)
		},
	}

	sel.addSourceFlags(cmd)
	sel.addFormatFlag(cmd)
	return cmd
}
