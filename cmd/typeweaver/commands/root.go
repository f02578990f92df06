// Package commands implements the typeweaver command line.
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/teranos/typeweaver/config"
	"github.com/teranos/typeweaver/errors"
	"github.com/teranos/typeweaver/logger"
)

// ErrOutOfDate is returned by `typeweaver check` when generated types differ
// from what is on disk.
var ErrOutOfDate = errors.New("generated types are out of date")

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	root     string
	verbose  int
	jsonLogs bool
}

// NewRootCmd builds the typeweaver command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "typeweaver",
		Short: "Generate RBI and RBS type signatures for Ruby projects",
		Long: `typeweaver collects type information about a Ruby project and writes it
as Sorbet interface files (.rbi) and Ruby signature files (.rbs).

Type sources:
  static - classes, modules, methods and parameter kinds from the syntax tree
  yard   - @param and @return documentation tags
  rails  - columns and associations from the development database

Examples:
  typeweaver init                   # Create .typeweaver/config.toml
  typeweaver generate               # Write .typeweaver/types/{rbi,rbs}
  typeweaver generate --source yard # Only use documentation tags
  typeweaver check                  # Fail if generated types are stale
  typeweaver watch                  # Regenerate on every change`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.root, "root", "", "Project root (default: enclosing git worktree, else the working directory)")
	cmd.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "Increase output verbosity (-v, -vv)")
	cmd.PersistentFlags().BoolVar(&opts.jsonLogs, "json-logs", false, "Write logs as JSON")

	cmd.AddCommand(newInitCmd(opts))
	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newGraphCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// logger creates the run's logger, writing to the command's stderr.
func (o *globalOptions) logger(cmd *cobra.Command) *zap.SugaredLogger {
	return logger.New(logger.Options{
		Verbosity: o.verbose,
		JSON:      o.jsonLogs,
		Color:     pterm.PrintColor && !o.jsonLogs,
		Output:    zapcore.AddSync(cmd.ErrOrStderr()),
	})
}

// projectRoot resolves --root, falling back to the enclosing git worktree.
func (o *globalOptions) projectRoot() (string, error) {
	if o.root != "" {
		abs, err := filepath.Abs(o.root)
		return abs, errors.Wrapf(err, "failed to resolve %s", o.root)
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed to get working directory")
	}
	return config.FindRoot(wd)
}

// load resolves the project root and reads its config.
func (o *globalOptions) load() (string, *config.Config, error) {
	root, err := o.projectRoot()
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return "", nil, err
	}
	return root, cfg, nil
}

// PrintError writes err and any hints attached to it.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, pterm.Red("Error: "+err.Error()))
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintln(w, pterm.Yellow("  hint: "+hint))
	}
}

// ExitCode maps a command error to the process exit status: 1 when types are
// out of date, 2 for anything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrOutOfDate):
		return 1
	default:
		return 2
	}
}

// relativeTo shortens path for display when it lies under root.
func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
