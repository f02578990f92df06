package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/teranos/typeweaver/errors"
	"github.com/teranos/typeweaver/ir"
	"github.com/teranos/typeweaver/serializer"
)

// CheckReport holds the comparison of fresh output with each format's
// output directory.
type CheckReport struct {
	Formats []ir.Format
	Results map[ir.Format]*serializer.CheckResult
}

// UpToDate reports whether every format matched.
func (r *CheckReport) UpToDate() bool {
	for _, res := range r.Results {
		if !res.UpToDate() {
			return false
		}
	}
	return true
}

// Check generates into a temporary directory and compares the result with
// opts.OutputDirs. Nothing under the output directories is modified.
func Check(ctx context.Context, opts Options, log *zap.SugaredLogger) (*CheckReport, error) {
	if _, err := opts.renderers(); err != nil {
		return nil, err
	}

	tempDir, err := os.MkdirTemp("", "typeweaver-check-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	generated := opts
	generated.OutputDirs = make(map[ir.Format]string, len(opts.Formats))
	for _, f := range opts.Formats {
		generated.OutputDirs[f] = filepath.Join(tempDir, f.String())
	}

	if _, err := Run(ctx, generated, log); err != nil {
		return nil, errors.Wrap(err, "failed to generate types")
	}

	report := &CheckReport{
		Formats: opts.Formats,
		Results: make(map[ir.Format]*serializer.CheckResult, len(opts.Formats)),
	}
	for _, f := range opts.Formats {
		result, err := serializer.Compare(generated.OutputDirs[f], opts.OutputDirs[f])
		if err != nil {
			return nil, errors.Wrapf(err, "failed to compare %s output", f)
		}
		report.Results[f] = result
	}
	return report, nil
}
