// Package pipeline runs one generation: discover sources, let each producer
// populate the graph, then serialize the graph once per format.
//
// Collection is tolerant: a source a producer cannot handle is logged and
// skipped, and its partial output is discarded. Serialization is not: the
// first write error aborts the run.
package pipeline

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/typeweaver/config"
	"github.com/teranos/typeweaver/db"
	"github.com/teranos/typeweaver/errors"
	"github.com/teranos/typeweaver/ir"
	"github.com/teranos/typeweaver/logger"
	"github.com/teranos/typeweaver/producer"
	"github.com/teranos/typeweaver/producer/schema"
	"github.com/teranos/typeweaver/producer/static"
	"github.com/teranos/typeweaver/producer/yard"
	"github.com/teranos/typeweaver/serializer"
	"github.com/teranos/typeweaver/serializer/rbi"
	"github.com/teranos/typeweaver/serializer/rbs"
)

// Options selects what one run reads and writes.
type Options struct {
	Root    string
	Sources []producer.Kind
	Formats []ir.Format

	// Files, when set, replaces discovery. Relative paths resolve against Root.
	Files   []string
	Exclude []string

	OutputDirs map[ir.Format]string

	// Database is the SQLite file the rails producer reflects on. Empty
	// disables the rails producer.
	Database string
}

// FromConfig builds run options from a loaded config.
func FromConfig(root string, cfg *config.Config) (Options, error) {
	sources, err := cfg.Sources()
	if err != nil {
		return Options{}, err
	}
	formats, err := cfg.Formats()
	if err != nil {
		return Options{}, err
	}

	opts := Options{
		Root:       root,
		Sources:    sources,
		Formats:    formats,
		Exclude:    cfg.ExcludePaths,
		OutputDirs: make(map[ir.Format]string, len(formats)),
	}
	for _, f := range formats {
		opts.OutputDirs[f] = cfg.OutputDir(root, f)
	}
	if cfg.Rails.Enabled {
		opts.Database = cfg.DatabasePath(root)
	}
	return opts, nil
}

// Report summarizes one run.
type Report struct {
	Graph *ir.TypeGraph

	// Files is the number of source files considered
	Files int

	// Scanned counts successful (producer, file) scans; Skipped counts
	// failed ones whose output was discarded
	Scanned int
	Skipped int

	// Unavailable lists producers that could not start, such as rails
	// without a database
	Unavailable []producer.Kind

	Written  map[ir.Format]*serializer.Result
	Duration time.Duration
}

// Modules returns the number of modules collected.
func (r *Report) Modules() int { return len(r.Graph.Modules) }

// Classes returns the number of classes collected.
func (r *Report) Classes() int { return len(r.Graph.Classes) }

// Run collects the graph and writes every configured format. Configuration
// errors are reported before any source is read or any file is written.
func Run(ctx context.Context, opts Options, log *zap.SugaredLogger) (*Report, error) {
	start := time.Now()

	renderers, err := opts.renderers()
	if err != nil {
		return nil, err
	}

	report, err := Collect(ctx, opts, log)
	if err != nil {
		return nil, err
	}

	for i, f := range opts.Formats {
		dir := opts.OutputDirs[f]
		result, err := serializer.Serialize(renderers[i], report.Graph, dir)
		if err != nil {
			return report, err
		}
		report.Written[f] = result

		log.Infow("Serialized",
			logger.FieldFormat, f.String(),
			logger.FieldOutputDir, dir,
			logger.FieldCount, len(result.Files))
	}

	report.Duration = time.Since(start)
	log.Infow("Generation complete",
		logger.FieldCount, report.Graph.Len(),
		logger.FieldDurationMS, report.Duration.Milliseconds())
	return report, nil
}

// validateSources rejects producer kinds outside the known set.
func (o Options) validateSources() error {
	for _, kind := range o.Sources {
		if !kind.Valid() {
			return errors.Wrapf(errors.ErrUnknownProducer, "%d", int(kind))
		}
	}
	return nil
}

// renderers validates the sources and formats of o and returns one renderer
// per format, in order.
func (o Options) renderers() ([]serializer.Renderer, error) {
	if err := o.validateSources(); err != nil {
		return nil, err
	}

	renderers := make([]serializer.Renderer, 0, len(o.Formats))
	for _, f := range o.Formats {
		r, err := NewSerializer(f)
		if err != nil {
			return nil, err
		}
		if o.OutputDirs[f] == "" {
			return nil, errors.NewConfigError("no output directory for format %s", f)
		}
		renderers = append(renderers, r)
	}
	return renderers, nil
}

// Collect runs every configured producer over every source file and returns
// the merged graph. Each (producer, file) scan goes into a scratch graph
// that is appended only on success.
func Collect(ctx context.Context, opts Options, log *zap.SugaredLogger) (*Report, error) {
	if err := opts.validateSources(); err != nil {
		return nil, err
	}

	files := resolveFiles(opts.Root, opts.Files)
	if len(opts.Files) == 0 {
		var err error
		if files, err = Discover(opts.Root, opts.Exclude); err != nil {
			return nil, err
		}
	}

	report := &Report{
		Graph:   ir.NewTypeGraph(),
		Files:   len(files),
		Written: make(map[ir.Format]*serializer.Result),
	}

	for _, kind := range opts.Sources {
		p, closeFn, err := newProducer(kind, opts, log)
		if errors.IsConfigError(err) {
			return nil, err
		}
		if err != nil {
			log.Warnw("Producer unavailable",
				logger.FieldProducer, kind.String(),
				logger.FieldError, err)
			report.Unavailable = append(report.Unavailable, kind)
			continue
		}

		err = scanAll(ctx, p, files, report, log)
		closeFn()
		if err != nil {
			return nil, err
		}
	}

	return report, nil
}

func scanAll(ctx context.Context, p producer.Producer, files []string, report *Report, log *zap.SugaredLogger) error {
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		scratch := ir.NewTypeGraph()
		if err := p.Scan(ctx, file, scratch); err != nil {
			log.Warnw("Skipping source",
				logger.FieldFile, file,
				logger.FieldProducer, p.Kind().String(),
				logger.FieldError, err)
			report.Skipped++
			continue
		}

		report.Graph.Append(scratch)
		report.Scanned++
	}
	return nil
}

// newProducer returns the producer for kind and a function releasing what
// it holds.
func newProducer(kind producer.Kind, opts Options, log *zap.SugaredLogger) (producer.Producer, func(), error) {
	noop := func() {}

	switch kind {
	case producer.Static:
		return static.New(log), noop, nil
	case producer.Yard:
		return yard.New(log), noop, nil
	case producer.Rails:
		if opts.Database == "" {
			return nil, noop, errors.New("rails reflection is disabled")
		}
		conn, err := db.OpenReadOnly(opts.Database, log)
		if err != nil {
			return nil, noop, err
		}
		return schema.New(conn, log), closer(conn, log), nil
	default:
		return nil, noop, errors.Wrapf(errors.ErrUnknownProducer, "%d", int(kind))
	}
}

func closer(conn *sql.DB, log *zap.SugaredLogger) func() {
	return func() {
		if err := conn.Close(); err != nil && !db.IsDatabaseClosed(err) {
			log.Warnw("Failed to close database", logger.FieldError, err)
		}
	}
}

// NewSerializer returns the renderer for f.
func NewSerializer(f ir.Format) (serializer.Renderer, error) {
	switch f {
	case ir.FormatRBI:
		return rbi.New(), nil
	case ir.FormatRBS:
		return rbs.New(), nil
	default:
		return nil, errors.Wrapf(errors.ErrUnknownFormat, "%d", int(f))
	}
}
