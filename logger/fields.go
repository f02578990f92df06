package logger

import "go.uber.org/zap"

// Standard field names for consistent structured logging across typeweaver.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Sources
	FieldFile     = "file"
	FieldLine     = "line"
	FieldProducer = "producer"

	// Output
	FieldFormat    = "format"
	FieldEntity    = "entity"
	FieldOutputDir = "output_dir"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts
	FieldCount = "count"
)

// ComponentLogger returns a named child of parent for a specific component.
//
// Example:
//
//	type Watcher struct {
//	    log *zap.SugaredLogger
//	}
//
//	func NewWatcher(log *zap.SugaredLogger) *Watcher {
//	    return &Watcher{log: logger.ComponentLogger(log, "pipeline.watch")}
//	}
func ComponentLogger(parent *zap.SugaredLogger, name string) *zap.SugaredLogger {
	return parent.Named(name)
}
