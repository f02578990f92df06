package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset  = "\x1b[0m"
	colorBold   = "\x1b[1m"
	colorTime   = "\x1b[38;5;108m" // muted aqua
	colorName   = "\x1b[38;5;208m" // warm orange
	colorKey    = "\x1b[38;5;109m" // soft blue
	colorWarn   = "\x1b[38;5;214m"
	colorWarnBg = "\x1b[48;5;58m"
	colorErr    = "\x1b[38;5;167m"
	colorErrBg  = "\x1b[48;5;88m"
)

var bufferPool = buffer.NewPool()

// consoleEncoder implements a calm, compact console encoder.
// Format: "13:04:35  WARN  pipeline  Skipping source  file=app/models/user.rb producer=static"
//
// Fields added with With() are kept in the embedded map encoder so they are
// rendered alongside per-entry fields.
type consoleEncoder struct {
	*zapcore.MapObjectEncoder
	color bool
}

func newConsoleEncoder(color bool) *consoleEncoder {
	return &consoleEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder(), color: color}
}

func (enc *consoleEncoder) Clone() zapcore.Encoder {
	clone := zapcore.NewMapObjectEncoder()
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return &consoleEncoder{MapObjectEncoder: clone, color: enc.color}
}

func (enc *consoleEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	all := enc.Clone().(*consoleEncoder)
	for _, f := range fields {
		f.AddTo(all.MapObjectEncoder)
	}

	final := bufferPool.Get()

	final.AppendString(enc.paint(colorTime, ent.Time.Format("15:04:05")))

	// Level: only shown for WARN and above
	if ent.Level >= zapcore.WarnLevel {
		final.AppendString("  ")
		final.AppendString(enc.level(ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(enc.paint(colorName, ent.LoggerName))
	}

	final.AppendString("  ")
	final.AppendString(ent.Message)

	if pairs := all.pairs(); pairs != "" {
		final.AppendString("  ")
		final.AppendString(pairs)
	}

	final.AppendString("\n")
	return final, nil
}

// pairs renders fields as key=value sorted by key. Verbose error stacks
// (errorVerbose) are left to the JSON encoder.
func (enc *consoleEncoder) pairs() string {
	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		if strings.HasSuffix(k, "Verbose") {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = enc.paint(colorKey, k) + "=" + fmt.Sprint(enc.Fields[k])
	}
	return strings.Join(parts, " ")
}

func (enc *consoleEncoder) level(l zapcore.Level) string {
	if l == zapcore.WarnLevel {
		return enc.paint(colorBold+colorWarnBg+colorWarn, l.CapitalString())
	}
	return enc.paint(colorBold+colorErrBg+colorErr, l.CapitalString())
}

func (enc *consoleEncoder) paint(color, s string) string {
	if !enc.color {
		return s
	}
	return color + s + colorReset
}
