// Package serializer writes a TypeGraph to disk as Ruby type signature files.
//
// # Architecture
//
// The package uses a two-layer design:
//  1. Format-agnostic file handling (this package) walks the graph, names files
//     and writes them
//  2. Format-specific renderers (rbi/, rbs/) turn one entity into file content
//
// # Output Contract
//
// One file per entity, named after its lowercased short name, written in
// TypeGraph.AllNodes order. Existing files are overwritten without merging, so
// two entities sharing a short name leave only the later one on disk. Output
// is fully determined by the graph: no timestamps, no map iteration.
package serializer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/teranos/typeweaver/errors"
	"github.com/teranos/typeweaver/ir"
)

// indentUnit is one level of indentation in every output format.
const indentUnit = "  "

// Renderer turns a single entity into the full contents of its output file.
// Each target format (RBI, RBS) implements this interface.
type Renderer interface {
	// Format returns the output format this renderer produces
	Format() ir.Format

	// Render returns the file contents for node, ending in exactly one newline
	Render(node ir.Node) string
}

// Result describes what one Serialize call wrote.
type Result struct {
	Format    ir.Format
	OutputDir string

	// Files lists every path written, in order of first write. A path
	// rewritten by a later entity appears once.
	Files []string

	// Overwritten counts writes that replaced a file written earlier in the
	// same call.
	Overwritten int
}

// Serialize renders every node of g with r and writes it under outputDir,
// creating the directory if needed. The first filesystem error aborts.
func Serialize(r Renderer, g *ir.TypeGraph, outputDir string) (*Result, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %s", outputDir)
	}

	result := &Result{Format: r.Format(), OutputDir: outputDir}
	written := make(map[string]bool)

	for _, node := range g.AllNodes() {
		path := filepath.Join(outputDir, FileName(node, r.Format()))
		if err := os.WriteFile(path, []byte(r.Render(node)), 0644); err != nil {
			return result, errors.Wrapf(err, "failed to write %s", path)
		}

		if written[path] {
			result.Overwritten++
			continue
		}
		written[path] = true
		result.Files = append(result.Files, path)
	}

	return result, nil
}

// FileName returns the output file name for node: its lowercased short name
// plus the format's extension. Namespaces do not contribute.
func FileName(node ir.Node, f ir.Format) string {
	return strings.ToLower(node.ShortName()) + f.Extension()
}

// Indent prefixes every line of text with level indentation units.
func Indent(text string, level int) string {
	prefix := strings.Repeat(indentUnit, level)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
