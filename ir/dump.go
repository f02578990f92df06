package ir

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/teranos/typeweaver/errors"
)

// Dump writes the graph as YAML. Field order follows the struct definitions,
// so the output is stable for a given graph.
func Dump(w io.Writer, g *TypeGraph) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(g); err != nil {
		return errors.Wrap(err, "failed to encode type graph")
	}
	return errors.Wrap(enc.Close(), "failed to flush type graph")
}
