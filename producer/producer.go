// Package producer defines the boundary between type sources and the IR.
//
// A producer scans one source file and populates a TypeGraph through its
// public API (AddClass, AddModule). Producers never read what other producers
// added and never assume any other producer ran.
//
// Three producers exist:
//   - static: structural walk of the Ruby syntax tree (producer/static)
//   - yard: types from @param/@return documentation tags (producer/yard)
//   - rails: columns and associations from the live database schema (producer/schema)
package producer

import (
	"context"

	"github.com/teranos/typeweaver/ir"
)

// Kind selects a producer. The set is closed; string parsing happens only in
// the config and CLI layers.
type Kind int

const (
	Static Kind = iota
	Yard
	Rails
)

// Kinds returns every producer kind in default run order.
func Kinds() []Kind {
	return []Kind{Static, Yard, Rails}
}

// Valid reports whether k names a known producer.
func (k Kind) Valid() bool {
	return k >= Static && k <= Rails
}

func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Yard:
		return "yard"
	case Rails:
		return "rails"
	default:
		return "unknown"
	}
}

// Producer populates a TypeGraph from one source file.
type Producer interface {
	Kind() Kind

	// Scan reads path and adds what it finds to g. On error g may hold a
	// partial result; callers scan into a scratch graph and discard it.
	Scan(ctx context.Context, path string, g *ir.TypeGraph) error
}
