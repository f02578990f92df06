// Package ir is the intermediate representation shared by every producer and
// serializer in typeweaver.
//
// # Architecture
//
// Producers (static analysis, YARD comments, schema reflection) populate a
// TypeGraph through AddClass/AddModule. Serializers then walk AllNodes() and
// render each node to a target format. The graph is append-only and never
// resolves references between entities: a superclass or a return type is kept
// as the producer wrote it.
//
// # Design Decisions
//
//   - TypeRef values parsed from strings only carry nullability. Generics are
//     set in code, never parsed back out of a rendered string.
//   - AllNodes() returns every module before every class. Serializers rely on
//     that order for last-writer-wins file collisions.
//   - No maps anywhere in the model, so rendering is deterministic.
package ir

// Format identifies a target encoding for rendered type declarations.
type Format int

const (
	// FormatRBI is the strict-typed stub format (Sorbet RBI): one sig line and
	// one body-less def line per method.
	FormatRBI Format = iota

	// FormatRBS is the structural signature format (RBS): one self-contained
	// def line per method.
	FormatRBS
)

// Formats returns every supported format in a stable order.
func Formats() []Format {
	return []Format{FormatRBI, FormatRBS}
}

// String returns the selector used in configuration ("rbi", "rbs").
func (f Format) String() string {
	switch f {
	case FormatRBI:
		return "rbi"
	case FormatRBS:
		return "rbs"
	default:
		return "unknown"
	}
}

// Extension returns the output file extension including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatRBI:
		return ".rbi"
	case FormatRBS:
		return ".rbs"
	default:
		return ""
	}
}
