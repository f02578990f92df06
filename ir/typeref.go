package ir

import "strings"

// nullableMarker is the trailing sigil ParseTypeRef strips from a type string.
const nullableMarker = "?"

// TypeRef is a recursive type descriptor: a name, ordered generic arguments and
// a nullability flag. Producers never build cycles through Generics.
type TypeRef struct {
	Name     string     `yaml:"name"`
	Generics []*TypeRef `yaml:"generics,omitempty"`
	Nullable bool       `yaml:"nullable,omitempty"`
}

// NewTypeRef creates a non-nullable TypeRef with the given generic arguments.
func NewTypeRef(name string, generics ...*TypeRef) *TypeRef {
	return &TypeRef{Name: name, Generics: generics}
}

// NullableTypeRef creates a nullable TypeRef with the given generic arguments.
func NullableTypeRef(name string, generics ...*TypeRef) *TypeRef {
	return &TypeRef{Name: name, Generics: generics, Nullable: true}
}

// ParseTypeRef builds a TypeRef from a free-form type string.
//
// Only a trailing "?" is interpreted (as nullability). Everything else is kept
// verbatim as the name, so "Array<String>" or "Array[String]" never yields
// generics. Round-tripping a rendered generic type loses its arguments.
func ParseTypeRef(s string) *TypeRef {
	nullable := strings.HasSuffix(s, nullableMarker)
	name := s
	if nullable {
		name = s[:len(s)-len(nullableMarker)]
	}
	return &TypeRef{Name: name, Nullable: nullable}
}

// Render encodes the type for the given format. Generics render in order
// inside square brackets in both formats; nullability is T.nilable(...) in RBI
// and a trailing "?" in RBS.
func (t *TypeRef) Render(f Format) string {
	base := t.Name
	if len(t.Generics) > 0 {
		args := make([]string, len(t.Generics))
		for i, g := range t.Generics {
			args[i] = g.Render(f)
		}
		base = t.Name + "[" + strings.Join(args, ", ") + "]"
	}

	if !t.Nullable {
		return base
	}

	switch f {
	case FormatRBI:
		return "T.nilable(" + base + ")"
	case FormatRBS:
		return base + nullableMarker
	default:
		return base
	}
}
