package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeRef_Render(t *testing.T) {
	tests := []struct {
		name    string
		typ     *TypeRef
		wantRBI string
		wantRBS string
	}{
		{
			name:    "plain",
			typ:     NewTypeRef("String"),
			wantRBI: "String",
			wantRBS: "String",
		},
		{
			name:    "nullable",
			typ:     NullableTypeRef("Integer"),
			wantRBI: "T.nilable(Integer)",
			wantRBS: "Integer?",
		},
		{
			name:    "nullable generic",
			typ:     NullableTypeRef("Array", NewTypeRef("String")),
			wantRBI: "T.nilable(Array[String])",
			wantRBS: "Array[String]?",
		},
		{
			name:    "generic arguments keep order",
			typ:     NewTypeRef("Hash", NewTypeRef("Symbol"), NewTypeRef("Integer")),
			wantRBI: "Hash[Symbol, Integer]",
			wantRBS: "Hash[Symbol, Integer]",
		},
		{
			name:    "nested nullable argument",
			typ:     NewTypeRef("Array", NullableTypeRef("Hash", NewTypeRef("String"), NullableTypeRef("User"))),
			wantRBI: "Array[T.nilable(Hash[String, T.nilable(User)])]",
			wantRBS: "Array[Hash[String, User?]?]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantRBI, tt.typ.Render(FormatRBI))
			assert.Equal(t, tt.wantRBS, tt.typ.Render(FormatRBS))
		})
	}
}

func TestParseTypeRef(t *testing.T) {
	tests := []struct {
		input        string
		wantName     string
		wantNullable bool
	}{
		{"String", "String", false},
		{"String?", "String", true},
		{"Array<String>", "Array<String>", false},
		{"Array[String]?", "Array[String]", true},
		{"Integer??", "Integer?", true},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseTypeRef(tt.input)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantNullable, got.Nullable)
			assert.Empty(t, got.Generics, "generics are never parsed from strings")
		})
	}
}

// Parsing a rendered RBS type recovers nullability but never generics.
func TestParseTypeRef_RoundTripLosesGenerics(t *testing.T) {
	inputs := []*TypeRef{
		NewTypeRef("String"),
		NullableTypeRef("String"),
		NewTypeRef("Array", NewTypeRef("String")),
		NullableTypeRef("Hash", NewTypeRef("Symbol"), NullableTypeRef("Integer")),
	}

	for _, original := range inputs {
		rendered := original.Render(FormatRBS)
		t.Run(rendered, func(t *testing.T) {
			parsed := ParseTypeRef(rendered)

			assert.Equal(t, original.Nullable, parsed.Nullable)
			assert.Empty(t, parsed.Generics)
			if len(original.Generics) > 0 {
				assert.NotEqual(t, original.Name, parsed.Name, "generic syntax stays in the name")
				assert.Contains(t, parsed.Name, "[")
			} else {
				assert.Equal(t, original.Name, parsed.Name)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "rbi", FormatRBI.String())
	assert.Equal(t, "rbs", FormatRBS.String())
	assert.Equal(t, ".rbi", FormatRBI.Extension())
	assert.Equal(t, ".rbs", FormatRBS.Extension())
	assert.Equal(t, "unknown", Format(42).String())
	assert.Equal(t, []Format{FormatRBI, FormatRBS}, Formats())
}

func TestParamKind_String(t *testing.T) {
	names := make([]string, 0, 7)
	for _, k := range ParamKinds() {
		names = append(names, k.String())
	}
	assert.Equal(t, []string{
		"required", "optional", "keyword", "keyword_optional", "rest", "keyword_rest", "block",
	}, names)
	assert.Equal(t, "unknown", ParamKind(-1).String())
}

func TestParameter_Predicates(t *testing.T) {
	tests := []struct {
		kind     ParamKind
		required bool
		optional bool
		keyword  bool
		rest     bool
		block    bool
	}{
		{Required, true, false, false, false, false},
		{OptionalPositional, false, true, false, false, false},
		{KeywordRequired, false, false, true, false, false},
		{KeywordOptional, false, true, true, false, false},
		{Rest, false, false, false, true, false},
		{KeywordRest, false, false, false, true, false},
		{Block, false, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			p := NewParameter("x", tt.kind)
			assert.Equal(t, tt.required, p.IsRequired())
			assert.Equal(t, tt.optional, p.IsOptional())
			assert.Equal(t, tt.keyword, p.IsKeyword())
			assert.Equal(t, tt.rest, p.IsRest())
			assert.Equal(t, tt.block, p.IsBlock())
		})
	}
}
