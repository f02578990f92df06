package ir

// ParamKind is the closed taxonomy of Ruby parameter kinds.
// Serializers map every kind independently; kinds are never collapsed.
type ParamKind int

const (
	Required           ParamKind = iota // def m(a)
	OptionalPositional                  // def m(a = 1)
	KeywordRequired                     // def m(a:)
	KeywordOptional                     // def m(a: 1)
	Rest                                // def m(*a)
	KeywordRest                         // def m(**a)
	Block                               // def m(&a)
)

var paramKindNames = [...]string{
	Required:           "required",
	OptionalPositional: "optional",
	KeywordRequired:    "keyword",
	KeywordOptional:    "keyword_optional",
	Rest:               "rest",
	KeywordRest:        "keyword_rest",
	Block:              "block",
}

// ParamKinds returns all seven kinds in declaration order.
func ParamKinds() []ParamKind {
	return []ParamKind{
		Required,
		OptionalPositional,
		KeywordRequired,
		KeywordOptional,
		Rest,
		KeywordRest,
		Block,
	}
}

func (k ParamKind) String() string {
	if k < 0 || int(k) >= len(paramKindNames) {
		return "unknown"
	}
	return paramKindNames[k]
}

// MarshalYAML encodes the kind by name.
func (k ParamKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// Parameter is a single method parameter. Type may be nil when the producer
// has no type information; serializers substitute their untyped sentinel.
type Parameter struct {
	Name string    `yaml:"name"`
	Type *TypeRef  `yaml:"type,omitempty"`
	Kind ParamKind `yaml:"kind"`

	// DefaultValue is the default expression source text, when known.
	// It is never rendered.
	DefaultValue string `yaml:"default,omitempty"`
}

// NewParameter creates an untyped parameter of the given kind.
func NewParameter(name string, kind ParamKind) *Parameter {
	return &Parameter{Name: name, Kind: kind}
}

// IsRequired reports whether the parameter is a required positional.
func (p *Parameter) IsRequired() bool {
	return p.Kind == Required
}

// IsOptional reports whether the parameter may be omitted by the caller
// (optional positional or optional keyword).
func (p *Parameter) IsOptional() bool {
	return p.Kind == OptionalPositional || p.Kind == KeywordOptional
}

// IsKeyword reports whether the parameter is passed by keyword.
func (p *Parameter) IsKeyword() bool {
	return p.Kind == KeywordRequired || p.Kind == KeywordOptional
}

// IsRest reports whether the parameter collects remaining arguments.
func (p *Parameter) IsRest() bool {
	return p.Kind == Rest || p.Kind == KeywordRest
}

// IsBlock reports whether the parameter captures the block.
func (p *Parameter) IsBlock() bool {
	return p.Kind == Block
}
