package ir

// Visibility is recorded by producers but not consulted by any serializer.
type Visibility int

const (
	Public Visibility = iota
	Protected
	Private
)

func (v Visibility) String() string {
	switch v {
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "public"
	}
}

// MarshalYAML encodes the visibility by name.
func (v Visibility) MarshalYAML() (interface{}, error) {
	return v.String(), nil
}

// Method is a method declaration on a class or module.
type Method struct {
	Name string `yaml:"name"`

	// ClassScoped marks singleton methods (def self.x, class << self).
	ClassScoped bool `yaml:"class_scoped,omitempty"`

	Visibility Visibility   `yaml:"visibility"`
	Parameters []*Parameter `yaml:"parameters,omitempty"`
	ReturnType *TypeRef     `yaml:"return_type,omitempty"`
}

// NewMethod creates a public instance method with no parameters.
func NewMethod(name string) *Method {
	return &Method{Name: name}
}

// NewClassMethod creates a public class-scoped method with no parameters.
func NewClassMethod(name string) *Method {
	return &Method{Name: name, ClassScoped: true}
}

// AddParameter appends a parameter, keeping declaration order.
func (m *Method) AddParameter(p *Parameter) {
	m.Parameters = append(m.Parameters, p)
}

// SetReturnType sets the return type; nil means "no information".
func (m *Method) SetReturnType(t *TypeRef) {
	m.ReturnType = t
}

// IsInstanceMethod reports whether the method is instance-scoped.
func (m *Method) IsInstanceMethod() bool {
	return !m.ClassScoped
}
