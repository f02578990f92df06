package ir

// namespaceSeparator joins a namespace and a short name.
const namespaceSeparator = "::"

// Node is a top-level entity in a TypeGraph: either a *Class or a *Module.
type Node interface {
	// ShortName is the entity name without its namespace.
	ShortName() string
	// FullName is Namespace::Name, or just Name without a namespace.
	FullName() string

	node()
}

// InstanceVariable is a typed @ivar declared on a class.
// No producer records these yet.
type InstanceVariable struct {
	Name string   `yaml:"name"`
	Type *TypeRef `yaml:"type,omitempty"`
}

// Constant is a typed constant declared on a module.
// No producer records these yet.
type Constant struct {
	Name string   `yaml:"name"`
	Type *TypeRef `yaml:"type,omitempty"`
}

// Class is a class declaration.
//
// Superclass is free text and is never resolved against the graph. Namespace
// is a single enclosing segment ("Admin"), or empty.
type Class struct {
	Name              string              `yaml:"name"`
	Superclass        string              `yaml:"superclass,omitempty"`
	Namespace         string              `yaml:"namespace,omitempty"`
	Methods           []*Method           `yaml:"methods,omitempty"`
	InstanceVariables []*InstanceVariable `yaml:"instance_variables,omitempty"`
}

// NewClass creates an empty class with an optional superclass and namespace.
func NewClass(name, superclass, namespace string) *Class {
	return &Class{Name: name, Superclass: superclass, Namespace: namespace}
}

// AddMethod appends a method, keeping declaration order.
func (c *Class) AddMethod(m *Method) {
	c.Methods = append(c.Methods, m)
}

// AddInstanceVariable records an instance variable.
func (c *Class) AddInstanceVariable(name string, t *TypeRef) {
	c.InstanceVariables = append(c.InstanceVariables, &InstanceVariable{Name: name, Type: t})
}

func (c *Class) ShortName() string { return c.Name }
func (c *Class) FullName() string  { return qualify(c.Namespace, c.Name) }
func (c *Class) node()             {}

// Module is a module declaration.
type Module struct {
	Name      string      `yaml:"name"`
	Namespace string      `yaml:"namespace,omitempty"`
	Methods   []*Method   `yaml:"methods,omitempty"`
	Constants []*Constant `yaml:"constants,omitempty"`
}

// NewModule creates an empty module with an optional namespace.
func NewModule(name, namespace string) *Module {
	return &Module{Name: name, Namespace: namespace}
}

// AddMethod appends a method, keeping declaration order.
func (m *Module) AddMethod(method *Method) {
	m.Methods = append(m.Methods, method)
}

// AddConstant records a constant.
func (m *Module) AddConstant(c *Constant) {
	m.Constants = append(m.Constants, c)
}

func (m *Module) ShortName() string { return m.Name }
func (m *Module) FullName() string  { return qualify(m.Namespace, m.Name) }
func (m *Module) node()             {}

func qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + namespaceSeparator + name
}
