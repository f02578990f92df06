package ir

// TypeGraph holds every declaration collected during one generation run.
//
// It is append-only: entities are never removed, merged or deduplicated.
// A TypeGraph is populated by producers, then read by serializers; it is not
// safe for concurrent mutation.
type TypeGraph struct {
	Modules []*Module `yaml:"modules"`
	Classes []*Class  `yaml:"classes"`
}

// NewTypeGraph returns an empty graph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{}
}

// AddClass appends a class. Duplicate names are kept.
func (g *TypeGraph) AddClass(c *Class) {
	g.Classes = append(g.Classes, c)
}

// AddModule appends a module. Duplicate names are kept.
func (g *TypeGraph) AddModule(m *Module) {
	g.Modules = append(g.Modules, m)
}

// Append adds every module and then every class of other, preserving their
// insertion order. Entities are shared, not copied.
func (g *TypeGraph) Append(other *TypeGraph) {
	g.Modules = append(g.Modules, other.Modules...)
	g.Classes = append(g.Classes, other.Classes...)
}

// FindClass returns the first class with the given short name, or nil.
func (g *TypeGraph) FindClass(name string) *Class {
	for _, c := range g.Classes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FindModule returns the first module with the given short name, or nil.
func (g *TypeGraph) FindModule(name string) *Module {
	for _, m := range g.Modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// AllNodes returns all modules followed by all classes, each segment in
// insertion order. This is the iteration order of every serializer.
func (g *TypeGraph) AllNodes() []Node {
	nodes := make([]Node, 0, len(g.Modules)+len(g.Classes))
	for _, m := range g.Modules {
		nodes = append(nodes, m)
	}
	for _, c := range g.Classes {
		nodes = append(nodes, c)
	}
	return nodes
}

// Len returns the number of entities in the graph.
func (g *TypeGraph) Len() int {
	return len(g.Modules) + len(g.Classes)
}
