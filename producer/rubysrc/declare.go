package rubysrc

import "github.com/teranos/typeweaver/ir"

// QualifiedName returns "Namespace::Name", or Name without a namespace.
func (d *Decl) QualifiedName() string {
	if d.Namespace == "" {
		return d.Name
	}
	return d.Namespace + "::" + d.Name
}

// Declare adds d to g as a class or module, converting each of its methods
// with method.
func Declare(g *ir.TypeGraph, d *Decl, method func(*MethodDef) *ir.Method) {
	switch d.Kind {
	case ClassDecl:
		c := ir.NewClass(d.Name, d.Superclass, d.Namespace)
		for _, m := range d.Methods {
			c.AddMethod(method(m))
		}
		g.AddClass(c)
	case ModuleDecl:
		mod := ir.NewModule(d.Name, d.Namespace)
		for _, m := range d.Methods {
			mod.AddMethod(method(m))
		}
		g.AddModule(mod)
	}
}
