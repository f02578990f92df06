// Package rbi renders entities as Sorbet interface files.
//
// Every method becomes a sig line followed by a body-less def:
//
//	sig { params(id: Integer).returns(T.nilable(User)) }
//	def self.find(id); end
//
// Parameter kinds are not visible in the sig line. Optional, keyword, splat
// and block parameters all render as a plain name: type pair, and the def line
// lists bare names in declaration order.
package rbi

import (
	"fmt"
	"strings"

	"github.com/teranos/typeweaver/ir"
	"github.com/teranos/typeweaver/serializer"
)

const (
	header   = "# typed: strong"
	untyped  = "T.untyped"
	noReturn = "void"
)

// Serializer implements serializer.Renderer for RBI
type Serializer struct{}

// New creates a new RBI serializer
func New() *Serializer {
	return &Serializer{}
}

// Format returns ir.FormatRBI
func (s *Serializer) Format() ir.Format {
	return ir.FormatRBI
}

// Serialize writes one .rbi file per entity of g into outputDir.
func (s *Serializer) Serialize(g *ir.TypeGraph, outputDir string) (*serializer.Result, error) {
	return serializer.Serialize(s, g, outputDir)
}

// Render returns the full .rbi file for node (implements serializer.Renderer)
func (s *Serializer) Render(node ir.Node) string {
	switch n := node.(type) {
	case *ir.Class:
		return renderClass(n)
	case *ir.Module:
		return renderModule(n)
	default:
		return ""
	}
}

func renderClass(c *ir.Class) string {
	lines := []string{header, ""}

	if c.Namespace != "" {
		lines = append(lines,
			"module "+c.Namespace,
			serializer.Indent(renderClassBody(c), 1),
			"end",
		)
	} else {
		lines = append(lines, renderClassBody(c))
	}

	return strings.Join(lines, "\n") + "\n"
}

func renderClassBody(c *ir.Class) string {
	var sb strings.Builder

	sb.WriteString("class " + c.Name)
	if c.Superclass != "" {
		sb.WriteString(" < " + c.Superclass)
	}
	sb.WriteString("\n")

	for _, m := range c.Methods {
		sb.WriteString(serializer.Indent(RenderMethod(m), 1))
		sb.WriteString("\n")
	}

	sb.WriteString("end")
	return sb.String()
}

// The namespace is folded into the module name; there is no wrapping block.
func renderModule(m *ir.Module) string {
	lines := []string{header, "", "module " + m.FullName()}

	for _, method := range m.Methods {
		lines = append(lines, serializer.Indent(RenderMethod(method), 1))
	}

	lines = append(lines, "end")
	return strings.Join(lines, "\n") + "\n"
}

// RenderMethod renders the sig and def lines for m, without indentation.
func RenderMethod(m *ir.Method) string {
	var sigParts []string

	if len(m.Parameters) > 0 {
		params := make([]string, len(m.Parameters))
		for i, p := range m.Parameters {
			params[i] = fmt.Sprintf("%s: %s", p.Name, renderType(p.Type, untyped))
		}
		sigParts = append(sigParts, "params("+strings.Join(params, ", ")+")")
	}
	sigParts = append(sigParts, "returns("+renderType(m.ReturnType, noReturn)+")")

	names := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		names[i] = p.Name
	}

	prefix := ""
	if m.ClassScoped {
		prefix = "self."
	}

	return fmt.Sprintf("sig { %s }\ndef %s%s(%s); end",
		strings.Join(sigParts, "."), prefix, m.Name, strings.Join(names, ", "))
}

func renderType(t *ir.TypeRef, fallback string) string {
	if t == nil {
		return fallback
	}
	return t.Render(ir.FormatRBI)
}
