// Package rbs renders entities as Ruby signature files.
//
// Each method is a single line with a distinct sigil per parameter kind:
//
//	def self.find: (Integer id, ?untyped opts, **untyped rest) -> User?
package rbs

import (
	"fmt"
	"strings"

	"github.com/teranos/typeweaver/ir"
	"github.com/teranos/typeweaver/serializer"
)

const (
	untyped  = "untyped"
	noReturn = "void"

	// blockSignature is used for every block parameter; the block's real
	// signature is never inspected.
	blockSignature = "{ () -> void }"
)

// Serializer implements serializer.Renderer for RBS
type Serializer struct{}

// New creates a new RBS serializer
func New() *Serializer {
	return &Serializer{}
}

// Format returns ir.FormatRBS
func (s *Serializer) Format() ir.Format {
	return ir.FormatRBS
}

// Serialize writes one .rbs file per entity of g into outputDir.
func (s *Serializer) Serialize(g *ir.TypeGraph, outputDir string) (*serializer.Result, error) {
	return serializer.Serialize(s, g, outputDir)
}

// Render returns the full .rbs file for node (implements serializer.Renderer)
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
	if c.Namespace == "" {
		return renderClassBody(c) + "\n"
	}

	lines := []string{
		"module " + c.Namespace,
		serializer.Indent(renderClassBody(c), 1),
		"end",
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

func renderModule(m *ir.Module) string {
	lines := []string{"module " + m.FullName()}

	for _, method := range m.Methods {
		lines = append(lines, serializer.Indent(RenderMethod(method), 1))
	}

	lines = append(lines, "end")
	return strings.Join(lines, "\n") + "\n"
}

// RenderMethod renders m as a single def line, without indentation.
func RenderMethod(m *ir.Method) string {
	params := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		params[i] = RenderParameter(p)
	}

	prefix := ""
	if m.ClassScoped {
		prefix = "self."
	}

	returnType := noReturn
	if m.ReturnType != nil {
		returnType = m.ReturnType.Render(ir.FormatRBS)
	}

	return fmt.Sprintf("def %s%s: (%s) -> %s", prefix, m.Name, strings.Join(params, ", "), returnType)
}

// RenderParameter encodes p according to its kind.
func RenderParameter(p *ir.Parameter) string {
	typ := untyped
	if p.Type != nil {
		typ = p.Type.Render(ir.FormatRBS)
	}

	switch p.Kind {
	case ir.Required:
		return typ + " " + p.Name
	case ir.OptionalPositional:
		return "?" + typ + " " + p.Name
	case ir.KeywordRequired:
		return p.Name + ": " + typ
	case ir.KeywordOptional:
		return "?" + p.Name + ": " + typ
	case ir.Rest:
		return "*" + typ + " " + p.Name
	case ir.KeywordRest:
		return "**" + typ + " " + p.Name
	case ir.Block:
		return blockSignature + " " + p.Name
	default:
		return typ + " " + p.Name
	}
}
