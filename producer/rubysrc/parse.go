// Package rubysrc parses Ruby source with tree-sitter and flattens it into
// declarations that the static and yard producers turn into IR.
//
// Declarations are returned in source order: an enclosing module or class
// precedes everything nested inside it. Each declaration records only its
// innermost enclosing name as namespace.
package rubysrc

import (
	"context"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"

	"github.com/teranos/typeweaver/errors"
	"github.com/teranos/typeweaver/ir"
)

// DeclKind distinguishes class and module declarations.
type DeclKind int

const (
	ClassDecl DeclKind = iota
	ModuleDecl
)

// Decl is a class or module found in a source file.
type Decl struct {
	Kind       DeclKind
	Name       string
	Namespace  string
	Superclass string
	Line       int
	Methods    []*MethodDef
}

// MethodDef is a def found directly inside a class or module body.
type MethodDef struct {
	Name       string
	Singleton  bool
	Visibility ir.Visibility
	Params     []ParamDef
	Line       int

	// Doc holds the contiguous comment lines directly above the def, with
	// the leading "#" and one space removed.
	Doc []string
}

// ParamDef is one parameter as written in the def.
type ParamDef struct {
	Name    string
	Kind    ir.ParamKind
	Default string
}

// ParseFile reads and parses a Ruby file.
func ParseFile(ctx context.Context, path string) ([]*Decl, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	decls, err := Parse(ctx, source)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return decls, nil
}

// Parse parses Ruby source. A tree containing syntax errors is rejected with
// an error wrapping errors.ErrParse.
func Parse(ctx context.Context, source []byte) ([]*Decl, error) {
	root, err := sitter.ParseCtx(ctx, source, ruby.GetLanguage())
	if err != nil {
		return nil, errors.Wrap(err, "tree-sitter parse failed")
	}
	if root == nil {
		return nil, errors.Wrap(errors.ErrParse, "empty syntax tree")
	}
	if root.HasError() {
		return nil, errors.Wrapf(errors.ErrParse, "syntax error at line %d", firstErrorLine(root))
	}

	w := &walker{src: source, lines: strings.Split(string(source), "\n")}
	w.walk(namedChildren(root), &scope{})
	return w.decls, nil
}

// scope is the state of the body currently being walked.
type scope struct {
	decl       *Decl
	singleton  bool
	visibility ir.Visibility

	// detached marks a block passed to a call with a receiver, such as
	// Struct.new(...) do. Defs there belong to another object; nested
	// class and module declarations are still found.
	detached bool
}

type walker struct {
	src   []byte
	lines []string
	decls []*Decl
}

func (w *walker) walk(nodes []*sitter.Node, s *scope) {
	for _, n := range nodes {
		switch n.Type() {
		case "class":
			w.declare(n, ClassDecl, s)
		case "module":
			w.declare(n, ModuleDecl, s)
		case "singleton_class":
			// class << self; anything else has no receiver we can name.
			if s.decl != nil && w.text(n.ChildByFieldName("value")) == "self" {
				w.walk(bodyOf(n), &scope{decl: s.decl, singleton: true})
			}
		case "method":
			w.addMethod(n, s, s.singleton, s.visibility)
		case "singleton_method":
			w.addMethod(n, s, true, s.visibility)
		case "identifier":
			if v, ok := visibilityKeyword(w.text(n)); ok {
				s.visibility = v
			}
		case "call", "method_call":
			switch {
			case w.visibilityCall(n, s):
			case n.ChildByFieldName("receiver") != nil:
				w.walkReceiverCall(n, s)
			default:
				w.walk(namedChildren(n), s)
			}
		case "comment":
		default:
			w.walk(namedChildren(n), s)
		}
	}
}

func (w *walker) walkReceiverCall(n *sitter.Node, s *scope) {
	for _, child := range namedChildren(n) {
		switch child.Type() {
		case "do_block", "block":
			w.walk(namedChildren(child), &scope{decl: s.decl, detached: true})
		default:
			w.walk([]*sitter.Node{child}, s)
		}
	}
}

func (w *walker) declare(n *sitter.Node, kind DeclKind, s *scope) {
	name, namespace := w.splitName(n.ChildByFieldName("name"))
	if s.decl != nil {
		namespace = s.decl.Name
	}

	d := &Decl{
		Kind:      kind,
		Name:      name,
		Namespace: namespace,
		Line:      line(n),
	}
	if kind == ClassDecl {
		d.Superclass = w.superclass(n)
	}

	w.decls = append(w.decls, d)
	w.walk(bodyOf(n), &scope{decl: d})
}

// splitName resolves "Foo" to ("Foo", "") and "A::B::Foo" to ("Foo", "B").
func (w *walker) splitName(n *sitter.Node) (name, namespace string) {
	if n == nil {
		return "", ""
	}
	if n.Type() != "scope_resolution" {
		return w.text(n), ""
	}

	name = w.text(n.ChildByFieldName("name"))
	if scopeNode := n.ChildByFieldName("scope"); scopeNode != nil {
		segments := strings.Split(w.text(scopeNode), "::")
		namespace = segments[len(segments)-1]
	}
	return name, namespace
}

func (w *walker) superclass(n *sitter.Node) string {
	sc := n.ChildByFieldName("superclass")
	if sc == nil {
		return ""
	}
	if sc.Type() == "superclass" && sc.NamedChildCount() > 0 {
		return w.text(sc.NamedChild(0))
	}
	return strings.TrimSpace(strings.TrimPrefix(w.text(sc), "<"))
}

func (w *walker) addMethod(n *sitter.Node, s *scope, singleton bool, visibility ir.Visibility) {
	if s.decl == nil || s.detached {
		return
	}

	m := &MethodDef{
		Name:       w.text(n.ChildByFieldName("name")),
		Singleton:  singleton,
		Visibility: visibility,
		Line:       line(n),
		Doc:        w.docAbove(line(n)),
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		m.Params = w.params(params)
	}

	s.decl.Methods = append(s.decl.Methods, m)
}

// visibilityCall handles "private def x", "private_class_method def self.x"
// and "private :x, :y". It reports whether n was such a call.
func (w *walker) visibilityCall(n *sitter.Node, s *scope) bool {
	v, ok := visibilityKeyword(w.text(n.ChildByFieldName("method")))
	if !ok || n.ChildByFieldName("receiver") != nil {
		return false
	}
	args := n.ChildByFieldName("arguments")
	if args == nil {
		return false
	}

	for _, arg := range namedChildren(args) {
		switch arg.Type() {
		case "method":
			w.addMethod(arg, s, s.singleton, v)
		case "singleton_method":
			w.addMethod(arg, s, true, v)
		case "simple_symbol", "symbol":
			if s.decl != nil && !s.detached {
				setVisibility(s.decl, strings.TrimPrefix(w.text(arg), ":"), v)
			}
		}
	}
	return true
}

func setVisibility(d *Decl, name string, v ir.Visibility) {
	for _, m := range d.Methods {
		if m.Name == name {
			m.Visibility = v
		}
	}
}

func visibilityKeyword(word string) (ir.Visibility, bool) {
	switch word {
	case "public":
		return ir.Public, true
	case "protected":
		return ir.Protected, true
	case "private", "private_class_method":
		return ir.Private, true
	default:
		return ir.Public, false
	}
}

func (w *walker) params(n *sitter.Node) []ParamDef {
	var out []ParamDef
	for _, p := range namedChildren(n) {
		switch p.Type() {
		case "identifier":
			out = append(out, ParamDef{Name: w.text(p), Kind: ir.Required})
		case "optional_parameter":
			out = append(out, ParamDef{
				Name:    w.text(p.ChildByFieldName("name")),
				Kind:    ir.OptionalPositional,
				Default: w.text(p.ChildByFieldName("value")),
			})
		case "keyword_parameter":
			param := ParamDef{Name: w.text(p.ChildByFieldName("name")), Kind: ir.KeywordRequired}
			if value := p.ChildByFieldName("value"); value != nil {
				param.Kind = ir.KeywordOptional
				param.Default = w.text(value)
			}
			out = append(out, param)
		case "splat_parameter":
			out = append(out, ParamDef{Name: w.nameOr(p, "*"), Kind: ir.Rest})
		case "hash_splat_parameter":
			out = append(out, ParamDef{Name: w.nameOr(p, "**"), Kind: ir.KeywordRest})
		case "block_parameter":
			out = append(out, ParamDef{Name: w.nameOr(p, "&"), Kind: ir.Block})
		}
		// destructured_parameter, forward_parameter, hash_splat_nil: skipped
	}
	return out
}

func (w *walker) nameOr(n *sitter.Node, anonymous string) string {
	if name := w.text(n.ChildByFieldName("name")); name != "" {
		return name
	}
	return anonymous
}

// docAbove collects the comment block ending on the line before defLine.
func (w *walker) docAbove(defLine int) []string {
	var doc []string
	for i := defLine - 2; i >= 0 && i < len(w.lines); i-- {
		trimmed := strings.TrimSpace(w.lines[i])
		if !strings.HasPrefix(trimmed, "#") {
			break
		}
		text := strings.TrimPrefix(trimmed, "#")
		text = strings.TrimPrefix(text, " ")
		doc = append([]string{text}, doc...)
	}
	return doc
}

func (w *walker) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(w.src)
}

// bodyOf returns the statements of a class, module or singleton_class.
// Grammars without a body field put statements directly under the node.
func bodyOf(n *sitter.Node) []*sitter.Node {
	if body := n.ChildByFieldName("body"); body != nil {
		return namedChildren(body)
	}

	var header []*sitter.Node
	for _, field := range []string{"name", "superclass", "value"} {
		if f := n.ChildByFieldName(field); f != nil {
			header = append(header, f)
		}
	}

	var out []*sitter.Node
	for _, c := range namedChildren(n) {
		if !containsNode(header, c) {
			out = append(out, c)
		}
	}
	return out
}

func namedChildren(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, n.NamedChild(i))
	}
	return out
}

func containsNode(nodes []*sitter.Node, n *sitter.Node) bool {
	for _, c := range nodes {
		if c.Type() == n.Type() && c.StartByte() == n.StartByte() && c.EndByte() == n.EndByte() {
			return true
		}
	}
	return false
}

func firstErrorLine(n *sitter.Node) int {
	if n.Type() == "ERROR" || n.IsMissing() {
		return line(n)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.HasError() || c.IsMissing() {
			return firstErrorLine(c)
		}
	}
	return line(n)
}

func line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}
