// Package yard produces typed declarations from YARD documentation tags.
//
// For every def, the comment block directly above it is searched for
//
//	@param name [Types] description
//	@param [Types] name description
//	@return [Types] description
//
// Each @param becomes a required parameter in tag order; the def's own
// parameter list is ignored. Only the first listed type is used and it goes
// through ir.ParseTypeRef, so "Array<String>" stays a verbatim name.
package yard

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/typeweaver/ir"
	"github.com/teranos/typeweaver/logger"
	"github.com/teranos/typeweaver/producer"
	"github.com/teranos/typeweaver/producer/rubysrc"
)

// Producer implements producer.Producer for YARD tags
type Producer struct {
	log *zap.SugaredLogger
}

// New creates a yard producer
func New(log *zap.SugaredLogger) *Producer {
	return &Producer{log: log}
}

// Kind returns producer.Yard
func (p *Producer) Kind() producer.Kind {
	return producer.Yard
}

// Scan parses path and adds one entity per class or module, with methods
// typed from their documentation.
func (p *Producer) Scan(ctx context.Context, path string, g *ir.TypeGraph) error {
	decls, err := rubysrc.ParseFile(ctx, path)
	if err != nil {
		return err
	}

	for _, d := range decls {
		rubysrc.Declare(g, d, method)
		p.log.Debugw("Declared entity",
			logger.FieldProducer, producer.Yard.String(),
			logger.FieldFile, path,
			logger.FieldEntity, d.QualifiedName(),
			logger.FieldCount, len(d.Methods))
	}

	return nil
}

func method(def *rubysrc.MethodDef) *ir.Method {
	m := ir.NewMethod(def.Name)
	m.ClassScoped = def.Singleton
	m.Visibility = def.Visibility

	tags := ParseTags(def.Doc)
	for _, param := range tags.Params {
		p := ir.NewParameter(param.Name, ir.Required)
		p.Type = typeRef(param.Types)
		m.AddParameter(p)
	}
	if tags.Return != nil {
		m.SetReturnType(typeRef(tags.Return))
	}
	return m
}

func typeRef(types []string) *ir.TypeRef {
	if len(types) == 0 {
		return nil
	}
	return ir.ParseTypeRef(types[0])
}

// Tags holds the typing tags of one doc comment.
type Tags struct {
	Params []ParamTag

	// Return is nil without an @return tag, and empty for "@return" with no
	// type list.
	Return []string
}

// ParamTag is one @param tag.
type ParamTag struct {
	Name  string
	Types []string
}

// ParseTags extracts @param and @return tags from doc lines. Later @return
// tags replace earlier ones.
func ParseTags(doc []string) Tags {
	var tags Tags
	for _, line := range doc {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

		switch fields[0] {
		case "@param":
			if tag, ok := parseParam(rest); ok {
				tags.Params = append(tags.Params, tag)
			}
		case "@return":
			types, _ := takeTypes(rest)
			if types == nil {
				types = []string{}
			}
			tags.Return = types
		}
	}
	return tags
}

// parseParam accepts both "name [Types] text" and "[Types] name text".
func parseParam(s string) (ParamTag, bool) {
	types, rest := takeTypes(s)
	if types != nil {
		name := firstWord(rest)
		return ParamTag{Name: name, Types: types}, name != ""
	}

	name := firstWord(s)
	if name == "" {
		return ParamTag{}, false
	}
	types, _ = takeTypes(strings.TrimSpace(strings.TrimPrefix(s, name)))
	return ParamTag{Name: name, Types: types}, true
}

// takeTypes reads a leading "[...]" type list from s. It returns nil types
// when s does not start with one, along with the remaining text.
func takeTypes(s string) ([]string, string) {
	if !strings.HasPrefix(s, "[") {
		return nil, s
	}

	depth := 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return SplitTypes(s[1:i]), strings.TrimSpace(s[i+1:])
			}
		}
	}
	// Unterminated list: take everything.
	return SplitTypes(s[1:]), ""
}

// SplitTypes splits a YARD type list on top-level commas. Commas nested in
// <>, (), {} or [] do not split, and the "=>" of hash types does not close
// an angle bracket.
func SplitTypes(list string) []string {
	var (
		types []string
		depth int
		start int
	)

	for i := 0; i < len(list); i++ {
		switch list[i] {
		case '<', '(', '{', '[':
			depth++
		case '>':
			if i > 0 && list[i-1] == '=' {
				continue
			}
			depth--
		case ')', '}', ']':
			depth--
		case ',':
			if depth == 0 {
				types = appendType(types, list[start:i])
				start = i + 1
			}
		}
	}
	return appendType(types, list[start:])
}

func appendType(types []string, t string) []string {
	if t = strings.TrimSpace(t); t != "" {
		types = append(types, t)
	}
	return types
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
