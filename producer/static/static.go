// Package static produces untyped declarations from the structure of Ruby
// source: classes, modules, methods and parameter kinds, with no types.
package static

import (
	"context"

	"go.uber.org/zap"

	"github.com/teranos/typeweaver/ir"
	"github.com/teranos/typeweaver/logger"
	"github.com/teranos/typeweaver/producer"
	"github.com/teranos/typeweaver/producer/rubysrc"
)

// Producer implements producer.Producer for structural analysis
type Producer struct {
	log *zap.SugaredLogger
}

// New creates a static producer
func New(log *zap.SugaredLogger) *Producer {
	return &Producer{log: log}
}

// Kind returns producer.Static
func (p *Producer) Kind() producer.Kind {
	return producer.Static
}

// Scan parses path and adds one entity per class or module found.
func (p *Producer) Scan(ctx context.Context, path string, g *ir.TypeGraph) error {
	decls, err := rubysrc.ParseFile(ctx, path)
	if err != nil {
		return err
	}

	for _, d := range decls {
		rubysrc.Declare(g, d, method)
		p.log.Debugw("Declared entity",
			logger.FieldProducer, producer.Static.String(),
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
	for _, param := range def.Params {
		p := ir.NewParameter(param.Name, param.Kind)
		p.DefaultValue = param.Default
		m.AddParameter(p)
	}
	return m
}
