package static

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/typeweaver/errors"
	"github.com/teranos/typeweaver/ir"
	"github.com/teranos/typeweaver/producer"
	"github.com/teranos/typeweaver/serializer/rbi"
	"github.com/teranos/typeweaver/serializer/rbs"
)

func scan(t *testing.T, source string) *ir.TypeGraph {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.rb")
	require.NoError(t, os.WriteFile(path, []byte(source), 0644))

	g := ir.NewTypeGraph()
	require.NoError(t, New(zaptest.NewLogger(t).Sugar()).Scan(context.Background(), path, g))
	return g
}

func TestKind(t *testing.T) {
	assert.Equal(t, producer.Static, New(zaptest.NewLogger(t).Sugar()).Kind())
}

func TestScan_ClassesAndModules(t *testing.T) {
	g := scan(t, `module Blog
  class Post < ApplicationRecord
    def publish(at, notify = true, *tags, scope:, order: :asc, **opts, &blk)
    end

    def self.recent(limit = 10)
    end
  end

  module Searchable
    def search(query)
    end
  end
end
`)

	require.Len(t, g.Modules, 2)
	require.Len(t, g.Classes, 1)
	assert.Equal(t, "Blog", g.Modules[0].Name)
	assert.Equal(t, "Searchable", g.Modules[1].Name)
	assert.Equal(t, "Blog", g.Modules[1].Namespace)

	post := g.FindClass("Post")
	require.NotNil(t, post)
	assert.Equal(t, "Blog", post.Namespace)
	assert.Equal(t, "ApplicationRecord", post.Superclass)
	require.Len(t, post.Methods, 2)

	publish := post.Methods[0]
	kinds := make([]ir.ParamKind, len(publish.Parameters))
	for i, p := range publish.Parameters {
		kinds[i] = p.Kind
		assert.Nil(t, p.Type, "static analysis carries no types")
	}
	assert.Equal(t, []ir.ParamKind{
		ir.Required, ir.OptionalPositional, ir.Rest, ir.KeywordRequired,
		ir.KeywordOptional, ir.KeywordRest, ir.Block,
	}, kinds)
	assert.Equal(t, "true", publish.Parameters[1].DefaultValue)
	assert.Nil(t, publish.ReturnType)

	recent := post.Methods[1]
	assert.True(t, recent.ClassScoped)
	assert.Equal(t, "10", recent.Parameters[0].DefaultValue)
}

func TestScan_Renders(t *testing.T) {
	g := scan(t, `module Admin
  class Post < ApplicationRecord
    def publish(at, notify = true, *tags, scope:, order: :asc, **opts, &blk)
    end
  end
end
`)
	post := g.FindClass("Post")
	require.NotNil(t, post)

	assert.Equal(t, `module Admin
  class Post < ApplicationRecord
    def publish: (untyped at, ?untyped notify, *untyped tags, scope: untyped, ?order: untyped, **untyped opts, { () -> void } blk) -> void
  end
end
`, rbs.New().Render(post))

	assert.Equal(t, `# typed: strong

module Admin
  class Post < ApplicationRecord
    sig { params(at: T.untyped, notify: T.untyped, tags: T.untyped, scope: T.untyped, order: T.untyped, opts: T.untyped, blk: T.untyped).returns(void) }
    def publish(at, notify, tags, scope, order, opts, blk); end
  end
end
`, rbi.New().Render(post))

	assert.Equal(t, "module Admin\nend\n", rbs.New().Render(g.FindModule("Admin")))
}

func TestScan_Visibility(t *testing.T) {
	g := scan(t, `class Service
  def call
  end

  private

  def helper
  end
end
`)
	svc := g.FindClass("Service")
	require.NotNil(t, svc)
	require.Len(t, svc.Methods, 2)
	assert.Equal(t, ir.Public, svc.Methods[0].Visibility)
	assert.Equal(t, ir.Private, svc.Methods[1].Visibility)
}

func TestScan_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.rb")
	require.NoError(t, os.WriteFile(path, []byte("class Broken\n  def oops(\nend\n"), 0644))

	g := ir.NewTypeGraph()
	err := New(zaptest.NewLogger(t).Sugar()).Scan(context.Background(), path, g)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrParse))
	assert.Contains(t, err.Error(), path)
	assert.Zero(t, g.Len(), "nothing is added on parse failure")
}

func TestScan_MissingFile(t *testing.T) {
	err := New(zaptest.NewLogger(t).Sugar()).Scan(context.Background(), filepath.Join(t.TempDir(), "nope.rb"), ir.NewTypeGraph())
	assert.Error(t, err)
}
