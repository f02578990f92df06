package rubysrc

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/typeweaver/errors"
	"github.com/teranos/typeweaver/ir"
)

const postSource = `module Admin
  class Post < ApplicationRecord
    # Publishes the post.
    # @param at [Time] when to publish
    def publish(at, notify = true, *rest, scope:, order: :asc, **opts, &blk)
    end

    def self.find(id)
    end

    class << self
      def build
      end
    end

    private

    def secret
    end
  end
end
`

func parse(t *testing.T, source string) []*Decl {
	t.Helper()
	decls, err := Parse(context.Background(), []byte(source))
	require.NoError(t, err)
	return decls
}

func TestParse_ClassInModule(t *testing.T) {
	decls := parse(t, postSource)
	require.Len(t, decls, 2)

	admin := decls[0]
	assert.Equal(t, ModuleDecl, admin.Kind)
	assert.Equal(t, "Admin", admin.Name)
	assert.Empty(t, admin.Namespace)
	assert.Empty(t, admin.Methods)
	assert.Equal(t, 1, admin.Line)

	post := decls[1]
	assert.Equal(t, ClassDecl, post.Kind)
	assert.Equal(t, "Post", post.Name)
	assert.Equal(t, "Admin", post.Namespace)
	assert.Equal(t, "ApplicationRecord", post.Superclass)
	assert.Equal(t, 2, post.Line)

	names := make([]string, len(post.Methods))
	for i, m := range post.Methods {
		names[i] = m.Name
	}
	assert.Equal(t, []string{"publish", "find", "build", "secret"}, names)
}

func TestParse_MethodScopeAndVisibility(t *testing.T) {
	post := parse(t, postSource)[1]
	require.Len(t, post.Methods, 4)

	tests := []struct {
		name       string
		singleton  bool
		visibility ir.Visibility
	}{
		{"publish", false, ir.Public},
		{"find", true, ir.Public},
		{"build", true, ir.Public},
		{"secret", false, ir.Private},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := post.Methods[i]
			assert.Equal(t, tt.name, m.Name)
			assert.Equal(t, tt.singleton, m.Singleton)
			assert.Equal(t, tt.visibility, m.Visibility)
		})
	}
}

func TestParse_ParameterKinds(t *testing.T) {
	publish := parse(t, postSource)[1].Methods[0]

	assert.Equal(t, []ParamDef{
		{Name: "at", Kind: ir.Required},
		{Name: "notify", Kind: ir.OptionalPositional, Default: "true"},
		{Name: "rest", Kind: ir.Rest},
		{Name: "scope", Kind: ir.KeywordRequired},
		{Name: "order", Kind: ir.KeywordOptional, Default: ":asc"},
		{Name: "opts", Kind: ir.KeywordRest},
		{Name: "blk", Kind: ir.Block},
	}, publish.Params)
}

func TestParse_AnonymousSplats(t *testing.T) {
	decls := parse(t, `class Proxy
  def forward(*, **)
  end
end
`)
	require.Len(t, decls, 1)
	require.Len(t, decls[0].Methods, 1)

	assert.Equal(t, []ParamDef{
		{Name: "*", Kind: ir.Rest},
		{Name: "**", Kind: ir.KeywordRest},
	}, decls[0].Methods[0].Params)
}

func TestParse_DocComment(t *testing.T) {
	post := parse(t, postSource)[1]

	assert.Equal(t, []string{"Publishes the post.", "@param at [Time] when to publish"}, post.Methods[0].Doc)
	assert.Empty(t, post.Methods[1].Doc)
}

func TestParse_ScopeResolutionName(t *testing.T) {
	decls := parse(t, `class Billing::Invoice < Base::Record
end

module Api::V2::Helpers
end
`)
	require.Len(t, decls, 2)

	assert.Equal(t, "Invoice", decls[0].Name)
	assert.Equal(t, "Billing", decls[0].Namespace)
	assert.Equal(t, "Base::Record", decls[0].Superclass, "superclass is kept verbatim")

	assert.Equal(t, "Helpers", decls[1].Name)
	assert.Equal(t, "V2", decls[1].Namespace, "only the innermost segment is kept")
}

func TestParse_EnclosingNamespaceWins(t *testing.T) {
	decls := parse(t, `module Shop
  class Billing::Invoice
  end
end
`)
	require.Len(t, decls, 2)
	assert.Equal(t, "Invoice", decls[1].Name)
	assert.Equal(t, "Shop", decls[1].Namespace)
}

func TestParse_NestedInSourceOrder(t *testing.T) {
	decls := parse(t, `module A
  module B
    class C
      def c; end
    end
  end

  class D
  end
end
`)
	require.Len(t, decls, 4)

	got := make([][2]string, len(decls))
	for i, d := range decls {
		got[i] = [2]string{d.Name, d.Namespace}
	}
	assert.Equal(t, [][2]string{{"A", ""}, {"B", "A"}, {"C", "B"}, {"D", "A"}}, got)
	require.Len(t, decls[2].Methods, 1)
	assert.Equal(t, "c", decls[2].Methods[0].Name)
	assert.Empty(t, decls[0].Methods, "methods of nested classes stay with them")
}

func TestParse_VisibilityCalls(t *testing.T) {
	decls := parse(t, `class Service
  def call
  end

  def helper
  end
  private :helper

  private def internal
  end

  protected

  def compare(other)
  end

  public

  def reopen
  end
end
`)
	require.Len(t, decls, 1)

	got := make(map[string]ir.Visibility)
	for _, m := range decls[0].Methods {
		got[m.Name] = m.Visibility
	}
	assert.Equal(t, map[string]ir.Visibility{
		"call":     ir.Public,
		"helper":   ir.Private,
		"internal": ir.Private,
		"compare":  ir.Protected,
		"reopen":   ir.Public,
	}, got)
}

func TestParse_ReceiverBlocksKeepTheirDefs(t *testing.T) {
	decls := parse(t, `class Post
  private

  Helper = Struct.new(:a) do
    def inner
    end
    public :inner
  end

  Builder = Class.new(Base) do
    def build
    end

    class Options
    end
  end

  def secret
  end
end
`)
	require.Len(t, decls, 2)

	post := decls[0]
	require.Len(t, post.Methods, 1)
	assert.Equal(t, "secret", post.Methods[0].Name)
	assert.Equal(t, ir.Private, post.Methods[0].Visibility)

	options := decls[1]
	assert.Equal(t, "Options", options.Name)
	assert.Equal(t, "Post", options.Namespace)
}

func TestParse_TopLevelMethodsIgnored(t *testing.T) {
	decls := parse(t, `def helper(x)
end

puts helper(1)
`)
	assert.Empty(t, decls)
}

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, parse(t, ""))
	assert.Empty(t, parse(t, "# just a comment\n"))
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse(context.Background(), []byte("class Broken\n  def oops(\nend\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrParse))
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.rb")
	require.NoError(t, os.WriteFile(path, []byte("class User < ApplicationRecord\nend\n"), 0644))

	decls, err := ParseFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Equal(t, "User", decls[0].Name)

	_, err = ParseFile(context.Background(), filepath.Join(t.TempDir(), "missing.rb"))
	assert.Error(t, err)
}
