package ir

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTypeGraph_AddAndFind(t *testing.T) {
	g := NewTypeGraph()
	user := NewClass("User", "ApplicationRecord", "")
	helpers := NewModule("Helpers", "")

	g.AddClass(user)
	g.AddModule(helpers)

	assert.Same(t, user, g.FindClass("User"))
	assert.Same(t, helpers, g.FindModule("Helpers"))
	assert.Nil(t, g.FindClass("Helpers"), "classes and modules are looked up separately")
	assert.Nil(t, g.FindModule("NonExistent"))
	assert.Nil(t, g.FindClass("user"), "lookup is exact")
	assert.Equal(t, 2, g.Len())
}

func TestTypeGraph_FindReturnsFirstDuplicate(t *testing.T) {
	g := NewTypeGraph()
	first := NewClass("Post", "", "Admin")
	second := NewClass("Post", "", "")

	g.AddClass(first)
	g.AddClass(second)

	assert.Len(t, g.Classes, 2, "duplicates are retained")
	assert.Same(t, first, g.FindClass("Post"))
}

func TestTypeGraph_FindMatchesShortNameOnly(t *testing.T) {
	g := NewTypeGraph()
	g.AddModule(NewModule("Post", "Admin"))

	assert.NotNil(t, g.FindModule("Post"))
	assert.Nil(t, g.FindModule("Admin::Post"))
}

func TestTypeGraph_AllNodesModulesFirst(t *testing.T) {
	g := NewTypeGraph()
	c1 := NewClass("A", "", "")
	m1 := NewModule("B", "")
	c2 := NewClass("C", "", "")
	m2 := NewModule("D", "")

	g.AddClass(c1)
	g.AddModule(m1)
	g.AddClass(c2)
	g.AddModule(m2)

	nodes := g.AllNodes()
	require.Len(t, nodes, 4)
	assert.Equal(t, []Node{m1, m2, c1, c2}, nodes)
}

func TestTypeGraph_AllNodesEmpty(t *testing.T) {
	assert.Empty(t, NewTypeGraph().AllNodes())
}

func TestTypeGraph_Append(t *testing.T) {
	g := NewTypeGraph()
	g.AddClass(NewClass("Existing", "", ""))

	scratch := NewTypeGraph()
	scratch.AddClass(NewClass("User", "", ""))
	scratch.AddModule(NewModule("Auth", ""))
	scratch.AddClass(NewClass("Post", "", ""))

	g.Append(scratch)

	names := make([]string, 0)
	for _, n := range g.AllNodes() {
		names = append(names, n.ShortName())
	}
	assert.Equal(t, []string{"Auth", "Existing", "User", "Post"}, names)
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Post", NewClass("Post", "", "").FullName())
	assert.Equal(t, "Admin::Post", NewClass("Post", "", "Admin").FullName())
	assert.Equal(t, "Admin::Post", NewModule("Post", "Admin").FullName())
	assert.Equal(t, "Post", NewModule("Post", "Admin").ShortName())
}

func TestMethod(t *testing.T) {
	m := NewMethod("find")
	m.AddParameter(NewParameter("id", Required))
	m.AddParameter(NewParameter("opts", KeywordRest))
	m.SetReturnType(NullableTypeRef("User"))

	assert.True(t, m.IsInstanceMethod())
	assert.Equal(t, Public, m.Visibility)
	require.Len(t, m.Parameters, 2)
	assert.Equal(t, "id", m.Parameters[0].Name)
	assert.Equal(t, "opts", m.Parameters[1].Name)
	assert.False(t, NewClassMethod("create").IsInstanceMethod())
}

func TestDump(t *testing.T) {
	g := NewTypeGraph()
	m := NewModule("Helpers", "Admin")
	g.AddModule(m)

	c := NewClass("User", "ApplicationRecord", "")
	find := NewClassMethod("find")
	find.AddParameter(&Parameter{Name: "id", Type: NewTypeRef("Integer"), Kind: Required})
	find.SetReturnType(NullableTypeRef("User"))
	c.AddMethod(find)
	g.AddClass(c)

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, g))

	var decoded struct {
		Modules []map[string]interface{} `yaml:"modules"`
		Classes []struct {
			Name       string `yaml:"name"`
			Superclass string `yaml:"superclass"`
			Methods    []struct {
				Name        string `yaml:"name"`
				ClassScoped bool   `yaml:"class_scoped"`
				Visibility  string `yaml:"visibility"`
				Parameters  []struct {
					Name string `yaml:"name"`
					Kind string `yaml:"kind"`
				} `yaml:"parameters"`
				ReturnType map[string]interface{} `yaml:"return_type"`
			} `yaml:"methods"`
		} `yaml:"classes"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded.Modules, 1)
	assert.Equal(t, "Helpers", decoded.Modules[0]["name"])
	assert.Equal(t, "Admin", decoded.Modules[0]["namespace"])
	assert.NotContains(t, decoded.Modules[0], "methods", "empty collections are omitted")

	require.Len(t, decoded.Classes, 1)
	cls := decoded.Classes[0]
	assert.Equal(t, "User", cls.Name)
	assert.Equal(t, "ApplicationRecord", cls.Superclass)
	require.Len(t, cls.Methods, 1)
	assert.Equal(t, "find", cls.Methods[0].Name)
	assert.True(t, cls.Methods[0].ClassScoped)
	assert.Equal(t, "public", cls.Methods[0].Visibility)
	require.Len(t, cls.Methods[0].Parameters, 1)
	assert.Equal(t, "required", cls.Methods[0].Parameters[0].Kind)
	assert.Equal(t, "User", cls.Methods[0].ReturnType["name"])
	assert.Equal(t, true, cls.Methods[0].ReturnType["nullable"])
	assert.True(t, strings.Index(buf.String(), "modules:") < strings.Index(buf.String(), "classes:"))

	var again bytes.Buffer
	require.NoError(t, Dump(&again, g))
	assert.Equal(t, buf.String(), again.String())
}
