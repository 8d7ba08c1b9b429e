package bcl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cs2ts/internal/frontend"
)

func TestKeywordsResolveToSystemTypes(t *testing.T) {
	lib := Default()
	require.Same(t, lib, Default())

	ref := lib.Ref("int")
	require.NotNil(t, ref.Symbol)
	assert.Equal(t, "T:System.Int32", ref.Key())
	assert.Equal(t, "int", ref.Name)
	assert.True(t, lib.IsKeyword("string"))
	assert.False(t, lib.IsKeyword("String"))
	assert.Same(t, lib.Type("string"), lib.Type("System.String"))

	unknown := lib.Ref("Widget")
	assert.Nil(t, unknown.Symbol)
	assert.False(t, unknown.IsResolved())
}

func TestConsoleWriteLineCarriesInlineCode(t *testing.T) {
	lib := Default()
	console := lib.Type("System.Console")
	require.NotNil(t, console)
	assert.True(t, console.Is(frontend.ModStatic))

	var keys []string
	for _, m := range lib.Members(console) {
		keys = append(keys, m.Key)
		assert.True(t, m.External)
		assert.True(t, m.HasAttribute(frontend.AttrInlineCode), m.Key)
	}
	assert.Equal(t, []string{
		"M:System.Console.WriteLine",
		"M:System.Console.WriteLine(System.String)",
		"M:System.Console.WriteLine(System.Object)",
		"M:System.Console.WriteLine(System.String,System.Object[])",
	}, keys)
}

func TestGenericListMembers(t *testing.T) {
	lib := Default()
	list := lib.Type("System.Collections.Generic.List")
	require.NotNil(t, list)
	assert.Equal(t, "T:System.Collections.Generic.List`1", list.Key)
	assert.Equal(t, []string{"T"}, list.TypeParameters)
	assert.Equal(t, "T:System.Object", list.BaseType.Key())

	var add *frontend.Symbol
	for _, m := range lib.Members(list) {
		if m.Name == "Add" {
			add = m
		}
	}
	require.NotNil(t, add)
	require.Len(t, add.Parameters, 1)
	assert.True(t, add.Parameters[0].Type.IsTypeParameter)
	a, ok := add.Attribute(frontend.AttrScriptName)
	require.True(t, ok)
	assert.Equal(t, []string{"push"}, a.Args)
}

func TestNamespaces(t *testing.T) {
	assert.Equal(t, []string{"System", "System.Collections.Generic"}, Default().Namespaces())
}
