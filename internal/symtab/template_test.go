package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplate(t *testing.T) {
	sig := Signature{Params: []string{"format", "args"}, Spread: "args"}
	tpl, err := ParseTemplate("console.log({format}, {*args})", sig)
	require.NoError(t, err)
	assert.Equal(t, []Segment{
		{Kind: SegLiteral, Text: "console.log("},
		{Kind: SegArg, Text: "format"},
		{Kind: SegLiteral, Text: ", "},
		{Kind: SegSpread, Text: "args"},
		{Kind: SegLiteral, Text: ")"},
	}, tpl.Segments)
	assert.False(t, tpl.UsesThis())

	assert.Equal(t, "console.log('{0} {1}', a, b)", tpl.Expand("", Args{"format": {"'{0} {1}'"}, "args": {"a", "b"}}))
	assert.Equal(t, "console.log(undefined, )", tpl.Expand("", nil))
}

func TestTemplateBracesStayLiteral(t *testing.T) {
	tpl, err := ParseTemplate("({ key: {value}, empty: {} })", Signature{Params: []string{"value"}})
	require.NoError(t, err)
	assert.Equal(t, "({ key: 42, empty: {} })", tpl.Expand("", Args{"value": {"42"}}))

	tpl, err = ParseTemplate("{this}.length = 0", Signature{})
	require.NoError(t, err)
	assert.True(t, tpl.UsesThis())
	assert.Equal(t, "items.length = 0", tpl.Expand("items", nil))
}

func TestParseTemplateErrors(t *testing.T) {
	cases := map[string]struct {
		src string
		sig Signature
	}{
		"unknown parameter": {"f({x})", Signature{Params: []string{"y"}}},
		"this in static":    {"{this}.go()", Signature{Static: true}},
		"spread non-params": {"f({*y})", Signature{Params: []string{"y"}}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseTemplate(tc.src, tc.sig)
			assert.Error(t, err)
		})
	}
}

func TestResolveTypes(t *testing.T) {
	tpl, err := ParseTemplate("{$App.Models.Point}.origin()", Signature{Static: true})
	require.NoError(t, err)
	require.Equal(t, SegType, tpl.Segments[0].Kind)

	names := map[string]string{"T:App.Models.Point": "Point"}
	lookup := func(key string) (string, bool) {
		n, ok := names[key]
		return n, ok
	}
	require.NoError(t, tpl.resolveTypes(lookup))
	assert.Equal(t, "Point.origin()", tpl.Expand("", nil))

	tpl, err = ParseTemplate("{$Missing}", Signature{})
	require.NoError(t, err)
	assert.Error(t, tpl.resolveTypes(lookup))
}

func TestAlternateReorder(t *testing.T) {
	alt := Alternate{Canonical: "M:A.Move(System.Int32,System.Int32)", Permutation: []int{1}}
	assert.Equal(t, []string{"undefined", "y"}, alt.Reorder([]string{"y"}, "undefined"))

	swap := Alternate{Permutation: []int{1, 0}}
	assert.Equal(t, []string{"b", "a"}, swap.Reorder([]string{"a", "b"}, "undefined"))

	assert.Empty(t, swap.Reorder(nil, "undefined"))
}

func TestModuleSpecifier(t *testing.T) {
	tests := []struct{ from, to, want string }{
		{"Program.cs", "Point.cs", "./Point"},
		{"Program.cs", "Shapes/Circle.cs", "./Shapes/Circle"},
		{"Shapes/Circle.cs", "Point.cs", "../Point"},
		{"Shapes/Round/Circle.cs", "Shapes/Square.cs", "../Square"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, moduleSpecifier(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestEscapeAndIdentifiers(t *testing.T) {
	assert.Equal(t, "$delete", Escape("delete"))
	assert.Equal(t, "remove", Escape("remove"))
	assert.True(t, isIdentifier("$value_1"))
	assert.True(t, isIdentifier("größe"))
	assert.False(t, isIdentifier("1st"))
	assert.False(t, isIdentifier("a-b"))
	assert.Equal(t, "x", lowerFirst("X"))
	assert.Equal(t, "éclair", lowerFirst("Éclair"))
	assert.Equal(t, "_id", lowerFirst("_id"))
}
