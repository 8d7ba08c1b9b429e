package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	intSym := &Symbol{Key: "T:System.Int32", Kind: SymStruct, Name: "Int32", Namespace: "System", External: true}
	listSym := &Symbol{Key: "T:System.Collections.Generic.List`1", Kind: SymClass, Name: "List", External: true}
	point := &Symbol{Key: TypeKey("App.Point", 0), Kind: SymClass, Name: "Point", Namespace: "App"}

	assert.Equal(t, "T:App.Point", point.Key)
	assert.Equal(t, "T:App.Box`1", TypeKey("App.Box", 1))

	params := []*Symbol{
		{Name: "x", Kind: SymParameter, Type: &TypeRef{Symbol: intSym, Name: "int"}},
		{Name: "ys", Kind: SymParameter, Type: &TypeRef{Symbol: listSym, Name: "List", Args: []*TypeRef{{Symbol: intSym, Name: "int"}}}},
		{Name: "zs", Kind: SymParameter, Type: &TypeRef{Elem: &TypeRef{Symbol: intSym, Name: "int"}}},
	}
	assert.Equal(t, "M:App.Point.Move(System.Int32,System.Collections.Generic.List{System.Int32},System.Int32[])",
		MemberKey(SymMethod, point, "Move", params))
	assert.Equal(t, "M:App.Point.Reset", MemberKey(SymMethod, point, "Reset", nil))
	assert.Equal(t, "M:App.Point.#ctor(System.Int32)", MemberKey(SymConstructor, point, "Point", params[:1]))
	assert.Equal(t, "F:App.Point.x", MemberKey(SymField, point, "x", nil))
	assert.Equal(t, "P:App.Point.X", MemberKey(SymProperty, point, "X", params))
}

func TestSymbolHelpers(t *testing.T) {
	outer := &Symbol{Key: "T:App.Outer", Kind: SymClass, Name: "Outer", Namespace: "App"}
	inner := &Symbol{Key: "T:App.Outer.Inner", Kind: SymClass, Name: "Inner", Namespace: "App", Container: outer}
	method := &Symbol{Kind: SymMethod, Name: "Run", Container: inner, Modifiers: ModStatic | ModVirtual,
		Attributes: []Attribute{{Name: "ScriptNameAttribute", Args: []string{"go"}}}}

	assert.Equal(t, "App.Outer.Inner", inner.FullName())
	assert.Equal(t, "App.Outer.Inner.Run", method.FullName())
	assert.Same(t, inner, method.ContainingType())
	assert.Same(t, outer, inner.ContainingType())
	assert.Nil(t, outer.ContainingType())

	assert.True(t, method.Is(ModStatic))
	assert.False(t, method.Is(ModAbstract))

	a, ok := method.Attribute(AttrScriptName)
	require.True(t, ok)
	name, ok := a.Arg(0)
	require.True(t, ok)
	assert.Equal(t, "go", name)
	_, ok = a.Arg(1)
	assert.False(t, ok)
	assert.False(t, method.HasAttribute(AttrInlineCode))

	var missing *Symbol
	assert.False(t, missing.HasAttribute(AttrImported))
	assert.Nil(t, missing.Location())
	assert.Equal(t, "<nil>", missing.String())
}

func TestTypeRef(t *testing.T) {
	str := &Symbol{Key: "T:System.String", Name: "String"}
	dict := &Symbol{Key: "T:System.Collections.Generic.Dictionary`2", Name: "Dictionary"}
	ref := &TypeRef{Symbol: dict, Name: "Dictionary", Args: []*TypeRef{
		{Symbol: str, Name: "string"},
		{Name: "T", IsTypeParameter: true},
	}}
	assert.Equal(t, "Dictionary<string, T>", ref.String())
	assert.True(t, ref.IsResolved())
	assert.Equal(t, "T:System.Collections.Generic.Dictionary`2", ref.Key())

	broken := &TypeRef{Elem: &TypeRef{Name: "Missing"}}
	assert.False(t, broken.IsResolved())
	assert.Equal(t, "Missing[]", broken.String())
	assert.Equal(t, "", broken.Key())

	var void *TypeRef
	assert.True(t, void.IsResolved())
	assert.Equal(t, "void", void.String())
}

func TestTypeDeclarations(t *testing.T) {
	inner := &SyntaxNode{Kind: SynClass, Name: "Inner"}
	method := &SyntaxNode{Kind: SynMethod, Name: "M", Children: []*SyntaxNode{{Kind: SynBlock}}}
	outer := &SyntaxNode{Kind: SynClass, Name: "Outer", Children: []*SyntaxNode{method, inner}}
	enum := &SyntaxNode{Kind: SynEnum, Name: "Color"}
	root := &SyntaxNode{Kind: SynCompilationUnit, Children: []*SyntaxNode{
		{Kind: SynUsing, Name: "System"},
		{Kind: SynNamespace, Name: "App", Children: []*SyntaxNode{outer, enum}},
	}}

	var names []string
	for _, d := range root.TypeDeclarations() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"Outer", "Inner", "Color"}, names)

	assert.Same(t, method, outer.Child(0))
	assert.Nil(t, outer.Child(5))
	assert.Nil(t, (*SyntaxNode)(nil).Child(0))
	assert.Equal(t, "Namespace", SynNamespace.String())
	assert.Equal(t, "Invalid", SyntaxKind(250).String())
}
