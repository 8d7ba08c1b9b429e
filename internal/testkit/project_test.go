package testkit

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cs2ts/internal/diag"
	"cs2ts/internal/frontend"
)

func TestProjectServesDocuments(t *testing.T) {
	p := NewProject()
	b := p.Doc("b/Second.cs")
	a := p.Doc("a/First.cs", "namespace App {", "}")
	point := a.Class("App", "Point")
	x := point.Field("x", Int, Num("0"))
	b.Report("CS1002", diag.SevError, "; expected")

	docs := p.Documents()
	require.Len(t, docs, 2)
	assert.Equal(t, "a/First.cs", docs[0].Path)
	assert.Equal(t, "b/Second.cs", docs[1].Path)

	ctx := context.Background()
	root, err := p.SyntaxTree(ctx, a.Document().ID)
	require.NoError(t, err)
	require.Equal(t, frontend.SynCompilationUnit, root.Kind)
	decls := root.TypeDeclarations()
	require.Len(t, decls, 1)

	model, err := p.SemanticModel(ctx, a.Document().ID)
	require.NoError(t, err)
	assert.Same(t, point.Sym, model.DeclaredSymbol(decls[0]))
	assert.Same(t, x.Sym, model.DeclaredSymbol(decls[0].Child(0)))
	assert.Equal(t, "T:App.Point", point.Sym.Key)
	assert.Equal(t, "F:App.Point.x", x.Sym.Key)

	ds, err := p.Diagnostics(ctx, b.Document().ID)
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "CS1002", ds[0].ID)
	assert.Equal(t, "b/Second.cs", ds[0].Path())
}

func TestProjectHookAndFailure(t *testing.T) {
	p := NewProject()
	d := p.Doc("A.cs")
	broken := p.Doc("B.cs").Fail(errors.New("disk on fire"))

	_, err := p.SyntaxTree(context.Background(), broken.Document().ID)
	require.ErrorContains(t, err, "disk on fire")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.SemanticModel(ctx, d.Document().ID)
	assert.ErrorIs(t, err, context.Canceled)

	calls := 0
	p.Hook = func(context.Context, *frontend.Document) error {
		calls++
		return nil
	}
	_, err = p.Diagnostics(context.Background(), d.Document().ID)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	_, err = p.SyntaxTree(context.Background(), 99)
	assert.Error(t, err)
}

func TestMembersAndBindings(t *testing.T) {
	p := NewProject()
	d := p.Doc("Shapes.cs")
	shape := d.Class("App", "Shape")
	scale := shape.Method("Scale", nil, Param("by", Double)).Public()
	scale.Body(ExprStmt(d.Call(d.Access(This(), scale.Sym), scale.Sym, Num("2"))))
	ctor := shape.Constructor(Param("size", Int))
	inner := shape.Nested(frontend.SynEnum, "Kind")
	inner.EnumMember("Round", nil)

	assert.Equal(t, "M:App.Shape.Scale(System.Double)", scale.Sym.Key)
	assert.Same(t, scale.Sym, scale.Sym.Parameters[0].Container)
	assert.Equal(t, "M:App.Shape.#ctor(System.Int32)", ctor.Sym.Key)
	assert.Equal(t, "T:App.Shape.Kind", inner.Sym.Key)
	assert.Same(t, shape.Sym, inner.Sym.Container)
	assert.Len(t, ctor.Node.Children, 2)

	call := scale.Node.Child(0).Child(0).Child(0)
	require.Equal(t, frontend.SynInvocation, call.Kind)
	assert.Same(t, scale.Sym, d.Model().ReferencedSymbol(call))
	assert.Same(t, scale.Sym, d.Model().ReferencedSymbol(call.Child(0)))

	wl := LibMember("System.Console", "WriteLine(System.String)")
	assert.Equal(t, "M:System.Console.WriteLine(System.String)", wl.Key)
	assert.Panics(t, func() { LibMember("System.Console", "Beep") })
}
