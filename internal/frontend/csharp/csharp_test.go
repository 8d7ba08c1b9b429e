package csharp

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"cs2ts/internal/diag"
	"cs2ts/internal/frontend"
	"cs2ts/internal/source"
)

type fixture struct {
	svc *Service
	ids map[string]source.FileID
}

func load(t *testing.T, files ...string) *fixture {
	t.Helper()
	require.Zero(t, len(files)%2, "files are path/content pairs")
	fs := source.NewFileSet("")
	f := &fixture{ids: make(map[string]source.FileID)}
	for i := 0; i < len(files); i += 2 {
		f.ids[files[i]] = fs.AddVirtual(files[i], []byte(files[i+1]))
	}
	f.svc = New(fs, nil)
	return f
}

func (f *fixture) unit(t *testing.T, path string) (*frontend.SyntaxNode, frontend.SemanticModel) {
	t.Helper()
	ctx := context.Background()
	root, err := f.svc.SyntaxTree(ctx, f.ids[path])
	require.NoError(t, err)
	model, err := f.svc.SemanticModel(ctx, f.ids[path])
	require.NoError(t, err)
	return root, model
}

func (f *fixture) diags(t *testing.T, path string) []*diag.Diagnostic {
	t.Helper()
	ds, err := f.svc.Diagnostics(context.Background(), f.ids[path])
	require.NoError(t, err)
	return ds
}

func ids(ds []*diag.Diagnostic) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.ID
	}
	return out
}

// find returns the first node of kind named name, or with any name when
// name is empty.
func find(root *frontend.SyntaxNode, kind frontend.SyntaxKind, name string) *frontend.SyntaxNode {
	var out *frontend.SyntaxNode
	root.Walk(func(n *frontend.SyntaxNode) bool {
		if out != nil {
			return false
		}
		if n.Kind == kind && (name == "" || n.Name == name) {
			out = n
			return false
		}
		return true
	})
	return out
}

func findBinary(root *frontend.SyntaxNode, op string) *frontend.SyntaxNode {
	var out *frontend.SyntaxNode
	root.Walk(func(n *frontend.SyntaxNode) bool {
		if out == nil && n.Kind == frontend.SynBinary && n.Token == op {
			out = n
		}
		return out == nil
	})
	return out
}

const point = `namespace App {
    public class Point {
        public int X;
        public double Y = 1.5;
    }
}
`

func TestDeclaresClassAndFields(t *testing.T) {
	f := load(t, "Point.cs", point)
	root, model := f.unit(t, "Point.cs")

	ns := find(root, frontend.SynNamespace, "App")
	require.NotNil(t, ns)
	cls := find(root, frontend.SynClass, "Point")
	require.NotNil(t, cls)

	sym := model.DeclaredSymbol(cls)
	require.NotNil(t, sym)
	assert.Equal(t, "T:App.Point", sym.Key)
	assert.Equal(t, frontend.SymClass, sym.Kind)
	assert.Equal(t, frontend.AccessPublic, sym.Access)
	assert.Equal(t, "T:System.Object", sym.BaseType.Key())

	x := model.DeclaredSymbol(find(cls, frontend.SynField, "X"))
	require.NotNil(t, x)
	assert.Equal(t, "F:App.Point.X", x.Key)
	assert.Equal(t, "T:System.Int32", x.Type.Key())
	assert.Equal(t, "int", x.Type.Name)
	assert.Same(t, sym, x.Container)

	y := find(cls, frontend.SynField, "Y")
	require.NotNil(t, y)
	require.NotNil(t, y.Child(0))
	assert.Equal(t, frontend.SynNumericLiteral, y.Child(0).Kind)
	assert.Equal(t, "T:System.Double", model.TypeOf(y.Child(0)).Key())

	assert.Empty(t, f.diags(t, "Point.cs"))
}

func TestSyntaxErrorsAreReported(t *testing.T) {
	f := load(t, "Broken.cs", "class A {\n    void M() {\n        int x = 1\n    }\n}\n")
	ds := f.diags(t, "Broken.cs")
	require.NotEmpty(t, ds)
	assert.True(t, diag.HasErrors(ds))
	for _, d := range ds {
		assert.True(t, strings.HasPrefix(d.ID, "CS"), d.ID)
		require.NotNil(t, d.Location)
		assert.Equal(t, "Broken.cs", d.Location.Path)
	}
}

func TestBindsLibraryOverloads(t *testing.T) {
	f := load(t, "Greeter.cs", `using System;

namespace App {
    public class Greeter {
        public void Hello(string name) {
            Console.WriteLine(name);
            Console.WriteLine(42);
            Console.WriteLine("{0} {1}", name, 1);
        }
    }
}
`)
	root, model := f.unit(t, "Greeter.cs")

	var calls []*frontend.SyntaxNode
	root.Walk(func(n *frontend.SyntaxNode) bool {
		if n.Kind == frontend.SynInvocation {
			calls = append(calls, n)
		}
		return true
	})
	require.Len(t, calls, 3)

	want := []string{
		"M:System.Console.WriteLine(System.String)",
		"M:System.Console.WriteLine(System.Object)",
		"M:System.Console.WriteLine(System.String,System.Object[])",
	}
	for i, call := range calls {
		m := model.ReferencedSymbol(call)
		require.NotNil(t, m, "call %d", i)
		assert.Equal(t, want[i], m.Key)
		assert.Same(t, m, model.ReferencedSymbol(call.Child(0)))
	}

	console := calls[0].Child(0).Child(0)
	require.Equal(t, frontend.SynIdentifier, console.Kind)
	assert.Equal(t, "T:System.Console", model.ReferencedSymbol(console).Key)

	arg := model.ReferencedSymbol(calls[0].Child(1))
	require.NotNil(t, arg)
	assert.Equal(t, frontend.SymParameter, arg.Kind)
	assert.Equal(t, "name", arg.Name)

	assert.Empty(t, f.diags(t, "Greeter.cs"))
}

func TestLocalsAndIntegralDivision(t *testing.T) {
	f := load(t, "Calc.cs", `class Calc {
    int Half(int a) {
        var h = a / 2;
        double d = a / 2.0;
        return h;
    }
}
`)
	root, model := f.unit(t, "Calc.cs")

	h := find(root, frontend.SynDeclarator, "h")
	require.NotNil(t, h)
	local := model.DeclaredSymbol(h)
	require.NotNil(t, local)
	assert.Equal(t, frontend.SymLocal, local.Kind)
	assert.Equal(t, "T:System.Int32", local.Type.Key())

	div := findBinary(root, "/")
	require.NotNil(t, div)
	assert.Equal(t, "T:System.Int32", model.TypeOf(div).Key())

	d := find(root, frontend.SynDeclarator, "d")
	require.NotNil(t, d)
	assert.Equal(t, "T:System.Double", model.TypeOf(d.Child(0)).Key())

	ret := find(root, frontend.SynReturn, "")
	require.NotNil(t, ret)
	assert.Same(t, local, model.ReferencedSymbol(ret.Child(0)))
}

func TestGenericListMembers(t *testing.T) {
	f := load(t, "Bag.cs", `using System.Collections.Generic;

class Bag {
    int Fill() {
        var xs = new List<int>();
        xs.Add(1);
        return xs.Count;
    }
}
`)
	root, model := f.unit(t, "Bag.cs")

	create := find(root, frontend.SynObjectCreation, "")
	require.NotNil(t, create)
	typ := model.TypeOf(create)
	require.NotNil(t, typ)
	assert.Equal(t, listKey, typ.Key())
	require.Len(t, typ.Args, 1)
	assert.Equal(t, "T:System.Int32", typ.Args[0].Key())
	require.NotNil(t, model.ReferencedSymbol(create))
	assert.Equal(t, frontend.SymConstructor, model.ReferencedSymbol(create).Kind)

	add := find(root, frontend.SynInvocation, "")
	require.NotNil(t, add)
	m := model.ReferencedSymbol(add)
	require.NotNil(t, m)
	assert.Equal(t, "Add", m.Name)
	assert.Equal(t, listKey, m.Container.Key)

	count := find(root, frontend.SynMemberAccess, "Count")
	require.NotNil(t, count)
	assert.Equal(t, "P:System.Collections.Generic.List`1.Count", model.ReferencedSymbol(count).Key)
	assert.Equal(t, "T:System.Int32", model.TypeOf(count).Key())
}

func TestPartialTypesMergeAcrossDocuments(t *testing.T) {
	f := load(t,
		"A.cs", "namespace App { public partial class P { public int A; } }\n",
		"B.cs", "namespace App { public partial class P { public int B; } }\n",
	)
	rootA, modelA := f.unit(t, "A.cs")
	rootB, modelB := f.unit(t, "B.cs")

	a := modelA.DeclaredSymbol(find(rootA, frontend.SynClass, "P"))
	b := modelB.DeclaredSymbol(find(rootB, frontend.SynClass, "P"))
	require.NotNil(t, a)
	assert.Same(t, a, b)
	assert.Len(t, a.Locations, 2)
	assert.True(t, a.Is(frontend.ModPartial))

	assert.Same(t, a, modelB.DeclaredSymbol(find(rootB, frontend.SynField, "B")).Container)
	assert.Empty(t, f.diags(t, "A.cs"))
	assert.Empty(t, f.diags(t, "B.cs"))
}

func TestDuplicateDeclarations(t *testing.T) {
	f := load(t, "Dup.cs", `namespace App {
    class P { void M() {} void M() {} }
    class P { }
}
`)
	assert.ElementsMatch(t, []string{"CS0101", "CS0111"}, ids(f.diags(t, "Dup.cs")))
}

func TestUnresolvedNamesStayUnbound(t *testing.T) {
	f := load(t, "Lost.cs", "class A {\n    void M() {\n        Missing(1);\n    }\n}\n")
	root, model := f.unit(t, "Lost.cs")

	call := find(root, frontend.SynInvocation, "")
	require.NotNil(t, call)
	assert.Nil(t, model.ReferencedSymbol(call))
	assert.Nil(t, model.ReferencedSymbol(call.Child(0)))
	assert.Empty(t, f.diags(t, "Lost.cs"))
}

func TestEnumMembers(t *testing.T) {
	f := load(t, "Color.cs", "namespace App {\n    public enum Color { Red, Green = 5 }\n}\n")
	root, model := f.unit(t, "Color.cs")

	enum := model.DeclaredSymbol(find(root, frontend.SynEnum, "Color"))
	require.NotNil(t, enum)
	assert.Equal(t, frontend.SymEnum, enum.Kind)

	red := model.DeclaredSymbol(find(root, frontend.SynEnumMember, "Red"))
	require.NotNil(t, red)
	assert.Equal(t, "F:App.Color.Red", red.Key)
	assert.True(t, red.Is(frontend.ModConst))
	assert.True(t, red.Is(frontend.ModStatic))
	assert.Equal(t, frontend.AccessPublic, red.Access)
	assert.Same(t, enum, red.Type.Symbol)

	green := find(root, frontend.SynEnumMember, "Green")
	require.NotNil(t, green)
	require.NotNil(t, green.Child(0))
	assert.Equal(t, "5", green.Child(0).Token)
}

func TestInheritanceAndOverride(t *testing.T) {
	f := load(t, "Shapes.cs", `namespace App {
    public interface IShape { double Area(); }
    public class Shape : IShape {
        public Shape() { }
        public virtual double Area() { return 0; }
    }
    public class Circle : Shape {
        public Circle(double r) : base() { }
        public override double Area() { return 1; }
    }
}
`)
	root, model := f.unit(t, "Shapes.cs")

	shape := model.DeclaredSymbol(find(root, frontend.SynClass, "Shape"))
	circle := model.DeclaredSymbol(find(root, frontend.SynClass, "Circle"))
	require.NotNil(t, shape)
	require.NotNil(t, circle)
	assert.Equal(t, "T:System.Object", shape.BaseType.Key())
	require.Len(t, shape.Interfaces, 1)
	assert.Equal(t, "T:App.IShape", shape.Interfaces[0].Key())
	assert.Same(t, shape, circle.BaseType.Symbol)

	var areas []*frontend.Symbol
	root.Walk(func(n *frontend.SyntaxNode) bool {
		if n.Kind == frontend.SynMethod && n.Name == "Area" {
			areas = append(areas, model.DeclaredSymbol(n))
		}
		return true
	})
	require.Len(t, areas, 3)
	assert.Equal(t, frontend.AccessPublic, areas[0].Access, "interface members are public")
	assert.Same(t, areas[1], areas[2].Overridden)

	var ctor *frontend.SyntaxNode
	root.Walk(func(n *frontend.SyntaxNode) bool {
		if n.Kind == frontend.SynConstructor && n.Child(0) != nil {
			ctor = n
		}
		return true
	})
	require.NotNil(t, ctor)
	init := ctor.Child(0)
	require.NotNil(t, init)
	assert.Equal(t, "base", init.Token)
	assert.Equal(t, "M:App.Shape.#ctor", model.ReferencedSymbol(init).Key)
}

func TestPropertySetterValue(t *testing.T) {
	f := load(t, "Box.cs", `class Box {
    private int _v;
    public int V {
        get { return _v; }
        set { _v = value; }
    }
}
`)
	root, model := f.unit(t, "Box.cs")

	set := find(root, frontend.SynAccessorSet, "")
	require.NotNil(t, set)
	value := model.DeclaredSymbol(set)
	require.NotNil(t, value)
	assert.Equal(t, "value", value.Name)
	assert.Equal(t, "T:System.Int32", value.Type.Key())

	var use *frontend.SyntaxNode
	set.Walk(func(n *frontend.SyntaxNode) bool {
		if n.Kind == frontend.SynIdentifier && n.Name == "value" {
			use = n
		}
		return true
	})
	require.NotNil(t, use)
	assert.Same(t, value, model.ReferencedSymbol(use))

	field := model.DeclaredSymbol(find(root, frontend.SynField, "_v"))
	require.NotNil(t, field)
	assert.Equal(t, frontend.AccessPrivate, field.Access)
}

func TestUnusedLocalWarning(t *testing.T) {
	f := load(t, "Idle.cs", "class A {\n    void M() {\n        int x;\n        int y;\n        y = 2;\n    }\n}\n")
	ds := f.diags(t, "Idle.cs")
	require.Len(t, ds, 1)
	assert.Equal(t, "CS0168", ds[0].ID)
	assert.Equal(t, diag.SevWarning, ds[0].Severity)
	assert.Contains(t, ds[0].Message, "'x'")
}

func TestDocComments(t *testing.T) {
	f := load(t, "Doc.cs", `class A {
    /// <summary>Adds two numbers.</summary>
    public int Add(int a, int b) { return a + b; }
}
`)
	root, _ := f.unit(t, "Doc.cs")
	m := find(root, frontend.SynMethod, "Add")
	require.NotNil(t, m)
	assert.Equal(t, []string{"Adds two numbers."}, m.Doc)
}

func TestUnknownDocument(t *testing.T) {
	f := load(t, "A.cs", "class A {}\n")
	_, err := f.svc.SyntaxTree(context.Background(), source.FileID(99))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown document")
}

func TestCancelledLoadIsRetried(t *testing.T) {
	f := load(t, "A.cs", "class A {}\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.svc.SemanticModel(ctx, f.ids["A.cs"])
	require.Error(t, err)

	_, model := f.unit(t, "A.cs")
	assert.NotNil(t, model)
}

func TestConcurrentQueriesShareOneModel(t *testing.T) {
	f := load(t, "Point.cs", point)
	models := make([]frontend.SemanticModel, 8)
	var g errgroup.Group
	for i := range models {
		g.Go(func() error {
			m, err := f.svc.SemanticModel(context.Background(), f.ids["Point.cs"])
			models[i] = m
			return err
		})
	}
	require.NoError(t, g.Wait())
	for _, m := range models[1:] {
		assert.Same(t, models[0], m)
	}
}
