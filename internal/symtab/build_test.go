package symtab

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cs2ts/internal/diag"
	"cs2ts/internal/frontend"
	"cs2ts/internal/options"
	"cs2ts/internal/testkit"
)

func unitsOf(t *testing.T, p *testkit.Project) []frontend.Unit {
	t.Helper()
	ctx := context.Background()
	var units []frontend.Unit
	for _, d := range p.Documents() {
		tree, err := p.SyntaxTree(ctx, d.ID)
		require.NoError(t, err)
		model, err := p.SemanticModel(ctx, d.ID)
		require.NoError(t, err)
		units = append(units, frontend.Unit{Doc: d, Tree: tree, Model: model})
	}
	return units
}

func build(t *testing.T, p *testkit.Project, opts *options.CompilerOptions) diag.Result[*Tables] {
	t.Helper()
	res := Build(context.Background(), unitsOf(t, p), opts, Config{})
	require.False(t, res.Cancelled)
	require.NotNil(t, res.Value)
	return res
}

func nameOf(t *testing.T, tables *Tables, s *frontend.Symbol) string {
	t.Helper()
	name, ok := tables.Names.Lookup(s.Key)
	require.True(t, ok, "no script name for %s", s.Key)
	return name
}

func codes(diags []*diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func TestDefaultRenameRules(t *testing.T) {
	p := testkit.NewProject()
	doc := p.Doc("Point.cs")
	point := doc.Class("App", "Point")
	x := point.Field("x", testkit.Int, nil)
	xProp := point.Property("X", testkit.Int).Public()
	y := point.Field("Y", testkit.Int, nil).Public()
	scale := point.Method("Scale", nil, testkit.Param("by", testkit.Double)).Public()
	scale2 := point.Method("Scale", nil, testkit.Param("bx", testkit.Double), testkit.Param("by", testkit.Double)).Public()
	del := point.Method("Delete", nil).Public()
	ctor := point.Constructor().Public()
	builder := point.Nested(frontend.SynClass, "Builder")
	color := doc.Enum("App", "Color")
	red := color.EnumMember("Red", nil)

	res := build(t, p, nil)
	tables := res.Value
	assert.Equal(t, "Point", nameOf(t, tables, point.Sym))
	assert.Equal(t, "$x", nameOf(t, tables, x.Sym), "private field clashing with a property")
	assert.Equal(t, "x", nameOf(t, tables, xProp.Sym))
	assert.Equal(t, "y", nameOf(t, tables, y.Sym))
	assert.Equal(t, "scale", nameOf(t, tables, scale.Sym))
	assert.Equal(t, "scale$1", nameOf(t, tables, scale2.Sym))
	assert.Equal(t, "$delete", nameOf(t, tables, del.Sym))
	assert.Equal(t, "constructor", nameOf(t, tables, ctor.Sym))
	assert.Equal(t, "Point$Builder", nameOf(t, tables, builder.Sym))
	assert.Equal(t, "red", nameOf(t, tables, red.Sym))

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, diag.SymReservedWordRenamed, res.Diagnostics[0].Code)
	assert.Equal(t, diag.SevInfo, res.Diagnostics[0].Severity)
	assert.Equal(t, "Point.cs", res.Diagnostics[0].Path())
	assert.True(t, res.Success())
}

func TestAlternativeRenameRules(t *testing.T) {
	p := testkit.NewProject()
	point := p.Doc("Point.cs").Class("App", "Point")
	count := point.Field("count", testkit.Int, nil)
	name := point.Field("Name", testkit.String, nil).Public()
	run := point.Method("Run", nil).Public()
	color := p.Doc("Color.cs").Enum("App", "Color")
	red := color.EnumMember("Red", nil)

	opts := options.Default()
	opts.RenameRules = options.RenameRules{
		EnumMembers: options.MatchCSharpName,
		Fields:      options.PrivateDollarPrefix,
		Members:     options.MatchCSharpName,
	}
	tables := build(t, p, opts).Value
	assert.Equal(t, "$count", nameOf(t, tables, count.Sym))
	assert.Equal(t, "name", nameOf(t, tables, name.Sym), "public fields are only lower-cased")
	assert.Equal(t, "Run", nameOf(t, tables, run.Sym))
	assert.Equal(t, "Red", nameOf(t, tables, red.Sym))
}

func TestExplicitNames(t *testing.T) {
	p := testkit.NewProject()
	doc := p.Doc("Canvas.cs")
	canvas := doc.Class("App", "Canvas").Attr(frontend.AttrScriptName, "Surface")
	draw := canvas.Method("Draw", nil).Public()
	drawAt := canvas.Method("Draw", nil, testkit.Param("x", testkit.Int)).Public().Attr(frontend.AttrPreserveName)
	drawAll := canvas.Method("Draw", nil, testkit.Param("all", testkit.Boolean)).Public()
	clear := canvas.Method("Clear", nil).Public().Attr(frontend.AttrScriptName, "wipe")
	bad := canvas.Method("Fill", nil).Public().Attr(frontend.AttrScriptName, "fill-all")
	keep := canvas.Method("HTMLSize", testkit.Int).Public().Attr(frontend.AttrPreserveCase)
	tool := doc.Class("App", "Tool")

	opts := options.Default().WithOverride(options.Override{Symbol: tool.Sym.Key, ScriptName: "Brush"})
	res := build(t, p, opts)
	tables := res.Value

	assert.Equal(t, "Surface", nameOf(t, tables, canvas.Sym))
	assert.Equal(t, "Brush", nameOf(t, tables, tool.Sym))
	assert.Equal(t, "draw", nameOf(t, tables, draw.Sym))
	assert.Equal(t, "Draw", nameOf(t, tables, drawAt.Sym))
	assert.Equal(t, "draw$1", nameOf(t, tables, drawAll.Sym), "preserved names leave the numbering")
	assert.Equal(t, "wipe", nameOf(t, tables, clear.Sym))
	assert.Equal(t, "fill", nameOf(t, tables, bad.Sym))
	assert.Equal(t, "HTMLSize", nameOf(t, tables, keep.Sym))

	assert.Equal(t, []diag.Code{diag.SymInvalidScriptName}, codes(res.Diagnostics))
	assert.False(t, res.Success())
}

func TestOverridesShareTheBaseName(t *testing.T) {
	p := testkit.NewProject()
	doc := p.Doc("Shapes.cs")
	shape := doc.Class("App", "Shape").Mods(frontend.ModAbstract)
	area := shape.Method("Area", testkit.Double).Public().Mods(frontend.ModAbstract).Attr(frontend.AttrScriptName, "surface")
	circle := doc.Class("App", "Circle").Extends(shape.Ref())
	circleArea := circle.Method("Area", testkit.Double).Public().Overrides(area.Sym)
	toString := circle.Method("ToString", testkit.String).Public().Overrides(testkit.LibMember("System.Object", "ToString"))

	tables := build(t, p, nil).Value
	assert.Equal(t, "surface", nameOf(t, tables, circleArea.Sym))
	assert.Equal(t, "toString", nameOf(t, tables, toString.Sym))
}

func TestAlternateSignatures(t *testing.T) {
	p := testkit.NewProject()
	doc := p.Doc("Mover.cs")
	mover := doc.Class("App", "Mover")
	move := mover.Method("Move", nil, testkit.Param("x", testkit.Int), testkit.Param("y", testkit.Int)).Public()
	onlyY := mover.Method("Move", nil, testkit.Param("y", testkit.Int)).Public().Attr(frontend.AttrAlternateSignature)
	byType := mover.Method("Move", nil, testkit.Param("a", testkit.Int), testkit.Param("b", testkit.Int), testkit.Param("c", testkit.Int)).Public().Attr(frontend.AttrAlternateSignature)

	res := build(t, p, nil)
	tables := res.Value
	assert.Equal(t, "move", nameOf(t, tables, move.Sym))
	assert.Equal(t, "move", nameOf(t, tables, onlyY.Sym))

	alt, ok := tables.Alternates.Lookup(onlyY.Sym.Key)
	require.True(t, ok)
	assert.Equal(t, Alternate{Canonical: move.Sym.Key, Permutation: []int{1}}, alt)

	_, ok = tables.Alternates.Lookup(byType.Sym.Key)
	assert.False(t, ok, "three ints cannot map onto two")
	assert.Equal(t, []diag.Code{diag.SymAlternateParamMismatch}, codes(res.Diagnostics))
	assert.Equal(t, 1, tables.Alternates.Len())
}

func TestAlternateSignatureErrors(t *testing.T) {
	p := testkit.NewProject()
	doc := p.Doc("Bad.cs")
	c := doc.Class("App", "Bad")
	c.Method("Orphan", nil, testkit.Param("x", testkit.Int)).Public().Attr(frontend.AttrAlternateSignature)
	c.Method("Twice", nil, testkit.Param("x", testkit.Int)).Public()
	c.Method("Twice", nil, testkit.Param("s", testkit.String)).Public()
	c.Method("Twice", nil).Public().Attr(frontend.AttrAlternateSignature)

	res := build(t, p, nil)
	assert.ElementsMatch(t, []diag.Code{diag.SymAlternateWithoutMain, diag.SymAlternateMultipleMain}, codes(res.Diagnostics))
	assert.Zero(t, res.Value.Alternates.Len())
}

func TestInlineCodeTable(t *testing.T) {
	p := testkit.NewProject()
	doc := p.Doc("Car.cs")
	car := doc.Class("App", "Car")
	speed := testkit.Param("speed", testkit.Int)
	drive := car.Method("Drive", nil, speed).Public().Attr(frontend.AttrInlineCode, "{this}.go({speed})")
	broken := car.Method("Stop", nil).Public().Attr(frontend.AttrInlineCode, "{this}.halt({force})")
	self := car.Method("Self", car.Ref()).Public().Attr(frontend.AttrScriptSkip)
	honk := car.Method("Honk", nil).Public()
	writeLine := testkit.LibMember("System.Console", "WriteLine(System.String)")
	car.Method("Run", nil).Public().Body(
		testkit.ExprStmt(doc.Call(doc.Access(doc.TypeName(testkit.Lib.Type("System.Console")), writeLine), writeLine, testkit.Str("vroom"))),
	)

	opts := options.Default().WithOverride(options.Override{Symbol: honk.Sym.Key, InlineCode: "alert('honk')"})
	res := build(t, p, opts)
	tables := res.Value

	tpl, ok := tables.Inline.Lookup(drive.Sym.Key)
	require.True(t, ok)
	assert.Equal(t, "car.go(88)", tpl.Expand("car", Args{"speed": {"88"}}))

	tpl, ok = tables.Inline.Lookup(self.Sym.Key)
	require.True(t, ok)
	assert.Equal(t, "car", tpl.Expand("car", nil))

	tpl, ok = tables.Inline.Lookup(honk.Sym.Key)
	require.True(t, ok)
	assert.Equal(t, "alert('honk')", tpl.Expand("", nil))

	tpl, ok = tables.Inline.Lookup(writeLine.Key)
	require.True(t, ok, "referenced library members are in the table")
	assert.Equal(t, "console.log('hi')", tpl.Expand("", Args{"value": {"'hi'"}}))

	_, ok = tables.Inline.Lookup(broken.Sym.Key)
	assert.False(t, ok)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, diag.TrInlineCodeInvalid, res.Diagnostics[0].Code)

	name, ok := tables.Names.Lookup(testkit.Lib.Type("System.Console").Key)
	require.True(t, ok)
	assert.Equal(t, "console", name)
}

func TestImportTable(t *testing.T) {
	widget := &frontend.Symbol{
		Key: "T:Lib.Widget", Kind: frontend.SymClass, Name: "Widget", Namespace: "Lib",
		Access: frontend.AccessPublic, External: true,
		Attributes: []frontend.Attribute{{Name: "ModuleNameAttribute", Args: []string{"widgets"}}},
	}
	widgetRef := &frontend.TypeRef{Symbol: widget, Name: "Widget"}

	p := testkit.NewProject()
	point := p.Doc("Point.cs").Class("App", "Point")
	circleDoc := p.Doc("Shapes/Circle.cs")
	circle := circleDoc.Class("App.Shapes", "Circle")
	circle.Field("center", point.Ref(), nil)
	circle.Field("handle", widgetRef, nil)
	circle.Field("log", testkit.Lib.Ref("System.Exception"), nil)
	inner := circle.Nested(frontend.SynClass, "Arc")
	hidden := p.Doc("Native.cs").Class("App", "Native").Attr(frontend.AttrImported)

	tables := build(t, p, nil).Value
	o, ok := tables.Imports.Lookup(point.Sym.Key)
	require.True(t, ok)
	assert.Equal(t, Origin{Path: "Point.cs", Name: "Point"}, o)

	o, ok = tables.Imports.Lookup(inner.Sym.Key)
	require.True(t, ok)
	assert.Equal(t, Origin{Path: "Shapes/Circle.cs", Name: "Circle$Arc"}, o)

	_, ok = tables.Imports.Lookup(hidden.Sym.Key)
	assert.False(t, ok, "imported types without a module are globals")
	_, ok = tables.Imports.Lookup(testkit.Lib.Type("System.Exception").Key)
	assert.False(t, ok)

	keys := []string{widget.Key, point.Sym.Key, circle.Sym.Key, inner.Sym.Key, testkit.Lib.Type("System.Exception").Key, point.Sym.Key}
	assert.Equal(t, []Import{
		{Module: "../Point", Names: []string{"Point"}},
		{Module: "widgets", Names: []string{"Widget"}},
	}, tables.Imports.ImportsFor("Shapes/Circle.cs", keys))

	assert.Equal(t, []Import{
		{Module: "./Shapes/Circle", Names: []string{"Circle", "Circle$Arc"}},
	}, tables.Imports.ImportsFor("Point.cs", []string{inner.Sym.Key, circle.Sym.Key}))
}

func TestBuildIsDeterministic(t *testing.T) {
	p := testkit.NewProject()
	for _, path := range []string{"A.cs", "B.cs", "C.cs", "D.cs"} {
		doc := p.Doc(path)
		c := doc.Class("App", path[:1]+"Thing")
		c.Field("value", testkit.Int, nil)
		c.Property("Value", testkit.Int).Public()
		c.Method("Do", nil).Public()
		c.Method("Do", nil, testkit.Param("n", testkit.Int)).Public()
		c.Method("Do", nil, testkit.Param("s", testkit.String)).Public()
		shared := c.Method("Switch", nil).Public()
		shared.Attr(frontend.AttrScriptName, "toggle")
	}
	first := Build(context.Background(), unitsOf(t, p), nil, Config{Jobs: 1})
	for range 5 {
		again := Build(context.Background(), unitsOf(t, p), nil, Config{Jobs: 8})
		assert.Equal(t, first.Value.Snapshot(), again.Value.Snapshot())
		assert.Equal(t, first.Diagnostics, again.Diagnostics)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	p := testkit.NewProject()
	doc := p.Doc("Car.cs")
	car := doc.Class("App", "Car")
	car.Method("Go", nil, testkit.Param("to", testkit.String)).Public().Attr(frontend.AttrInlineCode, "{this}.travel({to})")
	tables := build(t, p, nil).Value

	back := FromSnapshot(tables.Snapshot())
	assert.Equal(t, tables.Names.Keys(), back.Names.Keys())
	assert.Equal(t, tables.Imports.Keys(), back.Imports.Keys())
	assert.Equal(t, tables.Inline.Keys(), back.Inline.Keys())

	empty := FromSnapshot(&Snapshot{})
	assert.Zero(t, empty.Names.Len())
	_, ok := empty.Alternates.Lookup("M:X")
	assert.False(t, ok)
}

func TestUnknownOverrideIsReported(t *testing.T) {
	p := testkit.NewProject()
	p.Doc("A.cs").Class("App", "A")
	opts := options.Default().WithOverride(options.Override{Symbol: "T:App.Gone", ScriptName: "Gone"})
	res := build(t, p, opts)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, diag.SymOverrideUnknownSymbol, res.Diagnostics[0].Code)
	assert.Equal(t, diag.SevWarning, res.Diagnostics[0].Severity)
}

func TestBuildCancelled(t *testing.T) {
	p := testkit.NewProject()
	p.Doc("A.cs").Class("App", "A")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := Build(ctx, unitsOf(t, p), nil, Config{})
	assert.True(t, res.Cancelled)
	assert.Empty(t, res.Diagnostics)
	assert.Nil(t, res.Value)
}
