package tsast

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cs2ts/internal/emit"
)

func emitted(t *testing.T, n Node) string {
	t.Helper()
	s, err := emit.String(n, emit.DefaultOptions())
	require.NoError(t, err)
	return s
}

func assertText(t *testing.T, want string, n Node) {
	t.Helper()
	assert.Equal(t, want, emitted(t, n), n.Kind().String())
}

func TestExpressions(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"member call", Call(Member(This(), "items"), Num("1"), Str("it's")), `this.items(1, 'it\'s')`},
		{"new", &NewExpression{Callee: Ident("Map"), TypeArgs: []Type{StringType(), NumberType()}}, "new Map<string, number>()"},
		{"conditional", &ConditionalExpression{Condition: Ident("a"), WhenTrue: Num("1"), WhenFalse: Num("2")}, "a ? 1 : 2"},
		{"prefix", &UnaryExpression{Op: "!", Operand: Ident("done")}, "!done"},
		{"postfix", &UnaryExpression{Op: "++", Operand: Ident("i"), Postfix: true}, "i++"},
		{"double negation", &UnaryExpression{Op: "-", Operand: &UnaryExpression{Op: "-", Operand: Ident("x")}}, "- -x"},
		{"typeof", &UnaryExpression{Op: "typeof", Operand: Ident("x")}, "typeof x"},
		{"element", &ElementAccessExpression{Target: Ident("xs"), Index: Num("0")}, "xs[0]"},
		{"array", &ArrayLiteral{Elements: []Expression{Num("1"), Num("2")}}, "[1, 2]"},
		{"empty object", &ObjectLiteral{}, "{}"},
		{"object", &ObjectLiteral{Properties: []*PropertyAssignment{{Name: Ident("a"), Value: Num("1")}}}, "{ a: 1 }"},
		{"arrow", &ArrowFunction{Params: []*Parameter{Param("x", NumberType())}, Body: Binary(Ident("x"), "*", Num("2"))}, "(x: number) => x * 2"},
		{"arrow object", &ArrowFunction{Body: &ObjectLiteral{}}, "() => ({})"},
		{"as", &AsExpression{Expr: Ident("x"), Type: Ref("Foo")}, "x as Foo"},
		{"raw", &RawExpression{Text: "console.log(a,  b)"}, "console.log(a,  b)"},
		{"string escapes", Str("a\nb\\c"), `'a\nb\\c'`},
		{"double quoted", &StringLiteral{Value: `say "hi"`, DoubleQuote: true}, `"say \"hi\""`},
		{"assign", &AssignmentExpression{Left: Member(This(), "x"), Op: "+=", Right: Num("1")}, "this.x += 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertText(t, tt.want, tt.node)
		})
	}
}

func TestTypes(t *testing.T) {
	tests := []struct {
		node Type
		want string
	}{
		{Ref("System.Collections.List", NumberType()), "System.Collections.List<number>"},
		{&ArrayType{Element: StringType()}, "string[]"},
		{&ArrayType{Element: &UnionType{Types: []Type{StringType(), Predefined("null")}}}, "(string | null)[]"},
		{&FunctionType{Params: []*Parameter{Param("a", AnyType())}, ReturnType: VoidType()}, "(a: any) => void"},
	}
	for _, tt := range tests {
		assertText(t, tt.want, tt.node)
	}
}

func TestStatements(t *testing.T) {
	ifElse := &IfStatement{
		Condition: Ident("a"),
		Then:      BlockOf(Return(Num("1"))),
		Else: &IfStatement{
			Condition: Ident("b"),
			Then:      BlockOf(Return(Num("2"))),
			Else:      BlockOf(&ThrowStatement{Expr: &NewExpression{Callee: Ident("Error")}}),
		},
	}
	assertText(t, "if (a) {\n  return 1;\n} else if (b) {\n  return 2;\n} else {\n  throw new Error();\n}", ifElse)

	single := &WhileStatement{Condition: Bool(true), Body: &BreakStatement{}}
	assertText(t, "while (true)\n  break;", single)

	forLoop := &ForStatement{
		Initializer: LetStmt("i", nil, Num("0")).List,
		Condition:   Binary(Ident("i"), "<", Num("10")),
		Incrementors: []Expression{
			&UnaryExpression{Op: "++", Operand: Ident("i"), Postfix: true},
		},
		Body: BlockOf(),
	}
	assertText(t, "for (let i = 0; i < 10; i++) {}", forLoop)
	assertText(t, "for (;;) {}", &ForStatement{Body: BlockOf()})

	forOf := &ForOfStatement{Keyword: Const, Name: Ident("x"), Expr: Ident("xs"), Body: BlockOf(ExprStmt(Call(Ident("f"), Ident("x"))))}
	assertText(t, "for (const x of xs) {\n  f(x);\n}", forOf)

	doWhile := &DoWhileStatement{Body: BlockOf(), Condition: Ident("more")}
	assertText(t, "do {} while (more);", doWhile)

	try := &TryStatement{Block: BlockOf(), CatchName: Ident("e"), Catch: BlockOf(), Finally: BlockOf()}
	assertText(t, "try {} catch (e) {} finally {}", try)

	sw := &SwitchStatement{Expr: Ident("k"), Clauses: []*CaseClause{
		{Test: Num("1"), Statements: []Statement{ExprStmt(Call(Ident("one"))), &BreakStatement{}}},
		{Statements: []Statement{&ReturnStatement{}}},
	}}
	assertText(t, "switch (k) {\n  case 1:\n    one();\n    break;\n  default:\n    return;\n}", sw)
}

func TestClassDeclaration(t *testing.T) {
	class := &ClassDeclaration{
		Modifiers:  Modifiers{Export: true},
		Name:       Ident("Point"),
		TypeParams: []*TypeParameter{{Name: Ident("T")}},
		Extends:    Ref("Base"),
		Implements: []Type{Ref("IShape"), Ref("IComparable", Ref("Point"))},
		Members: []ClassMember{
			&PropertyDeclaration{Modifiers: Modifiers{Access: AccessPrivate}, Name: Ident("$x"), Type: NumberType(), Init: Num("0")},
			&ConstructorDeclaration{Params: []*Parameter{Param("x", NumberType())}, Body: BlockOf(
				ExprStmt(Call(&SuperExpression{})),
				ExprStmt(Assign(Member(This(), "$x"), Ident("x"))),
			)},
			&GetAccessor{Modifiers: Modifiers{Access: AccessPublic}, Name: Ident("x"), ReturnType: NumberType(), Body: BlockOf(Return(Member(This(), "$x")))},
			&MethodDeclaration{Modifiers: Modifiers{Static: true}, Name: Ident("origin"), ReturnType: Ref("Point"), Body: BlockOf(
				Return(&NewExpression{Callee: Ident("Point"), Args: []Expression{Num("0")}}),
			)},
			&MethodDeclaration{Name: Ident("scale"), Params: []*Parameter{Param("by", NumberType())}, ReturnType: VoidType()},
		},
	}
	want := `export class Point<T> extends Base implements IShape, IComparable<Point> {
  private $x: number = 0;

  constructor(x: number) {
    super();
    this.$x = x;
  }

  public get x(): number {
    return this.$x;
  }

  static origin(): Point {
    return new Point(0);
  }

  scale(by: number): void;
}`
	assertText(t, want, class)
}

func TestInterfaceAndEnum(t *testing.T) {
	iface := &InterfaceDeclaration{
		Modifiers: Modifiers{Export: true},
		Name:      Ident("IShape"),
		Extends:   []Type{Ref("IBase")},
		Members: []InterfaceMember{
			&PropertySignature{Modifiers: Modifiers{Readonly: true}, Name: Ident("area"), Type: NumberType()},
			&MethodSignature{Name: Ident("draw"), Params: []*Parameter{{Name: Ident("ctx"), Optional: true, Type: AnyType()}}, ReturnType: VoidType()},
		},
	}
	assertText(t, "export interface IShape extends IBase {\n  readonly area: number;\n  draw(ctx?: any): void;\n}", iface)

	enum := &EnumDeclaration{Modifiers: Modifiers{Export: true}, Name: Ident("Color"), Members: []*EnumMember{
		{Name: Ident("red"), Value: Num("0")},
		{Name: Ident("green")},
	}}
	assertText(t, "export enum Color {\n  red = 0,\n  green\n}", enum)

	assertText(t, "enum Empty {}", &EnumDeclaration{Name: Ident("Empty")})
}

func TestSourceFileLayout(t *testing.T) {
	file := &SourceFile{Statements: []Statement{
		&ImportDeclaration{Names: []*Identifier{Ident("A"), Ident("B")}, Module: "./models/A"},
		&ImportDeclaration{Module: "./polyfills"},
		&ClassDeclaration{Name: Ident("C")},
		&EnumDeclaration{Name: Ident("E")},
	}}
	want := "import { A, B } from './models/A';\nimport './polyfills';\n\nclass C {}\n\nenum E {}\n"
	assertText(t, want, file)
	assertText(t, "", &SourceFile{})
}

func TestTriviaCopiesLeaveOriginalUntouched(t *testing.T) {
	orig := &PropertyDeclaration{Name: Ident("count"), Type: NumberType()}
	doc := WithLeadingTrivia(orig, JsDoc("Number of items."))
	commented := WithTrailingTrivia(doc, LineComment("cached"))

	assert.Empty(t, orig.LeadingTrivia())
	assert.Len(t, doc.LeadingTrivia(), 1)
	assert.Empty(t, doc.TrailingTrivia())
	assert.Len(t, commented.LeadingTrivia(), 1)
	assert.Len(t, commented.TrailingTrivia(), 1)
	assert.Same(t, orig.Name, commented.Name)

	assertText(t, "count: number;", orig)
	assertText(t, "/** Number of items. */\ncount: number; // cached", commented)
	assertText(t, "count: number;", WithoutTrivia(commented))
}

func TestJsDocLayoutOption(t *testing.T) {
	n := WithLeadingTrivia(Ident("x"), JsDoc("Single line."))
	opt := emit.DefaultOptions()
	opt.SingleLineJsDocCommentsOnOneLine = false
	got, err := emit.String(n, opt)
	require.NoError(t, err)
	assert.Equal(t, "/**\n * Single line.\n */\nx", got)

	multi := WithLeadingTrivia(Ident("y"), JsDoc("First.", "Second."))
	assertText(t, "/**\n * First.\n * Second.\n */\ny", multi)
}

func TestTrailingCommentsKeepTheirMarker(t *testing.T) {
	assertText(t, "x /** Unit: ms. */", WithTrailingTrivia(Ident("x"), JsDoc("Unit: ms.")))
	assertText(t, "y /* raw */", WithTrailingTrivia(Ident("y"), BlockComment("raw")))
	assertText(t, "z\n/**\n * One.\n * Two.\n */\n", WithTrailingTrivia(Ident("z"), JsDoc("One.", "Two.")))
}

func TestTriviaEqualityByText(t *testing.T) {
	a := LineComment("todo")
	b := LineComment("  todo ")
	assert.Equal(t, a.Text(emit.DefaultOptions()), b.Text(emit.DefaultOptions()))
	assert.NotEqual(t, a.Text(emit.DefaultOptions()), BlockComment("todo").Text(emit.DefaultOptions()))
}

func TestMembersInsideClassKeepTrivia(t *testing.T) {
	class := &ClassDeclaration{Name: Ident("C"), Members: []ClassMember{
		WithTrailingTrivia(&PropertyDeclaration{Name: Ident("a"), Type: NumberType()}, LineComment("first")),
		WithLeadingTrivia(&PropertyDeclaration{Name: Ident("b"), Type: NumberType()}, JsDoc("Second.")),
	}}
	assertText(t, "class C {\n  a: number; // first\n\n  /** Second. */\n  b: number;\n}", class)
}

func TestCodeDisplayIsSingleLine(t *testing.T) {
	class := &ClassDeclaration{Name: Ident("Widget"), Members: []ClassMember{
		&MethodDeclaration{Name: Ident("render"), Body: BlockOf(Return(Str(strings.Repeat("x", 80))))},
	}}
	d := class.CodeDisplay()
	assert.NotContains(t, d, "\n")
	assert.True(t, strings.HasPrefix(d, "class Widget {"))
	assert.LessOrEqual(t, len([]rune(d)), 60)
	assert.Equal(t, "a + 1", Binary(Ident("a"), "+", Num("1")).CodeDisplay())
}

func TestEmissionIdempotent(t *testing.T) {
	nodes := []Node{
		Call(Member(Ident("console"), "log"), Str("hi")),
		&ConditionalExpression{Condition: Ident("a"), WhenTrue: Ident("b"), WhenFalse: Ident("c")},
		Binary(Ident("x"), "===", &NullLiteral{}),
	}
	for _, n := range nodes {
		first := emitted(t, n)
		reparsed := &RawExpression{Text: first}
		assert.Equal(t, first, emitted(t, reparsed))
		assert.Equal(t, first, emitted(t, WithoutTrivia(n)))
	}
}

type identCounter struct {
	BaseVisitor
	names []string
}

func (v *identCounter) VisitIdentifier(n *Identifier) error {
	v.names = append(v.names, n.Name)
	return nil
}

func TestVisitorDefaultArmIsLoud(t *testing.T) {
	v := &identCounter{}
	require.NoError(t, Ident("a").Accept(v))
	require.NoError(t, Dispatch(v, Ident("b")))
	assert.Equal(t, []string{"a", "b"}, v.names)

	err := Num("1").Accept(v)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedNode))
	assert.Contains(t, err.Error(), "NumericLiteral")

	assert.True(t, errors.Is(Dispatch(v, nil), ErrUnsupportedNode))
}

func TestWalkVisitsEveryIdentifier(t *testing.T) {
	stmt := ExprStmt(Call(Member(Ident("a"), "b"), Ident("c"), Binary(Ident("d"), "+", Num("1"))))
	var names []string
	Walk(stmt, func(n Node) bool {
		if id, ok := n.(*Identifier); ok {
			names = append(names, id.Name)
		}
		return true
	})
	assert.Equal(t, []string{"a", "b", "c", "d"}, names)

	count := 0
	Walk(stmt, func(n Node) bool {
		count++
		_, isCall := n.(*CallExpression)
		return !isCall
	})
	assert.Equal(t, 2, count)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "ClassDeclaration", (&ClassDeclaration{}).Kind().String())
	assert.Equal(t, "Kind(?)", Kind(9999).String())
}
