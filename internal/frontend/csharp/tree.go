package csharp

import (
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"cs2ts/internal/diag"
	"cs2ts/internal/frontend"
)

// tree is one parsed document. Besides the syntax nodes it keeps what the
// syntax model has no room for: declaration headers and written types.
type tree struct {
	doc    *frontend.Document
	root   *frontend.SyntaxNode
	usings []string
	decls  map[*frontend.SyntaxNode]*declInfo
	// types holds the type as written for declarators, foreach and catch
	// variables, lambda parameters, casts, as, typeof and creations.
	types map[*frontend.SyntaxNode]*typeSyntax
	diags []*diag.Diagnostic
}

// declInfo is the header of a type or member declaration.
type declInfo struct {
	mods        frontend.Modifiers
	access      frontend.Accessibility
	hasAccess   bool
	attrs       []frontend.Attribute
	typ         *typeSyntax
	params      []*paramInfo
	typeParams  []string
	constraints []string
	bases       []*typeSyntax
	getter      bool
	setter      bool
}

type paramInfo struct {
	name string
	typ  *typeSyntax
	mods frontend.Modifiers
	def  *frontend.SyntaxNode
}

// typeSyntax is a type as written in source.
type typeSyntax struct {
	name string // "int", "Point", "System.Text.StringBuilder"
	args []*typeSyntax
	elem *typeSyntax
	text string
	// opaque types (tuples, pointers) never resolve.
	opaque bool
}

func (ts *typeSyntax) isVar() bool { return ts != nil && ts.elem == nil && ts.name == "var" }

func (ts *typeSyntax) isVoid() bool { return ts != nil && ts.elem == nil && ts.name == "void" }

type converter struct {
	doc *frontend.Document
	src []byte
	t   *tree
}

func newConverter(doc *frontend.Document, src []byte) *converter {
	return &converter{
		doc: doc,
		src: src,
		t: &tree{
			doc:   doc,
			decls: make(map[*frontend.SyntaxNode]*declInfo),
			types: make(map[*frontend.SyntaxNode]*typeSyntax),
		},
	}
}

func (c *converter) node(kind frontend.SyntaxKind, n sitter.Node) *frontend.SyntaxNode {
	return &frontend.SyntaxNode{Kind: kind, Span: c.span(n)}
}

func (c *converter) unsupported(n sitter.Node) *frontend.SyntaxNode {
	x := c.node(frontend.SynUnsupported, n)
	x.Token = n.Type()
	return x
}

func isTrivia(n sitter.Node) bool {
	t := n.Type()
	return t == "comment" || strings.HasPrefix(t, "preproc")
}

// named lists the named children of n without comments and directives.
func named(n sitter.Node) []sitter.Node {
	out := make([]sitter.Node, 0, n.NamedChildCount())
	for i := range n.NamedChildCount() {
		if ch := n.NamedChild(i); !isTrivia(ch) {
			out = append(out, ch)
		}
	}
	return out
}

func firstNamed(n sitter.Node) (sitter.Node, bool) {
	ns := named(n)
	if len(ns) == 0 {
		return sitter.Node{}, false
	}
	return ns[0], true
}

// part finds a child by field name, falling back to the first named child
// of one of the given grammar types.
func part(n sitter.Node, fieldName string, types ...string) (sitter.Node, bool) {
	if fieldName != "" {
		if f := n.ChildByFieldName(fieldName); !f.IsNull() {
			return f, true
		}
	}
	for _, ch := range named(n) {
		for _, t := range types {
			if ch.Type() == t {
				return ch, true
			}
		}
	}
	return sitter.Node{}, false
}

// hasToken reports whether n has an anonymous child spelled tok.
func (c *converter) hasToken(n sitter.Node, tok string) bool {
	for i := range n.ChildCount() {
		if ch := n.Child(i); !ch.IsNamed() && c.text(ch) == tok {
			return true
		}
	}
	return false
}

// afterEquals finds the value of "= value" inside n, in either the
// equals_value_clause or the flattened form.
func afterEquals(n sitter.Node) (sitter.Node, bool) {
	seen := false
	for i := range n.ChildCount() {
		ch := n.Child(i)
		switch {
		case ch.Type() == "equals_value_clause":
			return firstNamed(ch)
		case !ch.IsNamed() && ch.Type() == "=":
			seen = true
		case seen && ch.IsNamed() && !isTrivia(ch):
			return ch, true
		}
	}
	return sitter.Node{}, false
}

// operator is the operator token of a unary, binary or assignment node.
func (c *converter) operator(n sitter.Node) string {
	if op := n.ChildByFieldName("operator"); !op.IsNull() {
		return c.text(op)
	}
	for i := range n.ChildCount() {
		ch := n.Child(i)
		if ch.Type() == "assignment_operator" || !ch.IsNamed() {
			return c.text(ch)
		}
	}
	return ""
}
