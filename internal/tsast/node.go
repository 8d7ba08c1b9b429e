package tsast

import (
	"slices"
	"strings"
	"unicode/utf8"

	"cs2ts/internal/emit"
)

// Node is one TypeScript syntax node.
type Node interface {
	emit.Emittable
	Kind() Kind
	LeadingTrivia() []Trivia
	TrailingTrivia() []Trivia
	// CodeDisplay is a short single-line form for logs and test failures.
	CodeDisplay() string
	Accept(v Visitor) error

	withTrivia(t trivia) Node
}

// Expression is a node usable in value position.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a node usable in a statement list.
type Statement interface {
	Node
	statementNode()
}

// Type is a node usable in type position.
type Type interface {
	Node
	typeNode()
}

// EntityName is an *Identifier or a *QualifiedName.
type EntityName interface {
	Node
	entityNameNode()
}

// ClassMember is a node allowed in a class body.
type ClassMember interface {
	Node
	classMemberNode()
}

// InterfaceMember is a node allowed in an interface body.
type InterfaceMember interface {
	Node
	interfaceMemberNode()
}

type trivia struct {
	leading  []Trivia
	trailing []Trivia
}

// LeadingTrivia returns the trivia printed before the node.
func (t trivia) LeadingTrivia() []Trivia { return t.leading }

// TrailingTrivia returns the trivia printed after the node.
func (t trivia) TrailingTrivia() []Trivia { return t.trailing }

func (t trivia) emitWith(e *emit.Emitter, body func()) {
	for _, tr := range t.leading {
		tr.emitLeading(e)
	}
	body()
	for _, tr := range t.trailing {
		tr.emitTrailing(e)
	}
}

// WithLeadingTrivia returns a copy of n with its leading trivia replaced.
func WithLeadingTrivia[N Node](n N, ts ...Trivia) N {
	return n.withTrivia(trivia{leading: slices.Clone(ts), trailing: n.TrailingTrivia()}).(N)
}

// WithTrailingTrivia returns a copy of n with its trailing trivia replaced.
func WithTrailingTrivia[N Node](n N, ts ...Trivia) N {
	return n.withTrivia(trivia{leading: n.LeadingTrivia(), trailing: slices.Clone(ts)}).(N)
}

// WithoutTrivia returns a copy of n with no trivia.
func WithoutTrivia[N Node](n N) N {
	return n.withTrivia(trivia{}).(N)
}

const displayWidth = 60

func display(n Node) string {
	var b strings.Builder
	n.withTrivia(trivia{}).Emit(emit.New(&b, emit.DefaultOptions()))
	s := strings.Join(strings.Fields(b.String()), " ")
	if utf8.RuneCountInString(s) > displayWidth {
		s = string([]rune(s)[:displayWidth-3]) + "..."
	}
	return s
}

// Accessibility of a class member.
type Accessibility uint8

const (
	AccessNone Accessibility = iota
	AccessPublic
	AccessProtected
	AccessPrivate
)

// String returns the TypeScript keyword.
func (a Accessibility) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	}
	return ""
}

// Modifiers are printed in TypeScript's canonical order.
type Modifiers struct {
	Export   bool
	Declare  bool
	Access   Accessibility
	Static   bool
	Abstract bool
	Readonly bool
	Const    bool
}

func (m Modifiers) emit(e *emit.Emitter) {
	if m.Export {
		e.Write("export")
	}
	if m.Declare {
		e.Write("declare")
	}
	if m.Access != AccessNone {
		e.Write(m.Access.String())
	}
	if m.Static {
		e.Write("static")
	}
	if m.Abstract {
		e.Write("abstract")
	}
	if m.Readonly {
		e.Write("readonly")
	}
	if m.Const {
		e.Write("const")
	}
}

// VariableKeyword is let, const or var.
type VariableKeyword uint8

const (
	Let VariableKeyword = iota
	Const
	Var
)

// String returns the TypeScript keyword.
func (k VariableKeyword) String() string {
	switch k {
	case Const:
		return "const"
	case Var:
		return "var"
	}
	return "let"
}
