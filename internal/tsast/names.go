package tsast

import "cs2ts/internal/emit"

// Identifier is a plain name.
type Identifier struct {
	trivia
	Name string
}

func (n *Identifier) Kind() Kind { return KindIdentifier }

// Accept calls v.VisitIdentifier.
func (n *Identifier) Accept(v Visitor) error { return v.VisitIdentifier(n) }
func (n *Identifier) CodeDisplay() string    { return display(n) }
func (*Identifier) expressionNode()          {}
func (*Identifier) entityNameNode()          {}

func (n *Identifier) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the identifier.
func (n *Identifier) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		e.Write(n.Name)
	})
}

// QualifiedName is a dotted type name such as ns.Type.
type QualifiedName struct {
	trivia
	Parts []*Identifier
}

func (n *QualifiedName) Kind() Kind { return KindQualifiedName }

// Accept calls v.VisitQualifiedName.
func (n *QualifiedName) Accept(v Visitor) error { return v.VisitQualifiedName(n) }
func (n *QualifiedName) CodeDisplay() string    { return display(n) }
func (*QualifiedName) entityNameNode()          {}

func (n *QualifiedName) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the qualified name.
func (n *QualifiedName) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		for i, p := range n.Parts {
			if i > 0 {
				e.Write(".")
			}
			p.Emit(e)
		}
	})
}

// StringLiteral holds the unquoted value; Emit quotes it.
type StringLiteral struct {
	trivia
	Value       string
	DoubleQuote bool
}

func (n *StringLiteral) Kind() Kind { return KindStringLiteral }

// Accept calls v.VisitStringLiteral.
func (n *StringLiteral) Accept(v Visitor) error { return v.VisitStringLiteral(n) }
func (n *StringLiteral) CodeDisplay() string    { return display(n) }
func (*StringLiteral) expressionNode()          {}

func (n *StringLiteral) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the string literal.
func (n *StringLiteral) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		e.Write(quoteString(n.Value, n.DoubleQuote))
	})
}

// NumericLiteral keeps the source text of the number.
type NumericLiteral struct {
	trivia
	Text string
}

func (n *NumericLiteral) Kind() Kind { return KindNumericLiteral }

// Accept calls v.VisitNumericLiteral.
func (n *NumericLiteral) Accept(v Visitor) error { return v.VisitNumericLiteral(n) }
func (n *NumericLiteral) CodeDisplay() string    { return display(n) }
func (*NumericLiteral) expressionNode()          {}

func (n *NumericLiteral) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the numeric literal.
func (n *NumericLiteral) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		e.Write(n.Text)
	})
}

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	trivia
	Value bool
}

func (n *BooleanLiteral) Kind() Kind { return KindBooleanLiteral }

// Accept calls v.VisitBooleanLiteral.
func (n *BooleanLiteral) Accept(v Visitor) error { return v.VisitBooleanLiteral(n) }
func (n *BooleanLiteral) CodeDisplay() string    { return display(n) }
func (*BooleanLiteral) expressionNode()          {}

func (n *BooleanLiteral) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the boolean literal.
func (n *BooleanLiteral) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		if n.Value {
			e.Write("true")
		} else {
			e.Write("false")
		}
	})
}

// NullLiteral is null.
type NullLiteral struct {
	trivia
}

func (n *NullLiteral) Kind() Kind { return KindNullLiteral }

// Accept calls v.VisitNullLiteral.
func (n *NullLiteral) Accept(v Visitor) error { return v.VisitNullLiteral(n) }
func (n *NullLiteral) CodeDisplay() string    { return display(n) }
func (*NullLiteral) expressionNode()          {}

func (n *NullLiteral) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the null literal.
func (n *NullLiteral) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		e.Write("null")
	})
}

// UndefinedLiteral is undefined.
type UndefinedLiteral struct {
	trivia
}

func (n *UndefinedLiteral) Kind() Kind { return KindUndefinedLiteral }

// Accept calls v.VisitUndefinedLiteral.
func (n *UndefinedLiteral) Accept(v Visitor) error { return v.VisitUndefinedLiteral(n) }
func (n *UndefinedLiteral) CodeDisplay() string    { return display(n) }
func (*UndefinedLiteral) expressionNode()          {}

func (n *UndefinedLiteral) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the undefined literal.
func (n *UndefinedLiteral) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		e.Write("undefined")
	})
}
