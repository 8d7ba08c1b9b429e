package tsast

import "cs2ts/internal/emit"

// ThisExpression is the this keyword.
type ThisExpression struct {
	trivia
}

func (n *ThisExpression) Kind() Kind { return KindThisExpression }

// Accept calls v.VisitThisExpression.
func (n *ThisExpression) Accept(v Visitor) error { return v.VisitThisExpression(n) }
func (n *ThisExpression) CodeDisplay() string    { return display(n) }
func (*ThisExpression) expressionNode()          {}

func (n *ThisExpression) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the this expression.
func (n *ThisExpression) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		e.Write("this")
	})
}

// SuperExpression is the super keyword.
type SuperExpression struct {
	trivia
}

func (n *SuperExpression) Kind() Kind { return KindSuperExpression }

// Accept calls v.VisitSuperExpression.
func (n *SuperExpression) Accept(v Visitor) error { return v.VisitSuperExpression(n) }
func (n *SuperExpression) CodeDisplay() string    { return display(n) }
func (*SuperExpression) expressionNode()          {}

func (n *SuperExpression) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the super expression.
func (n *SuperExpression) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		e.Write("super")
	})
}

// ParenthesizedExpression is (expr).
type ParenthesizedExpression struct {
	trivia
	Expr Expression
}

func (n *ParenthesizedExpression) Kind() Kind { return KindParenthesizedExpression }

// Accept calls v.VisitParenthesizedExpression.
func (n *ParenthesizedExpression) Accept(v Visitor) error { return v.VisitParenthesizedExpression(n) }
func (n *ParenthesizedExpression) CodeDisplay() string    { return display(n) }
func (*ParenthesizedExpression) expressionNode()          {}

func (n *ParenthesizedExpression) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the parenthesized expression.
func (n *ParenthesizedExpression) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		e.Write("(")
		n.Expr.Emit(e)
		e.Write(")")
	})
}

// MemberExpression is target.name.
type MemberExpression struct {
	trivia
	Target Expression
	Name   *Identifier
}

func (n *MemberExpression) Kind() Kind { return KindMemberExpression }

// Accept calls v.VisitMemberExpression.
func (n *MemberExpression) Accept(v Visitor) error { return v.VisitMemberExpression(n) }
func (n *MemberExpression) CodeDisplay() string    { return display(n) }
func (*MemberExpression) expressionNode()          {}

func (n *MemberExpression) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the member expression.
func (n *MemberExpression) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		n.Target.Emit(e)
		e.Write(".")
		n.Name.Emit(e)
	})
}

// ElementAccessExpression is target[index].
type ElementAccessExpression struct {
	trivia
	Target Expression
	Index  Expression
}

func (n *ElementAccessExpression) Kind() Kind { return KindElementAccessExpression }

// Accept calls v.VisitElementAccessExpression.
func (n *ElementAccessExpression) Accept(v Visitor) error { return v.VisitElementAccessExpression(n) }
func (n *ElementAccessExpression) CodeDisplay() string    { return display(n) }
func (*ElementAccessExpression) expressionNode()          {}

func (n *ElementAccessExpression) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the element access expression.
func (n *ElementAccessExpression) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		n.Target.Emit(e)
		e.Write("[")
		n.Index.Emit(e)
		e.Write("]")
	})
}

// CallExpression is callee<T>(args).
type CallExpression struct {
	trivia
	Callee   Expression
	TypeArgs []Type
	Args     []Expression
}

func (n *CallExpression) Kind() Kind { return KindCallExpression }

// Accept calls v.VisitCallExpression.
func (n *CallExpression) Accept(v Visitor) error { return v.VisitCallExpression(n) }
func (n *CallExpression) CodeDisplay() string    { return display(n) }
func (*CallExpression) expressionNode()          {}

func (n *CallExpression) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the call expression.
func (n *CallExpression) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		n.Callee.Emit(e)
		emit.WriteListKind(e, n.TypeArgs, emit.AngleCommaList)
		emit.WriteListKind(e, n.Args, emit.ParenCommaList)
	})
}

// NewExpression is new callee<T>(args).
type NewExpression struct {
	trivia
	Callee   Expression
	TypeArgs []Type
	Args     []Expression
}

func (n *NewExpression) Kind() Kind { return KindNewExpression }

// Accept calls v.VisitNewExpression.
func (n *NewExpression) Accept(v Visitor) error { return v.VisitNewExpression(n) }
func (n *NewExpression) CodeDisplay() string    { return display(n) }
func (*NewExpression) expressionNode()          {}

func (n *NewExpression) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the new expression.
func (n *NewExpression) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		e.Write("new ")
		n.Callee.Emit(e)
		emit.WriteListKind(e, n.TypeArgs, emit.AngleCommaList)
		emit.WriteListKind(e, n.Args, emit.ParenCommaList)
	})
}

// UnaryExpression covers prefix and postfix operators.
type UnaryExpression struct {
	trivia
	Op      string
	Operand Expression
	Postfix bool
}

func (n *UnaryExpression) Kind() Kind { return KindUnaryExpression }

// Accept calls v.VisitUnaryExpression.
func (n *UnaryExpression) Accept(v Visitor) error { return v.VisitUnaryExpression(n) }
func (n *UnaryExpression) CodeDisplay() string    { return display(n) }
func (*UnaryExpression) expressionNode()          {}

func (n *UnaryExpression) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the unary expression.
func (n *UnaryExpression) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		if n.Postfix {
			n.Operand.Emit(e)
			e.Write(n.Op)
			return
		}
		e.Write(n.Op)
		if needsUnarySpace(n.Op, n.Operand) {
			e.Space()
		}
		n.Operand.Emit(e)
	})
}

// BinaryExpression is left op right.
type BinaryExpression struct {
	trivia
	Left  Expression
	Op    string
	Right Expression
}

func (n *BinaryExpression) Kind() Kind { return KindBinaryExpression }

// Accept calls v.VisitBinaryExpression.
func (n *BinaryExpression) Accept(v Visitor) error { return v.VisitBinaryExpression(n) }
func (n *BinaryExpression) CodeDisplay() string    { return display(n) }
func (*BinaryExpression) expressionNode()          {}

func (n *BinaryExpression) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the binary expression.
func (n *BinaryExpression) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		n.Left.Emit(e)
		e.Write(" " + n.Op + " ")
		n.Right.Emit(e)
	})
}

// AssignmentExpression is a plain or compound assignment.
type AssignmentExpression struct {
	trivia
	Left  Expression
	Op    string // =, +=, ...
	Right Expression
}

func (n *AssignmentExpression) Kind() Kind { return KindAssignmentExpression }

// Accept calls v.VisitAssignmentExpression.
func (n *AssignmentExpression) Accept(v Visitor) error { return v.VisitAssignmentExpression(n) }
func (n *AssignmentExpression) CodeDisplay() string    { return display(n) }
func (*AssignmentExpression) expressionNode()          {}

func (n *AssignmentExpression) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the assignment expression.
func (n *AssignmentExpression) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		n.Left.Emit(e)
		e.Write(" " + n.Op + " ")
		n.Right.Emit(e)
	})
}

// ConditionalExpression is cond ? a : b.
type ConditionalExpression struct {
	trivia
	Condition Expression
	WhenTrue  Expression
	WhenFalse Expression
}

func (n *ConditionalExpression) Kind() Kind { return KindConditionalExpression }

// Accept calls v.VisitConditionalExpression.
func (n *ConditionalExpression) Accept(v Visitor) error { return v.VisitConditionalExpression(n) }
func (n *ConditionalExpression) CodeDisplay() string    { return display(n) }
func (*ConditionalExpression) expressionNode()          {}

func (n *ConditionalExpression) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the conditional expression.
func (n *ConditionalExpression) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		n.Condition.Emit(e)
		e.Write(" ? ")
		n.WhenTrue.Emit(e)
		e.Write(" : ")
		n.WhenFalse.Emit(e)
	})
}

// ArrayLiteral is [a, b].
type ArrayLiteral struct {
	trivia
	Elements []Expression
}

func (n *ArrayLiteral) Kind() Kind { return KindArrayLiteral }

// Accept calls v.VisitArrayLiteral.
func (n *ArrayLiteral) Accept(v Visitor) error { return v.VisitArrayLiteral(n) }
func (n *ArrayLiteral) CodeDisplay() string    { return display(n) }
func (*ArrayLiteral) expressionNode()          {}

func (n *ArrayLiteral) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the array literal.
func (n *ArrayLiteral) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		emit.WriteListKind(e, n.Elements, emit.BracketCommaList)
	})
}

// ObjectLiteral is { name: value }.
type ObjectLiteral struct {
	trivia
	Properties []*PropertyAssignment
}

func (n *ObjectLiteral) Kind() Kind { return KindObjectLiteral }

// Accept calls v.VisitObjectLiteral.
func (n *ObjectLiteral) Accept(v Visitor) error { return v.VisitObjectLiteral(n) }
func (n *ObjectLiteral) CodeDisplay() string    { return display(n) }
func (*ObjectLiteral) expressionNode()          {}

func (n *ObjectLiteral) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the object literal.
func (n *ObjectLiteral) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		emit.WriteListKind(e, n.Properties, emit.BraceCommaList)
	})
}

// PropertyAssignment is one name: value entry of an object literal.
type PropertyAssignment struct {
	trivia
	Name  Expression
	Value Expression
}

func (n *PropertyAssignment) Kind() Kind { return KindPropertyAssignment }

// Accept calls v.VisitPropertyAssignment.
func (n *PropertyAssignment) Accept(v Visitor) error { return v.VisitPropertyAssignment(n) }
func (n *PropertyAssignment) CodeDisplay() string    { return display(n) }

func (n *PropertyAssignment) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the property assignment.
func (n *PropertyAssignment) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		n.Name.Emit(e)
		e.Write(": ")
		n.Value.Emit(e)
	})
}

// ArrowFunction's Body is an Expression or a *Block.
type ArrowFunction struct {
	trivia
	Params     []*Parameter
	ReturnType Type
	Body       Node
}

func (n *ArrowFunction) Kind() Kind { return KindArrowFunction }

// Accept calls v.VisitArrowFunction.
func (n *ArrowFunction) Accept(v Visitor) error { return v.VisitArrowFunction(n) }
func (n *ArrowFunction) CodeDisplay() string    { return display(n) }
func (*ArrowFunction) expressionNode()          {}

func (n *ArrowFunction) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the arrow function.
func (n *ArrowFunction) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		emit.WriteListKind(e, n.Params, emit.ParenCommaList)
		if n.ReturnType != nil {
			e.Write(": ")
			n.ReturnType.Emit(e)
		}
		e.Write(" => ")
		if _, ok := n.Body.(*ObjectLiteral); ok {
			e.Write("(")
			n.Body.Emit(e)
			e.Write(")")
			return
		}
		n.Body.Emit(e)
	})
}

// AsExpression is expr as T.
type AsExpression struct {
	trivia
	Expr Expression
	Type Type
}

func (n *AsExpression) Kind() Kind { return KindAsExpression }

// Accept calls v.VisitAsExpression.
func (n *AsExpression) Accept(v Visitor) error { return v.VisitAsExpression(n) }
func (n *AsExpression) CodeDisplay() string    { return display(n) }
func (*AsExpression) expressionNode()          {}

func (n *AsExpression) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the as expression.
func (n *AsExpression) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		n.Expr.Emit(e)
		e.Write(" as ")
		n.Type.Emit(e)
	})
}

// RawExpression splices target text verbatim, e.g. expanded inline code.
type RawExpression struct {
	trivia
	Text string
}

func (n *RawExpression) Kind() Kind { return KindRawExpression }

// Accept calls v.VisitRawExpression.
func (n *RawExpression) Accept(v Visitor) error { return v.VisitRawExpression(n) }
func (n *RawExpression) CodeDisplay() string    { return display(n) }
func (*RawExpression) expressionNode()          {}

func (n *RawExpression) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the raw expression.
func (n *RawExpression) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		e.Raw(n.Text)
	})
}
