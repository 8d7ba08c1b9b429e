package tsast

import "cs2ts/internal/emit"

// PredefinedType is any, number, string, boolean, void, never or unknown.
type PredefinedType struct {
	trivia
	Name string
}

func (n *PredefinedType) Kind() Kind { return KindPredefinedType }

// Accept calls v.VisitPredefinedType.
func (n *PredefinedType) Accept(v Visitor) error { return v.VisitPredefinedType(n) }
func (n *PredefinedType) CodeDisplay() string    { return display(n) }
func (*PredefinedType) typeNode()                {}

func (n *PredefinedType) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the predefined type.
func (n *PredefinedType) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		e.Write(n.Name)
	})
}

// TypeReference is a named type with optional type arguments.
type TypeReference struct {
	trivia
	Name EntityName
	Args []Type
}

func (n *TypeReference) Kind() Kind { return KindTypeReference }

// Accept calls v.VisitTypeReference.
func (n *TypeReference) Accept(v Visitor) error { return v.VisitTypeReference(n) }
func (n *TypeReference) CodeDisplay() string    { return display(n) }
func (*TypeReference) typeNode()                {}

func (n *TypeReference) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the type reference.
func (n *TypeReference) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		n.Name.Emit(e)
		emit.WriteListKind(e, n.Args, emit.AngleCommaList)
	})
}

// ArrayType is T[].
type ArrayType struct {
	trivia
	Element Type
}

func (n *ArrayType) Kind() Kind { return KindArrayType }

// Accept calls v.VisitArrayType.
func (n *ArrayType) Accept(v Visitor) error { return v.VisitArrayType(n) }
func (n *ArrayType) CodeDisplay() string    { return display(n) }
func (*ArrayType) typeNode()                {}

func (n *ArrayType) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the array type.
func (n *ArrayType) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		switch n.Element.(type) {
		case *UnionType, *FunctionType:
			e.Write("(")
			n.Element.Emit(e)
			e.Write(")")
		default:
			n.Element.Emit(e)
		}
		e.Write("[]")
	})
}

// UnionType is A | B.
type UnionType struct {
	trivia
	Types []Type
}

func (n *UnionType) Kind() Kind { return KindUnionType }

// Accept calls v.VisitUnionType.
func (n *UnionType) Accept(v Visitor) error { return v.VisitUnionType(n) }
func (n *UnionType) CodeDisplay() string    { return display(n) }
func (*UnionType) typeNode()                {}

func (n *UnionType) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the union type.
func (n *UnionType) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		emit.WriteListKind(e, n.Types, emit.UnionList)
	})
}

// FunctionType is (params) => R.
type FunctionType struct {
	trivia
	Params     []*Parameter
	ReturnType Type
}

func (n *FunctionType) Kind() Kind { return KindFunctionType }

// Accept calls v.VisitFunctionType.
func (n *FunctionType) Accept(v Visitor) error { return v.VisitFunctionType(n) }
func (n *FunctionType) CodeDisplay() string    { return display(n) }
func (*FunctionType) typeNode()                {}

func (n *FunctionType) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the function type.
func (n *FunctionType) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		emit.WriteListKind(e, n.Params, emit.ParenCommaList)
		e.Write(" => ")
		n.ReturnType.Emit(e)
	})
}

// TypeParameter is a generic parameter with an optional constraint.
type TypeParameter struct {
	trivia
	Name       *Identifier
	Constraint Type
}

func (n *TypeParameter) Kind() Kind { return KindTypeParameter }

// Accept calls v.VisitTypeParameter.
func (n *TypeParameter) Accept(v Visitor) error { return v.VisitTypeParameter(n) }
func (n *TypeParameter) CodeDisplay() string    { return display(n) }

func (n *TypeParameter) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the type parameter.
func (n *TypeParameter) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		n.Name.Emit(e)
		if n.Constraint != nil {
			e.Write(" extends ")
			n.Constraint.Emit(e)
		}
	})
}
