package tsast

import "cs2ts/internal/emit"

// ImportDeclaration is import { A, B } from 'module'. With no names it is a side-effect import.
type ImportDeclaration struct {
	trivia
	Names  []*Identifier
	Module string
}

func (n *ImportDeclaration) Kind() Kind { return KindImportDeclaration }

// Accept calls v.VisitImportDeclaration.
func (n *ImportDeclaration) Accept(v Visitor) error { return v.VisitImportDeclaration(n) }
func (n *ImportDeclaration) CodeDisplay() string    { return display(n) }
func (*ImportDeclaration) statementNode()           {}

func (n *ImportDeclaration) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the import declaration.
func (n *ImportDeclaration) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		e.Write("import")
		if len(n.Names) > 0 {
			e.Space()
			emit.WriteListKind(e, n.Names, emit.BraceCommaList)
			e.Write(" from")
		}
		e.Space()
		e.Write(quoteString(n.Module, false))
		e.Write(";")
	})
}

// ClassDeclaration is a class with its heritage clauses and members.
type ClassDeclaration struct {
	trivia
	Modifiers  Modifiers
	Name       *Identifier
	TypeParams []*TypeParameter
	Extends    Type
	Implements []Type
	Members    []ClassMember
}

func (n *ClassDeclaration) Kind() Kind { return KindClassDeclaration }

// Accept calls v.VisitClassDeclaration.
func (n *ClassDeclaration) Accept(v Visitor) error { return v.VisitClassDeclaration(n) }
func (n *ClassDeclaration) CodeDisplay() string    { return display(n) }
func (*ClassDeclaration) statementNode()           {}

func (n *ClassDeclaration) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the class declaration.
func (n *ClassDeclaration) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		n.Modifiers.emit(e)
		e.Write("class")
		n.Name.Emit(e)
		emit.WriteListKind(e, n.TypeParams, emit.AngleCommaList)
		if n.Extends != nil {
			e.Write(" extends ")
			n.Extends.Emit(e)
		}
		if len(n.Implements) > 0 {
			e.Write(" implements ")
			emit.WriteListKind(e, n.Implements, emit.CommaList)
		}
		e.Space()
		emit.WriteListKind(e, n.Members, emit.MemberBlock)
	})
}

// PropertyDeclaration is a class field.
type PropertyDeclaration struct {
	trivia
	Modifiers Modifiers
	Name      *Identifier
	Optional  bool
	Type      Type
	Init      Expression
}

func (n *PropertyDeclaration) Kind() Kind { return KindPropertyDeclaration }

// Accept calls v.VisitPropertyDeclaration.
func (n *PropertyDeclaration) Accept(v Visitor) error { return v.VisitPropertyDeclaration(n) }
func (n *PropertyDeclaration) CodeDisplay() string    { return display(n) }
func (*PropertyDeclaration) classMemberNode()         {}

func (n *PropertyDeclaration) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the property declaration.
func (n *PropertyDeclaration) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		n.Modifiers.emit(e)
		n.Name.Emit(e)
		if n.Optional {
			e.Write("?")
		}
		if n.Type != nil {
			e.Write(": ")
			n.Type.Emit(e)
		}
		if n.Init != nil {
			e.Write(" = ")
			n.Init.Emit(e)
		}
		e.Write(";")
	})
}

// MethodDeclaration without a Body is an overload signature.
type MethodDeclaration struct {
	trivia
	Modifiers  Modifiers
	Name       *Identifier
	TypeParams []*TypeParameter
	Params     []*Parameter
	ReturnType Type
	Body       *Block
}

func (n *MethodDeclaration) Kind() Kind { return KindMethodDeclaration }

// Accept calls v.VisitMethodDeclaration.
func (n *MethodDeclaration) Accept(v Visitor) error { return v.VisitMethodDeclaration(n) }
func (n *MethodDeclaration) CodeDisplay() string    { return display(n) }
func (*MethodDeclaration) classMemberNode()         {}

func (n *MethodDeclaration) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the method declaration.
func (n *MethodDeclaration) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		n.Modifiers.emit(e)
		n.Name.Emit(e)
		emit.WriteListKind(e, n.TypeParams, emit.AngleCommaList)
		emit.WriteListKind(e, n.Params, emit.ParenCommaList)
		emitReturnType(e, n.ReturnType)
		if n.Body == nil {
			e.Write(";")
			return
		}
		e.Space()
		n.Body.Emit(e)
	})
}

// ConstructorDeclaration is a class constructor.
type ConstructorDeclaration struct {
	trivia
	Modifiers Modifiers
	Params    []*Parameter
	Body      *Block
}

func (n *ConstructorDeclaration) Kind() Kind { return KindConstructorDeclaration }

// Accept calls v.VisitConstructorDeclaration.
func (n *ConstructorDeclaration) Accept(v Visitor) error { return v.VisitConstructorDeclaration(n) }
func (n *ConstructorDeclaration) CodeDisplay() string    { return display(n) }
func (*ConstructorDeclaration) classMemberNode()         {}

func (n *ConstructorDeclaration) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the constructor declaration.
func (n *ConstructorDeclaration) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		n.Modifiers.emit(e)
		e.Write("constructor")
		emit.WriteListKind(e, n.Params, emit.ParenCommaList)
		if n.Body == nil {
			e.Write(";")
			return
		}
		e.Space()
		n.Body.Emit(e)
	})
}

// GetAccessor is a get accessor of a class.
type GetAccessor struct {
	trivia
	Modifiers  Modifiers
	Name       *Identifier
	ReturnType Type
	Body       *Block
}

func (n *GetAccessor) Kind() Kind { return KindGetAccessor }

// Accept calls v.VisitGetAccessor.
func (n *GetAccessor) Accept(v Visitor) error { return v.VisitGetAccessor(n) }
func (n *GetAccessor) CodeDisplay() string    { return display(n) }
func (*GetAccessor) classMemberNode()         {}

func (n *GetAccessor) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the get accessor.
func (n *GetAccessor) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		n.Modifiers.emit(e)
		e.Write("get")
		n.Name.Emit(e)
		e.Write("()")
		emitReturnType(e, n.ReturnType)
		e.Space()
		n.Body.Emit(e)
	})
}

// SetAccessor is a set accessor of a class.
type SetAccessor struct {
	trivia
	Modifiers Modifiers
	Name      *Identifier
	Param     *Parameter
	Body      *Block
}

func (n *SetAccessor) Kind() Kind { return KindSetAccessor }

// Accept calls v.VisitSetAccessor.
func (n *SetAccessor) Accept(v Visitor) error { return v.VisitSetAccessor(n) }
func (n *SetAccessor) CodeDisplay() string    { return display(n) }
func (*SetAccessor) classMemberNode()         {}

func (n *SetAccessor) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the set accessor.
func (n *SetAccessor) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		n.Modifiers.emit(e)
		e.Write("set")
		n.Name.Emit(e)
		e.Write("(")
		n.Param.Emit(e)
		e.Write(")")
		e.Space()
		n.Body.Emit(e)
	})
}

// Parameter is one parameter of a function, method or accessor.
type Parameter struct {
	trivia
	Name     *Identifier
	Rest     bool
	Optional bool
	Type     Type
	Default  Expression
}

func (n *Parameter) Kind() Kind { return KindParameter }

// Accept calls v.VisitParameter.
func (n *Parameter) Accept(v Visitor) error { return v.VisitParameter(n) }
func (n *Parameter) CodeDisplay() string    { return display(n) }

func (n *Parameter) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the parameter.
func (n *Parameter) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		if n.Rest {
			e.Write("...")
		}
		n.Name.Emit(e)
		if n.Optional {
			e.Write("?")
		}
		if n.Type != nil {
			e.Write(": ")
			n.Type.Emit(e)
		}
		if n.Default != nil {
			e.Write(" = ")
			n.Default.Emit(e)
		}
	})
}

// InterfaceDeclaration is an interface with its extends clause.
type InterfaceDeclaration struct {
	trivia
	Modifiers  Modifiers
	Name       *Identifier
	TypeParams []*TypeParameter
	Extends    []Type
	Members    []InterfaceMember
}

func (n *InterfaceDeclaration) Kind() Kind { return KindInterfaceDeclaration }

// Accept calls v.VisitInterfaceDeclaration.
func (n *InterfaceDeclaration) Accept(v Visitor) error { return v.VisitInterfaceDeclaration(n) }
func (n *InterfaceDeclaration) CodeDisplay() string    { return display(n) }
func (*InterfaceDeclaration) statementNode()           {}

func (n *InterfaceDeclaration) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the interface declaration.
func (n *InterfaceDeclaration) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		n.Modifiers.emit(e)
		e.Write("interface")
		n.Name.Emit(e)
		emit.WriteListKind(e, n.TypeParams, emit.AngleCommaList)
		if len(n.Extends) > 0 {
			e.Write(" extends ")
			emit.WriteListKind(e, n.Extends, emit.CommaList)
		}
		e.Space()
		emit.WriteListKind(e, n.Members, emit.Block)
	})
}

// PropertySignature is a property of an interface.
type PropertySignature struct {
	trivia
	Modifiers Modifiers
	Name      *Identifier
	Optional  bool
	Type      Type
}

func (n *PropertySignature) Kind() Kind { return KindPropertySignature }

// Accept calls v.VisitPropertySignature.
func (n *PropertySignature) Accept(v Visitor) error { return v.VisitPropertySignature(n) }
func (n *PropertySignature) CodeDisplay() string    { return display(n) }
func (*PropertySignature) interfaceMemberNode()     {}

func (n *PropertySignature) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the property signature.
func (n *PropertySignature) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		n.Modifiers.emit(e)
		n.Name.Emit(e)
		if n.Optional {
			e.Write("?")
		}
		emitReturnType(e, n.Type)
		e.Write(";")
	})
}

// MethodSignature is a method of an interface.
type MethodSignature struct {
	trivia
	Name       *Identifier
	Optional   bool
	TypeParams []*TypeParameter
	Params     []*Parameter
	ReturnType Type
}

func (n *MethodSignature) Kind() Kind { return KindMethodSignature }

// Accept calls v.VisitMethodSignature.
func (n *MethodSignature) Accept(v Visitor) error { return v.VisitMethodSignature(n) }
func (n *MethodSignature) CodeDisplay() string    { return display(n) }
func (*MethodSignature) interfaceMemberNode()     {}

func (n *MethodSignature) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the method signature.
func (n *MethodSignature) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		n.Name.Emit(e)
		if n.Optional {
			e.Write("?")
		}
		emit.WriteListKind(e, n.TypeParams, emit.AngleCommaList)
		emit.WriteListKind(e, n.Params, emit.ParenCommaList)
		emitReturnType(e, n.ReturnType)
		e.Write(";")
	})
}

// EnumDeclaration is a TypeScript enum.
type EnumDeclaration struct {
	trivia
	Modifiers Modifiers
	Name      *Identifier
	Members   []*EnumMember
}

func (n *EnumDeclaration) Kind() Kind { return KindEnumDeclaration }

// Accept calls v.VisitEnumDeclaration.
func (n *EnumDeclaration) Accept(v Visitor) error { return v.VisitEnumDeclaration(n) }
func (n *EnumDeclaration) CodeDisplay() string    { return display(n) }
func (*EnumDeclaration) statementNode()           {}

func (n *EnumDeclaration) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the enum declaration.
func (n *EnumDeclaration) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		n.Modifiers.emit(e)
		e.Write("enum")
		n.Name.Emit(e)
		e.Space()
		emit.WriteListKind(e, n.Members, emit.CommaBlock)
	})
}

// EnumMember is one enum entry with an optional initializer.
type EnumMember struct {
	trivia
	Name  *Identifier
	Value Expression
}

func (n *EnumMember) Kind() Kind { return KindEnumMember }

// Accept calls v.VisitEnumMember.
func (n *EnumMember) Accept(v Visitor) error { return v.VisitEnumMember(n) }
func (n *EnumMember) CodeDisplay() string    { return display(n) }

func (n *EnumMember) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the enum member.
func (n *EnumMember) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		n.Name.Emit(e)
		if n.Value != nil {
			e.Write(" = ")
			n.Value.Emit(e)
		}
	})
}
