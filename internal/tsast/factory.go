package tsast

import "strings"

// Ident returns an identifier.
func Ident(name string) *Identifier { return &Identifier{Name: name} }

// Str returns a string literal with value s.
func Str(s string) *StringLiteral { return &StringLiteral{Value: s} }

// Num returns a numeric literal with the given text.
func Num(text string) *NumericLiteral { return &NumericLiteral{Text: text} }

// Bool returns true or false.
func Bool(v bool) *BooleanLiteral { return &BooleanLiteral{Value: v} }

// This returns the this expression.
func This() *ThisExpression { return &ThisExpression{} }

// Member returns target.name.
func Member(target Expression, name string) *MemberExpression {
	return &MemberExpression{Target: target, Name: Ident(name)}
}

// Call returns callee(args) without type arguments.
func Call(callee Expression, args ...Expression) *CallExpression {
	return &CallExpression{Callee: callee, Args: args}
}

// Binary returns left op right.
func Binary(left Expression, op string, right Expression) *BinaryExpression {
	return &BinaryExpression{Left: left, Op: op, Right: right}
}

// Assign returns left = right.
func Assign(left, right Expression) *AssignmentExpression {
	return &AssignmentExpression{Left: left, Op: "=", Right: right}
}

// ExprStmt wraps x in an expression statement.
func ExprStmt(x Expression) *ExpressionStatement { return &ExpressionStatement{Expr: x} }

// Return returns a return statement. A nil x returns nothing.
func Return(x Expression) *ReturnStatement { return &ReturnStatement{Expr: x} }

// BlockOf returns a block holding stmts.
func BlockOf(stmts ...Statement) *Block { return &Block{Statements: stmts} }

// Param returns a required parameter.
func Param(name string, t Type) *Parameter { return &Parameter{Name: Ident(name), Type: t} }

// LetStmt builds a single-declaration let statement.
func LetStmt(name string, t Type, init Expression) *VariableStatement {
	return &VariableStatement{List: &VariableDeclarationList{
		Keyword:      Let,
		Declarations: []*VariableDeclaration{{Name: Ident(name), Type: t, Init: init}},
	}}
}

// Predefined returns the keyword type name.
func Predefined(name string) *PredefinedType { return &PredefinedType{Name: name} }

// AnyType returns the any type.
func AnyType() *PredefinedType     { return Predefined("any") }
func NumberType() *PredefinedType  { return Predefined("number") }
func StringType() *PredefinedType  { return Predefined("string") }
func BooleanType() *PredefinedType { return Predefined("boolean") }
func VoidType() *PredefinedType    { return Predefined("void") }

// Ref builds a type reference; dotted names become qualified names.
func Ref(name string, args ...Type) *TypeReference {
	return &TypeReference{Name: EntityNameOf(name), Args: args}
}

// EntityNameOf splits a dotted name.
func EntityNameOf(name string) EntityName {
	parts := strings.Split(name, ".")
	if len(parts) == 1 {
		return Ident(name)
	}
	q := &QualifiedName{Parts: make([]*Identifier, len(parts))}
	for i, p := range parts {
		q.Parts[i] = Ident(p)
	}
	return q
}
