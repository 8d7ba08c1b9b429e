package tsast

import "github.com/cockroachdb/errors"

// ErrUnsupportedNode is returned by visitors for node kinds they do not handle.
var ErrUnsupportedNode = errors.New("unsupported node")

// Unsupported wraps ErrUnsupportedNode with the node kind.
func Unsupported(n Node) error {
	if n == nil {
		return errors.Wrap(ErrUnsupportedNode, "nil node")
	}
	return errors.Wrapf(ErrUnsupportedNode, "%s", n.Kind())
}

// Visitor has one handler per node kind. Embed BaseVisitor to implement only
// the handlers you need; every other kind then fails with ErrUnsupportedNode.
type Visitor interface {
	VisitIdentifier(n *Identifier) error
	VisitQualifiedName(n *QualifiedName) error
	VisitStringLiteral(n *StringLiteral) error
	VisitNumericLiteral(n *NumericLiteral) error
	VisitBooleanLiteral(n *BooleanLiteral) error
	VisitNullLiteral(n *NullLiteral) error
	VisitUndefinedLiteral(n *UndefinedLiteral) error
	VisitThisExpression(n *ThisExpression) error
	VisitSuperExpression(n *SuperExpression) error
	VisitParenthesizedExpression(n *ParenthesizedExpression) error
	VisitMemberExpression(n *MemberExpression) error
	VisitElementAccessExpression(n *ElementAccessExpression) error
	VisitCallExpression(n *CallExpression) error
	VisitNewExpression(n *NewExpression) error
	VisitUnaryExpression(n *UnaryExpression) error
	VisitBinaryExpression(n *BinaryExpression) error
	VisitAssignmentExpression(n *AssignmentExpression) error
	VisitConditionalExpression(n *ConditionalExpression) error
	VisitArrayLiteral(n *ArrayLiteral) error
	VisitObjectLiteral(n *ObjectLiteral) error
	VisitPropertyAssignment(n *PropertyAssignment) error
	VisitArrowFunction(n *ArrowFunction) error
	VisitAsExpression(n *AsExpression) error
	VisitRawExpression(n *RawExpression) error
	VisitPredefinedType(n *PredefinedType) error
	VisitTypeReference(n *TypeReference) error
	VisitArrayType(n *ArrayType) error
	VisitUnionType(n *UnionType) error
	VisitFunctionType(n *FunctionType) error
	VisitTypeParameter(n *TypeParameter) error
	VisitBlock(n *Block) error
	VisitVariableDeclarationList(n *VariableDeclarationList) error
	VisitVariableStatement(n *VariableStatement) error
	VisitVariableDeclaration(n *VariableDeclaration) error
	VisitExpressionStatement(n *ExpressionStatement) error
	VisitReturnStatement(n *ReturnStatement) error
	VisitIfStatement(n *IfStatement) error
	VisitWhileStatement(n *WhileStatement) error
	VisitDoWhileStatement(n *DoWhileStatement) error
	VisitForStatement(n *ForStatement) error
	VisitForOfStatement(n *ForOfStatement) error
	VisitBreakStatement(n *BreakStatement) error
	VisitContinueStatement(n *ContinueStatement) error
	VisitThrowStatement(n *ThrowStatement) error
	VisitTryStatement(n *TryStatement) error
	VisitSwitchStatement(n *SwitchStatement) error
	VisitCaseClause(n *CaseClause) error
	VisitImportDeclaration(n *ImportDeclaration) error
	VisitClassDeclaration(n *ClassDeclaration) error
	VisitPropertyDeclaration(n *PropertyDeclaration) error
	VisitMethodDeclaration(n *MethodDeclaration) error
	VisitConstructorDeclaration(n *ConstructorDeclaration) error
	VisitGetAccessor(n *GetAccessor) error
	VisitSetAccessor(n *SetAccessor) error
	VisitParameter(n *Parameter) error
	VisitInterfaceDeclaration(n *InterfaceDeclaration) error
	VisitPropertySignature(n *PropertySignature) error
	VisitMethodSignature(n *MethodSignature) error
	VisitEnumDeclaration(n *EnumDeclaration) error
	VisitEnumMember(n *EnumMember) error
	VisitSourceFile(n *SourceFile) error
}

// BaseVisitor rejects every kind.
type BaseVisitor struct{}

func (BaseVisitor) VisitIdentifier(n *Identifier) error             { return Unsupported(n) }
func (BaseVisitor) VisitQualifiedName(n *QualifiedName) error       { return Unsupported(n) }
func (BaseVisitor) VisitStringLiteral(n *StringLiteral) error       { return Unsupported(n) }
func (BaseVisitor) VisitNumericLiteral(n *NumericLiteral) error     { return Unsupported(n) }
func (BaseVisitor) VisitBooleanLiteral(n *BooleanLiteral) error     { return Unsupported(n) }
func (BaseVisitor) VisitNullLiteral(n *NullLiteral) error           { return Unsupported(n) }
func (BaseVisitor) VisitUndefinedLiteral(n *UndefinedLiteral) error { return Unsupported(n) }
func (BaseVisitor) VisitThisExpression(n *ThisExpression) error     { return Unsupported(n) }
func (BaseVisitor) VisitSuperExpression(n *SuperExpression) error   { return Unsupported(n) }
func (BaseVisitor) VisitParenthesizedExpression(n *ParenthesizedExpression) error {
	return Unsupported(n)
}
func (BaseVisitor) VisitMemberExpression(n *MemberExpression) error { return Unsupported(n) }
func (BaseVisitor) VisitElementAccessExpression(n *ElementAccessExpression) error {
	return Unsupported(n)
}
func (BaseVisitor) VisitCallExpression(n *CallExpression) error               { return Unsupported(n) }
func (BaseVisitor) VisitNewExpression(n *NewExpression) error                 { return Unsupported(n) }
func (BaseVisitor) VisitUnaryExpression(n *UnaryExpression) error             { return Unsupported(n) }
func (BaseVisitor) VisitBinaryExpression(n *BinaryExpression) error           { return Unsupported(n) }
func (BaseVisitor) VisitAssignmentExpression(n *AssignmentExpression) error   { return Unsupported(n) }
func (BaseVisitor) VisitConditionalExpression(n *ConditionalExpression) error { return Unsupported(n) }
func (BaseVisitor) VisitArrayLiteral(n *ArrayLiteral) error                   { return Unsupported(n) }
func (BaseVisitor) VisitObjectLiteral(n *ObjectLiteral) error                 { return Unsupported(n) }
func (BaseVisitor) VisitPropertyAssignment(n *PropertyAssignment) error       { return Unsupported(n) }
func (BaseVisitor) VisitArrowFunction(n *ArrowFunction) error                 { return Unsupported(n) }
func (BaseVisitor) VisitAsExpression(n *AsExpression) error                   { return Unsupported(n) }
func (BaseVisitor) VisitRawExpression(n *RawExpression) error                 { return Unsupported(n) }
func (BaseVisitor) VisitPredefinedType(n *PredefinedType) error               { return Unsupported(n) }
func (BaseVisitor) VisitTypeReference(n *TypeReference) error                 { return Unsupported(n) }
func (BaseVisitor) VisitArrayType(n *ArrayType) error                         { return Unsupported(n) }
func (BaseVisitor) VisitUnionType(n *UnionType) error                         { return Unsupported(n) }
func (BaseVisitor) VisitFunctionType(n *FunctionType) error                   { return Unsupported(n) }
func (BaseVisitor) VisitTypeParameter(n *TypeParameter) error                 { return Unsupported(n) }
func (BaseVisitor) VisitBlock(n *Block) error                                 { return Unsupported(n) }
func (BaseVisitor) VisitVariableDeclarationList(n *VariableDeclarationList) error {
	return Unsupported(n)
}
func (BaseVisitor) VisitVariableStatement(n *VariableStatement) error     { return Unsupported(n) }
func (BaseVisitor) VisitVariableDeclaration(n *VariableDeclaration) error { return Unsupported(n) }
func (BaseVisitor) VisitExpressionStatement(n *ExpressionStatement) error { return Unsupported(n) }
func (BaseVisitor) VisitReturnStatement(n *ReturnStatement) error         { return Unsupported(n) }
func (BaseVisitor) VisitIfStatement(n *IfStatement) error                 { return Unsupported(n) }
func (BaseVisitor) VisitWhileStatement(n *WhileStatement) error           { return Unsupported(n) }
func (BaseVisitor) VisitDoWhileStatement(n *DoWhileStatement) error       { return Unsupported(n) }
func (BaseVisitor) VisitForStatement(n *ForStatement) error               { return Unsupported(n) }
func (BaseVisitor) VisitForOfStatement(n *ForOfStatement) error           { return Unsupported(n) }
func (BaseVisitor) VisitBreakStatement(n *BreakStatement) error           { return Unsupported(n) }
func (BaseVisitor) VisitContinueStatement(n *ContinueStatement) error     { return Unsupported(n) }
func (BaseVisitor) VisitThrowStatement(n *ThrowStatement) error           { return Unsupported(n) }
func (BaseVisitor) VisitTryStatement(n *TryStatement) error               { return Unsupported(n) }
func (BaseVisitor) VisitSwitchStatement(n *SwitchStatement) error         { return Unsupported(n) }
func (BaseVisitor) VisitCaseClause(n *CaseClause) error                   { return Unsupported(n) }
func (BaseVisitor) VisitImportDeclaration(n *ImportDeclaration) error     { return Unsupported(n) }
func (BaseVisitor) VisitClassDeclaration(n *ClassDeclaration) error       { return Unsupported(n) }
func (BaseVisitor) VisitPropertyDeclaration(n *PropertyDeclaration) error { return Unsupported(n) }
func (BaseVisitor) VisitMethodDeclaration(n *MethodDeclaration) error     { return Unsupported(n) }
func (BaseVisitor) VisitConstructorDeclaration(n *ConstructorDeclaration) error {
	return Unsupported(n)
}
func (BaseVisitor) VisitGetAccessor(n *GetAccessor) error                   { return Unsupported(n) }
func (BaseVisitor) VisitSetAccessor(n *SetAccessor) error                   { return Unsupported(n) }
func (BaseVisitor) VisitParameter(n *Parameter) error                       { return Unsupported(n) }
func (BaseVisitor) VisitInterfaceDeclaration(n *InterfaceDeclaration) error { return Unsupported(n) }
func (BaseVisitor) VisitPropertySignature(n *PropertySignature) error       { return Unsupported(n) }
func (BaseVisitor) VisitMethodSignature(n *MethodSignature) error           { return Unsupported(n) }
func (BaseVisitor) VisitEnumDeclaration(n *EnumDeclaration) error           { return Unsupported(n) }
func (BaseVisitor) VisitEnumMember(n *EnumMember) error                     { return Unsupported(n) }
func (BaseVisitor) VisitSourceFile(n *SourceFile) error                     { return Unsupported(n) }

// Dispatch calls the handler for n's concrete type. Unknown node types hit the
// wildcard arm and report ErrUnsupportedNode.
func Dispatch(v Visitor, n Node) error {
	switch n := n.(type) {
	case *Identifier:
		return v.VisitIdentifier(n)
	case *QualifiedName:
		return v.VisitQualifiedName(n)
	case *StringLiteral:
		return v.VisitStringLiteral(n)
	case *NumericLiteral:
		return v.VisitNumericLiteral(n)
	case *BooleanLiteral:
		return v.VisitBooleanLiteral(n)
	case *NullLiteral:
		return v.VisitNullLiteral(n)
	case *UndefinedLiteral:
		return v.VisitUndefinedLiteral(n)
	case *ThisExpression:
		return v.VisitThisExpression(n)
	case *SuperExpression:
		return v.VisitSuperExpression(n)
	case *ParenthesizedExpression:
		return v.VisitParenthesizedExpression(n)
	case *MemberExpression:
		return v.VisitMemberExpression(n)
	case *ElementAccessExpression:
		return v.VisitElementAccessExpression(n)
	case *CallExpression:
		return v.VisitCallExpression(n)
	case *NewExpression:
		return v.VisitNewExpression(n)
	case *UnaryExpression:
		return v.VisitUnaryExpression(n)
	case *BinaryExpression:
		return v.VisitBinaryExpression(n)
	case *AssignmentExpression:
		return v.VisitAssignmentExpression(n)
	case *ConditionalExpression:
		return v.VisitConditionalExpression(n)
	case *ArrayLiteral:
		return v.VisitArrayLiteral(n)
	case *ObjectLiteral:
		return v.VisitObjectLiteral(n)
	case *PropertyAssignment:
		return v.VisitPropertyAssignment(n)
	case *ArrowFunction:
		return v.VisitArrowFunction(n)
	case *AsExpression:
		return v.VisitAsExpression(n)
	case *RawExpression:
		return v.VisitRawExpression(n)
	case *PredefinedType:
		return v.VisitPredefinedType(n)
	case *TypeReference:
		return v.VisitTypeReference(n)
	case *ArrayType:
		return v.VisitArrayType(n)
	case *UnionType:
		return v.VisitUnionType(n)
	case *FunctionType:
		return v.VisitFunctionType(n)
	case *TypeParameter:
		return v.VisitTypeParameter(n)
	case *Block:
		return v.VisitBlock(n)
	case *VariableDeclarationList:
		return v.VisitVariableDeclarationList(n)
	case *VariableStatement:
		return v.VisitVariableStatement(n)
	case *VariableDeclaration:
		return v.VisitVariableDeclaration(n)
	case *ExpressionStatement:
		return v.VisitExpressionStatement(n)
	case *ReturnStatement:
		return v.VisitReturnStatement(n)
	case *IfStatement:
		return v.VisitIfStatement(n)
	case *WhileStatement:
		return v.VisitWhileStatement(n)
	case *DoWhileStatement:
		return v.VisitDoWhileStatement(n)
	case *ForStatement:
		return v.VisitForStatement(n)
	case *ForOfStatement:
		return v.VisitForOfStatement(n)
	case *BreakStatement:
		return v.VisitBreakStatement(n)
	case *ContinueStatement:
		return v.VisitContinueStatement(n)
	case *ThrowStatement:
		return v.VisitThrowStatement(n)
	case *TryStatement:
		return v.VisitTryStatement(n)
	case *SwitchStatement:
		return v.VisitSwitchStatement(n)
	case *CaseClause:
		return v.VisitCaseClause(n)
	case *ImportDeclaration:
		return v.VisitImportDeclaration(n)
	case *ClassDeclaration:
		return v.VisitClassDeclaration(n)
	case *PropertyDeclaration:
		return v.VisitPropertyDeclaration(n)
	case *MethodDeclaration:
		return v.VisitMethodDeclaration(n)
	case *ConstructorDeclaration:
		return v.VisitConstructorDeclaration(n)
	case *GetAccessor:
		return v.VisitGetAccessor(n)
	case *SetAccessor:
		return v.VisitSetAccessor(n)
	case *Parameter:
		return v.VisitParameter(n)
	case *InterfaceDeclaration:
		return v.VisitInterfaceDeclaration(n)
	case *PropertySignature:
		return v.VisitPropertySignature(n)
	case *MethodSignature:
		return v.VisitMethodSignature(n)
	case *EnumDeclaration:
		return v.VisitEnumDeclaration(n)
	case *EnumMember:
		return v.VisitEnumMember(n)
	case *SourceFile:
		return v.VisitSourceFile(n)
	default:
		return Unsupported(n)
	}
}

// Children returns the direct child nodes of n in source order.
func Children(n Node) []Node {
	var out []Node
	switch n := n.(type) {
	case *QualifiedName:
		out = appendAll(out, n.Parts)
	case *ParenthesizedExpression:
		if n.Expr != nil {
			out = append(out, n.Expr)
		}
	case *MemberExpression:
		if n.Target != nil {
			out = append(out, n.Target)
		}
		if n.Name != nil {
			out = append(out, n.Name)
		}
	case *ElementAccessExpression:
		if n.Target != nil {
			out = append(out, n.Target)
		}
		if n.Index != nil {
			out = append(out, n.Index)
		}
	case *CallExpression:
		if n.Callee != nil {
			out = append(out, n.Callee)
		}
		out = appendAll(out, n.TypeArgs)
		out = appendAll(out, n.Args)
	case *NewExpression:
		if n.Callee != nil {
			out = append(out, n.Callee)
		}
		out = appendAll(out, n.TypeArgs)
		out = appendAll(out, n.Args)
	case *UnaryExpression:
		if n.Operand != nil {
			out = append(out, n.Operand)
		}
	case *BinaryExpression:
		if n.Left != nil {
			out = append(out, n.Left)
		}
		if n.Right != nil {
			out = append(out, n.Right)
		}
	case *AssignmentExpression:
		if n.Left != nil {
			out = append(out, n.Left)
		}
		if n.Right != nil {
			out = append(out, n.Right)
		}
	case *ConditionalExpression:
		if n.Condition != nil {
			out = append(out, n.Condition)
		}
		if n.WhenTrue != nil {
			out = append(out, n.WhenTrue)
		}
		if n.WhenFalse != nil {
			out = append(out, n.WhenFalse)
		}
	case *ArrayLiteral:
		out = appendAll(out, n.Elements)
	case *ObjectLiteral:
		out = appendAll(out, n.Properties)
	case *PropertyAssignment:
		if n.Name != nil {
			out = append(out, n.Name)
		}
		if n.Value != nil {
			out = append(out, n.Value)
		}
	case *ArrowFunction:
		out = appendAll(out, n.Params)
		if n.ReturnType != nil {
			out = append(out, n.ReturnType)
		}
		if n.Body != nil {
			out = append(out, n.Body)
		}
	case *AsExpression:
		if n.Expr != nil {
			out = append(out, n.Expr)
		}
		if n.Type != nil {
			out = append(out, n.Type)
		}
	case *TypeReference:
		if n.Name != nil {
			out = append(out, n.Name)
		}
		out = appendAll(out, n.Args)
	case *ArrayType:
		if n.Element != nil {
			out = append(out, n.Element)
		}
	case *UnionType:
		out = appendAll(out, n.Types)
	case *FunctionType:
		out = appendAll(out, n.Params)
		if n.ReturnType != nil {
			out = append(out, n.ReturnType)
		}
	case *TypeParameter:
		if n.Name != nil {
			out = append(out, n.Name)
		}
		if n.Constraint != nil {
			out = append(out, n.Constraint)
		}
	case *Block:
		out = appendAll(out, n.Statements)
	case *VariableDeclarationList:
		out = appendAll(out, n.Declarations)
	case *VariableStatement:
		if n.List != nil {
			out = append(out, n.List)
		}
	case *VariableDeclaration:
		if n.Name != nil {
			out = append(out, n.Name)
		}
		if n.Type != nil {
			out = append(out, n.Type)
		}
		if n.Init != nil {
			out = append(out, n.Init)
		}
	case *ExpressionStatement:
		if n.Expr != nil {
			out = append(out, n.Expr)
		}
	case *ReturnStatement:
		if n.Expr != nil {
			out = append(out, n.Expr)
		}
	case *IfStatement:
		if n.Condition != nil {
			out = append(out, n.Condition)
		}
		if n.Then != nil {
			out = append(out, n.Then)
		}
		if n.Else != nil {
			out = append(out, n.Else)
		}
	case *WhileStatement:
		if n.Condition != nil {
			out = append(out, n.Condition)
		}
		if n.Body != nil {
			out = append(out, n.Body)
		}
	case *DoWhileStatement:
		if n.Body != nil {
			out = append(out, n.Body)
		}
		if n.Condition != nil {
			out = append(out, n.Condition)
		}
	case *ForStatement:
		if n.Initializer != nil {
			out = append(out, n.Initializer)
		}
		if n.Condition != nil {
			out = append(out, n.Condition)
		}
		out = appendAll(out, n.Incrementors)
		if n.Body != nil {
			out = append(out, n.Body)
		}
	case *ForOfStatement:
		if n.Name != nil {
			out = append(out, n.Name)
		}
		if n.Expr != nil {
			out = append(out, n.Expr)
		}
		if n.Body != nil {
			out = append(out, n.Body)
		}
	case *ThrowStatement:
		if n.Expr != nil {
			out = append(out, n.Expr)
		}
	case *TryStatement:
		if n.Block != nil {
			out = append(out, n.Block)
		}
		if n.CatchName != nil {
			out = append(out, n.CatchName)
		}
		if n.Catch != nil {
			out = append(out, n.Catch)
		}
		if n.Finally != nil {
			out = append(out, n.Finally)
		}
	case *SwitchStatement:
		if n.Expr != nil {
			out = append(out, n.Expr)
		}
		out = appendAll(out, n.Clauses)
	case *CaseClause:
		if n.Test != nil {
			out = append(out, n.Test)
		}
		out = appendAll(out, n.Statements)
	case *ImportDeclaration:
		out = appendAll(out, n.Names)
	case *ClassDeclaration:
		if n.Name != nil {
			out = append(out, n.Name)
		}
		out = appendAll(out, n.TypeParams)
		if n.Extends != nil {
			out = append(out, n.Extends)
		}
		out = appendAll(out, n.Implements)
		out = appendAll(out, n.Members)
	case *PropertyDeclaration:
		if n.Name != nil {
			out = append(out, n.Name)
		}
		if n.Type != nil {
			out = append(out, n.Type)
		}
		if n.Init != nil {
			out = append(out, n.Init)
		}
	case *MethodDeclaration:
		if n.Name != nil {
			out = append(out, n.Name)
		}
		out = appendAll(out, n.TypeParams)
		out = appendAll(out, n.Params)
		if n.ReturnType != nil {
			out = append(out, n.ReturnType)
		}
		if n.Body != nil {
			out = append(out, n.Body)
		}
	case *ConstructorDeclaration:
		out = appendAll(out, n.Params)
		if n.Body != nil {
			out = append(out, n.Body)
		}
	case *GetAccessor:
		if n.Name != nil {
			out = append(out, n.Name)
		}
		if n.ReturnType != nil {
			out = append(out, n.ReturnType)
		}
		if n.Body != nil {
			out = append(out, n.Body)
		}
	case *SetAccessor:
		if n.Name != nil {
			out = append(out, n.Name)
		}
		if n.Param != nil {
			out = append(out, n.Param)
		}
		if n.Body != nil {
			out = append(out, n.Body)
		}
	case *Parameter:
		if n.Name != nil {
			out = append(out, n.Name)
		}
		if n.Type != nil {
			out = append(out, n.Type)
		}
		if n.Default != nil {
			out = append(out, n.Default)
		}
	case *InterfaceDeclaration:
		if n.Name != nil {
			out = append(out, n.Name)
		}
		out = appendAll(out, n.TypeParams)
		out = appendAll(out, n.Extends)
		out = appendAll(out, n.Members)
	case *PropertySignature:
		if n.Name != nil {
			out = append(out, n.Name)
		}
		if n.Type != nil {
			out = append(out, n.Type)
		}
	case *MethodSignature:
		if n.Name != nil {
			out = append(out, n.Name)
		}
		out = appendAll(out, n.TypeParams)
		out = appendAll(out, n.Params)
		if n.ReturnType != nil {
			out = append(out, n.ReturnType)
		}
	case *EnumDeclaration:
		if n.Name != nil {
			out = append(out, n.Name)
		}
		out = appendAll(out, n.Members)
	case *EnumMember:
		if n.Name != nil {
			out = append(out, n.Name)
		}
		if n.Value != nil {
			out = append(out, n.Value)
		}
	case *SourceFile:
		out = appendAll(out, n.Statements)
	}
	return out
}

func appendAll[T Node](out []Node, xs []T) []Node {
	for _, x := range xs {
		out = append(out, x)
	}
	return out
}

// Walk visits n and its descendants depth-first. fn returning false prunes
// the subtree below that node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}
