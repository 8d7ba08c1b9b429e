package tsast

// Kind tags every node variant.
type Kind uint16

const (
	KindInvalid Kind = iota
	KindIdentifier
	KindQualifiedName
	KindStringLiteral
	KindNumericLiteral
	KindBooleanLiteral
	KindNullLiteral
	KindUndefinedLiteral
	KindThisExpression
	KindSuperExpression
	KindParenthesizedExpression
	KindMemberExpression
	KindElementAccessExpression
	KindCallExpression
	KindNewExpression
	KindUnaryExpression
	KindBinaryExpression
	KindAssignmentExpression
	KindConditionalExpression
	KindArrayLiteral
	KindObjectLiteral
	KindPropertyAssignment
	KindArrowFunction
	KindAsExpression
	KindRawExpression
	KindPredefinedType
	KindTypeReference
	KindArrayType
	KindUnionType
	KindFunctionType
	KindTypeParameter
	KindBlock
	KindVariableDeclarationList
	KindVariableStatement
	KindVariableDeclaration
	KindExpressionStatement
	KindReturnStatement
	KindIfStatement
	KindWhileStatement
	KindDoWhileStatement
	KindForStatement
	KindForOfStatement
	KindBreakStatement
	KindContinueStatement
	KindThrowStatement
	KindTryStatement
	KindSwitchStatement
	KindCaseClause
	KindImportDeclaration
	KindClassDeclaration
	KindPropertyDeclaration
	KindMethodDeclaration
	KindConstructorDeclaration
	KindGetAccessor
	KindSetAccessor
	KindParameter
	KindInterfaceDeclaration
	KindPropertySignature
	KindMethodSignature
	KindEnumDeclaration
	KindEnumMember
	KindSourceFile

	kindCount
)

var kindNames = [...]string{
	KindInvalid:                 "Invalid",
	KindIdentifier:              "Identifier",
	KindQualifiedName:           "QualifiedName",
	KindStringLiteral:           "StringLiteral",
	KindNumericLiteral:          "NumericLiteral",
	KindBooleanLiteral:          "BooleanLiteral",
	KindNullLiteral:             "NullLiteral",
	KindUndefinedLiteral:        "UndefinedLiteral",
	KindThisExpression:          "ThisExpression",
	KindSuperExpression:         "SuperExpression",
	KindParenthesizedExpression: "ParenthesizedExpression",
	KindMemberExpression:        "MemberExpression",
	KindElementAccessExpression: "ElementAccessExpression",
	KindCallExpression:          "CallExpression",
	KindNewExpression:           "NewExpression",
	KindUnaryExpression:         "UnaryExpression",
	KindBinaryExpression:        "BinaryExpression",
	KindAssignmentExpression:    "AssignmentExpression",
	KindConditionalExpression:   "ConditionalExpression",
	KindArrayLiteral:            "ArrayLiteral",
	KindObjectLiteral:           "ObjectLiteral",
	KindPropertyAssignment:      "PropertyAssignment",
	KindArrowFunction:           "ArrowFunction",
	KindAsExpression:            "AsExpression",
	KindRawExpression:           "RawExpression",
	KindPredefinedType:          "PredefinedType",
	KindTypeReference:           "TypeReference",
	KindArrayType:               "ArrayType",
	KindUnionType:               "UnionType",
	KindFunctionType:            "FunctionType",
	KindTypeParameter:           "TypeParameter",
	KindBlock:                   "Block",
	KindVariableDeclarationList: "VariableDeclarationList",
	KindVariableStatement:       "VariableStatement",
	KindVariableDeclaration:     "VariableDeclaration",
	KindExpressionStatement:     "ExpressionStatement",
	KindReturnStatement:         "ReturnStatement",
	KindIfStatement:             "IfStatement",
	KindWhileStatement:          "WhileStatement",
	KindDoWhileStatement:        "DoWhileStatement",
	KindForStatement:            "ForStatement",
	KindForOfStatement:          "ForOfStatement",
	KindBreakStatement:          "BreakStatement",
	KindContinueStatement:       "ContinueStatement",
	KindThrowStatement:          "ThrowStatement",
	KindTryStatement:            "TryStatement",
	KindSwitchStatement:         "SwitchStatement",
	KindCaseClause:              "CaseClause",
	KindImportDeclaration:       "ImportDeclaration",
	KindClassDeclaration:        "ClassDeclaration",
	KindPropertyDeclaration:     "PropertyDeclaration",
	KindMethodDeclaration:       "MethodDeclaration",
	KindConstructorDeclaration:  "ConstructorDeclaration",
	KindGetAccessor:             "GetAccessor",
	KindSetAccessor:             "SetAccessor",
	KindParameter:               "Parameter",
	KindInterfaceDeclaration:    "InterfaceDeclaration",
	KindPropertySignature:       "PropertySignature",
	KindMethodSignature:         "MethodSignature",
	KindEnumDeclaration:         "EnumDeclaration",
	KindEnumMember:              "EnumMember",
	KindSourceFile:              "SourceFile",
}

// String returns the kind name.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}
