package frontend

import (
	"cs2ts/internal/source"
)

// SyntaxKind is the closed set of C# constructs the compiler distinguishes.
// Anything else arrives as SynUnsupported with the grammar's name in Token.
type SyntaxKind uint8

// Child layout per kind; a nil child means the optional part is absent.
const (
	SynInvalid SyntaxKind = iota

	SynCompilationUnit // members...
	SynUsing           // Name: namespace
	SynNamespace       // Name: dotted name; members...
	SynClass           // Name; members...
	SynStruct          // Name; members...
	SynInterface       // Name; members...
	SynEnum            // Name; enum members...
	SynField           // Name; [initializer]
	SynProperty        // Name; accessors..., [initializer]
	SynAccessorGet     // [body]
	SynAccessorSet     // [body]
	SynMethod          // Name; [body]
	SynConstructor     // [initializer, body]
	SynCtorInitializer // Token: base|this; args...
	SynEnumMember      // Name; [value]
	SynOperator        // Token: operator

	SynBlock         // statements...
	SynLocalDecl     // Token: var|const; declarators...
	SynDeclarator    // Name; [initializer]
	SynExprStatement // [expr]
	SynReturn        // [expr]
	SynIf            // [cond, then, else]
	SynWhile         // [cond, body]
	SynDo            // [body, cond]
	SynFor           // [init, cond, incrementors, body]; init is a LocalDecl or ExprList
	SynForEach       // Name: variable; [collection, body]
	SynBreak
	SynContinue
	SynThrow         // [expr]
	SynTry           // [block, catch clauses..., finally]
	SynCatch         // Name: variable or empty; [block]
	SynFinally       // [block]
	SynSwitch        // [expr, sections...]
	SynSwitchSection // labels..., statements...
	SynCaseLabel     // [value]
	SynDefaultLabel
	SynExprList // exprs...

	SynIdentifier     // Name
	SynNumericLiteral // Token: literal text
	SynStringLiteral  // Value: decoded text
	SynCharLiteral    // Value: decoded text
	SynBoolLiteral    // Token: true|false
	SynNullLiteral
	SynMemberAccess   // Name: member; [target]
	SynInvocation     // [callee, args...]
	SynObjectCreation // Name: type as written; args...
	SynArrayCreation  // elements..., or Token "sized" and [size]
	SynUnary          // Token: operator; [operand]
	SynPostfixUnary   // Token: operator; [operand]
	SynBinary         // Token: operator; [left, right]
	SynAssignment     // Token: operator; [left, right]
	SynConditional    // [cond, whenTrue, whenFalse]
	SynParenthesized  // [expr]
	SynThis
	SynBase
	SynElementAccess // [target, index]
	SynCast          // [expr]; TypeOf gives the target type
	SynLambda        // [params, body]; params is an ExprList of Parameter nodes
	SynParameter     // Name
	SynTypeOf        // Name: type as written

	SynUnsupported // Token: grammar node name
	synKindCount
)

var syntaxKindNames = [...]string{
	SynInvalid:         "Invalid",
	SynCompilationUnit: "CompilationUnit",
	SynUsing:           "Using",
	SynNamespace:       "Namespace",
	SynClass:           "Class",
	SynStruct:          "Struct",
	SynInterface:       "Interface",
	SynEnum:            "Enum",
	SynField:           "Field",
	SynProperty:        "Property",
	SynAccessorGet:     "AccessorGet",
	SynAccessorSet:     "AccessorSet",
	SynMethod:          "Method",
	SynConstructor:     "Constructor",
	SynCtorInitializer: "CtorInitializer",
	SynEnumMember:      "EnumMember",
	SynOperator:        "Operator",
	SynBlock:           "Block",
	SynLocalDecl:       "LocalDecl",
	SynDeclarator:      "Declarator",
	SynExprStatement:   "ExprStatement",
	SynReturn:          "Return",
	SynIf:              "If",
	SynWhile:           "While",
	SynDo:              "Do",
	SynFor:             "For",
	SynForEach:         "ForEach",
	SynBreak:           "Break",
	SynContinue:        "Continue",
	SynThrow:           "Throw",
	SynTry:             "Try",
	SynCatch:           "Catch",
	SynFinally:         "Finally",
	SynSwitch:          "Switch",
	SynSwitchSection:   "SwitchSection",
	SynCaseLabel:       "CaseLabel",
	SynDefaultLabel:    "DefaultLabel",
	SynExprList:        "ExprList",
	SynIdentifier:      "Identifier",
	SynNumericLiteral:  "NumericLiteral",
	SynStringLiteral:   "StringLiteral",
	SynCharLiteral:     "CharLiteral",
	SynBoolLiteral:     "BoolLiteral",
	SynNullLiteral:     "NullLiteral",
	SynMemberAccess:    "MemberAccess",
	SynInvocation:      "Invocation",
	SynObjectCreation:  "ObjectCreation",
	SynArrayCreation:   "ArrayCreation",
	SynUnary:           "Unary",
	SynPostfixUnary:    "PostfixUnary",
	SynBinary:          "Binary",
	SynAssignment:      "Assignment",
	SynConditional:     "Conditional",
	SynParenthesized:   "Parenthesized",
	SynThis:            "This",
	SynBase:            "Base",
	SynElementAccess:   "ElementAccess",
	SynCast:            "Cast",
	SynLambda:          "Lambda",
	SynParameter:       "Parameter",
	SynTypeOf:          "TypeOf",
	SynUnsupported:     "Unsupported",
}

// String returns the kind name.
func (k SyntaxKind) String() string {
	if k < synKindCount {
		return syntaxKindNames[k]
	}
	return "Invalid"
}

// IsTypeDeclaration reports whether k declares a class, struct, interface or enum.
func (k SyntaxKind) IsTypeDeclaration() bool {
	switch k {
	case SynClass, SynStruct, SynInterface, SynEnum:
		return true
	}
	return false
}

// SyntaxNode is a front-end syntax tree node. Trees are built once per
// document and then only read.
type SyntaxNode struct {
	Kind     SyntaxKind
	Span     source.Span
	Name     string
	Token    string
	Value    string
	Children []*SyntaxNode
	// Doc holds /// comment lines with the markers and XML tags removed.
	Doc []string
}

// Child returns the i-th child or nil.
func (n *SyntaxNode) Child(i int) *SyntaxNode {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Walk visits n and its descendants depth-first; fn returning false prunes.
func (n *SyntaxNode) Walk(fn func(*SyntaxNode) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// TypeDeclarations lists every type declaration in n, nested ones included,
// in source order.
func (n *SyntaxNode) TypeDeclarations() []*SyntaxNode {
	var out []*SyntaxNode
	n.Walk(func(c *SyntaxNode) bool {
		if c.Kind.IsTypeDeclaration() {
			out = append(out, c)
		}
		switch c.Kind {
		case SynCompilationUnit, SynNamespace, SynClass, SynStruct, SynInterface:
			return true
		}
		return false
	})
	return out
}
