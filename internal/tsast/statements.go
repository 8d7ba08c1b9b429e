package tsast

import "cs2ts/internal/emit"

// Block is a braced statement list.
type Block struct {
	trivia
	Statements []Statement
}

func (n *Block) Kind() Kind { return KindBlock }

// Accept calls v.VisitBlock.
func (n *Block) Accept(v Visitor) error { return v.VisitBlock(n) }
func (n *Block) CodeDisplay() string    { return display(n) }
func (*Block) statementNode()           {}

func (n *Block) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the block.
func (n *Block) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		emit.WriteBlock(e, n.Statements)
	})
}

// VariableDeclarationList is the part of a variable statement without the semicolon; for-loop initialisers use it directly.
type VariableDeclarationList struct {
	trivia
	Keyword      VariableKeyword
	Declarations []*VariableDeclaration
}

func (n *VariableDeclarationList) Kind() Kind { return KindVariableDeclarationList }

// Accept calls v.VisitVariableDeclarationList.
func (n *VariableDeclarationList) Accept(v Visitor) error { return v.VisitVariableDeclarationList(n) }
func (n *VariableDeclarationList) CodeDisplay() string    { return display(n) }

func (n *VariableDeclarationList) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the variable declaration list.
func (n *VariableDeclarationList) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		e.Write(n.Keyword.String())
		e.Space()
		emit.WriteListKind(e, n.Declarations, emit.CommaList)
	})
}

// VariableStatement is a declaration list terminated by a semicolon.
type VariableStatement struct {
	trivia
	List *VariableDeclarationList
}

func (n *VariableStatement) Kind() Kind { return KindVariableStatement }

// Accept calls v.VisitVariableStatement.
func (n *VariableStatement) Accept(v Visitor) error { return v.VisitVariableStatement(n) }
func (n *VariableStatement) CodeDisplay() string    { return display(n) }
func (*VariableStatement) statementNode()           {}

func (n *VariableStatement) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the variable statement.
func (n *VariableStatement) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		n.List.Emit(e)
		e.Write(";")
	})
}

// VariableDeclaration is one name with an optional type and initializer.
type VariableDeclaration struct {
	trivia
	Name *Identifier
	Type Type
	Init Expression
}

func (n *VariableDeclaration) Kind() Kind { return KindVariableDeclaration }

// Accept calls v.VisitVariableDeclaration.
func (n *VariableDeclaration) Accept(v Visitor) error { return v.VisitVariableDeclaration(n) }
func (n *VariableDeclaration) CodeDisplay() string    { return display(n) }

func (n *VariableDeclaration) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the variable declaration.
func (n *VariableDeclaration) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		n.Name.Emit(e)
		if n.Type != nil {
			e.Write(": ")
			n.Type.Emit(e)
		}
		if n.Init != nil {
			e.Write(" = ")
			n.Init.Emit(e)
		}
	})
}

// ExpressionStatement is an expression followed by a semicolon.
type ExpressionStatement struct {
	trivia
	Expr Expression
}

func (n *ExpressionStatement) Kind() Kind { return KindExpressionStatement }

// Accept calls v.VisitExpressionStatement.
func (n *ExpressionStatement) Accept(v Visitor) error { return v.VisitExpressionStatement(n) }
func (n *ExpressionStatement) CodeDisplay() string    { return display(n) }
func (*ExpressionStatement) statementNode()           {}

func (n *ExpressionStatement) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the expression statement.
func (n *ExpressionStatement) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		n.Expr.Emit(e)
		e.Write(";")
	})
}

// ReturnStatement is return with an optional value.
type ReturnStatement struct {
	trivia
	Expr Expression
}

func (n *ReturnStatement) Kind() Kind { return KindReturnStatement }

// Accept calls v.VisitReturnStatement.
func (n *ReturnStatement) Accept(v Visitor) error { return v.VisitReturnStatement(n) }
func (n *ReturnStatement) CodeDisplay() string    { return display(n) }
func (*ReturnStatement) statementNode()           {}

func (n *ReturnStatement) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the return statement.
func (n *ReturnStatement) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		e.Write("return")
		if n.Expr != nil {
			e.Space()
			n.Expr.Emit(e)
		}
		e.Write(";")
	})
}

// IfStatement is if/else. Else may be another *IfStatement.
type IfStatement struct {
	trivia
	Condition Expression
	Then      Statement
	Else      Statement
}

func (n *IfStatement) Kind() Kind { return KindIfStatement }

// Accept calls v.VisitIfStatement.
func (n *IfStatement) Accept(v Visitor) error { return v.VisitIfStatement(n) }
func (n *IfStatement) CodeDisplay() string    { return display(n) }
func (*IfStatement) statementNode()           {}

func (n *IfStatement) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the if statement.
func (n *IfStatement) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		e.Write("if (")
		n.Condition.Emit(e)
		e.Write(")")
		emitBody(e, n.Then)
		if n.Else == nil {
			return
		}
		if _, ok := n.Then.(*Block); ok {
			e.Write(" else")
		} else {
			e.EnsureNewline()
			e.Write("else")
		}
		if elseIf, ok := n.Else.(*IfStatement); ok {
			e.Space()
			elseIf.Emit(e)
			return
		}
		emitBody(e, n.Else)
	})
}

// WhileStatement is a while loop.
type WhileStatement struct {
	trivia
	Condition Expression
	Body      Statement
}

func (n *WhileStatement) Kind() Kind { return KindWhileStatement }

// Accept calls v.VisitWhileStatement.
func (n *WhileStatement) Accept(v Visitor) error { return v.VisitWhileStatement(n) }
func (n *WhileStatement) CodeDisplay() string    { return display(n) }
func (*WhileStatement) statementNode()           {}

func (n *WhileStatement) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the while statement.
func (n *WhileStatement) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		e.Write("while (")
		n.Condition.Emit(e)
		e.Write(")")
		emitBody(e, n.Body)
	})
}

// DoWhileStatement is a do/while loop.
type DoWhileStatement struct {
	trivia
	Body      Statement
	Condition Expression
}

func (n *DoWhileStatement) Kind() Kind { return KindDoWhileStatement }

// Accept calls v.VisitDoWhileStatement.
func (n *DoWhileStatement) Accept(v Visitor) error { return v.VisitDoWhileStatement(n) }
func (n *DoWhileStatement) CodeDisplay() string    { return display(n) }
func (*DoWhileStatement) statementNode()           {}

func (n *DoWhileStatement) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the do while statement.
func (n *DoWhileStatement) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		e.Write("do")
		emitBody(e, n.Body)
		if _, ok := n.Body.(*Block); ok {
			e.Write(" while (")
		} else {
			e.EnsureNewline()
			e.Write("while (")
		}
		n.Condition.Emit(e)
		e.Write(");")
	})
}

// ForStatement's Initializer is a *VariableDeclarationList or an Expression.
type ForStatement struct {
	trivia
	Initializer  Node
	Condition    Expression
	Incrementors []Expression
	Body         Statement
}

func (n *ForStatement) Kind() Kind { return KindForStatement }

// Accept calls v.VisitForStatement.
func (n *ForStatement) Accept(v Visitor) error { return v.VisitForStatement(n) }
func (n *ForStatement) CodeDisplay() string    { return display(n) }
func (*ForStatement) statementNode()           {}

func (n *ForStatement) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the for statement.
func (n *ForStatement) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		e.Write("for (")
		if n.Initializer != nil {
			n.Initializer.Emit(e)
		}
		e.Write(";")
		if n.Condition != nil {
			e.Space()
			n.Condition.Emit(e)
		}
		e.Write(";")
		if len(n.Incrementors) > 0 {
			e.Space()
			emit.WriteListKind(e, n.Incrementors, emit.CommaList)
		}
		e.Write(")")
		emitBody(e, n.Body)
	})
}

// ForOfStatement is for (const x of xs).
type ForOfStatement struct {
	trivia
	Keyword VariableKeyword
	Name    *Identifier
	Expr    Expression
	Body    Statement
}

func (n *ForOfStatement) Kind() Kind { return KindForOfStatement }

// Accept calls v.VisitForOfStatement.
func (n *ForOfStatement) Accept(v Visitor) error { return v.VisitForOfStatement(n) }
func (n *ForOfStatement) CodeDisplay() string    { return display(n) }
func (*ForOfStatement) statementNode()           {}

func (n *ForOfStatement) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the for of statement.
func (n *ForOfStatement) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		e.Write("for (")
		e.Write(n.Keyword.String())
		n.Name.Emit(e)
		e.Write(" of ")
		n.Expr.Emit(e)
		e.Write(")")
		emitBody(e, n.Body)
	})
}

// BreakStatement is break.
type BreakStatement struct {
	trivia
}

func (n *BreakStatement) Kind() Kind { return KindBreakStatement }

// Accept calls v.VisitBreakStatement.
func (n *BreakStatement) Accept(v Visitor) error { return v.VisitBreakStatement(n) }
func (n *BreakStatement) CodeDisplay() string    { return display(n) }
func (*BreakStatement) statementNode()           {}

func (n *BreakStatement) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the break statement.
func (n *BreakStatement) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		e.Write("break;")
	})
}

// ContinueStatement is continue.
type ContinueStatement struct {
	trivia
}

func (n *ContinueStatement) Kind() Kind { return KindContinueStatement }

// Accept calls v.VisitContinueStatement.
func (n *ContinueStatement) Accept(v Visitor) error { return v.VisitContinueStatement(n) }
func (n *ContinueStatement) CodeDisplay() string    { return display(n) }
func (*ContinueStatement) statementNode()           {}

func (n *ContinueStatement) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the continue statement.
func (n *ContinueStatement) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		e.Write("continue;")
	})
}

// ThrowStatement is throw expr.
type ThrowStatement struct {
	trivia
	Expr Expression
}

func (n *ThrowStatement) Kind() Kind { return KindThrowStatement }

// Accept calls v.VisitThrowStatement.
func (n *ThrowStatement) Accept(v Visitor) error { return v.VisitThrowStatement(n) }
func (n *ThrowStatement) CodeDisplay() string    { return display(n) }
func (*ThrowStatement) statementNode()           {}

func (n *ThrowStatement) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the throw statement.
func (n *ThrowStatement) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		e.Write("throw ")
		n.Expr.Emit(e)
		e.Write(";")
	})
}

// TryStatement needs a Catch or a Finally block; CatchName is optional.
type TryStatement struct {
	trivia
	Block     *Block
	CatchName *Identifier
	Catch     *Block
	Finally   *Block
}

func (n *TryStatement) Kind() Kind { return KindTryStatement }

// Accept calls v.VisitTryStatement.
func (n *TryStatement) Accept(v Visitor) error { return v.VisitTryStatement(n) }
func (n *TryStatement) CodeDisplay() string    { return display(n) }
func (*TryStatement) statementNode()           {}

func (n *TryStatement) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the try statement.
func (n *TryStatement) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		e.Write("try ")
		n.Block.Emit(e)
		if n.Catch != nil {
			e.Write(" catch ")
			if n.CatchName != nil {
				e.Write("(")
				n.CatchName.Emit(e)
				e.Write(") ")
			}
			n.Catch.Emit(e)
		}
		if n.Finally != nil {
			e.Write(" finally ")
			n.Finally.Emit(e)
		}
	})
}

// SwitchStatement is a switch over case clauses.
type SwitchStatement struct {
	trivia
	Expr    Expression
	Clauses []*CaseClause
}

func (n *SwitchStatement) Kind() Kind { return KindSwitchStatement }

// Accept calls v.VisitSwitchStatement.
func (n *SwitchStatement) Accept(v Visitor) error { return v.VisitSwitchStatement(n) }
func (n *SwitchStatement) CodeDisplay() string    { return display(n) }
func (*SwitchStatement) statementNode()           {}

func (n *SwitchStatement) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the switch statement.
func (n *SwitchStatement) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		e.Write("switch (")
		n.Expr.Emit(e)
		e.Write(") ")
		emit.WriteListKind(e, n.Clauses, emit.Block)
	})
}

// CaseClause with a nil Test is the default clause.
type CaseClause struct {
	trivia
	Test       Expression
	Statements []Statement
}

func (n *CaseClause) Kind() Kind { return KindCaseClause }

// Accept calls v.VisitCaseClause.
func (n *CaseClause) Accept(v Visitor) error { return v.VisitCaseClause(n) }
func (n *CaseClause) CodeDisplay() string    { return display(n) }

func (n *CaseClause) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the case clause.
func (n *CaseClause) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		if n.Test == nil {
			e.Write("default:")
		} else {
			e.Write("case ")
			n.Test.Emit(e)
			e.Write(":")
		}
		if len(n.Statements) == 1 {
			if b, ok := n.Statements[0].(*Block); ok {
				e.Space()
				b.Emit(e)
				return
			}
		}
		e.Indented(func() {
			for _, s := range n.Statements {
				e.EnsureNewline()
				s.Emit(e)
			}
		})
	})
}
