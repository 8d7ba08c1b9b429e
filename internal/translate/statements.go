package translate

import (
	"cs2ts/internal/frontend"
	"cs2ts/internal/tsast"
)

// block translates a C# block, or wraps a single statement.
func (t *translator) block(n *frontend.SyntaxNode) *tsast.Block {
	b := &tsast.Block{}
	if n == nil {
		return b
	}
	if n.Kind != frontend.SynBlock {
		if s := t.stmt(n); s != nil {
			b.Statements = append(b.Statements, s)
		}
		return b
	}
	for _, c := range n.Children {
		if s := t.stmt(c); s != nil {
			b.Statements = append(b.Statements, s)
		}
	}
	return b
}

// body is a loop or branch body; an empty statement becomes {}.
func (t *translator) body(n *frontend.SyntaxNode) tsast.Statement {
	if s := t.stmt(n); s != nil {
		return s
	}
	return &tsast.Block{}
}

func (t *translator) stmt(n *frontend.SyntaxNode) tsast.Statement {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case frontend.SynBlock:
		return t.block(n)
	case frontend.SynLocalDecl:
		return &tsast.VariableStatement{List: t.varList(n)}
	case frontend.SynExprStatement:
		if n.Child(0) == nil {
			return nil
		}
		return tsast.ExprStmt(t.expr(n.Child(0)))
	case frontend.SynReturn:
		return &tsast.ReturnStatement{Expr: t.exprOpt(n.Child(0))}
	case frontend.SynIf:
		s := &tsast.IfStatement{Condition: t.expr(n.Child(0)), Then: t.body(n.Child(1))}
		if els := n.Child(2); els != nil {
			s.Else = t.body(els)
		}
		return s
	case frontend.SynWhile:
		return &tsast.WhileStatement{Condition: t.expr(n.Child(0)), Body: t.body(n.Child(1))}
	case frontend.SynDo:
		return &tsast.DoWhileStatement{Body: t.body(n.Child(0)), Condition: t.expr(n.Child(1))}
	case frontend.SynFor:
		return t.forStmt(n)
	case frontend.SynForEach:
		return &tsast.ForOfStatement{
			Keyword: tsast.Const,
			Name:    tsast.Ident(localName(t.model.DeclaredSymbol(n), n.Name)),
			Expr:    t.expr(n.Child(0)),
			Body:    t.body(n.Child(1)),
		}
	case frontend.SynBreak:
		return &tsast.BreakStatement{}
	case frontend.SynContinue:
		return &tsast.ContinueStatement{}
	case frontend.SynThrow:
		return t.throw(n)
	case frontend.SynTry:
		return t.try(n)
	case frontend.SynSwitch:
		return t.switchStmt(n)
	case frontend.SynUnsupported:
		t.unsupported(n, n.Token)
		return nil
	}
	t.unsupported(n, "a "+n.Kind.String()+" statement")
	return nil
}

func (t *translator) varList(n *frontend.SyntaxNode) *tsast.VariableDeclarationList {
	list := &tsast.VariableDeclarationList{Keyword: tsast.Let}
	if n.Token == "const" {
		list.Keyword = tsast.Const
	}
	for _, d := range n.Children {
		sym := t.model.DeclaredSymbol(d)
		decl := &tsast.VariableDeclaration{
			Name: tsast.Ident(localName(sym, d.Name)),
			Init: t.exprOpt(d.Child(0)),
		}
		if decl.Init == nil && sym != nil {
			decl.Type = t.typeOf(sym.Type, d)
		}
		list.Declarations = append(list.Declarations, decl)
	}
	return list
}

func (t *translator) forStmt(n *frontend.SyntaxNode) tsast.Statement {
	s := &tsast.ForStatement{
		Condition: t.exprOpt(n.Child(1)),
		Body:      t.body(n.Child(3)),
	}
	switch init := n.Child(0); {
	case init == nil:
	case init.Kind == frontend.SynLocalDecl:
		s.Initializer = t.varList(init)
	default:
		s.Initializer = t.sequence(init)
	}
	if incr := n.Child(2); incr != nil {
		if incr.Kind == frontend.SynExprList {
			s.Incrementors = t.exprs(incr.Children)
		} else {
			s.Incrementors = []tsast.Expression{t.expr(incr)}
		}
	}
	return s
}

// sequence joins an expression list with the comma operator.
func (t *translator) sequence(n *frontend.SyntaxNode) tsast.Expression {
	if n.Kind != frontend.SynExprList {
		return t.expr(n)
	}
	xs := t.exprs(n.Children)
	if len(xs) == 0 {
		return nil
	}
	x := xs[0]
	for _, next := range xs[1:] {
		x = tsast.Binary(x, ",", next)
	}
	return x
}

func (t *translator) throw(n *frontend.SyntaxNode) tsast.Statement {
	if x := n.Child(0); x != nil {
		return &tsast.ThrowStatement{Expr: t.expr(x)}
	}
	if k := len(t.catchVars); k > 0 && t.catchVars[k-1] != "" {
		return &tsast.ThrowStatement{Expr: tsast.Ident(t.catchVars[k-1])}
	}
	t.unsupported(n, "a rethrow outside a catch clause")
	return nil
}

// rethrowVar names the variable synthesised for a catch clause without
// one whose block rethrows.
const rethrowVar = "$e"

func (t *translator) try(n *frontend.SyntaxNode) tsast.Statement {
	s := &tsast.TryStatement{Block: t.block(n.Child(0))}
	var catches []*frontend.SyntaxNode
	for _, c := range n.Children[1:] {
		switch {
		case c == nil:
		case c.Kind == frontend.SynCatch:
			catches = append(catches, c)
		case c.Kind == frontend.SynFinally:
			s.Finally = t.block(c.Child(0))
		}
	}
	if len(catches) > 1 {
		t.unsupported(catches[1], "more than one catch clause")
	}
	if len(catches) > 0 {
		c := catches[0]
		name := ""
		if sym := t.model.DeclaredSymbol(c); sym != nil || c.Name != "" {
			name = localName(sym, c.Name)
		} else if rethrows(c.Child(0)) {
			name = rethrowVar
		}
		if name != "" {
			s.CatchName = tsast.Ident(name)
		}
		t.catchVars = append(t.catchVars, name)
		s.Catch = t.block(c.Child(0))
		t.catchVars = t.catchVars[:len(t.catchVars)-1]
	}
	if s.Catch == nil && s.Finally == nil {
		s.Finally = &tsast.Block{}
	}
	return s
}

func rethrows(block *frontend.SyntaxNode) bool {
	found := false
	block.Walk(func(n *frontend.SyntaxNode) bool {
		if n.Kind == frontend.SynThrow && n.Child(0) == nil {
			found = true
		}
		// a nested try has its own catch variable
		return !found && n.Kind != frontend.SynTry
	})
	return found
}

func (t *translator) switchStmt(n *frontend.SyntaxNode) tsast.Statement {
	s := &tsast.SwitchStatement{Expr: t.expr(n.Child(0))}
	for _, sec := range n.Children[1:] {
		if sec == nil {
			continue
		}
		var labels []*tsast.CaseClause
		var stmts []tsast.Statement
		for _, item := range sec.Children {
			switch item.Kind {
			case frontend.SynCaseLabel:
				labels = append(labels, &tsast.CaseClause{Test: t.expr(item.Child(0))})
			case frontend.SynDefaultLabel:
				labels = append(labels, &tsast.CaseClause{})
			default:
				if st := t.stmt(item); st != nil {
					stmts = append(stmts, st)
				}
			}
		}
		if len(labels) == 0 {
			continue
		}
		labels[len(labels)-1].Statements = stmts
		s.Clauses = append(s.Clauses, labels...)
	}
	return s
}
