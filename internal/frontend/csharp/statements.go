package csharp

import (
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"cs2ts/internal/frontend"
)

func (c *converter) block(n sitter.Node) *frontend.SyntaxNode {
	x := c.node(frontend.SynBlock, n)
	for _, s := range named(n) {
		if s.Type() == "empty_statement" || s.Type() == "ERROR" {
			continue
		}
		x.Children = append(x.Children, c.stmt(s))
	}
	return x
}

func (c *converter) stmtOpt(n sitter.Node, ok bool) *frontend.SyntaxNode {
	if !ok {
		return nil
	}
	return c.stmt(n)
}

func (c *converter) exprOpt(n sitter.Node, ok bool) *frontend.SyntaxNode {
	if !ok {
		return nil
	}
	return c.expr(n)
}

func (c *converter) stmt(n sitter.Node) *frontend.SyntaxNode {
	switch n.Type() {
	case "block":
		return c.block(n)
	case "empty_statement":
		return c.node(frontend.SynBlock, n)
	case "local_declaration_statement":
		decl, ok := part(n, "", "variable_declaration")
		if !ok {
			return c.unsupported(n)
		}
		x := c.localDecl(decl)
		x.Span = c.span(n)
		if c.hasToken(n, "const") || c.hasModifier(n, "const") {
			x.Token = "const"
		}
		if c.hasToken(n, "using") {
			return c.unsupported(n)
		}
		return x
	case "expression_statement":
		x := c.node(frontend.SynExprStatement, n)
		e, ok := firstNamed(n)
		x.Children = []*frontend.SyntaxNode{c.exprOpt(e, ok)}
		return x
	case "return_statement":
		x := c.node(frontend.SynReturn, n)
		e, ok := firstNamed(n)
		x.Children = []*frontend.SyntaxNode{c.exprOpt(e, ok)}
		return x
	case "throw_statement":
		x := c.node(frontend.SynThrow, n)
		e, ok := firstNamed(n)
		x.Children = []*frontend.SyntaxNode{c.exprOpt(e, ok)}
		return x
	case "break_statement":
		return c.node(frontend.SynBreak, n)
	case "continue_statement":
		return c.node(frontend.SynContinue, n)
	case "if_statement":
		x := c.node(frontend.SynIf, n)
		cond, cok := part(n, "condition")
		then, tok := part(n, "consequence")
		els, eok := part(n, "alternative")
		x.Children = []*frontend.SyntaxNode{c.exprOpt(cond, cok), c.stmtOpt(then, tok), c.stmtOpt(els, eok)}
		return x
	case "while_statement":
		x := c.node(frontend.SynWhile, n)
		cond, cok := part(n, "condition")
		body, bok := part(n, "body")
		x.Children = []*frontend.SyntaxNode{c.exprOpt(cond, cok), c.stmtOpt(body, bok)}
		return x
	case "do_statement":
		x := c.node(frontend.SynDo, n)
		body, bok := part(n, "body")
		cond, cok := part(n, "condition")
		x.Children = []*frontend.SyntaxNode{c.stmtOpt(body, bok), c.exprOpt(cond, cok)}
		return x
	case "for_statement":
		return c.forStmt(n)
	case "foreach_statement":
		return c.foreach(n)
	case "try_statement":
		return c.try(n)
	case "switch_statement":
		return c.switchStmt(n)
	}
	return c.unsupported(n)
}

func (c *converter) hasModifier(n sitter.Node, word string) bool {
	for _, ch := range named(n) {
		if ch.Type() == "modifier" && c.text(ch) == word {
			return true
		}
	}
	return false
}

// localDecl converts a variable_declaration; the written type is kept on
// every declarator, nil for var.
func (c *converter) localDecl(decl sitter.Node) *frontend.SyntaxNode {
	x := c.node(frontend.SynLocalDecl, decl)
	x.Token = "var"
	var typ *typeSyntax
	if t, ok := part(decl, "type"); ok {
		typ = c.typeSyntax(t)
	}
	if typ.isVar() {
		typ = nil
	}
	for _, d := range named(decl) {
		if d.Type() != "variable_declarator" {
			continue
		}
		dx := c.node(frontend.SynDeclarator, d)
		name, init := c.declarator(d)
		dx.Name = name
		dx.Children = []*frontend.SyntaxNode{init}
		c.t.types[dx] = typ
		x.Children = append(x.Children, dx)
	}
	return x
}

// forStmt splits the header at its parentheses and semicolons, which
// works for every grammar revision of the field names.
func (c *converter) forStmt(n sitter.Node) *frontend.SyntaxNode {
	const (
		head = iota
		initPart
		condPart
		updatePart
		bodyPart
	)
	var (
		seg                    = head
		init, cond, body       *frontend.SyntaxNode
		initExprs, updateExprs []*frontend.SyntaxNode
	)
	for i := range n.ChildCount() {
		ch := n.Child(i)
		if !ch.IsNamed() {
			switch c.text(ch) {
			case "(":
				seg = initPart
			case ";":
				seg++
			case ")":
				seg = bodyPart
			}
			continue
		}
		if isTrivia(ch) {
			continue
		}
		switch seg {
		case initPart:
			if ch.Type() == "variable_declaration" {
				init = c.localDecl(ch)
			} else {
				initExprs = append(initExprs, c.expr(ch))
			}
		case condPart:
			cond = c.expr(ch)
		case updatePart:
			updateExprs = append(updateExprs, c.expr(ch))
		case bodyPart:
			body = c.stmt(ch)
		}
	}
	if init == nil && len(initExprs) > 0 {
		init = &frontend.SyntaxNode{Kind: frontend.SynExprList, Span: initExprs[0].Span, Children: initExprs}
	}
	var update *frontend.SyntaxNode
	if len(updateExprs) > 0 {
		update = &frontend.SyntaxNode{Kind: frontend.SynExprList, Span: updateExprs[0].Span, Children: updateExprs}
	}
	x := c.node(frontend.SynFor, n)
	x.Children = []*frontend.SyntaxNode{init, cond, update, body}
	return x
}

func (c *converter) foreach(n sitter.Node) *frontend.SyntaxNode {
	left, ok := part(n, "left", "identifier")
	if !ok || left.Type() != "identifier" {
		return c.unsupported(n)
	}
	x := c.node(frontend.SynForEach, n)
	x.Name = c.text(left)
	if t, ok := part(n, "type"); ok {
		if ts := c.typeSyntax(t); !ts.isVar() {
			c.t.types[x] = ts
		}
	}
	right, rok := part(n, "right")
	body, bok := part(n, "body")
	x.Children = []*frontend.SyntaxNode{c.exprOpt(right, rok), c.stmtOpt(body, bok)}
	return x
}

func (c *converter) try(n sitter.Node) *frontend.SyntaxNode {
	x := c.node(frontend.SynTry, n)
	var block *frontend.SyntaxNode
	if b, ok := part(n, "body", "block"); ok {
		block = c.block(b)
	}
	x.Children = []*frontend.SyntaxNode{block}
	for _, ch := range named(n) {
		switch ch.Type() {
		case "catch_clause":
			if _, filtered := part(ch, "", "catch_filter_clause"); filtered {
				return c.unsupported(ch)
			}
			x.Children = append(x.Children, c.catch(ch))
		case "finally_clause":
			f := c.node(frontend.SynFinally, ch)
			b, ok := part(ch, "body", "block")
			f.Children = []*frontend.SyntaxNode{c.stmtOpt(b, ok)}
			x.Children = append(x.Children, f)
		}
	}
	return x
}

func (c *converter) catch(n sitter.Node) *frontend.SyntaxNode {
	x := c.node(frontend.SynCatch, n)
	if decl, ok := part(n, "", "catch_declaration"); ok {
		if t, ok := part(decl, "type"); ok {
			c.t.types[x] = c.typeSyntax(t)
		}
		if name, ok := part(decl, "name"); ok {
			x.Name = c.text(name)
		}
	}
	b, ok := part(n, "body", "block")
	x.Children = []*frontend.SyntaxNode{c.stmtOpt(b, ok)}
	return x
}

func (c *converter) switchStmt(n sitter.Node) *frontend.SyntaxNode {
	x := c.node(frontend.SynSwitch, n)
	value, ok := part(n, "value")
	if !ok {
		value, ok = firstNamed(n)
	}
	if ok && value.Type() == "parenthesized_expression" {
		value, ok = firstNamed(value)
	}
	x.Children = []*frontend.SyntaxNode{c.exprOpt(value, ok)}
	body, ok := part(n, "body", "switch_body")
	if !ok {
		return x
	}
	for _, s := range named(body) {
		if s.Type() != "switch_section" {
			continue
		}
		sec, ok := c.section(s)
		if !ok {
			return c.unsupported(s)
		}
		x.Children = append(x.Children, sec)
	}
	return x
}

// section converts one switch section; pattern labels are not supported.
func (c *converter) section(s sitter.Node) (*frontend.SyntaxNode, bool) {
	x := c.node(frontend.SynSwitchSection, s)
	label := false
	for i := range s.ChildCount() {
		ch := s.Child(i)
		if !ch.IsNamed() {
			switch c.text(ch) {
			case "case":
				label = true
			case "default":
				x.Children = append(x.Children, c.node(frontend.SynDefaultLabel, ch))
			}
			continue
		}
		if isTrivia(ch) {
			continue
		}
		switch t := ch.Type(); {
		case t == "case_switch_label":
			v, ok := firstNamed(ch)
			x.Children = append(x.Children, c.caseLabel(ch, c.exprOpt(v, ok)))
		case t == "default_switch_label":
			x.Children = append(x.Children, c.node(frontend.SynDefaultLabel, ch))
		case t == "case_pattern_switch_label", t == "when_clause":
			return nil, false
		case label:
			label = false
			if t == "constant_pattern" {
				v, ok := firstNamed(ch)
				if !ok {
					return nil, false
				}
				ch = v
			} else if isPattern(t) {
				return nil, false
			}
			x.Children = append(x.Children, c.caseLabel(ch, c.expr(ch)))
		default:
			if ch.Type() == "empty_statement" {
				continue
			}
			x.Children = append(x.Children, c.stmt(ch))
		}
	}
	return x, true
}

func (c *converter) caseLabel(n sitter.Node, value *frontend.SyntaxNode) *frontend.SyntaxNode {
	x := c.node(frontend.SynCaseLabel, n)
	x.Children = []*frontend.SyntaxNode{value}
	return x
}

func isPattern(grammarType string) bool {
	switch grammarType {
	case "declaration_pattern", "recursive_pattern", "var_pattern", "type_pattern",
		"relational_pattern", "and_pattern", "or_pattern", "negated_pattern",
		"parenthesized_pattern", "list_pattern", "discard":
		return true
	}
	return false
}
