package csharp

import (
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"cs2ts/internal/frontend"
)

func (c *converter) expr(n sitter.Node) *frontend.SyntaxNode {
	switch t := n.Type(); t {
	case "identifier", "predefined_type":
		x := c.node(frontend.SynIdentifier, n)
		x.Name = c.text(n)
		return x
	case "generic_name":
		x := c.node(frontend.SynIdentifier, n)
		if id, ok := part(n, "name", "identifier"); ok {
			x.Name = c.text(id)
		}
		return x
	case "qualified_name":
		q, qok := part(n, "qualifier")
		nm, nok := part(n, "name")
		if !qok || !nok {
			return c.unsupported(n)
		}
		x := c.node(frontend.SynMemberAccess, n)
		x.Name = c.expr(nm).Name
		x.Children = []*frontend.SyntaxNode{c.expr(q)}
		return x
	case "integer_literal", "real_literal":
		x := c.node(frontend.SynNumericLiteral, n)
		x.Token = c.text(n)
		return x
	case "string_literal", "verbatim_string_literal":
		x := c.node(frontend.SynStringLiteral, n)
		x.Value = decodeLiteral(c.text(n))
		return x
	case "character_literal":
		x := c.node(frontend.SynCharLiteral, n)
		x.Value = decodeLiteral(c.text(n))
		return x
	case "boolean_literal":
		x := c.node(frontend.SynBoolLiteral, n)
		x.Token = c.text(n)
		return x
	case "null_literal":
		return c.node(frontend.SynNullLiteral, n)
	case "this_expression", "this":
		return c.node(frontend.SynThis, n)
	case "base_expression", "base":
		return c.node(frontend.SynBase, n)
	case "parenthesized_expression":
		inner, ok := firstNamed(n)
		if !ok {
			return c.unsupported(n)
		}
		x := c.node(frontend.SynParenthesized, n)
		x.Children = []*frontend.SyntaxNode{c.expr(inner)}
		return x
	case "member_access_expression":
		return c.memberAccess(n)
	case "invocation_expression":
		return c.invocation(n)
	case "object_creation_expression":
		return c.objectCreation(n)
	case "array_creation_expression":
		return c.arrayCreation(n)
	case "implicit_array_creation_expression", "initializer_expression", "collection_expression":
		init, ok := part(n, "initializer", "initializer_expression")
		if !ok {
			init = n
		}
		x := c.node(frontend.SynArrayCreation, n)
		x.Children = c.exprList(init)
		return x
	case "prefix_unary_expression":
		op := c.operator(n)
		operand, ok := firstNamed(n)
		if !ok || op == "^" || op == "&" || op == "*" {
			return c.unsupported(n)
		}
		x := c.node(frontend.SynUnary, n)
		x.Token = op
		x.Children = []*frontend.SyntaxNode{c.expr(operand)}
		return x
	case "postfix_unary_expression":
		operand, ok := firstNamed(n)
		if !ok {
			return c.unsupported(n)
		}
		op := c.operator(n)
		if op == "!" {
			// null-forgiving
			return c.expr(operand)
		}
		x := c.node(frontend.SynPostfixUnary, n)
		x.Token = op
		x.Children = []*frontend.SyntaxNode{c.expr(operand)}
		return x
	case "binary_expression":
		left, lok := part(n, "left")
		right, rok := part(n, "right")
		if !lok || !rok {
			return c.unsupported(n)
		}
		x := c.node(frontend.SynBinary, n)
		x.Token = c.operator(n)
		x.Children = []*frontend.SyntaxNode{c.expr(left), c.expr(right)}
		return x
	case "assignment_expression":
		left, lok := part(n, "left")
		right, rok := part(n, "right")
		if !lok || !rok {
			return c.unsupported(n)
		}
		x := c.node(frontend.SynAssignment, n)
		x.Token = c.operator(n)
		x.Children = []*frontend.SyntaxNode{c.expr(left), c.expr(right)}
		return x
	case "conditional_expression":
		cond, cok := part(n, "condition")
		yes, yok := part(n, "consequence")
		no, nok := part(n, "alternative")
		x := c.node(frontend.SynConditional, n)
		x.Children = []*frontend.SyntaxNode{c.exprOpt(cond, cok), c.exprOpt(yes, yok), c.exprOpt(no, nok)}
		return x
	case "element_access_expression":
		return c.elementAccess(n)
	case "cast_expression":
		typ, tok := part(n, "type")
		value, vok := part(n, "value")
		if !tok || !vok {
			return c.unsupported(n)
		}
		x := c.node(frontend.SynCast, n)
		ts := c.typeSyntax(typ)
		x.Name = ts.text
		x.Children = []*frontend.SyntaxNode{c.expr(value)}
		c.t.types[x] = ts
		return x
	case "as_expression":
		ns := named(n)
		if len(ns) < 2 {
			return c.unsupported(n)
		}
		left, ok := part(n, "left")
		if !ok {
			left = ns[0]
		}
		right, ok := part(n, "right")
		if !ok {
			right = ns[len(ns)-1]
		}
		x := c.node(frontend.SynBinary, n)
		x.Token = "as"
		x.Children = []*frontend.SyntaxNode{c.expr(left), nil}
		c.t.types[x] = c.typeSyntax(right)
		return x
	case "is_expression", "is_pattern_expression":
		left, ok := part(n, "expression")
		if !ok {
			left, ok = firstNamed(n)
		}
		x := c.node(frontend.SynBinary, n)
		x.Token = "is"
		x.Children = []*frontend.SyntaxNode{c.exprOpt(left, ok), nil}
		return x
	case "lambda_expression":
		return c.lambda(n)
	case "typeof_expression":
		typ, ok := part(n, "type")
		if !ok {
			typ, ok = firstNamed(n)
		}
		if !ok {
			return c.unsupported(n)
		}
		x := c.node(frontend.SynTypeOf, n)
		ts := c.typeSyntax(typ)
		x.Name = ts.text
		c.t.types[x] = ts
		return x
	}
	return c.unsupported(n)
}

func (c *converter) memberAccess(n sitter.Node) *frontend.SyntaxNode {
	target, tok := part(n, "expression")
	name, nok := part(n, "name")
	if !tok || !nok {
		return c.unsupported(n)
	}
	x := c.node(frontend.SynMemberAccess, n)
	x.Name = c.expr(name).Name
	x.Children = []*frontend.SyntaxNode{c.expr(target)}
	return x
}

func (c *converter) invocation(n sitter.Node) *frontend.SyntaxNode {
	fn, ok := part(n, "function")
	if !ok {
		return c.unsupported(n)
	}
	x := c.node(frontend.SynInvocation, n)
	x.Children = []*frontend.SyntaxNode{c.expr(fn)}
	if args, ok := part(n, "arguments", "argument_list"); ok {
		list := c.arguments(args)
		if list == nil && len(named(args)) > 0 {
			return c.unsupported(args)
		}
		x.Children = append(x.Children, list...)
	}
	return x
}

// arguments converts an argument list; named arguments make it nil.
func (c *converter) arguments(list sitter.Node) []*frontend.SyntaxNode {
	var out []*frontend.SyntaxNode
	for _, a := range named(list) {
		if a.Type() != "argument" {
			continue
		}
		ns := named(a)
		if len(ns) == 0 {
			continue
		}
		if ns[0].Type() == "name_colon" {
			return nil
		}
		out = append(out, c.expr(ns[len(ns)-1]))
	}
	return out
}

func (c *converter) exprList(n sitter.Node) []*frontend.SyntaxNode {
	var out []*frontend.SyntaxNode
	for _, e := range named(n) {
		out = append(out, c.expr(e))
	}
	return out
}

func (c *converter) objectCreation(n sitter.Node) *frontend.SyntaxNode {
	typ, ok := part(n, "type")
	if !ok {
		return c.unsupported(n)
	}
	if _, has := part(n, "initializer", "initializer_expression"); has {
		return c.unsupported(n)
	}
	x := c.node(frontend.SynObjectCreation, n)
	ts := c.typeSyntax(typ)
	x.Name = ts.text
	c.t.types[x] = ts
	if args, ok := part(n, "arguments", "argument_list"); ok {
		list := c.arguments(args)
		if list == nil && len(named(args)) > 0 {
			return c.unsupported(args)
		}
		x.Children = list
	}
	return x
}

func (c *converter) arrayCreation(n sitter.Node) *frontend.SyntaxNode {
	typ, ok := part(n, "type", "array_type")
	if !ok {
		return c.unsupported(n)
	}
	x := c.node(frontend.SynArrayCreation, n)
	c.t.types[x] = c.typeSyntax(typ)
	if init, ok := part(n, "initializer", "initializer_expression"); ok {
		x.Children = c.exprList(init)
		return x
	}
	rank, ok := part(typ, "rank", "array_rank_specifier")
	if !ok {
		return c.unsupported(n)
	}
	sizes := named(rank)
	if len(sizes) != 1 {
		return c.unsupported(n)
	}
	x.Token = "sized"
	x.Children = []*frontend.SyntaxNode{c.expr(sizes[0])}
	return x
}

func (c *converter) elementAccess(n sitter.Node) *frontend.SyntaxNode {
	target, tok := part(n, "expression")
	sub, sok := part(n, "subscript", "bracketed_argument_list")
	if !tok || !sok {
		return c.unsupported(n)
	}
	args := c.arguments(sub)
	if len(args) != 1 {
		return c.unsupported(n)
	}
	x := c.node(frontend.SynElementAccess, n)
	x.Children = []*frontend.SyntaxNode{c.expr(target), args[0]}
	return x
}

func (c *converter) lambda(n sitter.Node) *frontend.SyntaxNode {
	body, ok := part(n, "body")
	if !ok {
		return c.unsupported(n)
	}
	params := &frontend.SyntaxNode{Kind: frontend.SynExprList, Span: c.span(n)}
	ps, ok := part(n, "parameters", "parameter_list", "implicit_parameter", "identifier")
	if ok {
		switch ps.Type() {
		case "parameter_list":
			for _, p := range named(ps) {
				if p.Type() != "parameter" {
					continue
				}
				pi := c.param(p)
				if pi.mods.Has(frontend.ModRef) || pi.mods.Has(frontend.ModParams) {
					return c.unsupported(n)
				}
				px := c.node(frontend.SynParameter, p)
				px.Name = pi.name
				if pi.typ != nil {
					c.t.types[px] = pi.typ
				}
				params.Children = append(params.Children, px)
			}
		default:
			px := c.node(frontend.SynParameter, ps)
			px.Name = c.text(ps)
			params.Children = append(params.Children, px)
		}
	}
	x := c.node(frontend.SynLambda, n)
	if body.Type() == "block" {
		x.Children = []*frontend.SyntaxNode{params, c.block(body)}
	} else {
		x.Children = []*frontend.SyntaxNode{params, c.expr(body)}
	}
	return x
}
