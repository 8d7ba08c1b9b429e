package translate

import (
	"strconv"
	"strings"

	"cs2ts/internal/frontend"
	"cs2ts/internal/symtab"
	"cs2ts/internal/tsast"
)

func (t *translator) exprOpt(n *frontend.SyntaxNode) tsast.Expression {
	if n == nil {
		return nil
	}
	return t.expr(n)
}

func (t *translator) exprs(ns []*frontend.SyntaxNode) []tsast.Expression {
	out := make([]tsast.Expression, 0, len(ns))
	for _, n := range ns {
		out = append(out, t.expr(n))
	}
	return out
}

func (t *translator) expr(n *frontend.SyntaxNode) tsast.Expression {
	if n == nil {
		return &tsast.UndefinedLiteral{}
	}
	switch n.Kind {
	case frontend.SynIdentifier:
		sym := t.model.ReferencedSymbol(n)
		if sym == nil {
			t.unresolvedName(n, n.Name)
			return tsast.Ident(n.Name)
		}
		return t.symbolRef(sym, nil, n)
	case frontend.SynNumericLiteral:
		return tsast.Num(numericText(n.Token))
	case frontend.SynStringLiteral, frontend.SynCharLiteral:
		return tsast.Str(n.Value)
	case frontend.SynBoolLiteral:
		return tsast.Bool(n.Token == "true")
	case frontend.SynNullLiteral:
		return &tsast.NullLiteral{}
	case frontend.SynThis:
		return tsast.This()
	case frontend.SynBase:
		return &tsast.SuperExpression{}
	case frontend.SynMemberAccess:
		return t.memberAccess(n)
	case frontend.SynInvocation:
		return t.invocation(n)
	case frontend.SynObjectCreation:
		return t.objectCreation(n)
	case frontend.SynArrayCreation:
		if n.Token == "sized" {
			return &tsast.NewExpression{Callee: tsast.Ident("Array"), Args: t.exprs(n.Children)}
		}
		return &tsast.ArrayLiteral{Elements: t.exprs(n.Children)}
	case frontend.SynUnary:
		return &tsast.UnaryExpression{Op: n.Token, Operand: t.expr(n.Child(0))}
	case frontend.SynPostfixUnary:
		return &tsast.UnaryExpression{Op: n.Token, Operand: t.expr(n.Child(0)), Postfix: true}
	case frontend.SynBinary:
		return t.binary(n)
	case frontend.SynAssignment:
		return &tsast.AssignmentExpression{Left: t.expr(n.Child(0)), Op: n.Token, Right: t.expr(n.Child(1))}
	case frontend.SynConditional:
		return &tsast.ConditionalExpression{
			Condition: t.expr(n.Child(0)),
			WhenTrue:  t.expr(n.Child(1)),
			WhenFalse: t.expr(n.Child(2)),
		}
	case frontend.SynParenthesized:
		return &tsast.ParenthesizedExpression{Expr: t.expr(n.Child(0))}
	case frontend.SynElementAccess:
		return &tsast.ElementAccessExpression{Target: t.expr(n.Child(0)), Index: t.expr(n.Child(1))}
	case frontend.SynCast:
		// casts only inform the C# type checker
		return t.expr(n.Child(0))
	case frontend.SynLambda:
		return t.lambda(n)
	case frontend.SynTypeOf:
		if sym := t.model.ReferencedSymbol(n); sym != nil && sym.Kind.IsType() {
			return t.typeExpr(sym)
		}
		t.unresolvedName(n, n.Name)
		return tsast.Ident(n.Name)
	case frontend.SynUnsupported:
		t.unsupported(n, n.Token)
		return &tsast.UndefinedLiteral{}
	}
	t.unsupported(n, "a "+n.Kind.String()+" expression")
	return &tsast.UndefinedLiteral{}
}

// numericText drops C# literal suffixes.
func numericText(s string) string {
	s = strings.ReplaceAll(s, "_", "")
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0b") {
		return strings.TrimRight(s, "uUlL")
	}
	return strings.TrimRight(s, "fFdDmMuUlL")
}

// symbolRef is a use of sym; target is the explicit receiver or nil.
func (t *translator) symbolRef(sym *frontend.Symbol, target tsast.Expression, n *frontend.SyntaxNode) tsast.Expression {
	switch {
	case sym.Kind == frontend.SymLocal || sym.Kind == frontend.SymParameter:
		return tsast.Ident(symtab.Escape(sym.Name))
	case sym.Kind.IsType():
		return t.typeExpr(sym)
	case sym.Kind == frontend.SymNamespace:
		return tsast.Ident(sym.Name)
	case sym.Kind.IsMember():
		if tmpl, ok := t.tables.Inline.Lookup(sym.Key); ok && sym.Kind != frontend.SymMethod {
			if target == nil && tmpl.UsesThis() {
				target = t.implicitTarget(sym)
			}
			return t.inline(tmpl, sym, target, nil, n)
		}
		if target == nil {
			target = t.implicitTarget(sym)
		}
		return &tsast.MemberExpression{Target: target, Name: tsast.Ident(t.scriptName(sym))}
	}
	t.unsupported(n, "a reference to a "+sym.Kind.String())
	return tsast.Ident(sym.Name)
}

// implicitTarget qualifies a member used by its simple name.
func (t *translator) implicitTarget(sym *frontend.Symbol) tsast.Expression {
	if sym.Is(frontend.ModStatic) || sym.Is(frontend.ModConst) || sym.Kind == frontend.SymEnumMember {
		if c := sym.ContainingType(); c != nil {
			return t.typeExpr(c)
		}
	}
	return tsast.This()
}

func (t *translator) memberAccess(n *frontend.SyntaxNode) tsast.Expression {
	sym := t.model.ReferencedSymbol(n)
	if sym != nil && sym.Kind.IsType() {
		return t.typeExpr(sym)
	}
	misses := t.misses
	target := t.expr(n.Child(0))
	if sym == nil {
		if t.misses == misses {
			t.unresolvedName(n, n.Name)
		}
		return tsast.Member(target, n.Name)
	}
	return t.symbolRef(sym, target, n)
}

func (t *translator) invocation(n *frontend.SyntaxNode) tsast.Expression {
	callee := n.Child(0)
	method := t.model.ReferencedSymbol(n)
	if method == nil || method.Kind != frontend.SymMethod {
		return &tsast.CallExpression{Callee: t.expr(callee), Args: t.exprs(n.Children[1:])}
	}

	var target tsast.Expression
	if callee.Kind == frontend.SynMemberAccess {
		target = t.expr(callee.Child(0))
	}
	args := t.exprs(n.Children[1:])
	if tmpl, ok := t.tables.Inline.Lookup(method.Key); ok {
		if target == nil && tmpl.UsesThis() {
			target = t.implicitTarget(method)
		}
		return t.inline(tmpl, method, target, args, n)
	}
	if target == nil {
		target = t.implicitTarget(method)
	}
	if alt, ok := t.tables.Alternates.Lookup(method.Key); ok {
		args = reorder(alt, args)
	}
	return &tsast.CallExpression{
		Callee: &tsast.MemberExpression{Target: target, Name: tsast.Ident(t.scriptName(method))},
		Args:   args,
	}
}

// reorder moves alternate-signature arguments into implementation order;
// parameters the alternate does not have get undefined.
func reorder(alt symtab.Alternate, args []tsast.Expression) []tsast.Expression {
	idx := make([]string, len(args))
	for i := range args {
		idx[i] = strconv.Itoa(i)
	}
	order := alt.Reorder(idx, "")
	out := make([]tsast.Expression, len(order))
	for i, s := range order {
		if s == "" {
			out[i] = &tsast.UndefinedLiteral{}
			continue
		}
		j, _ := strconv.Atoi(s)
		out[i] = args[j]
	}
	return out
}

// inline expands the inline code of sym with the rendered receiver and
// arguments.
func (t *translator) inline(tmpl *symtab.Template, sym *frontend.Symbol, target tsast.Expression, args []tsast.Expression, n *frontend.SyntaxNode) tsast.Expression {
	this := ""
	if target != nil && tmpl.UsesThis() {
		this = t.text(target, n)
	}
	named := make(symtab.Args, len(sym.Parameters))
	for i, p := range sym.Parameters {
		if p.Is(frontend.ModParams) {
			rest := make([]string, 0, max(len(args)-i, 0))
			for _, a := range args[min(i, len(args)):] {
				rest = append(rest, t.text(a, n))
			}
			named[p.Name] = rest
			break
		}
		if i < len(args) {
			named[p.Name] = []string{t.text(args[i], n)}
		}
	}
	return &tsast.RawExpression{Text: tmpl.Expand(this, named)}
}

func (t *translator) objectCreation(n *frontend.SyntaxNode) tsast.Expression {
	ctor := t.model.ReferencedSymbol(n)
	typ := t.model.TypeOf(n)
	args := t.exprs(n.Children)
	if ctor != nil {
		if tmpl, ok := t.tables.Inline.Lookup(ctor.Key); ok {
			return t.inline(tmpl, ctor, nil, args, n)
		}
		if alt, ok := t.tables.Alternates.Lookup(ctor.Key); ok {
			args = reorder(alt, args)
		}
	}
	if typ == nil || typ.Symbol == nil {
		t.unresolvedName(n, n.Name)
		return &tsast.NewExpression{Callee: tsast.Ident(n.Name), Args: args}
	}
	x := &tsast.NewExpression{Callee: t.typeExpr(typ.Symbol), Args: args}
	for _, a := range typ.Args {
		x.TypeArgs = append(x.TypeArgs, t.typeOf(a, n))
	}
	return x
}

var strictOps = map[string]string{"==": "===", "!=": "!=="}

func (t *translator) binary(n *frontend.SyntaxNode) tsast.Expression {
	switch n.Token {
	case "as":
		return &tsast.AsExpression{Expr: t.expr(n.Child(0)), Type: t.typeOf(t.model.TypeOf(n), n)}
	case "is":
		t.unsupported(n, "a type test with 'is'")
		return &tsast.UndefinedLiteral{}
	}
	op := n.Token
	if strict, ok := strictOps[op]; ok {
		op = strict
	}
	x := tsast.Binary(t.expr(n.Child(0)), op, t.expr(n.Child(1)))
	if op == "/" && isIntegral(t.model.TypeOf(n)) {
		return tsast.Call(tsast.Member(tsast.Ident("Math"), "trunc"), x)
	}
	return x
}

func (t *translator) lambda(n *frontend.SyntaxNode) tsast.Expression {
	f := &tsast.ArrowFunction{}
	if ps := n.Child(0); ps != nil {
		for _, p := range ps.Children {
			sym := t.model.DeclaredSymbol(p)
			param := tsast.Param(localName(sym, p.Name), nil)
			if sym != nil && sym.Type != nil {
				param.Type = t.typeOf(sym.Type, p)
			}
			f.Params = append(f.Params, param)
		}
	}
	if body := n.Child(1); body != nil && body.Kind == frontend.SynBlock {
		f.Body = t.block(body)
	} else {
		f.Body = t.expr(body)
	}
	return f
}
