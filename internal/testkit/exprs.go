package testkit

import (
	"cs2ts/internal/frontend"
)

func n(kind frontend.SyntaxKind, children ...*frontend.SyntaxNode) *frontend.SyntaxNode {
	return &frontend.SyntaxNode{Kind: kind, Children: children}
}

func tok(kind frontend.SyntaxKind, token string, children ...*frontend.SyntaxNode) *frontend.SyntaxNode {
	return &frontend.SyntaxNode{Kind: kind, Token: token, Children: children}
}

func Num(text string) *frontend.SyntaxNode { return tok(frontend.SynNumericLiteral, text) }

func Str(v string) *frontend.SyntaxNode {
	return &frontend.SyntaxNode{Kind: frontend.SynStringLiteral, Value: v}
}

func Char(v string) *frontend.SyntaxNode {
	return &frontend.SyntaxNode{Kind: frontend.SynCharLiteral, Value: v}
}

func Bool(v bool) *frontend.SyntaxNode {
	if v {
		return tok(frontend.SynBoolLiteral, "true")
	}
	return tok(frontend.SynBoolLiteral, "false")
}

func Null() *frontend.SyntaxNode { return n(frontend.SynNullLiteral) }
func This() *frontend.SyntaxNode { return n(frontend.SynThis) }
func Base() *frontend.SyntaxNode { return n(frontend.SynBase) }

// Bin builds a binary expression.
func Bin(l *frontend.SyntaxNode, op string, r *frontend.SyntaxNode) *frontend.SyntaxNode {
	return tok(frontend.SynBinary, op, l, r)
}

// Assign builds an assignment; op is "=" or a compound operator.
func Assign(l *frontend.SyntaxNode, op string, r *frontend.SyntaxNode) *frontend.SyntaxNode {
	return tok(frontend.SynAssignment, op, l, r)
}

func Unary(op string, x *frontend.SyntaxNode) *frontend.SyntaxNode {
	return tok(frontend.SynUnary, op, x)
}

func Postfix(x *frontend.SyntaxNode, op string) *frontend.SyntaxNode {
	return tok(frontend.SynPostfixUnary, op, x)
}

func Paren(x *frontend.SyntaxNode) *frontend.SyntaxNode { return n(frontend.SynParenthesized, x) }

func Cond(c, t, f *frontend.SyntaxNode) *frontend.SyntaxNode {
	return n(frontend.SynConditional, c, t, f)
}

func Index(target, index *frontend.SyntaxNode) *frontend.SyntaxNode {
	return n(frontend.SynElementAccess, target, index)
}

func ArrayLit(elems ...*frontend.SyntaxNode) *frontend.SyntaxNode {
	return n(frontend.SynArrayCreation, elems...)
}

// SizedArray builds new T[size].
func SizedArray(size *frontend.SyntaxNode) *frontend.SyntaxNode {
	return tok(frontend.SynArrayCreation, "sized", size)
}

// Unsupported stands for a construct the compiler does not translate.
func Unsupported(grammarName string) *frontend.SyntaxNode {
	return tok(frontend.SynUnsupported, grammarName)
}

// Block builds a braced statement list.
func Block(stmts ...*frontend.SyntaxNode) *frontend.SyntaxNode {
	return n(frontend.SynBlock, stmts...)
}

func ExprStmt(x *frontend.SyntaxNode) *frontend.SyntaxNode { return n(frontend.SynExprStatement, x) }
func Return(x *frontend.SyntaxNode) *frontend.SyntaxNode   { return n(frontend.SynReturn, x) }
func Throw(x *frontend.SyntaxNode) *frontend.SyntaxNode    { return n(frontend.SynThrow, x) }
func Break() *frontend.SyntaxNode                          { return n(frontend.SynBreak) }
func Continue() *frontend.SyntaxNode                       { return n(frontend.SynContinue) }

func If(c, then, els *frontend.SyntaxNode) *frontend.SyntaxNode {
	return n(frontend.SynIf, c, then, els)
}

func While(c, body *frontend.SyntaxNode) *frontend.SyntaxNode {
	return n(frontend.SynWhile, c, body)
}

func Do(body, c *frontend.SyntaxNode) *frontend.SyntaxNode {
	return n(frontend.SynDo, body, c)
}

// For builds a for loop; any of init, cond and incr may be nil.
func For(init, cond, incr, body *frontend.SyntaxNode) *frontend.SyntaxNode {
	return n(frontend.SynFor, init, cond, incr, body)
}

// ExprList groups the initialisers or incrementors of a for loop.
func ExprList(xs ...*frontend.SyntaxNode) *frontend.SyntaxNode {
	return n(frontend.SynExprList, xs...)
}

// Try builds try/catch/finally; clauses are Catch and Finally nodes.
func Try(block *frontend.SyntaxNode, clauses ...*frontend.SyntaxNode) *frontend.SyntaxNode {
	return n(frontend.SynTry, append([]*frontend.SyntaxNode{block}, clauses...)...)
}

// Finally builds the finally clause of Try.
func Finally(block *frontend.SyntaxNode) *frontend.SyntaxNode {
	return n(frontend.SynFinally, block)
}

// Switch builds a switch over x; sections come from Section.
func Switch(x *frontend.SyntaxNode, sections ...*frontend.SyntaxNode) *frontend.SyntaxNode {
	return n(frontend.SynSwitch, append([]*frontend.SyntaxNode{x}, sections...)...)
}

// Section builds a switch section; labels come first, then statements.
func Section(items ...*frontend.SyntaxNode) *frontend.SyntaxNode {
	return n(frontend.SynSwitchSection, items...)
}

func Case(x *frontend.SyntaxNode) *frontend.SyntaxNode { return n(frontend.SynCaseLabel, x) }
func Default() *frontend.SyntaxNode                    { return n(frontend.SynDefaultLabel) }

// Bound nodes record their symbols in the document's model.

// Ref is an identifier bound to sym.
func (d *Doc) Ref(sym *frontend.Symbol) *frontend.SyntaxNode {
	x := d.node(frontend.SynIdentifier, sym.Name)
	d.model.referenced[x] = sym
	return x
}

// Name is an identifier the front-end could not bind.
func (d *Doc) Name(name string) *frontend.SyntaxNode {
	return d.node(frontend.SynIdentifier, name)
}

// Access is target.member bound to member.
func (d *Doc) Access(target *frontend.SyntaxNode, member *frontend.Symbol) *frontend.SyntaxNode {
	x := d.node(frontend.SynMemberAccess, member.Name, target)
	d.model.referenced[x] = member
	return x
}

// AccessName is target.name with nothing bound.
func (d *Doc) AccessName(target *frontend.SyntaxNode, name string) *frontend.SyntaxNode {
	return d.node(frontend.SynMemberAccess, name, target)
}

// Call is an invocation of method through callee.
func (d *Doc) Call(callee *frontend.SyntaxNode, method *frontend.Symbol, args ...*frontend.SyntaxNode) *frontend.SyntaxNode {
	x := d.node(frontend.SynInvocation, "", append([]*frontend.SyntaxNode{callee}, args...)...)
	if method != nil {
		d.model.referenced[x] = method
		if _, ok := d.model.referenced[callee]; !ok {
			d.model.referenced[callee] = method
		}
	}
	return x
}

// New creates an instance of typ through ctor.
func (d *Doc) New(typ *frontend.TypeRef, ctor *frontend.Symbol, args ...*frontend.SyntaxNode) *frontend.SyntaxNode {
	x := d.node(frontend.SynObjectCreation, typ.Name, args...)
	if ctor != nil {
		d.model.referenced[x] = ctor
	}
	d.model.types[x] = typ
	return x
}

// Cast is (typ)x.
func (d *Doc) Cast(typ *frontend.TypeRef, x *frontend.SyntaxNode) *frontend.SyntaxNode {
	c := d.node(frontend.SynCast, typ.Name, x)
	d.model.types[c] = typ
	return c
}

// Typed records the static type of x.
func (d *Doc) Typed(x *frontend.SyntaxNode, typ *frontend.TypeRef) *frontend.SyntaxNode {
	d.model.types[x] = typ
	return x
}

// Var declares sym with var; Const with const.
func (d *Doc) Var(sym *frontend.Symbol, init *frontend.SyntaxNode) *frontend.SyntaxNode {
	return d.local("var", sym, init)
}

// Const declares sym as a const local.
func (d *Doc) Const(sym *frontend.Symbol, init *frontend.SyntaxNode) *frontend.SyntaxNode {
	sym.Modifiers |= frontend.ModConst
	return d.local("const", sym, init)
}

func (d *Doc) local(kw string, sym *frontend.Symbol, init *frontend.SyntaxNode) *frontend.SyntaxNode {
	decl := d.node(frontend.SynDeclarator, sym.Name, init)
	d.model.declared[decl] = sym
	x := d.node(frontend.SynLocalDecl, "", decl)
	x.Token = kw
	return x
}

// ForEach builds foreach (var sym in collection) body.
func (d *Doc) ForEach(sym *frontend.Symbol, collection, body *frontend.SyntaxNode) *frontend.SyntaxNode {
	x := d.node(frontend.SynForEach, sym.Name, collection, body)
	d.model.declared[x] = sym
	return x
}

// Catch binds the exception variable sym; nil catches without a variable.
func (d *Doc) Catch(sym *frontend.Symbol, block *frontend.SyntaxNode) *frontend.SyntaxNode {
	if sym == nil {
		return d.node(frontend.SynCatch, "", block)
	}
	x := d.node(frontend.SynCatch, sym.Name, block)
	d.model.declared[x] = sym
	return x
}

// Lambda builds a lambda over params; body is an expression or a block.
func (d *Doc) Lambda(params []*frontend.Symbol, body *frontend.SyntaxNode) *frontend.SyntaxNode {
	ps := d.node(frontend.SynExprList, "")
	for _, p := range params {
		pn := d.node(frontend.SynParameter, p.Name)
		d.model.declared[pn] = p
		ps.Children = append(ps.Children, pn)
	}
	return d.node(frontend.SynLambda, "", ps, body)
}

// TypeName is an identifier naming a type, as in Math.Abs.
func (d *Doc) TypeName(sym *frontend.Symbol) *frontend.SyntaxNode {
	return d.Ref(sym)
}
