package csharp

import (
	"fmt"
	"strings"

	"cs2ts/internal/diag"
	"cs2ts/internal/frontend"
)

const (
	listKey   = "T:System.Collections.Generic.List`1"
	stringKey = "T:System.String"
	objectKey = "T:System.Object"
	arrayType = "System.Array"
)

// numericRank orders the built-in numeric types by implicit widening.
var numericRank = map[string]int{
	"T:System.Byte":    1,
	"T:System.Int16":   2,
	"T:System.Char":    3,
	"T:System.Int32":   4,
	"T:System.Int64":   5,
	"T:System.Single":  6,
	"T:System.Double":  7,
	"T:System.Decimal": 8,
}

// operand is what an expression denotes: a value of typ, a type, a
// namespace, or a method group found on a receiver of type recv.
type operand struct {
	typ     *frontend.TypeRef
	typeSym *frontend.Symbol
	ns      string
	methods []*frontend.Symbol
	recv    *frontend.TypeRef
}

func (b *binder) expr(n *frontend.SyntaxNode) operand {
	if n == nil {
		return operand{}
	}
	op := b.bindExpr(n)
	if op.typ != nil {
		if _, ok := b.m.types[n]; !ok {
			b.m.types[n] = op.typ
		}
	}
	return op
}

func (b *binder) bindExpr(n *frontend.SyntaxNode) operand {
	lib := b.p.lib
	switch n.Kind {
	case frontend.SynIdentifier:
		return b.identifier(n)
	case frontend.SynNumericLiteral:
		return operand{typ: lib.Ref(literalType(n.Token))}
	case frontend.SynStringLiteral:
		return operand{typ: lib.Ref("string")}
	case frontend.SynCharLiteral:
		return operand{typ: lib.Ref("char")}
	case frontend.SynBoolLiteral:
		return operand{typ: lib.Ref("bool")}
	case frontend.SynThis:
		return operand{typ: selfRef(b.sc.typ)}
	case frontend.SynBase:
		return operand{typ: b.sc.typ.BaseType}
	case frontend.SynMemberAccess:
		return b.memberAccess(n)
	case frontend.SynInvocation:
		return b.invocation(n)
	case frontend.SynObjectCreation:
		return b.objectCreation(n)
	case frontend.SynArrayCreation:
		return b.arrayCreation(n)
	case frontend.SynUnary:
		x := b.expr(n.Child(0))
		switch n.Token {
		case "!":
			return operand{typ: lib.Ref("bool")}
		case "-", "+", "~":
			return operand{typ: b.promote(x.typ, x.typ)}
		}
		return operand{typ: x.typ}
	case frontend.SynPostfixUnary:
		return operand{typ: b.expr(n.Child(0)).typ}
	case frontend.SynBinary:
		return b.binary(n)
	case frontend.SynAssignment:
		left := b.expr(n.Child(0))
		b.expected(n.Child(1), left.typ)
		return operand{typ: left.typ}
	case frontend.SynConditional:
		b.expr(n.Child(0))
		yes := b.expr(n.Child(1))
		no := b.expr(n.Child(2))
		if yes.typ != nil {
			return operand{typ: yes.typ}
		}
		return operand{typ: no.typ}
	case frontend.SynParenthesized:
		return operand{typ: b.expr(n.Child(0)).typ}
	case frontend.SynElementAccess:
		target := b.expr(n.Child(0))
		b.expr(n.Child(1))
		return operand{typ: b.elementType(target.typ)}
	case frontend.SynCast:
		typ := b.sc.resolveType(b.t.types[n])
		b.expr(n.Child(0))
		return operand{typ: typ}
	case frontend.SynLambda:
		b.lambda(n)
	case frontend.SynTypeOf:
		if typ := b.sc.resolveType(b.t.types[n]); typ != nil && typ.Symbol != nil {
			b.m.referenced[n] = typ.Symbol
		}
	}
	return operand{}
}

// literalType names the C# type of a numeric literal from its suffix.
func literalType(text string) string {
	s := strings.ToLower(strings.ReplaceAll(text, "_", ""))
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0b") {
		if strings.HasSuffix(s, "l") {
			return "long"
		}
		return "int"
	}
	switch {
	case strings.HasSuffix(s, "f"):
		return "float"
	case strings.HasSuffix(s, "d"):
		return "double"
	case strings.HasSuffix(s, "m"):
		return "decimal"
	case strings.HasSuffix(s, "l"):
		return "long"
	case strings.ContainsAny(s, ".e"):
		return "double"
	}
	return "int"
}

// selfRef is the type of this inside t.
func selfRef(t *frontend.Symbol) *frontend.TypeRef {
	if t == nil {
		return nil
	}
	r := &frontend.TypeRef{Symbol: t, Name: t.Name}
	for _, tp := range t.TypeParameters {
		r.Args = append(r.Args, &frontend.TypeRef{Name: tp, IsTypeParameter: true})
	}
	return r
}

func (b *binder) namespaceSymbol(full string) *frontend.Symbol {
	if b.namespaces == nil {
		b.namespaces = make(map[string]*frontend.Symbol)
	}
	if s, ok := b.namespaces[full]; ok {
		return s
	}
	name := full
	if i := strings.LastIndexByte(full, '.'); i >= 0 {
		name = full[i+1:]
	}
	s := &frontend.Symbol{Kind: frontend.SymNamespace, Name: name, Namespace: full}
	b.namespaces[full] = s
	return s
}

func (b *binder) identifier(n *frontend.SyntaxNode) operand {
	if s := b.local(n.Name); s != nil {
		delete(b.unused, s)
		b.m.referenced[n] = s
		return operand{typ: s.Type}
	}
	for t := b.sc.typ; t != nil; t = t.ContainingType() {
		if op, ok := b.members(n, t, selfRef(t), n.Name); ok {
			return op
		}
	}
	if t := b.sc.lookupType(n.Name, 0); t != nil {
		b.m.referenced[n] = t
		return operand{typeSym: t}
	}
	if full, ok := b.sc.namespace(n.Name); ok {
		b.m.referenced[n] = b.namespaceSymbol(full)
		return operand{ns: full}
	}
	return operand{}
}

// members looks name up on owner and records what n refers to. A method
// group stays open until the invocation picks an overload.
func (b *binder) members(n *frontend.SyntaxNode, owner *frontend.Symbol, recv *frontend.TypeRef, name string) (operand, bool) {
	ms := b.p.lookupMembers(owner, name)
	if len(ms) == 0 {
		return operand{}, false
	}
	b.m.referenced[n] = ms[0]
	if ms[0].Kind == frontend.SymMethod {
		return operand{methods: ms, recv: recv}, true
	}
	return operand{typ: substitute(ms[0].Type, recv)}, true
}

func (b *binder) memberAccess(n *frontend.SyntaxNode) operand {
	target := b.expr(n.Child(0))
	switch {
	case target.ns != "":
		full := target.ns + "." + n.Name
		if t := b.p.findType(full, 0); t != nil {
			b.m.referenced[n] = t
			return operand{typeSym: t}
		}
		if b.p.namespaces[full] {
			b.m.referenced[n] = b.namespaceSymbol(full)
			return operand{ns: full}
		}
	case target.typeSym != nil:
		if t := b.p.findType(target.typeSym.FullName()+"."+n.Name, 0); t != nil {
			b.m.referenced[n] = t
			return operand{typeSym: t}
		}
		if op, ok := b.members(n, target.typeSym, nil, n.Name); ok {
			return op
		}
	case target.typ != nil:
		if op, ok := b.members(n, b.typeSymbol(target.typ), target.typ, n.Name); ok {
			return op
		}
	}
	return operand{}
}

// typeSymbol is the symbol whose members a value of type t has.
func (b *binder) typeSymbol(t *frontend.TypeRef) *frontend.Symbol {
	switch {
	case t == nil || t.IsTypeParameter:
		return nil
	case t.Elem != nil:
		return b.p.lib.Type(arrayType)
	}
	return t.Symbol
}

// substitute replaces the type parameters of recv's type in r with the
// type arguments recv supplies.
func substitute(r, recv *frontend.TypeRef) *frontend.TypeRef {
	if r == nil || recv == nil || recv.Symbol == nil || len(recv.Args) == 0 {
		return r
	}
	if r.IsTypeParameter {
		for i, tp := range recv.Symbol.TypeParameters {
			if tp == r.Name && i < len(recv.Args) {
				return recv.Args[i]
			}
		}
		return r
	}
	if r.Elem != nil {
		return &frontend.TypeRef{Elem: substitute(r.Elem, recv)}
	}
	if len(r.Args) == 0 {
		return r
	}
	out := &frontend.TypeRef{Symbol: r.Symbol, Name: r.Name}
	for _, a := range r.Args {
		out.Args = append(out.Args, substitute(a, recv))
	}
	return out
}

func (b *binder) args(list []*frontend.SyntaxNode) []*frontend.TypeRef {
	out := make([]*frontend.TypeRef, 0, len(list))
	for _, a := range list {
		out = append(out, b.expr(a).typ)
	}
	return out
}

func (b *binder) invocation(n *frontend.SyntaxNode) operand {
	callee := n.Child(0)
	fn := b.expr(callee)
	var args []*frontend.TypeRef
	if len(n.Children) > 1 {
		args = b.args(n.Children[1:])
	}
	if len(fn.methods) == 0 {
		return operand{}
	}
	m := b.pick(n, fn.methods[0].Name, fn.methods, args, fn.recv)
	if m == nil {
		return operand{}
	}
	b.m.referenced[n] = m
	b.m.referenced[callee] = m
	return operand{typ: substitute(m.Type, fn.recv)}
}

func (b *binder) objectCreation(n *frontend.SyntaxNode) operand {
	typ := b.sc.resolveType(b.t.types[n])
	args := b.args(n.Children)
	if typ == nil {
		return operand{}
	}
	b.m.types[n] = typ
	if typ.Symbol != nil {
		if ctors := b.p.constructors(typ.Symbol); len(ctors) > 0 {
			if c := b.pick(n, typ.Symbol.Name, ctors, args, typ); c != nil {
				b.m.referenced[n] = c
			}
		}
	}
	return operand{typ: typ}
}

func (b *binder) arrayCreation(n *frontend.SyntaxNode) operand {
	typ := b.sc.resolveType(b.t.types[n])
	var first *frontend.TypeRef
	for _, c := range n.Children {
		if t := b.expr(c).typ; first == nil {
			first = t
		}
	}
	switch {
	case n.Token == "sized":
		typ = &frontend.TypeRef{Elem: typ}
	case typ == nil && first != nil:
		typ = &frontend.TypeRef{Elem: first}
	}
	return operand{typ: typ}
}

func (b *binder) binary(n *frontend.SyntaxNode) operand {
	lib := b.p.lib
	switch n.Token {
	case "as":
		b.expr(n.Child(0))
		return operand{typ: b.sc.resolveType(b.t.types[n])}
	case "is":
		b.expr(n.Child(0))
		return operand{typ: lib.Ref("bool")}
	}
	l := b.expr(n.Child(0)).typ
	r := b.expr(n.Child(1)).typ
	switch n.Token {
	case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
		return operand{typ: lib.Ref("bool")}
	case "??":
		if l != nil {
			return operand{typ: l}
		}
		return operand{typ: r}
	case "<<", ">>":
		return operand{typ: b.promote(l, l)}
	case "+":
		if l.Key() == stringKey || r.Key() == stringKey {
			return operand{typ: lib.Ref("string")}
		}
	case "&", "|", "^":
		if l.Key() == "T:System.Boolean" {
			return operand{typ: l}
		}
	}
	return operand{typ: b.promote(l, r)}
}

// promote applies binary numeric promotion; non-numeric operands keep the
// left type.
func (b *binder) promote(l, r *frontend.TypeRef) *frontend.TypeRef {
	lr, lok := numericRank[l.Key()]
	rr, rok := numericRank[r.Key()]
	if !lok || !rok {
		return l
	}
	best, rank := l, lr
	if rr > lr {
		best, rank = r, rr
	}
	if rank < numericRank["T:System.Int32"] {
		return b.p.lib.Ref("int")
	}
	return best
}

func (b *binder) lambda(n *frontend.SyntaxNode) {
	var params []*frontend.Symbol
	if ps := n.Child(0); ps != nil {
		for _, p := range ps.Children {
			s := &frontend.Symbol{
				Kind:      frontend.SymParameter,
				Name:      p.Name,
				Container: b.member,
				Type:      b.sc.resolveType(b.t.types[p]),
				Locations: []*diag.Location{b.location(p)},
			}
			b.m.declared[p] = s
			params = append(params, s)
		}
	}
	b.lambdas++
	b.push(params...)
	b.stmtOrExpr(n.Child(1))
	b.pop()
	b.lambdas--
}

// pick chooses the overload of name that best fits args. Ties go to the
// first declared candidate with a warning.
func (b *binder) pick(at *frontend.SyntaxNode, name string, cands []*frontend.Symbol, args []*frontend.TypeRef, recv *frontend.TypeRef) *frontend.Symbol {
	var (
		best      *frontend.Symbol
		bestScore int
		tie       bool
	)
	for _, c := range cands {
		score, ok := b.score(c, args, recv)
		switch {
		case !ok:
		case best == nil || score > bestScore:
			best, bestScore, tie = c, score, false
		case score == bestScore:
			tie = true
		}
	}
	loc := b.location(at)
	switch {
	case best == nil && len(cands) > 0 && cands[0].Kind == frontend.SymConstructor:
		b.report(diag.External("CS1729", diag.SevError, loc,
			fmt.Sprintf("'%s' does not contain a constructor that takes %d arguments", name, len(args))))
	case best == nil && len(cands) > 0:
		b.report(diag.External("CS1501", diag.SevError, loc,
			fmt.Sprintf("No overload for method '%s' takes %d arguments", name, len(args))))
	case tie:
		b.report(diag.New(diag.TrAmbiguousInvocation, loc,
			"call to '%s' matches several overloads, using %s", name, best.Key))
	}
	return best
}

// score rates how well args fit the parameters of m; ok is false when
// the argument count does not fit at all.
func (b *binder) score(m *frontend.Symbol, args []*frontend.TypeRef, recv *frontend.TypeRef) (int, bool) {
	ps := m.Parameters
	variadic := len(ps) > 0 && ps[len(ps)-1].Is(frontend.ModParams)
	required := 0
	for _, p := range ps {
		if p.Default == nil && !p.Is(frontend.ModParams) {
			required++
		}
	}
	if len(args) < required || (len(args) > len(ps) && !variadic) {
		return 0, false
	}
	score := 0
	for i, a := range args {
		var want *frontend.TypeRef
		switch {
		case variadic && i >= len(ps)-1:
			last := substitute(ps[len(ps)-1].Type, recv)
			if len(args) == len(ps) && b.convert(a, last) > 0 {
				want = last
			} else {
				if i == len(ps)-1 {
					score--
				}
				if last != nil {
					want = last.Elem
				}
			}
		default:
			want = substitute(ps[i].Type, recv)
		}
		score += b.convert(a, want)
	}
	if variadic && len(args) == len(ps)-1 {
		score--
	}
	return score, true
}

// convert rates an implicit conversion from a to want: 2 for identity,
// 1 for a widening or reference conversion, -10 when none exists.
// Unknown types convert to anything.
func (b *binder) convert(a, want *frontend.TypeRef) int {
	switch {
	case a == nil || want == nil || want.IsTypeParameter || a.IsTypeParameter:
		return 1
	case a.Elem != nil || want.Elem != nil:
		if a.Elem != nil && want.Elem != nil {
			return b.convert(a.Elem, want.Elem)
		}
		if want.Key() == objectKey || (a.Elem != nil && want.Symbol != nil && want.Symbol.FullName() == arrayType) {
			return 1
		}
		return -10
	case a.Symbol == nil || want.Symbol == nil:
		return 1
	case a.Symbol == want.Symbol:
		return 2
	case want.Key() == objectKey:
		return 1
	}
	if ar, ok := numericRank[a.Key()]; ok {
		if wr, ok := numericRank[want.Key()]; ok && ar < wr {
			return 1
		}
		return -10
	}
	for _, s := range b.p.supertypes(a.Symbol) {
		if s == want.Symbol {
			return 1
		}
	}
	return -10
}
