package csharp

import (
	"fmt"

	"cs2ts/internal/diag"
	"cs2ts/internal/frontend"
)

// model is the semantic model of one document. Declarations of types and
// members come from the project; locals, references and types from binding.
type model struct {
	project    map[*frontend.SyntaxNode]*frontend.Symbol
	declared   map[*frontend.SyntaxNode]*frontend.Symbol
	referenced map[*frontend.SyntaxNode]*frontend.Symbol
	types      map[*frontend.SyntaxNode]*frontend.TypeRef
}

func (m *model) DeclaredSymbol(n *frontend.SyntaxNode) *frontend.Symbol {
	if s, ok := m.declared[n]; ok {
		return s
	}
	return m.project[n]
}

func (m *model) ReferencedSymbol(n *frontend.SyntaxNode) *frontend.Symbol { return m.referenced[n] }
func (m *model) TypeOf(n *frontend.SyntaxNode) *frontend.TypeRef          { return m.types[n] }

// binder resolves the bodies of one document.
type binder struct {
	p      *project
	t      *tree
	m      *model
	sc     *scope
	member *frontend.Symbol
	locals []map[string]*frontend.Symbol
	// unused tracks locals declared without a value and not read since.
	unused     map[*frontend.Symbol]*frontend.SyntaxNode
	lambdas    int
	namespaces map[string]*frontend.Symbol
	diags      []*diag.Diagnostic
}

// bind produces the semantic model of t and the binder's own findings.
func bind(p *project, t *tree) (*model, []*diag.Diagnostic) {
	b := &binder{
		p: p,
		t: t,
		m: &model{
			project:    p.declared,
			declared:   make(map[*frontend.SyntaxNode]*frontend.Symbol),
			referenced: make(map[*frontend.SyntaxNode]*frontend.Symbol),
			types:      make(map[*frontend.SyntaxNode]*frontend.TypeRef),
		},
	}
	b.walkTypes(t.root, "")
	diag.Sort(b.diags)
	return b.m, b.diags
}

func (b *binder) report(d *diag.Diagnostic) { b.diags = append(b.diags, d) }

func (b *binder) location(n *frontend.SyntaxNode) *diag.Location { return b.t.doc.Location(n.Span) }

func (b *binder) walkTypes(n *frontend.SyntaxNode, ns string) {
	for _, c := range n.Children {
		switch {
		case c == nil:
		case c.Kind == frontend.SynNamespace:
			b.walkTypes(c, join(ns, c.Name))
		case c.Kind.IsTypeDeclaration():
			sym := b.p.declared[c]
			if sym == nil {
				continue
			}
			b.sc = &scope{p: b.p, ns: sym.Namespace, usings: b.t.usings, typ: sym}
			for _, m := range c.Children {
				if m != nil && !m.Kind.IsTypeDeclaration() {
					b.bindMember(m)
				}
			}
			b.walkTypes(c, ns)
		}
	}
}

func (b *binder) push(syms ...*frontend.Symbol) {
	frame := make(map[string]*frontend.Symbol, len(syms))
	for _, s := range syms {
		frame[s.Name] = s
	}
	b.locals = append(b.locals, frame)
}

func (b *binder) pop() { b.locals = b.locals[:len(b.locals)-1] }

func (b *binder) declareLocal(s *frontend.Symbol) {
	b.locals[len(b.locals)-1][s.Name] = s
}

func (b *binder) local(name string) *frontend.Symbol {
	for i := len(b.locals) - 1; i >= 0; i-- {
		if s, ok := b.locals[i][name]; ok {
			return s
		}
	}
	return nil
}

func (b *binder) bindMember(n *frontend.SyntaxNode) {
	sym := b.p.declared[n]
	if sym == nil {
		return
	}
	b.member = sym
	b.unused = make(map[*frontend.Symbol]*frontend.SyntaxNode)
	outer := b.sc
	b.sc = outer.withTypeParams(sym.TypeParameters)
	defer func() {
		b.sc = outer
		b.locals = nil
		b.reportUnused()
	}()

	b.push(sym.Parameters...)
	for _, prm := range sym.Parameters {
		if prm.Default != nil {
			b.expr(prm.Default)
		}
	}
	switch n.Kind {
	case frontend.SynField:
		b.expected(n.Child(0), sym.Type)
	case frontend.SynEnumMember, frontend.SynMethod, frontend.SynOperator:
		for _, c := range n.Children {
			b.stmtOrExpr(c)
		}
	case frontend.SynProperty:
		for _, c := range n.Children {
			switch {
			case c == nil:
			case c.Kind == frontend.SynAccessorSet:
				value := &frontend.Symbol{Kind: frontend.SymParameter, Name: "value", Container: sym, Type: sym.Type}
				b.m.declared[c] = value
				b.push(value)
				b.stmtOrExpr(c.Child(0))
				b.pop()
			case c.Kind == frontend.SynAccessorGet:
				b.stmtOrExpr(c.Child(0))
			default:
				b.expected(c, sym.Type)
			}
		}
	case frontend.SynConstructor:
		if init := n.Child(0); init != nil {
			b.ctorInitializer(init, sym)
		}
		b.stmtOrExpr(n.Child(1))
	}
}

func (b *binder) ctorInitializer(init *frontend.SyntaxNode, ctor *frontend.Symbol) {
	args := b.args(init.Children)
	target := ctor.Container
	if init.Token == "base" {
		target = nil
		if bt := ctor.Container.BaseType; bt != nil {
			target = bt.Symbol
		}
	}
	if target == nil {
		return
	}
	if c := b.pick(init, target.Name, b.p.constructors(target), args, nil); c != nil {
		b.m.referenced[init] = c
	}
}

func (b *binder) stmtOrExpr(n *frontend.SyntaxNode) {
	if n == nil {
		return
	}
	if isStatement(n.Kind) {
		b.stmt(n)
		return
	}
	b.expr(n)
}

func isStatement(k frontend.SyntaxKind) bool {
	return k >= frontend.SynBlock && k <= frontend.SynExprList
}

func (b *binder) newLocal(n *frontend.SyntaxNode, name string, typ *frontend.TypeRef) *frontend.Symbol {
	s := &frontend.Symbol{
		Kind:      frontend.SymLocal,
		Name:      name,
		Container: b.member,
		Type:      typ,
		Locations: []*diag.Location{b.location(n)},
	}
	b.m.declared[n] = s
	return s
}

func (b *binder) reportUnused() {
	for s, n := range b.unused {
		b.report(diag.External("CS0168", diag.SevWarning, b.location(n),
			fmt.Sprintf("The variable '%s' is declared but never used", s.Name)))
	}
}

func (b *binder) stmt(n *frontend.SyntaxNode) {
	if n == nil {
		return
	}
	switch n.Kind {
	case frontend.SynBlock:
		b.push()
		for _, c := range n.Children {
			b.stmt(c)
		}
		b.pop()
	case frontend.SynLocalDecl:
		b.localDecl(n)
	case frontend.SynReturn:
		if b.lambdas == 0 {
			b.expected(n.Child(0), b.member.Type)
		} else {
			b.expr(n.Child(0))
		}
	case frontend.SynForEach:
		coll := b.expr(n.Child(0))
		typ := b.sc.resolveType(b.t.types[n])
		if typ == nil {
			typ = b.elementType(coll.typ)
		}
		b.push(b.newLocal(n, n.Name, typ))
		b.stmt(n.Child(1))
		b.pop()
	case frontend.SynFor:
		b.push()
		for _, c := range n.Children {
			b.stmtOrExpr(c)
		}
		b.pop()
	case frontend.SynCatch:
		b.push()
		if n.Name != "" {
			s := b.newLocal(n, n.Name, b.sc.resolveType(b.t.types[n]))
			b.declareLocal(s)
			b.unused[s] = n
		}
		b.stmt(n.Child(0))
		b.pop()
	case frontend.SynSwitch:
		b.push()
		for i, c := range n.Children {
			if i == 0 {
				b.expr(c)
				continue
			}
			b.stmt(c)
		}
		b.pop()
	case frontend.SynSwitchSection, frontend.SynTry, frontend.SynFinally:
		for _, c := range n.Children {
			b.stmt(c)
		}
	case frontend.SynCaseLabel:
		b.expr(n.Child(0))
	case frontend.SynExprList:
		for _, c := range n.Children {
			b.expr(c)
		}
	default:
		for _, c := range n.Children {
			b.stmtOrExpr(c)
		}
	}
}

func (b *binder) localDecl(n *frontend.SyntaxNode) {
	for _, d := range n.Children {
		init := d.Child(0)
		var typ *frontend.TypeRef
		if ts := b.t.types[d]; ts != nil {
			typ = b.sc.resolveType(ts)
			b.expected(init, typ)
		} else {
			typ = b.expr(init).typ
		}
		s := b.newLocal(d, d.Name, typ)
		if n.Token == "const" {
			s.Modifiers |= frontend.ModConst
		}
		b.declareLocal(s)
		if init == nil {
			b.unused[s] = d
		}
	}
}

// expected binds x where its type is known from context, so that an
// array literal gets the declared array type.
func (b *binder) expected(x *frontend.SyntaxNode, typ *frontend.TypeRef) {
	if x == nil {
		return
	}
	b.expr(x)
	if typ != nil && x.Kind == frontend.SynArrayCreation && b.t.types[x] == nil {
		b.m.types[x] = typ
	}
}

func (b *binder) elementType(t *frontend.TypeRef) *frontend.TypeRef {
	switch {
	case t == nil:
		return nil
	case t.Elem != nil:
		return t.Elem
	case t.Key() == listKey && len(t.Args) == 1:
		return t.Args[0]
	case t.Key() == stringKey:
		return b.p.lib.Ref("char")
	}
	return nil
}
