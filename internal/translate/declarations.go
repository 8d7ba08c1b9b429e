package translate

import (
	"cs2ts/internal/diag"
	"cs2ts/internal/frontend"
	"cs2ts/internal/symtab"
	"cs2ts/internal/tsast"
)

const objectKey = "T:System.Object"

// typeGroup is one type with all of its parts in this document.
type typeGroup struct {
	sym   *frontend.Symbol
	nodes []*frontend.SyntaxNode
}

// typeGroups lists the type declarations of root in source order, parts of
// a partial type merged into the first one.
func (t *translator) typeGroups(root *frontend.SyntaxNode) []*typeGroup {
	var out []*typeGroup
	byKey := make(map[string]*typeGroup)
	for _, n := range root.TypeDeclarations() {
		sym := t.model.DeclaredSymbol(n)
		if sym == nil {
			t.unsupported(n, "a type declaration without a symbol")
			continue
		}
		if g, ok := byKey[sym.Key]; ok {
			g.nodes = append(g.nodes, n)
			continue
		}
		g := &typeGroup{sym: sym, nodes: []*frontend.SyntaxNode{n}}
		byKey[sym.Key] = g
		out = append(out, g)
	}
	return out
}

// members lists the member declarations of every part, nested types excluded.
func (g *typeGroup) members() []*frontend.SyntaxNode {
	var out []*frontend.SyntaxNode
	for _, n := range g.nodes {
		for _, c := range n.Children {
			if c != nil && !c.Kind.IsTypeDeclaration() {
				out = append(out, c)
			}
		}
	}
	return out
}

func (g *typeGroup) docNode() *frontend.SyntaxNode {
	for _, n := range g.nodes {
		if len(n.Doc) > 0 {
			return n
		}
	}
	return nil
}

func (t *translator) typeDeclaration(g *typeGroup) tsast.Statement {
	if g.sym.HasAttribute(frontend.AttrImported) {
		t.report(diag.TrImportedTypeSkipped, g.nodes[0], "%s is imported and not emitted", g.sym.FullName())
		return nil
	}
	switch g.sym.Kind {
	case frontend.SymClass, frontend.SymStruct:
		return withDoc(t.class(g), g.docNode())
	case frontend.SymInterface:
		return withDoc(t.iface(g), g.docNode())
	case frontend.SymEnum:
		return withDoc(t.enum(g), g.docNode())
	}
	t.unsupported(g.nodes[0], g.sym.Kind.String())
	return nil
}

func typeParams(names []string) []*tsast.TypeParameter {
	if len(names) == 0 {
		return nil
	}
	out := make([]*tsast.TypeParameter, len(names))
	for i, name := range names {
		out[i] = &tsast.TypeParameter{Name: tsast.Ident(name)}
	}
	return out
}

func (t *translator) class(g *typeGroup) *tsast.ClassDeclaration {
	sym, at := g.sym, g.nodes[0]
	c := &tsast.ClassDeclaration{
		Modifiers:  tsast.Modifiers{Export: true, Abstract: sym.Is(frontend.ModAbstract)},
		Name:       tsast.Ident(t.scriptName(sym)),
		TypeParams: typeParams(sym.TypeParameters),
	}
	if b := sym.BaseType; b != nil && b.Key() != objectKey {
		if b.IsResolved() {
			c.Extends = t.typeOf(b, at)
		} else {
			t.unresolvedName(at, b.Name)
		}
	}
	for _, i := range sym.Interfaces {
		c.Implements = append(c.Implements, t.typeOf(i, at))
	}

	var (
		members []tsast.ClassMember
		keys    []string
		alts    = make(map[string][]tsast.ClassMember)
	)
	for _, n := range g.members() {
		msym := t.model.DeclaredSymbol(n)
		out := t.classMember(n, msym, c.Extends != nil)
		if len(out) == 0 {
			continue
		}
		if alt, ok := t.tables.Alternates.Lookup(msym.Key); ok {
			alts[alt.Canonical] = append(alts[alt.Canonical], out...)
			continue
		}
		for _, m := range out {
			members = append(members, m)
			keys = append(keys, msym.Key)
		}
	}
	// overload signatures go right before their implementation
	for i, m := range members {
		c.Members = append(c.Members, alts[keys[i]]...)
		c.Members = append(c.Members, m)
	}
	return c
}

func access(a frontend.Accessibility) tsast.Accessibility {
	switch a {
	case frontend.AccessPrivate:
		return tsast.AccessPrivate
	case frontend.AccessProtected:
		return tsast.AccessProtected
	}
	return tsast.AccessNone
}

func memberModifiers(s *frontend.Symbol) tsast.Modifiers {
	return tsast.Modifiers{
		Access:   access(s.Access),
		Static:   s.Is(frontend.ModStatic) || s.Is(frontend.ModConst),
		Abstract: s.Is(frontend.ModAbstract),
		Readonly: s.Is(frontend.ModReadOnly) || s.Is(frontend.ModConst),
	}
}

func (t *translator) classMember(n *frontend.SyntaxNode, sym *frontend.Symbol, derived bool) []tsast.ClassMember {
	switch n.Kind {
	case frontend.SynOperator:
		// reported by validation
		return nil
	case frontend.SynUnsupported:
		t.unsupported(n, n.Token)
		return nil
	}
	if sym == nil {
		t.unsupported(n, "a "+n.Kind.String()+" declaration without a symbol")
		return nil
	}
	if _, ok := t.tables.Inline.Lookup(sym.Key); ok {
		// every use is inlined
		return nil
	}

	name := tsast.Ident(t.scriptName(sym))
	switch n.Kind {
	case frontend.SynField:
		init := t.exprOpt(n.Child(0))
		if init == nil {
			init = t.defaultValue(sym.Type)
		}
		return one(withDoc(&tsast.PropertyDeclaration{
			Modifiers: memberModifiers(sym),
			Name:      name,
			Type:      t.typeOf(sym.Type, n),
			Init:      init,
		}, n))
	case frontend.SynProperty:
		return t.property(n, sym, name)
	case frontend.SynMethod:
		if sym.Is(frontend.ModExtern) {
			return nil
		}
		m := &tsast.MethodDeclaration{
			Modifiers:  memberModifiers(sym),
			Name:       name,
			TypeParams: typeParams(sym.TypeParameters),
			Params:     t.params(sym, n),
			ReturnType: t.typeOf(sym.Type, n),
		}
		m.Modifiers.Readonly = false
		if body := n.Child(0); body != nil {
			m.Body = t.block(body)
		}
		return one(withDoc(m, n))
	case frontend.SynConstructor:
		return t.constructor(n, sym, derived)
	}
	t.unsupported(n, n.Kind.String())
	return nil
}

func one[N tsast.ClassMember](m N) []tsast.ClassMember { return []tsast.ClassMember{m} }

func (t *translator) property(n *frontend.SyntaxNode, sym *frontend.Symbol, name *tsast.Identifier) []tsast.ClassMember {
	var get, set, init *frontend.SyntaxNode
	for _, c := range n.Children {
		switch {
		case c == nil:
		case c.Kind == frontend.SynAccessorGet:
			get = c
		case c.Kind == frontend.SynAccessorSet:
			set = c
		default:
			init = c
		}
	}
	mods := memberModifiers(sym)
	if get.Child(0) == nil && set.Child(0) == nil {
		x := t.exprOpt(init)
		if x == nil {
			x = t.defaultValue(sym.Type)
		}
		mods.Readonly = !sym.HasSetter
		return one(withDoc(&tsast.PropertyDeclaration{Modifiers: mods, Name: name, Type: t.typeOf(sym.Type, n), Init: x}, n))
	}
	if init != nil {
		t.unsupported(init, "an initializer on a property with accessor bodies")
	}

	mods.Readonly = false
	var out []tsast.ClassMember
	if get != nil {
		out = append(out, withDoc(&tsast.GetAccessor{
			Modifiers:  mods,
			Name:       name,
			ReturnType: t.typeOf(sym.Type, n),
			Body:       t.block(get.Child(0)),
		}, n))
	}
	if set != nil {
		value := localName(t.model.DeclaredSymbol(set), "value")
		s := &tsast.SetAccessor{
			Modifiers: mods,
			Name:      name,
			Param:     tsast.Param(value, t.typeOf(sym.Type, n)),
			Body:      t.block(set.Child(0)),
		}
		if get == nil {
			out = append(out, withDoc(s, n))
		} else {
			out = append(out, s)
		}
	}
	return out
}

func (t *translator) constructor(n *frontend.SyntaxNode, sym *frontend.Symbol, derived bool) []tsast.ClassMember {
	if sym.Is(frontend.ModStatic) {
		t.unsupported(n, "a static constructor")
		return nil
	}
	body := t.block(n.Child(1))
	switch init := n.Child(0); {
	case init != nil && init.Token == "this":
		t.unsupported(init, "constructor chaining with this(...)")
	case init != nil:
		super := &tsast.CallExpression{Callee: &tsast.SuperExpression{}, Args: t.exprs(init.Children)}
		body.Statements = append([]tsast.Statement{tsast.ExprStmt(super)}, body.Statements...)
	case derived:
		body.Statements = append([]tsast.Statement{tsast.ExprStmt(tsast.Call(&tsast.SuperExpression{}))}, body.Statements...)
	}
	return one(withDoc(&tsast.ConstructorDeclaration{
		Modifiers: tsast.Modifiers{Access: access(sym.Access)},
		Params:    t.params(sym, n),
		Body:      body,
	}, n))
}

func (t *translator) params(sym *frontend.Symbol, at *frontend.SyntaxNode) []*tsast.Parameter {
	out := make([]*tsast.Parameter, 0, len(sym.Parameters))
	for _, p := range sym.Parameters {
		if p.Is(frontend.ModRef) {
			t.report(diag.TrUnsupportedParameter, at, "ref and out parameters cannot be translated (%s)", p.Name)
		}
		tp := &tsast.Parameter{
			Name: tsast.Ident(symtab.Escape(p.Name)),
			Rest: p.Is(frontend.ModParams),
			Type: t.typeOf(p.Type, at),
		}
		if p.Default != nil {
			tp.Default = t.expr(p.Default)
		}
		out = append(out, tp)
	}
	return out
}

func (t *translator) iface(g *typeGroup) *tsast.InterfaceDeclaration {
	sym := g.sym
	d := &tsast.InterfaceDeclaration{
		Modifiers:  tsast.Modifiers{Export: true},
		Name:       tsast.Ident(t.scriptName(sym)),
		TypeParams: typeParams(sym.TypeParameters),
	}
	for _, i := range sym.Interfaces {
		d.Extends = append(d.Extends, t.typeOf(i, g.nodes[0]))
	}
	for _, n := range g.members() {
		msym := t.model.DeclaredSymbol(n)
		if msym == nil {
			t.unsupported(n, "an interface member without a symbol")
			continue
		}
		name := tsast.Ident(t.scriptName(msym))
		switch n.Kind {
		case frontend.SynProperty:
			d.Members = append(d.Members, withDoc(&tsast.PropertySignature{
				Modifiers: tsast.Modifiers{Readonly: !msym.HasSetter},
				Name:      name,
				Type:      t.typeOf(msym.Type, n),
			}, n))
		case frontend.SynMethod:
			if _, ok := t.tables.Alternates.Lookup(msym.Key); ok {
				// the implementation signature covers it
				continue
			}
			d.Members = append(d.Members, withDoc(&tsast.MethodSignature{
				Name:       name,
				TypeParams: typeParams(msym.TypeParameters),
				Params:     t.params(msym, n),
				ReturnType: t.typeOf(msym.Type, n),
			}, n))
		default:
			t.unsupported(n, "an interface "+n.Kind.String())
		}
	}
	return d
}

func (t *translator) enum(g *typeGroup) *tsast.EnumDeclaration {
	d := &tsast.EnumDeclaration{
		Modifiers: tsast.Modifiers{Export: true},
		Name:      tsast.Ident(t.scriptName(g.sym)),
	}
	for _, n := range g.members() {
		msym := t.model.DeclaredSymbol(n)
		if n.Kind != frontend.SynEnumMember || msym == nil {
			t.unsupported(n, "an enum "+n.Kind.String())
			continue
		}
		d.Members = append(d.Members, withDoc(&tsast.EnumMember{
			Name:  tsast.Ident(t.scriptName(msym)),
			Value: t.exprOpt(n.Child(0)),
		}, n))
	}
	return d
}
