package csharp

import (
	"fmt"

	"cs2ts/internal/diag"
	"cs2ts/internal/frontend"
)

var symbolKinds = map[frontend.SyntaxKind]frontend.SymbolKind{
	frontend.SynClass:       frontend.SymClass,
	frontend.SynStruct:      frontend.SymStruct,
	frontend.SynInterface:   frontend.SymInterface,
	frontend.SynEnum:        frontend.SymEnum,
	frontend.SynField:       frontend.SymField,
	frontend.SynProperty:    frontend.SymProperty,
	frontend.SynMethod:      frontend.SymMethod,
	frontend.SynOperator:    frontend.SymMethod,
	frontend.SynConstructor: frontend.SymConstructor,
	frontend.SynEnumMember:  frontend.SymEnumMember,
}

// declare builds the project-wide declarations: types first, then their
// bases, members and overrides, so that any signature can name any type.
func declare(p *project) {
	for _, t := range p.trees {
		p.declareTypes(t, t.root, "", nil)
	}
	for _, tp := range p.parts {
		p.resolveBases(tp)
	}
	object := p.lib.Ref("object")
	for _, tp := range p.parts {
		if s := tp.sym; s.BaseType == nil && (s.Kind == frontend.SymClass || s.Kind == frontend.SymStruct) {
			s.BaseType = object
		}
	}
	for _, tp := range p.parts {
		p.declareMembers(tp)
	}
	for _, tp := range p.parts {
		for _, m := range p.members[tp.sym] {
			if m.Is(frontend.ModOverride) && m.Overridden == nil {
				m.Overridden = p.overridden(m)
			}
		}
	}
}

func (p *project) declareTypes(t *tree, n *frontend.SyntaxNode, ns string, container *frontend.Symbol) {
	for _, c := range n.Children {
		switch {
		case c == nil:
		case c.Kind == frontend.SynNamespace:
			inner := join(ns, c.Name)
			p.addNamespace(inner)
			p.declareTypes(t, c, inner, nil)
		case c.Kind.IsTypeDeclaration():
			sym := p.declareType(t, c, ns, container)
			p.declareTypes(t, c, ns, sym)
		}
	}
}

func (p *project) declareType(t *tree, n *frontend.SyntaxNode, ns string, container *frontend.Symbol) *frontend.Symbol {
	info := t.decls[n]
	if info == nil {
		info = &declInfo{}
	}
	full := join(ns, n.Name)
	if container != nil {
		full = container.FullName() + "." + n.Name
		ns = container.Namespace
	}
	key := frontend.TypeKey(full, len(info.typeParams))
	loc := t.doc.Location(n.Span)
	tp := &typePart{node: n, t: t, ns: ns}
	p.parts = append(p.parts, tp)

	if sym, ok := p.types[key]; ok {
		if !sym.Is(frontend.ModPartial) || !info.mods.Has(frontend.ModPartial) {
			where := ns
			if container != nil {
				where = container.FullName()
			}
			if where == "" {
				where = "<global namespace>"
			}
			p.report(t, diag.External("CS0101", diag.SevError, loc,
				fmt.Sprintf("The namespace '%s' already contains a definition for '%s'", where, n.Name)))
		}
		sym.Locations = append(sym.Locations, loc)
		sym.Attributes = append(sym.Attributes, info.attrs...)
		sym.Modifiers |= info.mods
		sym.Constraints = append(sym.Constraints, info.constraints...)
		if info.hasAccess {
			sym.Access = info.access
		}
		tp.sym = sym
		p.declared[n] = sym
		return sym
	}

	sym := &frontend.Symbol{
		Key:            key,
		Kind:           symbolKinds[n.Kind],
		Name:           n.Name,
		Namespace:      ns,
		Container:      container,
		Access:         frontend.AccessInternal,
		Modifiers:      info.mods,
		TypeParameters: info.typeParams,
		Constraints:    info.constraints,
		Attributes:     info.attrs,
		Locations:      []*diag.Location{loc},
	}
	if container != nil {
		sym.Access = frontend.AccessPrivate
	}
	if info.hasAccess {
		sym.Access = info.access
	}
	p.types[key] = sym
	tp.sym = sym
	p.declared[n] = sym
	return sym
}

func (p *project) resolveBases(tp *typePart) {
	sym := tp.sym
	if sym.Kind == frontend.SymEnum {
		return
	}
	sc := tp.scope(p)
	for i, b := range tp.t.decls[tp.node].bases {
		ref := sc.resolveType(b)
		isInterface := ref.Symbol != nil && ref.Symbol.Kind == frontend.SymInterface
		if sym.Kind == frontend.SymClass && !isInterface && sym.BaseType == nil && i == 0 {
			sym.BaseType = ref
			continue
		}
		if !containsType(sym.Interfaces, ref) {
			sym.Interfaces = append(sym.Interfaces, ref)
		}
	}
}

func containsType(list []*frontend.TypeRef, r *frontend.TypeRef) bool {
	for _, x := range list {
		if x.String() == r.String() && x.Key() == r.Key() {
			return true
		}
	}
	return false
}

func (p *project) declareMembers(tp *typePart) {
	owner := tp.sym
	sc := tp.scope(p)
	seen := make(map[string]bool)
	for _, m := range p.members[owner] {
		seen[m.Key] = true
	}
	for _, n := range tp.node.Children {
		if n == nil || n.Kind.IsTypeDeclaration() {
			continue
		}
		kind, ok := symbolKinds[n.Kind]
		info := tp.t.decls[n]
		if !ok || info == nil {
			continue
		}
		m := p.member(n, kind, info, owner, sc.withTypeParams(info.typeParams), tp.t)
		if seen[m.Key] {
			p.report(tp.t, diag.External("CS0111", diag.SevError, m.Location(),
				fmt.Sprintf("Type '%s' already defines a member called '%s' with the same parameter types", owner.Name, m.Name)))
		} else {
			seen[m.Key] = true
			p.members[owner] = append(p.members[owner], m)
		}
		p.declared[n] = m
	}
}

func (p *project) member(n *frontend.SyntaxNode, kind frontend.SymbolKind, info *declInfo, owner *frontend.Symbol, sc *scope, t *tree) *frontend.Symbol {
	m := &frontend.Symbol{
		Kind:           kind,
		Name:           n.Name,
		Namespace:      owner.Namespace,
		Container:      owner,
		Access:         frontend.AccessPrivate,
		Modifiers:      info.mods,
		TypeParameters: info.typeParams,
		Constraints:    info.constraints,
		Attributes:     info.attrs,
		Locations:      []*diag.Location{t.doc.Location(n.Span)},
		HasGetter:      info.getter,
		HasSetter:      info.setter,
	}
	switch {
	case owner.Kind == frontend.SymInterface, kind == frontend.SymEnumMember:
		m.Access = frontend.AccessPublic
	case info.hasAccess:
		m.Access = info.access
	}
	switch kind {
	case frontend.SymConstructor:
		m.Name = owner.Name
	case frontend.SymEnumMember:
		m.Modifiers |= frontend.ModConst | frontend.ModStatic
		m.Type = &frontend.TypeRef{Symbol: owner, Name: owner.Name}
	default:
		m.Type = sc.resolveType(info.typ)
	}
	for _, pi := range info.params {
		m.Parameters = append(m.Parameters, &frontend.Symbol{
			Kind:      frontend.SymParameter,
			Name:      pi.name,
			Namespace: owner.Namespace,
			Container: m,
			Modifiers: pi.mods,
			Type:      sc.resolveType(pi.typ),
			Default:   pi.def,
			Locations: m.Locations,
		})
	}
	m.Key = frontend.MemberKey(kind, owner, m.Name, m.Parameters)
	return m
}

// overridden finds the base member m replaces: same kind, name and arity.
func (p *project) overridden(m *frontend.Symbol) *frontend.Symbol {
	owner := m.Container
	if owner == nil || owner.BaseType == nil {
		return nil
	}
	for _, s := range p.supertypes(owner.BaseType.Symbol) {
		for _, b := range p.membersOf(s) {
			if b.Kind == m.Kind && b.Name == m.Name && len(b.Parameters) == len(m.Parameters) {
				return b
			}
		}
	}
	return nil
}
