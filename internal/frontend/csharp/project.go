package csharp

import (
	"fmt"
	"strings"

	"cs2ts/internal/diag"
	"cs2ts/internal/frontend"
	"cs2ts/internal/frontend/bcl"
	"cs2ts/internal/source"
)

// project holds the declarations of every document. It is written by
// declare and read-only afterwards.
type project struct {
	lib        *bcl.Library
	trees      []*tree
	types      map[string]*frontend.Symbol
	members    map[*frontend.Symbol][]*frontend.Symbol
	namespaces map[string]bool
	declared   map[*frontend.SyntaxNode]*frontend.Symbol
	parts      []*typePart
	diags      map[source.FileID][]*diag.Diagnostic
}

// typePart is one declaration of a type; partial types have several.
type typePart struct {
	sym  *frontend.Symbol
	node *frontend.SyntaxNode
	t    *tree
	ns   string
}

func (tp *typePart) scope(p *project) *scope {
	return &scope{p: p, ns: tp.ns, usings: tp.t.usings, typ: tp.sym}
}

func newProject(lib *bcl.Library, trees []*tree) *project {
	p := &project{
		lib:        lib,
		trees:      trees,
		types:      make(map[string]*frontend.Symbol),
		members:    make(map[*frontend.Symbol][]*frontend.Symbol),
		namespaces: make(map[string]bool),
		declared:   make(map[*frontend.SyntaxNode]*frontend.Symbol),
		diags:      make(map[source.FileID][]*diag.Diagnostic),
	}
	for _, ns := range lib.Namespaces() {
		p.addNamespace(ns)
	}
	return p
}

func (p *project) addNamespace(ns string) {
	for ns != "" {
		p.namespaces[ns] = true
		i := strings.LastIndexByte(ns, '.')
		if i < 0 {
			break
		}
		ns = ns[:i]
	}
}

func (p *project) report(t *tree, d *diag.Diagnostic) {
	p.diags[t.doc.ID] = append(p.diags[t.doc.ID], d)
}

// findType looks a type up by full name and arity, project first.
func (p *project) findType(full string, arity int) *frontend.Symbol {
	if s, ok := p.types[frontend.TypeKey(full, arity)]; ok {
		return s
	}
	if s := p.lib.Type(full); s != nil && len(s.TypeParameters) == arity {
		return s
	}
	return nil
}

// membersOf lists the members declared directly in t.
func (p *project) membersOf(t *frontend.Symbol) []*frontend.Symbol {
	if t == nil {
		return nil
	}
	if t.External {
		return p.lib.Members(t)
	}
	return p.members[t]
}

// supertypes lists t, its base classes and its interfaces, nearest first.
func (p *project) supertypes(t *frontend.Symbol) []*frontend.Symbol {
	var out []*frontend.Symbol
	seen := make(map[*frontend.Symbol]bool)
	queue := []*frontend.Symbol{t}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if s == nil || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
		if s.BaseType != nil {
			queue = append(queue, s.BaseType.Symbol)
		}
		for _, i := range s.Interfaces {
			queue = append(queue, i.Symbol)
		}
	}
	if t != nil && t.Kind == frontend.SymInterface {
		out = append(out, p.lib.Type("object"))
	}
	return out
}

// lookupMembers finds the members named name on t or its supertypes.
// A base method is hidden by a derived one with the same parameters.
func (p *project) lookupMembers(t *frontend.Symbol, name string) []*frontend.Symbol {
	var out []*frontend.Symbol
	sigs := make(map[string]bool)
	for _, s := range p.supertypes(t) {
		for _, m := range p.membersOf(s) {
			if m.Name != name || m.Kind == frontend.SymConstructor {
				continue
			}
			sig := signature(m)
			if sigs[sig] {
				continue
			}
			sigs[sig] = true
			out = append(out, m)
		}
		if len(out) > 0 && out[0].Kind != frontend.SymMethod {
			break
		}
	}
	return out
}

// signature identifies a member by kind, name and parameter types.
func signature(m *frontend.Symbol) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:%s(", m.Kind, m.Name)
	for _, prm := range m.Parameters {
		b.WriteString(prm.Type.String())
		b.WriteByte(',')
	}
	b.WriteByte(')')
	return b.String()
}

// constructors lists the instance constructors declared by t.
func (p *project) constructors(t *frontend.Symbol) []*frontend.Symbol {
	var out []*frontend.Symbol
	for _, m := range p.membersOf(t) {
		if m.Kind == frontend.SymConstructor && !m.Is(frontend.ModStatic) {
			out = append(out, m)
		}
	}
	return out
}

// scope is the context names are resolved in.
type scope struct {
	p          *project
	ns         string
	usings     []string
	typ        *frontend.Symbol
	typeParams []string
}

func (s *scope) withTypeParams(names []string) *scope {
	if len(names) == 0 {
		return s
	}
	c := *s
	c.typeParams = append(append([]string(nil), s.typeParams...), names...)
	return &c
}

func (s *scope) isTypeParam(name string) bool {
	for _, tp := range s.typeParams {
		if tp == name {
			return true
		}
	}
	for t := s.typ; t != nil; t = t.Container {
		for _, tp := range t.TypeParameters {
			if tp == name {
				return true
			}
		}
	}
	return false
}

// prefixes are the enclosing namespaces, innermost first, ending with the
// global namespace.
func (s *scope) prefixes() []string {
	var out []string
	for ns := s.ns; ns != ""; {
		out = append(out, ns)
		i := strings.LastIndexByte(ns, '.')
		if i < 0 {
			break
		}
		ns = ns[:i]
	}
	return append(out, "")
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// lookupType resolves a written type name following C# lookup order:
// nested types, enclosing namespaces, then using directives.
func (s *scope) lookupType(name string, arity int) *frontend.Symbol {
	p := s.p
	if arity == 0 && p.lib.IsKeyword(name) {
		return p.lib.Type(name)
	}
	if !strings.Contains(name, ".") {
		for c := s.typ; c != nil; c = c.ContainingType() {
			for _, b := range p.supertypes(c) {
				if t := p.findType(b.FullName()+"."+name, arity); t != nil {
					return t
				}
			}
		}
	}
	for _, prefix := range s.prefixes() {
		if t := p.findType(join(prefix, name), arity); t != nil {
			return t
		}
	}
	for _, u := range s.usings {
		if t := p.findType(u+"."+name, arity); t != nil {
			return t
		}
	}
	return nil
}

// namespace resolves name, as written here, to the full namespace it names.
func (s *scope) namespace(name string) (string, bool) {
	for _, prefix := range s.prefixes() {
		if full := join(prefix, name); s.p.namespaces[full] {
			return full, true
		}
	}
	return "", false
}

func (s *scope) resolveType(ts *typeSyntax) *frontend.TypeRef {
	switch {
	case ts == nil || ts.isVoid():
		return nil
	case ts.elem != nil:
		return &frontend.TypeRef{Elem: s.resolveType(ts.elem)}
	case ts.opaque:
		return &frontend.TypeRef{Name: ts.text}
	}
	var args []*frontend.TypeRef
	for _, a := range ts.args {
		args = append(args, s.resolveType(a))
	}
	if len(args) == 0 && s.isTypeParam(ts.name) {
		return &frontend.TypeRef{Name: ts.name, IsTypeParameter: true}
	}
	sym := s.lookupType(ts.name, len(args))
	if sym == nil {
		return &frontend.TypeRef{Name: ts.name, Args: args}
	}
	display := sym.Name
	if s.p.lib.IsKeyword(ts.name) {
		display = ts.name
	}
	return &frontend.TypeRef{Symbol: sym, Name: display, Args: args}
}
