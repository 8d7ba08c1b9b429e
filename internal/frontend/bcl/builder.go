package bcl

import (
	"cs2ts/internal/frontend"
)

type paramSpec struct {
	name, typ string
	params    bool
}

func param(name, typ string) paramSpec { return paramSpec{name: name, typ: typ} }

// params declares a params array of typ.
func params(name, typ string) paramSpec { return paramSpec{name: name, typ: typ, params: true} }

type builder struct {
	lib   *Library
	owner *frontend.Symbol
	out   []*frontend.Symbol
}

type memberRef struct{ sym *frontend.Symbol }

func (m memberRef) attrs(as ...frontend.Attribute) memberRef {
	m.sym.Attributes = append(m.sym.Attributes, as...)
	return m
}

func (b *builder) ref(name string) *frontend.TypeRef {
	if name == "void" {
		return nil
	}
	for _, tp := range b.owner.TypeParameters {
		if tp == name {
			return &frontend.TypeRef{Name: name, IsTypeParameter: true}
		}
	}
	return b.lib.Ref(name)
}

func (b *builder) add(kind frontend.SymbolKind, name, typ string, mods frontend.Modifiers, ps []paramSpec) memberRef {
	sym := &frontend.Symbol{
		Kind:      kind,
		Name:      name,
		Namespace: b.owner.Namespace,
		Container: b.owner,
		Access:    frontend.AccessPublic,
		Modifiers: mods,
		Type:      b.ref(typ),
		External:  true,
	}
	for _, p := range ps {
		psym := &frontend.Symbol{
			Kind:      frontend.SymParameter,
			Name:      p.name,
			Container: sym,
			Type:      b.ref(p.typ),
			External:  true,
		}
		if p.params {
			psym.Type = &frontend.TypeRef{Elem: psym.Type}
			psym.Modifiers |= frontend.ModParams
		}
		sym.Parameters = append(sym.Parameters, psym)
	}
	sym.Key = frontend.MemberKey(kind, b.owner, name, sym.Parameters)
	b.out = append(b.out, sym)
	return memberRef{sym}
}

func (b *builder) ctor(ps ...paramSpec) memberRef {
	return b.add(frontend.SymConstructor, b.owner.Name, "void", 0, ps)
}

func (b *builder) method(name, ret string, ps ...paramSpec) memberRef {
	return b.add(frontend.SymMethod, name, ret, 0, ps)
}

func (b *builder) static(name, ret string, ps ...paramSpec) memberRef {
	return b.add(frontend.SymMethod, name, ret, frontend.ModStatic, ps)
}

func (b *builder) field(name, typ string, mods frontend.Modifiers) memberRef {
	return b.add(frontend.SymField, name, typ, mods, nil)
}

func (b *builder) property(name, typ string) memberRef {
	m := b.add(frontend.SymProperty, name, typ, 0, nil)
	m.sym.HasGetter = true
	return m
}

func build() *Library {
	lib := &Library{
		types:   make(map[string]*frontend.Symbol, len(catalogue)),
		members: make(map[string][]*frontend.Symbol, len(catalogue)),
		aliases: keywords,
	}
	// types first so member signatures can refer to any of them
	for _, spec := range catalogue {
		full := spec.ns + "." + spec.name
		sym := &frontend.Symbol{
			Key:        frontend.TypeKey(full, spec.arity),
			Kind:       spec.kind,
			Name:       spec.name,
			Namespace:  spec.ns,
			Access:     frontend.AccessPublic,
			Attributes: spec.attrs,
			External:   true,
		}
		if spec.static {
			sym.Modifiers |= frontend.ModStatic
		}
		if spec.arity == 1 {
			sym.TypeParameters = []string{"T"}
		}
		lib.types[full] = sym
	}
	object := lib.types["System.Object"]
	for _, spec := range catalogue {
		sym := lib.types[spec.ns+"."+spec.name]
		if sym != object && spec.kind == frontend.SymClass {
			sym.BaseType = &frontend.TypeRef{Symbol: object, Name: "object"}
		}
		if spec.members == nil {
			continue
		}
		b := &builder{lib: lib, owner: sym}
		spec.members(b)
		lib.members[sym.Key] = b.out
	}
	return lib
}
