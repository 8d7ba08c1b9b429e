package testkit

import (
	"cs2ts/internal/diag"
	"cs2ts/internal/frontend"
	"cs2ts/internal/frontend/bcl"
	"cs2ts/internal/source"
)

// Predefined types from the base class library.
var (
	Int     = bcl.Default().Ref("int")
	Double  = bcl.Default().Ref("double")
	String  = bcl.Default().Ref("string")
	Boolean = bcl.Default().Ref("bool")
	Object  = bcl.Default().Ref("object")
)

// Lib is the base class library every test project sees.
var Lib = bcl.Default()

// ListOf is System.Collections.Generic.List<elem>.
func ListOf(elem *frontend.TypeRef) *frontend.TypeRef {
	return Lib.Ref("System.Collections.Generic.List", elem)
}

// ArrayOf is the C# array type elem[].
func ArrayOf(elem *frontend.TypeRef) *frontend.TypeRef {
	return &frontend.TypeRef{Elem: elem}
}

// TypeParam refers to a generic type parameter.
func TypeParam(name string) *frontend.TypeRef {
	return &frontend.TypeRef{Name: name, IsTypeParameter: true}
}

// Unresolved is a type name the front-end could not bind.
func Unresolved(name string) *frontend.TypeRef {
	return &frontend.TypeRef{Name: name}
}

// LibMember returns the catalogue member of typeName with the given key suffix,
// e.g. LibMember("System.Console", "WriteLine(System.String)").
func LibMember(typeName, suffix string) *frontend.Symbol {
	t := Lib.Type(typeName)
	want := t.Key[len("T:"):] + "." + suffix
	for _, m := range Lib.Members(t) {
		if m.Key[len("M:"):] == want {
			return m
		}
	}
	panic("testkit: no member " + typeName + "." + suffix)
}

// Param declares a parameter symbol for Method, Constructor or Lambda.
func Param(name string, typ *frontend.TypeRef) *frontend.Symbol {
	return &frontend.Symbol{Kind: frontend.SymParameter, Name: name, Type: typ}
}

// LocalSym declares a local variable symbol for Var, Const or ForEach.
func LocalSym(name string, typ *frontend.TypeRef) *frontend.Symbol {
	return &frontend.Symbol{Kind: frontend.SymLocal, Name: name, Type: typ}
}

// Doc builds one document of a Project.
type Doc struct {
	project *Project
	doc     *frontend.Document
	root    *frontend.SyntaxNode
	model   *Model
	diags   []*diag.Diagnostic
	err     error
	pos     uint32
	nss     map[string]*frontend.SyntaxNode
}

// Document returns the front-end document being built.
func (d *Doc) Document() *frontend.Document { return d.doc }

// Root returns the compilation-unit node.
func (d *Doc) Root() *frontend.SyntaxNode { return d.root }

// Model returns the semantic model of the document.
func (d *Doc) Model() *Model { return d.model }

// Fail makes every query for this document return err.
func (d *Doc) Fail(err error) *Doc {
	d.err = err
	return d
}

// Report adds a front-end diagnostic at the start of the document.
func (d *Doc) Report(id string, sev diag.Severity, msg string) *Doc {
	d.diags = append(d.diags, diag.External(id, sev, d.doc.Location(source.Span{File: d.doc.ID}), msg))
	return d
}

// Using adds a using directive for ns.
func (d *Doc) Using(ns string) *Doc {
	d.root.Children = append(d.root.Children, d.node(frontend.SynUsing, ns))
	return d
}

// span hands out increasing offsets so that declaration order is source order.
func (d *Doc) span() source.Span {
	d.pos++
	return source.Span{File: d.doc.ID, Start: d.pos, End: d.pos}
}

func (d *Doc) node(kind frontend.SyntaxKind, name string, children ...*frontend.SyntaxNode) *frontend.SyntaxNode {
	return &frontend.SyntaxNode{Kind: kind, Span: d.span(), Name: name, Children: children}
}

func (d *Doc) namespace(ns string) *frontend.SyntaxNode {
	if ns == "" {
		return d.root
	}
	if d.nss == nil {
		d.nss = make(map[string]*frontend.SyntaxNode)
	}
	n, ok := d.nss[ns]
	if !ok {
		n = d.node(frontend.SynNamespace, ns)
		d.nss[ns] = n
		d.root.Children = append(d.root.Children, n)
	}
	return n
}

var typeKinds = map[frontend.SyntaxKind]frontend.SymbolKind{
	frontend.SynClass:     frontend.SymClass,
	frontend.SynStruct:    frontend.SymStruct,
	frontend.SynInterface: frontend.SymInterface,
	frontend.SynEnum:      frontend.SymEnum,
}

func (d *Doc) declareType(kind frontend.SyntaxKind, ns, name string, parent *frontend.SyntaxNode, container *frontend.Symbol) *Type {
	n := d.node(kind, name)
	parent.Children = append(parent.Children, n)
	full := name
	if container != nil {
		full = container.FullName() + "." + name
		ns = container.Namespace
	} else if ns != "" {
		full = ns + "." + name
	}
	sym := &frontend.Symbol{
		Key:       frontend.TypeKey(full, 0),
		Kind:      typeKinds[kind],
		Name:      name,
		Namespace: ns,
		Container: container,
		Access:    frontend.AccessPublic,
		Locations: []*diag.Location{d.doc.Location(n.Span)},
	}
	if kind == frontend.SynClass || kind == frontend.SynStruct {
		sym.BaseType = Object
	}
	d.model.declared[n] = sym
	return &Type{doc: d, Sym: sym, Node: n}
}

// Class declares a class in namespace ns; an empty ns is the global namespace.
func (d *Doc) Class(ns, name string) *Type {
	return d.declareType(frontend.SynClass, ns, name, d.namespace(ns), nil)
}

// Struct declares a struct like Class.
func (d *Doc) Struct(ns, name string) *Type {
	return d.declareType(frontend.SynStruct, ns, name, d.namespace(ns), nil)
}

// Interface declares an interface like Class.
func (d *Doc) Interface(ns, name string) *Type {
	return d.declareType(frontend.SynInterface, ns, name, d.namespace(ns), nil)
}

// Enum declares an enum like Class.
func (d *Doc) Enum(ns, name string) *Type {
	return d.declareType(frontend.SynEnum, ns, name, d.namespace(ns), nil)
}

// Type builds a type declaration and its members.
type Type struct {
	doc  *Doc
	Sym  *frontend.Symbol
	Node *frontend.SyntaxNode
}

// Ref refers to the type, instantiated with args when it is generic.
func (t *Type) Ref(args ...*frontend.TypeRef) *frontend.TypeRef {
	return &frontend.TypeRef{Symbol: t.Sym, Name: t.Sym.Name, Args: args}
}

// Nested declares a type of kind inside t.
func (t *Type) Nested(kind frontend.SyntaxKind, name string) *Type {
	return t.doc.declareType(kind, "", name, t.Node, t.Sym)
}

// PartialIn declares another part of the same type in doc.
func (t *Type) PartialIn(doc *Doc) *Type {
	n := doc.node(t.Node.Kind, t.Sym.Name)
	doc.namespace(t.Sym.Namespace).Children = append(doc.namespace(t.Sym.Namespace).Children, n)
	t.Sym.Modifiers |= frontend.ModPartial
	t.Sym.Locations = append(t.Sym.Locations, doc.doc.Location(n.Span))
	doc.model.declared[n] = t.Sym
	return &Type{doc: doc, Sym: t.Sym, Node: n}
}

// Attr applies attribute name with constant args.
func (t *Type) Attr(name string, args ...string) *Type {
	t.Sym.Attributes = append(t.Sym.Attributes, frontend.Attribute{Name: name, Args: args})
	return t
}

// Mods adds modifier flags.
func (t *Type) Mods(m frontend.Modifiers) *Type {
	t.Sym.Modifiers |= m
	return t
}

// Access sets the declared accessibility.
func (t *Type) Access(a frontend.Accessibility) *Type {
	t.Sym.Access = a
	return t
}

// TypeParams makes the type generic over names.
func (t *Type) TypeParams(names ...string) *Type {
	t.Sym.TypeParameters = append(t.Sym.TypeParameters, names...)
	t.Sym.Key = frontend.TypeKey(t.Sym.FullName(), len(t.Sym.TypeParameters))
	return t
}

// Extends sets the base class.
func (t *Type) Extends(base *frontend.TypeRef) *Type {
	t.Sym.BaseType = base
	return t
}

// Implements adds implemented interfaces.
func (t *Type) Implements(ifaces ...*frontend.TypeRef) *Type {
	t.Sym.Interfaces = append(t.Sym.Interfaces, ifaces...)
	return t
}

// Doc attaches /// documentation lines.
func (t *Type) Doc(lines ...string) *Type {
	t.Node.Doc = lines
	return t
}

func (t *Type) member(kind frontend.SymbolKind, syn frontend.SyntaxKind, name string, typ *frontend.TypeRef, params []*frontend.Symbol) *Member {
	n := t.doc.node(syn, name)
	t.Node.Children = append(t.Node.Children, n)
	access := frontend.AccessPrivate
	if t.Sym.Kind == frontend.SymInterface || kind == frontend.SymEnumMember {
		access = frontend.AccessPublic
	}
	sym := &frontend.Symbol{
		Kind:       kind,
		Name:       name,
		Namespace:  t.Sym.Namespace,
		Container:  t.Sym,
		Access:     access,
		Type:       typ,
		Parameters: params,
		Locations:  []*diag.Location{t.doc.doc.Location(n.Span)},
	}
	for _, p := range params {
		p.Container = sym
	}
	sym.Key = frontend.MemberKey(kind, t.Sym, name, params)
	t.doc.model.declared[n] = sym
	return &Member{t: t, Sym: sym, Node: n}
}

// Field declares a field; init may be nil.
func (t *Type) Field(name string, typ *frontend.TypeRef, init *frontend.SyntaxNode) *Member {
	m := t.member(frontend.SymField, frontend.SynField, name, typ, nil)
	m.Node.Children = []*frontend.SyntaxNode{init}
	return m
}

// Property declares an auto-property with a getter and a setter.
func (t *Type) Property(name string, typ *frontend.TypeRef) *Member {
	m := t.member(frontend.SymProperty, frontend.SynProperty, name, typ, nil)
	m.Sym.HasGetter, m.Sym.HasSetter = true, true
	m.Node.Children = []*frontend.SyntaxNode{
		{Kind: frontend.SynAccessorGet, Span: m.Node.Span, Children: []*frontend.SyntaxNode{nil}},
		{Kind: frontend.SynAccessorSet, Span: m.Node.Span, Children: []*frontend.SyntaxNode{nil}},
	}
	return m
}

// Method declares a method without a body; see Member.Body.
func (t *Type) Method(name string, ret *frontend.TypeRef, params ...*frontend.Symbol) *Member {
	m := t.member(frontend.SymMethod, frontend.SynMethod, name, ret, params)
	m.Node.Children = []*frontend.SyntaxNode{nil}
	return m
}

// Constructor declares a constructor without a body.
func (t *Type) Constructor(params ...*frontend.Symbol) *Member {
	m := t.member(frontend.SymConstructor, frontend.SynConstructor, t.Sym.Name, nil, params)
	m.Node.Children = []*frontend.SyntaxNode{nil, nil}
	return m
}

// EnumMember declares an enum member; value may be nil.
func (t *Type) EnumMember(name string, value *frontend.SyntaxNode) *Member {
	m := t.member(frontend.SymEnumMember, frontend.SynEnumMember, name, t.Ref(), nil)
	m.Sym.Modifiers |= frontend.ModConst | frontend.ModStatic
	m.Node.Children = []*frontend.SyntaxNode{value}
	return m
}

// Operator declares a user-defined operator, which cannot be translated.
func (t *Type) Operator(op string, ret *frontend.TypeRef, params ...*frontend.Symbol) *Member {
	m := t.member(frontend.SymMethod, frontend.SynOperator, "op_"+op, ret, params)
	m.Node.Token = op
	m.Sym.Modifiers |= frontend.ModOperator | frontend.ModStatic
	return m
}

// Member builds one member declaration.
type Member struct {
	t    *Type
	Sym  *frontend.Symbol
	Node *frontend.SyntaxNode
}

// Body sets the method or constructor body.
func (m *Member) Body(stmts ...*frontend.SyntaxNode) *Member {
	body := Block(stmts...)
	switch m.Node.Kind {
	case frontend.SynConstructor:
		m.Node.Children[1] = body
	default:
		m.Node.Children = []*frontend.SyntaxNode{body}
	}
	return m
}

// Getter gives a property an explicit get body; it drops the auto setter.
func (m *Member) Getter(stmts ...*frontend.SyntaxNode) *Member {
	m.Sym.HasGetter, m.Sym.HasSetter = true, false
	m.Node.Children = []*frontend.SyntaxNode{{Kind: frontend.SynAccessorGet, Span: m.Node.Span, Children: []*frontend.SyntaxNode{Block(stmts...)}}}
	return m
}

// Setter adds an explicit set body; value is the implicit parameter.
func (m *Member) Setter(value *frontend.Symbol, stmts ...*frontend.SyntaxNode) *Member {
	m.Sym.HasSetter = true
	value.Container = m.Sym
	set := &frontend.SyntaxNode{Kind: frontend.SynAccessorSet, Span: m.Node.Span, Children: []*frontend.SyntaxNode{Block(stmts...)}}
	m.t.doc.model.declared[set] = value
	m.Node.Children = append(m.Node.Children, set)
	return m
}

// Initializer sets an auto-property initializer.
func (m *Member) Initializer(x *frontend.SyntaxNode) *Member {
	m.Node.Children = append(m.Node.Children, x)
	return m
}

// Base adds a base(...) constructor initializer bound to ctor.
func (m *Member) Base(ctor *frontend.Symbol, args ...*frontend.SyntaxNode) *Member {
	init := &frontend.SyntaxNode{Kind: frontend.SynCtorInitializer, Span: m.Node.Span, Token: "base", Children: args}
	m.t.doc.model.referenced[init] = ctor
	m.Node.Children[0] = init
	return m
}

// Attr applies attribute name with constant args.
func (m *Member) Attr(name string, args ...string) *Member {
	m.Sym.Attributes = append(m.Sym.Attributes, frontend.Attribute{Name: name, Args: args})
	return m
}

// Mods adds modifier flags.
func (m *Member) Mods(mods frontend.Modifiers) *Member {
	m.Sym.Modifiers |= mods
	return m
}

// Access sets the declared accessibility.
func (m *Member) Access(a frontend.Accessibility) *Member {
	m.Sym.Access = a
	return m
}

// Public is Access(frontend.AccessPublic).
func (m *Member) Public() *Member { return m.Access(frontend.AccessPublic) }

// Doc attaches /// documentation lines.
func (m *Member) Doc(lines ...string) *Member {
	m.Node.Doc = lines
	return m
}

// Overrides marks the member as an override of base.
func (m *Member) Overrides(base *frontend.Symbol) *Member {
	m.Sym.Overridden = base
	m.Sym.Modifiers |= frontend.ModOverride
	return m
}
