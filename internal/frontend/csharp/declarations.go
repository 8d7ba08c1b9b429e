package csharp

import (
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"cs2ts/internal/diag"
	"cs2ts/internal/frontend"
)

var typeDeclKinds = map[string]frontend.SyntaxKind{
	"class_declaration":     frontend.SynClass,
	"struct_declaration":    frontend.SynStruct,
	"interface_declaration": frontend.SynInterface,
	"enum_declaration":      frontend.SynEnum,
}

func (c *converter) compilationUnit(root sitter.Node) *frontend.SyntaxNode {
	unit := c.node(frontend.SynCompilationUnit, root)
	c.declarations(unit, root)
	return unit
}

// declarations converts the children of a compilation unit, namespace
// body or type body into children of parent.
func (c *converter) declarations(parent *frontend.SyntaxNode, list sitter.Node) {
	target := parent
	var doc []string
	for i := range list.NamedChildCount() {
		n := list.NamedChild(i)
		switch t := n.Type(); {
		case t == "comment":
			if line, ok := docLine(c.text(n)); ok {
				doc = append(doc, line)
			}
			continue
		case strings.HasPrefix(t, "preproc"), t == "ERROR", t == "extern_alias_directive", t == "attribute_list":
			continue
		case t == "using_directive":
			if u := c.using(n); u != nil {
				target.Children = append(target.Children, u)
			}
		case t == "namespace_declaration":
			target.Children = append(target.Children, c.namespace(n))
		case t == "file_scoped_namespace_declaration":
			ns := c.namespace(n)
			target.Children = append(target.Children, ns)
			// the rest of the file belongs to the namespace
			target = ns
		default:
			target.Children = append(target.Children, c.member(n, cleanDoc(doc))...)
		}
		doc = nil
	}
}

func (c *converter) using(n sitter.Node) *frontend.SyntaxNode {
	if c.hasToken(n, "static") || c.hasToken(n, "=") {
		// aliases and static imports are not tracked
		return nil
	}
	var name string
	for _, ch := range named(n) {
		switch ch.Type() {
		case "identifier", "qualified_name":
			name = c.text(ch)
		}
	}
	if name == "" {
		return nil
	}
	name = strings.Join(strings.Fields(name), "")
	c.t.usings = append(c.t.usings, name)
	x := c.node(frontend.SynUsing, n)
	x.Name = name
	return x
}

func (c *converter) namespace(n sitter.Node) *frontend.SyntaxNode {
	x := c.node(frontend.SynNamespace, n)
	if name, ok := part(n, "name", "identifier", "qualified_name"); ok {
		x.Name = strings.Join(strings.Fields(c.text(name)), "")
	}
	if body, ok := part(n, "body", "declaration_list"); ok {
		c.declarations(x, body)
	} else {
		c.declarations(x, n)
	}
	return x
}

// member converts one declaration; a field declaration yields one node per
// declarator.
func (c *converter) member(n sitter.Node, doc []string) []*frontend.SyntaxNode {
	var out []*frontend.SyntaxNode
	switch t := n.Type(); t {
	case "class_declaration", "struct_declaration", "interface_declaration", "enum_declaration":
		out = append(out, c.typeDecl(n, typeDeclKinds[t]))
	case "field_declaration":
		out = c.fields(n)
	case "property_declaration":
		out = append(out, c.property(n))
	case "method_declaration":
		out = append(out, c.method(n))
	case "constructor_declaration":
		out = append(out, c.constructor(n))
	case "operator_declaration", "conversion_operator_declaration":
		out = append(out, c.operatorDecl(n))
	case "namespace_declaration", "name", "identifier", "qualified_name", "name_equals":
		// namespace declarations inside a type body are a syntax error
		return nil
	default:
		x := c.unsupported(n)
		if t == "global_statement" || t == "record_declaration" || t == "delegate_declaration" {
			c.t.diags = append(c.t.diags, diag.New(diag.TrUnsupportedSyntax, c.location(n),
				"construct cannot be translated: %s", strings.TrimSuffix(t, "_declaration")))
		}
		out = append(out, x)
	}
	for _, x := range out {
		x.Doc = doc
	}
	return out
}

// header reads the attributes and modifiers in front of a declaration.
func (c *converter) header(n sitter.Node) *declInfo {
	info := &declInfo{}
	for i := range n.ChildCount() {
		ch := n.Child(i)
		switch ch.Type() {
		case "attribute_list":
			info.attrs = append(info.attrs, c.attributes(ch)...)
		case "modifier":
			info.modifier(c.text(ch))
		}
	}
	return info
}

func (info *declInfo) modifier(word string) {
	switch word {
	case "public":
		info.setAccess(frontend.AccessPublic)
	case "private":
		info.setAccess(frontend.AccessPrivate)
	case "protected":
		info.setAccess(frontend.AccessProtected)
	case "internal":
		if !info.hasAccess {
			info.setAccess(frontend.AccessInternal)
		}
	case "static":
		info.mods |= frontend.ModStatic
	case "abstract":
		info.mods |= frontend.ModAbstract
	case "virtual":
		info.mods |= frontend.ModVirtual
	case "override":
		info.mods |= frontend.ModOverride
	case "sealed":
		info.mods |= frontend.ModSealed
	case "readonly":
		info.mods |= frontend.ModReadOnly
	case "const":
		info.mods |= frontend.ModConst | frontend.ModStatic
	case "partial":
		info.mods |= frontend.ModPartial
	case "extern":
		info.mods |= frontend.ModExtern
	}
}

// setAccess keeps protected for "protected internal" and "private protected".
func (info *declInfo) setAccess(a frontend.Accessibility) {
	if info.hasAccess && info.access == frontend.AccessProtected {
		return
	}
	info.access, info.hasAccess = a, true
}

func (c *converter) attributes(list sitter.Node) []frontend.Attribute {
	var out []frontend.Attribute
	for _, a := range named(list) {
		if a.Type() != "attribute" {
			continue
		}
		name, ok := part(a, "name", "identifier", "qualified_name", "generic_name")
		if !ok {
			continue
		}
		attr := frontend.Attribute{Name: lastSegment(c.text(name))}
		if args, ok := part(a, "", "attribute_argument_list"); ok {
			for _, arg := range named(args) {
				c.attributeArg(&attr, arg)
			}
		}
		out = append(out, attr)
	}
	return out
}

func (c *converter) attributeArg(attr *frontend.Attribute, arg sitter.Node) {
	var key string
	ns := named(arg)
	if len(ns) == 0 {
		return
	}
	for _, ch := range ns[:len(ns)-1] {
		switch ch.Type() {
		case "name_equals", "name_colon":
			if id, ok := firstNamed(ch); ok {
				key = c.text(id)
			}
		case "identifier":
			key = c.text(ch)
		}
	}
	value := c.constant(ns[len(ns)-1])
	if key == "" {
		attr.Args = append(attr.Args, value)
		return
	}
	if attr.Named == nil {
		attr.Named = make(map[string]string)
	}
	attr.Named[key] = value
}

// constant renders an attribute argument: string literals decoded, anything
// else as written.
func (c *converter) constant(n sitter.Node) string {
	switch n.Type() {
	case "string_literal", "verbatim_string_literal", "character_literal":
		return decodeLiteral(c.text(n))
	}
	return c.text(n)
}

func lastSegment(name string) string {
	if i := strings.LastIndexAny(name, ".:"); i >= 0 {
		return name[i+1:]
	}
	return name
}

func (c *converter) typeDecl(n sitter.Node, kind frontend.SyntaxKind) *frontend.SyntaxNode {
	x := c.node(kind, n)
	info := c.header(n)
	if name, ok := part(n, "name", "identifier"); ok {
		x.Name = c.text(name)
	}
	if tps, ok := part(n, "type_parameters", "type_parameter_list"); ok {
		info.typeParams = c.typeParams(tps)
	}
	if bases, ok := part(n, "bases", "base_list"); ok {
		for _, b := range named(bases) {
			if isTypeNode(b) {
				info.bases = append(info.bases, c.typeSyntax(b))
			}
		}
	}
	info.constraints = c.constraints(n)
	c.t.decls[x] = info

	body, ok := part(n, "body", "declaration_list", "enum_member_declaration_list")
	switch {
	case !ok:
	case kind == frontend.SynEnum:
		c.enumMembers(x, body)
	default:
		c.declarations(x, body)
	}
	return x
}

func (c *converter) typeParams(list sitter.Node) []string {
	var out []string
	for _, tp := range named(list) {
		if tp.Type() != "type_parameter" {
			continue
		}
		if name, ok := part(tp, "name", "identifier"); ok {
			out = append(out, c.text(name))
		}
	}
	return out
}

// constraints returns the where clauses of n as written, "where" dropped.
func (c *converter) constraints(n sitter.Node) []string {
	var out []string
	for _, ch := range named(n) {
		if ch.Type() == "type_parameter_constraints_clause" {
			clause := strings.TrimSpace(strings.TrimPrefix(c.text(ch), "where"))
			out = append(out, strings.Join(strings.Fields(clause), " "))
		}
	}
	return out
}

func (c *converter) enumMembers(parent *frontend.SyntaxNode, list sitter.Node) {
	var doc []string
	for i := range list.NamedChildCount() {
		n := list.NamedChild(i)
		switch n.Type() {
		case "comment":
			if line, ok := docLine(c.text(n)); ok {
				doc = append(doc, line)
			}
			continue
		case "enum_member_declaration":
		default:
			continue
		}
		x := c.node(frontend.SynEnumMember, n)
		x.Doc = cleanDoc(doc)
		doc = nil
		info := c.header(n)
		info.setAccess(frontend.AccessPublic)
		if name, ok := part(n, "name", "identifier"); ok {
			x.Name = c.text(name)
		}
		var value *frontend.SyntaxNode
		if v, ok := part(n, "value"); ok {
			value = c.expr(v)
		} else if v, ok := afterEquals(n); ok {
			value = c.expr(v)
		}
		x.Children = []*frontend.SyntaxNode{value}
		c.t.decls[x] = info
		parent.Children = append(parent.Children, x)
	}
}

func (c *converter) fields(n sitter.Node) []*frontend.SyntaxNode {
	info := c.header(n)
	decl, ok := part(n, "", "variable_declaration")
	if !ok {
		return []*frontend.SyntaxNode{c.unsupported(n)}
	}
	var typ *typeSyntax
	if t, ok := part(decl, "type"); ok {
		typ = c.typeSyntax(t)
	}
	var out []*frontend.SyntaxNode
	for _, d := range named(decl) {
		if d.Type() != "variable_declarator" {
			continue
		}
		x := c.node(frontend.SynField, n)
		name, init := c.declarator(d)
		x.Name = name
		x.Children = []*frontend.SyntaxNode{init}
		fi := *info
		fi.typ = typ
		c.t.decls[x] = &fi
		out = append(out, x)
	}
	return out
}

// declarator splits "name = value" into the name and the converted value.
func (c *converter) declarator(d sitter.Node) (string, *frontend.SyntaxNode) {
	var name string
	if id, ok := part(d, "name", "identifier"); ok {
		name = c.text(id)
	}
	if v, ok := afterEquals(d); ok {
		return name, c.initializer(v)
	}
	return name, nil
}

// initializer converts a variable initializer; a bare { a, b } is an array.
func (c *converter) initializer(v sitter.Node) *frontend.SyntaxNode {
	if v.Type() == "initializer_expression" {
		x := c.node(frontend.SynArrayCreation, v)
		x.Children = c.exprList(v)
		return x
	}
	return c.expr(v)
}

func (c *converter) property(n sitter.Node) *frontend.SyntaxNode {
	x := c.node(frontend.SynProperty, n)
	info := c.header(n)
	c.t.decls[x] = info
	if name, ok := part(n, "name", "identifier"); ok {
		x.Name = c.text(name)
	}
	if t, ok := part(n, "type"); ok {
		info.typ = c.typeSyntax(t)
	}
	if list, ok := part(n, "accessors", "accessor_list"); ok {
		for _, a := range named(list) {
			if a.Type() != "accessor_declaration" {
				continue
			}
			if acc := c.accessor(a, info); acc != nil {
				x.Children = append(x.Children, acc)
			}
		}
	}
	value, ok := part(n, "value", "arrow_expression_clause")
	if !ok {
		value, ok = afterEquals(n)
	}
	switch {
	case !ok:
	case value.Type() == "arrow_expression_clause":
		info.getter = true
		get := c.node(frontend.SynAccessorGet, value)
		get.Children = []*frontend.SyntaxNode{c.arrowBody(value, true)}
		x.Children = append(x.Children, get)
	default:
		x.Children = append(x.Children, c.initializer(value))
	}
	return x
}

func (c *converter) accessor(a sitter.Node, info *declInfo) *frontend.SyntaxNode {
	var x *frontend.SyntaxNode
	switch {
	case c.hasToken(a, "get"):
		x = c.node(frontend.SynAccessorGet, a)
		info.getter = true
	case c.hasToken(a, "set"), c.hasToken(a, "init"):
		x = c.node(frontend.SynAccessorSet, a)
		info.setter = true
	default:
		// add and remove belong to events
		return nil
	}
	var body *frontend.SyntaxNode
	if b, ok := part(a, "body", "block", "arrow_expression_clause"); ok {
		body = c.body(b, x.Kind == frontend.SynAccessorGet)
	}
	x.Children = []*frontend.SyntaxNode{body}
	return x
}

// body converts a block or an expression body; returns says whether an
// expression body produces the result.
func (c *converter) body(b sitter.Node, returns bool) *frontend.SyntaxNode {
	switch b.Type() {
	case "block":
		return c.block(b)
	case "arrow_expression_clause":
		return c.arrowBody(b, returns)
	}
	return nil
}

func (c *converter) arrowBody(clause sitter.Node, returns bool) *frontend.SyntaxNode {
	block := c.node(frontend.SynBlock, clause)
	e, ok := firstNamed(clause)
	if !ok {
		return block
	}
	kind := frontend.SynExprStatement
	if returns {
		kind = frontend.SynReturn
	}
	stmt := c.node(kind, e)
	stmt.Children = []*frontend.SyntaxNode{c.expr(e)}
	block.Children = []*frontend.SyntaxNode{stmt}
	return block
}

func (c *converter) method(n sitter.Node) *frontend.SyntaxNode {
	x := c.node(frontend.SynMethod, n)
	info := c.header(n)
	c.t.decls[x] = info
	if name, ok := part(n, "name", "identifier"); ok {
		x.Name = c.text(name)
	}
	if t, ok := part(n, "returns"); ok {
		info.typ = c.typeSyntax(t)
	} else if t, ok := part(n, "type"); ok {
		info.typ = c.typeSyntax(t)
	}
	if tps, ok := part(n, "type_parameters", "type_parameter_list"); ok {
		info.typeParams = c.typeParams(tps)
	}
	if ps, ok := part(n, "parameters", "parameter_list"); ok {
		info.params = c.params(ps)
	}
	info.constraints = c.constraints(n)
	var body *frontend.SyntaxNode
	if b, ok := part(n, "body", "block", "arrow_expression_clause"); ok {
		body = c.body(b, !info.typ.isVoid())
	}
	x.Children = []*frontend.SyntaxNode{body}
	return x
}

func (c *converter) constructor(n sitter.Node) *frontend.SyntaxNode {
	x := c.node(frontend.SynConstructor, n)
	info := c.header(n)
	c.t.decls[x] = info
	if name, ok := part(n, "name", "identifier"); ok {
		x.Name = c.text(name)
	}
	if ps, ok := part(n, "parameters", "parameter_list"); ok {
		info.params = c.params(ps)
	}
	var init, body *frontend.SyntaxNode
	if ci, ok := part(n, "", "constructor_initializer"); ok {
		init = c.node(frontend.SynCtorInitializer, ci)
		init.Token = "base"
		if c.hasToken(ci, "this") || strings.Contains(strings.SplitN(c.text(ci), "(", 2)[0], "this") {
			init.Token = "this"
		}
		if args, ok := part(ci, "", "argument_list"); ok {
			init.Children = c.arguments(args)
		}
	}
	if b, ok := part(n, "body", "block", "arrow_expression_clause"); ok {
		body = c.body(b, false)
	} else {
		body = c.node(frontend.SynBlock, n)
	}
	x.Children = []*frontend.SyntaxNode{init, body}
	return x
}

func (c *converter) operatorDecl(n sitter.Node) *frontend.SyntaxNode {
	x := c.node(frontend.SynOperator, n)
	info := c.header(n)
	info.mods |= frontend.ModOperator | frontend.ModStatic
	c.t.decls[x] = info
	switch {
	case n.Type() == "conversion_operator_declaration" && c.hasToken(n, "explicit"):
		x.Token = "explicit"
	case n.Type() == "conversion_operator_declaration":
		x.Token = "implicit"
	default:
		if op := n.ChildByFieldName("operator"); !op.IsNull() {
			x.Token = c.text(op)
		}
	}
	x.Name = "op_" + x.Token
	if t, ok := part(n, "type"); ok {
		info.typ = c.typeSyntax(t)
	}
	if ps, ok := part(n, "parameters", "parameter_list"); ok {
		info.params = c.params(ps)
	}
	return x
}

func (c *converter) params(list sitter.Node) []*paramInfo {
	var out []*paramInfo
	for _, p := range named(list) {
		switch p.Type() {
		case "parameter", "parameter_array":
			out = append(out, c.param(p))
		}
	}
	return out
}

func (c *converter) param(p sitter.Node) *paramInfo {
	pi := &paramInfo{}
	if name, ok := part(p, "name", "identifier"); ok {
		pi.name = c.text(name)
	}
	if t, ok := part(p, "type"); ok {
		pi.typ = c.typeSyntax(t)
	}
	if p.Type() == "parameter_array" {
		pi.mods |= frontend.ModParams
	}
	for i := range p.ChildCount() {
		ch := p.Child(i)
		if ch.IsNamed() && ch.Type() != "modifier" && ch.Type() != "parameter_modifier" {
			continue
		}
		switch c.text(ch) {
		case "params":
			pi.mods |= frontend.ModParams
		case "ref", "out":
			pi.mods |= frontend.ModRef
		}
	}
	if v, ok := afterEquals(p); ok {
		pi.def = c.expr(v)
	}
	return pi
}

func isTypeNode(n sitter.Node) bool {
	switch n.Type() {
	case "identifier", "qualified_name", "generic_name", "predefined_type", "array_type",
		"nullable_type", "alias_qualified_name", "tuple_type", "pointer_type", "implicit_type":
		return true
	}
	return false
}

func (c *converter) typeSyntax(n sitter.Node) *typeSyntax {
	ts := &typeSyntax{text: strings.Join(strings.Fields(c.text(n)), "")}
	switch n.Type() {
	case "predefined_type", "identifier", "implicit_type":
		ts.name = ts.text
	case "qualified_name":
		q, qok := part(n, "qualifier")
		nm, nok := part(n, "name")
		if !qok || !nok {
			ts.name = ts.text
			break
		}
		left, right := c.typeSyntax(q), c.typeSyntax(nm)
		ts.name = left.name + "." + right.name
		ts.args = right.args
	case "alias_qualified_name":
		nm, ok := part(n, "name")
		if !ok {
			ts.opaque = true
			break
		}
		right := c.typeSyntax(nm)
		ts.name, ts.args = right.name, right.args
	case "generic_name":
		if id, ok := part(n, "name", "identifier"); ok {
			ts.name = c.text(id)
		}
		if targs, ok := part(n, "type_arguments", "type_argument_list"); ok {
			for _, a := range named(targs) {
				ts.args = append(ts.args, c.typeSyntax(a))
			}
		}
	case "array_type":
		if e, ok := part(n, "type"); ok {
			ts.elem = c.typeSyntax(e)
		} else {
			ts.opaque = true
		}
	case "nullable_type":
		// nullability has no runtime shape
		if inner, ok := part(n, "type"); ok {
			return c.typeSyntax(inner)
		}
		if inner, ok := firstNamed(n); ok {
			return c.typeSyntax(inner)
		}
		ts.opaque = true
	default:
		ts.opaque = true
	}
	return ts
}
