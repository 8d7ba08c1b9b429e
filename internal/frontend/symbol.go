package frontend

import (
	"slices"
	"strings"

	"cs2ts/internal/diag"
)

// SymbolKind classifies declared symbols.
type SymbolKind uint8

const (
	SymInvalid SymbolKind = iota
	SymNamespace
	SymClass
	SymStruct
	SymInterface
	SymEnum
	SymField
	SymProperty
	SymMethod
	SymConstructor
	SymEnumMember
	SymParameter
	SymLocal
	SymTypeParameter
)

var symbolKindNames = [...]string{
	SymInvalid:       "invalid",
	SymNamespace:     "namespace",
	SymClass:         "class",
	SymStruct:        "struct",
	SymInterface:     "interface",
	SymEnum:          "enum",
	SymField:         "field",
	SymProperty:      "property",
	SymMethod:        "method",
	SymConstructor:   "constructor",
	SymEnumMember:    "enum member",
	SymParameter:     "parameter",
	SymLocal:         "local",
	SymTypeParameter: "type parameter",
}

// String returns the lower-case kind name.
func (k SymbolKind) String() string {
	if int(k) < len(symbolKindNames) {
		return symbolKindNames[k]
	}
	return "invalid"
}

// IsType reports whether k declares a type.
func (k SymbolKind) IsType() bool {
	switch k {
	case SymClass, SymStruct, SymInterface, SymEnum:
		return true
	}
	return false
}

// IsMember reports whether k lives inside a type.
func (k SymbolKind) IsMember() bool {
	switch k {
	case SymField, SymProperty, SymMethod, SymConstructor, SymEnumMember:
		return true
	}
	return false
}

// Accessibility is the declared C# accessibility of a symbol.
type Accessibility uint8

const (
	AccessPrivate Accessibility = iota
	AccessProtected
	AccessInternal
	AccessPublic
)

// String returns the C# keyword.
func (a Accessibility) String() string {
	switch a {
	case AccessProtected:
		return "protected"
	case AccessInternal:
		return "internal"
	case AccessPublic:
		return "public"
	}
	return "private"
}

// Modifiers is a bit set of C# declaration modifiers.
type Modifiers uint16

const (
	ModStatic Modifiers = 1 << iota
	ModAbstract
	ModVirtual
	ModOverride
	ModSealed
	ModReadOnly
	ModConst
	ModPartial
	ModExtern
	// ModParams marks a params array parameter.
	ModParams
	// ModRef marks ref and out parameters.
	ModRef
	ModOperator
)

// Has reports whether any bit of flag is set.
func (m Modifiers) Has(flag Modifiers) bool { return m&flag != 0 }

// Symbol is a named program entity as reported by the front-end.
// Symbols are shared read-only after the semantic model is built.
type Symbol struct {
	// Key is the documentation-comment id, e.g. "T:App.Point" or
	// "M:App.Point.Scale(System.Double)". Unique within a compilation.
	Key       string
	Kind      SymbolKind
	Name      string
	Namespace string
	// Container is the declaring type of members and nested types.
	Container *Symbol
	Access    Accessibility
	Modifiers Modifiers
	// Type is the field, property, parameter or local type, or a
	// method's return type (nil for void).
	Type           *TypeRef
	Parameters     []*Symbol
	TypeParameters []string
	// Constraints holds the where clauses as written, one per constrained
	// type parameter.
	Constraints []string
	BaseType    *TypeRef
	Interfaces  []*TypeRef
	Attributes  []Attribute
	// Locations are the declaration sites; partial types have several.
	Locations []*diag.Location
	HasGetter bool
	HasSetter bool
	// Default is the default value expression of an optional parameter.
	Default *SyntaxNode
	// Overridden is the base member an override replaces.
	Overridden *Symbol
	// External symbols come from referenced libraries, not project documents.
	External bool
}

// Is reports whether s carries modifier m. A nil symbol carries none.
func (s *Symbol) Is(m Modifiers) bool { return s != nil && s.Modifiers.Has(m) }

// Attribute finds an attribute by name, with or without the Attribute suffix.
func (s *Symbol) Attribute(name string) (Attribute, bool) {
	if s == nil {
		return Attribute{}, false
	}
	name = strings.TrimSuffix(name, "Attribute")
	for _, a := range s.Attributes {
		if strings.TrimSuffix(a.Name, "Attribute") == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// HasAttribute reports whether s is annotated with name.
func (s *Symbol) HasAttribute(name string) bool {
	_, ok := s.Attribute(name)
	return ok
}

// ContainingType walks up to the nearest enclosing type, nil for top-level types.
func (s *Symbol) ContainingType() *Symbol {
	if s == nil {
		return nil
	}
	for c := s.Container; c != nil; c = c.Container {
		if c.Kind.IsType() {
			return c
		}
	}
	return nil
}

// FullName is the dotted C# name including namespace and outer types.
func (s *Symbol) FullName() string {
	if s == nil {
		return ""
	}
	parts := []string{s.Name}
	top := s
	for c := s.Container; c != nil; c = c.Container {
		parts = append(parts, c.Name)
		top = c
	}
	if top.Namespace != "" {
		parts = append(parts, top.Namespace)
	}
	slices.Reverse(parts)
	return strings.Join(parts, ".")
}

// Location is the first declaration site, or nil for external symbols.
func (s *Symbol) Location() *diag.Location {
	if s == nil || len(s.Locations) == 0 {
		return nil
	}
	return s.Locations[0]
}

// String returns the symbol key.
func (s *Symbol) String() string {
	if s == nil {
		return "<nil>"
	}
	return s.Key
}

// Attribute is a custom attribute application with constant arguments.
type Attribute struct {
	Name  string
	Args  []string
	Named map[string]string
}

// Arg returns the i-th positional argument.
func (a Attribute) Arg(i int) (string, bool) {
	if i < 0 || i >= len(a.Args) {
		return "", false
	}
	return a.Args[i], true
}

// Attribute names the compiler understands.
const (
	AttrScriptName         = "ScriptName"
	AttrPreserveName       = "PreserveName"
	AttrPreserveCase       = "PreserveCase"
	AttrInlineCode         = "InlineCode"
	AttrScriptSkip         = "ScriptSkip"
	AttrAlternateSignature = "AlternateSignature"
	AttrModuleName         = "ModuleName"
	AttrImported           = "Imported"
)

// TypeRef is a use of a type. Named types carry their Symbol; arrays carry Elem.
// An unresolved name has neither.
type TypeRef struct {
	Symbol *Symbol
	Name   string
	Args   []*TypeRef
	// Elem is set for arrays.
	Elem            *TypeRef
	IsTypeParameter bool
}

// Key is the symbol key of a named type, empty otherwise.
func (t *TypeRef) Key() string {
	if t == nil || t.Symbol == nil {
		return ""
	}
	return t.Symbol.Key
}

// IsResolved reports whether every named part of t is bound.
func (t *TypeRef) IsResolved() bool {
	if t == nil {
		return true
	}
	if t.Elem != nil {
		return t.Elem.IsResolved()
	}
	if t.Symbol == nil && !t.IsTypeParameter {
		return false
	}
	for _, a := range t.Args {
		if !a.IsResolved() {
			return false
		}
	}
	return true
}

// String renders the type in C# syntax.
func (t *TypeRef) String() string {
	if t == nil {
		return "void"
	}
	if t.Elem != nil {
		return t.Elem.String() + "[]"
	}
	if len(t.Args) == 0 {
		return t.Name
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return t.Name + "<" + strings.Join(args, ", ") + ">"
}
