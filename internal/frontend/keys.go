package frontend

import (
	"strconv"
	"strings"
)

// TypeKey builds the documentation id of a type: "T:Ns.Outer.Inner",
// with a `N suffix for generic arity.
func TypeKey(fullName string, arity int) string {
	if arity > 0 {
		return "T:" + fullName + "`" + strconv.Itoa(arity)
	}
	return "T:" + fullName
}

// MemberKey builds the documentation id of a member of container.
// Methods and constructors list their parameter types.
func MemberKey(kind SymbolKind, container *Symbol, name string, params []*Symbol) string {
	var b strings.Builder
	switch kind {
	case SymField, SymEnumMember:
		b.WriteString("F:")
	case SymProperty:
		b.WriteString("P:")
	default:
		b.WriteString("M:")
	}
	if container != nil {
		b.WriteString(strings.TrimPrefix(container.Key, "T:"))
		b.WriteByte('.')
	}
	if kind == SymConstructor {
		b.WriteString("#ctor")
	} else {
		b.WriteString(name)
	}
	if (kind == SymMethod || kind == SymConstructor) && len(params) > 0 {
		b.WriteByte('(')
		for i, p := range params {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(typeID(p.Type))
		}
		b.WriteByte(')')
	}
	return b.String()
}

func typeID(t *TypeRef) string {
	switch {
	case t == nil:
		return "System.Void"
	case t.Elem != nil:
		return typeID(t.Elem) + "[]"
	case t.Symbol != nil:
		id := strings.TrimPrefix(t.Symbol.Key, "T:")
		if len(t.Args) == 0 {
			return id
		}
		if i := strings.IndexByte(id, '`'); i >= 0 {
			id = id[:i]
		}
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = typeID(a)
		}
		return id + "{" + strings.Join(args, ",") + "}"
	}
	return t.Name
}

// Unit is one document together with what the front-end produced for it.
type Unit struct {
	Doc   *Document
	Tree  *SyntaxNode
	Model SemanticModel
}
