// Package bcl is the catalogue of base class library symbols visible to
// every project: primitives, Console, Math, String, Array, List<T> and Exception,
// annotated with the script names and inline code they translate to.
package bcl

import (
	"sort"
	"sync"

	"cs2ts/internal/frontend"
)

// Library is immutable after construction and shared by all documents.
type Library struct {
	types   map[string]*frontend.Symbol // full name -> type
	members map[string][]*frontend.Symbol
	aliases map[string]string // C# keyword -> full name
}

var defaultLibrary = sync.OnceValue(build)

// Default returns the shared catalogue.
func Default() *Library { return defaultLibrary() }

// Type looks a type up by full name ("System.Console") or keyword ("int").
func (l *Library) Type(name string) *frontend.Symbol {
	if full, ok := l.aliases[name]; ok {
		name = full
	}
	return l.types[name]
}

// Ref returns a type use of name; args are type arguments for generics.
func (l *Library) Ref(name string, args ...*frontend.TypeRef) *frontend.TypeRef {
	sym := l.Type(name)
	if sym == nil {
		return &frontend.TypeRef{Name: name, Args: args}
	}
	display := name
	if _, ok := l.aliases[name]; !ok {
		display = sym.Name
	}
	return &frontend.TypeRef{Symbol: sym, Name: display, Args: args}
}

// Members lists the members of t in declaration order.
func (l *Library) Members(t *frontend.Symbol) []*frontend.Symbol {
	if t == nil {
		return nil
	}
	return l.members[t.Key]
}

// Namespaces lists every namespace that contains a catalogue type.
func (l *Library) Namespaces() []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range l.types {
		if !seen[t.Namespace] {
			seen[t.Namespace] = true
			out = append(out, t.Namespace)
		}
	}
	sort.Strings(out)
	return out
}

// IsKeyword reports whether name is a predefined type keyword such as int.
func (l *Library) IsKeyword(name string) bool {
	_, ok := l.aliases[name]
	return ok
}
