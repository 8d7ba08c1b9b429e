package symtab

import (
	"maps"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"cs2ts/internal/source"
)

// Tables holds the four tables of one compilation.
type Tables struct {
	Imports    *ImportTable
	Names      *NameTable
	Inline     *InlineTable
	Alternates *AlternateTable
}

// Origin says where a type comes from. Exactly one of Path and Module is set.
type Origin struct {
	// Path is the project document declaring the type.
	Path string `msgpack:"path,omitempty"`
	// Module is the import specifier of an external type.
	Module string `msgpack:"module,omitempty"`
	// Name is the type's script name, the binding an import introduces.
	Name string `msgpack:"name"`
}

// ImportTable maps type keys to their origin.
type ImportTable struct {
	origins map[string]Origin
}

// Lookup returns where the type with key is declared.
func (t *ImportTable) Lookup(key string) (Origin, bool) {
	o, ok := t.origins[key]
	return o, ok
}

// Len returns the number of known types.
func (t *ImportTable) Len() int { return len(t.origins) }

// Keys returns the type keys in sorted order.
func (t *ImportTable) Keys() []string { return slices.Sorted(maps.Keys(t.origins)) }

// Import is one import declaration: import { Names... } from 'Module'.
type Import struct {
	Module string
	Names  []string
}

// ImportsFor lists the imports a document at fromPath needs to reference
// the types in keys. Types declared in fromPath itself and keys without an
// origin are skipped. Imports are sorted by module, names by name.
func (t *ImportTable) ImportsFor(fromPath string, keys []string) []Import {
	byModule := make(map[string][]string)
	for _, key := range keys {
		o, ok := t.origins[key]
		if !ok {
			continue
		}
		var module string
		switch {
		case o.Module != "":
			module = o.Module
		case o.Path == fromPath:
			continue
		default:
			module = moduleSpecifier(fromPath, o.Path)
		}
		if !slices.Contains(byModule[module], o.Name) {
			byModule[module] = append(byModule[module], o.Name)
		}
	}
	out := make([]Import, 0, len(byModule))
	for _, module := range slices.Sorted(maps.Keys(byModule)) {
		names := byModule[module]
		slices.Sort(names)
		out = append(out, Import{Module: module, Names: names})
	}
	return out
}

// moduleSpecifier is the relative import path from one document to another,
// without extension: "./Shapes/Point" or "../Util".
func moduleSpecifier(from, to string) string {
	rel, err := filepath.Rel(filepath.FromSlash(path.Dir(from)), filepath.FromSlash(to))
	if err != nil {
		rel = to
	}
	rel = source.ReplaceExt(filepath.ToSlash(rel), "")
	if !strings.HasPrefix(rel, "../") {
		rel = "./" + rel
	}
	return rel
}

// NameTable maps symbol keys to script names.
type NameTable struct {
	names map[string]string
}

// Lookup returns the script name of key.
func (t *NameTable) Lookup(key string) (string, bool) {
	n, ok := t.names[key]
	return n, ok
}

// Len returns the number of named symbols.
func (t *NameTable) Len() int { return len(t.names) }

// Keys returns the symbol keys in sorted order.
func (t *NameTable) Keys() []string { return slices.Sorted(maps.Keys(t.names)) }

// InlineTable maps member keys to inline code templates.
type InlineTable struct {
	templates map[string]*Template
}

// Lookup returns the inline-code template of key.
func (t *InlineTable) Lookup(key string) (*Template, bool) {
	tpl, ok := t.templates[key]
	return tpl, ok
}

// Len returns the number of templates.
func (t *InlineTable) Len() int { return len(t.templates) }

// Keys returns the member keys in sorted order.
func (t *InlineTable) Keys() []string { return slices.Sorted(maps.Keys(t.templates)) }

// Alternate folds an alternate signature into its implementation.
// Permutation[i] is the implementation parameter receiving argument i.
type Alternate struct {
	Canonical   string `msgpack:"canonical"`
	Permutation []int  `msgpack:"permutation"`
}

// Reorder places call arguments in implementation order. Gaps become
// fill; trailing gaps are dropped.
func (a Alternate) Reorder(args []string, fill string) []string {
	size := 0
	for i := range args {
		if i < len(a.Permutation) {
			size = max(size, a.Permutation[i]+1)
		}
	}
	out := make([]string, size)
	set := make([]bool, size)
	for i, arg := range args {
		if i >= len(a.Permutation) {
			break
		}
		out[a.Permutation[i]] = arg
		set[a.Permutation[i]] = true
	}
	for i := range out {
		if !set[i] {
			out[i] = fill
		}
	}
	return out
}

// AlternateTable maps alternate-signature method keys to their implementation.
type AlternateTable struct {
	entries map[string]Alternate
}

// Lookup returns the alternate signature entry of key.
func (t *AlternateTable) Lookup(key string) (Alternate, bool) {
	a, ok := t.entries[key]
	return a, ok
}

// Len returns the number of alternate signatures.
func (t *AlternateTable) Len() int { return len(t.entries) }

// Keys returns the alternate member keys in sorted order.
func (t *AlternateTable) Keys() []string { return slices.Sorted(maps.Keys(t.entries)) }

// Snapshot is the serialisable form of Tables.
type Snapshot struct {
	Imports    map[string]Origin    `msgpack:"imports"`
	Names      map[string]string    `msgpack:"names"`
	Inline     map[string]*Template `msgpack:"inline"`
	Alternates map[string]Alternate `msgpack:"alternates"`
}

// Snapshot flattens the tables into their serialisable form.
func (t *Tables) Snapshot() *Snapshot {
	return &Snapshot{
		Imports:    maps.Clone(t.Imports.origins),
		Names:      maps.Clone(t.Names.names),
		Inline:     maps.Clone(t.Inline.templates),
		Alternates: maps.Clone(t.Alternates.entries),
	}
}

// FromSnapshot rebuilds tables; s must not be used afterwards.
func FromSnapshot(s *Snapshot) *Tables {
	return newTables(s.Imports, s.Names, s.Inline, s.Alternates)
}

func newTables(imports map[string]Origin, names map[string]string, inline map[string]*Template, alts map[string]Alternate) *Tables {
	if imports == nil {
		imports = map[string]Origin{}
	}
	if names == nil {
		names = map[string]string{}
	}
	if inline == nil {
		inline = map[string]*Template{}
	}
	if alts == nil {
		alts = map[string]Alternate{}
	}
	return &Tables{
		Imports:    &ImportTable{origins: imports},
		Names:      &NameTable{names: names},
		Inline:     &InlineTable{templates: inline},
		Alternates: &AlternateTable{entries: alts},
	}
}
