package compiler

import (
	"context"
	"strings"

	"cs2ts/internal/diag"
	"cs2ts/internal/frontend"
	"cs2ts/internal/options"
	"cs2ts/internal/symtab"
)

// validate reports what TypeScript cannot express before any document is
// translated. It passes the set through unchanged.
func (c *Compiler) validate(ctx context.Context, set *TranslationSet, opts *options.CompilerOptions) diag.Result[*TranslationSet] {
	done := c.progress.track(StageValidate)
	defer done()

	var list diag.List
	ok := fanOut(ctx, opts.Jobs, len(set.Units), func(i int) string { return "validate:" + set.Units[i].Doc.Path },
		func(_ context.Context, i int) {
			v := validator{unit: set.Units[i], tables: set.Tables}
			v.document()
			list.Append(v.diags...)
		})
	if !ok {
		return diag.CancelledResult[*TranslationSet](list.Snapshot()...)
	}
	list.Append(partialSplits(set.Units)...)
	return diag.NewResult(set, list.Snapshot()...)
}

// partialSplits reports partial types whose parts live in several
// documents; each document becomes its own module, so the parts cannot
// be merged into one class.
func partialSplits(units []frontend.Unit) []*diag.Diagnostic {
	first := make(map[string]string)
	reported := make(map[string]bool)
	var out []*diag.Diagnostic
	for _, u := range units {
		for _, n := range u.Tree.TypeDeclarations() {
			sym := u.Model.DeclaredSymbol(n)
			if sym == nil {
				continue
			}
			path, seen := first[sym.Key]
			if !seen {
				first[sym.Key] = u.Doc.Path
				continue
			}
			if path == u.Doc.Path || reported[sym.Key+"\x00"+u.Doc.Path] {
				continue
			}
			reported[sym.Key+"\x00"+u.Doc.Path] = true
			out = append(out, diag.New(diag.ValPartialTypeSplit, u.Doc.Location(n.Span),
				"partial type %s is also declared in %s; keep all parts in one document", sym.FullName(), path))
		}
	}
	return out
}

type validator struct {
	unit   frontend.Unit
	tables *symtab.Tables
	diags  []*diag.Diagnostic
}

func (v *validator) report(code diag.Code, n *frontend.SyntaxNode, format string, args ...any) {
	v.diags = append(v.diags, diag.New(code, v.unit.Doc.Location(n.Span), format, args...))
}

func (v *validator) name(s *frontend.Symbol) string {
	if name, ok := v.tables.Names.Lookup(s.Key); ok {
		return name
	}
	return s.Name
}

func (v *validator) document() {
	// members are collected over every part of a type in this document
	members := make(map[string]map[string]*frontend.Symbol)
	for _, n := range v.unit.Tree.TypeDeclarations() {
		sym := v.unit.Model.DeclaredSymbol(n)
		if sym == nil {
			continue
		}
		v.typeDeclaration(n, sym)
		if members[sym.Key] == nil {
			members[sym.Key] = make(map[string]*frontend.Symbol)
		}
		for _, m := range n.Children {
			if m == nil || m.Kind.IsTypeDeclaration() {
				continue
			}
			v.member(m, members[sym.Key])
		}
	}
}

func (v *validator) typeDeclaration(n *frontend.SyntaxNode, sym *frontend.Symbol) {
	if sym.Kind == frontend.SymStruct {
		v.report(diag.ValStructAsClass, n, "struct %s is emitted as a class; assignments share the instance instead of copying it", sym.FullName())
	}
	if outer := sym.ContainingType(); outer != nil {
		v.report(diag.ValNestedTypeFlattened, n, "nested type %s is emitted at module scope as %s", sym.FullName(), v.name(sym))
	}
	v.constraints(n, sym)
}

func (v *validator) constraints(n *frontend.SyntaxNode, sym *frontend.Symbol) {
	for _, c := range sym.Constraints {
		v.report(diag.ValGenericConstraintLost, n, "constraint '%s' on %s is not translated", strings.TrimSpace(c), sym.FullName())
	}
}

// member checks one member declaration; names maps the emitted names of
// the members seen so far in the same type.
func (v *validator) member(n *frontend.SyntaxNode, names map[string]*frontend.Symbol) {
	sym := v.unit.Model.DeclaredSymbol(n)
	if n.Kind == frontend.SynOperator {
		name := n.Token
		if sym != nil {
			name = sym.ContainingType().FullName() + "." + n.Token
		}
		v.report(diag.ValUnsupportedOperator, n, "operator %s cannot be translated; call a named method instead", name)
		return
	}
	if sym == nil {
		return
	}
	v.constraints(n, sym)
	if !v.emitted(sym) {
		return
	}
	name := v.name(sym)
	key := name
	if sym.Is(frontend.ModStatic) || sym.Is(frontend.ModConst) {
		// statics live on the constructor, apart from instance members
		key = "static " + name
	}
	if prev, ok := names[key]; ok {
		v.report(diag.ValDuplicateScriptName, n, "%s and %s are both emitted as '%s'", prev.FullName(), sym.FullName(), name)
		return
	}
	names[key] = sym
}

// emitted reports whether sym becomes a class member of its own.
func (v *validator) emitted(sym *frontend.Symbol) bool {
	switch sym.Kind {
	case frontend.SymConstructor:
		return false
	case frontend.SymMethod:
		if sym.Is(frontend.ModExtern) {
			return false
		}
		if _, ok := v.tables.Alternates.Lookup(sym.Key); ok {
			return false
		}
	}
	if _, ok := v.tables.Inline.Lookup(sym.Key); ok {
		return false
	}
	return sym.Kind.IsMember()
}
