package translate

import (
	"context"
	"maps"
	"slices"
	"strings"

	"cs2ts/internal/diag"
	"cs2ts/internal/emit"
	"cs2ts/internal/frontend"
	"cs2ts/internal/options"
	"cs2ts/internal/symtab"
	"cs2ts/internal/tsast"
)

// Document translates u. Namespaces are flattened, nested types are hoisted
// to module scope and the imports the document needs come first. The
// returned diagnostics are in discovery order.
//
// When ctx is cancelled between two type declarations Document stops and
// returns a nil file.
func Document(ctx context.Context, u frontend.Unit, tables *symtab.Tables, opts *options.CompilerOptions) (*tsast.SourceFile, []*diag.Diagnostic) {
	if opts == nil {
		opts = options.Default()
	}
	t := &translator{
		doc:      u.Doc,
		model:    u.Model,
		tables:   tables,
		emitOpts: opts.EmitterOptions(),
		diags:    diag.NewBag(0),
		typeKeys: make(map[string]bool),
	}
	t.unresolved = diag.NewDedupReporter(t.diags, func(d *diag.Diagnostic) string { return d.Message })

	var decls []tsast.Statement
	for _, g := range t.typeGroups(u.Tree) {
		if ctx.Err() != nil {
			return nil, t.diags.Items()
		}
		if st := t.typeDeclaration(g); st != nil {
			decls = append(decls, st)
		}
	}

	file := &tsast.SourceFile{}
	for _, imp := range tables.Imports.ImportsFor(u.Doc.Path, slices.Sorted(maps.Keys(t.typeKeys))) {
		decl := &tsast.ImportDeclaration{Module: imp.Module}
		for _, name := range imp.Names {
			decl.Names = append(decl.Names, tsast.Ident(name))
		}
		file.Statements = append(file.Statements, decl)
	}
	file.Statements = append(file.Statements, decls...)
	return file, t.diags.Items()
}

type translator struct {
	doc      *frontend.Document
	model    frontend.SemanticModel
	tables   *symtab.Tables
	emitOpts emit.Options

	diags *diag.Bag
	// unresolved forwards the first miss of each name in this document;
	// misses counts every failed lookup, reported or not.
	unresolved *diag.DedupReporter
	misses     int
	// typeKeys are the types referenced by the emitted code.
	typeKeys map[string]bool
	// catchVars is the stack of enclosing catch variables, for rethrow.
	catchVars []string
}

func (t *translator) location(n *frontend.SyntaxNode) *diag.Location {
	if n == nil {
		return nil
	}
	return t.doc.Location(n.Span)
}

func (t *translator) report(code diag.Code, n *frontend.SyntaxNode, format string, args ...any) {
	t.diags.Report(diag.New(code, t.location(n), format, args...))
}

func (t *translator) unsupported(n *frontend.SyntaxNode, what string) {
	t.report(diag.TrUnsupportedSyntax, n, "%s cannot be translated to TypeScript", what)
}

// unresolvedName reports name once per document.
func (t *translator) unresolvedName(n *frontend.SyntaxNode, name string) {
	t.misses++
	t.unresolved.Report(diag.New(diag.TrUnresolvedSymbol, t.location(n), "cannot resolve '%s'", name))
}

// scriptName is the table name of s, or its C# name for symbols the
// tables never saw.
func (t *translator) scriptName(s *frontend.Symbol) string {
	if name, ok := t.tables.Names.Lookup(s.Key); ok {
		return name
	}
	return symtab.Escape(s.Name)
}

// typeName is scriptName for a type the code refers to; it records the
// reference for import synthesis.
func (t *translator) typeName(s *frontend.Symbol) string {
	t.typeKeys[s.Key] = true
	return t.scriptName(s)
}

// typeExpr is a type used as a value, e.g. the target of a static call.
func (t *translator) typeExpr(s *frontend.Symbol) tsast.Expression {
	return dotted(t.typeName(s))
}

func dotted(name string) tsast.Expression {
	parts := strings.Split(name, ".")
	var x tsast.Expression = tsast.Ident(parts[0])
	for _, p := range parts[1:] {
		x = tsast.Member(x, p)
	}
	return x
}

func localName(s *frontend.Symbol, fallback string) string {
	if s != nil {
		return symtab.Escape(s.Name)
	}
	return symtab.Escape(fallback)
}

// text renders x for splicing into inline code.
func (t *translator) text(x tsast.Expression, at *frontend.SyntaxNode) string {
	s, err := emit.String(x, t.emitOpts)
	if err != nil {
		t.report(diag.TrEmitFailed, at, "cannot render %s: %v", x.CodeDisplay(), err)
	}
	return s
}

// withDoc attaches the /// comment of src as JsDoc.
func withDoc[N tsast.Node](n N, src *frontend.SyntaxNode) N {
	if src == nil || len(src.Doc) == 0 {
		return n
	}
	return tsast.WithLeadingTrivia(n, tsast.JsDoc(src.Doc...))
}
