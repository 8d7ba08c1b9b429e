// Package testkit provides an in-memory front-end so the compiler can be
// tested without parsing C#. Documents, syntax trees and symbols are built
// with the helpers in builder.go and bound by a Model.
package testkit

import (
	"context"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"cs2ts/internal/diag"
	"cs2ts/internal/frontend"
	"cs2ts/internal/source"
)

// Project implements frontend.Service. Build it on one goroutine, then
// hand it to the compiler; queries are read-only afterwards.
type Project struct {
	Files *source.FileSet
	// Hook runs before every query; tests use it to block or cancel.
	Hook func(ctx context.Context, doc *frontend.Document) error

	docs map[source.FileID]*Doc
}

// NewProject returns a project without documents.
func NewProject() *Project {
	return &Project{
		Files: source.NewFileSet(""),
		docs:  make(map[source.FileID]*Doc),
	}
}

// Doc adds a document. Content is optional; it only matters for locations.
func (p *Project) Doc(path string, content ...string) *Doc {
	id := p.Files.AddVirtual(path, []byte(strings.Join(content, "\n")))
	f := p.Files.Get(id)
	d := &Doc{
		project: p,
		doc:     &frontend.Document{ID: id, Path: f.Path, File: f},
		model:   newModel(),
	}
	d.root = &frontend.SyntaxNode{Kind: frontend.SynCompilationUnit, Span: d.span()}
	p.docs[id] = d
	return d
}

// Documents returns every document ordered by path.
func (p *Project) Documents() []*frontend.Document {
	out := make([]*frontend.Document, 0, len(p.docs))
	for _, d := range p.docs {
		out = append(out, d.doc)
	}
	slices.SortFunc(out, func(a, b *frontend.Document) int { return strings.Compare(a.Path, b.Path) })
	return out
}

func (p *Project) lookup(ctx context.Context, id source.FileID) (*Doc, error) {
	d, ok := p.docs[id]
	if !ok {
		return nil, errors.Newf("unknown document %d", id)
	}
	if p.Hook != nil {
		if err := p.Hook(ctx, d.doc); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d, d.err
}

// SyntaxTree returns the root built for id.
func (p *Project) SyntaxTree(ctx context.Context, id source.FileID) (*frontend.SyntaxNode, error) {
	d, err := p.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	return d.root, nil
}

// SemanticModel returns the map-backed model of id.
func (p *Project) SemanticModel(ctx context.Context, id source.FileID) (frontend.SemanticModel, error) {
	d, err := p.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	return d.model, nil
}

// Diagnostics returns the diagnostics added with Doc.Report.
func (p *Project) Diagnostics(ctx context.Context, id source.FileID) ([]*diag.Diagnostic, error) {
	d, err := p.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	return slices.Clone(d.diags), nil
}

// Model is a map-backed frontend.SemanticModel.
type Model struct {
	declared   map[*frontend.SyntaxNode]*frontend.Symbol
	referenced map[*frontend.SyntaxNode]*frontend.Symbol
	types      map[*frontend.SyntaxNode]*frontend.TypeRef
}

func newModel() *Model {
	return &Model{
		declared:   make(map[*frontend.SyntaxNode]*frontend.Symbol),
		referenced: make(map[*frontend.SyntaxNode]*frontend.Symbol),
		types:      make(map[*frontend.SyntaxNode]*frontend.TypeRef),
	}
}

func (m *Model) DeclaredSymbol(n *frontend.SyntaxNode) *frontend.Symbol   { return m.declared[n] }
func (m *Model) ReferencedSymbol(n *frontend.SyntaxNode) *frontend.Symbol { return m.referenced[n] }
func (m *Model) TypeOf(n *frontend.SyntaxNode) *frontend.TypeRef          { return m.types[n] }
