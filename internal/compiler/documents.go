package compiler

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"cs2ts/internal/diag"
	"cs2ts/internal/frontend"
	"cs2ts/internal/options"
	"cs2ts/internal/source"
)

var errFrontEnd = errors.New("front-end reported errors")

// determineDocuments fetches the syntax tree, semantic model and front-end
// diagnostics of every document. Documents with front-end errors or without
// type declarations are dropped.
func (c *Compiler) determineDocuments(ctx context.Context, p *Project, opts *options.CompilerOptions) diag.Result[*DocumentSet] {
	done := c.progress.track(StageAnalyze)
	defer done()

	var list diag.List
	units := make([]*frontend.Unit, len(p.Documents))
	ok := fanOut(ctx, opts.Jobs, len(p.Documents), func(i int) string { return "analyze:" + p.Documents[i].Path },
		func(ctx context.Context, i int) {
			doc := p.Documents[i]
			start := time.Now()
			c.progress.file(doc.Path, StageAnalyze, StatusWorking, nil, 0)
			u, diags, err := analyze(ctx, p.Service, doc)
			if ctx.Err() != nil {
				return
			}
			list.Append(diags...)
			switch {
			case err != nil:
				c.progress.file(doc.Path, StageAnalyze, StatusError, err, time.Since(start))
			case u == nil:
				c.progress.file(doc.Path, StageAnalyze, StatusSkipped, nil, time.Since(start))
			default:
				units[i] = u
				c.progress.file(doc.Path, StageAnalyze, StatusDone, nil, time.Since(start))
			}
		})
	if !ok {
		return diag.CancelledResult[*DocumentSet](list.Snapshot()...)
	}

	set := &DocumentSet{Project: p}
	for _, u := range units {
		if u != nil {
			set.Units = append(set.Units, *u)
		}
	}
	return diag.NewResult(set, list.Snapshot()...)
}

// analyze queries the front-end for one document. A nil unit without an
// error means the document has nothing to translate.
func analyze(ctx context.Context, svc frontend.Service, doc *frontend.Document) (*frontend.Unit, []*diag.Diagnostic, error) {
	at := doc.Location(source.Span{File: doc.ID})
	failed := func(err error) (*frontend.Unit, []*diag.Diagnostic, error) {
		return nil, []*diag.Diagnostic{diag.New(diag.PrjFrontEndFailed, at, "front-end failed on %s: %v", doc.Path, err)}, err
	}

	diags, err := svc.Diagnostics(ctx, doc.ID)
	if err != nil {
		return failed(err)
	}
	if diag.HasErrors(diags) {
		return nil, diags, errFrontEnd
	}
	tree, err := svc.SyntaxTree(ctx, doc.ID)
	if err != nil {
		return failed(err)
	}
	model, err := svc.SemanticModel(ctx, doc.ID)
	if err != nil {
		return failed(err)
	}
	if len(tree.TypeDeclarations()) == 0 {
		return nil, append(diags, diag.New(diag.PrjNoTypeDeclaration, at, "%s declares no types", doc.Path)), nil
	}
	return &frontend.Unit{Doc: doc, Tree: tree, Model: model}, diags, nil
}
