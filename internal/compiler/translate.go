package compiler

import (
	"context"
	"time"

	"cs2ts/internal/diag"
	"cs2ts/internal/options"
	"cs2ts/internal/translate"
)

// translateDocuments turns every document into a TypeScript source file.
// A document whose translation reports errors is left out of the output.
func (c *Compiler) translateDocuments(ctx context.Context, set *TranslationSet, opts *options.CompilerOptions) diag.Result[*TranslatedSet] {
	done := c.progress.track(StageTranslate)
	defer done()

	var list diag.List
	files := make([]TranslatedFile, len(set.Units))
	ok := fanOut(ctx, opts.Jobs, len(set.Units), func(i int) string { return "translate:" + set.Units[i].Doc.Path },
		func(ctx context.Context, i int) {
			u := set.Units[i]
			start := time.Now()
			c.progress.file(u.Doc.Path, StageTranslate, StatusWorking, nil, 0)
			file, diags := translate.Document(ctx, u, set.Tables, opts)
			if file == nil && ctx.Err() != nil {
				return
			}
			diags = diag.AdjustAll(opts, diags)
			list.Append(diags...)
			if file == nil || diag.HasErrors(diags) {
				c.progress.file(u.Doc.Path, StageTranslate, StatusError, nil, time.Since(start))
				return
			}
			files[i] = TranslatedFile{Doc: u.Doc, File: file}
			c.progress.file(u.Doc.Path, StageTranslate, StatusDone, nil, time.Since(start))
		})
	if !ok {
		return diag.CancelledResult[*TranslatedSet](list.Snapshot()...)
	}

	out := &TranslatedSet{Project: set.Project}
	for _, f := range files {
		if f.File != nil {
			out.Files = append(out.Files, f)
		}
	}
	return diag.NewResult(out, list.Snapshot()...)
}
