package compiler

import (
	"context"
	"time"

	"cs2ts/internal/diag"
	"cs2ts/internal/emit"
	"cs2ts/internal/options"
	"cs2ts/internal/source"
)

// emitFiles renders every translated file with the configured layout.
func (c *Compiler) emitFiles(ctx context.Context, set *TranslatedSet, opts *options.CompilerOptions) diag.Result[*EmittedSet] {
	done := c.progress.track(StageEmit)
	defer done()

	emitOpts := opts.EmitterOptions()
	var list diag.List
	files := make([]*EmittedFile, len(set.Files))
	ok := fanOut(ctx, opts.Jobs, len(set.Files), func(i int) string { return "emit:" + set.Files[i].Doc.Path },
		func(_ context.Context, i int) {
			f := set.Files[i]
			start := time.Now()
			text, err := emit.String(f.File, emitOpts)
			if err != nil {
				list.Append(diag.New(diag.TrEmitFailed, f.Doc.Location(source.Span{File: f.Doc.ID}), "cannot emit %s: %v", f.Doc.Path, err))
				c.progress.file(f.Doc.Path, StageEmit, StatusError, err, time.Since(start))
				return
			}
			files[i] = &EmittedFile{Doc: f.Doc, Path: source.ReplaceExt(f.Doc.Path, ".ts"), Text: text}
			c.progress.file(f.Doc.Path, StageEmit, StatusDone, nil, time.Since(start))
		})
	if !ok {
		return diag.CancelledResult[*EmittedSet](list.Snapshot()...)
	}

	out := &EmittedSet{}
	for _, f := range files {
		if f != nil {
			out.Files = append(out.Files, *f)
		}
	}
	return diag.NewResult(out, list.Snapshot()...)
}
