package compiler

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"cs2ts/internal/diag"
	"cs2ts/internal/options"
)

// writeFiles stores the emitted files under the output directory, keeping
// each document's relative path. Without an output directory nothing is
// written.
func (c *Compiler) writeFiles(ctx context.Context, set *EmittedSet, opts *options.CompilerOptions) diag.Result[*WrittenSet] {
	out := &WrittenSet{Emitted: set}
	if opts.OutputPath == "" {
		c.progress.stage(StageWrite, StatusSkipped, 0)
		return diag.NewResult(out)
	}
	done := c.progress.track(StageWrite)
	defer done()

	var (
		list diag.List
		mu   sync.Mutex
	)
	ok := fanOut(ctx, opts.Jobs, len(set.Files), func(i int) string { return "write:" + set.Files[i].Path },
		func(_ context.Context, i int) {
			f := set.Files[i]
			start := time.Now()
			target := filepath.Join(opts.OutputPath, filepath.FromSlash(f.Path))
			if err := writeFile(target, f.Text); err != nil {
				list.Append(diag.New(diag.PrjWriteFailed, nil, "cannot write %s: %v", target, err))
				c.progress.file(f.Doc.Path, StageWrite, StatusError, err, time.Since(start))
				return
			}
			mu.Lock()
			out.Files = append(out.Files, target)
			mu.Unlock()
			c.progress.file(f.Doc.Path, StageWrite, StatusDone, nil, time.Since(start))
		})
	slices.Sort(out.Files)
	if !ok {
		return diag.CancelledResult[*WrittenSet](list.Snapshot()...)
	}
	return diag.NewResult(out, list.Snapshot()...)
}

func writeFile(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create output directory")
	}
	// #nosec G306 -- generated sources are meant to be shared
	return errors.Wrap(os.WriteFile(path, []byte(text), 0o644), "write output")
}
