package fuzztests

import (
	"context"
	"testing"
	"time"

	"cs2ts/internal/compiler"
	"cs2ts/internal/frontend/csharp"
	"cs2ts/internal/options"
	"cs2ts/internal/source"
)

// compileTimeout bounds one input; exceeding it points at a loop in error
// recovery or translation.
const compileTimeout = 5 * time.Second

func FuzzFrontEnd(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet("")
		id := fs.AddVirtual("Fuzz.cs", clamp(input))
		svc := csharp.New(fs, nil)
		ctx := context.Background()
		if _, err := svc.SyntaxTree(ctx, id); err != nil {
			t.Fatalf("syntax tree: %v", err)
		}
		if _, err := svc.SemanticModel(ctx, id); err != nil {
			t.Fatalf("semantic model: %v", err)
		}
		diags, err := svc.Diagnostics(ctx, id)
		if err != nil {
			t.Fatalf("diagnostics: %v", err)
		}
		size := len(fs.Get(id).Content)
		for _, d := range diags {
			if d.Location == nil || d.Location.Span.File != id {
				continue
			}
			if sp := d.Location.Span; sp.Start > sp.End || int(sp.End) > size {
				t.Fatalf("%s: span %s outside document of %d bytes", d.ID, sp, size)
			}
		}
	})
}

func FuzzCompileNoHang(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet("")
		fs.AddVirtual("Fuzz.cs", clamp(input))
		req := compiler.ProjectRequest{Service: csharp.New(fs, nil)}

		ctx, cancel := context.WithTimeout(context.Background(), compileTimeout)
		defer cancel()
		done := make(chan struct{})
		go func() {
			defer close(done)
			res := compiler.New(compiler.Config{}).Compile(ctx, req, options.Default())
			if res.Success() && !res.Cancelled && res.Value == nil {
				t.Errorf("successful compilation without a result")
			}
		}()
		select {
		case <-done:
		case <-time.After(compileTimeout + time.Second):
			t.Fatalf("compile did not finish within %v", compileTimeout)
		}
	})
}
