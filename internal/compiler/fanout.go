package compiler

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"cs2ts/internal/trace"
)

// fanOut runs task for every index below n with at most jobs tasks in
// flight, each inside a module span named by name(i). Tasks not started
// before ctx is done are skipped; fanOut then returns false.
func fanOut(ctx context.Context, jobs, n int, name func(int) string, task func(ctx context.Context, i int)) bool {
	if n == 0 {
		return ctx.Err() == nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, n))
	for i := range n {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			span := trace.Begin(tracer, trace.ScopeModule, name(i), parent)
			task(trace.WithSpanContext(gctx, trace.SpanContext{SpanID: span.ID()}), i)
			span.End("")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false
	}
	return ctx.Err() == nil
}
