package pipeline

import (
	"context"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"

	"cs2ts/internal/diag"
	"cs2ts/internal/observ"
	"cs2ts/internal/options"
	"cs2ts/internal/trace"
)

// initial is the source index of the pipeline input.
const initial = -1

type bound struct {
	stage   Stage
	source  int // index of the stage whose output feeds this one, or initial
	convert convertFunc
}

// Pipeline runs stages from In to Out.
type Pipeline[In, Out any] struct {
	name   string
	in     Tag[In]
	out    Tag[Out]
	graph  *Graph
	stages []bound
	final  convertFunc
	built  bool
}

// New starts an empty pipeline. graph may be nil when no conversions are needed.
func New[In, Out any](name string, in Tag[In], out Tag[Out], graph *Graph) *Pipeline[In, Out] {
	return &Pipeline[In, Out]{name: name, in: in, out: out, graph: graph}
}

// Name returns the pipeline name used in traces.
func (p *Pipeline[In, Out]) Name() string { return p.name }

// Stages lists the stage names in execution order.
func (p *Pipeline[In, Out]) Stages() []string {
	names := make([]string, len(p.stages))
	for i, b := range p.stages {
		names[i] = b.stage.Name()
	}
	return names
}

// AddStage appends s. It fails unless the pipeline input or an earlier
// stage's output satisfies s's input; the most recent satisfying output
// is the one s will receive.
func (p *Pipeline[In, Out]) AddStage(s Stage) error {
	if p.built {
		return errors.AssertionFailedf("pipeline %s: add stage %s after Build", p.name, s.Name())
	}
	if s == nil || s.input() == nil || s.output() == nil {
		return errors.AssertionFailedf("pipeline %s: stage without tags", p.name)
	}
	for i := len(p.stages) - 1; i >= 0; i-- {
		if conv, ok := p.graph.path(p.stages[i].stage.output(), s.input()); ok {
			p.stages = append(p.stages, bound{stage: s, source: i, convert: conv})
			return nil
		}
	}
	if conv, ok := p.graph.path(p.in.t, s.input()); ok {
		p.stages = append(p.stages, bound{stage: s, source: initial, convert: conv})
		return nil
	}
	return errors.AssertionFailedf("pipeline %s: no earlier output satisfies input %s of stage %s",
		p.name, s.input().name, s.Name())
}

// MustAddStage is AddStage for pipelines assembled at init time.
func (p *Pipeline[In, Out]) MustAddStage(stages ...Stage) *Pipeline[In, Out] {
	for _, s := range stages {
		if err := p.AddStage(s); err != nil {
			panic(err)
		}
	}
	return p
}

// Build checks that the last output satisfies Out and freezes the pipeline.
func (p *Pipeline[In, Out]) Build() error {
	if p.built {
		return nil
	}
	last := p.in.t
	if n := len(p.stages); n > 0 {
		last = p.stages[n-1].stage.output()
	}
	conv, ok := p.graph.path(last, p.out.t)
	if !ok {
		return errors.AssertionFailedf("pipeline %s: final output %s does not satisfy %s", p.name, last.name, p.out.t.name)
	}
	p.final = conv
	p.built = true
	return nil
}

// MustBuild is Build for pipelines assembled at init time.
func (p *Pipeline[In, Out]) MustBuild() *Pipeline[In, Out] {
	if err := p.Build(); err != nil {
		panic(err)
	}
	return p
}

// Execute runs the stages in order. It stops at the first stage after which
// an error diagnostic is present, and when ctx is cancelled; either way the
// result keeps every diagnostic produced so far and a zero value.
// Execute panics when the pipeline was not built.
func (p *Pipeline[In, Out]) Execute(ctx context.Context, input In, opts *options.CompilerOptions) diag.Result[Out] {
	if !p.built {
		panic(errors.AssertionFailedf("pipeline %s: Execute before Build", p.name))
	}
	if opts == nil {
		opts = options.Default()
	}
	tracer := trace.FromContext(ctx)
	timer := observ.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "pipeline:"+p.name, trace.CurrentSpan(ctx).SpanID)
	defer root.End("")

	values := make([]any, len(p.stages))
	var diags []*diag.Diagnostic
	for i, b := range p.stages {
		if ctx.Err() != nil {
			return diag.CancelledResult[Out](diags...)
		}
		in := any(input)
		if b.source != initial {
			in = values[b.source]
		}

		span := trace.Begin(tracer, trace.ScopePass, b.stage.Name(), root.ID())
		phase := timer.Start(b.stage.Name())
		sctx := trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})
		started := time.Now()
		out, stageDiags, cancelled := b.stage.run(sctx, b.convert(in), opts)
		stageDiags = diag.AdjustAll(opts, stageDiags)
		diag.Sort(stageDiags)
		diags = append(diags, stageDiags...)
		note := strconv.Itoa(len(stageDiags)) + " diagnostics"
		timer.Finish(phase, observ.Outcome{
			Diagnostics: len(stageDiags),
			Errors:      diag.CountSeverity(stageDiags, diag.SevError),
			Cancelled:   cancelled,
		})
		span.WithExtra("diagnostics", strconv.Itoa(len(stageDiags))).
			WithExtra("elapsed", time.Since(started).String()).
			End(note)

		if cancelled {
			root.Point("cancelled", b.stage.Name())
			return diag.CancelledResult[Out](diags...)
		}
		if diag.HasErrors(diags) {
			root.Point("stopped", b.stage.Name())
			return diag.Failed[Out](diags...)
		}
		values[i] = out
	}

	var last any = input
	if n := len(p.stages); n > 0 {
		last = values[n-1]
	}
	return diag.NewResult(p.final(last).(Out), diags...)
}
