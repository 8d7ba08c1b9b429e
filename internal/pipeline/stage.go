package pipeline

import (
	"context"

	"cs2ts/internal/diag"
	"cs2ts/internal/options"
)

// Stage is one step of a pipeline. Build stages with NewStage.
type Stage interface {
	Name() string
	input() *tag
	output() *tag
	run(ctx context.Context, in any, opts *options.CompilerOptions) (any, []*diag.Diagnostic, bool)
}

// Func is the body of a stage. It reports problems of the program being
// compiled as diagnostics, never as Go errors, and returns a cancelled
// result with the diagnostics gathered so far when ctx is done.
type Func[In, Out any] func(ctx context.Context, in In, opts *options.CompilerOptions) diag.Result[Out]

type stage[In, Out any] struct {
	name string
	in   Tag[In]
	out  Tag[Out]
	fn   Func[In, Out]
}

// NewStage wraps fn as a stage from in to out.
func NewStage[In, Out any](name string, in Tag[In], out Tag[Out], fn Func[In, Out]) Stage {
	return &stage[In, Out]{name: name, in: in, out: out, fn: fn}
}

func (s *stage[In, Out]) Name() string { return s.name }
func (s *stage[In, Out]) input() *tag  { return s.in.t }
func (s *stage[In, Out]) output() *tag { return s.out.t }

func (s *stage[In, Out]) run(ctx context.Context, in any, opts *options.CompilerOptions) (any, []*diag.Diagnostic, bool) {
	res := s.fn(ctx, in.(In), opts)
	return res.Value, res.Diagnostics, res.Cancelled
}
