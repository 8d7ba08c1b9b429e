package pipeline

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cs2ts/internal/diag"
	"cs2ts/internal/observ"
	"cs2ts/internal/options"
)

var (
	rawText   = NewTag[string]("RawText")
	upperText = NewTag[string]("UpperText")
	length    = NewTag[int]("Length")
	label     = NewTag[string]("Label")
)

func upper() Stage {
	return NewStage("Upper", rawText, upperText,
		func(_ context.Context, in string, _ *options.CompilerOptions) diag.Result[string] {
			return diag.NewResult(strings.ToUpper(in))
		})
}

func measure(in Tag[string]) Stage {
	return NewStage("Measure", in, length,
		func(_ context.Context, s string, _ *options.CompilerOptions) diag.Result[int] {
			return diag.NewResult(len(s))
		})
}

func TestLinearPipeline(t *testing.T) {
	p := New("linear", rawText, length, nil)
	require.NoError(t, p.AddStage(upper()))
	require.NoError(t, p.AddStage(measure(upperText)))
	require.NoError(t, p.Build())
	require.Equal(t, []string{"Upper", "Measure"}, p.Stages())

	res := p.Execute(context.Background(), "hello", nil)
	require.True(t, res.Success())
	require.Equal(t, 5, res.Value)
}

func TestAddStageRejectsUnsatisfiedInput(t *testing.T) {
	p := New("bad", rawText, length, nil)
	err := p.AddStage(measure(upperText))
	require.Error(t, err)
	require.Contains(t, err.Error(), "UpperText")
	require.Empty(t, p.Stages())
}

func TestSameGoTypeIsNotEnough(t *testing.T) {
	p := New("types", rawText, label, nil)
	require.NoError(t, p.AddStage(upper()))
	require.Error(t, p.Build(), "UpperText does not satisfy Label without an edge")
}

func TestMostRecentOutputWins(t *testing.T) {
	first := NewStage("First", rawText, upperText,
		func(context.Context, string, *options.CompilerOptions) diag.Result[string] {
			return diag.NewResult("one")
		})
	second := NewStage("Second", upperText, upperText,
		func(_ context.Context, in string, _ *options.CompilerOptions) diag.Result[string] {
			return diag.NewResult(in + "+two")
		})
	p := New("recent", rawText, length, nil).
		MustAddStage(first, second, measure(upperText)).
		MustBuild()

	res := p.Execute(context.Background(), "", nil)
	require.True(t, res.Success())
	require.Equal(t, len("one+two"), res.Value)
}

func TestGraphEdgesConvert(t *testing.T) {
	g := NewGraph()
	Connect(g, length, label, func(n int) string { return "n=" + strconv.Itoa(n) })

	p := New("graph", rawText, label, g)
	require.NoError(t, p.AddStage(measure(rawText)))
	require.NoError(t, p.Build())

	res := p.Execute(context.Background(), "abc", nil)
	require.Equal(t, "n=3", res.Value)

	shout := NewStage("Shout", label, upperText,
		func(_ context.Context, s string, _ *options.CompilerOptions) diag.Result[string] {
			return diag.NewResult(strings.ToUpper(s))
		})
	chained := New("chained", rawText, upperText, g).MustAddStage(measure(rawText), shout).MustBuild()
	require.Equal(t, "N=4", chained.Execute(context.Background(), "abcd", nil).Value)
}

func TestGraphFollowsMultipleEdges(t *testing.T) {
	g := NewGraph()
	mid := NewTag[int]("Doubled")
	Connect(g, length, mid, func(n int) int { return n * 2 })
	Connect(g, mid, label, func(n int) string { return strconv.Itoa(n) })

	p := New("multi", rawText, label, g).MustAddStage(measure(rawText)).MustBuild()
	require.Equal(t, "6", p.Execute(context.Background(), "abc", nil).Value)
}

func TestEmptyPipelineNeedsCompatibleEnds(t *testing.T) {
	require.NoError(t, New("identity", rawText, rawText, nil).Build())
	require.Error(t, New("mismatch", rawText, upperText, nil).Build())

	p := New("identity", rawText, rawText, nil).MustBuild()
	require.Equal(t, "x", p.Execute(context.Background(), "x", nil).Value)
}

func TestAddStageAfterBuild(t *testing.T) {
	p := New("frozen", rawText, upperText, nil).MustAddStage(upper()).MustBuild()
	require.Error(t, p.AddStage(upper()))
}

func TestExecuteBeforeBuildPanics(t *testing.T) {
	p := New("unbuilt", rawText, upperText, nil).MustAddStage(upper())
	require.Panics(t, func() { p.Execute(context.Background(), "x", nil) })
}

func TestErrorStopsThePipeline(t *testing.T) {
	ran := false
	failing := NewStage("Fail", rawText, upperText,
		func(context.Context, string, *options.CompilerOptions) diag.Result[string] {
			return diag.NewResult("partial",
				diag.New(diag.TrUnknownType, nil, "unknown type"),
				diag.New(diag.TrUnresolvedSymbol, nil, "cannot resolve"))
		})
	after := NewStage("After", upperText, length,
		func(context.Context, string, *options.CompilerOptions) diag.Result[int] {
			ran = true
			return diag.NewResult(1)
		})
	p := New("stop", rawText, length, nil).MustAddStage(failing, after).MustBuild()

	res := p.Execute(context.Background(), "x", nil)
	require.False(t, res.Success())
	require.False(t, res.Cancelled)
	require.False(t, ran)
	require.Zero(t, res.Value)
	require.Len(t, res.Diagnostics, 2)
	require.Equal(t, diag.SevError, res.Diagnostics[0].Severity, "errors sort first at the same location")
}

func TestWarningsDoNotStop(t *testing.T) {
	warn := NewStage("Warn", rawText, upperText,
		func(_ context.Context, s string, _ *options.CompilerOptions) diag.Result[string] {
			return diag.NewResult(s, diag.New(diag.TrUnknownType, nil, "unknown type"))
		})
	p := New("warn", rawText, length, nil).MustAddStage(warn, measure(upperText)).MustBuild()

	res := p.Execute(context.Background(), "abc", nil)
	require.True(t, res.Success())
	require.Equal(t, 3, res.Value)
	require.Len(t, res.Diagnostics, 1)

	strict := options.Default().WithWarningsAsErrors()
	res = p.Execute(context.Background(), "abc", strict)
	require.False(t, res.Success())
	require.Equal(t, diag.SevError, res.Diagnostics[0].Severity)

	quiet := options.Default().WithDiagnosticOption(diag.TrUnknownType.ID(), options.OptionSuppress)
	res = p.Execute(context.Background(), "abc", quiet)
	require.True(t, res.Success())
	require.Empty(t, res.Diagnostics)
}

func TestCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stop := NewStage("Stop", rawText, upperText,
		func(_ context.Context, s string, _ *options.CompilerOptions) diag.Result[string] {
			cancel()
			return diag.NewResult(s, diag.New(diag.TrUnknownType, nil, "before cancel"))
		})
	ran := false
	after := NewStage("After", upperText, length,
		func(context.Context, string, *options.CompilerOptions) diag.Result[int] {
			ran = true
			return diag.NewResult(0)
		})
	p := New("cancel", rawText, length, nil).MustAddStage(stop, after).MustBuild()

	res := p.Execute(ctx, "x", nil)
	require.True(t, res.Cancelled)
	require.False(t, ran)
	require.Len(t, res.Diagnostics, 1)
}

func TestStageReportsCancellation(t *testing.T) {
	stop := NewStage("Stop", rawText, upperText,
		func(context.Context, string, *options.CompilerOptions) diag.Result[string] {
			return diag.CancelledResult[string]()
		})
	p := New("cancel", rawText, upperText, nil).MustAddStage(stop).MustBuild()
	require.True(t, p.Execute(context.Background(), "x", nil).Cancelled)
}

func TestStagesAreTimed(t *testing.T) {
	tm := observ.NewTimer()
	ctx := observ.WithTimer(context.Background(), tm)
	p := New("timed", rawText, length, nil).MustAddStage(upper(), measure(upperText)).MustBuild()
	p.Execute(ctx, "abc", nil)

	rep := tm.Report()
	require.Len(t, rep.Stages, 2)
	require.Equal(t, "Upper", rep.Stages[0].Stage)
	require.Zero(t, rep.Stages[1].Diagnostics)
}
