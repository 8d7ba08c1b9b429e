package observ

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerRecordsStages(t *testing.T) {
	tm := NewTimer()
	open := tm.Start("OpenProject")
	tm.Finish(open, Outcome{Diagnostics: 2})
	emit := tm.Start("Emit")
	tm.Finish(emit, Outcome{Diagnostics: 1, Errors: 1})
	tm.Finish(emit, Outcome{Cancelled: true})
	tm.Finish(42, Outcome{})
	tm.Start("Write")

	rep := tm.Report()
	require.Len(t, rep.Stages, 2, "unfinished stages are left out")
	assert.Equal(t, "OpenProject", rep.Stages[0].Stage)
	assert.Equal(t, 2, rep.Stages[0].Diagnostics)
	assert.Equal(t, 1, rep.Stages[1].Errors)
	assert.False(t, rep.Stages[1].Cancelled, "a stage finishes once")
	assert.GreaterOrEqual(t, rep.TotalMillis, rep.Stages[0].Millis)

	sum := tm.Summary()
	assert.Contains(t, sum, "OpenProject")
	assert.Contains(t, sum, "1 errors")
	assert.Contains(t, sum, "total")
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	h := tm.Start("x")
	tm.Finish(h, Outcome{})
	assert.Equal(t, -1, h)
	assert.Empty(t, tm.Report().Stages)
	assert.Nil(t, FromContext(context.Background()))
}

func TestTimerContext(t *testing.T) {
	tm := NewTimer()
	ctx := WithTimer(context.Background(), tm)
	assert.Same(t, tm, FromContext(ctx))
}
