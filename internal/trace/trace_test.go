package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevelFiltersScopes(t *testing.T) {
	assert.False(t, LevelOff.ShouldEmit(ScopeDriver))
	assert.True(t, LevelError.ShouldEmit(ScopeModule))
	assert.True(t, LevelPhase.ShouldEmit(ScopePass))
	assert.False(t, LevelPhase.ShouldEmit(ScopeModule))
	assert.True(t, LevelDetail.ShouldEmit(ScopeModule))
	assert.False(t, LevelDetail.ShouldEmit(ScopeNode))
	assert.True(t, LevelDebug.ShouldEmit(ScopeNode))
}

func TestParseFlags(t *testing.T) {
	l, err := ParseLevel("DETAIL")
	require.NoError(t, err)
	assert.Equal(t, LevelDetail, l)
	_, err = ParseLevel("loud")
	assert.Error(t, err)

	m, err := ParseMode("both")
	require.NoError(t, err)
	assert.Equal(t, ModeBoth, m)
	_, err = ParseMode("tape")
	assert.Error(t, err)

	f, err := ParseFormat("zap")
	require.NoError(t, err)
	assert.Equal(t, FormatZap, f)
	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestSpanRecordsBeginAndEnd(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	root := Begin(ring, ScopePass, "translate", 0)
	child := Begin(ring, ScopeModule, "translate:A.cs", root.ID()).WithExtra("members", "3")
	child.Point("retry", "once")
	child.End("")
	root.End("2 documents")

	events := ring.Snapshot()
	require.Len(t, events, 5)
	assert.Equal(t, KindSpanBegin, events[0].Kind)
	assert.Equal(t, root.ID(), events[1].ParentID)
	assert.Equal(t, KindPoint, events[2].Kind)
	assert.Equal(t, KindSpanEnd, events[3].Kind)
	assert.Equal(t, "3", events[3].Extra["members"])
	assert.Equal(t, "2 documents", events[4].Detail)
	for i := 1; i < len(events); i++ {
		assert.Greater(t, events[i].Seq, events[i-1].Seq)
	}
}

func TestDisabledSpansAreInert(t *testing.T) {
	s := Begin(Nop, ScopeDriver, "compile", 0)
	require.NotNil(t, s)
	assert.Zero(t, s.ID())
	assert.Same(t, s, s.WithExtra("k", "v"))
	assert.Zero(t, s.End(""))

	ring := NewRingTracer(4, LevelPhase)
	Begin(ring, ScopeNode, "csharp:parse", 0).End("")
	assert.Empty(t, ring.Snapshot())
}

func TestRingKeepsNewest(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		ring.Emit(&Event{Kind: KindPoint, Scope: ScopeNode, Name: name})
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Name)
	}
	assert.Equal(t, []string{"c", "d", "e"}, names)

	var buf bytes.Buffer
	require.NoError(t, ring.Dump(&buf, FormatText))
	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))
}

func TestStreamText(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelPhase, FormatText)
	s := Begin(st, ScopePass, "emit", 0).WithExtra("files", "2")
	Begin(st, ScopeModule, "emit:A.cs", s.ID()).End("")
	s.End("")

	out := buf.String()
	assert.Contains(t, out, "→ emit\n")
	assert.Contains(t, out, "← emit {files=2}")
	assert.NotContains(t, out, "emit:A.cs")
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Begin(st, ScopeDriver, "compile", 0).End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var ev map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &ev))
	assert.Equal(t, "end", ev["kind"])
	assert.Equal(t, "driver", ev["scope"])
	assert.Equal(t, "compile", ev["name"])
	assert.Equal(t, "ok", ev["detail"])
}

func TestZapTracerLogsStructuredFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	zt := NewZapTracer(zap.New(core), LevelDetail)

	s := Begin(zt, ScopePass, "symbols", 0).WithExtra("documents", "4")
	Begin(zt, ScopeNode, "csharp:bind", s.ID()).End("")
	s.End("done")
	require.NoError(t, zt.Close())

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "symbols", entries[0].Message)
	assert.Equal(t, "trace", entries[0].LoggerName)

	end := entries[1]
	assert.Equal(t, zapcore.InfoLevel, end.Level)
	fields := end.ContextMap()
	assert.Equal(t, "end", fields["kind"])
	assert.Equal(t, "pass", fields["scope"])
	assert.Equal(t, "4", fields["documents"])
	assert.Equal(t, "done", fields["detail"])
	assert.Contains(t, fields, "dur")
}

func TestNewBuildsSinks(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	require.NoError(t, err)
	assert.False(t, tr.Enabled())

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	require.NoError(t, err)
	Begin(tr, ScopePass, "validate", 0).End("")
	assert.Contains(t, buf.String(), "validate")

	var dump bytes.Buffer
	ok, err := Dump(tr, &dump, FormatText)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, strings.Count(dump.String(), "validate"))

	tr, err = New(Config{Level: LevelPhase, Mode: ModeStream, Output: &buf})
	require.NoError(t, err)
	ok, err = Dump(tr, &dump, FormatText)
	require.NoError(t, err)
	assert.False(t, ok)

	buf.Reset()
	tr, err = New(Config{Level: LevelPhase, Mode: ModeStream, Format: FormatZap, Output: &buf})
	require.NoError(t, err)
	Begin(tr, ScopeDriver, "compile", 0).End("")
	require.NoError(t, tr.Flush())
	assert.Contains(t, buf.String(), `"msg":"compile"`)

	_, err = New(Config{Level: LevelPhase})
	assert.Error(t, err)
}

func TestContextPropagation(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, Nop, FromContext(ctx))
	assert.Zero(t, CurrentSpan(ctx).SpanID)

	ring := NewRingTracer(4, LevelDebug)
	ctx = WithTracer(ctx, ring)
	ctx = WithSpanContext(ctx, SpanContext{SpanID: 42})
	assert.Equal(t, Tracer(ring), FromContext(ctx))
	assert.Equal(t, uint64(42), CurrentSpan(ctx).SpanID)
	assert.Equal(t, Nop, FromContext(WithTracer(context.Background(), nil)))
}

func TestHeartbeat(t *testing.T) {
	assert.Nil(t, StartHeartbeat(Nop, time.Millisecond))
	var nilBeat *Heartbeat
	nilBeat.Stop()

	ring := NewRingTracer(64, LevelPhase)
	h := StartHeartbeat(ring, time.Millisecond)
	require.NotNil(t, h)
	require.Eventually(t, func() bool {
		for _, ev := range ring.Snapshot() {
			if ev.Kind == KindHeartbeat {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
	h.Stop()
	h.Stop()
}
