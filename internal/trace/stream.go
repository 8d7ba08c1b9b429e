package trace

import (
	"io"
	"sync"
)

// StreamTracer writes each event to w as soon as it is emitted. Write
// errors are dropped so tracing never fails a compilation.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
}

// NewStreamTracer writes events to w as they happen.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	if format == FormatAuto || format == FormatZap {
		format = FormatText
	}
	return &StreamTracer{w: w, level: level, format: format}
}

// Emit formats ev and writes it to the stream.
func (t *StreamTracer) Emit(ev *Event) {
	if t.level < LevelPhase || (!t.level.ShouldEmit(ev.Scope) && ev.Kind != KindHeartbeat) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	ev.Seq = NextSeq()
	_, _ = t.w.Write(FormatEvent(ev, t.format))
}

// Flush syncs or flushes the writer when it supports either.
func (t *StreamTracer) Flush() error {
	if f, ok := t.w.(interface{ Sync() error }); ok {
		return f.Sync()
	}
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes w when it is a Closer other than stderr.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.w.(io.Closer); ok && !isStdStream(t.w) {
		return c.Close()
	}
	return nil
}

// Level returns the recording level.
func (t *StreamTracer) Level() Level { return t.level }

// Enabled reports whether the level is above off.
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
