package trace

import (
	"io"
	"slices"

	"go.uber.org/zap"
)

// ZapTracer logs events as structured zap entries at debug level.
// Span ends that carry a detail are logged at info level.
type ZapTracer struct {
	logger *zap.Logger
	level  Level
	closer io.Closer
}

// NewZapTracer wraps logger. A nil logger behaves like zap.NewNop.
func NewZapTracer(logger *zap.Logger, level Level) *ZapTracer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapTracer{logger: logger.Named("trace"), level: level}
}

// Emit logs ev as one structured record.
func (t *ZapTracer) Emit(ev *Event) {
	if t.level < LevelPhase || (!t.level.ShouldEmit(ev.Scope) && ev.Kind != KindHeartbeat) {
		return
	}
	ev.Seq = NextSeq()
	fields := make([]zap.Field, 0, 8+len(ev.Extra))
	fields = append(fields,
		zap.String("kind", ev.Kind.String()),
		zap.String("scope", ev.Scope.String()),
		zap.Uint64("seq", ev.Seq),
		zap.Uint64("span", ev.SpanID),
	)
	if ev.ParentID != 0 {
		fields = append(fields, zap.Uint64("parent", ev.ParentID))
	}
	if ev.GID != 0 {
		fields = append(fields, zap.Uint64("gid", ev.GID))
	}
	if ev.Detail != "" {
		fields = append(fields, zap.String("detail", ev.Detail))
	}
	if ev.Kind == KindSpanEnd {
		fields = append(fields, zap.Duration("dur", ev.Dur))
	}
	keys := make([]string, 0, len(ev.Extra))
	for k := range ev.Extra {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fields = append(fields, zap.String(k, ev.Extra[k]))
	}
	if ev.Kind == KindSpanEnd && ev.Detail != "" {
		t.logger.Info(ev.Name, fields...)
		return
	}
	t.logger.Debug(ev.Name, fields...)
}

// Flush syncs the logger. Sync errors on terminals are ignored.
func (t *ZapTracer) Flush() error {
	_ = t.logger.Sync()
	return nil
}

// Close syncs the logger and closes the output it owns.
func (t *ZapTracer) Close() error {
	_ = t.Flush()
	if t.closer != nil {
		return t.closer.Close()
	}
	return nil
}

// Level returns the recording level.
func (t *ZapTracer) Level() Level { return t.level }

// Enabled reports whether the level is above off.
func (t *ZapTracer) Enabled() bool { return t.level > LevelOff }
