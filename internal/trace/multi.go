package trace

import (
	"io"

	"github.com/cockroachdb/errors"
)

// MultiTracer fans events out to several tracers.
type MultiTracer struct {
	tracers []Tracer
	level   Level
}

// NewMultiTracer fans events out to tracers. Each tracer gets its own copy.
func NewMultiTracer(level Level, tracers ...Tracer) *MultiTracer {
	return &MultiTracer{tracers: tracers, level: level}
}

// Emit hands each tracer its own copy since sinks stamp Seq.
func (t *MultiTracer) Emit(ev *Event) {
	for _, tr := range t.tracers {
		cp := *ev
		tr.Emit(&cp)
	}
}

// Flush flushes every tracer and returns the first error.
func (t *MultiTracer) Flush() error {
	var errs error
	for _, tr := range t.tracers {
		errs = errors.CombineErrors(errs, tr.Flush())
	}
	return errs
}

// Close closes every tracer and returns the first error.
func (t *MultiTracer) Close() error {
	var errs error
	for _, tr := range t.tracers {
		errs = errors.CombineErrors(errs, tr.Close())
	}
	return errs
}

// Level returns the level given to NewMultiTracer.
func (t *MultiTracer) Level() Level { return t.level }

// Enabled reports whether the level is above off.
func (t *MultiTracer) Enabled() bool { return t.level > LevelOff }

// Dump writes the contents of the first ring buffer reachable from t.
// It reports false when t keeps no ring.
func Dump(t Tracer, w io.Writer, format Format) (bool, error) {
	switch t := t.(type) {
	case *RingTracer:
		return true, t.Dump(w, format)
	case *MultiTracer:
		for _, tr := range t.tracers {
			if ok, err := Dump(tr, w, format); ok {
				return true, err
			}
		}
	}
	return false, nil
}
