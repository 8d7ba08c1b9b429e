// Package observ times pipeline stages for the --timings report.
package observ

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Outcome is what a stage reported when it finished.
type Outcome struct {
	Diagnostics int
	Errors      int
	Cancelled   bool
}

type stageTiming struct {
	name    string
	start   time.Time
	dur     time.Duration
	outcome Outcome
	done    bool
}

// Timer collects stage timings. A nil *Timer discards everything, so
// callers never need to check whether timing was requested.
type Timer struct {
	mu     sync.Mutex
	stages []stageTiming
}

// NewTimer returns an empty timer.
func NewTimer() *Timer { return &Timer{} }

// Start opens a stage and returns its handle for Finish.
func (t *Timer) Start(name string) int {
	if t == nil {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stages = append(t.stages, stageTiming{name: name, start: time.Now()})
	return len(t.stages) - 1
}

// Finish closes the stage opened under handle. Unknown or already
// finished handles are ignored.
func (t *Timer) Finish(handle int, out Outcome) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if handle < 0 || handle >= len(t.stages) || t.stages[handle].done {
		return
	}
	s := &t.stages[handle]
	s.dur = time.Since(s.start)
	s.outcome = out
	s.done = true
}

// StageReport is one row of a Report.
type StageReport struct {
	Stage       string  `json:"stage"`
	Millis      float64 `json:"ms"`
	Diagnostics int     `json:"diagnostics"`
	Errors      int     `json:"errors,omitempty"`
	Cancelled   bool    `json:"cancelled,omitempty"`
}

// Report is the serialised form of a Timer.
type Report struct {
	TotalMillis float64       `json:"total_ms"`
	Stages      []StageReport `json:"stages"`
}

// Report lists finished stages in the order they started.
func (t *Timer) Report() Report {
	var rep Report
	if t == nil {
		return rep
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	var total time.Duration
	for _, s := range t.stages {
		if !s.done {
			continue
		}
		total += s.dur
		rep.Stages = append(rep.Stages, StageReport{
			Stage:       s.name,
			Millis:      millis(s.dur),
			Diagnostics: s.outcome.Diagnostics,
			Errors:      s.outcome.Errors,
			Cancelled:   s.outcome.Cancelled,
		})
	}
	rep.TotalMillis = millis(total)
	return rep
}

// Summary renders the report as an aligned table.
func (t *Timer) Summary() string {
	rep := t.Report()
	var b strings.Builder
	fmt.Fprintf(&b, "%-32s %10s %6s\n", "stage", "ms", "diags")
	for _, s := range rep.Stages {
		fmt.Fprintf(&b, "%-32s %10.2f %6d", s.Stage, s.Millis, s.Diagnostics)
		switch {
		case s.Cancelled:
			b.WriteString("  cancelled")
		case s.Errors > 0:
			fmt.Fprintf(&b, "  %d errors", s.Errors)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%-32s %10.2f\n", "total", rep.TotalMillis)
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

type timerKey struct{}

// WithTimer attaches t to ctx so pipeline stages get timed.
func WithTimer(ctx context.Context, t *Timer) context.Context {
	return context.WithValue(ctx, timerKey{}, t)
}

// FromContext returns the timer attached to ctx, or nil.
func FromContext(ctx context.Context) *Timer {
	if ctx == nil {
		return nil
	}
	t, _ := ctx.Value(timerKey{}).(*Timer)
	return t
}
