package diag

import (
	"fmt"
	"sync"
)

// Reporter is the minimal sink stages and translators report into.
// Implementations: *Bag, *List, *DedupReporter.
type Reporter interface {
	Report(d *Diagnostic)
}

// DedupReporter forwards each diagnostic whose key it has not seen yet.
type DedupReporter struct {
	Next Reporter

	key  func(*Diagnostic) string
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewDedupReporter forwards to next. A nil key dedups on the
// (id, location, message) triple.
func NewDedupReporter(next Reporter, key func(*Diagnostic) string) *DedupReporter {
	if key == nil {
		key = locationKey
	}
	return &DedupReporter{Next: next, key: key, seen: make(map[string]struct{})}
}

func locationKey(d *Diagnostic) string {
	return fmt.Sprintf("%s|%s|%s", d.ID, d.Location, d.Message)
}

// Report forwards d unless a diagnostic with the same key was forwarded before.
func (r *DedupReporter) Report(d *Diagnostic) {
	if r == nil || r.Next == nil || d == nil {
		return
	}
	key := r.key(d)
	r.mu.Lock()
	_, dup := r.seen[key]
	if !dup {
		r.seen[key] = struct{}{}
	}
	r.mu.Unlock()
	if !dup {
		r.Next.Report(d)
	}
}

// Adjuster rewrites severities according to compilation options.
// Adjust returns false when the diagnostic is suppressed.
type Adjuster interface {
	Adjust(d *Diagnostic) (*Diagnostic, bool)
}

// AdjustAll applies a to every diagnostic, dropping suppressed ones.
// A nil adjuster returns diags unchanged.
func AdjustAll(a Adjuster, diags []*Diagnostic) []*Diagnostic {
	if a == nil {
		return diags
	}
	out := make([]*Diagnostic, 0, len(diags))
	for _, d := range diags {
		if nd, keep := a.Adjust(d); keep {
			out = append(out, nd)
		}
	}
	return out
}
