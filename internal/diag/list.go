package diag

import (
	"slices"
	"sync/atomic"
)

// List is an append-only diagnostic list shared by the parallel tasks of a stage.
// Appends publish a fresh slice through compare-and-swap, so readers always
// see a consistent prefix and writers never block each other.
type List struct {
	items atomic.Pointer[[]*Diagnostic]
}

// Append adds diags in order. It retries until its snapshot wins the swap.
func (l *List) Append(diags ...*Diagnostic) {
	if len(diags) == 0 {
		return
	}
	for {
		old := l.items.Load()
		var cur []*Diagnostic
		if old != nil {
			cur = *old
		}
		next := make([]*Diagnostic, 0, len(cur)+len(diags))
		next = append(append(next, cur...), diags...)
		if l.items.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Report makes List a Reporter.
func (l *List) Report(d *Diagnostic) {
	l.Append(d)
}

// Snapshot returns a copy of everything appended so far.
func (l *List) Snapshot() []*Diagnostic {
	p := l.items.Load()
	if p == nil {
		return nil
	}
	return slices.Clone(*p)
}

// Sorted returns a deterministic copy, independent of append interleaving.
func (l *List) Sorted() []*Diagnostic {
	out := l.Snapshot()
	Sort(out)
	return out
}

// Len returns the number of appended diagnostics.
func (l *List) Len() int {
	p := l.items.Load()
	if p == nil {
		return 0
	}
	return len(*p)
}

// HasErrors reports whether any appended diagnostic is an error.
func (l *List) HasErrors() bool {
	p := l.items.Load()
	return p != nil && HasErrors(*p)
}
