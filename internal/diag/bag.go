package diag

// Bag collects diagnostics of a single unit of work. Not safe for concurrent use.
type Bag struct {
	items []*Diagnostic
	max   int
}

// NewBag creates a bag holding at most max diagnostics; max <= 0 means unbounded.
func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Add returns false when the limit was reached and d was dropped.
func (b *Bag) Add(d *Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Report adds d, dropping it silently once the bag is full.
func (b *Bag) Report(d *Diagnostic) {
	b.Add(d)
}

// Len returns the number of collected diagnostics.
func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the internal slice, do not modify.
func (b *Bag) Items() []*Diagnostic {
	return b.items
}

// HasErrors reports whether any collected diagnostic is an error.
func (b *Bag) HasErrors() bool {
	return HasErrors(b.items)
}
