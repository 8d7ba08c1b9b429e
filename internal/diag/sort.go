package diag

import "sort"

// Less orders diagnostics by path, offset, severity (errors first), id and message.
func Less(a, b *Diagnostic) bool {
	pa, pb := a.Path(), b.Path()
	if pa != pb {
		return pa < pb
	}
	var sa, sb uint32
	if a.Location != nil {
		sa = a.Location.Span.Start
	}
	if b.Location != nil {
		sb = b.Location.Span.Start
	}
	if sa != sb {
		return sa < sb
	}
	if a.Severity != b.Severity {
		return a.Severity > b.Severity
	}
	if a.ID != b.ID {
		return a.ID < b.ID
	}
	return a.Message < b.Message
}

// Sort orders diags in place, deterministically.
func Sort(diags []*Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool { return Less(diags[i], diags[j]) })
}

// CountSeverity counts the diagnostics of exactly sev.
func CountSeverity(diags []*Diagnostic, sev Severity) int {
	n := 0
	for _, d := range diags {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any of diags is an error.
func HasErrors(diags []*Diagnostic) bool {
	for _, d := range diags {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}
