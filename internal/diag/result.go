package diag

// Result pairs a stage value with the diagnostics produced while computing it.
// Success is exactly the absence of error diagnostics; warnings never flip it.
// Cancelled marks a run stopped by its context and is not an error.
type Result[T any] struct {
	Value       T
	Diagnostics []*Diagnostic
	Cancelled   bool
}

// NewResult copies diags so later appends by the caller do not leak in.
func NewResult[T any](value T, diags ...*Diagnostic) Result[T] {
	return Result[T]{Value: value, Diagnostics: append([]*Diagnostic(nil), diags...)}
}

// Failed returns a result with the zero value.
func Failed[T any](diags ...*Diagnostic) Result[T] {
	var zero T
	return NewResult(zero, diags...)
}

// CancelledResult keeps the partial diagnostics collected before cancellation.
func CancelledResult[T any](diags ...*Diagnostic) Result[T] {
	r := Failed[T](diags...)
	r.Cancelled = true
	return r
}

// ErrorCount counts error diagnostics.
func (r Result[T]) ErrorCount() int {
	return CountSeverity(r.Diagnostics, SevError)
}

// WarningCount counts warning diagnostics.
func (r Result[T]) WarningCount() int {
	return CountSeverity(r.Diagnostics, SevWarning)
}

// HasErrors reports whether any diagnostic is an error.
func (r Result[T]) HasErrors() bool {
	return HasErrors(r.Diagnostics)
}

// Success reports whether the result carries no error. Warnings and cancellation do not count.
func (r Result[T]) Success() bool {
	return !r.HasErrors()
}
