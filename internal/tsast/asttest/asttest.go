// Package asttest compares TypeScript nodes by their emitted text.
// Emission-based equality is exact but costly, so it lives here and is
// meant for tests and golden diffs only.
package asttest

import (
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"

	"cs2ts/internal/emit"
	"cs2ts/internal/tsast"
)

// Text emits n with default options.
func Text(tb testing.TB, n tsast.Node) string {
	tb.Helper()
	s, err := emit.String(n, emit.DefaultOptions())
	if err != nil {
		tb.Fatalf("emit %s: %v", n.Kind(), err)
	}
	return s
}

// Equal reports whether a and b print byte-identical text.
func Equal(a, b tsast.Node) bool {
	sa, errA := emit.String(a, emit.DefaultOptions())
	sb, errB := emit.String(b, emit.DefaultOptions())
	return errA == nil && errB == nil && sa == sb
}

// AssertEqual fails with a line diff when want and got print differently.
func AssertEqual(tb testing.TB, want, got tsast.Node) {
	tb.Helper()
	AssertText(tb, Text(tb, want), got)
}

// AssertText fails with a line diff when n does not print as want.
func AssertText(tb testing.TB, want string, n tsast.Node) {
	tb.Helper()
	got := Text(tb, n)
	if got != want {
		tb.Errorf("%s emits differently (-want +got):\n%s", n.Kind(), LineDiff(want, got))
	}
}

// LineDiff renders a unified-style line diff of two texts.
func LineDiff(want, got string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(want, got)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix + strings.TrimSuffix(line, "\n") + "\n")
		}
	}
	return out.String()
}
