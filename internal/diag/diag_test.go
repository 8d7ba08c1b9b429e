package diag

import (
	"fmt"
	"sync"
	"testing"

	"cs2ts/internal/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loc(path string, start uint32, line uint32) *Location {
	return &Location{Path: path, Span: source.Span{Start: start, End: start + 1}, Pos: source.LineCol{Line: line, Col: 1}}
}

func TestResultSuccessIgnoresWarnings(t *testing.T) {
	r := NewResult(42,
		New(ValStructAsClass, nil, "struct Point"),
		New(TrImportedTypeSkipped, nil, "Window"),
	)
	assert.True(t, r.Success())
	assert.Equal(t, 0, r.ErrorCount())
	assert.Equal(t, 1, r.WarningCount())

	r.Diagnostics = append(r.Diagnostics, New(TrUnresolvedSymbol, nil, "unresolved symbol 'x'"))
	assert.False(t, r.Success())
	assert.True(t, r.HasErrors())
	assert.Equal(t, 1, r.ErrorCount())
}

func TestResultCancelledKeepsDiagnostics(t *testing.T) {
	w := New(ValStructAsClass, nil, "struct Point")
	r := CancelledResult[string](w)
	assert.True(t, r.Cancelled)
	assert.Equal(t, "", r.Value)
	require.Len(t, r.Diagnostics, 1)
	assert.Same(t, w, r.Diagnostics[0])
}

func TestCodeDefaults(t *testing.T) {
	d := New(TrUnresolvedSymbol, loc("a.cs", 3, 1), "unresolved symbol '%s'", "Foo")
	assert.Equal(t, "CST2001", d.ID)
	assert.Equal(t, SevError, d.Severity)
	assert.False(t, d.IsSeverityConfigurable)
	assert.Equal(t, "unresolved symbol 'Foo'", d.Message)
	assert.Equal(t, CategoryTranslation, d.Category)

	w := New(ValStructAsClass, nil, "struct")
	assert.True(t, w.IsSeverityConfigurable)
	assert.Equal(t, 2, w.WarningLevel)
}

func TestListConcurrentAppend(t *testing.T) {
	var l List
	var wg sync.WaitGroup
	for w := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 50 {
				l.Append(New(TrUnsupportedSyntax, loc(fmt.Sprintf("doc%02d.cs", w), uint32(i), 1), "x"))
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 16*50, l.Len())
	sorted := l.Sorted()
	for i := 1; i < len(sorted); i++ {
		assert.False(t, Less(sorted[i], sorted[i-1]), "not sorted at %d", i)
	}
	assert.True(t, l.HasErrors())
}

func TestListSnapshotIsCopy(t *testing.T) {
	var l List
	assert.Nil(t, l.Snapshot())
	l.Append(New(ValStructAsClass, nil, "a"))
	snap := l.Snapshot()
	l.Append(New(ValStructAsClass, nil, "b"))
	assert.Len(t, snap, 1)
	assert.Equal(t, 2, l.Len())
}

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	assert.True(t, b.Add(New(TrUnresolvedSymbol, loc("a.cs", 1, 1), "x")))
	assert.True(t, b.HasErrors())
	b.Report(New(ValStructAsClass, loc("a.cs", 2, 1), "y"))
	assert.False(t, b.Add(New(TrUnresolvedSymbol, loc("a.cs", 3, 1), "z")))
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, "y", b.Items()[1].Message)

	unbounded := NewBag(0)
	for range 5 {
		unbounded.Report(New(ValStructAsClass, nil, "w"))
	}
	assert.Equal(t, 5, unbounded.Len())
	assert.False(t, unbounded.HasErrors())
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(bag, nil)
	for range 3 {
		r.Report(New(TrUnresolvedSymbol, loc("a.cs", 10, 2), "unresolved symbol 'Foo'"))
	}
	r.Report(New(TrUnresolvedSymbol, loc("a.cs", 10, 2), "unresolved symbol 'Bar'"))
	r.Report(New(TrUnresolvedSymbol, loc("a.cs", 40, 5), "unresolved symbol 'Bar'"))
	assert.Equal(t, 3, bag.Len(), "the default key includes the location")

	byMessage := NewBag(0)
	r = NewDedupReporter(byMessage, func(d *Diagnostic) string { return d.ID + "|" + d.Message })
	r.Report(New(TrUnresolvedSymbol, loc("a.cs", 10, 2), "unresolved symbol 'Bar'"))
	r.Report(New(TrUnresolvedSymbol, loc("a.cs", 40, 5), "unresolved symbol 'Bar'"))
	assert.Equal(t, 1, byMessage.Len())
}

type dropWarnings struct{}

func (dropWarnings) Adjust(d *Diagnostic) (*Diagnostic, bool) {
	return d, d.Severity != SevWarning
}

func TestAdjustAll(t *testing.T) {
	in := []*Diagnostic{New(ValStructAsClass, nil, "w"), New(TrUnsupportedSyntax, nil, "e")}
	assert.Equal(t, in, AdjustAll(nil, in))
	out := AdjustAll(dropWarnings{}, in)
	require.Len(t, out, 1)
	assert.Equal(t, SevError, out[0].Severity)
}

func TestFormatShort(t *testing.T) {
	diags := []*Diagnostic{
		New(TrUnresolvedSymbol, loc("src/A.cs", 4, 3), "unresolved symbol 'Foo'"),
		New(PrjNoTypeDeclaration, loc("src/AssemblyInfo.cs", 0, 1), "skipped"),
		External("CS1002", SevError, nil, "; expected\nhere"),
	}
	got := FormatShort(diags, false, false)
	want := "error CST2001 src/A.cs:3:1 unresolved symbol 'Foo'\n" +
		"error CS1002 ; expected here"
	assert.Equal(t, want, got)
}

func TestParseSeverity(t *testing.T) {
	for _, s := range []Severity{SevHidden, SevInfo, SevWarning, SevError} {
		got, err := ParseSeverity(s.Label())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseSeverity("fatal")
	assert.Error(t, err)
}
