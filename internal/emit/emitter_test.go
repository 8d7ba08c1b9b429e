package emit

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, opt Options, fn func(e *Emitter)) string {
	t.Helper()
	var b strings.Builder
	e := New(&b, opt)
	fn(e)
	require.NoError(t, e.Err())
	return b.String()
}

func TestWriteInsertsSpaceBetweenWords(t *testing.T) {
	got := render(t, DefaultOptions(), func(e *Emitter) {
		e.Write("export")
		e.Write("abstract")
		e.Write("class")
		e.Write("Foo")
	})
	assert.Equal(t, "export abstract class Foo", got)
}

func TestWriteNeverDoublesSpaces(t *testing.T) {
	got := render(t, DefaultOptions(), func(e *Emitter) {
		e.Write("return ")
		e.Write(" x")
		e.Write(" ")
		e.Write(" + ")
		e.Write(" 1")
	})
	assert.Equal(t, "return x + 1", got)
}

func TestDeferredSpaceDroppedBeforePunctuation(t *testing.T) {
	got := render(t, DefaultOptions(), func(e *Emitter) {
		e.Write("return ")
		e.Write(";")
		e.Write("f(")
		e.Write("a ")
		e.Write(")")
	})
	assert.Equal(t, "return;f(a)", got)
}

func TestWriteLineDropsTrailingSpace(t *testing.T) {
	got := render(t, DefaultOptions(), func(e *Emitter) {
		e.WriteLine("let x = ")
		e.WriteLine("")
		e.Write("done ")
	})
	assert.Equal(t, "let x =\n\ndone", got)
}

func TestIndentationIsLazy(t *testing.T) {
	got := render(t, DefaultOptions(), func(e *Emitter) {
		e.WriteLine("a")
		e.Indented(func() {
			e.WriteLine("b")
			e.WriteLine("")
			e.Indented(func() { e.WriteLine("c") })
		})
		e.Write("d")
	})
	assert.Equal(t, "a\n  b\n\n    c\nd", got)
}

func TestIndentedRestoresOnPanic(t *testing.T) {
	e := New(&strings.Builder{}, DefaultOptions())
	func() {
		defer func() { _ = recover() }()
		e.Indented(func() { panic("boom") })
	}()
	assert.Equal(t, 0, e.IndentLevel())
}

func TestCustomNewlineAndIndent(t *testing.T) {
	opt := Options{Newline: "\r\n", IndentationPrefix: "\t"}
	got := render(t, opt, func(e *Emitter) {
		WriteBlock(e, []Text{"a;", "b;"})
	})
	assert.Equal(t, "{\r\n\ta;\r\n\tb;\r\n}", got)
}

func TestRawKeepsInnerSpacing(t *testing.T) {
	got := render(t, DefaultOptions(), func(e *Emitter) {
		e.Write("x;")
		e.Space()
		e.Raw("//  keep  this   ")
	})
	assert.Equal(t, "x; //  keep  this", got)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSinkErrorIsSticky(t *testing.T) {
	e := New(failingWriter{}, DefaultOptions())
	e.Write("a")
	e.WriteLine("b")
	require.Error(t, e.Err())
	assert.Contains(t, e.Err().Error(), "disk full")
}

func TestSpacingInvariant(t *testing.T) {
	writes := []string{
		"export ", " class", "Foo ", " extends ", "Bar", " {", "", " ", "  ",
		"public", "static", "x", ": ", "number", " = ", "1 ", ";", "(", " a ", ", ", " b ", ")",
	}
	got := render(t, DefaultOptions(), func(e *Emitter) {
		for i, w := range writes {
			if i%5 == 4 {
				e.Indented(func() { e.WriteLine(w) })
				continue
			}
			e.Write(w)
		}
	})
	assertSpacing(t, got)
}

func TestRawKeepsSpacingInvariant(t *testing.T) {
	got := render(t, DefaultOptions(), func(e *Emitter) {
		e.Write("x = ")
		e.Raw(" f(1)")
		e.Write(";")
	})
	assert.Equal(t, "x = f(1);", got)

	got = render(t, DefaultOptions(), func(e *Emitter) {
		e.Write("y =")
		e.Space()
		e.Raw("\t{this}.push(  a,\t b )  ")
		e.WriteLine(";")
		e.Indented(func() { e.Raw("  nested\n    deeper") })
	})
	assert.Equal(t, "y = {this}.push( a, b );\n    nested\n      deeper", got)
	assertSpacing(t, got)
}

func assertSpacing(t *testing.T, got string) {
	t.Helper()
	for _, line := range strings.Split(got, "\n") {
		body := strings.TrimLeft(line, " ")
		assert.NotContains(t, body, "  ", "double space in %q", line)
		assert.False(t, strings.HasSuffix(line, " "), "trailing space in %q", line)
	}
}

func TestLineCommentForcesBreak(t *testing.T) {
	got := render(t, DefaultOptions(), func(e *Emitter) {
		e.Write("x;")
		e.LineComment("// counter")
		e.Write("y;")
		e.LineComment("last")
		e.EnsureNewline()
	})
	assert.Equal(t, "x; // counter\ny; // last\n", got)
}
