package emit

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func texts(n int) []Text {
	out := make([]Text, n)
	for i := range out {
		out[i] = Text(fmt.Sprintf("item%d", i))
	}
	return out
}

func TestWriteBlockEmpty(t *testing.T) {
	var b strings.Builder
	e := New(&b, DefaultOptions())
	WriteBlock(e, []Text(nil))
	assert.Equal(t, "{}", b.String())
	assert.Equal(t, 0, e.IndentLevel())

	nested := New(&strings.Builder{}, DefaultOptions())
	nested.Indented(func() {
		WriteBlock(nested, []Text{})
		assert.Equal(t, 1, nested.IndentLevel())
	})
	assert.Equal(t, 0, nested.IndentLevel())
}

func TestEmptyForms(t *testing.T) {
	tests := []struct {
		kind ListKind
		want string
	}{
		{Block, "{}"},
		{SpacedBlock, "{ }"},
		{ParenCommaList, "()"},
		{BracketCommaList, "[]"},
		{BraceCommaList, "{}"},
		{AngleCommaList, ""},
		{CommaList, ""},
	}
	for _, tt := range tests {
		got := render(t, DefaultOptions(), func(e *Emitter) { WriteListKind(e, []Text{}, tt.kind) })
		assert.Equal(t, tt.want, got, "kind %d", tt.kind)
	}
}

func TestWriteListRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		items := texts(n)
		got := render(t, DefaultOptions(), func(e *Emitter) { WriteListKind(e, items, CommaList) })

		var parts []string
		if got != "" {
			parts = strings.Split(got, ", ")
		}
		if assert.Len(t, parts, n) {
			for i := range items {
				assert.Equal(t, string(items[i]), parts[i])
			}
		}
	}
}

func TestWriteListLineDelimiters(t *testing.T) {
	got := render(t, DefaultOptions(), func(e *Emitter) {
		e.Write("enum E ")
		WriteListKind(e, []Text{"a = 0", "b = 1"}, CommaBlock)
	})
	assert.Equal(t, "enum E {\n  a = 0,\n  b = 1\n}", got)

	got = render(t, DefaultOptions(), func(e *Emitter) {
		e.Write("class C ")
		WriteListKind(e, []Text{"x: number;", "y: number;"}, MemberBlock)
	})
	assert.Equal(t, "class C {\n  x: number;\n\n  y: number;\n}", got)
}

func TestWriteListParams(t *testing.T) {
	got := render(t, DefaultOptions(), func(e *Emitter) {
		e.Write("f")
		WriteListKind(e, []Text{"a: number", "b?: string"}, ParenCommaList)
		e.Write(": void")
	})
	assert.Equal(t, "f(a: number, b?: string): void", got)
}

func TestNestedBlocks(t *testing.T) {
	inner := blockText{items: []Text{"return 1;"}}
	got := render(t, DefaultOptions(), func(e *Emitter) {
		e.Write("function f() ")
		WriteBlock(e, []Emittable{Text("let x = 0;"), inner})
	})
	assert.Equal(t, "function f() {\n  let x = 0;\n  {\n    return 1;\n  }\n}", got)
}

type blockText struct{ items []Text }

func (b blockText) Emit(e *Emitter) { WriteBlock(e, b.items) }

func TestListKindOptionsFallback(t *testing.T) {
	assert.Equal(t, CommaList.Options(), ListKind(200).Options())
}
