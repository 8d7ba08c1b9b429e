package tsast

import (
	"fmt"
	"strings"

	"cs2ts/internal/emit"
)

// emitBody prints a loop or branch body: blocks stay on the header line,
// single statements go one level deeper on the next line.
func emitBody(e *emit.Emitter, s Statement) {
	if b, ok := s.(*Block); ok {
		e.Space()
		b.Emit(e)
		return
	}
	e.EnsureNewline()
	e.Indented(func() { s.Emit(e) })
}

func emitReturnType(e *emit.Emitter, t Type) {
	if t == nil {
		return
	}
	e.Write(": ")
	t.Emit(e)
}

// needsUnarySpace keeps "- -x" and "+ +x" from fusing into -- and ++.
func needsUnarySpace(op string, operand Expression) bool {
	if op != "-" && op != "+" {
		return false
	}
	switch o := operand.(type) {
	case *UnaryExpression:
		return !o.Postfix && strings.HasPrefix(o.Op, op)
	case *NumericLiteral:
		return strings.HasPrefix(o.Text, op)
	}
	return false
}

func quoteString(s string, double bool) string {
	q := '\''
	if double {
		q = '"'
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteRune(q)
	for _, r := range s {
		switch r {
		case q:
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\x%02x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteRune(q)
	return b.String()
}

// emitSourceFile separates declarations by a blank line and keeps
// consecutive imports together.
func emitSourceFile(e *emit.Emitter, f *SourceFile) {
	for i, s := range f.Statements {
		if i > 0 {
			_, prevImport := f.Statements[i-1].(*ImportDeclaration)
			_, curImport := s.(*ImportDeclaration)
			e.EnsureNewline()
			if !prevImport || !curImport {
				e.WriteLine("")
			}
		}
		s.Emit(e)
	}
	if len(f.Statements) > 0 {
		e.EnsureNewline()
	}
}
