package tsast

import (
	"strings"

	"cs2ts/internal/emit"
)

// TriviaKind selects how a Trivia is printed.
type TriviaKind uint8

const (
	TriviaLineComment TriviaKind = iota
	TriviaBlockComment
	TriviaJsDoc
	TriviaBlankLine
)

// Trivia is a comment or blank line attached to a node boundary.
// It is a value; two trivia are equal when they print the same text.
type Trivia struct {
	Kind  TriviaKind
	Lines []string
}

// LineComment returns a // comment.
func LineComment(text string) Trivia {
	return Trivia{Kind: TriviaLineComment, Lines: []string{text}}
}

// BlockComment returns a /* */ comment with one line per argument.
func BlockComment(lines ...string) Trivia {
	return Trivia{Kind: TriviaBlockComment, Lines: lines}
}

// JsDoc returns a /** */ comment with one line per argument.
func JsDoc(lines ...string) Trivia {
	return Trivia{Kind: TriviaJsDoc, Lines: lines}
}

// BlankLine returns an empty line.
func BlankLine() Trivia {
	return Trivia{Kind: TriviaBlankLine}
}

// Text renders t as it would appear in leading position.
func (t Trivia) Text(opt emit.Options) string {
	var b strings.Builder
	t.emitLeading(emit.New(&b, opt))
	return b.String()
}

func (t Trivia) emitLeading(e *emit.Emitter) {
	switch t.Kind {
	case TriviaLineComment:
		e.LineComment(t.first())
	case TriviaBlockComment:
		if len(t.Lines) <= 1 {
			e.Raw("/* " + t.first() + " */")
			e.Space()
			return
		}
		t.emitStarred(e, "/*")
	case TriviaJsDoc:
		if len(t.Lines) <= 1 && e.Options().SingleLineJsDocCommentsOnOneLine {
			e.Raw("/** " + t.first() + " */")
			e.EnsureNewline()
			return
		}
		t.emitStarred(e, "/**")
	case TriviaBlankLine:
		e.EnsureNewline()
		e.WriteLine("")
	}
}

func (t Trivia) emitTrailing(e *emit.Emitter) {
	switch t.Kind {
	case TriviaLineComment:
		e.LineComment(t.first())
	case TriviaBlockComment, TriviaJsDoc:
		open := "/*"
		if t.Kind == TriviaJsDoc {
			open = "/**"
		}
		if len(t.Lines) <= 1 {
			e.Space()
			e.Raw(open + " " + t.first() + " */")
			return
		}
		t.emitStarred(e, open)
	case TriviaBlankLine:
		e.EnsureNewline()
		e.WriteLine("")
	}
}

func (t Trivia) emitStarred(e *emit.Emitter, open string) {
	e.EnsureNewline()
	e.Raw(open)
	for _, l := range t.Lines {
		e.EnsureNewline()
		e.Raw(" * " + strings.TrimSpace(l))
	}
	e.EnsureNewline()
	e.Raw(" */")
	e.EnsureNewline()
}

func (t Trivia) first() string {
	if len(t.Lines) == 0 {
		return ""
	}
	return strings.TrimSpace(t.Lines[0])
}
