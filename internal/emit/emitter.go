package emit

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// Emittable is anything that can print itself through an Emitter.
type Emittable interface {
	Emit(e *Emitter)
}

// Emitter writes formatted text to a sink. The first sink error is sticky;
// later writes are dropped and Err reports it.
type Emitter struct {
	w   io.Writer
	opt Options

	indentLevel int
	atLineStart bool
	// lastWasWhitespace: the output ends at a line start or with a space.
	lastWasWhitespace bool
	// needsSpace: a deferred space is owed before the next token.
	needsSpace bool
	// breakPending: a line comment is open, the next token starts a new line.
	breakPending bool
	lastByte     byte
	err          error
}

// New returns an emitter positioned at the start of an empty line.
func New(w io.Writer, opt Options) *Emitter {
	return &Emitter{
		w:                 w,
		opt:               opt.withDefaults(),
		atLineStart:       true,
		lastWasWhitespace: true,
	}
}

// String emits n into a string.
func String(n Emittable, opt Options) (string, error) {
	var b strings.Builder
	e := New(&b, opt)
	n.Emit(e)
	if err := e.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Options returns the options the emitter was built with.
func (e *Emitter) Options() Options { return e.opt }

// Err returns the first error of the underlying writer.
func (e *Emitter) Err() error { return e.err }

// IndentLevel returns the current nesting depth.
func (e *Emitter) IndentLevel() int { return e.indentLevel }

// Write prints text, inserting one space where two words would collide or a
// previous write left a deferred space. Embedded line breaks are honoured.
func (e *Emitter) Write(text string) {
	for {
		line, rest, found := strings.Cut(text, "\n")
		e.writeSegment(strings.TrimSuffix(line, "\r"))
		if !found {
			return
		}
		e.newline()
		text = rest
	}
}

// WriteLine prints text and ends the line. Deferred spaces are discarded.
func (e *Emitter) WriteLine(text string) {
	e.Write(text)
	e.newline()
}

// EnsureNewline ends the current line unless it is already empty.
func (e *Emitter) EnsureNewline() {
	if !e.atLineStart {
		e.newline()
	}
}

// Space requests a separating space before the next token.
func (e *Emitter) Space() {
	if !e.atLineStart {
		e.needsSpace = true
	}
}

// Raw prints text without collision spacing. Leading blanks of a line are
// kept only at a line start, where they extend the indentation; elsewhere a
// blank run becomes one space. Trailing blanks of each line are dropped and
// a deferred space is still honoured. Used for comment bodies and inline
// code.
func (e *Emitter) Raw(text string) {
	for {
		line, rest, found := strings.Cut(text, "\n")
		line = strings.TrimRight(line, " \t\r")
		if line != "" {
			if e.breakPending {
				e.newline()
			}
			body := strings.TrimLeft(line, " \t")
			if e.atLineStart {
				e.flushIndent()
				e.put(line[:len(line)-len(body)])
			} else if (e.needsSpace || len(body) < len(line)) && !e.lastWasWhitespace {
				e.put(" ")
			}
			body = collapseBlanks(body)
			e.put(body)
			e.lastByte = body[len(body)-1]
			e.lastWasWhitespace = false
			e.needsSpace = false
		}
		if !found {
			return
		}
		e.newline()
		text = rest
	}
}

// collapseBlanks replaces every run of spaces and tabs in s with one space.
func collapseBlanks(s string) string {
	if !strings.Contains(s, "  ") && !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	blank := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' {
			if !blank {
				b.WriteByte(' ')
			}
			blank = true
			continue
		}
		blank = false
		b.WriteByte(c)
	}
	return b.String()
}

// LineComment prints a trailing // comment. The next token goes to a new line.
func (e *Emitter) LineComment(text string) {
	e.Space()
	e.Raw("// " + strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "//")))
	e.breakPending = true
}

// Indented runs fn one level deeper. The level is restored on every exit path.
func (e *Emitter) Indented(fn func()) {
	e.indentLevel++
	defer func() { e.indentLevel-- }()
	fn()
}

func (e *Emitter) writeSegment(s string) {
	body := strings.TrimRight(s, " \t")
	trailing := len(body) < len(s)
	tok := strings.TrimLeft(body, " \t")
	leading := len(tok) < len(body)

	if tok == "" {
		if s != "" {
			e.Space()
		}
		return
	}
	if e.breakPending {
		e.newline()
	}

	if e.atLineStart {
		e.flushIndent()
	} else if !e.lastWasWhitespace {
		switch {
		case leading:
			e.put(" ")
		case (e.needsSpace || collides(e.lastByte, tok[0])) && !isClosingPunct(tok[0]):
			e.put(" ")
		}
	}

	e.put(tok)
	e.lastByte = tok[len(tok)-1]
	e.lastWasWhitespace = false
	e.needsSpace = trailing
}

func (e *Emitter) flushIndent() {
	if !e.atLineStart {
		return
	}
	for range e.indentLevel {
		e.put(e.opt.IndentationPrefix)
	}
	e.atLineStart = false
	e.needsSpace = false
	e.lastWasWhitespace = true
}

func (e *Emitter) newline() {
	e.put(e.opt.Newline)
	e.atLineStart = true
	e.lastWasWhitespace = true
	e.needsSpace = false
	e.breakPending = false
	e.lastByte = '\n'
}

func (e *Emitter) put(s string) {
	if e.err != nil {
		return
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		e.err = errors.Wrap(err, "emit")
	}
}

func isWordByte(b byte) bool {
	return b == '_' || b == '$' || b >= 0x80 ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func collides(prev, next byte) bool {
	return isWordByte(prev) && isWordByte(next)
}

func isClosingPunct(b byte) bool {
	switch b {
	case ')', ']', '}', ',', ';', '.', ':', '>', '?':
		return true
	}
	return false
}
