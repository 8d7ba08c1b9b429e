package emit

import "strings"

// EmptyForm selects what an empty list prints.
type EmptyForm uint8

const (
	// EmptyOmit prints nothing, not even the prefix and suffix.
	EmptyOmit EmptyForm = iota
	// EmptyTight prints prefix and suffix back to back: "{}", "()".
	EmptyTight
	// EmptySpaced prints them with one space: "{ }".
	EmptySpaced
)

// ListOptions drives WriteList.
type ListOptions struct {
	Prefix    string
	Suffix    string
	Delimiter string
	Empty     EmptyForm
	// Indent puts every item on its own line one level deeper than the
	// prefix. The suffix goes on a fresh line.
	Indent bool
}

// ListKind names the layouts used across the AST.
type ListKind uint8

const (
	CommaList ListKind = iota
	ParenCommaList
	BracketCommaList
	AngleCommaList
	BraceCommaList
	Block
	SpacedBlock
	MemberBlock
	CommaBlock
	NewlineList
	BlankLineList
	UnionList
	IntersectionList
)

var listKinds = [...]ListOptions{
	CommaList:        {Delimiter: ", "},
	ParenCommaList:   {Prefix: "(", Suffix: ")", Delimiter: ", ", Empty: EmptyTight},
	BracketCommaList: {Prefix: "[", Suffix: "]", Delimiter: ", ", Empty: EmptyTight},
	AngleCommaList:   {Prefix: "<", Suffix: ">", Delimiter: ", ", Empty: EmptyOmit},
	BraceCommaList:   {Prefix: "{ ", Suffix: " }", Delimiter: ", ", Empty: EmptyTight},
	Block:            {Prefix: "{", Suffix: "}", Delimiter: "\n", Empty: EmptyTight, Indent: true},
	SpacedBlock:      {Prefix: "{", Suffix: "}", Delimiter: "\n", Empty: EmptySpaced, Indent: true},
	MemberBlock:      {Prefix: "{", Suffix: "}", Delimiter: "\n\n", Empty: EmptyTight, Indent: true},
	CommaBlock:       {Prefix: "{", Suffix: "}", Delimiter: ",\n", Empty: EmptyTight, Indent: true},
	NewlineList:      {Delimiter: "\n"},
	BlankLineList:    {Delimiter: "\n\n"},
	UnionList:        {Delimiter: " | "},
	IntersectionList: {Delimiter: " & "},
}

// Options returns the layout of k.
func (k ListKind) Options() ListOptions {
	if int(k) < len(listKinds) {
		return listKinds[k]
	}
	return listKinds[CommaList]
}

// WriteList prints items with the given layout.
func WriteList[T Emittable](e *Emitter, items []T, opt ListOptions) {
	if len(items) == 0 {
		writeEmpty(e, opt)
		return
	}

	// a delimiter ending in a line break is written with WriteLine so that
	// the emitter owns the break and never leaves a trailing space
	delim, breaks := strings.CutSuffix(opt.Delimiter, "\n")

	body := func() {
		for i, item := range items {
			if i > 0 {
				if breaks {
					e.WriteLine(delim)
				} else {
					e.Write(delim)
				}
			}
			item.Emit(e)
		}
	}

	e.Write(opt.Prefix)
	if !opt.Indent {
		body()
		e.Write(opt.Suffix)
		return
	}
	e.EnsureNewline()
	e.Indented(func() {
		body()
		e.EnsureNewline()
	})
	e.Write(opt.Suffix)
}

// WriteListKind is WriteList with a named layout.
func WriteListKind[T Emittable](e *Emitter, items []T, kind ListKind) {
	WriteList(e, items, kind.Options())
}

// WriteBlock prints items inside braces, one per line.
func WriteBlock[T Emittable](e *Emitter, items []T) {
	WriteList(e, items, Block.Options())
}

func writeEmpty(e *Emitter, opt ListOptions) {
	switch opt.Empty {
	case EmptyTight:
		e.Write(strings.TrimRight(opt.Prefix, " ") + strings.TrimLeft(opt.Suffix, " "))
	case EmptySpaced:
		e.Write(strings.TrimRight(opt.Prefix, " ") + " " + strings.TrimLeft(opt.Suffix, " "))
	}
}

// Text adapts a plain string to Emittable.
type Text string

// Emit writes t as one token.
func (t Text) Emit(e *Emitter) { e.Write(string(t)) }
