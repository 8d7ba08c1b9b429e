package symtab

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// SegmentKind tells literal text from the placeholders of a template.
type SegmentKind uint8

const (
	SegLiteral SegmentKind = iota
	// SegThis is {this}, the receiver.
	SegThis
	// SegArg is {name}, one argument.
	SegArg
	// SegSpread is {*name}, the comma-joined arguments of a params array.
	SegSpread
	// SegType is {$Ns.Type}; Build replaces it with a literal.
	SegType
)

// Segment is one piece of a parsed inline-code template.
type Segment struct {
	Kind SegmentKind `msgpack:"kind"`
	Text string      `msgpack:"text"`
}

// Template is parsed inline code.
type Template struct {
	Source   string    `msgpack:"source"`
	Segments []Segment `msgpack:"segments"`
}

// Signature describes the member an inline template belongs to.
type Signature struct {
	Params []string
	// Spread names the params array parameter, if any.
	Spread string
	Static bool
}

// ParseTemplate splits src into literal text and placeholders.
// A brace that does not open a well-formed placeholder is literal text,
// so object literals need no escaping.
func ParseTemplate(src string, sig Signature) (*Template, error) {
	t := &Template{Source: src}
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.Segments = append(t.Segments, Segment{Kind: SegLiteral, Text: lit.String()})
			lit.Reset()
		}
	}
	for i := 0; i < len(src); {
		if src[i] != '{' {
			lit.WriteByte(src[i])
			i++
			continue
		}
		seg, width, ok := placeholder(src[i:])
		if !ok {
			lit.WriteByte(src[i])
			i++
			continue
		}
		switch seg.Kind {
		case SegThis:
			if sig.Static {
				return nil, errors.Newf("{this} in inline code of a static member: %q", src)
			}
		case SegArg, SegSpread:
			if !slices.Contains(sig.Params, seg.Text) {
				return nil, errors.Newf("unknown parameter {%s} in inline code %q", seg.Text, src)
			}
			if seg.Kind == SegSpread && seg.Text != sig.Spread {
				return nil, errors.Newf("{*%s} expands a parameter that is not a params array", seg.Text)
			}
		}
		flush()
		t.Segments = append(t.Segments, seg)
		i += width
	}
	flush()
	return t, nil
}

// placeholder recognises {this}, {name}, {*name} and {$Dotted.Type} at the
// start of s.
func placeholder(s string) (Segment, int, bool) {
	end := strings.IndexByte(s, '}')
	if end < 2 {
		return Segment{}, 0, false
	}
	body := s[1:end]
	kind := SegArg
	switch body[0] {
	case '*':
		kind, body = SegSpread, body[1:]
	case '$':
		kind, body = SegType, body[1:]
	}
	if !isTemplateName(body, kind == SegType) {
		return Segment{}, 0, false
	}
	if kind == SegArg && body == "this" {
		kind = SegThis
	}
	return Segment{Kind: kind, Text: body}, end + 1, true
}

func isTemplateName(s string, dotted bool) bool {
	if s == "" {
		return false
	}
	for i, part := range strings.Split(s, ".") {
		if i > 0 && !dotted {
			return false
		}
		if !isIdentifier(part) {
			return false
		}
	}
	return true
}

// Args holds the emitted text of call arguments by parameter name.
// A params array parameter may map to any number of texts.
type Args map[string][]string

// Expand substitutes this and args into t. A missing argument becomes
// undefined.
func (t *Template) Expand(this string, args Args) string {
	var b strings.Builder
	for _, seg := range t.Segments {
		switch seg.Kind {
		case SegThis:
			b.WriteString(this)
		case SegArg:
			if vs := args[seg.Text]; len(vs) > 0 {
				b.WriteString(vs[0])
			} else {
				b.WriteString("undefined")
			}
		case SegSpread:
			b.WriteString(strings.Join(args[seg.Text], ", "))
		default:
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

// UsesThis reports whether the receiver appears in the expansion.
func (t *Template) UsesThis() bool {
	return slices.ContainsFunc(t.Segments, func(s Segment) bool { return s.Kind == SegThis })
}

// resolveTypes replaces {$Type} segments using name, which returns the
// script name of a type key.
func (t *Template) resolveTypes(name func(key string) (string, bool)) error {
	for i, seg := range t.Segments {
		if seg.Kind != SegType {
			continue
		}
		n, ok := name("T:" + seg.Text)
		if !ok {
			return errors.Newf("unknown type {$%s} in inline code %q", seg.Text, t.Source)
		}
		t.Segments[i] = Segment{Kind: SegLiteral, Text: n}
	}
	return nil
}
