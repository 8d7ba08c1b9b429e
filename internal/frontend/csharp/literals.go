package csharp

import (
	"strconv"
	"strings"
)

// docLine extracts the text of a /// comment.
func docLine(comment string) (string, bool) {
	if !strings.HasPrefix(comment, "///") || strings.HasPrefix(comment, "////") {
		return "", false
	}
	line := strings.TrimPrefix(comment, "///")
	return strings.TrimPrefix(strings.TrimRight(line, "\r\n"), " "), true
}

// cleanDoc removes XML tags from doc comment lines and drops lines left
// empty at either end.
func cleanDoc(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, strings.TrimSpace(stripTags(l)))
	}
	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func stripTags(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// decodeLiteral returns the value of a string or character literal.
func decodeLiteral(text string) string {
	switch {
	case strings.HasPrefix(text, `@"`) && strings.HasSuffix(text, `"`) && len(text) >= 3:
		return strings.ReplaceAll(text[2:len(text)-1], `""`, `"`)
	case len(text) >= 2 && (text[0] == '"' || text[0] == '\''):
		return unescape(text[1 : len(text)-1])
	}
	return text
}

var simpleEscapes = map[byte]string{
	'n': "\n", 't': "\t", 'r': "\r", '0': "\x00", 'a': "\a", 'b': "\b",
	'f': "\f", 'v': "\v", '\\': `\`, '\'': "'", '"': `"`,
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		if e, ok := simpleEscapes[s[i]]; ok {
			b.WriteString(e)
			continue
		}
		var digits int
		switch s[i] {
		case 'u':
			digits = 4
		case 'U':
			digits = 8
		case 'x':
			digits = hexRun(s[i+1:], 4)
		}
		if digits == 0 || i+1+digits > len(s) {
			b.WriteByte('\\')
			b.WriteByte(s[i])
			continue
		}
		v, err := strconv.ParseUint(s[i+1:i+1+digits], 16, 32)
		if err != nil {
			b.WriteByte('\\')
			b.WriteByte(s[i])
			continue
		}
		b.WriteRune(rune(v))
		i += digits
	}
	return b.String()
}

// hexRun counts the leading hex digits of s, at most limit.
func hexRun(s string, limit int) int {
	n := 0
	for n < len(s) && n < limit && strings.IndexByte("0123456789abcdefABCDEF", s[n]) >= 0 {
		n++
	}
	return n
}
