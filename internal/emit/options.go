package emit

import "strings"

// Options configures an Emitter.
type Options struct {
	// Newline is written at every line break.
	Newline string
	// IndentationPrefix is repeated once per indentation level.
	IndentationPrefix string
	// SingleLineJsDocCommentsOnOneLine prints one-line JsDoc as /** text */.
	SingleLineJsDocCommentsOnOneLine bool
}

// DefaultOptions returns LF newlines, two-space indentation and compact JsDoc.
func DefaultOptions() Options {
	return Options{
		Newline:                          "\n",
		IndentationPrefix:                "  ",
		SingleLineJsDocCommentsOnOneLine: true,
	}
}

func (o Options) withDefaults() Options {
	if o.Newline == "" {
		o.Newline = "\n"
	}
	if o.IndentationPrefix == "" {
		o.IndentationPrefix = "  "
	}
	return o
}

// NewlineByName maps "lf" and "crlf" to their sequences.
func NewlineByName(name string) (string, bool) {
	switch strings.ToLower(name) {
	case "", "lf":
		return "\n", true
	case "crlf":
		return "\r\n", true
	}
	return "", false
}
