package csharp

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"fortio.org/safecast"
	"github.com/alexaandru/go-sitter-forest/c_sharp"
	sitter "github.com/alexaandru/go-tree-sitter-bare"
	"github.com/cockroachdb/errors"

	"cs2ts/internal/diag"
	"cs2ts/internal/frontend"
	"cs2ts/internal/source"
)

var errPoolType = errors.New("csharp: parser pool returned a foreign value")

var language = sync.OnceValue(func() *sitter.Language {
	return sitter.NewLanguage(c_sharp.GetLanguage())
})

// Parsers are not safe for concurrent use; each task borrows one.
var parsers = sync.Pool{
	New: func() any {
		p := sitter.NewParser()
		p.SetLanguage(language())
		return p
	},
}

// parse converts doc into a tree. Syntax errors end up in tree.diags; the
// error return is for a parser that could not run at all.
func parse(ctx context.Context, doc *frontend.Document) (*tree, error) {
	p, ok := parsers.Get().(*sitter.Parser)
	if !ok {
		return nil, errPoolType
	}
	defer parsers.Put(p)

	var content []byte
	if doc.File != nil {
		content = doc.File.Content
	}
	ts, err := p.ParseString(ctx, nil, content)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", doc.Path)
	}
	defer ts.Close()

	root := ts.RootNode()
	if root.IsNull() {
		return nil, errors.Newf("parse %s: no root node", doc.Path)
	}
	c := newConverter(doc, content)
	c.t.root = c.compilationUnit(root)
	c.syntaxErrors(root, 0)
	return c.t, nil
}

// syntaxErrors reports ERROR nodes and the zero-width nodes tree-sitter
// inserts for missing tokens. Nothing below an ERROR node is reported.
func (c *converter) syntaxErrors(n sitter.Node, depth int) {
	switch {
	case n.Type() == "ERROR":
		c.t.diags = append(c.t.diags, diag.External("CS1525", diag.SevError, c.location(n),
			fmt.Sprintf("Invalid expression term '%s'", snippet(c.text(n)))))
		return
	case depth > 0 && n.ChildCount() == 0 && n.StartByte() == n.EndByte():
		c.t.diags = append(c.t.diags, missing(n.Type(), n.IsNamed(), c.location(n)))
		return
	}
	for i := range n.ChildCount() {
		c.syntaxErrors(n.Child(i), depth+1)
	}
}

func missing(token string, named bool, loc *diag.Location) *diag.Diagnostic {
	switch {
	case token == ";":
		return diag.External("CS1002", diag.SevError, loc, "; expected")
	case named:
		return diag.External("CS1001", diag.SevError, loc, "Identifier expected")
	}
	return diag.External("CS1003", diag.SevError, loc, fmt.Sprintf("Syntax error, '%s' expected", token))
}

// snippet shortens s to its first line, at most 24 runes.
func snippet(s string) string {
	const limit = 24
	for i, r := range s {
		if r == '\n' || r == '\r' {
			s = s[:i]
			break
		}
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}

func (c *converter) span(n sitter.Node) source.Span {
	return source.Span{File: c.doc.ID, Start: c.offset(n.StartByte()), End: c.offset(n.EndByte())}
}

func (c *converter) offset(b uint) uint32 {
	off, err := safecast.Conv[uint32](b)
	if err != nil || int(off) > len(c.src) {
		off, _ = safecast.Conv[uint32](len(c.src))
	}
	return off
}

func (c *converter) location(n sitter.Node) *diag.Location {
	return c.doc.Location(c.span(n))
}

func (c *converter) text(n sitter.Node) string {
	start, end := c.offset(n.StartByte()), c.offset(n.EndByte())
	if start > end {
		return ""
	}
	return string(c.src[start:end])
}
