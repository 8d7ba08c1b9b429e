package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"cs2ts/internal/frontend"
	"cs2ts/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a syntax tree:
// 1) the root span lies within the file content and points at the file
// 2) every child span is contained in its parent's span
// 3) siblings do not overlap and appear in source order
func CheckSpanInvariants(root *frontend.SyntaxNode, sf *source.File) error {
	if root == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if root.Span.File != sf.ID {
		return fmt.Errorf("root span points to different file id: got=%d want=%d", root.Span.File, sf.ID)
	}
	if root.Span.End > lenContent || root.Span.Start > root.Span.End {
		return fmt.Errorf("root span %v outside content of %d bytes", root.Span, lenContent)
	}
	return checkChildren(root)
}

func checkChildren(n *frontend.SyntaxNode) error {
	var prev *frontend.SyntaxNode
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		if c.Span.File != n.Span.File {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", c.Kind, c.Span.File, n.Span.File)
		}
		if !n.Span.Contains(c.Span) {
			return fmt.Errorf("%s span %v is outside parent %s span %v", c.Kind, c.Span, n.Kind, n.Span)
		}
		if prev != nil && c.Span.Start < prev.Span.End && !c.Span.Empty() && !prev.Span.Empty() {
			return fmt.Errorf("%s span %v overlaps sibling %s span %v", c.Kind, c.Span, prev.Kind, prev.Span)
		}
		if err := checkChildren(c); err != nil {
			return err
		}
		prev = c
	}
	return nil
}
