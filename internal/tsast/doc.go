// Package tsast is the TypeScript code model produced by translation.
//
// Nodes are immutable once built: translation constructs them bottom-up,
// the emitter prints them once, and trivia changes go through
// WithLeadingTrivia / WithTrailingTrivia, which return shallow copies.
// A node's text is a pure function of its kind, children and trivia.
//
// Every node kind has a Kind tag, a Visit method on Visitor and a case in
// Dispatch and Children. Visitors embed BaseVisitor, so a kind a visitor
// forgets to handle reports ErrUnsupportedNode instead of being skipped.
//
// List-valued children are printed through emit.WriteList layouts; nodes
// never hand-roll delimiters.
package tsast
