package frontend

import (
	"context"

	"cs2ts/internal/diag"
	"cs2ts/internal/source"
)

// Service is the external front-end. Every method must be safe for
// concurrent use: the compiler queries documents from parallel tasks.
type Service interface {
	// Documents lists the project documents in a stable order.
	Documents() []*Document
	SyntaxTree(ctx context.Context, id source.FileID) (*SyntaxNode, error)
	SemanticModel(ctx context.Context, id source.FileID) (SemanticModel, error)
	// Diagnostics are the front-end's own findings, syntax errors mostly.
	Diagnostics(ctx context.Context, id source.FileID) ([]*diag.Diagnostic, error)
}

// SemanticModel answers symbol questions about the nodes of one syntax tree.
// Lookups return nil when the front-end could not bind the node.
type SemanticModel interface {
	// DeclaredSymbol resolves a declaration node: a type, member, enum
	// member, local declarator, foreach variable or lambda parameter.
	DeclaredSymbol(n *SyntaxNode) *Symbol
	// ReferencedSymbol resolves a name, member access, invocation or
	// object creation to the symbol it uses.
	ReferencedSymbol(n *SyntaxNode) *Symbol
	// TypeOf is the static type of an expression or the target of a cast.
	TypeOf(n *SyntaxNode) *TypeRef
}
