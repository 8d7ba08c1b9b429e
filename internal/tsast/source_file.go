package tsast

import "cs2ts/internal/emit"

// SourceFile is the root of one emitted module.
type SourceFile struct {
	trivia
	Statements []Statement
}

func (n *SourceFile) Kind() Kind { return KindSourceFile }

// Accept calls v.VisitSourceFile.
func (n *SourceFile) Accept(v Visitor) error { return v.VisitSourceFile(n) }
func (n *SourceFile) CodeDisplay() string    { return display(n) }

func (n *SourceFile) withTrivia(t trivia) Node {
	cp := *n
	cp.trivia = t
	return &cp
}

// Emit prints the source file.
func (n *SourceFile) Emit(e *emit.Emitter) {
	n.emitWith(e, func() {
		emitSourceFile(e, n)
	})
}
