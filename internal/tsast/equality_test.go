package tsast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cs2ts/internal/tsast"
	"cs2ts/internal/tsast/asttest"
)

func TestFactoriesMatchLiteralNodes(t *testing.T) {
	built := tsast.LetStmt("total", tsast.NumberType(), tsast.Binary(tsast.Ident("a"), "+", tsast.Num("1")))
	literal := &tsast.VariableStatement{List: &tsast.VariableDeclarationList{
		Keyword: tsast.Let,
		Declarations: []*tsast.VariableDeclaration{{
			Name: &tsast.Identifier{Name: "total"},
			Type: &tsast.PredefinedType{Name: "number"},
			Init: &tsast.BinaryExpression{Left: &tsast.Identifier{Name: "a"}, Op: "+", Right: &tsast.NumericLiteral{Text: "1"}},
		}},
	}}
	asttest.AssertEqual(t, literal, built)
	asttest.AssertText(t, "let total: number = a + 1;", built)
}

func TestEqualityIgnoresNodeIdentity(t *testing.T) {
	call := func(arg string) tsast.Node {
		return tsast.ExprStmt(tsast.Call(tsast.Member(tsast.This(), "push"), tsast.Str(arg)))
	}
	assert.True(t, asttest.Equal(call("a"), call("a")))
	assert.False(t, asttest.Equal(call("a"), call("b")))

	trivial := tsast.Return(nil)
	commented := tsast.WithLeadingTrivia(tsast.Return(nil), tsast.LineComment("done"))
	assert.False(t, asttest.Equal(trivial, commented), "trivia is part of the emitted text")
	assert.True(t, asttest.Equal(trivial, tsast.WithoutTrivia(commented)))
}
