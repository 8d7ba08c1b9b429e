package asttest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cs2ts/internal/tsast"
)

func TestEqualByEmission(t *testing.T) {
	a := tsast.Binary(tsast.Ident("a"), "+", tsast.Num("1"))
	b := tsast.Binary(tsast.Ident("a"), "+", tsast.Num("1"))
	c := tsast.Binary(tsast.Ident("a"), "-", tsast.Num("1"))
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}

func TestLineDiff(t *testing.T) {
	d := LineDiff("a\nb\nc\n", "a\nx\nc\n")
	assert.Contains(t, d, "- b\n")
	assert.Contains(t, d, "+ x\n")
	assert.Contains(t, d, "  a\n")
}
