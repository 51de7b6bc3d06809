package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bvc/internal/lexer"
	"bvc/internal/token"
)

func typesOf(toks []token.Token) []token.Type {
	types := make([]token.Type, len(toks))
	for i, t := range toks {
		types[i] = t.Type
	}
	return types
}

func TestTokenizeAssignment(t *testing.T) {
	toks := lexer.Tokenize("x := 1 + y;", 1)
	require.Len(t, toks, 7)
	assert.Equal(t, []token.Type{
		token.IDENT, token.DEFINE, token.INT, token.PLUS, token.IDENT, token.SEMICOLON, token.EOF,
	}, typesOf(toks))
}

func TestTokenizeDistinguishesColonFromDefine(t *testing.T) {
	toks := lexer.Tokenize(": :=", 1)
	require.Len(t, toks, 3)
	assert.Equal(t, token.COLON, toks[0].Type)
	assert.Equal(t, token.DEFINE, toks[1].Type)
}

func TestTokenizeTwoCharOperators(t *testing.T) {
	toks := lexer.Tokenize("a == b != c && d || e <= f >= g", 1)
	gotTypes := typesOf(toks)
	assert.Contains(t, gotTypes, token.EQ)
	assert.Contains(t, gotTypes, token.NOT_EQ)
	assert.Contains(t, gotTypes, token.AND)
	assert.Contains(t, gotTypes, token.OR)
	assert.Contains(t, gotTypes, token.LE)
	assert.Contains(t, gotTypes, token.GE)
}

func TestTokenizeSingleAmpersandIsIllegal(t *testing.T) {
	toks := lexer.Tokenize("a & b", 1)
	assert.Equal(t, token.ILLEGAL, toks[1].Type)
	assert.Equal(t, "&", toks[1].Literal)
}

func TestTokenizeArrayIndexing(t *testing.T) {
	toks := lexer.Tokenize("a[0] := 1;", 1)
	assert.Equal(t, []token.Type{
		token.IDENT, token.LBRACKET, token.INT, token.RBRACKET, token.DEFINE, token.INT, token.SEMICOLON, token.EOF,
	}, typesOf(toks))
}

func TestTokenizeReportsLineAndColumn(t *testing.T) {
	toks := lexer.Tokenize("  x := 1;", 7)
	require.NotEmpty(t, toks)
	assert.Equal(t, 7, toks[0].Line)
	assert.Equal(t, 3, toks[0].Column)
}

func TestTokenizeKeywordVersusIdentifier(t *testing.T) {
	toks := lexer.Tokenize("if ifcheck", 1)
	require.Len(t, toks, 3)
	assert.Equal(t, token.IF, toks[0].Type)
	assert.Equal(t, token.IDENT, toks[1].Type)
}
