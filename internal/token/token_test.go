package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bvc/internal/token"
)

func TestLookupIdentClassifiesKeywords(t *testing.T) {
	assert.Equal(t, token.Type(token.IF), token.LookupIdent("if"))
	assert.Equal(t, token.Type(token.ELSE), token.LookupIdent("else"))
	assert.Equal(t, token.Type(token.WHILE), token.LookupIdent("while"))
	assert.Equal(t, token.Type(token.FOR), token.LookupIdent("for"))
	assert.Equal(t, token.Type(token.ASSERT), token.LookupIdent("assert"))
	assert.Equal(t, token.Type(token.TRUE), token.LookupIdent("True"))
	assert.Equal(t, token.Type(token.FALSE), token.LookupIdent("False"))
}

func TestLookupIdentIsCaseSensitiveForBooleanLiterals(t *testing.T) {
	assert.Equal(t, token.Type(token.IDENT), token.LookupIdent("true"))
	assert.Equal(t, token.Type(token.IDENT), token.LookupIdent("false"))
}

func TestLookupIdentFallsBackToIdentifier(t *testing.T) {
	assert.Equal(t, token.Type(token.IDENT), token.LookupIdent("x"))
	assert.Equal(t, token.Type(token.IDENT), token.LookupIdent("counter"))
}
