package lsp

import (
	"strings"

	"bvc/internal/lexer"
	"bvc/internal/preprocess"
	"bvc/internal/token"
)

// SemanticToken is a single LSP semantic token entry. Line and StartChar
// are 0-based; TokenType indexes SemanticTokenTypes.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// collectSemanticTokens classifies every token in content by lexical
// kind, line by line. Tokens the lexer marks ILLEGAL are skipped rather
// than failing the whole request — diagnostics already report the error.
// When the preprocessor rejects content, each physical line is lexed on
// its own instead (see tokensByRawLine).
func collectSemanticTokens(content string) []SemanticToken {
	if content == "" {
		return nil
	}
	lines, err := preprocess.Run(content)
	if err != nil {
		return tokensByRawLine(content)
	}

	var tokens []SemanticToken
	for _, line := range lines {
		for _, tok := range lexer.Tokenize(line.Text, line.Num) {
			if tok.Type == token.EOF {
				continue
			}
			kind, ok := classify(tok.Type)
			if !ok {
				continue
			}
			tokens = append(tokens, SemanticToken{
				Line:      uint32(tok.Line - 1),
				StartChar: uint32(tok.Column - 1),
				Length:    uint32(len(tok.Literal)),
				TokenType: kind,
			})
		}
	}
	return tokens
}

// tokensByRawLine is a best-effort fallback for source the preprocessor
// rejects (e.g. mid-edit, unbalanced braces): lex each physical line
// independently so the editor still gets some highlighting.
func tokensByRawLine(content string) []SemanticToken {
	var tokens []SemanticToken
	for i, raw := range strings.Split(content, "\n") {
		for _, tok := range lexer.Tokenize(raw, i+1) {
			if tok.Type == token.EOF {
				continue
			}
			kind, ok := classify(tok.Type)
			if !ok {
				continue
			}
			tokens = append(tokens, SemanticToken{
				Line:      uint32(tok.Line - 1),
				StartChar: uint32(tok.Column - 1),
				Length:    uint32(len(tok.Literal)),
				TokenType: kind,
			})
		}
	}
	return tokens
}

func classify(t token.Type) (int, bool) {
	switch t {
	case token.IF, token.ELSE, token.WHILE, token.FOR, token.ASSERT, token.TRUE, token.FALSE:
		return 0, true // keyword
	case token.IDENT:
		return 1, true // variable
	case token.INT:
		return 2, true // number
	case token.PLUS, token.MINUS, token.ASTERISK, token.SLASH,
		token.EQ, token.NOT_EQ, token.LT, token.LE, token.GT, token.GE,
		token.AND, token.OR, token.NOT, token.DEFINE:
		return 3, true // operator
	default:
		return 0, false
	}
}
