// Package preprocess implements the Lexer/Preprocessor stage: it turns raw
// source text into an ordered list of logical lines, one per statement or
// block header, splitting `} ... else ...` onto three lines and validating
// that every brace and every block header is well formed. Grounded on the
// original implementation's `_preprocess_lines`.
package preprocess

import (
	"regexp"
	"strings"

	"bvc/internal/ast"
	"bvc/internal/verrors"
)

// Line is one logical line of source together with its original 1-based
// line number, used for error reporting by every later stage.
type Line struct {
	Text string
	Num  int
}

var (
	blockHeaderRe = regexp.MustCompile(`^(if|while|for)\s*\(.+\)\s*\{`)
	elseSplitRe   = regexp.MustCompile(`(.*?)\}\s*(else\s*\{?)`)
)

// Run splits raw source into logical lines. It trims whitespace, drops
// empty lines, rewrites `} ... else ...` onto three lines so each brace and
// each else clause occupies its own line, and validates brace balance.
func Run(source string) ([]Line, error) {
	raw := strings.Split(source, "\n")
	var trimmed []Line
	for i, l := range raw {
		t := strings.TrimSpace(l)
		if t == "" {
			continue
		}
		trimmed = append(trimmed, Line{Text: t, Num: i + 1})
	}

	var out []Line
	i := 0
	for i < len(trimmed) {
		line := trimmed[i]

		if trySplitElse(&out, line) {
			i++
			continue
		}

		if blockHeaderRe.MatchString(line.Text) {
			out = append(out, line)
			braceCount := 1
			i++
			for i < len(trimmed) && braceCount > 0 {
				body := trimmed[i]
				braceCount += strings.Count(body.Text, "{") - strings.Count(body.Text, "}")
				if !trySplitElse(&out, body) {
					out = append(out, body)
				}
				i++
			}
			if braceCount != 0 {
				return nil, verrors.New(verrors.LexicalError, "unbalanced braces: block opened here never closes", ast.Position{Line: line.Num, Column: 1})
			}
			continue
		}

		if isBlockKeywordLine(line.Text) && !strings.HasSuffix(line.Text, "{") {
			return nil, verrors.New(verrors.LexicalError, "block header must end with '{'", ast.Position{Line: line.Num, Column: 1})
		}

		out = append(out, line)
		i++
	}

	if err := checkBalance(out); err != nil {
		return nil, err
	}
	return out, nil
}

// trySplitElse appends a merged "} ... else ..." line onto out as its own
// "}" and "else {" entries so the parser can treat each brace and each
// else clause as a standalone logical line, and reports whether it
// matched and split the line. Used both at the top level and while
// absorbing a block header's body, since a closing "}else{" can appear
// at either point; callers append the line themselves when this returns
// false.
func trySplitElse(out *[]Line, line Line) bool {
	if !strings.Contains(line.Text, "}") || !strings.Contains(line.Text, "else") {
		return false
	}
	m := elseSplitRe.FindStringSubmatch(line.Text)
	if m == nil {
		return false
	}
	before := strings.TrimSpace(m[1])
	after := strings.TrimSpace(m[2])
	if before != "" {
		*out = append(*out, Line{Text: before, Num: line.Num})
	}
	*out = append(*out, Line{Text: "}", Num: line.Num})
	*out = append(*out, Line{Text: after, Num: line.Num})
	return true
}

func isBlockKeywordLine(s string) bool {
	for _, kw := range []string{"if", "while", "for"} {
		if strings.HasPrefix(s, kw) && (len(s) == len(kw) || !isIdentByte(s[len(kw)])) {
			return true
		}
	}
	return false
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func checkBalance(lines []Line) error {
	depth := 0
	for _, l := range lines {
		depth += strings.Count(l.Text, "{") - strings.Count(l.Text, "}")
		if depth < 0 {
			return verrors.New(verrors.LexicalError, "unmatched closing brace", ast.Position{Line: l.Num, Column: 1})
		}
	}
	if depth != 0 {
		return verrors.New(verrors.LexicalError, "unbalanced braces in program", ast.Position{Line: lines[len(lines)-1].Num, Column: 1})
	}
	return nil
}
