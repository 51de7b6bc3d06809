package verrors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"bvc/internal/ast"
)

// Error is a structured, position-carrying failure from any pipeline
// stage. It implements the standard error interface so it can travel
// through normal Go error returns, while still exposing Kind/Detail/Line
// for callers that want to branch on the taxonomy instead of the message.
type Error struct {
	Kind     Kind
	Detail   string // sub-kind, e.g. InvalidIfHeader; empty when Kind is specific enough
	Message  string
	Position ast.Position
	Line     string // offending source line text, when known
}

func (e *Error) Error() string {
	if e.Position.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d)", e.Kind, e.Message, e.Position.Line)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New builds an Error with no associated source line text.
func New(kind Kind, message string, pos ast.Position) *Error {
	return &Error{Kind: kind, Message: message, Position: pos}
}

// NewDetailed builds an Error that also records a parser sub-kind and the
// offending source line, as required for InvalidIfHeader/InvalidAssign/etc.
func NewDetailed(kind Kind, detail, message string, pos ast.Position, line string) *Error {
	return &Error{Kind: kind, Detail: detail, Message: message, Position: pos, Line: line}
}

// Reporter renders Errors with the caret-style, colorized layout the CLI
// uses.
type Reporter struct {
	filename string
	lines    []string
}

// NewReporter builds a Reporter for a named source buffer.
func NewReporter(filename, source string) *Reporter {
	return &Reporter{filename: filename, lines: strings.Split(source, "\n")}
}

// Format renders a single Error as a multi-line, human-readable message
// with a caret under the offending column and the surrounding source line.
func (r *Reporter) Format(err *Error) string {
	var out strings.Builder

	bold := color.New(color.Bold).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	header := string(err.Kind)
	if err.Detail != "" {
		header = fmt.Sprintf("%s[%s]", err.Kind, err.Detail)
	}
	out.WriteString(fmt.Sprintf("%s: %s\n", red(header), err.Message))

	pos := err.Position
	if pos.Line <= 0 {
		return out.String()
	}
	out.WriteString(fmt.Sprintf("  %s %s:%d:%d\n", dim("-->"), r.filename, pos.Line, pos.Column))

	line := err.Line
	if line == "" && pos.Line-1 < len(r.lines) && pos.Line-1 >= 0 {
		line = r.lines[pos.Line-1]
	}
	if line != "" {
		out.WriteString(fmt.Sprintf("  %s %s\n", dim("|"), bold(line)))
		col := pos.Column
		if col < 1 {
			col = 1
		}
		caret := strings.Repeat(" ", col-1) + red("^")
		out.WriteString(fmt.Sprintf("  %s %s\n", dim("|"), caret))
	}
	return out.String()
}
