package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"bvc/internal/verrors"
)

// ConvertParseError turns a pipeline-stage error into an LSP diagnostic.
// Every stage through SSA conversion reports failures as *verrors.Error,
// which carries the taxonomy Kind/Detail the teacher's diagnostics.go
// used parser.ParseError/ScanError for.
func ConvertParseError(err error) []protocol.Diagnostic {
	verr, ok := err.(*verrors.Error)
	if !ok {
		return []protocol.Diagnostic{{
			Range:    protocol.Range{Start: protocol.Position{}, End: protocol.Position{Character: 1}},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("bvc"),
			Message:  err.Error(),
		}}
	}

	line := uint32(0)
	col := uint32(0)
	if verr.Position.Line > 0 {
		line = uint32(verr.Position.Line - 1)
		col = uint32(verr.Position.Column - 1)
	}

	source := string(verr.Kind)
	if verr.Detail != "" {
		source = source + "/" + verr.Detail
	}

	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: col},
			End:   protocol.Position{Line: line, Character: col + 5},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString(source),
		Message:  verr.Message,
	}}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }

func ptrString(s string) *string { return &s }
