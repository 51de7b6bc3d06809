// Package verrors implements the verifier's error taxonomy: every stage of
// the pipeline reports failures as a Kind plus a source position rather
// than an ad-hoc error string, and every kind is captured at the pipeline
// boundary and returned to the caller as a structured record.
package verrors

// Kind identifies which pipeline stage raised an error and how it should
// be surfaced to the caller, per the error taxonomy table.
type Kind string

const (
	// LexicalError is raised by the preprocessor on unbalanced braces or a
	// block header missing its opening brace.
	LexicalError Kind = "LexicalError"

	// ParseError is raised by the parser on a malformed statement.
	ParseError Kind = "ParseError"

	// UnsupportedFeature is raised by the parser for constructs the
	// language deliberately does not support, e.g. quantified assertions.
	UnsupportedFeature Kind = "UnsupportedFeature"

	// ConversionError is raised by the SSA converter (an unknown statement
	// type or an unroll depth of zero) and by the pipeline for a depth of
	// zero.
	ConversionError Kind = "ConversionError"

	// EncodingError is raised by the SMT encoder.
	EncodingError Kind = "EncodingError"

	// NothingToCompare is raised by the equivalence encoder when the two
	// programs share no observable variable or array.
	NothingToCompare Kind = "NothingToCompare"

	// SolverTimeout is raised by the solver adapter when the child
	// process exceeds its wall-clock deadline.
	SolverTimeout Kind = "SolverTimeout"

	// SolverMissing is raised when the solver executable cannot be found.
	SolverMissing Kind = "SolverMissing"

	// SolverUnknown names the solver's "unknown" outcome. The solver
	// adapter does not return it as an Error: an unknown verdict comes back
	// as a solver.Result with StatusUnknown.
	SolverUnknown Kind = "SolverUnknown"
)

// Specific parser sub-kinds, surfaced as the Detail field of a ParseError
// so callers can distinguish them without string matching on Message.
const (
	InvalidIfHeader    = "InvalidIfHeader"
	InvalidWhileHeader = "InvalidWhileHeader"
	InvalidForHeader   = "InvalidForHeader"
	InvalidAssert      = "InvalidAssert"
	InvalidAssign      = "InvalidAssign"

	MalformedPhi         = "MalformedPhi"
	UnknownStatementType = "UnknownStatementType"
	LoopUnrollDepthZero  = "LoopUnrollDepthZero"
)
