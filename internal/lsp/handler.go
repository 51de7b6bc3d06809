// Package lsp implements the editor-facing language server: live
// diagnostics from the parser/preprocessor and semantic tokens from the
// lexer. It deliberately stops short of running the SSA/SMT/solver
// stages on every keystroke — the CLI runs all of them, and the REPL runs
// SSA conversion. Grounded on the teacher's internal/lsp package
// (handler shape, URI handling, diagnostics notification), generalized
// from its participle/grammar-specific AST to this package's own
// preprocess/lexer/parser stack.
package lsp

import (
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"bvc/internal/ast"
	"bvc/internal/parser"
)

// SemanticTokenTypes enumerates the token kinds this server reports,
// indexed the same way TextDocumentSemanticTokensFull encodes them.
var SemanticTokenTypes = []string{
	"keyword",
	"variable",
	"number",
	"operator",
}

// SemanticTokenModifiers is empty: this language has no declaration
// modifiers worth distinguishing.
var SemanticTokenModifiers = []string{}

// Handler implements the glsp protocol.Handler callbacks for this
// language.
type Handler struct {
	mu      sync.RWMutex
	content map[string]string
	asts    map[string]*ast.Block
}

// NewHandler returns an empty Handler.
func NewHandler() *Handler {
	return &Handler{
		content: make(map[string]string),
		asts:    make(map[string]*ast.Block),
	}
}

// Initialize advertises the server's capabilities.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen parses the newly opened document and publishes any
// resulting diagnostics.
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	diagnostics, err := h.reparse(params.TextDocument.URI, params.TextDocument.Text)
	if err != nil {
		return err
	}
	sendDiagnostics(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

// TextDocumentDidChange re-parses on every full-document change.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	text, ok := latestFullText(params.ContentChanges)
	if !ok {
		return nil
	}
	diagnostics, err := h.reparse(params.TextDocument.URI, text)
	if err != nil {
		return err
	}
	sendDiagnostics(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

// TextDocumentDidClose drops cached state for the closed document.
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}
	h.mu.Lock()
	delete(h.content, path)
	delete(h.asts, path)
	h.mu.Unlock()
	return nil
}

// TextDocumentCompletion returns an empty list: this language has no
// identifiers worth suggesting beyond what's already in scope.
func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	return &protocol.CompletionList{IsIncomplete: false, Items: []protocol.CompletionItem{}}, nil
}

// TextDocumentSemanticTokensFull classifies every token in the document
// by lexical kind.
func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	content := h.content[path]
	h.mu.RUnlock()

	tokens := collectSemanticTokens(content)

	var data []uint32
	var prevLine, prevStart uint32
	for _, t := range tokens {
		deltaLine := t.Line - prevLine
		deltaStart := t.StartChar
		if deltaLine == 0 {
			deltaStart = t.StartChar - prevStart
		}
		data = append(data, deltaLine, deltaStart, t.Length, uint32(t.TokenType), uint32(t.TokenModifiers))
		prevLine, prevStart = t.Line, t.StartChar
	}

	return &protocol.SemanticTokens{Data: data}, nil
}

func (h *Handler) reparse(uri protocol.DocumentUri, text string) ([]protocol.Diagnostic, error) {
	path, err := uriToPath(uri)
	if err != nil {
		return nil, err
	}

	block, parseErr := parser.ParseSource(text)

	h.mu.Lock()
	h.content[path] = text
	if parseErr == nil {
		h.asts[path] = block
	} else {
		delete(h.asts, path)
	}
	h.mu.Unlock()

	if parseErr != nil {
		return ConvertParseError(parseErr), nil
	}
	return nil, nil
}

// latestFullText extracts the Text of the last full-document change
// event. TextDocumentSyncKindFull means the server always advertises
// whole-document sync, so every element of changes is a
// TextDocumentContentChangeEventWhole; only the last one matters.
func latestFullText(changes []interface{}) (string, bool) {
	for i := len(changes) - 1; i >= 0; i-- {
		switch c := changes[i].(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			return c.Text, true
		case *protocol.TextDocumentContentChangeEventWhole:
			return c.Text, true
		}
	}
	return "", false
}

func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}
	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

// sendDiagnostics notifies the client of diagnostics for uri. ctx.Notify is
// nil when a handler method is invoked directly (as the test suite does)
// rather than dispatched through a running glsp server, so that case is a
// no-op instead of a nil-function-call panic.
func sendDiagnostics(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool { return &b }

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }
