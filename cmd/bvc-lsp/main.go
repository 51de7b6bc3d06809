// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"bvc/internal/lsp"
)

const lsName = "bvc"

var version = "0.1.0"

func main() {
	commonlog.Configure(1, nil)

	h := lsp.NewHandler()

	handler := protocol.Handler{
		Initialize:                     h.Initialize,
		Initialized:                    h.Initialized,
		Shutdown:                       h.Shutdown,
		SetTrace:                       h.SetTrace,
		TextDocumentDidOpen:            h.TextDocumentDidOpen,
		TextDocumentDidClose:           h.TextDocumentDidClose,
		TextDocumentDidChange:          h.TextDocumentDidChange,
		TextDocumentCompletion:         h.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: h.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("starting bvc language server", version)
	if err := s.RunStdio(); err != nil {
		log.Println("error starting bvc language server:", err)
		os.Exit(1)
	}
}
