package server

import (
	"context"

	"go.lsp.dev/protocol"
)

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) (err error) {
	td := params.TextDocument
	s.docs.Open(td.URI, string(td.LanguageID), int32(td.Version), td.Text)
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) (err error) {
	if len(params.ContentChanges) == 0 {
		return nil
	}

	// Full sync: the last change holds the whole document.
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.docs.Update(params.TextDocument.URI, int32(params.TextDocument.Version), text)
	return nil
}

func (s *Server) DidSave(_ context.Context, _ *protocol.DidSaveTextDocumentParams) (err error) {
	return nil
}

func (s *Server) DidClose(_ context.Context, params *protocol.DidCloseTextDocumentParams) (err error) {
	s.docs.Remove(params.TextDocument.URI)
	s.handler.Forget(string(params.TextDocument.URI))
	return nil
}
