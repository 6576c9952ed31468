package server

import (
	"context"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/seripap/Intellitip/internal/document"
	"github.com/seripap/Intellitip/internal/lookup"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	logger := protocol.LoggerFromContext(ctx).
		With(hoverFields(params.TextDocumentPositionParams)...)

	doc, err := s.docs.Read(params.TextDocument.URI)
	if err != nil {
		logger.Debug("hover on unknown document")
		return nil, nil
	}

	ev, ok := s.eventAt(doc, params.Position)
	if !ok {
		return nil, nil
	}

	res, err := s.handler.Service().Lookup(ctx, ev)
	if err != nil {
		if miss, ok := lookup.AsError(err); ok {
			logger.Debug("no documentation", zap.Stringer("kind", miss.Kind))
			s.status(ctx, miss.Status())
			return nil, nil
		}
		return nil, err
	}

	logger.Debug("found documentation", resultFields(res)...)

	return &protocol.Hover{Contents: s.hoverContent(logger, res)}, nil
}

func (s *Server) hoverContent(logger *zap.Logger, res *lookup.Result) protocol.MarkupContent {
	r := s.handler.Renderer()
	if s.markupKind() == protocol.Markdown {
		md, err := r.Markdown(res.Record)
		if err == nil {
			return protocol.MarkupContent{Kind: protocol.Markdown, Value: md}
		}
		logger.Warn("markdown conversion failed, using plain text", zap.Error(err))
	}
	return protocol.MarkupContent{Kind: protocol.PlainText, Value: r.PlainText(res.Record)}
}

// eventAt describes a hover at pos in doc as a host event. The text runs
// past the cursor to the end of the hovered word, since a hover points at a
// word rather than at where the user is typing.
func (s *Server) eventAt(doc document.Document, pos protocol.Position) (lookup.Event, bool) {
	preceding, word, ok := doc.Hovered(pos)
	if !ok {
		return lookup.Event{}, false
	}
	return lookup.Event{
		Surface:        string(doc.URI),
		ScopeAtCursor:  doc.Scope(),
		SyntaxFilePath: s.syntaxFile(doc.LanguageID),
		CursorLine:     int(pos.Line),
		PrecedingText:  preceding,
		CurrentWord:    word,
	}, true
}
