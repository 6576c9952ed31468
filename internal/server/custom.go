package server

import (
	"context"
	"fmt"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/seripap/Intellitip/internal/lookup"
)

const (
	// MethodCursorMoved is a request carrying a lookup.Event. The reply is a
	// lookup.Popup, or null when there is nothing (new) to show.
	MethodCursorMoved = "intellitip/cursorMoved"

	// MethodSurfaceClosed is a notification with {"surface": id}; it drops
	// the surface's debounce state.
	MethodSurfaceClosed = "intellitip/surfaceClosed"
)

type surfaceParams struct {
	Surface string `json:"surface"`
}

func (s *Server) handleCustom(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	switch req.Method() {
	case MethodCursorMoved:
		var ev lookup.Event
		if err := json.Unmarshal(req.Params(), &ev); err != nil {
			return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.InvalidParams, fmt.Sprintf("%s: %v", MethodCursorMoved, err)))
		}
		popup := s.CursorMoved(ctx, ev)
		if popup == nil {
			return reply(ctx, nil, nil)
		}
		return reply(ctx, popup, nil)

	case MethodSurfaceClosed:
		var p surfaceParams
		if err := json.Unmarshal(req.Params(), &p); err != nil {
			return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.InvalidParams, fmt.Sprintf("%s: %v", MethodSurfaceClosed, err)))
		}
		s.handler.Forget(p.Surface)
		return reply(ctx, nil, nil)
	}

	return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
}

// CursorMoved runs a host cursor event through the debounced pipeline.
func (s *Server) CursorMoved(ctx context.Context, ev lookup.Event) *lookup.Popup {
	logger := protocol.LoggerFromContext(ctx).With(eventFields(ev)...)

	resp := s.handler.Handle(ctx, ev)
	switch resp.Outcome {
	case lookup.Shown:
		logger.Debug("showing popup",
			zap.String("language", resp.Popup.Language), zap.String("name", resp.Popup.Name))
		return resp.Popup
	case lookup.Missed:
		logger.Debug("no documentation", zap.Stringer("kind", resp.Miss.Kind))
		s.status(ctx, resp.Miss.Status())
	}
	return nil
}
