package server

import (
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/seripap/Intellitip/internal/lookup"
)

// Hover requests and cursor events are logged with the same surface and
// line fields.

func surfaceField(surface string) zap.Field {
	return zap.String("surface", surface)
}

func hoverFields(params protocol.TextDocumentPositionParams) []zap.Field {
	return []zap.Field{
		surfaceField(string(params.TextDocument.URI)),
		zap.Uint32("line", params.Position.Line),
		zap.Uint32("character", params.Position.Character),
	}
}

func eventFields(ev lookup.Event) []zap.Field {
	return []zap.Field{
		surfaceField(ev.Surface),
		zap.Int("line", ev.CursorLine),
	}
}

func resultFields(res *lookup.Result) []zap.Field {
	return []zap.Field{
		zap.String("language", res.Language),
		zap.String("name", res.Record.Name),
	}
}
