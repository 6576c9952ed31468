package server

import (
	"context"

	jsoniter "github.com/json-iterator/go"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// initOptions are read from InitializeParams.InitializationOptions.
type initOptions struct {
	// SyntaxFiles maps a language id to the syntax definition file the
	// editor uses for it, enabling the syntax-file language fallback.
	SyntaxFiles map[string]string `json:"syntaxFiles"`
}

func (s *Server) Initialize(ctx context.Context,
	params *protocol.InitializeParams) (result *protocol.InitializeResult, err error) {
	logger := protocol.LoggerFromContext(ctx)

	opts, err := parseInitOptions(params.InitializationOptions)
	if err != nil {
		logger.Warn("ignoring malformed initializationOptions", zap.Error(err))
	}

	s.mu.Lock()
	s.markup = preferredMarkup(params.Capabilities)
	if opts.SyntaxFiles != nil {
		s.syntaxFiles = opts.SyntaxFiles
	}
	s.mu.Unlock()

	_ = s.notifier.LogMessage(ctx, &protocol.LogMessageParams{
		Message: "intellitip server initialized",
		Type:    protocol.MessageTypeLog,
	})

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				Change:    protocol.TextDocumentSyncKindFull,
				OpenClose: true,
			},
			HoverProvider: true,
			ExecuteCommandProvider: &protocol.ExecuteCommandOptions{
				Commands: []string{CommandOpenDocs},
			},
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    "intellitip",
			Version: s.version,
		},
	}, nil
}

func parseInitOptions(raw interface{}) (initOptions, error) {
	var opts initOptions
	if raw == nil {
		return opts, nil
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return opts, err
	}
	err = json.Unmarshal(b, &opts)
	return opts, err
}

// preferredMarkup picks Markdown unless the client only lists plain text.
func preferredMarkup(caps protocol.ClientCapabilities) protocol.MarkupKind {
	if caps.TextDocument == nil || caps.TextDocument.Hover == nil {
		return protocol.Markdown
	}
	formats := caps.TextDocument.Hover.ContentFormat
	if len(formats) == 0 {
		return protocol.Markdown
	}
	for _, f := range formats {
		if f == protocol.Markdown {
			return protocol.Markdown
		}
	}
	return protocol.PlainText
}
