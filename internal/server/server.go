package server

import (
	"context"
	"sync"

	"github.com/pkg/browser"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/seripap/Intellitip/internal/document"
	"github.com/seripap/Intellitip/internal/lookup"
)

// Server answers hover requests and intellitip's popup requests.
type Server struct {
	// Unimplemented LSP methods fall through to the nil interface and are
	// turned into errors by the Recover middleware.
	protocol.Server

	cancel   context.CancelFunc
	notifier protocol.Client
	docs     *document.Manager
	handler  *lookup.Handler

	openURL func(url string) error
	version string

	mu          sync.Mutex
	markup      protocol.MarkupKind
	syntaxFiles map[string]string
}

type Option func(s *Server)

// WithOpenURL replaces the function used to open docs links.
func WithOpenURL(fn func(url string) error) Option {
	return func(s *Server) {
		s.openURL = fn
	}
}

func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

func NewServer(cancel context.CancelFunc, notifier protocol.Client, docManager *document.Manager, handler *lookup.Handler, opts ...Option) *Server {
	s := &Server{
		cancel:      cancel,
		notifier:    notifier,
		docs:        docManager,
		handler:     handler,
		openURL:     browser.OpenURL,
		markup:      protocol.Markdown,
		syntaxFiles: map[string]string{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler dispatches LSP methods to s and intellitip's own methods to
// handleCustom, wrapped in the given middleware (outermost last).
func (s *Server) Handler(middleware ...Middleware) jsonrpc2.Handler {
	h := protocol.ServerHandler(s, s.handleCustom)
	for _, m := range middleware {
		h = m(h)
	}
	return h
}

func (s *Server) Initialized(_ context.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (s *Server) Shutdown(_ context.Context) error {
	return nil
}

func (s *Server) Exit(_ context.Context) error {
	s.cancel()
	return nil
}

func (s *Server) DidChangeConfiguration(ctx context.Context, _ *protocol.DidChangeConfigurationParams) error {
	protocol.LoggerFromContext(ctx).Debug("ignoring configuration change; settings are read at startup")
	return nil
}

func (s *Server) markupKind() protocol.MarkupKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markup
}

func (s *Server) syntaxFile(languageID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syntaxFiles[languageID]
}

func (s *Server) status(ctx context.Context, msg string) {
	_ = s.notifier.LogMessage(ctx, &protocol.LogMessageParams{
		Message: msg,
		Type:    protocol.MessageTypeInfo,
	})
}
