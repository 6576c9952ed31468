package server

import (
	"context"
	"time"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

type Middleware func(jsonrpc2.Handler) jsonrpc2.Handler

var StandardMiddleware = []Middleware{Recover, LogRequests}

// Recover turns a panic in a handler, including calls to LSP methods this
// server does not implement, into an error reply.
func Recover(next jsonrpc2.Handler) jsonrpc2.Handler {
	return func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) (err error) {
		defer func() {
			if r := recover(); r != nil {
				protocol.LoggerFromContext(ctx).Warn("handler panicked",
					zap.String("method", req.Method()), zap.Any("panic", r))
				err = reply(ctx, nil, jsonrpc2.Errorf(jsonrpc2.InternalError, "%s: not supported", req.Method()))
			}
		}()
		return next(ctx, reply, req)
	}
}

func LogRequests(next jsonrpc2.Handler) jsonrpc2.Handler {
	return func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		logger := protocol.LoggerFromContext(ctx).With(zap.String("method", req.Method()))
		start := time.Now()
		err := next(ctx, reply, req)
		logger.Debug("handled", zap.Duration("took", time.Since(start)), zap.Error(err))
		return err
	}
}
