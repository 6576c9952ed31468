package cli

import (
	"context"
	"fmt"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// All logging goes to stderr; stdout carries the LSP stream in stdio mode.
var logLevel = zap.NewAtomicLevelAt(zapcore.WarnLevel)

func NewLogger() (logger *zap.Logger, cleanup func()) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = logLevel
	cfg.Development = false
	logger, err := cfg.Build()
	if err != nil {
		panic(fmt.Errorf("failed to initialize logger: %v", err))
	}

	cleanup = func() {
		_ = logger.Sync()
	}
	return logger, cleanup
}

func loggerFrom(ctx context.Context) *zap.Logger {
	return protocol.LoggerFromContext(ctx)
}
