package cli

import (
	"context"
	"errors"
	"io"
	"net"
	"os"

	"github.com/spf13/cobra"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/seripap/Intellitip/internal/document"
	"github.com/seripap/Intellitip/internal/server"
)

type startCmd struct {
	address string
}

func (c *startCmd) register() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the intellitip language server",
		Long: `Start the intellitip language server.

By default, the server will run in stdio mode: requests should be written to
stdin and responses will be written to stdout. (All logging is _always_ done
to stderr.)

For socket mode, pass the --address option.
`,
		Example: `
# Launch in stdio mode with extra logging
intellitip start --verbose

# Listen on all interfaces on port 8765
intellitip start --address=":8765"

# Use a custom documentation directory and settings file
intellitip start --root ~/intellitip --settings ~/intellitip/settings.json`,
		Args: cobra.NoArgs,
	}

	cmd.Flags().StringVar(&c.address, "address", "",
		"Address (hostname:port) to listen on")

	return cmd
}

func (c *startCmd) run(ctx context.Context, _ []string) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	if c.address != "" {
		err = runSocketServer(ctx, c.address, a)
	} else {
		err = runStdioServer(ctx, a)
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return err
}

func runStdioServer(ctx context.Context, a *app) error {
	ctx, cancel := context.WithCancel(ctx)
	logger := protocol.LoggerFromContext(ctx)
	logger.Debug("running in stdio mode")
	stdio := struct {
		io.ReadCloser
		io.Writer
	}{
		os.Stdin,
		os.Stdout,
	}

	return launchHandler(ctx, cancel, stdio, a)
}

func runSocketServer(ctx context.Context, addr string, a *app) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp4", addr)
	if err != nil {
		return err
	}
	defer func() {
		_ = listener.Close()
	}()
	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	logger := protocol.LoggerFromContext(ctx).
		With(zap.String("local_addr", listener.Addr().String()))
	ctx = protocol.WithLogger(ctx, logger)
	logger.Info("running in socket mode")

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Warn("failed to accept connection", zap.Error(err))
			continue
		}
		logger.Debug("accepted connection",
			zap.String("remote_addr", conn.RemoteAddr().String()))

		err = launchHandler(ctx, cancel, conn, a)
		if err != nil {
			return err
		}
	}
}

func initializeConn(conn io.ReadWriteCloser, logger *zap.Logger) (jsonrpc2.Conn, protocol.Client) {
	stream := jsonrpc2.NewStream(conn)
	jsonConn := jsonrpc2.NewConn(stream)
	notifier := protocol.ClientDispatcher(jsonConn, logger.Named("notify"))

	return jsonConn, notifier
}

func createHandler(cancel context.CancelFunc, notifier protocol.Client, a *app, logger *zap.Logger) jsonrpc2.Handler {
	docManager := document.NewDocumentManager()
	s := server.NewServer(cancel, notifier, docManager, a.newHandler(logger), server.WithVersion(version))
	return s.Handler(server.StandardMiddleware...)
}

func launchHandler(ctx context.Context, cancel context.CancelFunc, conn io.ReadWriteCloser, a *app) error {
	logger := protocol.LoggerFromContext(ctx)
	jsonConn, notifier := initializeConn(conn, logger)
	h := createHandler(cancel, notifier, a, logger)
	jsonConn.Go(ctx, h)

	select {
	case <-ctx.Done():
		_ = jsonConn.Close()
		return ctx.Err()
	case <-jsonConn.Done():
		if ctx.Err() == nil {
			if !errors.Is(jsonConn.Err(), io.EOF) {
				// only propagate connection error if context is still valid
				return jsonConn.Err()
			}
		}
	}

	return nil
}
