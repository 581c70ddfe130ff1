package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/voicenotes/internal/mcp"
	"github.com/rpggio/voicenotes/internal/transport"
)

// Version is reported to MCP clients.
var Version = "0.1.0"

const shutdownTimeout = 5 * time.Second

// MCPServer builds the MCP server over the app's services.
func (a *App) MCPServer() *sdkmcp.Server {
	return mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Notes:     a.Notes,
			Dictation: a.Dictation,
		},
		Version: Version,
		Logger:  a.Logger,
	})
}

// Serve runs the transport selected in the config until ctx is done or
// the client disconnects.
func (a *App) Serve(ctx context.Context) error {
	if a.Config.Transport.Mode == "http" {
		return a.ServeHTTP(ctx)
	}
	return a.ServeStdio(ctx)
}

// ServeStdio runs MCP over stdin/stdout. It returns when stdin closes or
// ctx is canceled.
func (a *App) ServeStdio(ctx context.Context) error {
	a.Logger.Info("starting stdio transport")
	if err := a.MCPServer().Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

// HTTPHandler returns the router serving /rpc, /health, and streamable MCP
// at /mcp.
func (a *App) HTTPHandler() http.Handler {
	server := a.MCPServer()
	streamable := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: 30 * time.Minute, Logger: a.Logger},
	)
	handler := mcp.NewHandler(a.Notes, a.Dictation)
	return transport.NewServer(handler, transport.Options{
		Logger:     a.Logger,
		Streamable: streamable,
	})
}

// ServeHTTP listens on the configured address until ctx is done, then
// shuts down gracefully.
func (a *App) ServeHTTP(ctx context.Context) error {
	addr := net.JoinHostPort(a.Config.Server.Host, strconv.Itoa(a.Config.Server.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           a.HTTPHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
