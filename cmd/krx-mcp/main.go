package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bobmcallan/krxdata/internal/app"
	"github.com/bobmcallan/krxdata/internal/common"
	"github.com/bobmcallan/krxdata/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.NewApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	if err := run(ctx, a); err != nil {
		a.Logger.Error().Err(err).Msg("krx-mcp stopped with error")
		os.Exit(1)
	}
}

// run picks the mode: proxy to a running server when one is configured,
// otherwise serve in-process over stdio or streamable HTTP.
func run(ctx context.Context, a *app.App) error {
	if url := a.Config.MCP.ServerURL; url != "" {
		a.Logger.Info().Str("server", url).Msg("Proxying stdio to remote MCP endpoint")
		proxy := NewStdioProxy(url, a.Config.MCP.Path, a.Logger)
		return proxy.RunWithIO(ctx, os.Stdin, os.Stdout)
	}

	switch a.Config.MCP.Transport {
	case "http":
		return serveHTTP(ctx, a)
	case "", "stdio":
		err := a.MCPServer.RunStdio(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	default:
		return fmt.Errorf("unknown MCP transport %q (want stdio or http)", a.Config.MCP.Transport)
	}
}

func serveHTTP(ctx context.Context, a *app.App) error {
	common.PrintBanner(os.Stderr, a.Config, a.Logger, "mcp-http")
	srv := server.NewServer(a)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	common.PrintShutdownBanner(os.Stderr, a.Logger)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
