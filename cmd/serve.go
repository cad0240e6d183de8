package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/etnz/dashboard/server"
	"github.com/google/subcommands"
	"gopkg.in/natefinch/lumberjack.v2"
)

type serveCmd struct {
	addr string
	seed uint64
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the charts as a JSON API" }
func (*serveCmd) Usage() string {
	return `dash serve [-addr <address>] [-seed <seed>]

  Serves the dashboard charts as a JSON API, with live updates of the
  performance chart over a websocket. The API documentation is served on /docs.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "address to listen on, DASH_ADDR by default")
	f.Uint64Var(&c.seed, "seed", 0, "seed of the simulated paths, random when zero")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.addr != "" {
		cfg.Addr = c.addr
	}
	if err := setupLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "logger setup failed: %v\n", err)
		return subcommands.ExitFailure
	}

	slog.Info("dashboard config loaded",
		"addr", cfg.Addr,
		"source", cfg.Source,
		"currency", cfg.Currency,
		"refresh", cfg.Refresh,
		"log_level", cfg.LogLevel,
		"log_file", cfg.LogFile,
	)

	srv := &http.Server{Addr: cfg.Addr, Handler: server.NewServer(newService(cfg, c.seed), cfg.Refresh)}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("dashboard listening", "addr", cfg.Addr, "docs", "http://"+cfg.Addr+"/docs")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	select {
	case err := <-errCh:
		slog.Error("dashboard server failed", "error", err)
		return subcommands.ExitFailure
	case <-sigCtx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("dashboard shutdown failed", "error", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func setupLogger(level, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}

	logWriter := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    25,
		MaxBackups: 10,
		MaxAge:     14,
		Compress:   true,
	}

	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	h := slog.NewTextHandler(io.MultiWriter(os.Stdout, logWriter), &slog.HandlerOptions{Level: slogLevel})
	slog.SetDefault(slog.New(h))
	return nil
}
