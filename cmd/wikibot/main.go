package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sglre6355/wikibot/internal/bot"
	_ "github.com/sglre6355/wikibot/internal/modules/admin"
	_ "github.com/sglre6355/wikibot/internal/modules/wiki"
	"github.com/sglre6355/wikibot/internal/overrides"
	"github.com/sglre6355/wikibot/internal/tracing"
	"github.com/sglre6355/wikibot/internal/wiki"
)

// version is set at build time via ldflags:
// go build -ldflags "-X main.version=1.0.0" ./cmd/wikibot
var version = "dev"

func main() {
	// Load configuration
	cfg, err := bot.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg.LogFormat, cfg.LogLevel))
	slog.Info("starting wikibot", "version", version)

	wikiCfg, err := wiki.LoadConfig()
	if err != nil {
		slog.Error("failed to load wiki config", "error", err)
		os.Exit(1)
	}

	tracingCfg, err := tracing.LoadConfig()
	if err != nil {
		slog.Error("failed to load tracing config", "error", err)
		os.Exit(1)
	}
	shutdownTracing, err := tracing.Setup(context.Background(), tracingCfg)
	if err != nil {
		slog.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metricsServer := serveMetrics(cfg.MetricsAddr)

	// Create and configure bot
	b := bot.NewBot(cfg, wiki.NewClient(wikiCfg, slog.Default()))
	var overridesFile *overrides.File
	if cfg.OverridesFile != "" {
		overridesFile, err = overrides.Load(cfg.OverridesFile)
		if err != nil {
			slog.Error("failed to load command overrides", "path", cfg.OverridesFile, "error", err)
			os.Exit(1)
		}
		b.SetOverrides(overridesFile)
	}
	if err := b.LoadModules(); err != nil {
		slog.Error("failed to load modules", "error", err)
		os.Exit(1)
	}

	// Start bot
	if err := b.Start(); err != nil {
		slog.Error("failed to start bot", "error", err)
		os.Exit(1)
	}
	if overridesFile != nil {
		if err := overridesFile.Watch(ctx, b.Reload); err != nil {
			slog.Warn("failed to watch command overrides", "path", cfg.OverridesFile, "error", err)
		}
	}

	// Wait for shutdown signal or an owner's shutdown command
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case <-stop:
		slog.Info("received termination signal, shutting down")
	case <-b.Done():
		slog.Info("received shutdown command, shutting down")
	}

	cancel()
	if err := b.Stop(); err != nil {
		slog.Error("failed to shutdown", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to stop metrics server", "error", err)
		}
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("failed to flush traces", "error", err)
	}

	slog.Info("completed bot shutdown")
}

// newLogger builds the process logger. The console format is colored when
// stdout is a terminal.
func newLogger(format, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	if strings.EqualFold(format, "console") {
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
			NoColor:    !isatty.IsTerminal(os.Stdout.Fd()),
			TimeFormat: time.Kitchen,
			Level:      lvl,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

// serveMetrics exposes the Prometheus registry on addr. It returns nil when
// addr is empty.
func serveMetrics(addr string) *http.Server {
	if addr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		slog.Info("serving metrics", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server failed", "error", err)
		}
	}()
	return server
}
