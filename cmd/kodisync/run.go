package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"kodisync/internal/config"
	"kodisync/internal/handlers"
	"kodisync/internal/playback"
	"kodisync/internal/pool"
	"kodisync/internal/sonarr"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// buildLogger writes to stderr so log lines land in Sonarr's script output,
// and additionally to the configured log file when enabled.
func buildLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	var w io.Writer = os.Stderr
	cleanup := func() {}

	if cfg.Logs.WriteFile {
		f, err := os.OpenFile(cfg.Logs.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = io.MultiWriter(os.Stderr, f)
		cleanup = func() { _ = f.Close() }
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Logs.Level),
	}))
	return logger, cleanup, nil
}

// run processes the single Sonarr event this invocation carries.
func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}

	logger, cleanup, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := sonarr.FromEnv()
	logger.Info("event received", "event", env.EventType, "instance", env.InstanceName)

	if env.EventType == sonarr.EventUnknown {
		logger.Error("unknown event type, nothing to do")
		return handlers.ErrUnknownEvent
	}

	store, err := playback.Open(cfg.State.Path)
	if err != nil {
		logger.Error("opening playback state", "path", cfg.State.Path, "error", err)
		return err
	}
	defer func() { _ = store.Close() }()

	hosts, err := pool.Connect(ctx, cfg, store, logger)
	if err != nil {
		if errors.Is(err, pool.ErrNoHosts) {
			logger.Error("no kodi host reachable, event dropped", "event", env.EventType)
		}
		return err
	}

	h := handlers.New(env, cfg, hosts, logger)
	if err := h.Dispatch(ctx); err != nil {
		logger.Error("event processing failed", "event", env.EventType, "error", err)
		return err
	}

	logger.Info("event processed", "event", env.EventType)
	return nil
}
