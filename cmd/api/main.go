package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"daylog/internal/app"
	"daylog/internal/config"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API syncs daily biometric data, imports daily notes from an Obsidian vault
// and categorizes them into a browsable timeline.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Daylog API
//   description: |
//     Personal daily journal API. Health metrics, daily notes and categorized
//     entries are stored locally and grouped into a weekly timeline.
//   version: 1.0.0
// schemes:
//   - http
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := app.SetupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer func() {
		_ = a.Close()
	}()

	server := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting API server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("API server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Server stopped successfully")
}
