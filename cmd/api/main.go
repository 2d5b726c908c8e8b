// Package main is the entry point for the Wanderlust API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paolobenve/wanderlust/internal/assistant"
	"github.com/paolobenve/wanderlust/internal/config"
	"github.com/paolobenve/wanderlust/internal/handler"
	"github.com/paolobenve/wanderlust/internal/middleware"
	"github.com/paolobenve/wanderlust/internal/service"
	"github.com/paolobenve/wanderlust/internal/store"
	"github.com/paolobenve/wanderlust/internal/weather"
)

// maxBodySize bounds any request body; itinerary imports are the largest
// expected payload.
const maxBodySize = 10 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Storage ----------------------------------------------------------
	// Postgres when DATABASE_URL is set, otherwise JSON files under DataDir.
	// Both back the same key/value blob contract.
	var blobs store.BlobStore
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		// Verify the DB is reachable before accepting traffic.
		if err := pool.Ping(context.Background()); err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		slog.Info("database connection established")
		blobs = store.NewPGStore(pool)
	} else {
		fileStore, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			slog.Error("failed to open data directory", "dir", cfg.DataDir, "error", err)
			os.Exit(1)
		}
		slog.Info("file persistence enabled", "dir", cfg.DataDir)
		blobs = fileStore
	}

	// --- Services ---------------------------------------------------------
	ctx := context.Background()
	trips := service.NewItineraryService(ctx, store.NewTripStore(blobs, logger))
	expenses := service.NewExpenseService(ctx, trips, store.NewExpenseStore(blobs, logger))

	var gen assistant.Generator
	if cfg.GeminiAPIKey != "" {
		gen = assistant.NewGeminiClient(cfg.GeminiAPIKey)
	} else {
		slog.Warn("GEMINI_API_KEY not set; assistant replies with a local fallback")
	}
	chat := assistant.NewService(gen)

	forecaster := weather.NewClient(cfg.WeatherBaseURL)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	srv := handler.NewServer(trips, expenses, chat, forecaster)
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	// WriteTimeout leaves room for a slow assistant upstream.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
