// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/sharjeelz/famories/internal/api"
	"github.com/sharjeelz/famories/internal/assistant"
	"github.com/sharjeelz/famories/internal/family"
	"github.com/sharjeelz/famories/internal/foodlog"
	"github.com/sharjeelz/famories/internal/memories"
	"github.com/sharjeelz/famories/internal/models"
	"github.com/sharjeelz/famories/internal/session"
	"github.com/sharjeelz/famories/internal/sse"
	"github.com/sharjeelz/famories/internal/store"
	"github.com/sharjeelz/famories/internal/watcher"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("data_path", cfg.Data.Path),
		slog.Bool("assistant_enabled", cfg.AI.Enabled() || app.completer != nil),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Ensure data directories exist.
	if err := os.MkdirAll(cfg.Data.Path, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.MkdirAll(cfg.Data.PhotoDir(), 0o755); err != nil {
		return fmt.Errorf("create photo dir: %w", err)
	}

	// Collections over the three JSON array files.
	memStore := store.New[models.Memory](cfg.Data.MemoriesFile())
	famStore := store.New[models.FamilyMember](cfg.Data.FamilyFile())
	foodStore := store.New[models.FoodLog](cfg.Data.FoodLogFile())

	// Fail fast on unreadable or corrupt collections.
	for name, load := range map[string]func() error{
		"memories": func() error { _, err := memStore.Load(); return err },
		"family":   func() error { _, err := famStore.Load(); return err },
		"food_log": func() error { _, err := foodStore.Load(); return err },
	} {
		if err := load(); err != nil {
			return fmt.Errorf("open %s collection: %w", name, err)
		}
	}

	memSvc := memories.NewService(memStore)
	famSvc := family.NewService(famStore, cfg.Data.PhotoDir())
	foodSvc := foodlog.NewService(foodStore)

	// Assistant backends: injected fakes win, otherwise OpenAI when a
	// key is configured, otherwise the assistant routes are disabled.
	completer := app.completer
	transcriber := app.transcriber
	if completer == nil && cfg.AI.Enabled() {
		backend, err := assistant.NewOpenAI(cfg.AI.APIKey,
			assistant.WithModel(cfg.AI.Model),
			assistant.WithBaseURL(cfg.AI.BaseURL))
		if err != nil {
			return fmt.Errorf("init assistant: %w", err)
		}
		completer = backend
		if transcriber == nil {
			transcriber = backend
		}
	}

	var ai *assistant.Assistant
	if completer != nil {
		ai = assistant.New(completer, transcriber, memSvc, famSvc)
	} else {
		logger.Warn("assistant disabled: no API key configured")
	}

	sessions := session.NewManager(cfg.Auth.PIN)

	// SSE broker fed by the data directory watcher.
	broker := sse.NewBroker(time.Second)
	defer broker.Close()

	h := api.NewHandler(memSvc, famSvc, foodSvc, ai, sessions)
	apiRouter := api.NewRouter(h, sessions, http.HandlerFunc(broker.ServeHTTP))
	photos := api.NewPhotoHandler(cfg.Data.PhotoDir())

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api; photos are served at the top level.
	r.Mount("/api", apiRouter)
	r.Get("/photos/{filename}", photos.ServeFile)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the data directory and forward collection changes to SSE.
	g.Go(func() error {
		if err := watcher.Watch(gCtx, cfg.Data.Path, logger, broker.PublishChange); err != nil {
			logger.Warn("watcher failed", slog.String("error", err.Error()))
		}
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
