package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hszk-dev/ytapi/internal/api/handler"
	"github.com/hszk-dev/ytapi/internal/api/middleware"
	"github.com/hszk-dev/ytapi/internal/config"
	"github.com/hszk-dev/ytapi/internal/infrastructure/anthropic"
	"github.com/hszk-dev/ytapi/internal/infrastructure/cache"
	"github.com/hszk-dev/ytapi/internal/infrastructure/storage"
	"github.com/hszk-dev/ytapi/internal/infrastructure/youtube"
	"github.com/hszk-dev/ytapi/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// Process-wide shared resources: one Redis client and one pooled HTTP
	// client, constructed at startup and torn down at shutdown.
	redisClient := cache.NewClient(ctx, cfg.Redis.URL, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	httpClient := &http.Client{Timeout: cfg.YouTube.RequestTimeout}
	defer httpClient.CloseIdleConnections()

	aiHTTPClient := &http.Client{Timeout: cfg.Anthropic.Timeout}
	defer aiHTTPClient.CloseIdleConnections()

	responseCache := cache.New(redisClient, cfg.Redis.CacheTTL, logger)
	transcriptStore := storage.New(redisClient, logger)

	oembed := youtube.NewOEmbedClient(httpClient, cfg.YouTube.OEmbedBaseURL, logger)
	timedtext := youtube.NewTimedTextClient(httpClient, cfg.YouTube.TimedTextBaseURL, cfg.Redis.DefaultLanguage, logger)
	generator := anthropic.NewClient(aiHTTPClient, cfg.Anthropic.BaseURL, cfg.Anthropic.APIKey, logger)

	videoSvc := usecase.NewVideoService(oembed, timedtext, responseCache, usecase.VideoServiceConfig{
		CacheTTL: cfg.Redis.CacheTTL,
	})
	storageSvc := usecase.NewStorageService(videoSvc, transcriptStore)
	aiSvc := usecase.NewAIService(videoSvc, generator, usecase.AIServiceConfig{
		Model:     cfg.Anthropic.Model,
		FastModel: cfg.Anthropic.FastModel,
		MaxTokens: cfg.Anthropic.MaxTokens,
	})

	r := setupRouter(logger, videoSvc, storageSvc, aiSvc, responseCache)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func setupRouter(
	logger *slog.Logger,
	videoSvc usecase.VideoService,
	storageSvc usecase.StorageService,
	aiSvc usecase.AIService,
	responseCache *cache.Cache,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	healthHandler := handler.NewHealthHandler(responseCache, aiSvc)
	videoHandler := handler.NewVideoHandler(videoSvc)
	storageHandler := handler.NewStorageHandler(storageSvc)
	aiHandler := handler.NewAIHandler(aiSvc)
	cacheHandler := handler.NewCacheHandler(responseCache)

	r.Get("/health", healthHandler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/videos", func(r chi.Router) {
			r.Post("/data", videoHandler.Data)
			r.Post("/captions", videoHandler.Captions)
			r.Post("/timestamps", videoHandler.Timestamps)
			r.Post("/languages", videoHandler.Languages)
		})

		r.Route("/transcripts", func(r chi.Router) {
			r.Get("/", storageHandler.List)
			r.Get("/stats", storageHandler.Stats)
			r.Post("/save", storageHandler.Save)
			r.Post("/get", storageHandler.Get)
			r.Post("/delete", storageHandler.Delete)
		})

		r.Route("/ai", func(r chi.Router) {
			r.Post("/notes", aiHandler.Notes)
			r.Post("/translate", aiHandler.Translate)
		})

		r.Route("/cache", func(r chi.Router) {
			r.Get("/stats", cacheHandler.Stats)
			r.Delete("/", cacheHandler.Clear)
		})
	})

	return r
}
