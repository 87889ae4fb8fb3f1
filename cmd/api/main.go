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

	"jobspec-miner/internal/api"
	"jobspec-miner/internal/config"
	"jobspec-miner/internal/extractor"
	"jobspec-miner/internal/gemini"
	"jobspec-miner/internal/geministore"
	"jobspec-miner/internal/objectstore"
	"jobspec-miner/internal/s3"
	"jobspec-miner/internal/session"
	"jobspec-miner/internal/valkeydb"
)

func main() {

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		fatal("Failed to load configuration", err)
	}

	ctx := context.Background()

	geminiOpts := geministore.Options{
		BaseURL: cfg.GeminiBaseURL,
		Timeout: cfg.GeminiTimeout,
	}

	// every extraction gets its own client, bound to the caller's key
	newClient := func(ctx context.Context, credential string) (gemini.Generator, error) {
		return geministore.New(ctx, credential, geminiOpts)
	}

	pipeline := extractor.New(newClient, logger)

	var locker session.Locker
	if cfg.ValkeyURL != "" {
		valkeyClient, err := valkeydb.New(ctx, cfg.ValkeyURL, cfg.ValkeyPassword, cfg.LockTTL)
		if err != nil {
			fatal("Failed to initialize valkey", err)
		}
		defer valkeyClient.Close()

		locker = valkeyClient
		logger.Info("Valkey extraction lock enabled")
	} else {
		locker = session.NewMemoryLocker()
	}

	var exports objectstore.FileStorer
	if cfg.ExportsEnabled() {
		s3Store, err := s3.NewFileStore(ctx, s3.S3Config{
			EndpointURL: cfg.S3EndpointURL,
			Region:      cfg.S3Region,
			AccessKey:   cfg.S3AccessKey,
			SecretKey:   cfg.S3SecretKey,
			Bucket:      cfg.S3BucketName,
		})
		if err != nil {
			fatal("Could not create S3 filestore", err)
		}

		exports = s3Store
		logger.Info("S3 FileStore initialized", slog.String("bucket", s3Store.Bucket()))
	}

	sessions := session.NewManager(pipeline, locker, cfg.SessionTTL, logger)

	apiHandler := api.NewAPIHandler(sessions, exports, cfg.GeminiModel, logger)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      api.NewRouter(apiHandler),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Info("HTTP server listening", slog.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("HTTP server failed", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Wait for shutdown signal
	<-sigChan
	logger.Info("Shutdown signal received, draining requests...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", slog.Any("error", err))
	}

	logger.Info("Server shutdown complete")
}

func fatal(msg string, err error) {
	slog.Error(msg, slog.Any("error", err))
	os.Exit(1)
}
