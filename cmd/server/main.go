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

	"github.com/lkumawat9176/sentimentscope/config"
	"github.com/lkumawat9176/sentimentscope/internal/analysis"
	"github.com/lkumawat9176/sentimentscope/internal/archive"
	"github.com/lkumawat9176/sentimentscope/internal/cache"
	"github.com/lkumawat9176/sentimentscope/internal/classifier"
	"github.com/lkumawat9176/sentimentscope/internal/clients"
	"github.com/lkumawat9176/sentimentscope/internal/dataset"
	"github.com/lkumawat9176/sentimentscope/internal/logging"
	"github.com/lkumawat9176/sentimentscope/internal/server"
)

const classifierInitRetries = 3

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	model := buildClassifier()
	defer model.Close()

	if addr := os.Getenv("VALKEY_INIT_ADDRESS"); addr != "" {
		classificationCache, err := cache.NewClassificationCache()
		if err != nil {
			slog.Warn("[Main] Classification cache disabled",
				slog.String("error", err.Error()))
		} else {
			defer classificationCache.Close()
			model = classifier.WithCache(model, classificationCache)
		}
	}

	session := analysis.NewSession(model)
	session.SetVocabulary(dataset.DefaultVocabulary)
	if err := session.LoadRecords(dataset.Sample()); err != nil {
		slog.Error("[Main] Failed to load sample dataset",
			slog.String("error", err.Error()))
	}

	if os.Getenv("ARCHIVE_ENABLED") == "true" {
		session.WithArchiver(archive.NewDynamoArchiver(clients.GetDynamoDBClient()))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := server.NewServer(port, session)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server stopped",
				slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("[Main] Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] Shutdown failed",
			slog.String("error", err.Error()))
	}
}

// buildClassifier picks the inference backend: the local ONNX transformer
// pipeline by default, with a boot-time retry before falling back to the
// lexicon-based VADER backend so the dashboard always comes up.
func buildClassifier() classifier.Classifier {
	if os.Getenv("CLASSIFIER_BACKEND") == "vader" {
		slog.Info("[Main] Using VADER classifier backend")
		return classifier.NewVaderClassifier()
	}

	for attempt := 1; attempt <= classifierInitRetries; attempt++ {
		model, err := classifier.NewHugotClassifier()
		if err == nil {
			return model
		}

		slog.Warn("[Main] Classifier init failed, retrying...",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
		time.Sleep(5 * time.Second)
	}

	slog.Warn("[Main] Falling back to VADER classifier backend")
	return classifier.NewVaderClassifier()
}
