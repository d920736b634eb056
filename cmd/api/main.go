// Package main provides the entry point for the NutriPlan API server
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nutriplan/v1/internal/application/assistant"
	"github.com/nutriplan/v1/internal/application/feedback"
	"github.com/nutriplan/v1/internal/application/generation"
	"github.com/nutriplan/v1/internal/application/planner"
	"github.com/nutriplan/v1/internal/application/video"
	"github.com/nutriplan/v1/internal/infrastructure/ai/gemini"
	"github.com/nutriplan/v1/internal/infrastructure/ai/ollama"
	"github.com/nutriplan/v1/internal/infrastructure/config"
	"github.com/nutriplan/v1/internal/infrastructure/http/server"
	persistence "github.com/nutriplan/v1/internal/infrastructure/persistence/gorm"
	"github.com/nutriplan/v1/internal/infrastructure/persistence/sqlite"
	"github.com/nutriplan/v1/internal/ports/inbound"
	"github.com/nutriplan/v1/internal/ports/outbound"
	"github.com/nutriplan/v1/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.App.Environment == "development",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	if err := run(cfg, zapLogger); err != nil {
		zapLogger.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zapLogger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	db, err := sqlite.SetupDatabase(cfg.Database.Path, sqlite.ParseLogLevel(cfg.Database.LogLevel))
	if err != nil {
		return err
	}
	zapLogger.Info("Database ready", zap.String("path", cfg.Database.Path))

	planRepo := persistence.NewMealPlanRepository(db)
	feedbackRepo := persistence.NewFeedbackRepository(db)
	auditLog := persistence.NewGenerationLog(db)

	// Generation backends. Without a Gemini key the local backend is
	// promoted to primary and there is no fallback.
	primary, fallback := buildGenerators(ctx, cfg, zapLogger)
	chain := generation.NewChain(primary, fallback, auditLog, zapLogger)

	// Application services
	plannerService := planner.NewService(chain, planRepo, zapLogger)
	assistantService := assistant.NewService(chain, zapLogger)
	videoService := video.NewService(plannerService, inbound.ProviderBudget{
		Runway: cfg.Video.RunwayCredits,
		Pika:   cfg.Video.PikaCredits,
		Luma:   cfg.Video.LumaCredits,
	}, cfg.Video.SceneDelay, zapLogger)
	feedbackService := feedback.NewService(feedbackRepo, zapLogger)

	srv := server.NewServer(cfg, zapLogger, plannerService, assistantService, videoService, feedbackService)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zapLogger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// buildGenerators wires the primary and fallback text generation backends
func buildGenerators(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) (outbound.TextGenerator, outbound.TextGenerator) {
	local := ollama.NewClient(cfg.AI.OllamaHost, cfg.AI.OllamaModel, cfg.AI.OllamaTimeout, zapLogger)

	hosted, err := gemini.NewClient(ctx, cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel, zapLogger)
	if err != nil {
		zapLogger.Warn("Gemini backend unavailable, using Ollama only", zap.Error(err))
		return local, nil
	}

	return hosted, local
}
