package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/freshsense/spoilage-web/internal/config"
	"github.com/freshsense/spoilage-web/internal/delivery/http"
	"github.com/freshsense/spoilage-web/internal/events"
	"github.com/freshsense/spoilage-web/internal/logging"
	"github.com/freshsense/spoilage-web/internal/repository/postgres"
	"github.com/freshsense/spoilage-web/internal/service"
)

func main() {
	// Load environment variables
	foundDotEnv := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logr, err := logging.New(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		log.Fatalf("Logger setup failed: %v", err)
	}
	defer func() { _ = logr.Sync() }()

	if !foundDotEnv {
		logr.Info("no .env file found, using system environment")
	}

	// Database connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var repo service.SubmissionRepository = postgres.NewMockRepository()
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logr.Warn("could not connect to database, keeping submissions in memory", zap.Error(err))
		} else {
			defer pool.Close()
			pgRepo := postgres.NewPostgresRepository(pool)
			if err := pgRepo.EnsureSchema(ctx); err != nil {
				logr.Warn("could not prepare schema, keeping submissions in memory", zap.Error(err))
			} else {
				repo = pgRepo
				logr.Info("connected to PostgreSQL")
			}
		}
	}

	// Event bus
	var publisher service.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		logr.Info("publishing submissions", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}

	// Dependency Injection: Services
	predictor := service.NewPredictor(cfg.PredictorURL, logr)
	submissions := service.NewSubmissionService(repo, publisher, logr)
	handler := http.NewHandler(predictor, submissions, cfg.Thresholds, logr)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "Spoilage Web v1.0",
		ReadTimeout:  10 * time.Second,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes
	http.SetupRoutes(app, handler)

	// Graceful shutdown
	go func() {
		logr.Info("server starting", zap.String("port", cfg.Port), zap.String("predictor", cfg.PredictorURL))
		if err := app.Listen(":" + cfg.Port); err != nil {
			logr.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down server")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		logr.Warn("server forced to shutdown", zap.Error(err))
	}
	submissions.WaitBackground()
	if err := submissions.Close(); err != nil {
		logr.Warn("failed to close event publisher", zap.Error(err))
	}
	logr.Info("server exited gracefully")
}
