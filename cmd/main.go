package main

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

	"github.com/Dosada05/doubles-rounds/brackets"
	"github.com/Dosada05/doubles-rounds/config"
	"github.com/Dosada05/doubles-rounds/db"
	"github.com/Dosada05/doubles-rounds/events"
	"github.com/Dosada05/doubles-rounds/handlers"
	"github.com/Dosada05/doubles-rounds/repositories"
	api "github.com/Dosada05/doubles-rounds/routes"
	"github.com/Dosada05/doubles-rounds/services"
	"github.com/Dosada05/doubles-rounds/storage"
	"github.com/go-chi/chi/v5"
)

// @title Doubles Rounds API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("log_level", cfg.LogLevel.String()))

	if err := run(cfg, logger); err != nil {
		logger.Error("application stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if err := db.CreateSchema(ctx, dbConn); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	// Snapshot export is optional; without R2 the service answers
	// ErrStorageNotConfigured.
	var uploader storage.FileUploader
	if cfg.R2Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("R2 not configured, standings export disabled")
	}

	publisher := events.NewNoopPublisher()
	if cfg.RabbitMQURL != "" {
		publisher, err = events.NewAMQPPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		logger.Info("RabbitMQ event publisher initialized")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close event publisher", slog.Any("error", err))
		}
	}()

	wsHub := brackets.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	transactor := repositories.NewTransactor(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	pairRepo := repositories.NewPostgresPairRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)

	tournamentService := services.NewTournamentService(transactor, tournamentRepo, pairRepo, matchRepo, wsHub, publisher, logger)
	participantService := services.NewParticipantService(transactor, tournamentRepo, pairRepo, matchRepo, wsHub, logger)
	scheduleService := services.NewScheduleService(
		transactor,
		tournamentRepo,
		pairRepo,
		matchRepo,
		brackets.NewRoundRobinGenerator(),
		wsHub,
		publisher,
		logger,
	)
	matchService := services.NewMatchService(tournamentRepo, matchRepo, wsHub, publisher, logger)
	standingsService := services.NewStandingsService(tournamentRepo, pairRepo, matchRepo, uploader, logger)
	logger.Info("Services initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		api.RouterConfig{JWTSecret: []byte(cfg.JWTSecretKey), AllowedOrigins: cfg.CORSAllowedOrigins},
		handlers.NewHealthHandler(dbConn),
		handlers.NewTournamentHandler(tournamentService),
		handlers.NewParticipantHandler(participantService),
		handlers.NewMatchHandler(scheduleService, matchService),
		handlers.NewStandingsHandler(standingsService),
		handlers.NewWebSocketHandler(wsHub, tournamentService, cfg.CORSAllowedOrigins),
	)
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
	if err := server.Shutdown(shutdownCtx); err != nil {
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("failed to force close server", slog.Any("error", closeErr))
		}
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server shutdown complete")
	return nil
}
