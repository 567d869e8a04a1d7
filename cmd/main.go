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

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/Dosada05/prediction-league/config"
	"github.com/Dosada05/prediction-league/db"
	"github.com/Dosada05/prediction-league/gamification"
	"github.com/Dosada05/prediction-league/handlers"
	"github.com/Dosada05/prediction-league/live"
	"github.com/Dosada05/prediction-league/repositories"
	api "github.com/Dosada05/prediction-league/routes"
	"github.com/Dosada05/prediction-league/services"
	"github.com/Dosada05/prediction-league/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	hub := live.NewHub(logger)
	go hub.Run()
	logger.Info("live hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	groupRepo := repositories.NewPostgresGroupRepository(dbConn)
	fixtureRepo := repositories.NewPostgresFixtureRepository(dbConn)
	predictionRepo := repositories.NewPostgresPredictionRepository(dbConn)
	inviteRepo := repositories.NewPostgresInviteRepository(dbConn)
	statsRepo := repositories.NewPostgresStatsRepository(dbConn)
	logger.Info("repositories initialized")

	userService := services.NewUserService(userRepo, uploader)
	groupService := services.NewGroupService(dbConn, groupRepo, statsRepo, uploader)
	inviteService := services.NewInviteService(inviteRepo, groupRepo)
	predictionService := services.NewPredictionService(
		dbConn,
		predictionRepo,
		fixtureRepo,
		groupRepo,
		statsRepo,
		hub,
		logger,
	)
	gamificationService := services.NewGamificationService(statsRepo, gamification.DefaultConfig())
	dashboardService := services.NewDashboardService(userRepo, groupRepo, predictionRepo, fixtureRepo)
	logger.Info("services initialized")

	// Settle finished fixtures in the background so results flow into the
	// leaderboards without an operator calling the settle endpoint.
	go func() {
		ticker := time.NewTicker(cfg.SettlementInterval)
		defer ticker.Stop()
		logger.Info("settlement scheduler started", slog.Duration("interval", cfg.SettlementInterval))

		if err := predictionService.SettleDueFixtures(context.Background()); err != nil {
			logger.Error("settlement scheduler: initial run failed", slog.Any("error", err))
		}

		for range ticker.C {
			if err := predictionService.SettleDueFixtures(context.Background()); err != nil {
				logger.Error("settlement scheduler: periodic run failed", slog.Any("error", err))
			}
		}
	}()

	userHandler := handlers.NewUserHandler(userService)
	groupHandler := handlers.NewGroupHandler(groupService)
	inviteHandler := handlers.NewInviteHandler(inviteService)
	predictionHandler := handlers.NewPredictionHandler(predictionService)
	gamificationHandler := handlers.NewGamificationHandler(gamificationService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	webSocketHandler := handlers.NewWebSocketHandler(hub, groupService)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		[]byte(cfg.JWTSecretKey),
		userHandler,
		groupHandler,
		inviteHandler,
		predictionHandler,
		gamificationHandler,
		dashboardHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
