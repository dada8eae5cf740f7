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

	"github.com/Dosada05/tabletennis/config"
	"github.com/Dosada05/tabletennis/db"
	"github.com/Dosada05/tabletennis/handlers"
	"github.com/Dosada05/tabletennis/repositories"
	api "github.com/Dosada05/tabletennis/routes"
	"github.com/Dosada05/tabletennis/services"
	"github.com/Dosada05/tabletennis/storage"
	"github.com/go-chi/chi/v5"
)

// @title Table Tennis Tournament API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.Bool("auto_migrate", cfg.AutoMigrate))

	// Подключение к базе данных
	dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, cfg.DBPool)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if cfg.AutoMigrate {
		if err := db.Migrate(dbConn); err != nil {
			logger.Error("failed to apply migrations", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("database migrations applied")
	}

	// Инициализация репозиториев
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	categoryRepo := repositories.NewPostgresCategoryRepository(dbConn)
	registrationRepo := repositories.NewPostgresRegistrationRepository(dbConn)
	groupRepo := repositories.NewPostgresGroupRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	historyRepo := repositories.NewPostgresRatingHistoryRepository(dbConn)
	transactor := repositories.NewPostgresTransactor(dbConn, logger)
	logger.Info("repositories initialized")

	// Инициализация сервисов
	locks := services.NewLocks()
	categoryService := services.NewCategoryService(
		categoryRepo,
		registrationRepo,
		playerRepo,
		groupRepo,
		matchRepo,
		transactor,
		locks,
		logger,
	)
	playerService := services.NewPlayerService(playerRepo, historyRepo, logger)

	// Архив результатов в Cloudflare R2 (опционально)
	var archiveService services.ArchiveService
	if cfg.R2.Enabled() {
		store, err := storage.NewR2Store(context.Background(), cfg.R2)
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 store", slog.Any("error", err))
			os.Exit(1)
		}
		archiveService = services.NewArchiveService(categoryService, store, logger)
		logger.Info("results archive enabled", slog.String("bucket", cfg.R2.BucketName))
	} else {
		logger.Info("results archive disabled: R2 is not configured")
	}

	resultService := services.NewResultService(
		categoryRepo,
		registrationRepo,
		playerRepo,
		groupRepo,
		matchRepo,
		historyRepo,
		transactor,
		locks,
		archiveService,
		logger,
	)
	logger.Info("services initialized")

	// Инициализация обработчиков HTTP
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	matchHandler := handlers.NewMatchHandler(resultService)
	playerHandler := handlers.NewPlayerHandler(playerService)

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		api.Options{JWTSecret: cfg.JWTSecretKey, AllowedOrigins: cfg.AllowedOrigins},
		categoryHandler,
		matchHandler,
		playerHandler,
	)
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера
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

	// Ожидание сигнала завершения
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

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
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
