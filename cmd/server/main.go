package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/gharsapp/ghars-backend/internal/config"
	"github.com/gharsapp/ghars-backend/internal/database"
	"github.com/gharsapp/ghars-backend/internal/handler"
	"github.com/gharsapp/ghars-backend/internal/logger"
	"github.com/gharsapp/ghars-backend/internal/repository"
	"github.com/gharsapp/ghars-backend/internal/router"
	"github.com/gharsapp/ghars-backend/internal/service"
	"github.com/gharsapp/ghars-backend/internal/validator"
	"github.com/gharsapp/ghars-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Ghars Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	adminRepo := repository.NewAdminRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	weekRepo := repository.NewWeekRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	verifier, err := service.NewPasswordVerifier(cfg.PasswordScheme, cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Str("scheme", cfg.PasswordScheme).Msg("Invalid password scheme")
	}

	authService := service.NewAuthService(cfg.JWTSecret, cfg.JWTExpiry, verifier, adminRepo, studentRepo, log)
	adminService := service.NewAdminService(adminRepo)
	studentService := service.NewStudentService(studentRepo, rdb, cfg.LeaderboardCacheTTL, log)
	classService := service.NewClassService(classRepo)
	weekService := service.NewWeekService(weekRepo)
	analyticsService := service.NewAnalyticsService(reportRepo, rdb, cfg.LeaderboardCacheTTL, log)
	mediaService := service.NewMediaService(cfg.UploadDir, cfg.MaxUploadBytes)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(authService, adminService, studentService, mediaService),
		Admin:       handler.NewAdminHandler(adminService, authService),
		Class:       handler.NewClassHandler(classService),
		Student:     handler.NewStudentHandler(studentService, authService, mediaService),
		Week:        handler.NewWeekHandler(weekService, mediaService),
		Leaderboard: handler.NewLeaderboardHandler(studentService),
		Analytics:   handler.NewAnalyticsHandler(analyticsService),
		WS:          handler.NewWSHandler(rdb, studentService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	leaderboardWorker := worker.NewLeaderboardWorker(studentService, cfg.LeaderboardCacheTTL, log)
	go leaderboardWorker.Start(workerCtx)

	// ─── Prewarm Leaderboard Cache ────────────────────────────────────
	// Build the snapshot BEFORE accepting traffic so the first public
	// read does not fan out to PostgreSQL under load.
	if _, err := studentService.RefreshLeaderboard(ctx); err != nil {
		log.Warn().Err(err).Msg("Leaderboard prewarm failed")
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
