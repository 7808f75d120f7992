package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mohamedkhaled004/school-academy-backend/internal/config"
	"github.com/mohamedkhaled004/school-academy-backend/internal/database"
	"github.com/mohamedkhaled004/school-academy-backend/internal/handler"
	"github.com/mohamedkhaled004/school-academy-backend/internal/logger"
	"github.com/mohamedkhaled004/school-academy-backend/internal/repository"
	"github.com/mohamedkhaled004/school-academy-backend/internal/router"
	"github.com/mohamedkhaled004/school-academy-backend/internal/service"
	"github.com/mohamedkhaled004/school-academy-backend/internal/validator"
	"github.com/mohamedkhaled004/school-academy-backend/internal/worker"
	"github.com/rs/zerolog"
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
		Msg("Starting School Academy Backend")

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
	txManager := repository.NewTxManager(pool)
	userRepo := repository.NewUserRepository(pool)
	teacherRepo := repository.NewTeacherRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	codeRepo := repository.NewAccessCodeRepository(pool)
	enrollRepo := repository.NewEnrollmentRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(userRepo)
	teacherService := service.NewTeacherService(teacherRepo)
	classService := service.NewClassService(classRepo, rdb, 2*cfg.CatalogRefresh, log)
	codeService := service.NewAccessCodeService(codeRepo, classRepo, log)
	enrollmentService := service.NewEnrollmentService(txManager, codeRepo, enrollRepo, classRepo, log)
	mediaService := service.NewMediaService(cfg)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService, userService),
		Enrollment: handler.NewEnrollmentHandler(enrollmentService),
		Class:      handler.NewClassHandler(classService),
		Teacher:    handler.NewTeacherHandler(teacherService, classService),
		AccessCode: handler.NewAccessCodeHandler(codeService),
		User:       handler.NewUserHandler(userService, authService),
		Media:      handler.NewMediaHandler(mediaService),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	catalogWorker := worker.NewCatalogWorker(classService, cfg.CatalogRefresh, log)
	go catalogWorker.Start(workerCtx)

	// ─── Prewarm Catalog Cache ────────────────────────────────────────
	// Build the class catalog in Redis before accepting traffic.
	if _, err := classService.RefreshCatalog(ctx); err != nil {
		log.Warn().Err(err).Msg("Catalog prewarm failed")
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
