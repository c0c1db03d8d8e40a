package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/shapeshed/shapeshed-backend/internal/cache"
	"github.com/shapeshed/shapeshed-backend/internal/config"
	"github.com/shapeshed/shapeshed-backend/internal/database"
	"github.com/shapeshed/shapeshed-backend/internal/handler"
	"github.com/shapeshed/shapeshed-backend/internal/logger"
	"github.com/shapeshed/shapeshed-backend/internal/repository"
	"github.com/shapeshed/shapeshed-backend/internal/router"
	"github.com/shapeshed/shapeshed-backend/internal/service"
	"github.com/shapeshed/shapeshed-backend/internal/validator"
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
		Bool("payment_key_set", cfg.PaymentSecretKey != "").
		Msg("Starting ShapeShed")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to MongoDB ────────────────────────────────────────────
	// A failed ping is not fatal: routes stay up and fail per request
	// until the cluster is reachable.
	mongoDB, err := database.NewMongo(ctx, cfg, log)
	if mongoDB == nil {
		log.Fatal().Err(err).Msg("Failed to create MongoDB client")
	}
	if err != nil {
		log.Error().Err(err).Msg("MongoDB not reachable at startup")
	}

	// ─── Connect to Redis (optional) ───────────────────────────────────
	var listCache service.ListCache = cache.Noop{}
	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, list cache disabled")
		} else {
			defer rdb.Close()
			listCache = cache.NewRedisCache(rdb, cfg.CacheTTL)
		}
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(mongoDB, cfg.DBOpTimeout)
	classRepo := repository.NewClassRepository(mongoDB, cfg.DBOpTimeout)
	instructorRepo := repository.NewInstructorRepository(mongoDB, cfg.DBOpTimeout)

	// ─── Initialize Services ──────────────────────────────────────────
	userService := service.NewUserService(userRepo, log)
	classService := service.NewClassService(classRepo, listCache, log)
	instructorService := service.NewInstructorService(instructorRepo, classRepo, listCache, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Root:       handler.NewRootHandler(),
		User:       handler.NewUserHandler(userService),
		Class:      handler.NewClassHandler(classService),
		Instructor: handler.NewInstructorHandler(instructorService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msgf("ShapeShed Server is running on port %s", cfg.ServerPort)
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

	if err := mongoDB.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("MongoDB disconnect error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
