package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pantry-hub/internal/auth"
	"pantry-hub/internal/config"
	"pantry-hub/internal/database"
	"pantry-hub/internal/handler"
	"pantry-hub/internal/metrics"
	"pantry-hub/internal/middleware"
	"pantry-hub/internal/model"
	"pantry-hub/internal/notifier"
	"pantry-hub/internal/recipe"
	"pantry-hub/internal/repository"
	"pantry-hub/internal/router"
	"pantry-hub/internal/service"
	"pantry-hub/internal/storage"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting pantry-hub API server")

	metrics.Register()

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	redisClient := newRedisClient(ctx, cfg.Redis, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool, logger)
	pantryRepo := repository.NewPantryRepository(pool, logger)
	itemRepo := repository.NewItemRepository(pool, logger)
	shoppingRepo := repository.NewShoppingRepository(pool, logger)
	notificationRepo := repository.NewNotificationRepository(pool, logger)

	uploader := newUploader(ctx, cfg.Storage, logger)

	recipeClient := recipe.NewClient(cfg.Recipe.BaseURL, cfg.Recipe.AppID, cfg.Recipe.AppKey, cfg.Recipe.Timeout, logger)
	if !cfg.Recipe.RecipeAPIConfigured() {
		logger.Warn().Msg("recipe API credentials not set, recipe search will be unavailable")
	}
	recipeSearcher := recipe.NewCachedSearcher(recipeClient, redisClient, cfg.Recipe.CacheTTL, logger)

	// Schedule settings live in redis so every instance sees the same time.
	defaultSchedule := model.Schedule{Hour: cfg.Notifier.DefaultHour, Minute: cfg.Notifier.DefaultMinute}
	var schedules interface {
		service.ScheduleStore
		notifier.ScheduleSource
	}
	if redisClient != nil {
		schedules = notifier.NewRedisScheduleStore(redisClient, defaultSchedule)
	} else {
		schedules = notifier.NewMemoryScheduleStore(defaultSchedule)
	}

	var scheduler *notifier.Scheduler
	var rescheduler service.Rescheduler
	if cfg.Notifier.Enabled {
		retry := notifier.DefaultRetryPolicy()
		retry.MaxRetries = cfg.Notifier.MaxRetries
		job := notifier.NewJob(itemRepo, pantryRepo, notificationRepo, logger)
		scheduler = notifier.NewScheduler(job, schedules, defaultSchedule, retry, logger)
		scheduler.Start(ctx)
		rescheduler = scheduler
	} else {
		logger.Info().Msg("expiry notifier disabled")
	}

	// Initialize services
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, logger)
	accountService := service.NewAccountService(userRepo, uploader, logger)
	pantryService := service.NewPantryService(pantryRepo, cfg.Pantry.MemberCap, logger)
	itemService := service.NewItemService(itemRepo, pantryRepo, logger)
	shoppingService := service.NewShoppingService(shoppingRepo, itemRepo, pantryRepo, logger)
	recipeService := service.NewRecipeService(recipeSearcher, itemRepo, pantryRepo, logger)
	notificationService := service.NewNotificationService(notificationRepo, schedules, rescheduler, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Auth:         handler.NewAuthHandler(authService, logger),
		Account:      handler.NewAccountHandler(accountService, logger),
		Pantry:       handler.NewPantryHandler(pantryService, logger),
		Item:         handler.NewItemHandler(itemService, logger),
		Shopping:     handler.NewShoppingHandler(shoppingService, logger),
		Recipe:       handler.NewRecipeHandler(recipeService, logger),
		Notification: handler.NewNotificationHandler(notificationService, logger),
	}

	// Initialize router
	mux := router.New(handlers, authService, router.Options{
		MediaDir: cfg.Storage.LocalDir,
		Limiter:  middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, logger),
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		// Stop the scheduler before the pool closes.
		cancel()
		if scheduler != nil {
			select {
			case <-scheduler.Done():
			case <-shutdownCtx.Done():
				logger.Warn().Msg("scheduler did not stop before the shutdown deadline")
			}
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newRedisClient connects to redis when enabled. A nil client disables the
// recipe cache and keeps the schedule in memory.
func newRedisClient(ctx context.Context, cfg config.RedisConfig, logger zerolog.Logger) *redis.Client {
	if !cfg.Enabled {
		logger.Info().Msg("redis disabled, recipe cache off and schedule kept in memory")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn().Err(err).Str("address", cfg.Address).Msg("redis unavailable, continuing without it")
		client.Close()
		return nil
	}

	logger.Info().Str("address", cfg.Address).Msg("connected to redis")
	return client
}

// newUploader stores photos in S3 with the media directory as fallback, or
// only in the media directory when S3 is disabled.
func newUploader(ctx context.Context, cfg config.StorageConfig, logger zerolog.Logger) storage.Uploader {
	local := storage.NewFileUploader(cfg.LocalDir, cfg.LocalBaseURL, logger)

	if !cfg.S3Enabled {
		logger.Info().Str("dir", cfg.LocalDir).Msg("using local media directory for photos (S3 disabled)")
		return local
	}

	s3Uploader, err := storage.NewS3Uploader(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3Prefix, cfg.PublicBaseURL, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 uploader, falling back to local media directory only")
		return local
	}

	return storage.NewFallbackUploader(s3Uploader, local, logger)
}
