package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"valentine-backend/internal/blob"
	"valentine-backend/internal/config"
	"valentine-backend/internal/handlers"
	"valentine-backend/internal/identity"
	"valentine-backend/internal/kvstore"
	"valentine-backend/internal/repository"
	"valentine-backend/internal/services"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	ctx := context.Background()

	// Connect the key-value store
	kv, cleanup, err := newKVStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect key-value store")
	}
	defer cleanup()
	log.Info().Str("driver", cfg.Storage.Driver).Msg("Key-value store connected")

	// Connect the blob store and make sure the photo bucket exists
	blobs, err := blob.NewS3Store(ctx, blob.S3Options{
		Region:    cfg.S3.Region,
		Bucket:    cfg.S3.Bucket,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		Endpoint:  cfg.S3.Endpoint,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create blob store")
	}
	if err := blobs.EnsureBucket(ctx); err != nil {
		// Upload re-checks; startup continues on a cold bucket error.
		log.Error().Err(err).Msg("Failed to initialize photo bucket")
	}

	// Identity provider
	provider := identity.NewKVProvider(kv, cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLDays)*24*time.Hour)

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(kv)
	photoRepo := repository.NewPhotoRepository(kv)
	contentRepo := repository.NewContentRepository(kv)
	settingsRepo := repository.NewSettingsRepository(kv)

	// Initialize services
	accountService := services.NewAccountService(profileRepo, provider, cfg.Auth.AdminPasscode)
	photoService := services.NewPhotoService(photoRepo, blobs)
	contentService := services.NewContentService(contentRepo)
	publicService := services.NewPublicService(profileRepo, settingsRepo, photoService, contentService)
	adminService := services.NewAdminService(profileRepo, settingsRepo)

	// Initialize handlers and router
	router := handlers.NewRouter(
		accountService,
		handlers.NewAccountHandler(accountService),
		handlers.NewPhotoHandler(photoService),
		handlers.NewContentHandler(contentService),
		handlers.NewPublicHandler(publicService),
		handlers.NewAdminHandler(adminService),
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// newKVStore builds the configured key-value store driver
func newKVStore(ctx context.Context, cfg *config.Config) (kvstore.Store, func(), error) {
	switch cfg.Storage.Driver {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		return kvstore.NewRedisStore(rdb), func() { rdb.Close() }, nil

	case "memory":
		return kvstore.NewMemoryStore(), func() {}, nil

	case "postgres":
		db, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.Ping(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		store := kvstore.NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
