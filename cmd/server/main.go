package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"staybook/internal/config"
	"staybook/internal/handler"
	"staybook/internal/repository"
	"staybook/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := config.NewLogger(cfg.Logging, os.Stdout)
	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("staybook server starting")

	gin.SetMode(cfg.Server.GinMode)
	handler.RegisterValidators()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, closeBackend, err := openBackend(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.Backend).Msg("failed to initialize property backend")
	}
	defer closeBackend()

	if cfg.Redis.Addr != "" {
		cached, closeCache, err := openCache(ctx, cfg, backend, logger)
		if err != nil {
			closeBackend()
			logger.Fatal().Err(err).Msg("failed to initialize property cache")
		}
		defer closeCache()
		backend = cached
	}

	// Initialize services
	listingService := service.NewListingService(backend, cfg.Listing.PageSize, cfg.Listing.MaxPageLabels)
	bookingService := service.NewBookingService(backend)

	// Initialize handlers
	propertyHandler := handler.NewPropertyHandler(listingService)
	bookingHandler := handler.NewBookingHandler(bookingService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handler.RequestLogger(logger))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = config.SplitList(cfg.Server.AllowedOrigins)
	corsConfig.AllowMethods = config.SplitList(cfg.Server.AllowedMethods)
	corsConfig.AllowHeaders = config.SplitList(cfg.Server.AllowedHeaders)
	corsConfig.ExposeHeaders = []string{handler.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"service":    "staybook",
			"backend":    cfg.Backend,
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	handler.RegisterRoutes(router.Group("/api/v1"), propertyHandler, bookingHandler)

	// Implemented in embed.go (production) or static_dev.go (development)
	setupStaticFiles(router, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Str("backend", cfg.Backend).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	logger.Info().Msg("server stopped")
}

// openBackend connects the configured property backend and returns a
// function releasing it
func openBackend(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (service.Backend, func(), error) {
	if cfg.Backend == config.BackendAPI {
		logger.Info().
			Str("api_base", cfg.BookingAPI.BaseURL).
			Int("timeout_s", cfg.BookingAPI.Timeout).
			Msg("using upstream booking API")
		return service.NewBookingAPIClient(&cfg.BookingAPI), func() {}, nil
	}

	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		return nil, nil, err
	}
	closeRepo := func() {
		if err := repo.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close database")
		}
	}
	logger.Info().Msg("connected to PostgreSQL database")

	if cfg.PostgreSQL.AutoMigrate {
		if err := repo.Migrate(ctx); err != nil {
			closeRepo()
			return nil, nil, err
		}
		logger.Info().Msg("database schema ready")
	}

	if cfg.PostgreSQL.SeedFile != "" {
		properties, err := repository.LoadPropertiesFile(cfg.PostgreSQL.SeedFile)
		if err != nil {
			closeRepo()
			return nil, nil, err
		}
		n, err := repo.SeedProperties(ctx, properties)
		if err != nil {
			closeRepo()
			return nil, nil, err
		}
		logger.Info().Int("properties", n).Str("file", cfg.PostgreSQL.SeedFile).Msg("seeded properties")
	}

	return repo, closeRepo, nil
}

// openCache wraps backend with the Redis property list cache. A fresh
// process drops the previous entry so seeded data shows up immediately.
func openCache(ctx context.Context, cfg *config.Config, backend service.Backend, logger zerolog.Logger) (service.Backend, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	closeClient := func() {
		if err := client.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close redis client")
		}
	}

	cached, err := repository.NewCachedBackend(backend, repository.CacheConfig{
		Client:    client,
		KeyPrefix: cfg.Redis.KeyPrefix,
		TTL:       time.Duration(cfg.Redis.CacheTTL) * time.Second,
	})
	if err != nil {
		closeClient()
		return nil, nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable, properties will be read from the backend")
	} else if err := cached.Invalidate(pingCtx); err != nil {
		logger.Warn().Err(err).Msg("failed to clear property cache")
	} else {
		logger.Info().Str("addr", cfg.Redis.Addr).Int("ttl_s", cfg.Redis.CacheTTL).Msg("property cache enabled")
	}

	return cached, closeClient, nil
}
