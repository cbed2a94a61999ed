package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/PivnoyFei/webtronics-social-networking/internal/config"
	"github.com/PivnoyFei/webtronics-social-networking/internal/database"
	"github.com/PivnoyFei/webtronics-social-networking/internal/http/handler"
	"github.com/PivnoyFei/webtronics-social-networking/internal/http/middleware"
	"github.com/PivnoyFei/webtronics-social-networking/internal/http/router"
	"github.com/PivnoyFei/webtronics-social-networking/internal/observability"
	"github.com/PivnoyFei/webtronics-social-networking/internal/repository"
	"github.com/PivnoyFei/webtronics-social-networking/internal/security"
	"github.com/PivnoyFei/webtronics-social-networking/internal/service"
)

// App owns every long-lived resource. Stores are constructed here once and
// handed to the services that use them; nothing reaches for a global client.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	Server *http.Server

	db    *gorm.DB
	redis *redis.Client
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := observability.NewLogger(cfg.Env, cfg.LogLevel)

	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	redisClient, err := connectRedis(cfg, logger)
	if err != nil {
		return nil, err
	}

	codec := security.NewTokenCodec(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db)
	reactions := repository.NewReactionRepository(db)

	var sessions service.SessionStore
	if cfg.SessionStore == "redis" {
		sessions = service.NewRedisSessionStore(redisClient, "session", cfg.SessionMaxPerUser, cfg.JWTRefreshTTL)
	} else {
		sessions = service.NewDBSessionStore(db, cfg.SessionMaxPerUser, cfg.JWTRefreshTTL)
	}

	var reactionCache service.ReactionCacheStore
	var authLimiter middleware.Limiter
	if redisClient != nil {
		reactionCache = service.NewRedisReactionCacheStore(redisClient, "reactions")
		authLimiter = middleware.NewRedisFixedWindowLimiter(redisClient, "rl")
	} else {
		reactionCache = service.NewInMemoryReactionCacheStore()
		authLimiter = middleware.NewLocalFixedWindowLimiter()
	}

	var storage service.StorageService
	if cfg.MinioEndpoint != "" {
		storage, err = service.NewMinioStorage(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			return nil, fmt.Errorf("connect object storage: %w", err)
		}
	} else {
		storage = service.NewDisabledStorage()
	}

	authSvc := service.NewAuthService(users, sessions, codec, cfg.SessionMaxPerUser, logger)
	userSvc := service.NewUserService(users, logger)
	postSvc := service.NewPostService(posts, reactions, reactionCache, logger)
	reactionSvc := service.NewReactionService(posts, reactions, reactionCache, logger)

	authRate := middleware.NewRateLimiter(authLimiter, cfg.AuthRateLimitPerMin, time.Minute, logger)

	mux := router.New(router.Deps{
		Auth:      handler.NewAuthHandler(authSvc, logger),
		Users:     handler.NewUserHandler(userSvc, storage, logger),
		Posts:     handler.NewPostHandler(postSvc, reactionSvc, logger),
		AuthMW:    middleware.RequireAuth(authSvc),
		AuthLimit: authRate.Middleware(),
		Logger:    logger,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		Config: cfg,
		Logger: logger,
		Server: server,
		db:     db,
		redis:  redisClient,
	}, nil
}

// RunMigrationOnly applies the schema and exits without serving.
func RunMigrationOnly() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	return database.Migrate(db)
}

func (a *App) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

// connectRedis is strict only when the session store depends on it; for the
// reaction cache and rate limiter an unreachable redis just means local
// fallbacks.
func connectRedis(cfg *config.Config, logger *slog.Logger) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		if cfg.SessionStore == "redis" {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Warn("redis unreachable, using local fallbacks", "error", err)
		return nil, nil
	}
	return client, nil
}
