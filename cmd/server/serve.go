package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"expertqa/internal/config"
	"expertqa/internal/db"
	transport "expertqa/internal/http"
	"expertqa/internal/repo"
	"expertqa/internal/services"
	"expertqa/internal/session"
	"expertqa/internal/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	logger := a.logger

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName: "expertqa",
		Environment: cfg.Env,
		Exporter:    cfg.TraceExporter,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("tracing shutdown failed", "error", err)
		}
	}()

	if cfg.AutoMigrate {
		if err := a.migrate(ctx); err != nil {
			return err
		}
	}

	dbConn, err := db.Connect(ctx, cfg.DBURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer dbConn.Close()

	if cfg.AdminName != "" {
		if err := db.EnsureAdmin(ctx, dbConn.Pool, cfg.RequestTimeout, cfg.AdminName, cfg.AdminPassword, cfg.BcryptCost); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		logger.Info("admin account ensured", "name", cfg.AdminName)
	}

	sessions, closeSessions, err := newSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSessions()

	userRepo := repo.NewUserRepo(dbConn.Pool, cfg.RequestTimeout)
	questionRepo := repo.NewQuestionRepo(dbConn.Pool, cfg.RequestTimeout)

	router := transport.NewRouter(transport.Dependencies{
		Logger:          logger,
		Acquire:         dbConn.Acquirer(),
		Sessions:        sessions,
		Identity:        services.NewIdentityResolver(userRepo),
		AuthService:     services.NewAuthService(userRepo, services.NewBcryptHasher(cfg.BcryptCost), logger),
		QuestionService: services.NewQuestionService(questionRepo, userRepo, logger),
		UserService:     services.NewUserService(userRepo, logger),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.RequestTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout,
		IdleTimeout:       60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "env", cfg.Env, "session_store", cfg.SessionStore)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErrors:
		logger.Error("http server stopped unexpectedly", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	logger.Info("http server stopped")
	return nil
}

func newSessionStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	opts := session.CookieOptions{TTL: cfg.SessionTTL, Secure: cfg.CookieSecure}

	if cfg.SessionStore != config.SessionStoreRedis {
		return session.NewCookieStore(cfg.SessionSecret, opts), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	return session.NewRedisStore(client, opts), func() { _ = client.Close() }, nil
}
