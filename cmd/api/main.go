package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"blog-api/internal/config"
	"blog-api/internal/db"
	apihttp "blog-api/internal/http"
	"blog-api/internal/repository"
	"blog-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/thejerf/abtime"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var logger *zap.Logger
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	if cfg.AutoMigrate {
		if err := db.Migrate(ctx, cfg.DatabaseURL, logger); err != nil {
			logger.Fatal("db migrate", zap.Error(err))
		}
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()
	if err := db.Ping(ctx, pool); err != nil {
		logger.Warn("db ping failed", zap.Error(err))
	}

	userRepo := repository.NewPgUserRepository(pool)
	postRepo := repository.NewPgPostRepository(pool)

	limiter := service.NewMemorySignInLimiter(cfg.SignInWindow, cfg.SignInMaxAttempts)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory sign-in limiter", zap.Error(err))
		} else {
			limiter = service.NewRedisSignInLimiter(redisClient, cfg.SignInWindow, cfg.SignInMaxAttempts, logger)
		}
		cancel()
	}

	tokenSvc := service.NewTokenService([]byte(cfg.JWTSecret), cfg.SessionTTL, abtime.NewRealTime(), logger)
	cookie := apihttp.NewSessionCookie(cfg.IsProduction(), tokenSvc.TTL())

	userSvc := service.NewUserService(logger, userRepo, service.NewBcryptHasher(cfg.BcryptCost), limiter)
	postSvc := service.NewPostService(logger, postRepo)

	var metrics *apihttp.Metrics
	if cfg.MetricsEnabled {
		metrics = apihttp.NewMetrics()
	}

	router := apihttp.NewRouter(logger, apihttp.RouterConfig{
		CORSOrigins:    cfg.CORSOrigins,
		Metrics:        metrics,
		RequireSession: apihttp.SessionAuthMiddleware(logger, cookie, tokenSvc),
	},
		apihttp.NewAuthHandler(logger, userSvc, tokenSvc, cookie, metrics),
		apihttp.NewPostHandler(logger, postSvc),
		apihttp.NewHealthHandler(logger, pool),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.String("env", cfg.Environment))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		}
		logger.Info("server stopped")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}
}
