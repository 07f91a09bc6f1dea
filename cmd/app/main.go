package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telegram_initdata/internal/config"
	"telegram_initdata/internal/db"
	httpServer "telegram_initdata/internal/http"
	"telegram_initdata/internal/http/handlers"
	"telegram_initdata/internal/http/middleware"
	"telegram_initdata/internal/logger"
	"telegram_initdata/internal/repository"
	"telegram_initdata/internal/service"
	"telegram_initdata/internal/ws"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", "error", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	auth := service.NewAuthenticator(cfg)
	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	hub := ws.NewHub(auth)
	deps := httpServer.Deps{
		Config:  cfg,
		Version: version,
		Auth:    auth,
		Tokens:  tokens,
		Hub:     hub,
		Checks:  map[string]handlers.Pinger{},
	}

	var store service.UserStore
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("connect database", "error", err)
		}
		defer pool.Close()

		users := repository.NewUserRepository(pool)
		store, deps.Users = users, users
		deps.Checks["database"] = pool
	} else {
		logger.Warn("DATABASE_URL not set, users are not persisted")
	}
	deps.Login = service.NewLoginService(auth, store, tokens)

	if cfg.RedisAddr != "" {
		rdb, err := middleware.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			// rate limiting degrades to per-process counters
			logger.Warn("redis unavailable, using in-memory rate limiter", "error", err)
		} else {
			defer rdb.Close()
			deps.Redis = rdb
			deps.Checks["redis"] = handlers.PingFunc(func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			})
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           httpServer.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server started", "port", cfg.AppPort, "scheme", auth.Scheme(), "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		hub.Close()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
	logger.Info("server exited")
}
