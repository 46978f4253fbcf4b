package main // Entry point of the ShareIt gateway tier

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/iliyamo/shareit/internal/config"
	"github.com/iliyamo/shareit/internal/gateway"
	"github.com/iliyamo/shareit/internal/logger"
	"github.com/iliyamo/shareit/internal/middleware"
	"github.com/iliyamo/shareit/internal/router"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadGateway()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	gw, err := gateway.New(gateway.Config{
		ServerURL:   cfg.ServerURL,
		Timeout:     cfg.ServerTimeout,
		TokenSecret: cfg.ServiceTokenSecret,
		TokenTTL:    cfg.ServiceTokenTTL,
	}, zl)
	if err != nil {
		zl.Fatal("gateway", zap.Error(err))
	}

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil {
		zl.Warn("redis unavailable; rate limiting and caching disabled", zap.String("addr", cfg.Redis.Addr))
	} else {
		defer func() { _ = rdb.Close() }()
	}

	gw.UseSearchCache(
		middleware.NewRedisCache(cfg.Cache, rdb, zl),
		middleware.NewCacheEvictor(cfg.Cache, rdb, zl),
	)

	e := router.New(zl)
	router.RegisterGateway(e, gw, middleware.NewTokenBucket(cfg.RateLimit, rdb, zl))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.Port
		zl.Info("gateway listening", zap.String("addr", addr), zap.String("server", cfg.ServerURL))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("gateway failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
}
