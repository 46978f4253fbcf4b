package main // Entry point of the ShareIt server tier

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
	"github.com/iliyamo/shareit/internal/database"
	"github.com/iliyamo/shareit/internal/handler"
	"github.com/iliyamo/shareit/internal/logger"
	"github.com/iliyamo/shareit/internal/queue"
	"github.com/iliyamo/shareit/internal/repository"
	"github.com/iliyamo/shareit/internal/repository/memstore"
	"github.com/iliyamo/shareit/internal/router"
	"github.com/iliyamo/shareit/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("open store", zap.Error(err))
	}
	defer closeStore()

	var events service.EventPublisher
	if cfg.EventsEnabled {
		events = queue.NewPublisher(cfg.AMQPURL, zl)
	}
	if cfg.EventsConsumerEnabled {
		go func() {
			if err := queue.StartBookingConsumer(ctx, cfg.AMQPURL, cfg.EventsLogPath, zl); err != nil && !errors.Is(err, context.Canceled) {
				zl.Error("booking consumer stopped", zap.Error(err))
			}
		}()
	}

	e := router.New(zl)
	router.RegisterServer(e, router.ServerHandlers{
		Users:    handler.NewUserHandler(service.NewUserService(store, zl)),
		Items:    handler.NewItemHandler(service.NewItemService(store, zl)),
		Bookings: handler.NewBookingHandler(service.NewBookingService(store, events, zl)),
		Requests: handler.NewRequestHandler(service.NewRequestService(store, zl)),
	}, cfg.ServiceTokenSecret, zl)

	go func() {
		addr := ":" + cfg.Port
		zl.Info("server listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("store", cfg.StoreDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
}

// openStore returns the configured repository.Store and a close func.
func openStore(ctx context.Context, cfg config.Server, zl *zap.Logger) (repository.Store, func(), error) {
	if cfg.StoreDriver == "memory" {
		zl.Warn("using in-memory store; data is lost on restart")
		return memstore.New(), func() {}, nil
	}
	db, err := database.Open(ctx, cfg.DSN())
	if err != nil {
		return nil, nil, err
	}
	if cfg.DBMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
	}
	return repository.NewSQLStore(db), func() { _ = db.Close() }, nil
}
