package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"payrouter/internal/config"
	"payrouter/internal/domain"
	"payrouter/internal/handler"
	"payrouter/internal/idempotency"
	"payrouter/internal/registry"
	"payrouter/internal/routing"
	"payrouter/internal/service"
	"payrouter/internal/storage"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelInfo)

	settings := config.Load()

	reg, err := registry.New(settings.CatalogPath)
	if err != nil {
		slog.Error("failed to load provider catalog", "path", settings.CatalogPath, "err", err)
		os.Exit(1)
	}
	slog.Info("provider catalog loaded", "path", settings.CatalogPath, "providers", reg.Len())

	var recorder domain.DecisionRecorder
	if settings.RedisAddr != "" {
		redisRecorder, err := storage.NewRedisRecorder(settings.RedisAddr)
		if err != nil {
			slog.Error("redis failed", "addr", settings.RedisAddr, "err", err)
			os.Exit(1)
		}
		defer redisRecorder.Close()
		recorder = redisRecorder
	} else {
		slog.Info("REDIS_ADDR not set, recording decisions in memory")
		recorder = storage.NewMemoryRecorder()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reg.StartAutoRefresh(ctx, settings.CatalogRefreshInterval)

	router := service.NewRouter(reg, routing.NewEngine(), idempotency.NewStore(), recorder)

	app := fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
	})
	handler.NewRouteHandler(router, reg).Register(app)

	go func() {
		if err := app.Listen(":" + settings.ServerPort); err != nil {
			slog.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()
	slog.Info("server started", "port", settings.ServerPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	cancel()
	if err := app.Shutdown(); err != nil {
		slog.Error("shutdown failed", "err", err)
	}
}
