package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/rocketshoes/cart-service-go/internal/cart"
	"github.com/rocketshoes/cart-service-go/internal/catalog"
	"github.com/rocketshoes/cart-service-go/internal/config"
	httpapi "github.com/rocketshoes/cart-service-go/internal/http"
	"github.com/rocketshoes/cart-service-go/internal/logger"
	"github.com/rocketshoes/cart-service-go/internal/notify"
	"github.com/rocketshoes/cart-service-go/internal/store"
)

func main() {
	config.LoadEnvFile()
	cfg := config.LoadCart()

	log := logger.New(logger.Options{
		Service: "cart-service",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var snapshots store.Store
	switch cfg.SnapshotBackend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Error("connect redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		cancel()
		defer client.Close()
		snapshots = store.NewRedisStore(client, store.SnapshotKey)
	default:
		snapshots = store.NewFileStore(cfg.SnapshotDir, store.SnapshotKey)
	}

	catalogClient := catalog.NewClient(cfg.CatalogURL, &http.Client{Timeout: cfg.UpstreamTimeout})
	notifier := notify.NewLogNotifier(log)

	manager := cart.NewManager(ctx, catalogClient, snapshots, notifier, log)
	handler := httpapi.NewCartHandler(manager)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpapi.NewRouter(handler),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("cart-service listening", "port", cfg.Port, "snapshotBackend", cfg.SnapshotBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("graceful shutdown error", "error", err)
	}
}
