package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketshoes/cart-service-go/internal/config"
	"github.com/rocketshoes/cart-service-go/internal/db"
	"github.com/rocketshoes/cart-service-go/internal/logger"
	"github.com/rocketshoes/cart-service-go/internal/stock"
)

func main() {
	config.LoadEnvFile()
	cfg := config.LoadStock()

	log := logger.New(logger.Options{
		Service: "stock-service",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	if cfg.DatabaseDSN == "" {
		log.Error("STOCK_DB_DSN not set")
		os.Exit(1)
	}

	if err := db.RunMigrations(cfg.DatabaseDSN, log); err != nil {
		log.Error("run migrations", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Error("open db", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := stock.NewPostgresRepository(pool)
	handler := stock.NewHandler(repo)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      stock.NewRouter(handler),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("stock-service listening", "port", cfg.Port)
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
