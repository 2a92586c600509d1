package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	redisv9 "github.com/redis/go-redis/v9"

	"places_backend/internal/app/config"
	"places_backend/internal/app/di"
	"places_backend/internal/app/router"
	infradb "places_backend/internal/platform/db"
	"places_backend/internal/platform/logger"
	infraredis "places_backend/internal/platform/redis"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Setup(cfg.Log, os.Stdout); err != nil {
		return err
	}

	// db
	db, err := infradb.OpenDB(cfg.DB)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Error("failed to close database", "error", err)
			}
		}
	}()

	// Redis（任意）
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	if cfg.Geocoding.APIKey == "" {
		slog.Warn("GEOCODING_API_KEY is not set. Creating places will fail.")
	}

	images, staticDir, err := di.NewImageStore(ctx, cfg)
	if err != nil {
		return err
	}

	// Handler
	authH := di.NewAuthHandler(cfg, db, images)
	placeH := di.NewPlaceHandler(cfg, db, rdb, images)
	healthH := di.NewHealthHandler(cfg, db, rdb)

	// ルータ生成
	r := router.NewRouter(authH, placeH, healthH, di.NewVerifier(cfg), router.Options{
		AllowOrigins: cfg.CORS.AllowOrigins,
		StaticDir:    staticDir,
		StaticPrefix: cfg.Storage.URLPrefix,
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
