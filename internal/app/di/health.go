package di

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"places_backend/internal/app/config"
	platformhandler "places_backend/internal/platform/http/handler"
)

// NewHealthHandler probes the database and, when configured, Redis.
func NewHealthHandler(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *platformhandler.HealthHandler {
	checks := []platformhandler.Check{{
		Name: "database",
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}}
	if rdb != nil {
		checks = append(checks, platformhandler.Check{
			Name: "redis",
			Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}
	return platformhandler.NewHealthHandler(cfg.HTTP.HealthTimeout, checks...)
}
