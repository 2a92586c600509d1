package main

import (
	"log/slog"
	"os"

	infradb "places_backend/internal/platform/db"
	"places_backend/internal/platform/logger"
)

// migrate はスキーマを作成・更新して終了するワンショットジョブです。
// サーバー起動時に DB_RUN_MIGRATIONS=true とする代わりに、デプロイ前に実行します。
func main() {
	_ = logger.Setup(logger.Config{Level: "info", Format: "json"}, os.Stdout)

	cfg, err := infradb.LoadConfigFromEnv()
	if err != nil {
		slog.Error("failed to load database config", "error", err)
		os.Exit(1)
	}

	db, err := infradb.OpenDB(cfg)
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}

	if err := infradb.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrate ok")
}
