// Package config はアプリケーション全体の設定を環境変数から読み込みます。
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"places_backend/internal/platform/db"
	"places_backend/internal/platform/externalapi/googlemaps"
	"places_backend/internal/platform/logger"
	"places_backend/internal/platform/redis"
	"places_backend/internal/platform/storage/minio"
)

// 画像ストアの種類
const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// Config はサーバーの設定です。
type Config struct {
	Log       logger.Config
	HTTP      HTTP              `envPrefix:"HTTP_"`
	CORS      CORS              `envPrefix:"CORS_"`
	DB        db.Config         `envPrefix:"DB_"`
	JWT       JWT               `envPrefix:"JWT_"`
	Redis     redis.Config      `envPrefix:"REDIS_"`
	Cache     Cache             `envPrefix:"CACHE_"`
	Geocoding googlemaps.Config `envPrefix:"GEOCODING_"`
	Storage   Storage           `envPrefix:"STORAGE_"`
	Minio     minio.Config      `envPrefix:"MINIO_"`
}

// HTTP はHTTPサーバーの設定です。
type HTTP struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	HealthTimeout   time.Duration `env:"HEALTH_TIMEOUT" envDefault:"2s"`
}

// Addr は http.Server に渡すリッスンアドレスです。
func (h HTTP) Addr() string { return ":" + h.Port }

// CORS はブラウザクライアント向けの許可オリジンです。
type CORS struct {
	AllowOrigins []string `env:"ALLOW_ORIGINS" envSeparator:"," envDefault:"*"`
}

// JWT はトークンの署名設定です。
type JWT struct {
	Secret     string        `env:"SECRET,required,notEmpty"`
	Expiration time.Duration `env:"EXPIRATION" envDefault:"1h"`
}

// Storage は画像ストアの選択です。Driverがlocalの場合はDirに保存し、URLPrefixで配信します。
type Storage struct {
	Driver    string `env:"DRIVER" envDefault:"local"`
	Dir       string `env:"DIR" envDefault:"uploads/images"`
	URLPrefix string `env:"URL_PREFIX" envDefault:"uploads/images"`
}

// Cache は場所の読み取りキャッシュの設定です。Redisが無効な場合は使われません。
type Cache struct {
	TTL time.Duration `env:"TTL" envDefault:"5m"`
}

// Load は環境変数から設定を読み込み、検証します。
func Load() (*Config, error) {
	return LoadWithOptions(env.Options{})
}

// LoadWithOptions は opts の環境（テストでは map）から設定を読み込みます。
func LoadWithOptions(opts env.Options) (*Config, error) {
	cfg := Config{}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageLocal, StorageMinio:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION must be positive, got %s", c.JWT.Expiration)
	}
	return nil
}
