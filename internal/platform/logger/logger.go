// Package logger はアプリケーション全体で使うslogロガーを構築します。
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Config はロガー設定です。
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// New はcfgに従ってwへ出力するロガーを返します。
func New(cfg Config, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(cfg.Format) {
	case "", "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
}

// Setup はロガーを構築してslogのデフォルトに設定します。
func Setup(cfg Config, w io.Writer) error {
	l, err := New(cfg, w)
	if err != nil {
		return err
	}
	slog.SetDefault(l)
	return nil
}
