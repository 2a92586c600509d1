// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check is a named dependency probe, e.g. the database or Redis ping.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthHandler serves /healthz.
type HealthHandler struct {
	checks  []Check
	timeout time.Duration
}

// NewHealthHandler returns a handler that runs every check on GET.
func NewHealthHandler(timeout time.Duration, checks ...Check) *HealthHandler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthHandler{checks: checks, timeout: timeout}
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// 依存先のいずれかが応答しない場合は503を返します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
		return
	case http.MethodHead:
		c.Status(h.status(c.Request.Context(), nil))
		return
	}

	deps := make(map[string]string, len(h.checks))
	code := h.status(c.Request.Context(), deps)
	body := gin.H{"status": "ok"}
	if code != http.StatusOK {
		body["status"] = "unavailable"
	}
	if len(deps) > 0 {
		body["checks"] = deps
	}
	c.JSON(code, body)
}

// status runs the checks and records each result into deps when it is non-nil.
func (h *HealthHandler) status(ctx context.Context, deps map[string]string) int {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	code := http.StatusOK
	for _, chk := range h.checks {
		result := "ok"
		if err := chk.Ping(ctx); err != nil {
			slog.Warn("health check failed", "check", chk.Name, "error", err)
			result = "unavailable"
			code = http.StatusServiceUnavailable
		}
		if deps != nil {
			deps[chk.Name] = result
		}
	}
	return code
}
