package jwtmw

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUserID is the gin context key holding the authenticated user id.
const ContextUserID = "userID"

// Verifier validates a raw bearer token.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
// 失敗理由はクライアントに返さず、常に同じ403レスポンスを返します。
func AuthRequired(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// プリフライトは認証情報を持たない
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			reject(c, "missing or malformed authorization header", nil)
			return
		}

		claims, err := v.Verify(token)
		if err != nil {
			reject(c, "token verification failed", err)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// UserIDFrom returns the user id stored by AuthRequired.
func UserIDFrom(c *gin.Context) (string, bool) {
	id := c.GetString(ContextUserID)
	return id, id != ""
}

// bearerToken extracts the token from "<scheme> <token>".
func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func reject(c *gin.Context, reason string, err error) {
	slog.Debug("authentication rejected", "reason", reason, "error", err, "remote_addr", c.ClientIP())
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "authentication failed"})
}
