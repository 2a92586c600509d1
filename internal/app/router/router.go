package router

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"places_backend/internal/api"
	authhandler "places_backend/internal/feature/auth/transport/handler"
	placehandler "places_backend/internal/feature/places/transport/handler"
	platformhandler "places_backend/internal/platform/http/handler"
	jwtmw "places_backend/internal/platform/jwt"
)

// Options はルーターの周辺設定です。
type Options struct {
	// AllowOrigins は許可するオリジン。"*" を含む場合は全て許可します。
	AllowOrigins []string
	// StaticDir が空でなければ StaticPrefix 配下で画像を配信します（localドライバー）。
	StaticDir    string
	StaticPrefix string
}

func NewRouter(authHandler *authhandler.AuthHandler, places *placehandler.PlaceHandler,
	health *platformhandler.HealthHandler, verifier jwtmw.Verifier, opts Options) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(corsConfig(opts.AllowOrigins)))

	// 導通確認用
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)

	if opts.StaticDir != "" {
		r.Static("/"+strings.Trim(opts.StaticPrefix, "/"), opts.StaticDir)
	}

	users := r.Group("/api/users")
	{
		users.GET("", authHandler.ListUsers)
		// 新規ユーザー登録
		users.POST("/signup", authHandler.Signup)
		// ログイン（JWT 発行）
		users.POST("/login", authHandler.Login)
	}

	// 参照は認証不要
	pub := r.Group("/api/places")
	{
		pub.GET("/:pid", places.GetPlace)
		pub.GET("/user/:uid", places.ListPlacesByUser)
	}

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → Authorization: Bearer <token> が必要になる
	auth := r.Group("/api/places")
	auth.Use(jwtmw.AuthRequired(verifier))
	{
		auth.POST("", places.CreatePlace)
		auth.PATCH("/:pid", places.UpdatePlace)
		auth.DELETE("/:pid", places.DeletePlace)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "could not find this route"})
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
