// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"places_backend/internal/api"
	"places_backend/internal/feature/auth/domain/entity"
	"places_backend/internal/feature/auth/transport/http/dto"
	"places_backend/internal/feature/auth/usecase"
	"places_backend/internal/shared/upload"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Signup は新規ユーザーを登録し、認証情報を返します。
	Signup(ctx context.Context, in usecase.SignupInput) (*usecase.AuthResult, error)
	// Login はユーザーを認証し、成功時にJWTトークンを含む認証情報を返します。
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	// ListUsers は登録済みユーザーの一覧を返します。
	ListUsers(ctx context.Context) ([]entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth   AuthUsecase
	images upload.Store
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseと画像ストアを注入します。
func NewAuthHandler(auth AuthUsecase, images upload.Store) *AuthHandler {
	return &AuthHandler{auth: auth, images: images}
}

// Signup はユーザー登録APIエンドポイントを処理します。
// - リクエスト（JSONまたはmultipart）をSignupReqにバインド
// - バリデーションエラー時は422を返却
// - メール重複時は422を返却（ユーザー列挙を防ぐため詳細は返さない）
// - 成功時はトークン付きで201を返却
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "invalid inputs passed, please check your data"})
		return
	}

	ctx := c.Request.Context()

	// プロフィール画像は任意
	var imageRef string
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		if fh, err := c.FormFile("image"); err == nil {
			imageRef, err = upload.Image(ctx, h.images, fh)
			if err != nil {
				writeUploadError(c, err)
				return
			}
		} else if !errors.Is(err, http.ErrMissingFile) {
			slog.Warn("signup image read failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "invalid image upload"})
			return
		}
	}

	res, err := h.auth.Signup(ctx, usecase.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Image:    imageRef,
	})
	if err != nil {
		upload.Discard(ctx, h.images, imageRef)
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyExists), errors.Is(err, usecase.ErrInvalidInput):
			// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
			slog.Warn("signup rejected", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "signup failed"})
		default:
			slog.Error("signup failed", "error", err, "email", req.Email)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "signing up failed, please try again later"})
		}
		return
	}

	slog.Info("user signup successful", "user_id", res.UserID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.AuthRes{UserID: res.UserID, Email: res.Email, Token: res.Token})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - バリデーションエラー時は422を返却
// - 認証失敗時は401を返却
// - 認証成功時はJWTトークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "invalid inputs passed, please check your data"})
		return
	}
	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
		return
	}
	slog.Info("user login successful", "user_id", res.UserID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthRes{UserID: res.UserID, Email: res.Email, Token: res.Token})
}

// ListUsers はユーザー一覧を返します。パスワードハッシュは含めません。
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.auth.ListUsers(c.Request.Context())
	if err != nil {
		slog.Error("list users failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "fetching users failed, please try again later"})
		return
	}
	out := make([]dto.UserItem, 0, len(users))
	for _, u := range users {
		out = append(out, dto.UserItem{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			Image:      u.Image,
			PlaceCount: len(u.PlaceIDs),
		})
	}
	c.JSON(http.StatusOK, dto.UsersRes{Users: out})
}

func writeUploadError(c *gin.Context, err error) {
	if upload.IsInvalid(err) {
		slog.Warn("image rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "invalid image upload"})
		return
	}
	slog.Error("image upload failed", "error", err)
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "storing the image failed, please try again later"})
}
