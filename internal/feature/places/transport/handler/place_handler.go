// Package handler はplacesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"places_backend/internal/api"
	"places_backend/internal/feature/places/domain/entity"
	"places_backend/internal/feature/places/transport/http/dto"
	"places_backend/internal/feature/places/usecase"
	jwtmw "places_backend/internal/platform/jwt"
	"places_backend/internal/shared/upload"
)

// PlaceUsecase は場所操作のユースケースを定義します。
type PlaceUsecase interface {
	GetPlace(ctx context.Context, id string) (*entity.Place, error)
	ListPlacesByUser(ctx context.Context, userID string) ([]entity.Place, error)
	CreatePlace(ctx context.Context, in usecase.CreatePlaceInput) (*entity.Place, error)
	UpdatePlace(ctx context.Context, placeID, requesterID, title, description string) (*entity.Place, error)
	DeletePlace(ctx context.Context, placeID, requesterID string) error
}

// PlaceHandler は場所関連のHTTPリクエストを処理します。
type PlaceHandler struct {
	places PlaceUsecase
	images upload.Store
}

// NewPlaceHandler はPlaceHandlerの新しいインスタンスを生成します。
func NewPlaceHandler(places PlaceUsecase, images upload.Store) *PlaceHandler {
	return &PlaceHandler{places: places, images: images}
}

// GetPlace は GET /api/places/:pid を処理します。
func (h *PlaceHandler) GetPlace(c *gin.Context) {
	p, err := h.places.GetPlace(c.Request.Context(), c.Param("pid"))
	if err != nil {
		writeError(c, err, "something went wrong, could not find a place")
		return
	}
	c.JSON(http.StatusOK, dto.PlaceEnvelope{Place: dto.FromEntity(p)})
}

// ListPlacesByUser は GET /api/places/user/:uid を処理します。
func (h *PlaceHandler) ListPlacesByUser(c *gin.Context) {
	places, err := h.places.ListPlacesByUser(c.Request.Context(), c.Param("uid"))
	if err != nil {
		writeError(c, err, "fetching places failed, please try again later")
		return
	}
	out := make([]dto.PlaceRes, 0, len(places))
	for i := range places {
		out = append(out, dto.FromEntity(&places[i]))
	}
	c.JSON(http.StatusOK, dto.PlacesEnvelope{Places: out})
}

// CreatePlace は POST /api/places を処理します。
// 作成者はリクエストボディではなく認証済みユーザーです。
// 画像保存後にユースケースが失敗した場合、画像は削除されます。
func (h *PlaceHandler) CreatePlace(c *gin.Context) {
	userID, ok := requester(c)
	if !ok {
		return
	}

	var req dto.CreatePlaceReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("create place validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "invalid inputs passed, please check your data"})
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		slog.Warn("create place without image", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "an image is required"})
		return
	}

	ctx := c.Request.Context()
	imageRef, err := upload.Image(ctx, h.images, fh)
	if err != nil {
		writeUploadError(c, err)
		return
	}

	p, err := h.places.CreatePlace(ctx, usecase.CreatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Image:       imageRef,
		CreatorID:   userID,
	})
	if err != nil {
		upload.Discard(ctx, h.images, imageRef)
		writeError(c, err, "creating place failed, please try again")
		return
	}
	c.JSON(http.StatusCreated, dto.PlaceEnvelope{Place: dto.FromEntity(p)})
}

// UpdatePlace は PATCH /api/places/:pid を処理します。
func (h *PlaceHandler) UpdatePlace(c *gin.Context) {
	userID, ok := requester(c)
	if !ok {
		return
	}

	var req dto.UpdatePlaceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update place validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "invalid inputs passed, please check your data"})
		return
	}

	p, err := h.places.UpdatePlace(c.Request.Context(), c.Param("pid"), userID, req.Title, req.Description)
	if err != nil {
		writeError(c, err, "something went wrong, could not update place")
		return
	}
	c.JSON(http.StatusOK, dto.PlaceEnvelope{Place: dto.FromEntity(p)})
}

// DeletePlace は DELETE /api/places/:pid を処理します。
func (h *PlaceHandler) DeletePlace(c *gin.Context) {
	userID, ok := requester(c)
	if !ok {
		return
	}

	if err := h.places.DeletePlace(c.Request.Context(), c.Param("pid"), userID); err != nil {
		writeError(c, err, "something went wrong, could not delete place")
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Deleted place."})
}

// requester はAuthRequiredが設定したユーザーIDを取り出します。
func requester(c *gin.Context) (string, bool) {
	id, ok := jwtmw.UserIDFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusForbidden, api.ErrorResponse{Error: "authentication failed"})
	}
	return id, ok
}

// writeError はユースケースのエラーをステータスコードに変換します。
// 永続化エラーの詳細はログのみに出力し、fallbackを返します。
func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "invalid inputs passed, please check your data"})
	case errors.Is(err, usecase.ErrGeocoding):
		slog.Warn("geocoding failed", "error", err)
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "could not find location for the specified address"})
	case errors.Is(err, usecase.ErrPlaceNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "could not find place for the provided id"})
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "could not find user for the provided id"})
	case errors.Is(err, usecase.ErrNoPlacesForUser):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "could not find places for the provided user id"})
	case errors.Is(err, usecase.ErrForbidden):
		slog.Warn("place modification forbidden", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "you are not allowed to modify this place"})
	default:
		slog.Error("place operation failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
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
