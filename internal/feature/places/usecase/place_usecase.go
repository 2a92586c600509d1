package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"places_backend/internal/feature/places/domain/entity"
)

// CreatePlaceInput は場所作成の入力です。CreatorIDは認証済みユーザーのIDです。
type CreatePlaceInput struct {
	Title       string
	Description string
	Address     string
	Image       string
	CreatorID   string
}

// placeUsecase は場所とユーザー所有集合の整合性を保つユースケースです。
type placeUsecase struct {
	places   PlaceRepository
	owners   OwnerRepository
	txm      TxManager
	geocoder Geocoder
	images   ImageRemover
	cache    PlaceCache
}

// NewPlaceUsecase はplaceUsecaseの新しいインスタンスを生成します。
// cacheがnilの場合、無効化は行いません。
func NewPlaceUsecase(places PlaceRepository, owners OwnerRepository, txm TxManager, geocoder Geocoder, images ImageRemover, cache PlaceCache) *placeUsecase {
	if cache == nil {
		cache = noopCache{}
	}
	return &placeUsecase{
		places:   places,
		owners:   owners,
		txm:      txm,
		geocoder: geocoder,
		images:   images,
		cache:    cache,
	}
}

type noopCache struct{}

func (noopCache) Invalidate(context.Context, string, string) {}

// GetPlace はIDで場所を取得します。
func (u *placeUsecase) GetPlace(ctx context.Context, id string) (*entity.Place, error) {
	p, err := u.places.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, ErrPlaceNotFound)
	}
	return p, nil
}

// ListPlacesByUser はユーザーが作成した場所を返します。
// ユーザーが存在しない場合はErrUserNotFound、場所がない場合はErrNoPlacesForUserを返します。
func (u *placeUsecase) ListPlacesByUser(ctx context.Context, userID string) ([]entity.Place, error) {
	if _, err := u.owners.FindByID(ctx, userID); err != nil {
		return nil, storeError(err, ErrUserNotFound)
	}
	places, err := u.places.FindByCreator(ctx, userID)
	if err != nil {
		return nil, persistence(err)
	}
	if len(places) == 0 {
		return nil, ErrNoPlacesForUser
	}
	return places, nil
}

// CreatePlace は場所を作成し、作成者の所有集合に同じトランザクションで追加します。
// ジオコーディングと作成者の確認はトランザクション開始前に行います。
func (u *placeUsecase) CreatePlace(ctx context.Context, in CreatePlaceInput) (*entity.Place, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Address) == "" || in.CreatorID == "" {
		return nil, ErrInvalidInput
	}

	loc, err := u.geocoder.Geocode(ctx, in.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeocoding, err)
	}

	place := &entity.Place{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Address:     in.Address,
		Location:    loc,
		Image:       in.Image,
		CreatorID:   in.CreatorID,
	}

	if _, err := u.owners.FindByID(ctx, in.CreatorID); err != nil {
		return nil, storeError(err, ErrUserNotFound)
	}

	tx, err := u.txm.Begin(ctx)
	if err != nil {
		return nil, persistence(err)
	}
	defer rollback(tx)

	if err := tx.Places().Create(ctx, place); err != nil {
		return nil, persistence(err)
	}
	owner, err := tx.Owners().FindByID(ctx, in.CreatorID)
	if err != nil {
		return nil, persistence(err)
	}
	owner.AddPlace(place.ID)
	if err := tx.Owners().Save(ctx, owner); err != nil {
		return nil, persistence(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, persistence(err)
	}

	// コミット済みなので、リクエストが切断されても後処理は続ける
	u.cache.Invalidate(context.WithoutCancel(ctx), place.ID, place.CreatorID)
	slog.Info("place created", "place_id", place.ID, "user_id", place.CreatorID)
	return place, nil
}

// UpdatePlace は作成者のみがタイトルと説明を更新できます。ユーザーの所有集合には触れません。
func (u *placeUsecase) UpdatePlace(ctx context.Context, placeID, requesterID, title, description string) (*entity.Place, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrInvalidInput
	}

	place, err := u.places.FindByID(ctx, placeID)
	if err != nil {
		return nil, storeError(err, ErrPlaceNotFound)
	}
	if !place.IsCreatedBy(requesterID) {
		return nil, ErrForbidden
	}

	place.Title = title
	place.Description = description
	if err := u.places.Save(ctx, place); err != nil {
		return nil, storeError(err, ErrPlaceNotFound)
	}

	u.cache.Invalidate(context.WithoutCancel(ctx), place.ID, place.CreatorID)
	return place, nil
}

// DeletePlace は場所を削除し、作成者の所有集合から同じトランザクションで取り除きます。
// 画像の削除はコミット後にベストエフォートで行い、失敗してもエラーを返しません。
func (u *placeUsecase) DeletePlace(ctx context.Context, placeID, requesterID string) error {
	place, err := u.places.FindByID(ctx, placeID)
	if err != nil {
		return storeError(err, ErrPlaceNotFound)
	}
	if !place.IsCreatedBy(requesterID) {
		return ErrForbidden
	}
	imageRef := place.Image

	tx, err := u.txm.Begin(ctx)
	if err != nil {
		return persistence(err)
	}
	defer rollback(tx)

	if err := tx.Places().Delete(ctx, place.ID); err != nil {
		return storeError(err, ErrPlaceNotFound)
	}
	owner, err := tx.Owners().FindByID(ctx, place.CreatorID)
	if err != nil {
		return persistence(err)
	}
	owner.RemovePlace(place.ID)
	if err := tx.Owners().Save(ctx, owner); err != nil {
		return persistence(err)
	}
	if err := tx.Commit(); err != nil {
		return persistence(err)
	}

	// コミット済みなので、リクエストが切断されても後処理は続ける
	cleanupCtx := context.WithoutCancel(ctx)
	if imageRef != "" && u.images != nil {
		if err := u.images.Remove(cleanupCtx, imageRef); err != nil {
			slog.Warn("failed to remove place image", "place_id", place.ID, "image", imageRef, "error", err)
		}
	}
	u.cache.Invalidate(cleanupCtx, place.ID, place.CreatorID)
	slog.Info("place deleted", "place_id", place.ID, "user_id", place.CreatorID)
	return nil
}

// rollback はCommitされていないトランザクションを取り消します。
func rollback(tx Tx) {
	if err := tx.Rollback(); err != nil {
		slog.Error("transaction rollback failed", "error", err)
	}
}

// storeError はnotFoundをそのまま返し、それ以外をErrPersistenceで包みます。
func storeError(err, notFound error) error {
	if errors.Is(err, notFound) {
		return notFound
	}
	return persistence(err)
}

func persistence(err error) error {
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}
