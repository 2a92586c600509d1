package usecase

import (
	"context"

	authentity "places_backend/internal/feature/auth/domain/entity"
	"places_backend/internal/feature/places/domain/entity"
)

// PlaceRepository は場所の読み取りとトランザクション外の更新を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PlaceRepository interface {
	// FindByID は場所を取得します。存在しない場合はErrPlaceNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Place, error)
	// FindByCreator は指定ユーザーが作成した場所をすべて返します。
	FindByCreator(ctx context.Context, userID string) ([]entity.Place, error)
	// Save はタイトルと説明を更新します。存在しない場合はErrPlaceNotFoundを返します。
	Save(ctx context.Context, p *entity.Place) error
}

// OwnerRepository は場所の作成者（ユーザー）と所有集合を扱います。
type OwnerRepository interface {
	// FindByID はユーザーを取得します。存在しない場合はErrUserNotFoundを返します。
	FindByID(ctx context.Context, id string) (*authentity.User, error)
	// Save は所有集合を含むユーザーを保存します。
	Save(ctx context.Context, u *authentity.User) error
}

// TxPlaceRepository はトランザクション内でのみ行う場所の書き込みです。
type TxPlaceRepository interface {
	Create(ctx context.Context, p *entity.Place) error
	// Delete は影響行数が0の場合ErrPlaceNotFoundを返します。
	Delete(ctx context.Context, id string) error
}

// Tx はトランザクションに束縛されたリポジトリを提供します。
// Commit後のRollbackは何もしません。
type Tx interface {
	Places() TxPlaceRepository
	Owners() OwnerRepository
	Commit() error
	Rollback() error
}

// TxManager はトランザクションを開始します。
type TxManager interface {
	Begin(ctx context.Context) (Tx, error)
}

// Geocoder は住所を座標に変換します。
type Geocoder interface {
	Geocode(ctx context.Context, address string) (entity.Location, error)
}

// ImageRemover はコミット後に不要になった画像を削除します。
type ImageRemover interface {
	Remove(ctx context.Context, ref string) error
}

// PlaceCache は読み取りキャッシュの無効化を行います。失敗は無視されます。
type PlaceCache interface {
	Invalidate(ctx context.Context, placeID, userID string)
}
