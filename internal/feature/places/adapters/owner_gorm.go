package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authentity "places_backend/internal/feature/auth/domain/entity"
	"places_backend/internal/feature/places/usecase"
)

// ownerGorm は users テーブルのうち、所有集合に関わる部分だけを扱います。
// forUpdate の場合、FindByID は行ロック（SELECT ... FOR UPDATE）を取り、
// 同じユーザーへの並行した所有集合の書き換えをコミットまで直列化します。
type ownerGorm struct {
	db        *gorm.DB
	forUpdate bool
}

var _ usecase.OwnerRepository = (*ownerGorm)(nil)

func NewOwnerRepository(db *gorm.DB) *ownerGorm {
	return &ownerGorm{db: db}
}

func (r *ownerGorm) FindByID(ctx context.Context, id string) (*authentity.User, error) {
	var u authentity.User
	q := r.db.WithContext(ctx)
	if r.forUpdate {
		q = q.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}
	if err := q.Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Save は所有集合を書き込みます。行がなければErrUserNotFoundを返し、挿入はしません。
func (r *ownerGorm) Save(ctx context.Context, u *authentity.User) error {
	if u == nil || u.ID == "" {
		return errors.New("user is nil or has no id")
	}
	res := r.db.WithContext(ctx).Model(u).Select("place_ids", "updated_at").Updates(u)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}
