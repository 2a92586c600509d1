package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"places_backend/internal/feature/places/domain/entity"
	"places_backend/internal/feature/places/usecase"
)

// placeGorm はルート接続にもトランザクションにも束縛できます。
type placeGorm struct {
	db *gorm.DB
}

var (
	_ usecase.PlaceRepository   = (*placeGorm)(nil)
	_ usecase.TxPlaceRepository = (*placeGorm)(nil)
)

func NewPlaceRepository(db *gorm.DB) *placeGorm {
	return &placeGorm{db: db}
}

func (r *placeGorm) FindByID(ctx context.Context, id string) (*entity.Place, error) {
	var m PlaceModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPlaceNotFound
		}
		return nil, err
	}
	p := m.ToEntity()
	return &p, nil
}

func (r *placeGorm) FindByCreator(ctx context.Context, userID string) ([]entity.Place, error) {
	var rows []PlaceModel
	if err := r.db.WithContext(ctx).
		Where("creator_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Place, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.ToEntity())
	}
	return out, nil
}

// Save はタイトルと説明だけを更新します。
func (r *placeGorm) Save(ctx context.Context, p *entity.Place) error {
	res := r.db.WithContext(ctx).
		Model(&PlaceModel{ID: p.ID}).
		Select("title", "description", "updated_at").
		Updates(PlaceModel{Title: p.Title, Description: p.Description})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrPlaceNotFound
	}
	return nil
}

func (r *placeGorm) Create(ctx context.Context, p *entity.Place) error {
	if p == nil {
		return errors.New("place is nil")
	}
	m := toModel(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	p.CreatedAt, p.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *placeGorm) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&PlaceModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrPlaceNotFound
	}
	return nil
}
