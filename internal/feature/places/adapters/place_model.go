// Package adapters はplacesフィーチャーのGORMリポジトリとトランザクション実装を提供します。
package adapters

import (
	"time"

	"places_backend/internal/feature/places/domain/entity"
)

// PlaceModel は places テーブルの行です。
type PlaceModel struct {
	ID          string  `gorm:"primaryKey;size:36"`
	Title       string  `gorm:"size:255;not null"`
	Description string  `gorm:"type:text"`
	Address     string  `gorm:"size:512;not null"`
	Lat         float64 `gorm:"not null"`
	Lng         float64 `gorm:"not null"`
	Image       string  `gorm:"size:512"`
	CreatorID   string  `gorm:"size:36;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PlaceModel) TableName() string {
	return "places"
}

func toModel(p *entity.Place) PlaceModel {
	return PlaceModel{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Address:     p.Address,
		Lat:         p.Location.Lat,
		Lng:         p.Location.Lng,
		Image:       p.Image,
		CreatorID:   p.CreatorID,
	}
}

// ToEntity はモデルをドメインエンティティに変換します。
func (m PlaceModel) ToEntity() entity.Place {
	return entity.Place{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Address:     m.Address,
		Location:    entity.Location{Lat: m.Lat, Lng: m.Lng},
		Image:       m.Image,
		CreatorID:   m.CreatorID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
