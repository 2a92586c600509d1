package dto

import "places_backend/internal/feature/places/domain/entity"

type LocationRes struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type PlaceRes struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Address     string      `json:"address"`
	Location    LocationRes `json:"location"`
	Image       string      `json:"image"`
	Creator     string      `json:"creator"`
}

// PlaceEnvelope wraps a single place as {"place": ...}.
type PlaceEnvelope struct {
	Place PlaceRes `json:"place"`
}

// PlacesEnvelope wraps a list as {"places": [...]}.
type PlacesEnvelope struct {
	Places []PlaceRes `json:"places"`
}

// FromEntity converts a domain place to its wire form.
func FromEntity(p *entity.Place) PlaceRes {
	return PlaceRes{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Address:     p.Address,
		Location:    LocationRes{Lat: p.Location.Lat, Lng: p.Location.Lng},
		Image:       p.Image,
		Creator:     p.CreatorID,
	}
}
