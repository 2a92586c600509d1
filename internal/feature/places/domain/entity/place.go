// Package entity defines the domain entities for the places feature.
package entity

import "time"

// Location is a geographic coordinate pair resolved from an address.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is a geotagged record created by a user.
type Place struct {
	ID          string
	Title       string
	Description string
	Address     string
	Location    Location
	// Image is the stored reference of the place image.
	Image string
	// CreatorID is the id of the user whose owned set contains this place.
	CreatorID string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCreatedBy reports whether userID created the place.
func (p *Place) IsCreatedBy(userID string) bool {
	return userID != "" && p.CreatorID == userID
}
