// Package entity defines the domain entities for the auth feature.
package entity

import (
	"slices"
	"time"
)

// User represents a registered user in the system.
// It carries authentication credentials and the set of places the user created.
type User struct {
	// ID is the opaque identifier (UUID string) of the user.
	ID string `gorm:"primaryKey;size:36"`

	// Name is the display name shown next to the user's places.
	Name string `gorm:"size:255;not null"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// Image is the stored reference of the profile image (may be empty).
	Image string `gorm:"size:512"`

	// PlaceIDs is the owned set: ids of every place this user created.
	// It is kept in step with places.creator_id by the places feature.
	PlaceIDs []string `gorm:"serializer:json;type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPlace reports whether placeID is in the user's owned set.
func (u *User) HasPlace(placeID string) bool {
	return slices.Contains(u.PlaceIDs, placeID)
}

// AddPlace appends placeID to the owned set. Adding an id twice is a no-op.
func (u *User) AddPlace(placeID string) {
	if u.HasPlace(placeID) {
		return
	}
	u.PlaceIDs = append(u.PlaceIDs, placeID)
}

// RemovePlace removes every occurrence of placeID from the owned set.
func (u *User) RemovePlace(placeID string) {
	u.PlaceIDs = slices.DeleteFunc(u.PlaceIDs, func(id string) bool { return id == placeID })
}
