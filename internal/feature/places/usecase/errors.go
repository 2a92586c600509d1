// Package usecase implements the business logic for the places feature.
package usecase

import "errors"

var (
	// ErrPlaceNotFound is returned when no place has the requested id.
	ErrPlaceNotFound = errors.New("place not found")

	// ErrUserNotFound is returned when the creator or the queried user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrNoPlacesForUser is returned when an existing user owns no places.
	ErrNoPlacesForUser = errors.New("no places for user")

	// ErrGeocoding wraps any failure to resolve an address to coordinates.
	ErrGeocoding = errors.New("could not find location for the specified address")

	// ErrForbidden is returned when the requester is not the creator of the place.
	ErrForbidden = errors.New("not allowed to modify this place")

	// ErrPersistence wraps store and transaction failures.
	ErrPersistence = errors.New("persistence failure")

	// ErrInvalidInput is returned when required fields are missing.
	ErrInvalidInput = errors.New("invalid input")
)
