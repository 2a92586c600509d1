// Package googlemaps provides a geocoder backed by the Google Geocoding API.
package googlemaps

import "time"

// DefaultBaseURL is the public Geocoding API endpoint without the output format suffix.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api/geocode"

// Config holds configuration for the Google Geocoding API client.
type Config struct {
	// APIKey is never hard-coded; it comes from GEOCODING_API_KEY.
	APIKey  string        `env:"API_KEY"`
	BaseURL string        `env:"BASE_URL" envDefault:"https://maps.googleapis.com/maps/api/geocode"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
	// RateLimit is the maximum number of requests per second (0 disables limiting).
	RateLimit int `env:"RATE_LIMIT" envDefault:"40"`
}
