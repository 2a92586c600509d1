package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"places_backend/internal/app/config"
	placeadapters "places_backend/internal/feature/places/adapters"
	placehandler "places_backend/internal/feature/places/transport/handler"
	placeusecase "places_backend/internal/feature/places/usecase"
	"places_backend/internal/platform/cache"
	"places_backend/internal/platform/externalapi/googlemaps"
	infrahttp "places_backend/internal/platform/http"
	"places_backend/internal/shared/ratelimiter"
	"places_backend/internal/shared/upload"
)

// NewGeocoder creates a rate limited Google geocoder with its own HTTP client.
func NewGeocoder(cfg googlemaps.Config) *googlemaps.Geocoder {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(cfg.RateLimit, time.Second)
	return googlemaps.NewGeocoder(cfg, httpClient, limiter)
}

// NewPlaceHandler wires the places feature.
// Reads go through the Redis cache when rdb is non-nil; writes always hit the database directly.
func NewPlaceHandler(cfg *config.Config, db *gorm.DB, rdb *redis.Client, images upload.Store) *placehandler.PlaceHandler {
	placeRepo := placeadapters.NewPlaceRepository(db)
	cached := cache.NewCachingPlaceRepository(rdb, cfg.Cache.TTL, placeRepo, "place")

	uc := placeusecase.NewPlaceUsecase(
		cached,
		placeadapters.NewOwnerRepository(db),
		placeadapters.NewTxManager(db),
		NewGeocoder(cfg.Geocoding),
		images,
		cached,
	)
	return placehandler.NewPlaceHandler(uc, images)
}
