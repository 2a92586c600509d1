package googlemaps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"places_backend/internal/feature/places/domain/entity"
	"places_backend/internal/feature/places/usecase"
	"places_backend/internal/platform/externalapi/googlemaps/dto"
	"places_backend/internal/shared/ratelimiter"
)

// ErrZeroResults is returned when the address does not resolve to any location.
var ErrZeroResults = errors.New("googlemaps: zero results")

// Geocoder はGoogle Geocoding APIで住所を座標に変換するGeocoder実装です。
type Geocoder struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
}

// GeocoderがGeocoderインターフェースを実装していることをコンパイル時に検証します。
var _ usecase.Geocoder = (*Geocoder)(nil)

// NewGeocoder は指定された設定とHTTPクライアントでGeocoderを生成します。limiterはnilでも構いません。
func NewGeocoder(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *Geocoder {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Geocoder{cfg: cfg, client: client, limiter: limiter}
}

// Geocode は住所の最初の候補の座標を返します。
func (g *Geocoder) Geocode(ctx context.Context, address string) (entity.Location, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return entity.Location{}, err
		}
	}

	q := url.Values{}
	q.Set("address", address)
	q.Set("key", g.cfg.APIKey)
	u := fmt.Sprintf("%s/json?%s", g.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.Location{}, err
	}

	res, err := g.client.Do(req)
	if err != nil {
		return entity.Location{}, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return entity.Location{}, fmt.Errorf("googlemaps http %d", res.StatusCode)
	}

	var body dto.GeocodeResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return entity.Location{}, fmt.Errorf("googlemaps: decode response: %w", err)
	}

	switch body.Status {
	case "OK":
	case "ZERO_RESULTS":
		return entity.Location{}, ErrZeroResults
	default:
		return entity.Location{}, fmt.Errorf("googlemaps: %s %s", body.Status, body.ErrorMessage)
	}
	if len(body.Results) == 0 {
		return entity.Location{}, ErrZeroResults
	}

	loc := body.Results[0].Geometry.Location
	return entity.Location{Lat: loc.Lat, Lng: loc.Lng}, nil
}
