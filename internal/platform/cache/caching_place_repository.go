// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"places_backend/internal/feature/places/domain/entity"
	"places_backend/internal/feature/places/usecase"
)

// CachingPlaceRepository decorates a PlaceRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Transactional writes never go through it.
type CachingPlaceRepository struct {
	inner     usecase.PlaceRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var (
	_ usecase.PlaceRepository = (*CachingPlaceRepository)(nil)
	_ usecase.PlaceCache      = (*CachingPlaceRepository)(nil)
)

// NewCachingPlaceRepository decorates a PlaceRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "place".
func NewCachingPlaceRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PlaceRepository, namespace string) *CachingPlaceRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "place"
	}
	return &CachingPlaceRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// fillScript stores ARGV[2] under KEYS[1] only if the generation in KEYS[2] still equals ARGV[1],
// i.e. no Invalidate ran between the reader's lookup and its database read.
var fillScript = redis.NewScript(`
local g = redis.call('GET', KEYS[2]) or ''
if g == ARGV[1] then
  redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
  return 1
end
return 0
`)

// invalidateScript deletes each value key and bumps its generation. KEYS are (value, generation) pairs.
var invalidateScript = redis.NewScript(`
for i = 1, #KEYS, 2 do
  redis.call('DEL', KEYS[i])
  redis.call('INCR', KEYS[i + 1])
  redis.call('PEXPIRE', KEYS[i + 1], ARGV[1])
end
return #KEYS / 2
`)

// FindByID retrieves a place, checking cache first then falling back to the database.
func (c *CachingPlaceRepository) FindByID(ctx context.Context, id string) (*entity.Place, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	var cached entity.Place
	key := c.placeKey(id)
	hit, gen, fill := c.get(ctx, key, &cached)
	if hit {
		return &cached, nil
	}

	p, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fill {
		c.set(ctx, key, gen, p)
	}
	return p, nil
}

// FindByCreator retrieves the places of a user, checking cache first.
func (c *CachingPlaceRepository) FindByCreator(ctx context.Context, userID string) ([]entity.Place, error) {
	if c.rdb == nil {
		return c.inner.FindByCreator(ctx, userID)
	}

	var cached []entity.Place
	key := c.userKey(userID)
	hit, gen, fill := c.get(ctx, key, &cached)
	if hit {
		return cached, nil
	}

	out, err := c.inner.FindByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	if fill {
		c.set(ctx, key, gen, out)
	}
	return out, nil
}

// Save writes through to the underlying repository and drops the place entry.
func (c *CachingPlaceRepository) Save(ctx context.Context, p *entity.Place) error {
	if err := c.inner.Save(ctx, p); err != nil {
		return err
	}
	c.Invalidate(ctx, p.ID, "")
	return nil
}

// Invalidate drops the cached place and the cached place list of the user and bumps their
// generations, so a reader that loaded from the database before the write cannot refill them.
// Best effort: failures are ignored and empty ids are skipped.
func (c *CachingPlaceRepository) Invalidate(ctx context.Context, placeID, userID string) {
	if c.rdb == nil {
		return
	}
	var keys []string
	if placeID != "" {
		k := c.placeKey(placeID)
		keys = append(keys, k, c.genKey(k))
	}
	if userID != "" {
		k := c.userKey(userID)
		keys = append(keys, k, c.genKey(k))
	}
	if len(keys) == 0 {
		return
	}
	if err := invalidateScript.Run(ctx, c.rdb, keys, c.ttl.Milliseconds()).Err(); err != nil {
		slog.Warn("cache invalidation failed", "keys", keys, "error", err)
	}
}

// get fetches key and its generation in one round trip.
// hit reports a decodable value; fill reports whether the caller may repopulate key with gen.
// Corrupted entries are deleted.
func (c *CachingPlaceRepository) get(ctx context.Context, key string, dst any) (hit bool, gen string, fill bool) {
	vals, err := c.rdb.MGet(ctx, key, c.genKey(key)).Result()
	if err != nil || len(vals) != 2 {
		return false, "", false
	}
	if g, ok := vals[1].(string); ok {
		gen = g
	}
	raw, ok := vals[0].(string)
	if !ok || raw == "" {
		return false, gen, true
	}
	if err := json.Unmarshal([]byte(raw), dst); err == nil {
		return true, gen, false
	}
	// Delete corrupted cache entry
	_ = c.rdb.Del(ctx, key).Err()
	return false, gen, true
}

// set stores v under key if its generation is still gen (best effort).
func (c *CachingPlaceRepository) set(ctx context.Context, key, gen string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = fillScript.Run(ctx, c.rdb, []string{key, c.genKey(key)}, gen, string(b), c.ttl.Milliseconds()).Err()
}

func (c *CachingPlaceRepository) placeKey(id string) string {
	return c.namespace + ":" + safe(id)
}

func (c *CachingPlaceRepository) userKey(userID string) string {
	return c.namespace + ":user:" + safe(userID)
}

// genKey は値キーの世代カウンタのキーです。place:gen:<id> / place:gen:user:<uid>
func (c *CachingPlaceRepository) genKey(key string) string {
	return c.namespace + ":gen:" + strings.TrimPrefix(key, c.namespace+":")
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
