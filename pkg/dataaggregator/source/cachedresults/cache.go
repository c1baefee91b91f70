package cachedresults

import (
	"context"
	"encoding/json"
	"reflect"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/opsconsole/pkg/ctdf"
	"github.com/travigo/opsconsole/pkg/dataaggregator/query"
)

type dataSource interface {
	GetName() string
	Supports() []reflect.Type
	Lookup(context.Context, any) (interface{}, error)
}

// Source caches trip details and position pages of the wrapped source in redis
type Source struct {
	Inner dataSource
	Cache *cache.Cache[string]
}

func NewSource(inner dataSource, client *redis.Client, expiration time.Duration) *Source {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	return &Source{
		Inner: inner,
		Cache: cache.New[string](redisStore),
	}
}

func (s *Source) GetName() string {
	return "Cached " + s.Inner.GetName()
}

func (s *Source) Supports() []reflect.Type {
	return s.Inner.Supports()
}

func (s *Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q := q.(type) {
	case query.TripDetail:
		return lookupCached[ctdf.TripDetail](ctx, s, q.CacheKey(), q)
	case query.VehiclePositions:
		return lookupCached[ctdf.PositionPage](ctx, s, q.CacheKey(), q)
	}

	return s.Inner.Lookup(ctx, q)
}

func lookupCached[T any](ctx context.Context, s *Source, key string, q any) (interface{}, error) {
	cachedValue, err := s.Cache.Get(ctx, key)
	if err == nil && cachedValue != "" {
		var value *T
		if err := json.Unmarshal([]byte(cachedValue), &value); err == nil && value != nil {
			return value, nil
		}
	}

	result, err := s.Inner.Lookup(ctx, q)
	if err != nil {
		return result, err
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return result, nil
	}

	if err := s.Cache.Set(ctx, key, string(encoded)); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to cache lookup result")
	}

	return result, nil
}
