package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hotelbooking/infras/metrics"
	"hotelbooking/infras/otel"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	metricsCacheName      = "redis"
	clearBatchSize        = 100
	Nil                   = redis.Nil
)

type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Exists(ctx context.Context, key string) (exists bool, err error)
	Incr(ctx context.Context, key string, duration int) (count int64, ttl time.Duration, err error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, pattern string) error
}

type redisCache struct {
	client  *redis.Client
	otel    otel.Otel
	metrics metrics.Metrics
}

func NewRedisCache(client *redis.Client, ot otel.Otel, m metrics.Metrics) RedisCache {
	return &redisCache{
		client:  client,
		otel:    ot,
		metrics: m,
	}
}

// Clear removes every key matching pattern.
func (cache *redisCache) Clear(ctx context.Context, pattern string) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Clear")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, pattern)

	iter := cache.client.Scan(ctx, 0, pattern, clearBatchSize).Iterator()

	deleted := 0
	for iter.Next(ctx) {
		key := iter.Val()
		if err = cache.client.Del(ctx, key).Err(); err != nil {
			log.Error().Err(err).Str("key", key).Str("RedisCache", "Clear").Msg("failed to del cache")

			return fmt.Errorf("failed to delete cache value: %w", err)
		}

		deleted++
	}

	if err = iter.Err(); err != nil {
		log.Error().Err(err).Str("pattern", pattern).Str("RedisCache", "Clear").Msg("failed to scan cache")

		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	scope.SetAttribute("cache.deleted", deleted)
	cache.metrics.ObserveCache(metricsCacheName, metrics.CacheEventClear)

	return nil
}

func (cache *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	if err = cache.client.Del(ctx, key).Err(); err != nil {
		log.Error().Str("key", key).Err(err).Str("RedisCache", "Delete").Msg("failed to del cache")

		return fmt.Errorf("failed to delete cache value: %w", err)
	}

	cache.metrics.ObserveCache(metricsCacheName, metrics.CacheEventDel)

	return nil
}

func (cache *redisCache) Exists(ctx context.Context, key string) (exists bool, err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Exists")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	count, err := cache.client.Exists(ctx, key).Result()
	if err != nil {
		log.Error().Str("key", key).Err(err).Str("RedisCache", "Exists").Msg("failed to check cache")

		return false, fmt.Errorf("failed to check cache key: %w", err)
	}

	return count > 0, nil
}

// Get decodes the cached JSON into value. A miss is returned as an error wrapping Nil.
func (cache *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	cacheValue, err := cache.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, Nil) {
			cache.metrics.ObserveCache(metricsCacheName, metrics.CacheEventMiss)
		}

		return fmt.Errorf("failed to get cache value: %w", err)
	}

	cache.metrics.ObserveCache(metricsCacheName, metrics.CacheEventHit)

	if v, ok := value.(*string); ok {
		*v = cacheValue

		return nil
	}

	if err = json.Unmarshal([]byte(cacheValue), value); err != nil {
		log.Error().Err(err).Str("key", key).Str("RedisCache", "Get").Msg("failed to unmarshal cache")

		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}

// Save stores value as JSON for duration seconds. Strings are stored raw.
func (cache *redisCache) Save(ctx context.Context, key string, value any, duration int) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	var payload []byte
	switch v := value.(type) {
	case string:
		payload = []byte(v)
	default:
		payload, err = json.Marshal(v)
		if err != nil {
			log.Error().Err(err).Str("key", key).Str("RedisCache", "Save").Msg("failed to marshal cache")

			return fmt.Errorf("failed to marshal cache value: %w", err)
		}
	}

	err = cache.client.Set(ctx, key, payload, time.Second*time.Duration(duration)).Err()
	if err != nil {
		log.Error().Err(err).Str("key", key).Str("RedisCache", "Save").Msg("failed to set cache")

		return fmt.Errorf("failed to set cache value: %w", err)
	}

	cache.metrics.ObserveCache(metricsCacheName, metrics.CacheEventSet)
	log.Debug().Str("RedisCache", "Save").Str("key", key).Msg("success to set cache")

	return nil
}

// Incr bumps a counter that lives for duration seconds from its first hit and
// returns the new count along with the time left in the window.
func (cache *redisCache) Incr(ctx context.Context, key string, duration int) (count int64, ttl time.Duration, err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Incr")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	var (
		incr   *redis.IntCmd
		remain *redis.DurationCmd
	)

	_, err = cache.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		remain = pipe.TTL(ctx, key)

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Str("RedisCache", "Incr").Msg("failed to increment counter")

		return 0, 0, fmt.Errorf("failed to increment cache counter: %w", err)
	}

	count, ttl = incr.Val(), remain.Val()
	if ttl > 0 {
		return count, ttl, nil
	}

	ttl = time.Second * time.Duration(duration)
	if err = cache.client.Expire(ctx, key, ttl).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Str("RedisCache", "Incr").Msg("failed to set counter expiry")

		return 0, 0, fmt.Errorf("failed to expire cache counter: %w", err)
	}

	return count, ttl, nil
}
