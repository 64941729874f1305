package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dipsport/infras/otel"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	clearBatchSize        = 100
	Nil                   = redis.Nil
)

// RedisCache stores JSON encoded values. Get reports a wrapped Nil when the key is absent.
type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) error
	Get(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, pattern string) error
	// Increment bumps a counter that expires windowSeconds after its first hit.
	Increment(ctx context.Context, key string, windowSeconds int) (int64, error)
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{
		client: client,
		otel:   ot,
	}
}

func (c *redisCache) Save(ctx context.Context, key string, value any, duration int) (err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	payload, err := encode(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to encode cache value")

		return err
	}

	if err = c.client.Set(ctx, key, payload, time.Duration(duration)*time.Second).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set cache value")

		return fmt.Errorf("set %s: %w", key, err)
	}

	return nil
}

func (c *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".Get")
	defer scope.End()
	defer func() {
		if err != nil && !errors.Is(err, redis.Nil) {
			scope.TraceIfError(err)
		}
	}()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}

	if target, ok := value.(*string); ok {
		*target = string(raw)

		return nil
	}

	if err = json.Unmarshal(raw, value); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to decode cache value")

		return fmt.Errorf("decode %s: %w", key, err)
	}

	return nil
}

func (c *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	if err = c.client.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete cache value")

		return fmt.Errorf("del %s: %w", key, err)
	}

	return nil
}

// Clear unlinks every key matching pattern in batches.
func (c *redisCache) Clear(ctx context.Context, pattern string) (err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".Clear")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, pattern)

	iter := c.client.Scan(ctx, 0, pattern, clearBatchSize).Iterator()
	batch := make([]string, 0, clearBatchSize)
	removed := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}

		if err := c.client.Unlink(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("unlink %s: %w", pattern, err)
		}

		removed += len(batch)
		batch = batch[:0]

		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())

		if len(batch) == clearBatchSize {
			if err = flush(); err != nil {
				return err
			}
		}
	}

	if err = iter.Err(); err != nil {
		return fmt.Errorf("scan %s: %w", pattern, err)
	}

	if err = flush(); err != nil {
		return err
	}

	log.Debug().Str("pattern", pattern).Int("removed", removed).Msg("cache cleared")

	return nil
}

func (c *redisCache) Increment(ctx context.Context, key string, windowSeconds int) (count int64, err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".Increment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	var incr *redis.IntCmd

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, time.Duration(windowSeconds)*time.Second)

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", key, err)
	}

	return incr.Val(), nil
}

func encode(value any) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		payload, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode cache value: %w", err)
		}

		return payload, nil
	}
}
