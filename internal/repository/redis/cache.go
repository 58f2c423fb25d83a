package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// scanBatch is how many keys one SCAN round asks for during invalidation.
const scanBatch = 200

// Cache holds JSON snapshots of catalog reads. Redis errors never fail a read;
// the loader is called instead.
type Cache struct {
	rdb    *redis.Client
	flight singleflight.Group
}

func New(client *redis.Client) *Cache {
	return &Cache{rdb: client}
}

// GetOrSetJSON returns the cached value under key or loads, stores and returns
// it. Concurrent misses on one key share one loader call; each caller still
// stops waiting when its own ctx is done.
func GetOrSetJSON[T any](
	ctx context.Context,
	c *Cache,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (T, error),
) (T, error) {
	if v, ok := lookup[T](ctx, c, key); ok {
		return v, nil
	}

	ch := c.flight.DoChan(key, func() (any, error) {
		// The shared load outlives any single caller's cancellation.
		lctx := context.WithoutCancel(ctx)
		if v, ok := lookup[T](lctx, c, key); ok {
			return v, nil
		}
		v, err := load(lctx)
		if err != nil {
			return nil, err
		}
		if b, err := json.Marshal(v); err == nil {
			_ = c.rdb.Set(lctx, key, b, ttl).Err()
		}
		return v, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		v, ok := res.Val.(T)
		if !ok {
			return zero, fmt.Errorf("redisrepo: cached %s has type %T", key, res.Val)
		}
		return v, nil
	}
}

// lookup reads and decodes key. A value that no longer decodes is dropped.
func lookup[T any](ctx context.Context, c *Cache, key string) (T, bool) {
	var out T

	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return out, false
	}
	if err := json.Unmarshal(b, &out); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return out, false
	}
	return out, true
}

// InvalidateVendor drops the vendor record, its services and its availability.
func (c *Cache) InvalidateVendor(ctx context.Context, vendorID int64) error {
	const op = "redisrepo.Cache.InvalidateVendor"

	if err := c.rdb.Unlink(ctx, KeyVendor(vendorID), KeyVendorServices(vendorID)).Err(); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}
	return c.InvalidateAvailability(ctx, vendorID)
}

// InvalidateAvailability drops every cached availability list of the vendor,
// whichever venue filter it was built for.
func (c *Cache) InvalidateAvailability(ctx context.Context, vendorID int64) error {
	const op = "redisrepo.Cache.InvalidateAvailability"

	var (
		cursor uint64
		errs   []error
	)
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, KeyAvailabilityPattern(vendorID), scanBatch).Result()
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}
		if len(keys) > 0 {
			errs = append(errs, c.rdb.Unlink(ctx, keys...).Err())
		}
		if next == 0 {
			break
		}
		cursor = next
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}
	return nil
}
