package routecheck

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Claimer grants a key to the first caller within ttl.
type Claimer interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

type redisClaimer struct {
	client *redis.Client
}

func (c redisClaimer) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, key, 1, ttl).Result()
}

func (c redisClaimer) Release(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

type memoryClaimer struct {
	cache *cache.Cache
}

func (c memoryClaimer) Claim(_ context.Context, key string, ttl time.Duration) (bool, error) {
	return c.cache.Add(key, struct{}{}, ttl) == nil, nil
}

func (c memoryClaimer) Release(_ context.Context, key string) error {
	c.cache.Delete(key)
	return nil
}

// NewClaimer uses redis when a client is configured so that claims are shared
// between instances, and an in-process cache otherwise.
func NewClaimer(rdb *redis.Client, window time.Duration) Claimer {
	if rdb != nil {
		return redisClaimer{client: rdb}
	}
	return memoryClaimer{cache: cache.New(window, 2*window)}
}
