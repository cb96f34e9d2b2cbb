package cachedresults

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	gocachestore "github.com/eko/gocache/store/go_cache/v4"
	redisstore "github.com/eko/gocache/store/redis/v4"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type Cache struct {
	Cache *cache.Cache[string]
}

// Setup stores in redis when a client is given so results survive restarts, otherwise in memory
func (c *Cache) Setup(client *redis.Client, expiration time.Duration) {
	var cacheStore store.StoreInterface

	if client != nil {
		cacheStore = redisstore.NewRedis(client, store.WithExpiration(expiration))
	} else {
		cacheStore = gocachestore.NewGoCache(gocache.New(expiration, 2*expiration), store.WithExpiration(expiration))
	}

	c.Cache = cache.New[string](cacheStore)
}

func (c *Cache) Get(ctx context.Context, key string, value any) bool {
	if c == nil || c.Cache == nil {
		return false
	}

	cachedValue, err := c.Cache.Get(ctx, key)
	if err != nil || cachedValue == "" {
		return false
	}

	if err := json.Unmarshal([]byte(cachedValue), value); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Ignoring unreadable cache entry")
		return false
	}

	return true
}

func (c *Cache) Set(ctx context.Context, key string, value any) error {
	if c == nil || c.Cache == nil {
		return nil
	}

	cacheValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.Cache.Set(ctx, key, string(cacheValue))
}
