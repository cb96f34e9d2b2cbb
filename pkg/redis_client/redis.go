package redis_client

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/smartroute/smartroute/pkg/config"
)

var Client *redis.Client

// Connect leaves Client nil when no address is configured, callers then keep their caches in memory
func Connect(ctx context.Context, redisConfig config.RedisConfig) error {
	if redisConfig.Address == "" {
		log.Info().Msg("Skipping Redis setup")
		return nil
	}

	options := &redis.Options{
		Addr: redisConfig.Address,
		DB:   redisConfig.Database,
	}
	if redisConfig.Password != "" {
		options.Password = redisConfig.Password
	}

	client := redis.NewClient(options)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return err
	}

	Client = client

	log.Info().Str("address", redisConfig.Address).Int("database", redisConfig.Database).Msg("Redis client setup")

	return nil
}
