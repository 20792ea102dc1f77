package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

// InitRedis creates the shared client and checks that the server answers.
func InitRedis(ctx context.Context, redisAddress, redisUsername, redisPassword string) error {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})

	if err := Rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping %s: %w", redisAddress, err)
	}
	log.Info().Str("address", redisAddress).Msg("connected to redis")
	return nil
}
