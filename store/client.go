package store

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ndesc/ndesc-api/config"
	"github.com/ndesc/ndesc-api/utils"
)

// NewClient opens the Redis connection backing the record tree. Connectivity
// is probed once at boot but an unreachable store is not fatal: every
// operation surfaces its own Unavailable error, so the service can start
// before the store does.
func NewClient(cfg config.AppConfig) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		utils.Warnf("record store not reachable at boot: %v", err)
	}
	return rdb
}
