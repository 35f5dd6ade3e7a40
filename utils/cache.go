package utils

import (
	"context"
	"log"
	"time"

	"cleanhaven/config"

	"github.com/go-redis/redis/v8"
)

var (
	// DraftCacheClient backs the booking draft store.
	DraftCacheClient *redis.Client
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
	// PricingCacheClient caches the active pricing configuration.
	PricingCacheClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (DB %d): %v", db, err)
	}
	return client
}

// InitRedis initializes every Redis client the service uses.
func InitRedis() {
	DraftCacheClient = newRedisClient(config.AppConfig.RedisDraftDB)
	AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB)
	PricingCacheClient = newRedisClient(config.AppConfig.RedisPricingDB)
}

// GetDraftCacheClient returns the client backing the draft store.
func GetDraftCacheClient() *redis.Client {
	if DraftCacheClient == nil {
		DraftCacheClient = newRedisClient(config.AppConfig.RedisDraftDB)
	}
	return DraftCacheClient
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB)
	}
	return AuthCacheClient
}

// GetPricingCacheClient returns the Redis client for pricing config caching.
func GetPricingCacheClient() *redis.Client {
	if PricingCacheClient == nil {
		PricingCacheClient = newRedisClient(config.AppConfig.RedisPricingDB)
	}
	return PricingCacheClient
}
