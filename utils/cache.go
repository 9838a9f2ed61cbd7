// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"quickmechanic/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client (vehicle lookups, staged bookings).
	CacheClient *redis.Client
	// BookingCacheClient holds live booking sessions.
	BookingCacheClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// InitRedis initializes every Redis client used by the service.
func InitRedis() {
	GetCacheClient()
	GetBookingCacheClient()
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "Cache")
	}
	return CacheClient
}

// GetBookingCacheClient returns the Redis client for booking sessions.
func GetBookingCacheClient() *redis.Client {
	if BookingCacheClient == nil {
		BookingCacheClient = newRedisClient(config.AppConfig.RedisBookingDB, "Booking")
	}
	return BookingCacheClient
}

// RedisClients lists the initialized clients for health monitoring.
func RedisClients() []*redis.Client {
	var clients []*redis.Client
	for _, c := range []*redis.Client{CacheClient, BookingCacheClient} {
		if c != nil {
			clients = append(clients, c)
		}
	}
	return clients
}
