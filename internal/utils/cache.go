package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"       // Integer to string conversion
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache keys for the read-heavy public endpoints. Mutating handlers and the
// settlement engine invalidate these.
const (
	RankingCacheKey  = "ranking:users"
	RaceListCacheKey = "races:all"
)

// RaceCacheKey returns the cache key for a single race.
func RaceCacheKey(raceID uint) string {
	return "race:" + strconv.Itoa(int(raceID))
}

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(val), dest)
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

// DeleteCache deletes keys from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, keys ...string) error {
	return rdb.Del(ctx, keys...).Err()
}
