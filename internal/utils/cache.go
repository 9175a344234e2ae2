package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// CacheGeneration returns the counter stored at key, 0 when unset
func CacheGeneration(ctx context.Context, rdb *redis.Client, key string) (int64, error) {
	gen, err := rdb.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil // Nothing written yet
	}
	return gen, err
}

// BumpGeneration increments the counter at key, orphaning entries cached under the old value
func BumpGeneration(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Incr(ctx, key).Err()
}

const revokedPrefix = "session:revoked:"

// RevokeSession deny-lists a session id until it would have expired anyway
func RevokeSession(ctx context.Context, rdb *redis.Client, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // Already expired
	}
	return rdb.Set(ctx, revokedPrefix+sessionID, 1, ttl).Err()
}

// IsSessionRevoked reports whether the session id was deny-listed
func IsSessionRevoked(ctx context.Context, rdb *redis.Client, sessionID string) (bool, error) {
	n, err := rdb.Exists(ctx, revokedPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
