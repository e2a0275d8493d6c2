package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/pinbox-kr/pinbox-backend/config"
	"github.com/pinbox-kr/pinbox-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// BlacklistToken adds a token to the blacklist
func BlacklistToken(ctx context.Context, token string, expiry time.Duration) error {
	key := fmt.Sprintf("blacklist:%s", token)
	if err := client.Set(ctx, key, "revoked", expiry).Err(); err != nil {
		logger.Error("Failed to blacklist token", err, nil)
		return err
	}
	return nil
}

// IsTokenBlacklisted checks if a token is in the blacklist
func IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	key := fmt.Sprintf("blacklist:%s", token)
	val, err := client.Get(ctx, key).Result()

	if err == redis.Nil {
		// Key does not exist - token is not blacklisted
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check token blacklist", err, nil)
		return false, err
	}

	return val == "revoked", nil
}

// Option catalog cache. The pricing engine itself never reads this; the
// catalog service populates and invalidates it around engine calls.

func catalogKey(productID uint) string {
	return fmt.Sprintf("catalog:product:%d", productID)
}

// GetCatalog returns the cached catalog JSON for a product, or "" on miss.
func GetCatalog(ctx context.Context, productID uint) (string, error) {
	val, err := client.Get(ctx, catalogKey(productID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// SetCatalog caches the catalog JSON for a product
func SetCatalog(ctx context.Context, productID uint, payload string, ttl time.Duration) error {
	return client.Set(ctx, catalogKey(productID), payload, ttl).Err()
}

// InvalidateCatalog drops the cached catalog after an admin edit
func InvalidateCatalog(ctx context.Context, productID uint) error {
	return client.Del(ctx, catalogKey(productID)).Err()
}
