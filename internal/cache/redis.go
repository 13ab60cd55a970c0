package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes the Redis connection. Every accessor tolerates a nil
// client, so a failed Init degrades to uncached operation instead of
// taking the server down.
func Init() error {
	// K8s sets REDIS_SERVICE_HOST and REDIS_SERVICE_PORT for services
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis" // fallback to service name
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client, nil when caching is disabled.
func GetClient() *redis.Client {
	return client
}

// IsHealthy returns true if the Redis connection is working.
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}

func companyKey(email string) string {
	h := sha256.Sum256([]byte(email))
	return "company:email:" + hex.EncodeToString(h[:])[:32]
}

// GetCachedCompanyID returns the cached company for a staff email. The
// auth middleware hits this on every request; a miss falls through to the
// document store.
func GetCachedCompanyID(ctx context.Context, email string) (string, bool) {
	if client == nil {
		return "", false
	}
	companyID, err := client.Get(ctx, companyKey(email)).Result()
	if err != nil {
		return "", false
	}
	return companyID, true
}

// CacheCompanyID caches the email to company mapping for 15 minutes.
func CacheCompanyID(ctx context.Context, email, companyID string) {
	if client == nil {
		return
	}
	client.Set(ctx, companyKey(email), companyID, 15*time.Minute)
}

// InvalidateCompanyEmails drops cached mappings for a company's staff.
// Called when the staff email list changes.
func InvalidateCompanyEmails(ctx context.Context, emails []string) {
	keys := make([]string, 0, len(emails))
	for _, email := range emails {
		keys = append(keys, companyKey(email))
	}
	InvalidateKeys(ctx, keys...)
}

// Generic helpers for response caching on the heavier read endpoints.

func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}
