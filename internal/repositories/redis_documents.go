package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// RedisDocuments is the redis-backed document store. The TTL mirrors the
// persistent cache horizon so dead entries disappear on their own instead of
// piling up; staleness is still decided by the envelope the cache stores.
type RedisDocuments struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDocumentsRepository(client *redis.Client, ttl time.Duration) *RedisDocuments {
	return &RedisDocuments{client: client, ttl: ttl}
}

func (repo *RedisDocuments) Save(ctx context.Context, id string, payload []byte) error {
	return repo.client.Set(ctx, repo.key(id), payload, repo.ttl).Err()
}

func (repo *RedisDocuments) Load(ctx context.Context, id string) ([]byte, error) {
	payload, err := repo.client.Get(ctx, repo.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return payload, nil
}

func (repo *RedisDocuments) key(id string) string {
	return "job_search_cache:" + id
}
