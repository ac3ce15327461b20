package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/revoparts/pkg/config"
	"github.com/go-redis/redis/v8"
)

type RedisRepository struct {
	client *redis.Client
	config *config.RedisConfig
}

func NewRedisRepository(cfg *config.RedisConfig) *RedisRepository {
	return &RedisRepository{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
		config: cfg,
	}
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepository) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisRepository) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, expiration).Err()
}

func (r *RedisRepository) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}

// Role cache for the admin guard. Entries expire after a short TTL and
// are invalidated on promotion and account deletion, so a revoked admin
// is locked out within the TTL at worst.

const roleCacheTTL = 5 * time.Minute

type roleEntry struct {
	Role string `json:"role"`
}

func roleKey(email string) string {
	return fmt.Sprintf("role:%s", email)
}

func (r *RedisRepository) CacheRole(ctx context.Context, email, role string) error {
	return r.SetJSON(ctx, roleKey(email), &roleEntry{Role: role}, roleCacheTTL)
}

// GetRoleCache returns (role, true) on a hit. A miss or a redis error
// both read as a clean miss; the caller falls through to storage.
func (r *RedisRepository) GetRoleCache(ctx context.Context, email string) (string, bool) {
	var entry roleEntry
	if err := r.GetJSON(ctx, roleKey(email), &entry); err != nil {
		return "", false
	}
	return entry.Role, true
}

func (r *RedisRepository) InvalidateRole(ctx context.Context, email string) error {
	return r.Del(ctx, roleKey(email))
}
