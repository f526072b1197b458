package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mfgerp/backend/internal/domain/report"
	"github.com/redis/go-redis/v9"
)

// DefaultSnapshotKeyPrefix namespaces balance sheet snapshots in Redis
const DefaultSnapshotKeyPrefix = "report:balance_sheet:"

// RedisSnapshotCache implements report.SnapshotCache using Redis so that
// several instances share the same cached snapshots
type RedisSnapshotCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisSnapshotCache connects to Redis and verifies the connection
func NewRedisSnapshotCache(cfg RedisConfig) (*RedisSnapshotCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSnapshotCache{
		client:    client,
		keyPrefix: DefaultSnapshotKeyPrefix,
	}, nil
}

// NewRedisSnapshotCacheWithClient creates a cache with an existing Redis client
func NewRedisSnapshotCacheWithClient(client *redis.Client, keyPrefix string) *RedisSnapshotCache {
	if keyPrefix == "" {
		keyPrefix = DefaultSnapshotKeyPrefix
	}
	return &RedisSnapshotCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the cached snapshot for the tenant, or nil when absent
func (c *RedisSnapshotCache) Get(ctx context.Context, tenantID uuid.UUID) (*report.BalanceSheetSnapshot, error) {
	data, err := c.client.Get(ctx, c.key(tenantID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read balance sheet snapshot: %w", err)
	}
	return decodeSnapshot(data)
}

// Set stores the snapshot for the tenant with the given TTL
func (c *RedisSnapshotCache) Set(ctx context.Context, tenantID uuid.UUID, snapshot *report.BalanceSheetSnapshot, ttl time.Duration) error {
	data, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key(tenantID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write balance sheet snapshot: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot for the tenant
func (c *RedisSnapshotCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(tenantID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate balance sheet snapshot: %w", err)
	}
	return nil
}

// Ping checks that Redis is reachable
func (c *RedisSnapshotCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisSnapshotCache) Close() error {
	return c.client.Close()
}

func (c *RedisSnapshotCache) key(tenantID uuid.UUID) string {
	return c.keyPrefix + tenantID.String()
}

func encodeSnapshot(snapshot *report.BalanceSheetSnapshot) ([]byte, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode balance sheet snapshot: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) (*report.BalanceSheetSnapshot, error) {
	var snapshot report.BalanceSheetSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode balance sheet snapshot: %w", err)
	}
	return &snapshot, nil
}

// Ensure RedisSnapshotCache implements SnapshotCache
var _ report.SnapshotCache = (*RedisSnapshotCache)(nil)
