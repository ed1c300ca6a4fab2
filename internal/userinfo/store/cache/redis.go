package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/idclaims/internal/userinfo/domain"
	"github.com/aussiebroadwan/idclaims/internal/userinfo/store"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how stale a cached profile can get if an invalidation
// is lost.
const DefaultTTL = 5 * time.Minute

const keyPrefix = "userinfo:profile:"

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr     string        // host:port
	Password string        // optional
	DB       int           // database number
	TTL      time.Duration // entry lifetime, DefaultTTL when zero
}

// Redis is a store.ProfileCache backed by Redis. Entries are JSON encoded
// profiles keyed by subject.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
}

var _ store.ProfileCache = (*Redis)(nil)

// NewRedis dials Redis and checks the connection.
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: redis connection failed: %w", err)
	}
	return NewRedisWithClient(client, cfg.TTL), nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client redis.UniversalClient, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl}
}

// Get returns the cached profile or store.ErrNotFound on a miss.
func (c *Redis) Get(ctx context.Context, sub string) (domain.Profile, error) {
	raw, err := c.client.Get(ctx, keyPrefix+sub).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Profile{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("cache: get %s: %w", sub, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var p domain.Profile
	if err := dec.Decode(&p); err != nil {
		return domain.Profile{}, fmt.Errorf("cache: decode %s: %w", sub, err)
	}
	return p, nil
}

// Set stores p for the configured TTL.
func (c *Redis) Set(ctx context.Context, p domain.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", p.Subject, err)
	}
	return c.client.Set(ctx, keyPrefix+p.Subject, raw, c.ttl).Err()
}

// Invalidate drops the entry for sub. Missing entries are not an error.
func (c *Redis) Invalidate(ctx context.Context, sub string) error {
	return c.client.Del(ctx, keyPrefix+sub).Err()
}

// Ping checks Redis is reachable.
func (c *Redis) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (c *Redis) Close() error {
	return c.client.Close()
}
