package scoreboardcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL applies when no TTL is configured.
const DefaultTTL = 6 * time.Hour

// Cache stores computed scoreboard JSON keyed by game and input hash.
type Cache interface {
	// Get returns the scoreboard computed from the given input hash.
	Get(ctx context.Context, gameID sharedtypes.GameID, hash string) ([]byte, bool, error)
	// Latest returns the most recently stored scoreboard of a game.
	Latest(ctx context.Context, gameID sharedtypes.GameID) (hash string, body []byte, ok bool, err error)
	// Set stores a scoreboard and marks it as the game's latest.
	Set(ctx context.Context, gameID sharedtypes.GameID, hash string, body []byte) error
}

func boardKey(gameID sharedtypes.GameID, hash string) string {
	return fmt.Sprintf("scoreboard:%s:%s", gameID, hash)
}

func latestKey(gameID sharedtypes.GameID) string {
	return fmt.Sprintf("scoreboard:%s:latest", gameID)
}

// RedisCache is the go-redis backed Cache.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Cache = (*RedisCache)(nil)

// NewRedisCache creates a cache on client.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// Get returns the scoreboard computed from the given input hash.
func (c *RedisCache) Get(ctx context.Context, gameID sharedtypes.GameID, hash string) ([]byte, bool, error) {
	body, err := c.client.Get(ctx, boardKey(gameID, hash)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read scoreboard cache: %w", err)
	}
	return body, true, nil
}

// Latest returns the most recently stored scoreboard of a game.
func (c *RedisCache) Latest(ctx context.Context, gameID sharedtypes.GameID) (string, []byte, bool, error) {
	hash, err := c.client.Get(ctx, latestKey(gameID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil, false, nil
	}
	if err != nil {
		return "", nil, false, fmt.Errorf("failed to read latest scoreboard hash: %w", err)
	}
	body, ok, err := c.Get(ctx, gameID, hash)
	return hash, body, ok, err
}

// Set stores a scoreboard and marks it as the game's latest.
func (c *RedisCache) Set(ctx context.Context, gameID sharedtypes.GameID, hash string, body []byte) error {
	pipe := c.client.Pipeline()
	pipe.Set(ctx, boardKey(gameID, hash), body, c.ttl)
	pipe.Set(ctx, latestKey(gameID), hash, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write scoreboard cache: %w", err)
	}
	return nil
}

// NoOpCache is used when Redis is not configured. Nothing is ever cached.
type NoOpCache struct{}

var _ Cache = NoOpCache{}

func (NoOpCache) Get(context.Context, sharedtypes.GameID, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NoOpCache) Latest(context.Context, sharedtypes.GameID) (string, []byte, bool, error) {
	return "", nil, false, nil
}

func (NoOpCache) Set(context.Context, sharedtypes.GameID, string, []byte) error { return nil }
