package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/mark-assistant-go/internal/config"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// Service caches upstream provider responses. Conversation state never
// goes through here.
type Service interface {
	Get(ctx context.Context, kind, key string) (string, bool)
	Set(ctx context.Context, kind, key, value string) error
	Clear(ctx context.Context) error
}

// NewService creates a cache service for the configured backend
func NewService(cfg *config.Config, logger *logrus.Logger) (Service, error) {
	if !cfg.Cache.Enabled {
		return &noopCache{}, nil
	}

	switch cfg.Cache.Backend {
	case "redis":
		return newRedisCache(cfg, logger)
	case "memory":
		return newMemoryCache(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.Cache.Backend)
	}
}

func cacheKey(kind, key string) string {
	hash := sha256.Sum256([]byte(kind + ":" + key))
	return kind + ":" + hex.EncodeToString(hash[:])
}

type noopCache struct{}

func (noopCache) Get(ctx context.Context, kind, key string) (string, bool) { return "", false }
func (noopCache) Set(ctx context.Context, kind, key, value string) error   { return nil }
func (noopCache) Clear(ctx context.Context) error                          { return nil }

// memoryCache implements Service with an in-process cache
type memoryCache struct {
	cache   *cache.Cache
	logger  *logrus.Logger
	maxSize int
}

func newMemoryCache(cfg *config.Config, logger *logrus.Logger) *memoryCache {
	return &memoryCache{
		cache:   cache.New(cfg.Cache.TTL, cfg.Cache.TTL*2),
		logger:  logger,
		maxSize: cfg.Cache.MaxSize,
	}
}

func (c *memoryCache) Get(ctx context.Context, kind, key string) (string, bool) {
	if val, found := c.cache.Get(cacheKey(kind, key)); found {
		c.logger.WithFields(logrus.Fields{"kind": kind, "key": key}).Debug("Cache hit")
		return val.(string), true
	}
	return "", false
}

func (c *memoryCache) Set(ctx context.Context, kind, key, value string) error {
	if c.cache.ItemCount() >= c.maxSize {
		c.logger.Warn("Cache size limit reached, clearing expired entries")
		c.cache.DeleteExpired()
	}
	c.cache.SetDefault(cacheKey(kind, key), value)
	return nil
}

func (c *memoryCache) Clear(ctx context.Context) error {
	c.cache.Flush()
	return nil
}

// redisCache implements Service backed by Redis
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func newRedisCache(cfg *config.Config, logger *logrus.Logger) (*redisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &redisCache{
		client: client,
		ttl:    cfg.Cache.TTL,
		logger: logger,
	}, nil
}

func (c *redisCache) Get(ctx context.Context, kind, key string) (string, bool) {
	val, err := c.client.Get(ctx, cacheKey(kind, key)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		c.logger.WithError(err).Warn("Redis get failed")
		return "", false
	}
	return val, true
}

func (c *redisCache) Set(ctx context.Context, kind, key, value string) error {
	return c.client.Set(ctx, cacheKey(kind, key), value, c.ttl).Err()
}

func (c *redisCache) Clear(ctx context.Context) error {
	return c.client.FlushDB(ctx).Err()
}
