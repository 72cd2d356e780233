// Package cache wraps the Redis client used by the redis progress backend.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vytor/tradeskill/internal/logger"
)

// DefaultNamespace prefixes every key this service writes.
const DefaultNamespace = "tradeskill"

type Cache struct {
	Client    *redis.Client
	namespace string
}

// ParseURL validates a Redis connection URL.
func ParseURL(url string) (*redis.Options, error) {
	if url == "" {
		return nil, fmt.Errorf("redis URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return opts, nil
}

// New connects to Redis and pings it once.
func New(ctx context.Context, url string) (*Cache, error) {
	log := logger.FromContext(ctx).WithPrefix("cache")

	opts, err := ParseURL(url)
	if err != nil {
		return nil, err
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	log.Info("connected to redis at %s (db %d)", opts.Addr, opts.DB)

	return &Cache{Client: client, namespace: DefaultNamespace}, nil
}

// Namespace returns the prefix applied to every key.
func (c *Cache) Namespace() string {
	return c.namespace
}

// Key joins parts under namespace, separated by colons.
func Key(namespace string, parts ...string) string {
	return namespace + ":" + strings.Join(parts, ":")
}

func (c *Cache) Close() error {
	return c.Client.Close()
}
