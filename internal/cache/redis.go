package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions tunes the shared Redis backend. Zero values fall back to
// DefaultRedisOptions.
type RedisOptions struct {
	// Namespace is prepended to every key so several galleries can share a database
	Namespace    string
	PoolSize     int
	DialTimeout  time.Duration
	OpTimeout    time.Duration
	ScanPageSize int64
}

func DefaultRedisOptions(namespace string) RedisOptions {
	return RedisOptions{
		Namespace:    namespace,
		PoolSize:     10,
		DialTimeout:  5 * time.Second,
		OpTimeout:    3 * time.Second,
		ScanPageSize: 200,
	}
}

// RedisCache implements CacheBackend on a Redis database shared between
// gallery instances
type RedisCache struct {
	client *redis.Client
	opts   RedisOptions
}

// NewRedisCache connects to redisURL (redis://[:password@]host:port/db) and
// namespaces every key under namespace
func NewRedisCache(redisURL string, namespace string) (*RedisCache, error) {
	return NewRedisCacheWithOptions(redisURL, DefaultRedisOptions(namespace))
}

func NewRedisCacheWithOptions(redisURL string, o RedisOptions) (*RedisCache, error) {
	def := DefaultRedisOptions(o.Namespace)
	if o.PoolSize <= 0 {
		o.PoolSize = def.PoolSize
	}
	if o.DialTimeout <= 0 {
		o.DialTimeout = def.DialTimeout
	}
	if o.OpTimeout <= 0 {
		o.OpTimeout = def.OpTimeout
	}
	if o.ScanPageSize <= 0 {
		o.ScanPageSize = def.ScanPageSize
	}

	ropts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	ropts.PoolSize = o.PoolSize
	ropts.MinIdleConns = o.PoolSize / 5
	ropts.DialTimeout = o.DialTimeout
	ropts.ReadTimeout = o.OpTimeout
	ropts.WriteTimeout = o.OpTimeout

	client := redis.NewClient(ropts)
	ctx, cancel := context.WithTimeout(context.Background(), o.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return &RedisCache{client: client, opts: o}, nil
}

func (r *RedisCache) nsKey(k string) string {
	return r.opts.Namespace + k
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, r.nsKey(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.nsKey(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	return r.client.Unlink(ctx, r.nsKey(key)).Err()
}

// DeletePrefix walks the namespaced keyspace with SCAN and unlinks matches
// one page at a time, so large owners never block the server.
func (r *RedisCache) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	pattern := r.nsKey(escapeGlob(prefix)) + "*"
	var cursor uint64
	removed := 0
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, r.opts.ScanPageSize).Result()
		if err != nil {
			return removed, fmt.Errorf("redis scan %s: %w", prefix, err)
		}
		if len(keys) > 0 {
			n, err := r.client.Unlink(ctx, keys...).Result()
			if err != nil {
				return removed, fmt.Errorf("redis unlink %s: %w", prefix, err)
			}
			removed += int(n)
		}
		if next == 0 {
			return removed, nil
		}
		cursor = next
	}
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

// escapeGlob quotes the characters SCAN MATCH treats as patterns
func escapeGlob(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[', ']', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
