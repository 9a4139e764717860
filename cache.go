package main

import (
	"log/slog"
	"os"
	"time"

	"nft-gallery/internal/cache"
)

const cacheKeyPrefix = "nftg:"

// Global cache instances
var (
	// Cache backend (memory or redis)
	cacheBackend cache.CacheBackend

	// Cache configuration
	cacheConfig cache.CacheConfig

	// Typed wrapper for fetched asset pages
	assetPageCache *cache.AssetPageCache

	// Cache backend type for health reporting
	cacheBackendType string // "redis" or "memory"
)

// InitCaches initializes all caches with Redis if REDIS_URL is set, otherwise memory
func InitCaches() error {
	cacheConfig = cache.DefaultCacheConfig()
	redisURL := os.Getenv("REDIS_URL")

	if redisURL != "" {
		slog.Info("initializing Redis cache")
		redisCache, err := cache.NewRedisCache(redisURL, cacheKeyPrefix)
		if err != nil {
			slog.Warn("Redis connection failed, using memory cache", "error", err)
			initMemoryCaches()
		} else {
			cacheBackend = redisCache
			cacheBackendType = "redis"
			slog.Info("Redis cache initialized")
		}
	} else {
		initMemoryCaches()
	}

	assetPageCache = cache.NewAssetPageCache(cacheBackend, cacheConfig)
	return nil
}

func initMemoryCaches() {
	cacheBackend = cache.NewMemoryCache(10000, time.Minute)
	cacheBackendType = "memory"
	slog.Info("using in-memory cache")
}

// CloseCaches releases the cache backend
func CloseCaches() {
	if cacheBackend == nil {
		return
	}
	if err := cacheBackend.Close(); err != nil {
		slog.Warn("failed to close cache backend", "error", err)
	}
}
