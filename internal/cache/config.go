package cache

import "time"

// CacheConfig holds cache TTL configuration
type CacheConfig struct {
	AssetPageTTL     time.Duration
	AssetPageFailTTL time.Duration
	QRCodeTTL        time.Duration
}

// DefaultCacheConfig returns sensible defaults
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		AssetPageTTL:     5 * time.Minute,  // holdings change rarely within a browsing session
		AssetPageFailTTL: 30 * time.Second, // let upstream hiccups retry quickly
		QRCodeTTL:        24 * time.Hour,
	}
}
