package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"nft-gallery/internal/gallery"
)

// CachedAssetPage wraps a fetched asset page. Failed marks a negative entry.
type CachedAssetPage struct {
	Page      *gallery.AssetPage `json:"page,omitempty"`
	Failed    bool               `json:"failed,omitempty"`
	FetchedAt int64              `json:"fetched_at"`
}

// AssetPageCache provides typed access to cached asset pages
type AssetPageCache struct {
	backend CacheBackend
	config  CacheConfig
}

func NewAssetPageCache(backend CacheBackend, config CacheConfig) *AssetPageCache {
	return &AssetPageCache{backend: backend, config: config}
}

// AssetPageKey builds the cache key. Owners are case-folded so checksummed
// and lowercase addresses share an entry.
func AssetPageKey(owner string, offset, limit int) string {
	return ownerKeyPrefix(owner) + strconv.Itoa(offset) + ":" + strconv.Itoa(limit)
}

// ownerKeyPrefix is shared by every page of one owner
func ownerKeyPrefix(owner string) string {
	return "assets:" + strings.ToLower(owner) + ":"
}

// Get returns (page, failed, inCache). A cached failure has failed=true and a nil page.
func (c *AssetPageCache) Get(ctx context.Context, owner string, offset, limit int) (*gallery.AssetPage, bool, bool) {
	data, found, err := c.backend.Get(ctx, AssetPageKey(owner, offset, limit))
	if err != nil {
		slog.Warn("asset cache read failed", "owner", owner, "error", err)
		return nil, false, false
	}
	if !found {
		return nil, false, false
	}

	var cached CachedAssetPage
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, false
	}
	return cached.Page, cached.Failed, true
}

// Set stores a fetched page
func (c *AssetPageCache) Set(ctx context.Context, page *gallery.AssetPage) {
	c.store(ctx, page.Owner, page.Offset, page.Limit, CachedAssetPage{
		Page:      page,
		FetchedAt: time.Now().Unix(),
	}, c.config.AssetPageTTL)
}

// SetFailed records a failed fetch for the short failure TTL
func (c *AssetPageCache) SetFailed(ctx context.Context, owner string, offset, limit int) {
	c.store(ctx, owner, offset, limit, CachedAssetPage{
		Failed:    true,
		FetchedAt: time.Now().Unix(),
	}, c.config.AssetPageFailTTL)
}

// Invalidate removes one cached page
func (c *AssetPageCache) Invalidate(ctx context.Context, owner string, offset, limit int) {
	c.backend.Delete(ctx, AssetPageKey(owner, offset, limit))
}

// InvalidateOwner removes every cached page of owner, failures included
func (c *AssetPageCache) InvalidateOwner(ctx context.Context, owner string) error {
	n, err := c.backend.DeletePrefix(ctx, ownerKeyPrefix(owner))
	if err != nil {
		return err
	}
	slog.Debug("asset cache invalidated", "owner", owner, "pages", n)
	return nil
}

func (c *AssetPageCache) store(ctx context.Context, owner string, offset, limit int, cached CachedAssetPage, ttl time.Duration) {
	data, err := json.Marshal(cached)
	if err != nil {
		return
	}
	if err := c.backend.Set(ctx, AssetPageKey(owner, offset, limit), data, ttl); err != nil {
		slog.Warn("asset cache write failed", "owner", owner, "error", err)
	}
}
