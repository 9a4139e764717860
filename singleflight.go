package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"nft-gallery/internal/cache"
	"nft-gallery/internal/config"
	"nft-gallery/internal/gallery"
	"nft-gallery/internal/render"
)

// Singleflight groups for deduplicating concurrent requests.
// When multiple goroutines request the same data simultaneously,
// only one actually fetches while others wait and share the result.
var (
	assetPageGroup singleflight.Group
	qrCodeGroup    singleflight.Group
)

// errRecentFetchFailure is returned while a failed fetch is still cached.
var errRecentFetchFailure = errors.New("asset source failed recently")

// fetchAssetPage fetches an owner's asset page with caching and singleflight
// deduplication. The shared fetch runs detached from any single request so one
// cancelled client does not fail the others waiting on it.
func fetchAssetPage(ctx context.Context, owner string, offset, limit int) (*gallery.AssetPage, error) {
	// Check cache first (avoid singleflight overhead for cache hits)
	if page, failed, ok := assetPageCache.Get(ctx, owner, offset, limit); ok {
		IncrementCacheHit()
		if failed {
			return nil, errRecentFetchFailure
		}
		return page, nil
	}
	IncrementCacheMiss()

	key := cache.AssetPageKey(owner, offset, limit)
	ch := assetPageGroup.DoChan(key, func() (interface{}, error) {
		return fetchAssetPageDirect(owner, offset, limit)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			assetFetchSharedTotal.Add(1)
			slog.Debug("singleflight: shared asset page fetch", "owner", owner, "offset", offset)
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*gallery.AssetPage), nil
	}
}

func fetchAssetPageDirect(owner string, offset, limit int) (*gallery.AssetPage, error) {
	timeout := config.GetGalleryConfig().FetchTimeout
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	assetFetchesTotal.Add(1)
	page, err := assetSource.AssetsByOwner(ctx, owner, offset, limit)
	if err != nil {
		assetFetchErrorsTotal.Add(1)
		slog.Warn("asset fetch failed", "owner", owner, "offset", offset, "error", err)
		assetPageCache.SetFailed(context.Background(), owner, offset, limit)
		return nil, fmt.Errorf("fetching assets for %s: %w", owner, err)
	}

	slog.Debug("asset page fetched", "owner", owner, "offset", offset,
		"count", len(page.Assets), "duration_ms", time.Since(start).Milliseconds())
	assetPageCache.Set(context.Background(), page)
	return page, nil
}

// qrCodeKey hashes the target URL so cache keys stay short.
func qrCodeKey(target string) string {
	sum := sha256.Sum256([]byte(target))
	return "qr:" + hex.EncodeToString(sum[:16])
}

// fetchQRCode returns the PNG for target, generating and caching it on a miss.
func fetchQRCode(ctx context.Context, target string) ([]byte, error) {
	key := qrCodeKey(target)
	if png, ok, err := cacheBackend.Get(ctx, key); err == nil && ok {
		IncrementCacheHit()
		return png, nil
	}
	IncrementCacheMiss()

	result, err, _ := qrCodeGroup.Do(key, func() (interface{}, error) {
		png, err := render.QRCodePNG(target)
		if err != nil {
			return nil, err
		}
		qrCodesGeneratedTotal.Add(1)
		if err := cacheBackend.Set(context.Background(), key, png, cacheConfig.QRCodeTTL); err != nil {
			slog.Warn("failed to cache QR code", "error", err)
		}
		return png, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}
