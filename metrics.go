package main

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"
)

var serverStartTime = time.Now()

// HTTP metrics
var (
	httpRequestsTotal atomic.Int64
	httpErrorsTotal   atomic.Int64
)

// Cache metrics
var (
	cacheHitsTotal   atomic.Int64
	cacheMissesTotal atomic.Int64
)

// Asset source metrics
var (
	assetFetchesTotal     atomic.Int64
	assetFetchErrorsTotal atomic.Int64
	assetFetchSharedTotal atomic.Int64
	galleryRendersTotal   atomic.Int64
	qrCodesGeneratedTotal atomic.Int64
)

// IncrementCacheHit increments the cache hit counter
func IncrementCacheHit() {
	cacheHitsTotal.Add(1)
}

// IncrementCacheMiss increments the cache miss counter
func IncrementCacheMiss() {
	cacheMissesTotal.Add(1)
}

func writeMetric(w http.ResponseWriter, name, kind, help string, value any) {
	fmt.Fprintf(w, "# HELP %s %s\n", name, help)
	fmt.Fprintf(w, "# TYPE %s %s\n", name, kind)
	fmt.Fprintf(w, "%s %v\n\n", name, value)
}

// metricsHandler serves Prometheus-compatible metrics
func metricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	fmt.Fprintf(w, "# HELP nftgallery_build_info Build and configuration information\n")
	fmt.Fprintf(w, "# TYPE nftgallery_build_info gauge\n")
	fmt.Fprintf(w, "nftgallery_build_info{cache_backend=%q,source=%q,go_version=%q} 1\n\n", cacheBackendType, assetSourceType, runtime.Version())

	writeMetric(w, "process_start_time_seconds", "gauge", "Unix timestamp of process start", serverStartTime.Unix())
	writeMetric(w, "process_uptime_seconds", "gauge", "Time since process started", fmt.Sprintf("%.0f", time.Since(serverStartTime).Seconds()))

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	writeMetric(w, "go_goroutines", "gauge", "Number of active goroutines", runtime.NumGoroutine())
	writeMetric(w, "go_memstats_alloc_bytes", "gauge", "Currently allocated memory in bytes", memStats.Alloc)

	writeMetric(w, "nftgallery_http_requests_total", "counter", "Total HTTP requests", httpRequestsTotal.Load())
	writeMetric(w, "nftgallery_http_errors_total", "counter", "HTTP requests answered with 5xx", httpErrorsTotal.Load())
	writeMetric(w, "nftgallery_cache_hits_total", "counter", "Cache hits (asset pages and QR codes)", cacheHitsTotal.Load())
	writeMetric(w, "nftgallery_cache_misses_total", "counter", "Cache misses (asset pages and QR codes)", cacheMissesTotal.Load())
	writeMetric(w, "nftgallery_asset_fetches_total", "counter", "Asset pages fetched from the source", assetFetchesTotal.Load())
	writeMetric(w, "nftgallery_asset_fetch_errors_total", "counter", "Failed asset page fetches", assetFetchErrorsTotal.Load())
	writeMetric(w, "nftgallery_asset_fetch_shared_total", "counter", "Requests that shared an in-flight fetch", assetFetchSharedTotal.Load())
	writeMetric(w, "nftgallery_gallery_renders_total", "counter", "Gallery pages and fragments rendered", galleryRendersTotal.Load())
	writeMetric(w, "nftgallery_qr_codes_generated_total", "counter", "QR codes generated (cache misses)", qrCodesGeneratedTotal.Load())
}
