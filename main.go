package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"nft-gallery/internal/config"
	"nft-gallery/internal/opensea"
	"nft-gallery/internal/render"
)

// Request body size limits
const (
	maxBodySize = 4 * 1024 // all routes are GET; anything larger is abuse
)

// limitBody wraps an HTTP handler to limit request body size
func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		}
		next.ServeHTTP(w, r)
	})
}

// securityHeaders wraps an HTTP handler to add security headers
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Content Security Policy
		// - img-src * data:: NFT media is hosted anywhere; inline QR codes are data URLs
		// - media-src *: video NFTs
		// - style-src 'self' 'unsafe-inline': per-gallery style overrides are inline
		// - script-src 'none': the lightbox is pure CSS
		csp := "default-src 'self'; " +
			"img-src * data:; " +
			"media-src *; " +
			"style-src 'self' 'unsafe-inline'; " +
			"script-src 'none'"
		w.Header().Set("Content-Security-Policy", csp)

		// Prevent clickjacking
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")

		// Prevent MIME type sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Referrer policy - don't leak full URLs to external sites
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}

// allowedOrigins parses ALLOWED_ORIGINS (comma separated, default "*")
func allowedOrigins() []string {
	raw := os.Getenv("ALLOWED_ORIGINS")
	if raw == "" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// newRouter wires all routes. Embed routes (fragments and the JSON API) are
// served with CORS so other sites can fetch them.
func newRouter(origins []string) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLoggingMiddleware, limitBody)

	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/metrics", metricsHandler).Methods(http.MethodGet)
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("./static"))))

	pages := r.NewRoute().Subrouter()
	pages.Use(securityHeaders)
	pages.HandleFunc("/", rootHandler).Methods(http.MethodGet)
	pages.HandleFunc("/gallery/{owner}", htmlGalleryHandler).Methods(http.MethodGet)
	pages.HandleFunc("/qr", qrHandler).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
		MaxAge:         3600,
	})
	embed := r.NewRoute().Subrouter()
	embed.Use(c.Handler)
	embed.HandleFunc("/fragment/gallery/{owner}", htmlFragmentHandler).Methods(http.MethodGet, http.MethodOptions)
	embed.HandleFunc("/api/gallery/{owner}", apiGalleryHandler).Methods(http.MethodGet, http.MethodOptions)

	return r
}

// initAssetSource picks the local asset file (ASSET_FILE) or the OpenSea API
func initAssetSource(cfg *config.GalleryConfig) {
	if path := os.Getenv("ASSET_FILE"); path != "" {
		assetSource = opensea.NewFileSource(path)
		assetSourceType = "file"
		slog.Info("serving assets from file", "path", path)
		return
	}
	assetSource = opensea.NewClient(
		opensea.WithBaseURL(cfg.OpenSeaURL),
		opensea.WithAPIKey(os.Getenv("OPENSEA_API_KEY")),
		opensea.WithTimeout(cfg.FetchTimeout),
	)
	assetSourceType = "opensea"
	slog.Info("serving assets from OpenSea", "base_url", cfg.OpenSeaURL)
}

// startConfigWatcher reloads site, gallery and language files on change
func startConfigWatcher(ctx context.Context) {
	w, err := config.NewWatcher(map[string]config.ReloadFunc{
		config.SiteConfigPath():    config.ReloadSiteConfig,
		config.GalleryConfigPath(): config.ReloadGalleryConfig,
		config.I18nPath():          config.ReloadI18nConfig,
	}, 250*time.Millisecond)
	if err != nil {
		slog.Warn("config hot reload disabled", "error", err)
		return
	}
	go w.Run(ctx)
	go func() {
		<-ctx.Done()
		w.Close()
	}()
}

func main() {
	InitLogger()
	config.InitI18n()

	if err := InitCaches(); err != nil {
		slog.Error("failed to initialize caches", "error", err)
		os.Exit(1)
	}
	defer CloseCaches()

	initAssetSource(config.GetGalleryConfig())

	var err error
	renderer, err = render.New(render.Options{QRMode: render.QRLink})
	if err != nil {
		slog.Error("failed to compile templates", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	startConfigWatcher(ctx)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           newRouter(allowedOrigins()),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("starting server", "port", port, "url", "http://localhost:"+port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
