package config

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"nft-gallery/internal/gallery"
)

// GalleryConfig represents gallery.yaml: display defaults and asset source settings
type GalleryConfig struct {
	DefaultOwner string                `yaml:"default_owner"`
	PageSize     int                   `yaml:"page_size"`
	OpenSeaURL   string                `yaml:"opensea_url"`
	FetchTimeout time.Duration         `yaml:"fetch_timeout"`
	Display      gallery.DisplayConfig `yaml:"display"`
}

// Bounds for PageSize; the OpenSea v1 API caps limit at 50
const (
	DefaultPageSize = 20
	MaxPageSize     = 50
)

var (
	galleryConfig     *GalleryConfig
	galleryConfigMu   sync.RWMutex
	galleryConfigOnce sync.Once
)

// GalleryConfigPath returns the gallery config path (GALLERY_CONFIG or config/gallery.yaml)
func GalleryConfigPath() string {
	return getEnvOrDefault("GALLERY_CONFIG", "config/gallery.yaml")
}

// GetGalleryConfig returns the current gallery configuration (thread-safe)
func GetGalleryConfig() *GalleryConfig {
	galleryConfigOnce.Do(func() {
		galleryConfigMu.Lock()
		defer galleryConfigMu.Unlock()
		if galleryConfig == nil {
			galleryConfig = LoadGalleryConfig(GalleryConfigPath())
		}
	})

	galleryConfigMu.RLock()
	defer galleryConfigMu.RUnlock()
	return galleryConfig
}

// ReloadGalleryConfig reloads the configuration from file
func ReloadGalleryConfig() error {
	newConfig := LoadGalleryConfig(GalleryConfigPath())
	galleryConfigMu.Lock()
	defer galleryConfigMu.Unlock()
	galleryConfig = newConfig
	slog.Info("gallery configuration reloaded", "page_size", newConfig.PageSize)
	return nil
}

// LoadGalleryConfig reads a gallery config file. Missing or invalid files
// fall back to defaults; keys absent from the file keep their defaults.
func LoadGalleryConfig(configPath string) *GalleryConfig {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("gallery config file not found, using defaults", "path", configPath)
		} else {
			slog.Warn("could not read gallery config, using defaults", "path", configPath, "error", err)
		}
		return DefaultGalleryConfig()
	}

	config := DefaultGalleryConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		slog.Error("invalid YAML in gallery config, using defaults", "path", configPath, "error", err)
		return DefaultGalleryConfig()
	}
	config.normalize()

	slog.Info("loaded gallery configuration",
		"default_owner", config.DefaultOwner,
		"page_size", config.PageSize,
		"showcase", config.Display.ShowcaseMode)
	return config
}

// DefaultGalleryConfig returns the embedded default configuration
func DefaultGalleryConfig() *GalleryConfig {
	return &GalleryConfig{
		PageSize:     DefaultPageSize,
		OpenSeaURL:   "https://api.opensea.io",
		FetchTimeout: 10 * time.Second,
		Display:      gallery.DefaultDisplayConfig(),
	}
}

func (c *GalleryConfig) normalize() {
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.PageSize > MaxPageSize {
		c.PageSize = MaxPageSize
	}
	if c.OpenSeaURL == "" {
		c.OpenSeaURL = "https://api.opensea.io"
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 10 * time.Second
	}
}
