package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"sync/atomic"
)

// SiteConfig is site.json: page identity, head tags and theme colours
type SiteConfig struct {
	Site  SiteIdentity `json:"site"`
	Meta  MetaConfig   `json:"meta"`
	Links LinksConfig  `json:"links"`
}

type SiteIdentity struct {
	Name        string `json:"name"`
	TitleFormat string `json:"titleFormat"` // e.g. "{title} - {siteName}"
	Description string `json:"description"`
}

type MetaConfig struct {
	ThemeColor ThemeColorConfig `json:"themeColor"`
}

// ThemeColorConfig holds the theme-color meta value for each colour scheme
type ThemeColorConfig struct {
	Light string `json:"light"`
	Dark  string `json:"dark"`
}

// LinksConfig lists head link tags. Preconnect usually names the media CDNs
// that serve collectible images.
type LinksConfig struct {
	Favicon    string   `json:"favicon"`
	Stylesheet string   `json:"stylesheet"`
	Preconnect []string `json:"preconnect"`
}

var siteConfig atomic.Pointer[SiteConfig]

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// SiteConfigPath returns the site config path (SITE_CONFIG or config/site.json)
func SiteConfigPath() string {
	return getEnvOrDefault("SITE_CONFIG", "config/site.json")
}

// GetSiteConfig returns the active site configuration, loading it on first use
func GetSiteConfig() *SiteConfig {
	if c := siteConfig.Load(); c != nil {
		return c
	}
	siteConfig.CompareAndSwap(nil, loadSiteConfigFromFile(SiteConfigPath()))
	return siteConfig.Load()
}

// ReloadSiteConfig swaps in the file's configuration. An unreadable or
// invalid file leaves the active configuration in place.
func ReloadSiteConfig() error {
	path := SiteConfigPath()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		siteConfig.Store(DefaultSiteConfig())
		slog.Info("site config removed, using defaults", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read site config: %w", err)
	}
	next, err := parseSiteConfig(data)
	if err != nil {
		return fmt.Errorf("site config %s: %w", path, err)
	}
	siteConfig.Store(next)
	slog.Info("site configuration reloaded", "name", next.Site.Name)
	return nil
}

// loadSiteConfigFromFile is the startup load: any problem falls back to defaults
func loadSiteConfigFromFile(configPath string) *SiteConfig {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("site config file not found, using defaults", "path", configPath)
		} else {
			slog.Warn("could not read site config, using defaults", "path", configPath, "error", err)
		}
		return DefaultSiteConfig()
	}
	config, err := parseSiteConfig(data)
	if err != nil {
		slog.Error("invalid site config, using defaults", "path", configPath, "error", err)
		return DefaultSiteConfig()
	}
	slog.Info("loaded site configuration",
		"name", config.Site.Name,
		"preconnect", len(config.Links.Preconnect))
	return config
}

// parseSiteConfig overlays data on the defaults and validates the result
func parseSiteConfig(data []byte) (*SiteConfig, error) {
	config := DefaultSiteConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects title formats that drop the page title and theme colours
// that are not hex
func (c *SiteConfig) Validate() error {
	var errs []error
	if !strings.Contains(c.Site.TitleFormat, "{title}") {
		errs = append(errs, fmt.Errorf("titleFormat %q has no {title}", c.Site.TitleFormat))
	}
	for scheme, v := range map[string]string{"light": c.Meta.ThemeColor.Light, "dark": c.Meta.ThemeColor.Dark} {
		if v != "" && !hexColor.MatchString(v) {
			errs = append(errs, fmt.Errorf("themeColor.%s %q is not a hex colour", scheme, v))
		}
	}
	return errors.Join(errs...)
}

func DefaultSiteConfig() *SiteConfig {
	return &SiteConfig{
		Site: SiteIdentity{
			Name:        "NFT Gallery",
			TitleFormat: "{title} - {siteName}",
			Description: "A gallery of collectibles held by an address",
		},
		Meta: MetaConfig{
			ThemeColor: ThemeColorConfig{
				Light: "#f3f4f6",
				Dark:  "#111827",
			},
		},
		Links: LinksConfig{
			Favicon:    "/static/favicon.ico",
			Stylesheet: "/static/gallery.css",
			Preconnect: []string{
				"https://lh3.googleusercontent.com",
				"https://openseauserdata.com",
			},
		},
	}
}

// FormatTitle fills the configured title format
func (c *SiteConfig) FormatTitle(title string) string {
	return strings.NewReplacer("{title}", title, "{siteName}", c.Site.Name).Replace(c.Site.TitleFormat)
}

// GetDescription returns override when set, else the site description
func (c *SiteConfig) GetDescription(override string) string {
	if override != "" {
		return override
	}
	return c.Site.Description
}
