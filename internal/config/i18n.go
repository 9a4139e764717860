package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// I18nStrings holds all localized strings
type I18nStrings map[string]string

// defaultStrings are used for any key the loaded language file does not define
var defaultStrings = I18nStrings{
	"a11y.skip_to_main":  "Skip to gallery",
	"gallery.empty":      "No collectibles to show.",
	"gallery.load_more":  "Load more",
	"gallery.by_owner":   "Collectibles held by",
	"lightbox.close":     "Close",
	"lightbox.previous":  "Previous",
	"lightbox.next":      "Next",
	"lightbox.view":      "View on OpenSea",
	"lightbox.scan":      "Scan to open on your phone",
	"msg.video_fallback": "Your browser does not support video playback.",
	"page.usage_title":   "NFT Gallery",
	"page.usage_body":    "Open /gallery/{address} with an Ethereum address or ENS name.",
	"page.invalid_owner": "That is not an Ethereum address or ENS name.",
	"page.fetch_failed":  "Could not load collectibles right now. Try again shortly.",
}

var (
	i18nStrings   I18nStrings
	i18nMu        sync.RWMutex
	i18nConfigDir = getEnvOrDefault("I18N_CONFIG_DIR", "config/i18n")
	defaultLang   = getEnvOrDefault("I18N_DEFAULT_LANG", "en")
)

// InitI18n initializes the i18n system. Call this during startup.
func InitI18n() {
	if err := loadI18nConfig(); err != nil {
		slog.Debug("using built-in i18n strings", "reason", err)
	}
}

// I18nPath returns the language file currently in use
func I18nPath() string {
	return filepath.Join(i18nConfigDir, defaultLang+".json")
}

func loadI18nConfig() error {
	i18nMu.Lock()
	defer i18nMu.Unlock()

	configPath := I18nPath()
	data, err := os.ReadFile(configPath)
	if err != nil {
		i18nStrings = nil
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", configPath)
		}
		return fmt.Errorf("could not read %s: %w", configPath, err)
	}

	var strings I18nStrings
	if err := json.Unmarshal(data, &strings); err != nil {
		return fmt.Errorf("invalid JSON in %s: %w", configPath, err)
	}

	i18nStrings = strings
	slog.Info("loaded i18n strings", "count", len(strings), "path", configPath)
	return nil
}

// ReloadI18nConfig reloads the i18n configuration from disk
func ReloadI18nConfig() error {
	return loadI18nConfig()
}

// I18n looks up a localized string by key.
// Falls back to the built-in English string, then to the key itself.
func I18n(key string) string {
	i18nMu.RLock()
	defer i18nMu.RUnlock()

	if val, ok := i18nStrings[key]; ok {
		return val
	}
	if val, ok := defaultStrings[key]; ok {
		return val
	}
	return key
}

// I18nKeys returns the built-in string keys, sorted
func I18nKeys() []string {
	keys := make([]string, 0, len(defaultStrings))
	for k := range defaultStrings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
