package gallery

import (
	"sort"
	"strings"
)

// Style is a set of CSS property overrides, emitted verbatim.
type Style map[string]string

// String renders the style as "prop: value; ..." in sorted property order.
func (s Style) String() string {
	if len(s) == 0 {
		return ""
	}
	props := make([]string, 0, len(s))
	for p := range s {
		props = append(props, p)
	}
	sort.Strings(props)

	var b strings.Builder
	for i, p := range props {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
		b.WriteString(": ")
		b.WriteString(s[p])
		b.WriteByte(';')
	}
	return b.String()
}

// DisplayConfig holds the presentation flags shared by the gallery and its items.
// Treat it as a value: the With* helpers return modified copies.
type DisplayConfig struct {
	MetadataIsVisible bool     `yaml:"metadata_is_visible" json:"metadata_is_visible"`
	HasLightbox       bool     `yaml:"has_lightbox" json:"has_lightbox"`
	HasExternalLinks  bool     `yaml:"has_external_links" json:"has_external_links"`
	DarkMode          bool     `yaml:"dark_mode" json:"dark_mode"`
	IsInline          bool     `yaml:"is_inline" json:"is_inline"`
	ShowcaseMode      bool     `yaml:"showcase_mode" json:"showcase_mode"`
	ShowcaseItemIDs   []string `yaml:"showcase_item_ids" json:"showcase_item_ids,omitempty"`

	GalleryContainerStyle Style `yaml:"gallery_container_style" json:"gallery_container_style,omitempty"`
	ItemContainerStyle    Style `yaml:"item_container_style" json:"item_container_style,omitempty"`
	ImgContainerStyle     Style `yaml:"img_container_style" json:"img_container_style,omitempty"`
}

// DefaultDisplayConfig returns the defaults: metadata, lightbox and links on.
func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		MetadataIsVisible: true,
		HasLightbox:       true,
		HasExternalLinks:  true,
	}
}

// Clone returns a deep copy so callers can't share slices or maps.
func (c DisplayConfig) Clone() DisplayConfig {
	out := c
	out.ShowcaseItemIDs = append([]string(nil), c.ShowcaseItemIDs...)
	out.GalleryContainerStyle = c.GalleryContainerStyle.clone()
	out.ItemContainerStyle = c.ItemContainerStyle.clone()
	out.ImgContainerStyle = c.ImgContainerStyle.clone()
	return out
}

func (s Style) clone() Style {
	if s == nil {
		return nil
	}
	out := make(Style, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Flags is a partial override of the boolean display flags; nil fields keep
// the base value.
type Flags struct {
	MetadataIsVisible *bool
	HasLightbox       *bool
	HasExternalLinks  *bool
	DarkMode          *bool
	IsInline          *bool
}

// WithFlags returns a copy of c with the non-nil flags applied.
func (c DisplayConfig) WithFlags(f Flags) DisplayConfig {
	out := c.Clone()
	set := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	set(&out.MetadataIsVisible, f.MetadataIsVisible)
	set(&out.HasLightbox, f.HasLightbox)
	set(&out.HasExternalLinks, f.HasExternalLinks)
	set(&out.DarkMode, f.DarkMode)
	set(&out.IsInline, f.IsInline)
	return out
}
