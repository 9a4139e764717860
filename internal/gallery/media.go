package gallery

import (
	"strings"

	"github.com/h2non/filetype"
)

// MediaKind selects how an asset's media is rendered.
type MediaKind int

const (
	MediaPlaceholder MediaKind = iota
	MediaVideo
	MediaImage
)

func (k MediaKind) String() string {
	switch k {
	case MediaPlaceholder:
		return "placeholder"
	case MediaVideo:
		return "video"
	case MediaImage:
		return "image"
	default:
		return "unknown"
	}
}

// Rounding classes for the media element.
const (
	RoundedTop = "rounded-top"
	RoundedAll = "rounded"
)

// videoExt is matched exactly and case-sensitively against the last dot-segment.
const videoExt = "mp4"

// Media is the resolved rendering strategy for one asset.
type Media struct {
	Kind MediaKind
	URL  string
	// Alt is the raw asset name (image mode only), not the resolved title.
	Alt string
	// Text is shown in placeholder mode.
	Text     string
	MIMEType string
	Rounding string
}

func (m Media) IsPlaceholder() bool { return m.Kind == MediaPlaceholder }
func (m Media) IsVideo() bool       { return m.Kind == MediaVideo }
func (m Media) IsImage() bool       { return m.Kind == MediaImage }

// ResolveMedia picks placeholder, video or image mode for the preview URL.
func ResolveMedia(a Asset, metadataIsVisible bool) Media {
	return resolveMedia(a, a.ImagePreviewURL, metadataIsVisible)
}

// ResolveFullMedia is ResolveMedia for the lightbox, using the full size URL.
func ResolveFullMedia(a Asset) Media {
	return resolveMedia(a, a.FullMediaURL(), false)
}

func resolveMedia(a Asset, url string, metadataIsVisible bool) Media {
	if url == "" {
		return Media{Kind: MediaPlaceholder, Text: Title(a)}
	}

	rounding := RoundedAll
	if metadataIsVisible {
		rounding = RoundedTop
	}

	ext := Extension(url)
	if ext == videoExt {
		return Media{
			Kind:     MediaVideo,
			URL:      url,
			MIMEType: filetype.GetType(ext).MIME.Value,
			Rounding: rounding,
		}
	}

	return Media{
		Kind:     MediaImage,
		URL:      url,
		Alt:      a.Name,
		Rounding: rounding,
	}
}

// Extension returns the substring after the final "." of u, or u itself when
// it has no dot. Query strings and fragments are not stripped.
func Extension(u string) string {
	if i := strings.LastIndex(u, "."); i >= 0 {
		return u[i+1:]
	}
	return u
}
