package gallery

import (
	"net/url"
	"strconv"
)

// CollectionBaseURL is the prefix for collection page links.
const CollectionBaseURL = "https://opensea.io/collection/"

// Item is one grid cell. It holds no state of its own; activation only
// emits a lightbox request.
type Item struct {
	Asset  Asset
	Index  int
	Title  string
	Media  Media
	Config DisplayConfig

	// Lightbox is set only when Config.HasLightbox is true.
	Lightbox *Lightbox

	requester LightboxRequester
}

// NewItem builds the view of asset at index. A nil requester drops events.
func NewItem(asset Asset, index int, cfg DisplayConfig, requester LightboxRequester) Item {
	if requester == nil {
		requester = noopRequester{}
	}
	title := Title(asset)
	it := Item{
		Asset:     asset,
		Index:     index,
		Title:     title,
		Media:     ResolveMedia(asset, cfg.MetadataIsVisible),
		Config:    cfg,
		requester: requester,
	}
	if cfg.HasLightbox {
		it.Lightbox = &Lightbox{
			Index:     index,
			Asset:     asset,
			Title:     title,
			Media:     ResolveFullMedia(asset),
			Count:     index + 1,
			requester: requester,
		}
	}
	return it
}

// Activate is called when the media anchor is clicked. It requests the
// lightbox at this item's index exactly once.
func (it Item) Activate() {
	it.requester.RequestLightbox(OpenLightbox(it.Index))
}

// AnchorHref is the same-document fallback target of the media anchor.
func (it Item) AnchorHref() string {
	return "#lightbox-" + strconv.Itoa(it.Index)
}

// ShowMetadata reports whether the title/divider/collection panel is rendered.
func (it Item) ShowMetadata() bool { return it.Config.MetadataIsVisible }

// ExternalLinks reports whether title and collection name are links.
func (it Item) ExternalLinks() bool { return it.Config.HasExternalLinks }

// PermalinkURL is passed through unmodified.
func (it Item) PermalinkURL() string { return it.Asset.Permalink }

// CollectionURL builds the collection page URL for the asset's slug.
func (it Item) CollectionURL() string {
	return CollectionURL(it.Asset.Collection.Slug)
}

// CollectionURL returns https://opensea.io/collection/{slug}.
func CollectionURL(slug string) string {
	return CollectionBaseURL + url.PathEscape(slug)
}
