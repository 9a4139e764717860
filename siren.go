package main

import (
	"net/url"

	"nft-gallery/internal/render"
)

const sirenContentType = "application/vnd.siren+json"

type SirenEntity struct {
	Class      []string         `json:"class,omitempty"`
	Properties map[string]any   `json:"properties,omitempty"`
	Entities   []SirenSubEntity `json:"entities,omitempty"`
	Links      []SirenLink      `json:"links,omitempty"`
	Actions    []SirenAction    `json:"actions,omitempty"`
}

type SirenSubEntity struct {
	Class      []string       `json:"class,omitempty"`
	Rel        []string       `json:"rel,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	Links      []SirenLink    `json:"links,omitempty"`
}

type SirenLink struct {
	Rel   []string `json:"rel"`
	Href  string   `json:"href"`
	Type  string   `json:"type,omitempty"`
	Title string   `json:"title,omitempty"`
}

type SirenAction struct {
	Name   string       `json:"name"`
	Title  string       `json:"title,omitempty"`
	Method string       `json:"method"`
	Href   string       `json:"href"`
	Type   string       `json:"type,omitempty"`
	Fields []SirenField `json:"fields,omitempty"`
}

type SirenField struct {
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Value any    `json:"value,omitempty"`
	Title string `json:"title,omitempty"`
}

// toSirenGallery describes a gallery page as a Siren entity. Each visible item
// is a sub-entity linking to its OpenSea page, its collection and its media.
func toSirenGallery(view render.GalleryView, req galleryRequest, selfURL string) SirenEntity {
	display := view.Config
	entity := SirenEntity{
		Class: []string{"gallery"},
		Properties: map[string]any{
			"owner":               req.Owner,
			"offset":              req.Offset,
			"limit":               req.Limit,
			"metadata_is_visible": display.MetadataIsVisible,
			"has_lightbox":        display.HasLightbox,
			"has_external_links":  display.HasExternalLinks,
			"dark_mode":           display.DarkMode,
			"is_inline":           display.IsInline,
			"showcase_mode":       display.ShowcaseMode,
		},
		Entities: []SirenSubEntity{},
		Links:    []SirenLink{},
	}

	for _, it := range view.Items() {
		props := map[string]any{
			"index":      it.Index,
			"id":         it.Asset.ItemID(),
			"title":      it.Title,
			"media_kind": it.Media.Kind.String(),
			"collection": it.Asset.Collection.Name,
		}
		if it.Asset.Description != "" {
			props["description"] = it.Asset.Description
		}

		sub := SirenSubEntity{
			Class:      []string{"item", it.Media.Kind.String()},
			Rel:        []string{"item"},
			Properties: props,
			Links:      []SirenLink{},
		}
		if it.Media.URL != "" {
			sub.Links = append(sub.Links, SirenLink{Rel: []string{"enclosure"}, Href: it.Media.URL, Type: it.Media.MIMEType})
		}
		if p := it.PermalinkURL(); p != "" {
			sub.Links = append(sub.Links, SirenLink{Rel: []string{"alternate"}, Href: p, Title: "OpenSea"})
			if render.AllowedQRTarget(p) {
				sub.Links = append(sub.Links, SirenLink{Rel: []string{"qrcode"}, Href: "/qr?url=" + url.QueryEscape(p), Type: "image/png"})
			}
		}
		if c := it.CollectionURL(); c != "" {
			sub.Links = append(sub.Links, SirenLink{Rel: []string{"collection"}, Href: c, Title: it.Asset.Collection.Name})
		}
		entity.Entities = append(entity.Entities, sub)
	}

	// Add self link
	entity.Links = append(entity.Links, SirenLink{Rel: []string{"self"}, Href: selfURL})

	// Add next link for pagination
	if view.NextHref != "" {
		entity.Links = append(entity.Links, SirenLink{Rel: []string{"next"}, Href: view.NextHref})
	}

	// HTML renditions of the same page
	htmlPath := "/gallery/" + url.PathEscape(req.Owner)
	entity.Links = append(entity.Links,
		SirenLink{Rel: []string{"alternate"}, Href: htmlPath, Type: "text/html"},
		SirenLink{Rel: []string{"embed"}, Href: "/fragment" + htmlPath, Type: "text/html"},
	)

	entity.Actions = []SirenAction{{
		Name:   "display",
		Title:  "Change display options",
		Method: "GET",
		Href:   htmlPath,
		Type:   "application/x-www-form-urlencoded",
		Fields: []SirenField{
			{Name: "metadata", Type: "checkbox", Value: display.MetadataIsVisible},
			{Name: "lightbox", Type: "checkbox", Value: display.HasLightbox},
			{Name: "links", Type: "checkbox", Value: display.HasExternalLinks},
			{Name: "dark", Type: "checkbox", Value: display.DarkMode},
			{Name: "inline", Type: "checkbox", Value: display.IsInline},
			{Name: "offset", Type: "number", Value: req.Offset},
		},
	}}

	return entity
}
