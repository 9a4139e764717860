package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"nft-gallery/internal/config"
	"nft-gallery/internal/gallery"
	"nft-gallery/internal/opensea"
	"nft-gallery/internal/render"
	"nft-gallery/internal/util"
)

// Asset source and renderer shared by all handlers, set in main (or by tests)
var (
	assetSource     gallery.AssetSource
	assetSourceType string // "opensea" or "file"
	renderer        *render.Renderer
)

// galleryRequest is the parsed form of a gallery URL
type galleryRequest struct {
	Owner   string
	Offset  int
	Limit   int
	Display gallery.DisplayConfig
	Open    int
	HasOpen bool
	Refresh bool
	Query   url.Values
}

var errInvalidOwner = errors.New("invalid owner")

// parseGalleryRequest reads the owner path variable and the display query flags
func parseGalleryRequest(r *http.Request) (galleryRequest, error) {
	owner := mux.Vars(r)["owner"]
	if !opensea.ValidOwner(owner) {
		return galleryRequest{}, errInvalidOwner
	}

	cfg := config.GetGalleryConfig()
	q := r.URL.Query()
	req := galleryRequest{
		Owner:  owner,
		Offset: util.ParseOffset(q.Get("offset")),
		Limit:  cfg.PageSize,
		Display: cfg.Display.WithFlags(gallery.Flags{
			MetadataIsVisible: util.ParseBool(q.Get("metadata")),
			HasLightbox:       util.ParseBool(q.Get("lightbox")),
			HasExternalLinks:  util.ParseBool(q.Get("links")),
			DarkMode:          util.ParseBool(q.Get("dark")),
			IsInline:          util.ParseBool(q.Get("inline")),
		}),
		Query: q,
	}
	req.Open, req.HasOpen = util.ParseIndex(q.Get("open"))
	if v := util.ParseBool(q.Get("refresh")); v != nil {
		req.Refresh = *v
	}
	return req, nil
}

// loadGallery fetches the requested page and builds its view. basePath is the
// path the "load more" link points at.
func loadGallery(r *http.Request, req galleryRequest, basePath string) (render.GalleryView, error) {
	if req.Refresh {
		if err := assetPageCache.InvalidateOwner(r.Context(), req.Owner); err != nil {
			LoggerFromContext(r.Context()).Warn("cache invalidation failed", "owner", req.Owner, "error", err)
		}
	}
	page, err := fetchAssetPage(r.Context(), req.Owner, req.Offset, req.Limit)
	if err != nil {
		return render.GalleryView{}, err
	}

	linker := newLightboxLinker(basePath, req.Query)
	g := gallery.New(req.Owner, page.Assets, req.Display)
	g.Linker = linker
	if req.HasOpen {
		g.Activate(req.Open)
	}

	view := render.GalleryView{Gallery: g}
	if page.HasMore() {
		params := linker.with(nil)
		params["offset"] = strconv.Itoa(page.Offset + page.Limit)
		view.NextHref = util.BuildURL(basePath, params)
	}
	return view, nil
}

// lightboxLinker keeps the lightbox state in the "open" query param so a
// page rendered with a lightbox open can still close it or move to a neighbour.
type lightboxLinker struct {
	path   string
	params map[string]string
}

func newLightboxLinker(path string, q url.Values) lightboxLinker {
	params := util.QueryParams(q)
	delete(params, "open")
	delete(params, "refresh")
	return lightboxLinker{path: path, params: params}
}

// with copies the base params and applies extra on top
func (l lightboxLinker) with(extra map[string]string) map[string]string {
	params := make(map[string]string, len(l.params)+len(extra))
	for k, v := range l.params {
		params[k] = v
	}
	for k, v := range extra {
		params[k] = v
	}
	return params
}

func (l lightboxLinker) LightboxHref(ev gallery.LightboxEvent) string {
	if !ev.Open {
		return util.BuildURL(l.path, l.with(nil))
	}
	return util.BuildURL(l.path, l.with(map[string]string{"open": strconv.Itoa(ev.Index)}))
}

// htmlGalleryHandler serves /gallery/{owner} as a full page
func htmlGalleryHandler(w http.ResponseWriter, r *http.Request) {
	logger := LoggerFromContext(r.Context())

	req, err := parseGalleryRequest(r)
	if err != nil {
		renderMessage(w, r, http.StatusBadRequest, config.I18n("page.invalid_owner"), true)
		return
	}

	view, err := loadGallery(r, req, r.URL.Path)
	if err != nil {
		logger.Warn("gallery fetch failed", "owner", req.Owner, "error", err)
		renderMessage(w, r, http.StatusBadGateway, config.I18n("page.fetch_failed"), true)
		return
	}

	var buf bytes.Buffer
	err = renderer.Page(&buf, render.PageData{
		Title:           gallery.ShortAddress(req.Owner),
		PageDescription: config.I18n("gallery.by_owner") + " " + req.Owner,
		Site:            config.GetSiteConfig(),
		Gallery:         view,
	})
	if err != nil {
		logger.Error("failed to render gallery page", "owner", req.Owner, "error", err)
		util.RespondInternalError(w, "Failed to render page")
		return
	}
	galleryRendersTotal.Add(1)

	util.SetHTMLHeaders(w, "60")
	util.WriteHTML(w, buf.String())
}

// htmlFragmentHandler serves /fragment/gallery/{owner}: the gallery markup alone,
// for embedding in another site. css=0 drops the stylesheet link.
func htmlFragmentHandler(w http.ResponseWriter, r *http.Request) {
	logger := LoggerFromContext(r.Context())

	req, err := parseGalleryRequest(r)
	if err != nil {
		util.RespondBadRequest(w, config.I18n("page.invalid_owner"))
		return
	}

	view, err := loadGallery(r, req, r.URL.Path)
	if err != nil {
		logger.Warn("fragment fetch failed", "owner", req.Owner, "error", err)
		util.RespondBadGateway(w, config.I18n("page.fetch_failed"))
		return
	}

	includeCSS := true
	if v := util.ParseBool(req.Query.Get("css")); v != nil {
		includeCSS = *v
	}

	var buf bytes.Buffer
	err = renderer.Fragment(&buf, render.PageData{
		Site:              config.GetSiteConfig(),
		Gallery:           view,
		IncludeStylesheet: includeCSS,
	})
	if err != nil {
		logger.Error("failed to render gallery fragment", "owner", req.Owner, "error", err)
		util.RespondInternalError(w, "Failed to render fragment")
		return
	}
	galleryRendersTotal.Add(1)

	util.SetHTMLHeaders(w, "60")
	util.WriteHTML(w, buf.String())
}

// apiItem is one visible gallery item as JSON
type apiItem struct {
	Index         int    `json:"index"`
	ID            string `json:"id"`
	Title         string `json:"title"`
	MediaKind     string `json:"media_kind"`
	MediaURL      string `json:"media_url,omitempty"`
	MIMEType      string `json:"mime_type,omitempty"`
	Permalink     string `json:"permalink,omitempty"`
	CollectionURL string `json:"collection_url,omitempty"`
}

type apiGalleryResponse struct {
	Owner  string    `json:"owner"`
	Offset int       `json:"offset"`
	Limit  int       `json:"limit"`
	Items  []apiItem `json:"items"`
	Next   string    `json:"next,omitempty"`
}

type apiError struct {
	Error string `json:"error"`
}

// apiGalleryHandler serves /api/gallery/{owner} as JSON
func apiGalleryHandler(w http.ResponseWriter, r *http.Request) {
	req, err := parseGalleryRequest(r)
	if err != nil {
		util.RespondJSON(w, http.StatusBadRequest, apiError{Error: config.I18n("page.invalid_owner")})
		return
	}

	view, err := loadGallery(r, req, r.URL.Path)
	if err != nil {
		LoggerFromContext(r.Context()).Warn("api fetch failed", "owner", req.Owner, "error", err)
		util.RespondJSON(w, http.StatusBadGateway, apiError{Error: config.I18n("page.fetch_failed")})
		return
	}

	w.Header().Set("Vary", "Accept")
	w.Header().Set("Cache-Control", "max-age=60")

	if strings.Contains(r.Header.Get("Accept"), sirenContentType) {
		siren := toSirenGallery(view, req, r.URL.RequestURI())
		util.RespondJSONAs(w, http.StatusOK, sirenContentType, siren)
		return
	}

	items := view.Items()
	resp := apiGalleryResponse{
		Owner:  req.Owner,
		Offset: req.Offset,
		Limit:  req.Limit,
		Items:  make([]apiItem, len(items)),
		Next:   view.NextHref,
	}
	for i, it := range items {
		resp.Items[i] = apiItem{
			Index:         it.Index,
			ID:            it.Asset.ItemID(),
			Title:         it.Title,
			MediaKind:     it.Media.Kind.String(),
			MediaURL:      it.Media.URL,
			MIMEType:      it.Media.MIMEType,
			Permalink:     it.PermalinkURL(),
			CollectionURL: it.CollectionURL(),
		}
	}

	util.RespondJSON(w, http.StatusOK, resp)
}

// qrHandler serves /qr?url= as a PNG. Only OpenSea https links are encoded.
func qrHandler(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if !render.AllowedQRTarget(target) {
		util.RespondBadRequest(w, "url must be an https opensea.io link")
		return
	}

	png, err := fetchQRCode(r.Context(), target)
	if err != nil {
		LoggerFromContext(r.Context()).Error("failed to generate QR code", "error", err)
		util.RespondInternalError(w, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(png)
}

// rootHandler redirects to the configured default owner or explains usage
func rootHandler(w http.ResponseWriter, r *http.Request) {
	if owner := config.GetGalleryConfig().DefaultOwner; owner != "" {
		http.Redirect(w, r, "/gallery/"+url.PathEscape(owner), http.StatusFound)
		return
	}
	renderMessage(w, r, http.StatusOK, config.I18n("page.usage_body"), false)
}

// renderMessage writes a full page holding a single message
func renderMessage(w http.ResponseWriter, r *http.Request, status int, message string, isError bool) {
	var buf bytes.Buffer
	err := renderer.Message(&buf, render.PageData{
		Title:   config.I18n("page.usage_title"),
		Site:    config.GetSiteConfig(),
		Message: message,
		IsError: isError,
	})
	if err != nil {
		LoggerFromContext(r.Context()).Error("failed to render message page", "error", err)
		util.RespondInternalError(w, message)
		return
	}
	util.SetHTMLHeaders(w, "0")
	w.WriteHeader(status)
	util.WriteHTML(w, buf.String())
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	util.RespondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"cache":  cacheBackendType,
		"source": assetSourceType,
	})
}
