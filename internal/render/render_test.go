package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"nft-gallery/internal/gallery"
)

func catAsset() gallery.Asset {
	return gallery.Asset{
		TokenID:         "1",
		AssetContract:   gallery.Contract{Address: "0x06012c8cf97bead5deae237070f9587f8e7a266d"},
		ImagePreviewURL: "https://cdn/x.mp4",
		Permalink:       "https://os/item/1",
		Collection:      gallery.Collection{Name: "Cats", Slug: "cats"},
	}
}

func newRenderer(t *testing.T, mode QRMode) *Renderer {
	t.Helper()
	r, err := New(Options{QRMode: mode})
	require.NoError(t, err)
	return r
}

func renderItem(t *testing.T, r *Renderer, it gallery.Item) *html.Node {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Item(&buf, it))
	doc, err := html.Parse(&buf)
	require.NoError(t, err)
	return doc
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

// findAll returns every element below n matching pred, in document order.
func findAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && pred(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func byClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool { return hasClass(n, class) }
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func first(t *testing.T, n *html.Node, pred func(*html.Node) bool) *html.Node {
	t.Helper()
	all := findAll(n, pred)
	require.NotEmpty(t, all)
	return all[0]
}

func TestItemExampleScenario(t *testing.T) {
	r := newRenderer(t, QROff)
	cfg := gallery.DefaultDisplayConfig()
	cfg.HasLightbox = false
	doc := renderItem(t, r, gallery.NewItem(catAsset(), 0, cfg, nil))

	video := first(t, doc, byTag("video"))
	assert.True(t, hasAttr(video, "autoplay"))
	assert.True(t, hasAttr(video, "loop"))
	assert.True(t, hasAttr(video, "playsinline"))
	assert.True(t, hasAttr(video, "muted"))
	assert.Equal(t, "nodownload", attr(video, "controlslist"))
	assert.True(t, hasClass(video, gallery.RoundedTop))
	source := first(t, video, byTag("source"))
	assert.Equal(t, "https://cdn/x.mp4", attr(source, "src"))
	assert.Equal(t, "video/mp4", attr(source, "type"))

	titleDiv := first(t, doc, byClass("nftg-item__title"))
	titleLink := first(t, titleDiv, byTag("a"))
	assert.Equal(t, "https://os/item/1", attr(titleLink, "href"))
	assert.Equal(t, "_blank", attr(titleLink, "target"))
	assert.Equal(t, "noopener noreferrer", attr(titleLink, "rel"))
	assert.Equal(t, "0x0601…266d #1", text(titleLink))

	collection := first(t, doc, byClass("nftg-item__collection-name"))
	collectionLink := first(t, collection, byTag("a"))
	assert.Equal(t, "https://opensea.io/collection/cats", attr(collectionLink, "href"))
	assert.Equal(t, "Cats", text(collectionLink))

	assert.Empty(t, findAll(doc, byClass("nftg-item__collection-icon")), "no icon without collection image")
	assert.Len(t, findAll(doc, byTag("hr")), 1)
	assert.Empty(t, findAll(doc, byClass("nftg-lightbox")))
}

func TestItemWithoutExternalLinks(t *testing.T) {
	r := newRenderer(t, QROff)
	cfg := gallery.DefaultDisplayConfig()
	cfg.HasExternalLinks = false
	cfg.HasLightbox = false
	a := catAsset()
	a.Collection.ImageURL = "https://cdn/cats.png"
	doc := renderItem(t, r, gallery.NewItem(a, 0, cfg, nil))

	meta := first(t, doc, byClass("nftg-item__meta"))
	assert.Empty(t, findAll(meta, byTag("a")))
	assert.Equal(t, "Cats", text(first(t, doc, byClass("nftg-item__collection-name"))))

	icon := first(t, doc, byClass("nftg-item__collection-icon"))
	assert.Equal(t, "https://cdn/cats.png", attr(icon, "src"))
	assert.Equal(t, "Cats", attr(icon, "alt"))
}

func TestItemWithoutMetadata(t *testing.T) {
	r := newRenderer(t, QROff)
	cfg := gallery.DefaultDisplayConfig()
	cfg.MetadataIsVisible = false
	cfg.HasLightbox = false
	a := catAsset()
	a.ImagePreviewURL = "https://x/img"
	a.Name = "Kitty"
	doc := renderItem(t, r, gallery.NewItem(a, 3, cfg, nil))

	assert.Empty(t, findAll(doc, byClass("nftg-item__meta")))
	assert.Empty(t, findAll(doc, byTag("hr")))

	img := first(t, doc, byClass("nftg-media"))
	assert.Equal(t, "img", img.Data)
	assert.Equal(t, "lazy", attr(img, "loading"))
	assert.Equal(t, "Kitty", attr(img, "alt"))
	assert.True(t, hasClass(img, gallery.RoundedAll))

	anchor := first(t, doc, byClass("nftg-item__media-link"))
	assert.Equal(t, "#lightbox-3", attr(anchor, "href"))
}

func TestItemPlaceholder(t *testing.T) {
	r := newRenderer(t, QROff)
	a := catAsset()
	a.ImagePreviewURL = ""
	a.Name = "No Media"
	doc := renderItem(t, r, gallery.NewItem(a, 0, gallery.DefaultDisplayConfig(), nil))

	anchor := first(t, doc, byClass("nftg-item__media-link"))
	assert.Equal(t, "No Media", text(first(t, anchor, byClass("nftg-placeholder"))))
	assert.Empty(t, findAll(anchor, byTag("img")))
	assert.Empty(t, findAll(anchor, byTag("video")))
}

func TestItemLightbox(t *testing.T) {
	r := newRenderer(t, QRLink)
	a := catAsset()
	a.Permalink = "https://opensea.io/assets/0xabc/1"
	a.ImageURL = "https://cdn/full.png"
	a.Description = "**Rare** cat <script>alert(1)</script> [site](https://cats.example)"
	g := gallery.New("0xowner", []gallery.Asset{a, a}, gallery.DefaultDisplayConfig())
	g.RequestLightbox(gallery.OpenLightbox(0))
	doc := renderItem(t, r, g.Items()[0])

	lb := first(t, doc, byClass("nftg-lightbox"))
	assert.Equal(t, "lightbox-0", attr(lb, "id"))
	assert.False(t, hasClass(lb, "nftg-lightbox--open"), "fragment-driven lightbox is shown by :target")

	img := first(t, lb, byClass("nftg-media"))
	assert.Equal(t, "https://cdn/full.png", attr(img, "src"))

	desc := first(t, lb, byClass("nftg-lightbox__description"))
	assert.NotEmpty(t, findAll(desc, byTag("strong")))
	assert.Empty(t, findAll(desc, byTag("script")))
	link := first(t, desc, byTag("a"))
	assert.Contains(t, attr(link, "rel"), "noreferrer")

	qr := first(t, first(t, lb, byClass("nftg-lightbox__qr")), byTag("img"))
	assert.Equal(t, "/qr?url=https%3A%2F%2Fopensea.io%2Fassets%2F0xabc%2F1", attr(qr, "src"))

	assert.Equal(t, "#lightbox-1", attr(first(t, lb, byClass("nftg-lightbox__next")), "href"))
	assert.Empty(t, findAll(lb, byClass("nftg-lightbox__prev")))
	assert.Equal(t, "#_", attr(first(t, lb, byClass("nftg-lightbox__close")), "href"))
}

type pageLinker struct{ path string }

func (l pageLinker) LightboxHref(ev gallery.LightboxEvent) string {
	if !ev.Open {
		return l.path
	}
	return fmt.Sprintf("%s?open=%d", l.path, ev.Index)
}

func TestPinnedLightboxCanBeDismissed(t *testing.T) {
	r := newRenderer(t, QRLink)
	g := gallery.New("0xowner", []gallery.Asset{catAsset(), catAsset(), catAsset()}, gallery.DefaultDisplayConfig())
	g.Linker = pageLinker{path: "/gallery/0xowner"}
	g.Activate(1)
	items := g.Items()

	lb := first(t, renderItem(t, r, items[1]), byClass("nftg-lightbox"))
	assert.True(t, hasClass(lb, "nftg-lightbox--open"))
	assert.Equal(t, "/gallery/0xowner", attr(first(t, lb, byClass("nftg-lightbox__close")), "href"))
	assert.Equal(t, "/gallery/0xowner?open=0", attr(first(t, lb, byClass("nftg-lightbox__prev")), "href"))
	assert.Equal(t, "/gallery/0xowner?open=2", attr(first(t, lb, byClass("nftg-lightbox__next")), "href"))

	other := first(t, renderItem(t, r, items[0]), byClass("nftg-lightbox"))
	assert.False(t, hasClass(other, "nftg-lightbox--open"))
	assert.Equal(t, "#_", attr(first(t, other, byClass("nftg-lightbox__close")), "href"))
}

func TestLightboxInlineQR(t *testing.T) {
	r := newRenderer(t, QRInline)
	a := catAsset()
	a.Permalink = "https://opensea.io/assets/0xabc/1"
	doc := renderItem(t, r, gallery.NewItem(a, 0, gallery.DefaultDisplayConfig(), nil))

	qr := first(t, first(t, doc, byClass("nftg-lightbox__qr")), byTag("img"))
	assert.True(t, strings.HasPrefix(attr(qr, "src"), "data:image/png;base64,"))
}

func TestLightboxSkipsQRForOtherHosts(t *testing.T) {
	r := newRenderer(t, QRLink)
	doc := renderItem(t, r, gallery.NewItem(catAsset(), 0, gallery.DefaultDisplayConfig(), nil))
	assert.Empty(t, findAll(doc, byClass("nftg-lightbox__qr")))
}

func TestUnsafePermalinkIsNeutralised(t *testing.T) {
	r := newRenderer(t, QROff)
	a := catAsset()
	a.Permalink = "javascript:alert(1)"
	doc := renderItem(t, r, gallery.NewItem(a, 0, gallery.DefaultDisplayConfig(), nil))

	link := first(t, first(t, doc, byClass("nftg-item__title")), byTag("a"))
	assert.NotContains(t, attr(link, "href"), "javascript")
}

func TestPageAndFragment(t *testing.T) {
	r := newRenderer(t, QROff)
	cfg := gallery.DefaultDisplayConfig()
	cfg.DarkMode = true
	cfg.IsInline = true
	cfg.GalleryContainerStyle = gallery.Style{"gap": "8px"}
	a := catAsset()
	b := catAsset()
	b.TokenID = "2"
	view := GalleryView{Gallery: gallery.New("vitalik.eth", []gallery.Asset{a, b}, cfg), NextHref: "/gallery/vitalik.eth?offset=2"}

	out, err := String(func(w io.Writer) error {
		return r.Page(w, PageData{Title: "vitalik.eth", Gallery: view})
	})
	require.NoError(t, err)
	doc, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)

	root := first(t, doc, byTag("html"))
	assert.Equal(t, "dark", attr(root, "class"))
	section := first(t, doc, byClass("nftg"))
	assert.True(t, hasClass(section, "nftg--dark"))
	assert.True(t, hasClass(section, "nftg--inline"))
	assert.Equal(t, "gap: 8px;", attr(section, "style"))
	assert.Len(t, findAll(doc, byClass("nftg-item")), 2)
	assert.Equal(t, "/gallery/vitalik.eth?offset=2", attr(first(t, doc, byClass("nftg-more")), "href"))
	assert.Contains(t, text(first(t, doc, byTag("title"))), "vitalik.eth - NFT Gallery")

	frag, err := String(func(w io.Writer) error {
		return r.Fragment(w, PageData{Gallery: view, IncludeStylesheet: true})
	})
	require.NoError(t, err)
	assert.NotContains(t, frag, "<html")
	assert.Contains(t, frag, `<link rel="stylesheet" href="/static/gallery.css">`)
	assert.Contains(t, frag, `id="nftg-item-1"`)
}

func TestEmptyGallery(t *testing.T) {
	r := newRenderer(t, QROff)
	view := GalleryView{Gallery: gallery.New("0xowner", nil, gallery.DefaultDisplayConfig())}
	out, err := String(func(w io.Writer) error { return r.Fragment(w, PageData{Gallery: view}) })
	require.NoError(t, err)
	assert.Contains(t, out, "No collectibles to show.")
	assert.NotContains(t, out, "nftg-more")
}

func TestMessagePage(t *testing.T) {
	r := newRenderer(t, QROff)
	out, err := String(func(w io.Writer) error {
		return r.Message(w, PageData{Title: "Oops", Message: "bad <owner>", IsError: true})
	})
	require.NoError(t, err)
	assert.Contains(t, out, "nftg-message--error")
	assert.Contains(t, out, "bad &lt;owner&gt;")
}

func TestClassNames(t *testing.T) {
	assert.Equal(t, "a b", classNames("a", "", " ", "b "))
	assert.Equal(t, "", classNames())
}

func TestAllowedQRTarget(t *testing.T) {
	assert.True(t, AllowedQRTarget("https://opensea.io/assets/0xabc/1"))
	assert.True(t, AllowedQRTarget("https://testnets.opensea.io/assets/0xabc/1"))
	assert.False(t, AllowedQRTarget("http://opensea.io/assets/0xabc/1"))
	assert.False(t, AllowedQRTarget("https://evil.com/?opensea.io"))
	assert.False(t, AllowedQRTarget("https://opensea.io.evil.com/"))
	assert.False(t, AllowedQRTarget("https://user@opensea.io/"))
}
