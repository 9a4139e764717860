// Package render turns gallery views into HTML using the templates package.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"nft-gallery/internal/config"
	"nft-gallery/internal/gallery"
	"nft-gallery/templates"
)

// GalleryView is a gallery plus the link to its next page, if any.
type GalleryView struct {
	*gallery.Gallery
	NextHref string
}

// PageData is the data for full pages and fragments.
type PageData struct {
	Title           string
	PageDescription string
	ThemeClass      string
	Site            *config.SiteConfig
	Gallery         GalleryView

	// Message pages
	Message string
	IsError bool

	// Fragments only
	IncludeStylesheet bool
}

// Renderer holds the compiled template sets. It is safe for concurrent use.
type Renderer struct {
	page     *template.Template
	fragment *template.Template
	message  *template.Template
	opts     Options
	md       *markdown
}

// New compiles all template sets.
func New(opts Options) (*Renderer, error) {
	r := &Renderer{
		opts: opts.withDefaults(),
		md:   newMarkdown(),
	}
	funcs := r.funcMap()

	galleryTemplates := templates.Gallery + templates.Item + templates.ExternalLink + templates.Media + templates.Lightbox

	var err error
	if r.page, err = parse("page", funcs, templates.GetBaseTemplates(), galleryTemplates, templates.GalleryPage); err != nil {
		return nil, err
	}
	if r.fragment, err = parse("fragment", funcs, templates.GetFragmentTemplate(), galleryTemplates); err != nil {
		return nil, err
	}
	if r.message, err = parse("message", funcs, templates.GetBaseTemplates(), templates.MessagePage); err != nil {
		return nil, err
	}
	return r, nil
}

func parse(name string, funcs template.FuncMap, sources ...string) (*template.Template, error) {
	t, err := template.New(name).Funcs(funcs).Parse(strings.Join(sources, "\n"))
	if err != nil {
		return nil, fmt.Errorf("compiling %s templates: %w", name, err)
	}
	return t, nil
}

// Page renders a full HTML document containing the gallery.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	data = withSite(data)
	if data.ThemeClass == "" && data.Gallery.Gallery != nil && data.Gallery.Config.DarkMode {
		data.ThemeClass = "dark"
	}
	return r.page.ExecuteTemplate(w, "base", data)
}

// Fragment renders only the gallery markup, for embedding.
func (r *Renderer) Fragment(w io.Writer, data PageData) error {
	return r.fragment.ExecuteTemplate(w, "fragment", withSite(data))
}

// Message renders a full page with a single usage or error message.
func (r *Renderer) Message(w io.Writer, data PageData) error {
	return r.message.ExecuteTemplate(w, "base", withSite(data))
}

// Item renders a single grid cell.
func (r *Renderer) Item(w io.Writer, it gallery.Item) error {
	return r.page.ExecuteTemplate(w, "gallery-item", it)
}

// String runs fn into a buffer and returns the result.
func String(fn func(io.Writer) error) (string, error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func withSite(data PageData) PageData {
	if data.Site == nil {
		data.Site = config.DefaultSiteConfig()
	}
	return data
}

type externalLink struct {
	Href string
	Text string
}

func (r *Renderer) funcMap() template.FuncMap {
	return template.FuncMap{
		"i18n":       config.I18n,
		"classNames": classNames,
		"when": func(cond bool, class string) string {
			if cond {
				return class
			}
			return ""
		},
		"styleAttr": func(s gallery.Style) template.CSS {
			return template.CSS(s.String())
		},
		"link": func(href, text string) externalLink {
			return externalLink{Href: href, Text: text}
		},
		"markdown": r.md.render,
		"qrSrc":    r.qrSrc,
	}
}

// classNames joins the non-empty class names with single spaces.
func classNames(names ...string) string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}
