package templates

// Gallery renders the grid container. Data is render.GalleryView.
var Gallery = `{{define "gallery"}}
<section class="{{classNames "nftg" (when .Config.DarkMode "nftg--dark") (when .Config.IsInline "nftg--inline")}}"{{with styleAttr .Config.GalleryContainerStyle}} style="{{.}}"{{end}} aria-label="{{i18n "gallery.by_owner"}} {{.Owner}}">
  {{if .Empty}}
  <p class="nftg-empty">{{i18n "gallery.empty"}}</p>
  {{else}}
  <div class="nftg-grid">
    {{range .Items}}{{template "gallery-item" .}}{{end}}
  </div>
  {{end}}
  {{with .NextHref}}<a class="nftg-more" href="{{.}}">{{i18n "gallery.load_more"}}</a>{{end}}
</section>
{{end}}`

// GalleryPage wraps the gallery in the base page.
var GalleryPage = `{{define "content"}}{{template "gallery" .Gallery}}{{end}}`

// MessagePage shows usage or error text in the base page.
var MessagePage = `{{define "content"}}<p class="nftg-message{{if .IsError}} nftg-message--error{{end}}">{{.Message}}</p>{{end}}`
