package templates

// Item renders one grid cell. Data is gallery.Item.
var Item = `{{define "gallery-item"}}
<article class="nftg-item" id="nftg-item-{{.Index}}"{{with styleAttr .Config.ItemContainerStyle}} style="{{.}}"{{end}}>
  <div class="nftg-item__img-wrapper"{{with styleAttr .Config.ImgContainerStyle}} style="{{.}}"{{end}}>
    <a class="nftg-item__media-link" href="{{.AnchorHref}}" data-lightbox-index="{{.Index}}">{{template "gallery-media" .Media}}</a>
  </div>
  {{if .ShowMetadata}}
  <div class="nftg-item__meta">
    <div class="nftg-item__title">{{if .ExternalLinks}}{{template "external-link" (link .PermalinkURL .Title)}}{{else}}{{.Title}}{{end}}</div>
    <hr class="nftg-item__divider">
    <div class="nftg-item__collection">
      {{with .Asset.Collection.ImageURL}}<img src="{{.}}" alt="{{$.Asset.Collection.Name}}" class="nftg-item__collection-icon" loading="lazy">{{end}}
      <div class="nftg-item__collection-name">{{if .ExternalLinks}}{{template "external-link" (link .CollectionURL .Asset.Collection.Name)}}{{else}}{{.Asset.Collection.Name}}{{end}}</div>
    </div>
  </div>
  {{end}}
  {{with .Lightbox}}{{template "gallery-lightbox" .}}{{end}}
</article>
{{end}}`

// ExternalLink opens in a new browsing context without referrer or opener.
var ExternalLink = `{{define "external-link"}}<a class="nftg-link" href="{{.Href}}" target="_blank" rel="noopener noreferrer">{{.Text}}</a>{{end}}`

// Media renders a gallery.Media value: placeholder, video or image.
var Media = `{{define "gallery-media"}}{{if .IsPlaceholder}}<div class="nftg-placeholder">{{.Text}}</div>{{else if .IsVideo}}<video class="{{classNames "nftg-media" .Rounding}}" preload="auto" controlslist="nodownload" autoplay loop muted playsinline><source src="{{.URL}}"{{with .MIMEType}} type="{{.}}"{{end}}>{{i18n "msg.video_fallback"}}</video>{{else}}<img class="{{classNames "nftg-media" .Rounding}}" src="{{.URL}}" alt="{{.Alt}}" loading="lazy">{{end}}{{end}}`
