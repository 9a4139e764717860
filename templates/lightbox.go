package templates

// Lightbox is a :target modal, so it opens and closes without scripts.
// A pinned lightbox is shown by class instead and its links reload the page.
// Data is gallery.Lightbox.
var Lightbox = `{{define "gallery-lightbox"}}
<div class="{{classNames "nftg-lightbox" (when .Pinned "nftg-lightbox--open")}}" id="{{.ElementID}}" role="dialog" aria-modal="true" aria-label="{{.Title}}">
  <a class="nftg-lightbox__backdrop" href="{{.CloseHref}}" aria-label="{{i18n "lightbox.close"}}"></a>
  <div class="nftg-lightbox__content">
    <div class="nftg-lightbox__media">{{template "gallery-media" .Media}}</div>
    <div class="nftg-lightbox__details">
      <h2 class="nftg-lightbox__title">{{.Title}}</h2>
      {{with .Asset.Description}}<div class="nftg-lightbox__description">{{markdown .}}</div>{{end}}
      {{with .Asset.Permalink}}<a class="nftg-link" href="{{.}}" target="_blank" rel="noopener noreferrer">{{i18n "lightbox.view"}}</a>{{end}}
      {{with qrSrc .Asset.Permalink}}<figure class="nftg-lightbox__qr"><img src="{{.}}" alt="{{i18n "lightbox.scan"}}" width="128" height="128" loading="lazy"><figcaption>{{i18n "lightbox.scan"}}</figcaption></figure>{{end}}
    </div>
    <nav class="nftg-lightbox__nav">
      {{with .PrevHref}}<a href="{{.}}" class="nftg-lightbox__prev">{{i18n "lightbox.previous"}}</a>{{end}}
      <a href="{{.CloseHref}}" class="nftg-lightbox__close">{{i18n "lightbox.close"}}</a>
      {{with .NextHref}}<a href="{{.}}" class="nftg-lightbox__next">{{i18n "lightbox.next"}}</a>{{end}}
    </nav>
  </div>
</div>
{{end}}`
