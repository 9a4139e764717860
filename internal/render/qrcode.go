package render

import (
	"encoding/base64"
	"html/template"
	"log/slog"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

// QRMode controls how lightboxes show the permalink QR code.
type QRMode int

const (
	QROff QRMode = iota
	// QRLink points at the server's QR endpoint.
	QRLink
	// QRInline embeds the PNG as a data URL, for static export.
	QRInline
)

// QRSize is the edge length of generated QR codes in pixels.
const QRSize = 256

// Options configure a Renderer.
type Options struct {
	QRMode QRMode
	// QRPath is the endpoint used in QRLink mode.
	QRPath string
}

func (o Options) withDefaults() Options {
	if o.QRPath == "" {
		o.QRPath = "/qr"
	}
	return o
}

// QRCodePNG encodes content as a PNG QR code.
func QRCodePNG(content string) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, QRSize)
}

// AllowedQRTarget reports whether u may be encoded: https links on opensea.io only.
func AllowedQRTarget(u string) bool {
	parsed, err := url.Parse(u)
	if err != nil || parsed.Scheme != "https" || parsed.User != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	return host == "opensea.io" || strings.HasSuffix(host, ".opensea.io")
}

func (r *Renderer) qrSrc(permalink string) template.URL {
	if r.opts.QRMode == QROff || !AllowedQRTarget(permalink) {
		return ""
	}
	if r.opts.QRMode == QRLink {
		return template.URL(r.opts.QRPath + "?url=" + url.QueryEscape(permalink))
	}

	png, err := QRCodePNG(permalink)
	if err != nil {
		slog.Error("failed to generate QR code", "error", err)
		return ""
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
}
