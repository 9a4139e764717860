package gallery

import (
	"context"
	"strings"
)

// Asset is one collectible as returned by the asset source.
// Rendering code treats it as read-only.
type Asset struct {
	TokenID         string     `json:"token_id"`
	AssetContract   Contract   `json:"asset_contract"`
	Name            string     `json:"name,omitempty"`
	Description     string     `json:"description,omitempty"`
	ImagePreviewURL string     `json:"image_preview_url,omitempty"`
	ImageURL        string     `json:"image_url,omitempty"`
	Permalink       string     `json:"permalink"`
	Collection      Collection `json:"collection"`
}

// Contract identifies the token contract.
type Contract struct {
	Address string `json:"address"`
}

// Collection is the collection an asset belongs to.
type Collection struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ImageURL string `json:"image_url,omitempty"`
}

// ItemID returns "{contract address}/{token id}", the id used by showcase mode.
func (a Asset) ItemID() string {
	return a.AssetContract.Address + "/" + a.TokenID
}

// FullMediaURL returns the full size media URL, falling back to the preview.
func (a Asset) FullMediaURL() string {
	if a.ImageURL != "" {
		return a.ImageURL
	}
	return a.ImagePreviewURL
}

// AssetPage is one page of assets for an owner.
type AssetPage struct {
	Owner  string  `json:"owner"`
	Offset int     `json:"offset"`
	Limit  int     `json:"limit"`
	Assets []Asset `json:"assets"`
}

// HasMore reports whether a further page may exist.
func (p *AssetPage) HasMore() bool {
	return p.Limit > 0 && len(p.Assets) >= p.Limit
}

// AssetSource fetches asset pages. Implementations live outside this package.
type AssetSource interface {
	AssetsByOwner(ctx context.Context, owner string, offset, limit int) (*AssetPage, error)
}

func sameItemID(a, b string) bool {
	ai := strings.LastIndex(a, "/")
	bi := strings.LastIndex(b, "/")
	if ai < 0 || bi < 0 {
		return a == b
	}
	return strings.EqualFold(a[:ai], b[:bi]) && a[ai+1:] == b[bi+1:]
}
