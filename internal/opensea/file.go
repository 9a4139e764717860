package opensea

import (
	"bytes"
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"nft-gallery/internal/gallery"
)

// FileSource serves assets from a JSON file holding either a single asset
// object or an {"assets": [...]} page. The owner argument is ignored.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) AssetsByOwner(ctx context.Context, owner string, offset, limit int) (*gallery.AssetPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading asset file %s", s.Path)
	}
	assets, err := DecodeAssets(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding asset file %s", s.Path)
	}

	offset, limit = clampPage(offset, limit)
	page := &gallery.AssetPage{Owner: owner, Offset: offset, Limit: limit}
	if offset < len(assets) {
		end := offset + limit
		if end > len(assets) {
			end = len(assets)
		}
		page.Assets = assets[offset:end]
	}
	return page, nil
}

// DecodeAssets accepts a single asset, an array of assets or an {"assets": [...]} page
func DecodeAssets(data []byte) ([]gallery.Asset, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty document")
	}

	if trimmed[0] == '[' {
		var assets []gallery.Asset
		if err := json.Unmarshal(trimmed, &assets); err != nil {
			return nil, err
		}
		return assets, nil
	}

	var probe struct {
		Assets json.RawMessage `json:"assets"`
	}
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, err
	}
	if probe.Assets != nil {
		var assets []gallery.Asset
		if err := json.Unmarshal(probe.Assets, &assets); err != nil {
			return nil, err
		}
		return assets, nil
	}

	var single gallery.Asset
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return nil, err
	}
	return []gallery.Asset{single}, nil
}
