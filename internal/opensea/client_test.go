package opensea

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const owner = "0x06012c8cf97bead5deae237070f9587f8e7a266d"

const assetsJSON = `{"assets":[
 {"token_id":"1","asset_contract":{"address":"0xabc"},"name":null,
  "image_preview_url":"https://cdn/x.mp4","permalink":"https://os/item/1",
  "collection":{"name":"Cats","slug":"cats","image_url":null}},
 {"token_id":"2","asset_contract":{"address":"0xabc"},"name":"Two",
  "image_preview_url":"https://cdn/two.png","permalink":"https://os/item/2",
  "collection":{"name":"Cats","slug":"cats","image_url":"https://cdn/cats.png"}}
]}`

func TestAssetsByOwner(t *testing.T) {
	var gotQuery, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/assets", r.URL.Path)
		gotQuery = r.URL.RawQuery
		gotKey = r.Header.Get("X-API-KEY")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(assetsJSON))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL+"/"), WithAPIKey("secret"))
	page, err := c.AssetsByOwner(context.Background(), owner, 20, 10)
	require.NoError(t, err)

	assert.Equal(t, "limit=10&offset=20&order_direction=desc&owner="+owner, gotQuery)
	assert.Equal(t, "secret", gotKey)
	require.Len(t, page.Assets, 2)
	assert.Equal(t, "", page.Assets[0].Name)
	assert.Equal(t, "", page.Assets[0].Collection.ImageURL)
	assert.Equal(t, "https://cdn/cats.png", page.Assets[1].Collection.ImageURL)
	assert.Equal(t, 20, page.Offset)
	assert.Equal(t, 10, page.Limit)
}

func TestAssetsByOwnerClampsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "0", r.URL.Query().Get("offset"))
		assert.Empty(t, r.Header.Get("X-API-KEY"))
		w.Write([]byte(`{"assets":[]}`))
	}))
	defer srv.Close()

	page, err := NewClient(WithBaseURL(srv.URL)).AssetsByOwner(context.Background(), "vitalik.eth", -5, 500)
	require.NoError(t, err)
	assert.Empty(t, page.Assets)
}

func TestAssetsByOwnerStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(WithBaseURL(srv.URL)).AssetsByOwner(context.Background(), owner, 0, 10)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
	assert.Contains(t, se.Body, "slow down")
}

func TestAssetsByOwnerBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"assets":`))
	}))
	defer srv.Close()

	_, err := NewClient(WithBaseURL(srv.URL)).AssetsByOwner(context.Background(), owner, 0, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding assets")
}

func TestAssetsByOwnerInvalidOwner(t *testing.T) {
	_, err := NewClient().AssetsByOwner(context.Background(), "not an owner", 0, 10)
	assert.ErrorIs(t, err, ErrInvalidOwner)
}

func TestValidOwner(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{owner, true},
		{"0x06012C8CF97BEAD5DEAE237070F9587F8E7A266D", true},
		{"06012c8cf97bead5deae237070f9587f8e7a266d", false},
		{"vitalik.eth", true},
		{"sub.vitalik.eth", true},
		{".eth", false},
		{"vitalik..eth", false},
		{"vitalik.com", false},
		{"<script>.eth", false},
		{"0x123", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidOwner(tt.in), tt.in)
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "assets.json")
	require.NoError(t, os.WriteFile(path, []byte(assetsJSON), 0o644))

	page, err := NewFileSource(path).AssetsByOwner(context.Background(), "anyone", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Assets, 1)
	assert.Equal(t, "Two", page.Assets[0].Name)

	page, err = NewFileSource(path).AssetsByOwner(context.Background(), "anyone", 5, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Assets)

	_, err = NewFileSource(filepath.Join(dir, "missing.json")).AssetsByOwner(context.Background(), "", 0, 10)
	assert.Error(t, err)
}

func TestDecodeAssets(t *testing.T) {
	single, err := DecodeAssets([]byte(`{"token_id":"9","name":"Solo","permalink":"p","collection":{"name":"c","slug":"c"}}`))
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Equal(t, "Solo", single[0].Name)

	list, err := DecodeAssets([]byte(` [{"token_id":"1"},{"token_id":"2"}]`))
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = DecodeAssets([]byte("  "))
	assert.Error(t, err)
}
