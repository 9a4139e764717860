package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const assetsJSON = `{"assets": [
  {"token_id": "1", "name": "First",
   "asset_contract": {"address": "0x06012c8cf97bead5deae237070f9587f8e7a266d"},
   "image_preview_url": "https://img.example/1.png",
   "permalink": "https://opensea.io/assets/ethereum/0x06012c8cf97bead5deae237070f9587f8e7a266d/1",
   "collection": {"name": "CryptoKitties", "slug": "cryptokitties"}},
  {"token_id": "2",
   "asset_contract": {"address": "0x06012c8cf97bead5deae237070f9587f8e7a266d"},
   "image_preview_url": "https://img.example/2.mp4",
   "permalink": "https://opensea.io/assets/ethereum/0x06012c8cf97bead5deae237070f9587f8e7a266d/2",
   "collection": {"name": "CryptoKitties", "slug": "cryptokitties"}}
]}`

func writeAssets(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "assets.json")
	require.NoError(t, os.WriteFile(path, []byte(assetsJSON), 0o644))
	return dir, path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExportPageToFile(t *testing.T) {
	dir, assets := writeAssets(t)
	outPath := filepath.Join(dir, "gallery.html")

	out, err := execute(t, "--file", assets, "--out", outPath, "--config", filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 2 items")

	html, err := os.ReadFile(outPath)
	require.NoError(t, err)
	page := string(html)
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "First")
	assert.Contains(t, page, "0x0601…266d #2")
	assert.Contains(t, page, `<video`)
	assert.Contains(t, page, "data:image/png;base64,", "QR codes are inlined")
}

func TestExportFragmentToStdout(t *testing.T) {
	dir, assets := writeAssets(t)

	out, err := execute(t, "--file", assets, "--out", "-", "--fragment", "--no-metadata", "--no-lightbox", "--dark",
		"--config", filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, out, "<html")
	assert.Contains(t, out, "nftg--dark")
	assert.NotContains(t, out, "nftg-item__meta")
	assert.NotContains(t, out, "nftg-lightbox")
	assert.Contains(t, out, `class="nftg-media rounded"`)
}

func TestExportLightboxesOpenByFragment(t *testing.T) {
	dir, assets := writeAssets(t)

	out, err := execute(t, "--file", assets, "--out", "-", "--fragment",
		"--config", filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, out, "nftg-lightbox--open")
	assert.Contains(t, out, `href="#lightbox-1"`)
	assert.Contains(t, out, `href="#_"`)

	_, err = execute(t, "--file", assets, "--out", "-", "--open", "1")
	assert.Error(t, err, "unknown flag")
}

func TestExportRequiresSource(t *testing.T) {
	_, err := execute(t, "--out", "-")
	assert.Error(t, err)
}

func TestExportRejectsInvalidOwner(t *testing.T) {
	_, err := execute(t, "--owner", "not an owner", "--out", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid owner")
}
