// Command gallery-export renders an owner's NFT gallery to a static HTML file,
// ready to drop into a static site.
//
//	gallery-export --owner 0xabc... --out gallery.html
//	gallery-export --file assets.json --fragment --dark --out -
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"nft-gallery/internal/config"
	"nft-gallery/internal/gallery"
	"nft-gallery/internal/opensea"
	"nft-gallery/internal/render"
)

type exportOptions struct {
	owner      string
	file       string
	out        string
	configPath string
	apiKey     string
	offset     int

	fragment   bool
	noMetadata bool
	noLightbox bool
	noLinks    bool
	dark       bool
	inline     bool
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "gallery-export",
		Short: "Render an NFT gallery to static HTML",
		Long: `Fetches the collectibles held by an address (or reads them from a JSON
file) and writes the gallery as a full HTML page or as an embeddable fragment.
The lightbox works without scripts and QR codes are inlined as data URLs.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.owner, "owner", "", "owner address or ENS name")
	f.StringVar(&opts.file, "file", "", "read assets from a JSON file instead of OpenSea")
	f.StringVarP(&opts.out, "out", "o", "gallery.html", "output file, - for stdout")
	f.StringVar(&opts.configPath, "config", config.GalleryConfigPath(), "gallery config file")
	f.StringVar(&opts.apiKey, "api-key", os.Getenv("OPENSEA_API_KEY"), "OpenSea API key")
	f.IntVar(&opts.offset, "offset", 0, "first asset to include")
	f.BoolVar(&opts.fragment, "fragment", false, "write the gallery markup only")
	f.BoolVar(&opts.noMetadata, "no-metadata", false, "hide titles and collections")
	f.BoolVar(&opts.noLightbox, "no-lightbox", false, "disable the lightbox")
	f.BoolVar(&opts.noLinks, "no-links", false, "disable external links")
	f.BoolVar(&opts.dark, "dark", false, "dark mode")
	f.BoolVar(&opts.inline, "inline", false, "inline layout")
	cmd.MarkFlagsOneRequired("owner", "file")

	return cmd
}

// flags turns the command line switches into display overrides. Switches
// left off keep the configured value.
func (o *exportOptions) flags() gallery.Flags {
	off := func(set bool) *bool {
		if !set {
			return nil
		}
		v := false
		return &v
	}
	on := func(set bool) *bool {
		if !set {
			return nil
		}
		v := true
		return &v
	}
	return gallery.Flags{
		MetadataIsVisible: off(o.noMetadata),
		HasLightbox:       off(o.noLightbox),
		HasExternalLinks:  off(o.noLinks),
		DarkMode:          on(o.dark),
		IsInline:          on(o.inline),
	}
}

func runExport(ctx context.Context, opts *exportOptions, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.LoadGalleryConfig(opts.configPath)

	var source gallery.AssetSource
	owner := opts.owner
	switch {
	case opts.file != "":
		source = opensea.NewFileSource(opts.file)
		if owner == "" {
			owner = strings.TrimSuffix(filepath.Base(opts.file), filepath.Ext(opts.file))
		}
	case opensea.ValidOwner(owner):
		source = opensea.NewClient(
			opensea.WithBaseURL(cfg.OpenSeaURL),
			opensea.WithAPIKey(opts.apiKey),
			opensea.WithTimeout(cfg.FetchTimeout),
		)
	default:
		return fmt.Errorf("invalid owner %q: %w", owner, opensea.ErrInvalidOwner)
	}

	page, err := source.AssetsByOwner(ctx, owner, opts.offset, cfg.PageSize)
	if err != nil {
		return fmt.Errorf("loading assets: %w", err)
	}

	// static pages have no server to pin a lightbox, they open by fragment
	g := gallery.New(owner, page.Assets, cfg.Display.WithFlags(opts.flags()))

	r, err := render.New(render.Options{QRMode: render.QRInline})
	if err != nil {
		return err
	}

	data := render.PageData{
		Title:             gallery.ShortAddress(owner),
		Site:              config.GetSiteConfig(),
		Gallery:           render.GalleryView{Gallery: g},
		IncludeStylesheet: true,
	}
	var buf bytes.Buffer
	if opts.fragment {
		err = r.Fragment(&buf, data)
	} else {
		err = r.Page(&buf, data)
	}
	if err != nil {
		return fmt.Errorf("rendering gallery: %w", err)
	}

	if opts.out == "-" {
		_, err = stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(opts.out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", opts.out, err)
	}
	fmt.Fprintf(stdout, "wrote %d items to %s\n", len(g.Visible()), opts.out)
	return nil
}
