package gallery

// Gallery is the container: it owns the assets, the display configuration
// and the lightbox state. Items request lightbox changes through it.
type Gallery struct {
	Owner    string
	Assets   []Asset
	Config   DisplayConfig
	Lightbox LightboxState

	// Linker, when set, makes an open lightbox render pinned with links
	// that change or clear the state through the page URL.
	Linker StateLinker
}

// New returns a gallery with the lightbox closed.
func New(owner string, assets []Asset, cfg DisplayConfig) *Gallery {
	return &Gallery{
		Owner:    owner,
		Assets:   assets,
		Config:   cfg,
		Lightbox: Closed,
	}
}

// RequestLightbox applies ev to the gallery's lightbox state.
func (g *Gallery) RequestLightbox(ev LightboxEvent) {
	next := g.Lightbox.Apply(ev)
	if next.IsOpen() && next.Index() >= len(g.Visible()) {
		next = Closed
	}
	g.Lightbox = next
}

// Visible returns the assets to render. In showcase mode only the assets
// listed in ShowcaseItemIDs are kept, in their original order.
func (g *Gallery) Visible() []Asset {
	if !g.Config.ShowcaseMode {
		return g.Assets
	}
	out := make([]Asset, 0, len(g.Config.ShowcaseItemIDs))
	for _, a := range g.Assets {
		id := a.ItemID()
		for _, want := range g.Config.ShowcaseItemIDs {
			if sameItemID(id, want) {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// Items builds one Item per visible asset.
func (g *Gallery) Items() []Item {
	visible := g.Visible()
	items := make([]Item, len(visible))
	for i, a := range visible {
		it := NewItem(a, i, g.Config, g)
		if it.Lightbox != nil {
			it.Lightbox.Count = len(visible)
			it.Lightbox.Open = g.Lightbox.IsOpenAt(i)
			it.Lightbox.linker = g.Linker
		}
		items[i] = it
	}
	return items
}

// Activate activates the visible item at index, as a click on its media
// would. Indices outside the visible items are ignored.
func (g *Gallery) Activate(index int) {
	items := g.Items()
	if index < 0 || index >= len(items) {
		return
	}
	items[index].Activate()
}

// Empty reports whether there is nothing to render.
func (g *Gallery) Empty() bool {
	return len(g.Visible()) == 0
}
