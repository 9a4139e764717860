package gallery

import "strconv"

// LightboxState is either closed or open at one item index.
// The gallery container owns it; items only request transitions.
type LightboxState struct {
	open  bool
	index int
}

// Closed is the initial lightbox state.
var Closed = LightboxState{}

// OpenAt returns the state with the lightbox open at index.
func OpenAt(index int) LightboxState {
	if index < 0 {
		return Closed
	}
	return LightboxState{open: true, index: index}
}

// Index returns the open index, or -1 when closed.
func (s LightboxState) Index() int {
	if !s.open {
		return -1
	}
	return s.index
}

func (s LightboxState) IsOpen() bool { return s.open }

// IsOpenAt reports whether the lightbox for index is the open one.
func (s LightboxState) IsOpenAt(index int) bool {
	return s.open && s.index == index
}

func (s LightboxState) String() string {
	if !s.open {
		return "closed"
	}
	return "open(" + strconv.Itoa(s.index) + ")"
}

// LightboxEvent is a request to change the lightbox state.
type LightboxEvent struct {
	Open  bool
	Index int
}

// OpenLightbox requests the lightbox for index.
func OpenLightbox(index int) LightboxEvent {
	return LightboxEvent{Open: true, Index: index}
}

// CloseLightbox requests that any open lightbox be closed.
func CloseLightbox() LightboxEvent {
	return LightboxEvent{}
}

// Apply returns the state after ev. Opening a negative index closes.
func (s LightboxState) Apply(ev LightboxEvent) LightboxState {
	if !ev.Open {
		return Closed
	}
	return OpenAt(ev.Index)
}

// LightboxRequester receives lightbox events from items and lightboxes.
type LightboxRequester interface {
	RequestLightbox(ev LightboxEvent)
}

// RequesterFunc adapts a function to LightboxRequester.
type RequesterFunc func(ev LightboxEvent)

func (f RequesterFunc) RequestLightbox(ev LightboxEvent) { f(ev) }

// StateLinker builds page links that carry a lightbox state, for galleries
// rendered with the lightbox already open. The fragment links used otherwise
// cannot hide a lightbox the page itself holds open.
type StateLinker interface {
	LightboxHref(ev LightboxEvent) string
}

type noopRequester struct{}

func (noopRequester) RequestLightbox(LightboxEvent) {}

// Lightbox is the modal view of one asset.
type Lightbox struct {
	Index int
	Asset Asset
	Title string
	Media Media
	Open  bool
	// Count is the number of items in the gallery, used for prev/next.
	Count int

	requester LightboxRequester
	linker    StateLinker
}

// Pinned reports whether the page holds this lightbox open, independent of
// the fragment target. Only galleries with a StateLinker pin lightboxes.
func (l Lightbox) Pinned() bool {
	return l.Open && l.linker != nil
}

// ElementID is the fragment target the item anchor points at.
func (l Lightbox) ElementID() string {
	return "lightbox-" + strconv.Itoa(l.Index)
}

// CloseHref targets a fragment that matches nothing, which hides the :target
// lightbox. A pinned lightbox links to the page with the state cleared.
func (l Lightbox) CloseHref() string {
	if l.Pinned() {
		return l.linker.LightboxHref(CloseLightbox())
	}
	return "#_"
}

// PrevHref returns the previous lightbox link, or "" at the first item.
func (l Lightbox) PrevHref() string {
	if l.Index <= 0 {
		return ""
	}
	return l.showHref(l.Index - 1)
}

// NextHref returns the next lightbox link, or "" at the last item.
func (l Lightbox) NextHref() string {
	if l.Index+1 >= l.Count {
		return ""
	}
	return l.showHref(l.Index + 1)
}

func (l Lightbox) showHref(index int) string {
	if l.Pinned() {
		return l.linker.LightboxHref(OpenLightbox(index))
	}
	return "#lightbox-" + strconv.Itoa(index)
}

// Close requests the lightbox be closed.
func (l Lightbox) Close() {
	l.requester.RequestLightbox(CloseLightbox())
}

// Show requests the lightbox at next, e.g. when navigating.
func (l Lightbox) Show(next int) {
	l.requester.RequestLightbox(OpenLightbox(next))
}
