package mapview

import (
	"slices"
	"sync"

	"shuttle-admin/internal/dashboard/core/myerrors"
)

const (
	EventClick   = "click"
	EventDragEnd = "dragend"
)

// View is a serializable snapshot of a widget.
type View struct {
	Viewport    Viewport `json:"viewport"`
	Layers      Layers   `json:"layers"`
	TileURL     string   `json:"tile_url"`
	Attribution string   `json:"attribution"`
	MaxZoom     int      `json:"max_zoom"`
}

// Widget is a map instance bound to one modal or screen. Once closed it
// drops its listeners and layers and rejects further use.
type Widget struct {
	mu        sync.Mutex
	closed    bool
	viewport  Viewport
	layers    Layers
	listeners map[string][]func(LatLng)
}

func NewWidget(vp Viewport) *Widget {
	return &Widget{
		viewport:  vp,
		layers:    emptyLayers(),
		listeners: make(map[string][]func(LatLng)),
	}
}

func (w *Widget) On(event string, fn func(LatLng)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return myerrors.ErrWidgetClosed
	}
	w.listeners[event] = append(w.listeners[event], fn)
	return nil
}

// Fire runs the listeners of event. Listeners run without the widget lock
// held so they may redraw.
func (w *Widget) Fire(event string, at LatLng) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return myerrors.ErrWidgetClosed
	}
	fns := slices.Clone(w.listeners[event])
	w.mu.Unlock()

	for _, fn := range fns {
		fn(at)
	}
	return nil
}

func (w *Widget) SetLayers(l Layers) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return myerrors.ErrWidgetClosed
	}
	w.layers = l
	return nil
}

func (w *Widget) SetViewport(vp Viewport) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return myerrors.ErrWidgetClosed
	}
	w.viewport = vp
	return nil
}

func (w *Widget) View() (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return View{}, myerrors.ErrWidgetClosed
	}
	return View{
		Viewport:    w.viewport,
		Layers:      w.layers,
		TileURL:     TileURL,
		Attribution: TileAttribution,
		MaxZoom:     TileMaxZoom,
	}, nil
}

// Close is idempotent.
func (w *Widget) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	w.listeners = nil
	w.layers = emptyLayers()
}

func (w *Widget) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

func (w *Widget) ListenerCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for _, fns := range w.listeners {
		n += len(fns)
	}
	return n
}
