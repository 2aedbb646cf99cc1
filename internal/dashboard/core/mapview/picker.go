package mapview

import "sync"

// Picker is a single draggable marker bound to a pair of coordinate fields.
// Drag and click report the new position through onMove; manual edits of the
// fields come back in through SetPosition.
type Picker struct {
	w      *Widget
	mu     sync.Mutex
	pos    LatLng
	onMove func(LatLng)
}

func NewPicker(at LatLng, onMove func(LatLng)) *Picker {
	p := &Picker{
		w:      NewWidget(Viewport{Center: at, Zoom: PickerZoom}),
		pos:    at,
		onMove: onMove,
	}
	p.redraw()
	moved := func(to LatLng) {
		p.mu.Lock()
		p.pos = to
		p.mu.Unlock()
		p.redraw()
		if p.onMove != nil {
			p.onMove(to)
		}
	}
	_ = p.w.On(EventDragEnd, moved)
	_ = p.w.On(EventClick, moved)
	return p
}

// Fire forwards a browser event (dragend or click).
func (p *Picker) Fire(event string, at LatLng) error {
	return p.w.Fire(event, at)
}

// SetPosition moves the marker and recenters without calling onMove.
func (p *Picker) SetPosition(at LatLng) error {
	p.mu.Lock()
	p.pos = at
	p.mu.Unlock()
	if err := p.w.SetViewport(Viewport{Center: at, Zoom: PickerZoom}); err != nil {
		return err
	}
	return p.redraw()
}

func (p *Picker) Position() LatLng {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos
}

func (p *Picker) View() (View, error) {
	return p.w.View()
}

func (p *Picker) Widget() *Widget {
	return p.w
}

func (p *Picker) Close() {
	p.w.Close()
}

func (p *Picker) redraw() error {
	l := emptyLayers()
	l.addMarker("picker", p.Position(), MarkerProps{
		Role:      RoleLocation,
		Color:     roleColors[RoleLocation],
		Label:     "📍",
		Draggable: true,
	})
	return p.w.SetLayers(l)
}
