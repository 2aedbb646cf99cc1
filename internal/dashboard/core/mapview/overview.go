package mapview

import (
	"shuttle-admin/internal/dashboard/core/domain/models"
	"shuttle-admin/internal/dashboard/core/myerrors"
)

// Palette is cycled over the drawable routes in order.
var Palette = []string{
	"#3b82f6",
	"#ef4444",
	"#10b981",
	"#f59e0b",
	"#8b5cf6",
	"#ec4899",
	"#14b8a6",
	"#f97316",
}

// RouteLine is one route on the overview map.
type RouteLine struct {
	RouteID string             `json:"route_id"`
	Name    string             `json:"name"`
	Color   string             `json:"color"`
	Stops   []models.RouteStop `json:"-"`
}

// Overview draws many routes at once. Toggling a route isolates it,
// toggling it again brings the others back.
type Overview struct {
	w       *Widget
	def     LatLng
	lines   []RouteLine
	focused string
}

// NewOverview keeps only routes with two or more stops.
func NewOverview(routes []models.Route, stops map[string][]models.RouteStop, def LatLng) *Overview {
	o := &Overview{def: def}
	for _, r := range routes {
		rs := stops[r.ID]
		if len(rs) < 2 {
			continue
		}
		o.lines = append(o.lines, RouteLine{
			RouteID: r.ID,
			Name:    r.Name,
			Color:   Palette[len(o.lines)%len(Palette)],
			Stops:   SortStops(rs),
		})
	}
	o.w = NewWidget(Viewport{Center: def, Zoom: DefaultZoom})
	o.draw()
	return o
}

func (o *Overview) Lines() []RouteLine {
	return o.lines
}

func (o *Overview) Focused() string {
	return o.focused
}

func (o *Overview) Toggle(routeID string) error {
	if o.w.Closed() {
		return myerrors.ErrWidgetClosed
	}
	found := false
	for _, l := range o.lines {
		if l.RouteID == routeID {
			found = true
			break
		}
	}
	if !found {
		return myerrors.ErrNotFound
	}
	if o.focused == routeID {
		o.focused = ""
	} else {
		o.focused = routeID
	}
	return o.draw()
}

func (o *Overview) View() (View, error) {
	return o.w.View()
}

func (o *Overview) Widget() *Widget {
	return o.w
}

func (o *Overview) Close() {
	o.w.Close()
}

func (o *Overview) draw() error {
	l := emptyLayers()
	var shown []models.RouteStop
	for _, line := range o.lines {
		style := LineStyle{Color: line.Color, Weight: LineWeight, Opacity: LineOpacity}
		if o.focused != "" {
			if line.RouteID != o.focused {
				continue
			}
			style.Weight, style.Opacity = FocusedWeight, FocusedOpacity
		}
		appendRoute(&l, line.RouteID, line.Name, line.Stops, style)
		shown = append(shown, line.Stops...)
	}
	if err := o.w.SetLayers(l); err != nil {
		return err
	}
	return o.w.SetViewport(FitStops(shown, o.def))
}
