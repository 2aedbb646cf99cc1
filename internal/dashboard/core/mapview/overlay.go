package mapview

import (
	"cmp"
	"fmt"
	"slices"

	"shuttle-admin/internal/dashboard/core/domain/models"
)

type Role string

const (
	RoleOrigin       Role = "origin"
	RoleIntermediate Role = "intermediate"
	RoleDestination  Role = "destination"
	RoleLocation     Role = "location"
)

var roleColors = map[Role]string{
	RoleOrigin:       "green",
	RoleIntermediate: "blue",
	RoleDestination:  "red",
	RoleLocation:     "#3b82f6",
}

const (
	DefaultZoom    = 11
	SingleZoom     = 15
	PickerZoom     = 13
	FitPadding     = 50
	LineColor      = "#3b82f6"
	LineWeight     = 4
	LineOpacity    = 0.7
	FocusedWeight  = 6
	FocusedOpacity = 0.9
)

// LineStyle is the stroke of a route polyline.
type LineStyle struct {
	Color   string
	Weight  int
	Opacity float64
}

var DefaultLineStyle = LineStyle{Color: LineColor, Weight: LineWeight, Opacity: LineOpacity}

// SortStops returns a copy ordered by sequence number.
func SortStops(stops []models.RouteStop) []models.RouteStop {
	out := slices.Clone(stops)
	slices.SortStableFunc(out, func(a, b models.RouteStop) int {
		return cmp.Compare(a.SequenceNumber, b.SequenceNumber)
	})
	return out
}

// RoleAt is the marker role of the i-th of n ordered stops. A lone stop is the origin.
func RoleAt(i, n int) Role {
	switch {
	case i == 0:
		return RoleOrigin
	case i == n-1:
		return RoleDestination
	default:
		return RoleIntermediate
	}
}

// RouteLayers draws one route: a marker per stop plus a polyline when there
// are at least two stops.
func RouteLayers(routeID string, stops []models.RouteStop, style LineStyle) Layers {
	l := emptyLayers()
	appendRoute(&l, routeID, "", stops, style)
	return l
}

func appendRoute(l *Layers, routeID, name string, stops []models.RouteStop, style LineStyle) {
	ordered := SortStops(stops)
	line := make([][2]float64, 0, len(ordered))
	for i, s := range ordered {
		at := LatLng{Lat: s.Latitude, Lng: s.Longitude}
		role := RoleAt(i, len(ordered))
		l.addMarker(s.ID, at, MarkerProps{
			Role:    role,
			Color:   roleColors[role],
			Label:   fmt.Sprint(s.SequenceNumber),
			Popup:   stopPopup(s),
			RouteID: routeID,
		})
		line = append(line, at.coords())
	}
	if len(line) > 1 {
		l.addLine(LineFeature{
			ID: routeID,
			Properties: LineFeatureProps{
				RouteID: routeID,
				Name:    name,
				Color:   style.Color,
				Weight:  style.Weight,
				Opacity: style.Opacity,
			},
			Geometry: LineStringGeometry{Coordinates: line},
		})
	}
}

func stopPopup(s models.RouteStop) string {
	return fmt.Sprintf("Durak %d: %s, %s, %s (Sabah %s / Akşam %s)",
		s.SequenceNumber, s.Address, s.District, s.City,
		s.EstimatedArrivalTimeMorning.Display(), s.EstimatedArrivalTimeEvening.Display())
}

// FitStops frames the stops: bounds with padding for many, zoom 15 on a
// single stop, def at zoom 11 for none.
func FitStops(stops []models.RouteStop, def LatLng) Viewport {
	points := make([]LatLng, 0, len(stops))
	for _, s := range stops {
		points = append(points, LatLng{Lat: s.Latitude, Lng: s.Longitude})
	}
	return Fit(points, def)
}

func Fit(points []LatLng, def LatLng) Viewport {
	switch len(points) {
	case 0:
		return Viewport{Center: def, Zoom: DefaultZoom}
	case 1:
		return Viewport{Center: points[0], Zoom: SingleZoom}
	}
	minLat, maxLat := points[0].Lat, points[0].Lat
	minLng, maxLng := points[0].Lng, points[0].Lng
	for _, p := range points[1:] {
		minLat = min(minLat, p.Lat)
		maxLat = max(maxLat, p.Lat)
		minLng = min(minLng, p.Lng)
		maxLng = max(maxLng, p.Lng)
	}
	return Viewport{
		Center:  LatLng{Lat: (minLat + maxLat) / 2, Lng: (minLng + maxLng) / 2},
		Zoom:    DefaultZoom,
		Bounds:  [][2]float64{{minLng, minLat}, {maxLng, maxLat}},
		Padding: &Padding{Top: FitPadding, Right: FitPadding, Bottom: FitPadding, Left: FitPadding},
	}
}

// RouteMap opens a widget showing one route.
func RouteMap(routeID string, stops []models.RouteStop, def LatLng) *Widget {
	w := NewWidget(FitStops(stops, def))
	_ = w.SetLayers(RouteLayers(routeID, stops, DefaultLineStyle))
	return w
}

// PointMap opens a widget with one marker at zoom 15.
func PointMap(id, label, popup string, at LatLng) *Widget {
	w := NewWidget(Viewport{Center: at, Zoom: SingleZoom})
	l := emptyLayers()
	l.addMarker(id, at, MarkerProps{Role: RoleLocation, Color: roleColors[RoleLocation], Label: label, Popup: popup})
	_ = w.SetLayers(l)
	return w
}
