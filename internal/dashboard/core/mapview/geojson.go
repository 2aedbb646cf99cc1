package mapview

// TileURL is the raster tile template the browser map loads.
const (
	TileURL         = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	TileAttribution = "© OpenStreetMap contributors"
	TileMaxZoom     = 19
)

// LatLng is a WGS84 position.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// coords returns the GeoJSON [lng, lat] order.
func (p LatLng) coords() [2]float64 {
	return [2]float64{p.Lng, p.Lat}
}

// LineFeatureCollection is a GeoJSON FeatureCollection of polylines
type LineFeatureCollection struct {
	Type     string        `json:"type"`
	Features []LineFeature `json:"features"`
}

// LineFeature represents a GeoJSON Feature for a drawn route
type LineFeature struct {
	Type       string             `json:"type"`
	ID         string             `json:"id"`
	Properties LineFeatureProps   `json:"properties"`
	Geometry   LineStringGeometry `json:"geometry"`
}

// LineFeatureProps carries the polyline style
type LineFeatureProps struct {
	RouteID string  `json:"route_id"`
	Name    string  `json:"name,omitempty"`
	Color   string  `json:"color"`
	Weight  int     `json:"weight"`
	Opacity float64 `json:"opacity"`
}

// LineStringGeometry represents LineString geometry
type LineStringGeometry struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

// MarkerFeatureCollection is a GeoJSON FeatureCollection for markers
type MarkerFeatureCollection struct {
	Type     string          `json:"type"`
	Features []MarkerFeature `json:"features"`
}

// MarkerFeature represents a marker GeoJSON feature
type MarkerFeature struct {
	Type       string        `json:"type"`
	ID         string        `json:"id"`
	Properties MarkerProps   `json:"properties"`
	Geometry   PointGeometry `json:"geometry"`
}

// MarkerProps contains marker properties
type MarkerProps struct {
	Role      Role   `json:"role"`
	Color     string `json:"color"`
	Label     string `json:"label"`
	Popup     string `json:"popup,omitempty"`
	Draggable bool   `json:"draggable,omitempty"`
	RouteID   string `json:"route_id,omitempty"`
}

// PointGeometry represents Point geometry
type PointGeometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// Layers is everything drawn on a widget.
type Layers struct {
	Lines   LineFeatureCollection   `json:"lines"`
	Markers MarkerFeatureCollection `json:"markers"`
}

func emptyLayers() Layers {
	return Layers{
		Lines:   LineFeatureCollection{Type: "FeatureCollection", Features: []LineFeature{}},
		Markers: MarkerFeatureCollection{Type: "FeatureCollection", Features: []MarkerFeature{}},
	}
}

func (l *Layers) addLine(f LineFeature) {
	f.Type = "Feature"
	f.Geometry.Type = "LineString"
	l.Lines.Features = append(l.Lines.Features, f)
}

func (l *Layers) addMarker(id string, at LatLng, props MarkerProps) {
	l.Markers.Features = append(l.Markers.Features, MarkerFeature{
		Type:       "Feature",
		ID:         id,
		Properties: props,
		Geometry:   PointGeometry{Type: "Point", Coordinates: at.coords()},
	})
}

// Padding contains padding values in pixels
type Padding struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// Viewport is either a center and zoom or bounds to fit with padding.
type Viewport struct {
	Center  LatLng       `json:"center"`
	Zoom    float64      `json:"zoom"`
	Bounds  [][2]float64 `json:"bounds,omitempty"`
	Padding *Padding     `json:"padding,omitempty"`
}
