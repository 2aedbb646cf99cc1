package feature

import (
	"cmp"
	"context"
	"fmt"
	"strconv"

	"shuttle-admin/internal/dashboard/core/domain/dto"
	"shuttle-admin/internal/dashboard/core/domain/models"
	"shuttle-admin/internal/dashboard/core/mapview"
)

const (
	ModuleStops = "stops"

	FilterRoute = "route"
)

func StopsSpec(s *Services) Spec[models.RouteStop] {
	return Spec[models.RouteStop]{
		Name:      ModuleStops,
		Title:     "Duraklar",
		Messages:  NewMessages("Durak", "Duraklar"),
		Service:   s.RouteStops,
		Deletable: true,
		Fields: []Field{
			{Name: "routeId", Rules: []Rule{Required()}},
			{Name: "sequenceNumber", Rules: []Rule{Required(), Numeric(), Integer(), Min(1, "En az 1 olmalıdır")}},
			{Name: "city", Rules: []Rule{Required()}},
			{Name: "district", Rules: []Rule{Required()}},
			{Name: "address", Rules: []Rule{Required()}},
			{Name: "latitude", Rules: []Rule{Required(), Numeric()}},
			{Name: "longitude", Rules: []Rule{Required(), Numeric()}},
			{Name: "estimatedArrivalTimeMorning", Rules: []Rule{Required()}},
			{Name: "estimatedArrivalTimeEvening", Rules: []Rule{Required()}},
		},
		Lookups: []Lookup{
			listLookup(LookupRoutes, s.Routes.GetAll, routeOption),
		},
		Filters: []Filter[models.RouteStop]{
			{Name: FilterRoute, Match: func(st models.RouteStop, v string) bool { return st.RouteID == v }},
		},
		Picker: &Picker{Lat: "latitude", Lng: "longitude"},
		Sort: func(a, b models.RouteStop) int {
			return cmp.Or(cmp.Compare(a.RouteID, b.RouteID), bySequence(a, b))
		},
		Prefill: func(st models.RouteStop) map[string]string {
			return map[string]string{
				"routeId":                     st.RouteID,
				"sequenceNumber":              strconv.Itoa(st.SequenceNumber),
				"city":                        st.City,
				"district":                    st.District,
				"address":                     st.Address,
				"latitude":                    formatCoord(st.Latitude),
				"longitude":                   formatCoord(st.Longitude),
				"estimatedArrivalTimeMorning": st.EstimatedArrivalTimeMorning.Input(),
				"estimatedArrivalTimeEvening": st.EstimatedArrivalTimeEvening.Input(),
			}
		},
		Payload: func(f *Form, id string) (any, error) {
			seq, err := f.Int("sequenceNumber")
			if err != nil {
				return nil, err
			}
			lat, err := f.Float("latitude")
			if err != nil {
				return nil, err
			}
			lng, err := f.Float("longitude")
			if err != nil {
				return nil, err
			}
			morning, err := f.Time("estimatedArrivalTimeMorning")
			if err != nil {
				return nil, err
			}
			evening, err := f.Time("estimatedArrivalTimeEvening")
			if err != nil {
				return nil, err
			}
			return dto.RouteStopPayload{
				ID:                          id,
				SequenceNumber:              seq,
				City:                        f.Trimmed("city"),
				District:                    f.Trimmed("district"),
				Address:                     f.Trimmed("address"),
				Latitude:                    lat,
				Longitude:                   lng,
				EstimatedArrivalTimeMorning: morning,
				EstimatedArrivalTimeEvening: evening,
				RouteID:                     f.Value("routeId"),
			}, nil
		},
		Display: func(st models.RouteStop, lk Lookups) map[string]string {
			return map[string]string{
				"route":          lk.Label(LookupRoutes, st.RouteID),
				"sequenceNumber": strconv.Itoa(st.SequenceNumber),
				"city":           st.City,
				"district":       st.District,
				"address":        st.Address,
				"morning":        st.EstimatedArrivalTimeMorning.Display(),
				"evening":        st.EstimatedArrivalTimeEvening.Display(),
			}
		},
		Label: func(st models.RouteStop) string { return stopLabel(st.SequenceNumber, st.Address) },
		Detail: func(_ context.Context, st models.RouteStop, lk Lookups) (*mapview.Widget, error) {
			popup := fmt.Sprintf("%s: %s, %s, %s", lk.Label(LookupRoutes, st.RouteID), st.Address, st.District, st.City)
			at := mapview.LatLng{Lat: st.Latitude, Lng: st.Longitude}
			return mapview.PointMap(st.ID, strconv.Itoa(st.SequenceNumber), popup, at), nil
		},
	}
}
