package feature

import (
	"context"
	"strconv"

	"shuttle-admin/internal/dashboard/core/domain/dto"
	"shuttle-admin/internal/dashboard/core/domain/models"
)

const (
	ModuleTrips = "trips"

	FilterUser     = "user"
	FilterTripType = "tripType"

	LookupTripStops = "tripStops"
)

// TripsSpec loads the stop choices of the selected route on demand: picking
// a route clears the chosen stop.
func TripsSpec(s *Services, env Env) Spec[models.Trip] {
	return Spec[models.Trip]{
		Name:      ModuleTrips,
		Title:     "Seferler",
		Messages:  NewMessages("Sefer", "Seferler"),
		Service:   s.Trips,
		Deletable: true,
		Fields: []Field{
			{Name: "appUserId", Rules: []Rule{Required()}},
			{Name: "routeId", Rules: []Rule{Required()}},
			{Name: "routeStopId", Rules: []Rule{Required()}},
			{Name: "tripType", Rules: []Rule{Required(), tripTypeRule()}},
			{Name: "validFrom", Rules: []Rule{Required()}},
			{Name: "validUntil", Rules: []Rule{Required()}},
		},
		Lookups: []Lookup{
			listLookup(LookupUsers, s.Users.GetAll, userOption),
			listLookup(LookupRoutes, s.Routes.GetAll, routeOption),
		},
		Cascades: []Cascade{{
			Field:  "routeId",
			Target: "routeStopId",
			Lookup: LookupTripStops,
			Load: func(ctx context.Context, routeID string) ([]Option, error) {
				stops, err := stopsOf(ctx, s.RouteStops, routeID)
				if err != nil {
					return nil, err
				}
				out := make([]Option, 0, len(stops))
				for _, st := range stops {
					out = append(out, stopOption(st))
				}
				return out, nil
			},
		}},
		Filters: []Filter[models.Trip]{
			{Name: FilterRoute, Match: func(t models.Trip, v string) bool { return t.RouteID == v }},
			{Name: FilterUser, Match: func(t models.Trip, v string) bool { return t.AppUserID == v }},
			{Name: FilterTripType, Match: func(t models.Trip, v string) bool { return strconv.Itoa(int(t.TripType)) == v }},
		},
		Prefill: func(t models.Trip) map[string]string {
			return map[string]string{
				"appUserId":   t.AppUserID,
				"routeId":     t.RouteID,
				"routeStopId": t.RouteStopID,
				"tripType":    strconv.Itoa(int(t.TripType)),
				"validFrom":   t.ValidFrom.DateInput(),
				"validUntil":  t.ValidUntil.DateInput(),
			}
		},
		Payload: func(f *Form, id string) (any, error) {
			tt, err := f.Int("tripType")
			if err != nil {
				return nil, err
			}
			from, err := f.Date("validFrom")
			if err != nil {
				return nil, err
			}
			until, err := f.Date("validUntil")
			if err != nil {
				return nil, err
			}
			return dto.TripPayload{
				ID:          id,
				AppUserID:   f.Value("appUserId"),
				RouteID:     f.Value("routeId"),
				RouteStopID: f.Value("routeStopId"),
				TripType:    models.TripType(tt),
				ValidFrom:   from,
				ValidUntil:  until,
			}, nil
		},
		Display: func(t models.Trip, lk Lookups) map[string]string {
			status := "Pasif"
			if t.ActiveAt(env.now()) {
				status = "Aktif"
			}
			stop := "-"
			if t.RouteStop != nil {
				stop = stopLabel(t.RouteStop.SequenceNumber, t.RouteStop.Address)
			}
			return map[string]string{
				"user":       lk.Label(LookupUsers, t.AppUserID),
				"route":      lk.Label(LookupRoutes, t.RouteID),
				"stop":       stop,
				"tripType":   t.TripType.Name(),
				"validFrom":  t.ValidFrom.Display(),
				"validUntil": t.ValidUntil.Display(),
				"status":     status,
			}
		},
		Label: func(t models.Trip) string {
			if t.AppUser != nil {
				return t.AppUser.FirstName + " " + t.AppUser.LastName + " / " + t.TripType.Name()
			}
			return t.TripType.Name()
		},
	}
}

func tripTypeRule() Rule {
	return func(v string) string {
		n, err := strconv.Atoi(v)
		if v != "" && (err != nil || !models.TripType(n).Valid()) {
			return "Geçerli bir sefer tipi seçiniz"
		}
		return ""
	}
}
