package feature

import (
	"cmp"
	"context"
	"strconv"

	"shuttle-admin/internal/dashboard/core/domain/dto"
	"shuttle-admin/internal/dashboard/core/domain/models"
	"shuttle-admin/internal/dashboard/core/mapview"
)

const ModuleRoutes = "routes"

func RoutesSpec(s *Services, env Env) Spec[models.Route] {
	return Spec[models.Route]{
		Name:      ModuleRoutes,
		Title:     "Rotalar",
		Messages:  NewMessages("Rota", "Rotalar"),
		Service:   s.Routes,
		Deletable: true,
		Fields: []Field{
			{Name: "name", Rules: []Rule{Required(), MinLen(3)}},
			{Name: "startPoint", Rules: []Rule{Required()}},
			{Name: "endPoint", Rules: []Rule{Required()}},
			{Name: "morningStartTime", Rules: []Rule{Required()}},
			{Name: "eveningStartTime", Rules: []Rule{Required()}},
			{Name: "busId", Rules: []Rule{Required()}},
			{Name: "driverId", Rules: []Rule{Required()}},
		},
		Lookups: []Lookup{
			listLookup(LookupBuses, s.Buses.GetAll, busOption),
			listLookup(LookupDrivers, s.Drivers.GetAll, driverOption),
		},
		Sort: func(a, b models.Route) int {
			return cmp.Compare(a.Name, b.Name)
		},
		Prefill: func(r models.Route) map[string]string {
			return map[string]string{
				"name":             r.Name,
				"startPoint":       r.StartPoint,
				"endPoint":         r.EndPoint,
				"morningStartTime": r.MorningStartTime.Input(),
				"eveningStartTime": r.EveningStartTime.Input(),
				"busId":            r.BusID,
				"driverId":         r.DriverID,
			}
		},
		Payload: func(f *Form, id string) (any, error) {
			morning, err := f.Time("morningStartTime")
			if err != nil {
				return nil, err
			}
			evening, err := f.Time("eveningStartTime")
			if err != nil {
				return nil, err
			}
			return dto.RoutePayload{
				ID:               id,
				Name:             f.Trimmed("name"),
				StartPoint:       f.Trimmed("startPoint"),
				EndPoint:         f.Trimmed("endPoint"),
				MorningStartTime: morning,
				EveningStartTime: evening,
				BusID:            f.Value("busId"),
				DriverID:         f.Value("driverId"),
			}, nil
		},
		Display: func(r models.Route, lk Lookups) map[string]string {
			return map[string]string{
				"name":             r.Name,
				"startPoint":       r.StartPoint,
				"endPoint":         r.EndPoint,
				"morningStartTime": r.MorningStartTime.Display(),
				"eveningStartTime": r.EveningStartTime.Display(),
				"bus":              lk.Label(LookupBuses, r.BusID),
				"driver":           lk.Label(LookupDrivers, r.DriverID),
				"stopCount":        strconv.Itoa(len(r.RouteStops)),
			}
		},
		Label: func(r models.Route) string { return r.Name },
		Detail: func(ctx context.Context, r models.Route, _ Lookups) (*mapview.Widget, error) {
			resp, err := s.Routes.GetStops(ctx, r.ID)
			if err != nil {
				return nil, err
			}
			var stops []models.RouteStop
			if resp.IsSuccess {
				stops = resp.Data
			}
			return mapview.RouteMap(r.ID, stops, env.Timing.DefaultCenter), nil
		},
	}
}
