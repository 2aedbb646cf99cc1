package feature

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"

	"shuttle-admin/internal/dashboard/core/domain/dto"
	"shuttle-admin/internal/dashboard/core/domain/models"
	"shuttle-admin/internal/dashboard/core/myerrors"
	"shuttle-admin/internal/dashboard/core/ports/driven"
	"shuttle-admin/internal/dashboard/core/service"
)

const (
	LookupCompanies  = "companies"
	LookupDrivers    = "drivers"
	LookupBuses      = "buses"
	LookupRoutes     = "routes"
	LookupUsers      = "users"
	LookupRouteStops = "routeStops"
)

// Services are the entity services one signed-in session works with.
type Services struct {
	Companies  *service.CompanyService
	Drivers    *service.DriverService
	Buses      *service.BusService
	Routes     *service.RouteService
	RouteStops *service.RouteStopService
	Trips      *service.TripService
	Users      *service.UserService
	Profile    *service.ProfileService
}

func NewServices(api driven.IAPIClient) *Services {
	return &Services{
		Companies:  service.NewCompanyService(api),
		Drivers:    service.NewDriverService(api),
		Buses:      service.NewBusService(api),
		Routes:     service.NewRouteService(api),
		RouteStops: service.NewRouteStopService(api),
		Trips:      service.NewTripService(api),
		Users:      service.NewUserService(api),
		Profile:    service.NewProfileService(api),
	}
}

func options[T any](env dto.Envelope[[]T], err error, opt func(T) Option) ([]Option, error) {
	if err != nil {
		return nil, err
	}
	if !env.IsSuccess {
		return nil, fmt.Errorf("%w: %s", myerrors.ErrRejected, env.Message)
	}
	out := make([]Option, 0, len(env.Data))
	for _, item := range env.Data {
		out = append(out, opt(item))
	}
	return out, nil
}

func listLookup[T any](name string, load func(ctx context.Context) (dto.Envelope[[]T], error), opt func(T) Option) Lookup {
	return Lookup{
		Name: name,
		Load: func(ctx context.Context) ([]Option, error) {
			env, err := load(ctx)
			return options(env, err, opt)
		},
	}
}

func companyOption(c models.Company) Option {
	return Option{Value: c.ID, Label: c.Name}
}

func driverOption(d models.Driver) Option {
	return Option{Value: d.ID, Label: d.FullName()}
}

func busOption(b models.Bus) Option {
	return Option{Value: b.ID, Label: b.PlateNo}
}

func routeOption(r models.Route) Option {
	return Option{Value: r.ID, Label: r.Name}
}

func userOption(u models.User) Option {
	return Option{Value: u.ID, Label: u.FullName()}
}

func stopOption(s models.RouteStop) Option {
	return Option{Value: s.ID, Label: stopLabel(s.SequenceNumber, s.Address)}
}

func stopLabel(seq int, address string) string {
	return strconv.Itoa(seq) + ". " + address
}

func bySequence(a, b models.RouteStop) int {
	return cmp.Compare(a.SequenceNumber, b.SequenceNumber)
}

// stopsOf loads the stops of a route ordered by sequence number.
func stopsOf(ctx context.Context, s *service.RouteStopService, routeID string) ([]models.RouteStop, error) {
	env, err := s.GetByRouteID(ctx, routeID)
	if err != nil {
		return nil, err
	}
	if !env.IsSuccess {
		return nil, fmt.Errorf("%w: %s", myerrors.ErrRejected, env.Message)
	}
	stops := slices.Clone(env.Data)
	slices.SortStableFunc(stops, bySequence)
	return stops, nil
}

func optionalLabel(lk Lookups, set string, id *string) string {
	if id == nil || *id == "" {
		return "-"
	}
	return lk.Label(set, *id)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
