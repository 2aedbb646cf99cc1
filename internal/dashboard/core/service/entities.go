package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"shuttle-admin/internal/dashboard/core/domain/dto"
	"shuttle-admin/internal/dashboard/core/domain/models"
	"shuttle-admin/internal/dashboard/core/myerrors"
	"shuttle-admin/internal/dashboard/core/ports/driven"
)

const (
	PathCompanies  = "/companies"
	PathDrivers    = "/drivers"
	PathBuses      = "/buses"
	PathRoutes     = "/routes"
	PathRouteStops = "/routestops"
	PathTrips      = "/tripappusers"
	PathUsers      = "/users"
	PathLogin      = "/auth/login"
)

type CompanyService struct {
	*Resource[models.Company]
}

func NewCompanyService(api driven.IAPIClient) *CompanyService {
	return &CompanyService{NewResource[models.Company](api, PathCompanies)}
}

type DriverService struct {
	*Resource[models.Driver]
}

func NewDriverService(api driven.IAPIClient) *DriverService {
	return &DriverService{NewResource[models.Driver](api, PathDrivers)}
}

func (s *DriverService) GetByCompanyID(ctx context.Context, companyID string) (dto.Envelope[[]models.Driver], error) {
	return s.GetByParent(ctx, "company", companyID)
}

type BusService struct {
	*Resource[models.Bus]
}

func NewBusService(api driven.IAPIClient) *BusService {
	return &BusService{NewResource[models.Bus](api, PathBuses)}
}

func (s *BusService) GetByCompanyID(ctx context.Context, companyID string) (dto.Envelope[[]models.Bus], error) {
	return s.GetByParent(ctx, "company", companyID)
}

type RouteService struct {
	*Resource[models.Route]
	api driven.IAPIClient
}

func NewRouteService(api driven.IAPIClient) *RouteService {
	return &RouteService{Resource: NewResource[models.Route](api, PathRoutes), api: api}
}

// GetStops loads the stops of one route.
func (s *RouteService) GetStops(ctx context.Context, routeID string) (dto.Envelope[[]models.RouteStop], error) {
	return call[[]models.RouteStop](ctx, s.api, http.MethodGet, PathRouteStops+"/route/"+url.PathEscape(routeID), nil)
}

type RouteStopService struct {
	*Resource[models.RouteStop]
}

func NewRouteStopService(api driven.IAPIClient) *RouteStopService {
	return &RouteStopService{NewResource[models.RouteStop](api, PathRouteStops)}
}

func (s *RouteStopService) GetByRouteID(ctx context.Context, routeID string) (dto.Envelope[[]models.RouteStop], error) {
	return s.GetByParent(ctx, "route", routeID)
}

type TripService struct {
	*Resource[models.Trip]
}

func NewTripService(api driven.IAPIClient) *TripService {
	return &TripService{NewResource[models.Trip](api, PathTrips)}
}

func (s *TripService) GetByUserID(ctx context.Context, userID string) (dto.Envelope[[]models.Trip], error) {
	return s.GetByParent(ctx, "user", userID)
}

func (s *TripService) GetByRouteID(ctx context.Context, routeID string) (dto.Envelope[[]models.Trip], error) {
	return s.GetByParent(ctx, "route", routeID)
}

// UserService registers new users through /users/register. The backend has
// no delete for users.
type UserService struct {
	*Resource[models.User]
	api driven.IAPIClient
}

func NewUserService(api driven.IAPIClient) *UserService {
	return &UserService{Resource: NewResource[models.User](api, PathUsers), api: api}
}

func (s *UserService) Create(ctx context.Context, payload any) (dto.Envelope[models.User], error) {
	return call[models.User](ctx, s.api, http.MethodPost, PathUsers+"/register", payload)
}

func (s *UserService) Delete(ctx context.Context, id string) (dto.Envelope[json.RawMessage], error) {
	return dto.Envelope[json.RawMessage]{}, myerrors.ErrNotSupported
}

type ProfileService struct {
	users *Resource[models.User]
}

func NewProfileService(api driven.IAPIClient) *ProfileService {
	return &ProfileService{users: NewResource[models.User](api, PathUsers)}
}

func (s *ProfileService) Get(ctx context.Context, id string) (dto.Envelope[models.User], error) {
	return s.users.GetByID(ctx, id)
}

func (s *ProfileService) Update(ctx context.Context, payload dto.UpdateUserPayload) (dto.Envelope[models.User], error) {
	return s.users.Update(ctx, payload)
}

type AuthService struct {
	api driven.IAPIClient
}

func NewAuthService(api driven.IAPIClient) *AuthService {
	return &AuthService{api: api}
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (dto.Envelope[dto.LoginData], error) {
	return call[dto.LoginData](ctx, s.api, http.MethodPost, PathLogin, req)
}
