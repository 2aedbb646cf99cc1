package feature

import (
	"cmp"
	"context"
	"strings"

	"shuttle-admin/internal/dashboard/core/domain/dto"
	"shuttle-admin/internal/dashboard/core/domain/models"
	"shuttle-admin/internal/dashboard/core/mapview"
)

const (
	ModuleUsers = "users"

	FilterSearch = "search"
)

// UsersSpec has no delete; the backend offers none. The password field
// only exists while registering a user.
func UsersSpec(s *Services) Spec[models.User] {
	return Spec[models.User]{
		Name:     ModuleUsers,
		Title:    "Kullanıcılar",
		Messages: NewMessages("Kullanıcı", "Kullanıcılar"),
		Service:  s.Users,
		Fields: []Field{
			{Name: "firstName", Rules: []Rule{Required()}},
			{Name: "lastName", Rules: []Rule{Required()}},
			{Name: "email", Rules: []Rule{Required(), Email()}},
			{Name: "password", Rules: []Rule{Required(), MinLen(6)}, AddOnly: true},
			{Name: "phoneNumber", Rules: []Rule{Required()}},
			{Name: "homeCity", Rules: []Rule{Required()}},
			{Name: "homeDistrict", Rules: []Rule{Required()}},
			{Name: "homeAddress", Rules: []Rule{Required()}},
			{Name: "homeLatitude", Rules: []Rule{Required(), Numeric()}},
			{Name: "homeLongitude", Rules: []Rule{Required(), Numeric()}},
			{Name: "defaultRouteStopId"},
		},
		Lookups: []Lookup{
			listLookup(LookupRouteStops, s.RouteStops.GetAll, stopOption),
		},
		Filters: []Filter[models.User]{
			{Name: FilterSearch, Match: matchUser},
		},
		Picker: &Picker{Lat: "homeLatitude", Lng: "homeLongitude"},
		Sort: func(a, b models.User) int {
			return cmp.Or(cmp.Compare(a.FirstName, b.FirstName), cmp.Compare(a.LastName, b.LastName))
		},
		Prefill: func(u models.User) map[string]string {
			return map[string]string{
				"firstName":          u.FirstName,
				"lastName":           u.LastName,
				"email":              u.Email,
				"phoneNumber":        u.PhoneNumber,
				"homeCity":           u.HomeCity,
				"homeDistrict":       u.HomeDistrict,
				"homeAddress":        u.HomeAddress,
				"homeLatitude":       formatCoord(u.HomeLatitude),
				"homeLongitude":      formatCoord(u.HomeLongitude),
				"defaultRouteStopId": deref(u.DefaultRouteStopID),
			}
		},
		Payload: userPayload,
		Display: func(u models.User, lk Lookups) map[string]string {
			return map[string]string{
				"fullName":         u.FullName(),
				"email":            u.Email,
				"phoneNumber":      u.PhoneNumber,
				"home":             strings.Join([]string{u.HomeDistrict, u.HomeCity}, ", "),
				"defaultRouteStop": optionalLabel(lk, LookupRouteStops, u.DefaultRouteStopID),
			}
		},
		Label: func(u models.User) string { return u.FullName() },
		Detail: func(_ context.Context, u models.User, _ Lookups) (*mapview.Widget, error) {
			at := mapview.LatLng{Lat: u.HomeLatitude, Lng: u.HomeLongitude}
			return mapview.PointMap(u.ID, u.FullName(), u.HomeAddress, at), nil
		},
	}
}

func userPayload(f *Form, id string) (any, error) {
	lat, err := f.Float("homeLatitude")
	if err != nil {
		return nil, err
	}
	lng, err := f.Float("homeLongitude")
	if err != nil {
		return nil, err
	}
	if id == "" {
		return dto.RegisterUserPayload{
			FirstName:          f.Trimmed("firstName"),
			LastName:           f.Trimmed("lastName"),
			Email:              f.Trimmed("email"),
			Password:           f.Trimmed("password"),
			PhoneNumber:        f.Trimmed("phoneNumber"),
			HomeCity:           f.Trimmed("homeCity"),
			HomeDistrict:       f.Trimmed("homeDistrict"),
			HomeAddress:        f.Trimmed("homeAddress"),
			HomeLatitude:       lat,
			HomeLongitude:      lng,
			DefaultRouteStopID: f.Optional("defaultRouteStopId"),
		}, nil
	}
	return dto.UpdateUserPayload{
		ID:                 id,
		FirstName:          f.Trimmed("firstName"),
		LastName:           f.Trimmed("lastName"),
		PhoneNumber:        f.Trimmed("phoneNumber"),
		HomeCity:           f.Trimmed("homeCity"),
		HomeDistrict:       f.Trimmed("homeDistrict"),
		HomeAddress:        f.Trimmed("homeAddress"),
		HomeLatitude:       lat,
		HomeLongitude:      lng,
		DefaultRouteStopID: f.Optional("defaultRouteStopId"),
	}, nil
}

// matchUser is a case-insensitive search over name and email, and a plain
// substring match on the phone number.
func matchUser(u models.User, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	q := strings.ToLower(term)
	return strings.Contains(strings.ToLower(u.FirstName), q) ||
		strings.Contains(strings.ToLower(u.LastName), q) ||
		strings.Contains(strings.ToLower(u.Email), q) ||
		strings.Contains(u.PhoneNumber, term)
}
