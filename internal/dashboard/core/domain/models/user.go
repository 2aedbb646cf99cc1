package models

import "strings"

type User struct {
	ID                 string        `json:"id"`
	FirstName          string        `json:"firstName"`
	LastName           string        `json:"lastName"`
	Email              string        `json:"email"`
	PhoneNumber        string        `json:"phoneNumber"`
	HomeCity           string        `json:"homeCity"`
	HomeDistrict       string        `json:"homeDistrict"`
	HomeAddress        string        `json:"homeAddress"`
	HomeLatitude       float64       `json:"homeLatitude"`
	HomeLongitude      float64       `json:"homeLongitude"`
	DefaultRouteStopID *string       `json:"defaultRouteStopId,omitempty"`
	DefaultRouteStop   *RouteStopRef `json:"defaultRouteStop,omitempty"`
	CreatedDate        Timestamp     `json:"createdDate,omitzero"`
	LastUpdatedDate    Timestamp     `json:"lastUpdatedDate,omitzero"`
}

func (u User) GetID() string { return u.ID }

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type UserRef struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// AuthUser is the signed-in user pointer kept in the session.
type AuthUser struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}
