package models

import "time"

type TripType int

const (
	TripMorning TripType = 1
	TripEvening TripType = 2
)

func (t TripType) Valid() bool {
	return t == TripMorning || t == TripEvening
}

func (t TripType) Name() string {
	if t == TripMorning {
		return "Sabah"
	}
	return "Akşam"
}

type Trip struct {
	ID              string        `json:"id"`
	AppUserID       string        `json:"appUserId"`
	RouteID         string        `json:"routeId"`
	RouteStopID     string        `json:"routeStopId"`
	TripType        TripType      `json:"tripType"`
	ValidFrom       Timestamp     `json:"validFrom"`
	ValidUntil      Timestamp     `json:"validUntil"`
	AppUser         *UserRef      `json:"appUser,omitempty"`
	Route           *RouteRef     `json:"route,omitempty"`
	RouteStop       *RouteStopRef `json:"routeStop,omitempty"`
	CreatedDate     Timestamp     `json:"createdDate,omitzero"`
	LastUpdatedDate Timestamp     `json:"lastUpdatedDate,omitzero"`
}

func (t Trip) GetID() string { return t.ID }

// ActiveAt reports validFrom <= now <= validUntil.
func (t Trip) ActiveAt(now time.Time) bool {
	return !now.Before(t.ValidFrom.Time) && !now.After(t.ValidUntil.Time)
}
