package dto

import "shuttle-admin/internal/dashboard/core/domain/models"

// Request bodies. ID is empty on create and set on update.

type CompanyPayload struct {
	ID                           string `json:"id,omitempty"`
	Name                         string `json:"name"`
	Address                      string `json:"address"`
	ResponsiblePerson            string `json:"responsiblePerson"`
	ResponsiblePersonPhoneNumber string `json:"responsiblePersonPhoneNumber"`
	TaxOffice                    string `json:"taxOffice"`
	TaxNumber                    string `json:"taxNumber"`
	ContractDate                 string `json:"contractDate"`
	ContractEndDate              string `json:"contractEndDate"`
}

type DriverPayload struct {
	ID            string `json:"id,omitempty"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	PhoneNumber   string `json:"phoneNumber"`
	LicenseNumber string `json:"licenseNumber"`
	JobStartDate  string `json:"jobStartDate"`
	CompanyID     string `json:"companyId"`
}

type BusPayload struct {
	ID              string  `json:"id,omitempty"`
	PlateNo         string  `json:"plateNo"`
	Brand           string  `json:"brand"`
	Model           string  `json:"model"`
	Year            int     `json:"year"`
	Capacity        int     `json:"capacity"`
	Km              float64 `json:"km"`
	CompanyID       string  `json:"companyId"`
	DefaultDriverID *string `json:"defaultDriverId"`
}

type RoutePayload struct {
	ID               string           `json:"id,omitempty"`
	Name             string           `json:"name"`
	StartPoint       string           `json:"startPoint"`
	EndPoint         string           `json:"endPoint"`
	MorningStartTime models.TimeOfDay `json:"morningStartTime"`
	EveningStartTime models.TimeOfDay `json:"eveningStartTime"`
	BusID            string           `json:"busId"`
	DriverID         string           `json:"driverId"`
}

type RouteStopPayload struct {
	ID                          string           `json:"id,omitempty"`
	SequenceNumber              int              `json:"sequenceNumber"`
	City                        string           `json:"city"`
	District                    string           `json:"district"`
	Address                     string           `json:"address"`
	Latitude                    float64          `json:"latitude"`
	Longitude                   float64          `json:"longitude"`
	EstimatedArrivalTimeMorning models.TimeOfDay `json:"estimatedArrivalTimeMorning"`
	EstimatedArrivalTimeEvening models.TimeOfDay `json:"estimatedArrivalTimeEvening"`
	RouteID                     string           `json:"routeId"`
}

type TripPayload struct {
	ID          string          `json:"id,omitempty"`
	AppUserID   string          `json:"appUserId"`
	RouteID     string          `json:"routeId"`
	RouteStopID string          `json:"routeStopId"`
	TripType    models.TripType `json:"tripType"`
	ValidFrom   string          `json:"validFrom"`
	ValidUntil  string          `json:"validUntil"`
}

// RegisterUserPayload is posted to /users/register.
type RegisterUserPayload struct {
	FirstName          string  `json:"firstName"`
	LastName           string  `json:"lastName"`
	Email              string  `json:"email"`
	Password           string  `json:"password"`
	PhoneNumber        string  `json:"phoneNumber"`
	HomeCity           string  `json:"homeCity"`
	HomeDistrict       string  `json:"homeDistrict"`
	HomeAddress        string  `json:"homeAddress"`
	HomeLatitude       float64 `json:"homeLatitude"`
	HomeLongitude      float64 `json:"homeLongitude"`
	DefaultRouteStopID *string `json:"defaultRouteStopId,omitempty"`
}

// UpdateUserPayload is used by both the users screen and the profile.
type UpdateUserPayload struct {
	ID                 string  `json:"id"`
	FirstName          string  `json:"firstName"`
	LastName           string  `json:"lastName"`
	PhoneNumber        string  `json:"phoneNumber"`
	HomeCity           string  `json:"homeCity"`
	HomeDistrict       string  `json:"homeDistrict"`
	HomeAddress        string  `json:"homeAddress"`
	HomeLatitude       float64 `json:"homeLatitude"`
	HomeLongitude      float64 `json:"homeLongitude"`
	DefaultRouteStopID *string `json:"defaultRouteStopId,omitempty"`
}
