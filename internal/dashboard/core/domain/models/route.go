package models

type Route struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	StartPoint       string      `json:"startPoint"`
	EndPoint         string      `json:"endPoint"`
	MorningStartTime TimeOfDay   `json:"morningStartTime"`
	EveningStartTime TimeOfDay   `json:"eveningStartTime"`
	BusID            string      `json:"busId"`
	DriverID         string      `json:"driverId"`
	Bus              *BusRef     `json:"bus,omitempty"`
	Driver           *DriverRef  `json:"driver,omitempty"`
	RouteStops       []RouteStop `json:"routeStops,omitempty"`
	CreatedDate      Timestamp   `json:"createdDate,omitzero"`
	LastUpdatedDate  Timestamp   `json:"lastUpdatedDate,omitzero"`
}

func (r Route) GetID() string { return r.ID }

type RouteRef struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	StartPoint string     `json:"startPoint"`
	EndPoint   string     `json:"endPoint"`
	Driver     *DriverRef `json:"driver,omitempty"`
}

type RouteStop struct {
	ID                          string    `json:"id"`
	SequenceNumber              int       `json:"sequenceNumber"`
	City                        string    `json:"city"`
	District                    string    `json:"district"`
	Address                     string    `json:"address"`
	Latitude                    float64   `json:"latitude"`
	Longitude                   float64   `json:"longitude"`
	EstimatedArrivalTimeMorning TimeOfDay `json:"estimatedArrivalTimeMorning"`
	EstimatedArrivalTimeEvening TimeOfDay `json:"estimatedArrivalTimeEvening"`
	RouteID                     string    `json:"routeId"`
	Route                       *RouteRef `json:"route,omitempty"`
	CreatedDate                 Timestamp `json:"createdDate,omitzero"`
	LastUpdatedDate             Timestamp `json:"lastUpdatedDate,omitzero"`
}

func (s RouteStop) GetID() string { return s.ID }

type RouteStopRef struct {
	ID             string `json:"id"`
	SequenceNumber int    `json:"sequenceNumber"`
	Address        string `json:"address"`
	City           string `json:"city"`
	District       string `json:"district"`
}
