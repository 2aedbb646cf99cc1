package models

type Bus struct {
	ID              string      `json:"id"`
	PlateNo         string      `json:"plateNo"`
	Brand           string      `json:"brand"`
	Model           string      `json:"model"`
	Year            int         `json:"year"`
	Capacity        int         `json:"capacity"`
	Km              float64     `json:"km"`
	CompanyID       string      `json:"companyId"`
	DefaultDriverID *string     `json:"defaultDriverId,omitempty"`
	Company         *CompanyRef `json:"company,omitempty"`
	DefaultDriver   *DriverRef  `json:"defaultDriver,omitempty"`
	Routes          []RouteRef  `json:"routes,omitempty"`
	CreatedDate     Timestamp   `json:"createdDate,omitzero"`
	LastUpdatedDate Timestamp   `json:"lastUpdatedDate,omitzero"`
}

func (b Bus) GetID() string { return b.ID }

type BusRef struct {
	ID      string `json:"id"`
	PlateNo string `json:"plateNo"`
	Brand   string `json:"brand"`
	Model   string `json:"model"`
}
