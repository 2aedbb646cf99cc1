package models

import "strings"

type Driver struct {
	ID              string      `json:"id"`
	FirstName       string      `json:"firstName"`
	LastName        string      `json:"lastName"`
	PhoneNumber     string      `json:"phoneNumber"`
	LicenseNumber   string      `json:"licenseNumber"`
	JobStartDate    Timestamp   `json:"jobStartDate"`
	CompanyID       string      `json:"companyId"`
	Company         *CompanyRef `json:"company,omitempty"`
	CreatedDate     Timestamp   `json:"createdDate,omitzero"`
	LastUpdatedDate Timestamp   `json:"lastUpdatedDate,omitzero"`
}

func (d Driver) GetID() string { return d.ID }

func (d Driver) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

type DriverRef struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName,omitempty"`
}
