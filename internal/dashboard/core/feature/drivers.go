package feature

import (
	"cmp"

	"shuttle-admin/internal/dashboard/core/domain/dto"
	"shuttle-admin/internal/dashboard/core/domain/models"
)

const ModuleDrivers = "drivers"

func DriversSpec(s *Services) Spec[models.Driver] {
	return Spec[models.Driver]{
		Name:      ModuleDrivers,
		Title:     "Sürücüler",
		Messages:  NewMessages("Sürücü", "Sürücüler"),
		Service:   s.Drivers,
		Deletable: true,
		Fields: []Field{
			{Name: "firstName", Rules: []Rule{Required(), MinLen(2)}},
			{Name: "lastName", Rules: []Rule{Required(), MinLen(2)}},
			{Name: "phoneNumber", Rules: []Rule{Required(), Phone()}},
			{Name: "licenseNumber", Rules: []Rule{Required()}},
			{Name: "jobStartDate", Rules: []Rule{Required()}},
			{Name: "companyId", Rules: []Rule{Required()}},
		},
		Lookups: []Lookup{
			listLookup(LookupCompanies, s.Companies.GetAll, companyOption),
		},
		Sort: func(a, b models.Driver) int {
			return cmp.Or(cmp.Compare(a.FirstName, b.FirstName), cmp.Compare(a.LastName, b.LastName))
		},
		Prefill: func(d models.Driver) map[string]string {
			return map[string]string{
				"firstName":     d.FirstName,
				"lastName":      d.LastName,
				"phoneNumber":   d.PhoneNumber,
				"licenseNumber": d.LicenseNumber,
				"jobStartDate":  d.JobStartDate.DateInput(),
				"companyId":     d.CompanyID,
			}
		},
		Payload: func(f *Form, id string) (any, error) {
			start, err := f.Date("jobStartDate")
			if err != nil {
				return nil, err
			}
			return dto.DriverPayload{
				ID:            id,
				FirstName:     f.Trimmed("firstName"),
				LastName:      f.Trimmed("lastName"),
				PhoneNumber:   f.Trimmed("phoneNumber"),
				LicenseNumber: f.Trimmed("licenseNumber"),
				JobStartDate:  start,
				CompanyID:     f.Value("companyId"),
			}, nil
		},
		Display: func(d models.Driver, lk Lookups) map[string]string {
			return map[string]string{
				"fullName":      d.FullName(),
				"phoneNumber":   d.PhoneNumber,
				"licenseNumber": d.LicenseNumber,
				"jobStartDate":  d.JobStartDate.Display(),
				"company":       lk.Label(LookupCompanies, d.CompanyID),
			}
		},
		Label: func(d models.Driver) string { return d.FullName() },
	}
}
