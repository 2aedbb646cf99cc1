package feature

import (
	"cmp"

	"shuttle-admin/internal/dashboard/core/domain/dto"
	"shuttle-admin/internal/dashboard/core/domain/models"
)

const ModuleCompanies = "companies"

func CompaniesSpec(s *Services) Spec[models.Company] {
	return Spec[models.Company]{
		Name:      ModuleCompanies,
		Title:     "Şirketler",
		Messages:  NewMessages("Şirket", "Şirketler"),
		Service:   s.Companies,
		Deletable: true,
		Fields: []Field{
			{Name: "name", Rules: []Rule{Required(), MinLen(2)}},
			{Name: "address", Rules: []Rule{Required()}},
			{Name: "responsiblePerson", Rules: []Rule{Required(), MinLen(2)}},
			{Name: "responsiblePersonPhoneNumber", Rules: []Rule{Required(), Phone()}},
			{Name: "taxOffice", Rules: []Rule{Required()}},
			{Name: "taxNumber", Rules: []Rule{Required(), TaxNumber()}},
			{Name: "contractDate", Rules: []Rule{Required()}},
			{Name: "contractEndDate", Rules: []Rule{Required()}},
		},
		Sort: func(a, b models.Company) int {
			return cmp.Compare(a.Name, b.Name)
		},
		Prefill: func(c models.Company) map[string]string {
			return map[string]string{
				"name":                         c.Name,
				"address":                      c.Address,
				"responsiblePerson":            c.ResponsiblePerson,
				"responsiblePersonPhoneNumber": c.ResponsiblePersonPhoneNumber,
				"taxOffice":                    c.TaxOffice,
				"taxNumber":                    c.TaxNumber,
				"contractDate":                 c.ContractDate.DateInput(),
				"contractEndDate":              c.ContractEndDate.DateInput(),
			}
		},
		Payload: func(f *Form, id string) (any, error) {
			start, err := f.Date("contractDate")
			if err != nil {
				return nil, err
			}
			end, err := f.Date("contractEndDate")
			if err != nil {
				return nil, err
			}
			return dto.CompanyPayload{
				ID:                           id,
				Name:                         f.Trimmed("name"),
				Address:                      f.Trimmed("address"),
				ResponsiblePerson:            f.Trimmed("responsiblePerson"),
				ResponsiblePersonPhoneNumber: f.Trimmed("responsiblePersonPhoneNumber"),
				TaxOffice:                    f.Trimmed("taxOffice"),
				TaxNumber:                    f.Trimmed("taxNumber"),
				ContractDate:                 start,
				ContractEndDate:              end,
			}, nil
		},
		Display: func(c models.Company, _ Lookups) map[string]string {
			return map[string]string{
				"name":              c.Name,
				"address":           c.Address,
				"responsiblePerson": c.ResponsiblePerson,
				"phone":             c.ResponsiblePersonPhoneNumber,
				"taxOffice":         c.TaxOffice,
				"taxNumber":         c.TaxNumber,
				"contractDate":      c.ContractDate.Display(),
				"contractEndDate":   c.ContractEndDate.Display(),
			}
		},
		Label: func(c models.Company) string { return c.Name },
	}
}
