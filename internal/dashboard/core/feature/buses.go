package feature

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"shuttle-admin/internal/dashboard/core/domain/dto"
	"shuttle-admin/internal/dashboard/core/domain/models"
)

const (
	ModuleBuses = "buses"

	MinBusYear = 1990
	MaxSeats   = 100
)

// BusesSpec caps the model year at next year relative to the Env clock.
func BusesSpec(s *Services, env Env) Spec[models.Bus] {
	maxYear := env.now().Year() + 1
	return Spec[models.Bus]{
		Name:      ModuleBuses,
		Title:     "Servisler",
		Messages:  NewMessages("Servis", "Servisler"),
		Service:   s.Buses,
		Deletable: true,
		Fields: []Field{
			{Name: "plateNo", Rules: []Rule{Required(), MaxLen(10)}},
			{Name: "brand", Rules: []Rule{Required(), MinLen(2)}},
			{Name: "model", Rules: []Rule{Required(), MinLen(2)}},
			{Name: "year", Rules: []Rule{
				Required(), Numeric(), Integer(),
				Min(MinBusYear, "1990 ve sonrası olmalıdır"),
				Max(float64(maxYear), fmt.Sprintf("En fazla %d olabilir", maxYear)),
			}},
			{Name: "capacity", Rules: []Rule{
				Required(), Numeric(), Integer(),
				Min(1, "En az 1 olmalıdır"),
				Max(MaxSeats, "En fazla 100 olabilir"),
			}},
			{Name: "km", Rules: []Rule{Required(), Numeric(), Min(0, "0 veya daha büyük olmalıdır")}},
			{Name: "companyId", Rules: []Rule{Required()}},
			{Name: "defaultDriverId"},
		},
		Lookups: []Lookup{
			listLookup(LookupCompanies, s.Companies.GetAll, companyOption),
			listLookup(LookupDrivers, s.Drivers.GetAll, driverOption),
		},
		Sort: func(a, b models.Bus) int {
			return cmp.Compare(a.PlateNo, b.PlateNo)
		},
		Prefill: func(b models.Bus) map[string]string {
			return map[string]string{
				"plateNo":         b.PlateNo,
				"brand":           b.Brand,
				"model":           b.Model,
				"year":            strconv.Itoa(b.Year),
				"capacity":        strconv.Itoa(b.Capacity),
				"km":              formatNumber(b.Km),
				"companyId":       b.CompanyID,
				"defaultDriverId": deref(b.DefaultDriverID),
			}
		},
		Payload: func(f *Form, id string) (any, error) {
			year, err := f.Int("year")
			if err != nil {
				return nil, err
			}
			capacity, err := f.Int("capacity")
			if err != nil {
				return nil, err
			}
			km, err := f.Float("km")
			if err != nil {
				return nil, err
			}
			return dto.BusPayload{
				ID:              id,
				PlateNo:         strings.ToUpper(f.Trimmed("plateNo")),
				Brand:           f.Trimmed("brand"),
				Model:           f.Trimmed("model"),
				Year:            year,
				Capacity:        capacity,
				Km:              km,
				CompanyID:       f.Value("companyId"),
				DefaultDriverID: f.Optional("defaultDriverId"),
			}, nil
		},
		Display: func(b models.Bus, lk Lookups) map[string]string {
			return map[string]string{
				"plateNo":       b.PlateNo,
				"brandModel":    strings.TrimSpace(b.Brand + " " + b.Model),
				"year":          strconv.Itoa(b.Year),
				"capacity":      strconv.Itoa(b.Capacity),
				"km":            formatNumber(b.Km),
				"company":       lk.Label(LookupCompanies, b.CompanyID),
				"defaultDriver": optionalLabel(lk, LookupDrivers, b.DefaultDriverID),
			}
		},
		Label: func(b models.Bus) string { return b.PlateNo },
	}
}
