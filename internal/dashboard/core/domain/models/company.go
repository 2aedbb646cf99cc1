package models

// Entity is anything the backend identifies by id.
type Entity interface {
	GetID() string
}

type Company struct {
	ID                           string    `json:"id"`
	Name                         string    `json:"name"`
	Address                      string    `json:"address"`
	ResponsiblePerson            string    `json:"responsiblePerson"`
	ResponsiblePersonPhoneNumber string    `json:"responsiblePersonPhoneNumber"`
	TaxOffice                    string    `json:"taxOffice"`
	TaxNumber                    string    `json:"taxNumber"`
	ContractDate                 Timestamp `json:"contractDate"`
	ContractEndDate              Timestamp `json:"contractEndDate"`
	CreatedAt                    Timestamp `json:"createdAt,omitzero"`
	UpdatedAt                    Timestamp `json:"updatedAt,omitzero"`
}

func (c Company) GetID() string { return c.ID }

// CompanyRef is the summary embedded in other records.
type CompanyRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
