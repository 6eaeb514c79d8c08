package models

// RegistryRecord is a licensed professional or business as it arrives from
// the state registry extract. Field names match the upstream export.
type RegistryRecord struct {
	FirstName     string `json:"first_name,omitempty"`
	Middle        string `json:"middle,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	LicenseNumber string `json:"license_number"`
	BusinessDBA   string `json:"businessdba,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	Zip           string `json:"zip,omitempty"`
}

// Candidate is the comparison projection of a RegistryRecord, computed once
// when the index is built and never mutated afterward.
type Candidate struct {
	LicenseNumber string `json:"license_number"`
	PersonName    string `json:"person_name"`
	City          string `json:"city"`
	NormCity      string `json:"norm_city"`
	LastName      string `json:"last_name"`
	BusinessDBA   string `json:"businessdba,omitempty"`
}
