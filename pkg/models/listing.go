package models

// Listing is a scraped business listing from the places provider.
// Rating and Reviews arrive as either JSON numbers or numeric strings
// depending on the scraper run, so they stay untyped until coercion.
type Listing struct {
	Name       string `json:"name,omitempty"`
	City       string `json:"city,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Website    string `json:"website,omitempty"`
	Site       string `json:"site,omitempty"`
	Rating     any    `json:"rating,omitempty"`
	Reviews    any    `json:"reviews,omitempty"`
	Photo      string `json:"photo,omitempty"`
	Logo       string `json:"logo,omitempty"`
	PlaceID    string `json:"place_id,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}
