package models

import "time"

// Enrichment is the merged profile for one registry identifier. Fields are
// pointers so absent values serialize as explicit nulls; once a field is
// non-nil it is never nulled out by a later pass, only replaced by a pass
// that carries a new value.
type Enrichment struct {
	Phone         *string  `json:"phone"`
	Email         *string  `json:"email"`
	Website       *string  `json:"website"`
	Rating        *float64 `json:"rating"`
	ReviewCount   *float64 `json:"reviewCount"`
	PhotoURL      *string  `json:"photoUrl"`
	OfficeName    *string  `json:"officeName"`
	GooglePlaceID *string  `json:"googlePlaceId"`
}

// MatchStats accumulates resolution counters across batches. It is passed
// by reference through the engine so callers can fold per-category runs
// into one set of totals.
type MatchStats struct {
	Matched          int `json:"matched"`
	Ambiguous        int `json:"ambiguous"`
	DeclaredNameOnly int `json:"dbaOnly"`
}

// EnrichmentSet is the run output: the enrichment map keyed by license
// number plus the summary envelope consumed by downstream services.
type EnrichmentSet struct {
	RunID           string                 `json:"runId"`
	GeneratedAt     time.Time              `json:"generatedAt"`
	Matched         int                    `json:"matchedListings"`
	Ambiguous       int                    `json:"ambiguousListings"`
	DBAOnly         int                    `json:"dbaOnly"`
	RecordCount     int                    `json:"recordCount"`
	ByLicenseNumber map[string]*Enrichment `json:"byLicenseNumber"`
}
