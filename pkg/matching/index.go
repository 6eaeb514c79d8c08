package matching

import (
	"strings"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/normalizers"
)

// CityIndex buckets registry candidates by normalized city so resolution
// scans a small pool instead of the whole registry. Built once per
// registry load; read-only afterward.
type CityIndex struct {
	buckets   map[string][]*models.Candidate
	byLicense map[string]*models.Candidate
}

// BuildIndex projects registry records into candidates and groups them by
// normalized city. Records without a license number are skipped entirely.
// Records whose city normalizes to empty stay out of the buckets (they can
// never be matched to a listing) but remain reachable by license number
// for the declared-business-name pass.
func BuildIndex(records []models.RegistryRecord, norm *normalizers.NameNormalizer) *CityIndex {
	idx := &CityIndex{
		buckets:   make(map[string][]*models.Candidate),
		byLicense: make(map[string]*models.Candidate),
	}

	for _, rec := range records {
		license := strings.TrimSpace(rec.LicenseNumber)
		if license == "" {
			continue
		}

		personName := joinNameParts(rec.FirstName, rec.Middle, rec.LastName)
		city := strings.TrimSpace(rec.City)

		cand := &models.Candidate{
			LicenseNumber: license,
			PersonName:    personName,
			City:          city,
			NormCity:      normalizers.City(city),
			LastName:      norm.LastToken(personName),
			BusinessDBA:   rec.BusinessDBA,
		}

		idx.byLicense[license] = cand
		if cand.NormCity == "" {
			continue
		}
		idx.buckets[cand.NormCity] = append(idx.buckets[cand.NormCity], cand)
	}

	return idx
}

// Bucket returns the candidates sharing the given normalized city, in
// registry insertion order. Returns nil for unknown cities.
func (i *CityIndex) Bucket(normCity string) []*models.Candidate {
	return i.buckets[normCity]
}

// Lookup returns the candidate for a license number.
func (i *CityIndex) Lookup(license string) (*models.Candidate, bool) {
	cand, ok := i.byLicense[license]
	return cand, ok
}

// ByLicense returns the license-keyed candidate map. Callers must treat it
// as read-only.
func (i *CityIndex) ByLicense() map[string]*models.Candidate {
	return i.byLicense
}

// Len returns the number of indexed candidates.
func (i *CityIndex) Len() int {
	return len(i.byLicense)
}

func joinNameParts(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}
