// Package merging combines listing-derived and registry-derived fields into
// enrichment records, with existing values preserved unless a pass carries
// a new non-null value.
package merging

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Ramsey-B/fern/pkg/matching"
	"github.com/Ramsey-B/fern/pkg/models"
)

// DefaultBrandPatterns are regex fragments for brokerage brands whose
// presence marks a listing display name as an office name. US/English
// specific; swap per vertical.
var DefaultBrandPatterns = []string{
	`re/?max`,
	`kw\b`,
	`keller\s+williams`,
	`coldwell`,
	`compass`,
	`sotheby`,
	`century\s*21`,
	`@properties`,
	`berkshire`,
}

const (
	// A declared business name this similar to the person's own name just
	// restates it and is discarded.
	declaredNameIdentityThreshold = 0.9
	// A listing name this dissimilar to the person's name is taken to be an
	// office name rather than a person.
	officeNameSimilarityCeiling = 0.72
	minDeclaredNameLength       = 3
)

var officeSeparators = regexp.MustCompile(`\||\s+[-–—]\s+`)

// FieldMerger applies the field-level merge policy for resolved matches
// and the declared-business-name fallback.
type FieldMerger struct {
	scorer *matching.Scorer
	brands *regexp.Regexp
}

// NewFieldMerger creates a FieldMerger. brandPatterns is a list of regex
// fragments; nil or empty disables the brand heuristic.
func NewFieldMerger(scorer *matching.Scorer, brandPatterns []string) *FieldMerger {
	var brands *regexp.Regexp
	if len(brandPatterns) > 0 {
		brands = regexp.MustCompile(`(?:` + strings.Join(brandPatterns, "|") + `)`)
	}
	return &FieldMerger{
		scorer: scorer,
		brands: brands,
	}
}

// Merge folds a resolved listing into the enrichment record for the
// matched candidate. A nil existing record starts a fresh one. Every field
// follows "new value if present, else existing": a later pass never nulls
// a populated field, but a non-empty new value replaces the old one. Email
// is never populated; no listing source carries it.
func (m *FieldMerger) Merge(existing *models.Enrichment, listing models.Listing, cand *models.Candidate) *models.Enrichment {
	e := existing
	if e == nil {
		e = &models.Enrichment{}
	}

	if phone := strings.TrimSpace(listing.Phone); phone != "" {
		e.Phone = &phone
	}
	if website := pickString(listing.Website, listing.Site); website != "" {
		e.Website = &website
	}
	if rating, ok := toNumber(listing.Rating); ok {
		e.Rating = &rating
	}
	if reviews, ok := toNumber(listing.Reviews); ok {
		e.ReviewCount = &reviews
	}
	if photo := pickString(listing.Photo, listing.Logo); photo != "" {
		e.PhotoURL = &photo
	}
	if placeID := strings.TrimSpace(listing.PlaceID); placeID != "" {
		e.GooglePlaceID = &placeID
	}

	office := m.DeclaredOfficeName(cand)
	if office == nil {
		if name := strings.TrimSpace(listing.Name); name != "" && m.LooksLikeOfficeName(name, cand.PersonName) {
			office = &name
		}
	}
	if office != nil {
		e.OfficeName = office
	}

	return e
}

// DeclaredOfficeName returns the candidate's declared business name when it
// carries real signal: non-empty, at least three characters, and not a
// restatement of the person's own name.
func (m *FieldMerger) DeclaredOfficeName(cand *models.Candidate) *string {
	name := strings.TrimSpace(cand.BusinessDBA)
	if name == "" {
		return nil
	}
	if m.scorer.DiceSimilarity(name, cand.PersonName) > declaredNameIdentityThreshold {
		return nil
	}
	if len(name) < minDeclaredNameLength {
		return nil
	}
	return &name
}

// LooksLikeOfficeName reports whether a listing display name reads as an
// office rather than the person: low similarity to the person's name, a
// pipe/dash separator, or a known brokerage brand.
func (m *FieldMerger) LooksLikeOfficeName(name, personName string) bool {
	if m.scorer.DiceSimilarity(name, personName) < officeNameSimilarityCeiling {
		return true
	}
	if officeSeparators.MatchString(name) {
		return true
	}
	return m.brands != nil && m.brands.MatchString(strings.ToLower(name))
}

// ApplyDeclaredNames runs the declared-business-name-only pass: every
// candidate whose enrichment record is missing entirely, or exists without
// an office name, gets one from its own declared business name. Fresh
// records created here count toward stats.DeclaredNameOnly.
func (m *FieldMerger) ApplyDeclaredNames(candidates map[string]*models.Candidate, out map[string]*models.Enrichment, stats *models.MatchStats) {
	for license, cand := range candidates {
		office := m.DeclaredOfficeName(cand)
		if office == nil {
			continue
		}
		existing, ok := out[license]
		if !ok {
			out[license] = &models.Enrichment{OfficeName: office}
			stats.DeclaredNameOnly++
			continue
		}
		if existing.OfficeName == nil {
			existing.OfficeName = office
		}
	}
}

// pickString resolves an ordered list of source fields to the first
// non-empty trimmed value ("website" over "site", "photo" over "logo").
func pickString(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// toNumber coerces a JSON-decoded rating or review count to a float.
// Numeric strings parse; anything else, including non-finite values,
// coerces to absent rather than raising.
func toNumber(v any) (float64, bool) {
	var n float64
	switch val := v.(type) {
	case float64:
		n = val
	case float32:
		n = float64(val)
	case int:
		n = float64(val)
	case int32:
		n = float64(val)
	case int64:
		n = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, false
		}
		n = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
