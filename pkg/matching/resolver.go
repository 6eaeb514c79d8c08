// Package matching implements listing-to-registry candidate resolution:
// city-bucketed candidate indexing, bigram similarity scoring, and
// best/second-best selection with an ambiguity guard.
package matching

import (
	"regexp"
	"strings"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/normalizers"
)

// Outcome classifies a single listing resolution.
type Outcome string

const (
	OutcomeMatched   Outcome = "matched"   // accepted, unambiguous winner
	OutcomeAmbiguous Outcome = "ambiguous" // runner-up too close to trust
	OutcomeUnmatched Outcome = "unmatched" // no candidate cleared the threshold
)

// Config contains resolver policy. The defaults are calibrated against the
// production registry, not derived; changing them changes observable
// matching behavior.
type Config struct {
	AcceptThreshold float64 // minimum winning score (default: 0.84)
	AmbiguityMargin float64 // minimum lead over the runner-up (default: 0.04)
}

// DefaultConfig returns the calibrated resolver policy.
func DefaultConfig() Config {
	return Config{
		AcceptThreshold: 0.84,
		AmbiguityMargin: 0.04,
	}
}

// Resolution is the result of resolving one listing against the index.
// Candidate is set only when Outcome is OutcomeMatched.
type Resolution struct {
	Outcome    Outcome
	Candidate  *models.Candidate
	Score      float64
	SecondBest float64
}

// Resolver selects the best registry candidate for a scraped listing.
type Resolver struct {
	norm   *normalizers.NameNormalizer
	scorer *Scorer
	cfg    Config
}

// NewResolver creates a resolver over the given normalizer and scorer.
func NewResolver(norm *normalizers.NameNormalizer, scorer *Scorer, cfg Config) *Resolver {
	return &Resolver{
		norm:   norm,
		scorer: scorer,
		cfg:    cfg,
	}
}

// Listing display names often encode "Person | Brokerage", "Person - Brokerage",
// or "Person at Brokerage"; the person half is left of the first separator.
var personSeparators = regexp.MustCompile(`(?i)\s*\||\s+[-–—]\s+|\s+at\s+|\s+@\s+`)

// ExtractPersonName returns the person-ish segment of a listing display
// name: everything left of the first separator, or the whole name when no
// separator is present.
func ExtractPersonName(listingName string) string {
	raw := strings.TrimSpace(listingName)
	parts := personSeparators.Split(raw, 2)
	if len(parts) == 0 {
		return raw
	}
	return strings.TrimSpace(parts[0])
}

// Resolve finds the best candidate for a listing. Listings without a
// display name or city are unmatched immediately, with no scoring
// performed; so are listings whose city bucket is empty.
func (r *Resolver) Resolve(listing models.Listing, index *CityIndex) Resolution {
	listingName := strings.TrimSpace(listing.Name)
	city := strings.TrimSpace(listing.City)
	if listingName == "" || city == "" {
		return Resolution{Outcome: OutcomeUnmatched}
	}

	bucket := index.Bucket(normalizers.City(city))
	if len(bucket) == 0 {
		return Resolution{Outcome: OutcomeUnmatched}
	}

	personish := ExtractPersonName(listingName)
	normListing := r.norm.Normalize(listingName)
	normPersonish := r.norm.Normalize(personish)

	var best *models.Candidate
	var bestScore, secondBest float64

	for _, cand := range bucket {
		if cand.PersonName == "" {
			continue
		}

		// Last-name gate: bigram similarity alone is too permissive for
		// short business names, so the candidate's last name must appear in
		// the listing before the candidate is scored at all.
		if ln := cand.LastName; ln != "" &&
			!strings.Contains(normListing, ln) &&
			!strings.Contains(normPersonish, ln) {
			continue
		}

		score := r.scorer.DiceSimilarity(cand.PersonName, listingName)
		if s := r.scorer.DiceSimilarity(cand.PersonName, personish); s > score {
			score = s
		}

		if best == nil || score > bestScore {
			secondBest = bestScore
			best = cand
			bestScore = score
		} else if score > secondBest {
			secondBest = score
		}
	}

	if best == nil {
		return Resolution{Outcome: OutcomeUnmatched}
	}
	if bestScore < r.cfg.AcceptThreshold {
		return Resolution{Outcome: OutcomeUnmatched, Score: bestScore, SecondBest: secondBest}
	}
	if secondBest > 0 && bestScore-secondBest < r.cfg.AmbiguityMargin {
		return Resolution{Outcome: OutcomeAmbiguous, Score: bestScore, SecondBest: secondBest}
	}

	return Resolution{
		Outcome:    OutcomeMatched,
		Candidate:  best,
		Score:      bestScore,
		SecondBest: secondBest,
	}
}
