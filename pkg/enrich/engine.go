// Package enrich drives the enrichment pipeline: registry records are
// indexed by city, scraped listings are resolved against the index, and
// resolved matches merge into one enrichment map keyed by license number.
package enrich

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Ramsey-B/fern/pkg/matching"
	"github.com/Ramsey-B/fern/pkg/merging"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/normalizers"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// Config assembles the tunable policy for a full engine: resolver
// thresholds plus the normalizer stoplists and brand patterns.
type Config struct {
	Resolver      matching.Config
	LegalSuffixes []string
	GenericTerms  []string
	BrandPatterns []string
}

// DefaultConfig returns the calibrated production policy.
func DefaultConfig() Config {
	return Config{
		Resolver:      matching.DefaultConfig(),
		LegalSuffixes: normalizers.DefaultLegalSuffixes,
		GenericTerms:  normalizers.DefaultGenericTerms,
		BrandPatterns: merging.DefaultBrandPatterns,
	}
}

// Batch pairs one professional category's registry extract with the
// scraped listings for that category.
type Batch struct {
	Category string
	Registry []models.RegistryRecord
	Listings []models.Listing
}

// Engine is the enrichment-matching engine. It performs no I/O and holds
// no state between calls; batches sharing an output map must be applied
// sequentially (the merge precedence is a read-then-write per license).
type Engine struct {
	norm     *normalizers.NameNormalizer
	resolver *matching.Resolver
	merger   *merging.FieldMerger
}

// NewEngine wires the engine from config.
func NewEngine(cfg Config) *Engine {
	norm := normalizers.NewNameNormalizer(cfg.LegalSuffixes, cfg.GenericTerms)
	scorer := matching.NewScorer(norm)
	return &Engine{
		norm:     norm,
		resolver: matching.NewResolver(norm, scorer, cfg.Resolver),
		merger:   merging.NewFieldMerger(scorer, cfg.BrandPatterns),
	}
}

// BuildIndex indexes a registry extract for listing resolution.
func (e *Engine) BuildIndex(ctx context.Context, registry []models.RegistryRecord) *matching.CityIndex {
	_, span := tracing.StartSpan(ctx, "enrich.Engine.BuildIndex")
	defer span.End()

	return matching.BuildIndex(registry, e.norm)
}

// ApplyListings resolves each listing against the index and merges accepted
// matches into out. Skipped and unmatched listings leave out and the
// matched counter untouched; ambiguous resolutions are discarded and
// counted.
func (e *Engine) ApplyListings(ctx context.Context, index *matching.CityIndex, listings []models.Listing, out map[string]*models.Enrichment, stats *models.MatchStats) {
	_, span := tracing.StartSpan(ctx, "enrich.Engine.ApplyListings")
	defer span.End()

	for _, listing := range listings {
		res := e.resolver.Resolve(listing, index)
		switch res.Outcome {
		case matching.OutcomeAmbiguous:
			stats.Ambiguous++
		case matching.OutcomeMatched:
			license := res.Candidate.LicenseNumber
			out[license] = e.merger.Merge(out[license], listing, res.Candidate)
			stats.Matched++
		}
	}
}

// ApplyDeclaredNames runs the declared-business-name fallback for every
// indexed candidate, including those whose city never bucketed.
func (e *Engine) ApplyDeclaredNames(ctx context.Context, candidates map[string]*models.Candidate, out map[string]*models.Enrichment, stats *models.MatchStats) {
	_, span := tracing.StartSpan(ctx, "enrich.Engine.ApplyDeclaredNames")
	defer span.End()

	e.merger.ApplyDeclaredNames(candidates, out, stats)
}

// Enrich runs the full pipeline over the given batches sequentially and
// returns the merged enrichment set with its summary envelope. A nil or
// empty batch slice is a programming error and fails fast.
func (e *Engine) Enrich(ctx context.Context, batches []Batch) (*models.EnrichmentSet, error) {
	ctx, span := tracing.StartSpan(ctx, "enrich.Engine.Enrich")
	defer span.End()

	if len(batches) == 0 {
		return nil, errors.New("enrich: no batches provided")
	}

	out := make(map[string]*models.Enrichment)
	stats := models.MatchStats{}
	candidates := make(map[string]*models.Candidate)

	for _, batch := range batches {
		index := e.BuildIndex(ctx, batch.Registry)
		e.ApplyListings(ctx, index, batch.Listings, out, &stats)
		for license, cand := range index.ByLicense() {
			candidates[license] = cand
		}
	}

	e.ApplyDeclaredNames(ctx, candidates, out, &stats)

	return &models.EnrichmentSet{
		RunID:           uuid.New().String(),
		GeneratedAt:     time.Now().UTC(),
		Matched:         stats.Matched,
		Ambiguous:       stats.Ambiguous,
		DBAOnly:         stats.DeclaredNameOnly,
		RecordCount:     len(out),
		ByLicenseNumber: out,
	}, nil
}
