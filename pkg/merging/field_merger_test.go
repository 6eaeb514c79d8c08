package merging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/matching"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/normalizers"
)

func newTestMerger() *FieldMerger {
	scorer := matching.NewScorer(normalizers.Default())
	return NewFieldMerger(scorer, DefaultBrandPatterns)
}

func TestFieldMerger_Merge(t *testing.T) {
	merger := newTestMerger()
	cand := &models.Candidate{LicenseNumber: "L1", PersonName: "Jane Doe"}

	t.Run("should project listing fields into a fresh record", func(t *testing.T) {
		listing := models.Listing{
			Name:    "Jane Doe | Keller Williams",
			City:    "Chicago",
			Phone:   " 312-555-0100 ",
			Website: "https://a.com",
			Rating:  4.8,
			Reviews: "120",
			Photo:   "https://img/p.jpg",
			PlaceID: "gp-1",
		}

		e := merger.Merge(nil, listing, cand)

		require.NotNil(t, e)
		assert.Equal(t, "312-555-0100", *e.Phone)
		assert.Equal(t, "https://a.com", *e.Website)
		assert.Equal(t, 4.8, *e.Rating)
		assert.Equal(t, 120.0, *e.ReviewCount)
		assert.Equal(t, "https://img/p.jpg", *e.PhotoURL)
		assert.Equal(t, "gp-1", *e.GooglePlaceID)
		assert.Nil(t, e.Email)
	})

	t.Run("should fall back from website to site and photo to logo", func(t *testing.T) {
		e := merger.Merge(nil, models.Listing{
			Name: "Jane Doe",
			Site: "https://fallback.com",
			Logo: "https://img/logo.png",
		}, cand)

		assert.Equal(t, "https://fallback.com", *e.Website)
		assert.Equal(t, "https://img/logo.png", *e.PhotoURL)
	})

	t.Run("should prefer website and photo over their fallbacks", func(t *testing.T) {
		e := merger.Merge(nil, models.Listing{
			Name:    "Jane Doe",
			Website: "https://primary.com",
			Site:    "https://fallback.com",
			Photo:   "https://img/photo.jpg",
			Logo:    "https://img/logo.png",
		}, cand)

		assert.Equal(t, "https://primary.com", *e.Website)
		assert.Equal(t, "https://img/photo.jpg", *e.PhotoURL)
	})

	t.Run("should coerce numeric strings and drop garbage", func(t *testing.T) {
		e := merger.Merge(nil, models.Listing{Name: "Jane Doe", Rating: "4.5", Reviews: "lots"}, cand)

		require.NotNil(t, e.Rating)
		assert.Equal(t, 4.5, *e.Rating)
		assert.Nil(t, e.ReviewCount)
	})

	t.Run("should preserve populated fields when a pass carries nothing", func(t *testing.T) {
		first := merger.Merge(nil, models.Listing{Name: "Jane Doe", Website: "https://a.com"}, cand)
		second := merger.Merge(first, models.Listing{Name: "Jane Doe", Rating: 4.9}, cand)

		require.NotNil(t, second.Website)
		assert.Equal(t, "https://a.com", *second.Website)
		require.NotNil(t, second.Rating)
		assert.Equal(t, 4.9, *second.Rating)
	})

	t.Run("should let a later non-empty value overwrite", func(t *testing.T) {
		first := merger.Merge(nil, models.Listing{Name: "Jane Doe", Phone: "111"}, cand)
		second := merger.Merge(first, models.Listing{Name: "Jane Doe", Phone: "222"}, cand)

		assert.Equal(t, "222", *second.Phone)
	})

	t.Run("should use the raw listing name as office when it reads like one", func(t *testing.T) {
		e := merger.Merge(nil, models.Listing{Name: "Jane Doe | Keller Williams"}, cand)

		require.NotNil(t, e.OfficeName)
		assert.Equal(t, "Jane Doe | Keller Williams", *e.OfficeName)
	})

	t.Run("should leave office unset for a plain person name", func(t *testing.T) {
		e := merger.Merge(nil, models.Listing{Name: "Jane Doe"}, cand)
		assert.Nil(t, e.OfficeName)
	})

	t.Run("should prefer the declared business name over the listing name", func(t *testing.T) {
		withDBA := &models.Candidate{LicenseNumber: "L1", PersonName: "Jane Doe", BusinessDBA: "Doe & Associates"}

		e := merger.Merge(nil, models.Listing{Name: "Jane Doe | Keller Williams"}, withDBA)

		require.NotNil(t, e.OfficeName)
		assert.Equal(t, "Doe & Associates", *e.OfficeName)
	})
}

func TestFieldMerger_DeclaredOfficeName(t *testing.T) {
	merger := newTestMerger()

	t.Run("should accept a distinct declared name", func(t *testing.T) {
		cand := &models.Candidate{PersonName: "Jane Doe", BusinessDBA: "Doe & Associates"}
		name := merger.DeclaredOfficeName(cand)
		require.NotNil(t, name)
		assert.Equal(t, "Doe & Associates", *name)
	})

	t.Run("should discard a name that restates the person", func(t *testing.T) {
		cand := &models.Candidate{PersonName: "Jane Doe", BusinessDBA: "Jane Doe"}
		assert.Nil(t, merger.DeclaredOfficeName(cand))
	})

	t.Run("should discard empty and too-short names", func(t *testing.T) {
		assert.Nil(t, merger.DeclaredOfficeName(&models.Candidate{PersonName: "Jane Doe"}))
		assert.Nil(t, merger.DeclaredOfficeName(&models.Candidate{PersonName: "Jane Doe", BusinessDBA: " XY "}))
	})
}

func TestFieldMerger_LooksLikeOfficeName(t *testing.T) {
	merger := newTestMerger()

	t.Run("should flag low similarity to the person name", func(t *testing.T) {
		assert.True(t, merger.LooksLikeOfficeName("Windy City Homes", "Jane Doe"))
	})

	t.Run("should flag separator patterns", func(t *testing.T) {
		assert.True(t, merger.LooksLikeOfficeName("Jane Doe | Group", "Jane Doe"))
		assert.True(t, merger.LooksLikeOfficeName("Jane Doe - Homes", "Jane Doe"))
	})

	t.Run("should flag brokerage brands", func(t *testing.T) {
		assert.True(t, merger.LooksLikeOfficeName("Jane Doe KW", "Jane Doe"))
	})

	t.Run("should not flag the bare person name", func(t *testing.T) {
		assert.False(t, merger.LooksLikeOfficeName("Jane Doe", "Jane Doe"))
	})
}

func TestFieldMerger_ApplyDeclaredNames(t *testing.T) {
	merger := newTestMerger()

	t.Run("should create office-only records for unmatched professionals", func(t *testing.T) {
		candidates := map[string]*models.Candidate{
			"L1": {LicenseNumber: "L1", PersonName: "Jane Doe", BusinessDBA: "Doe & Associates"},
		}
		out := make(map[string]*models.Enrichment)
		stats := models.MatchStats{}

		merger.ApplyDeclaredNames(candidates, out, &stats)

		require.Contains(t, out, "L1")
		e := out["L1"]
		require.NotNil(t, e.OfficeName)
		assert.Equal(t, "Doe & Associates", *e.OfficeName)
		assert.Nil(t, e.Phone)
		assert.Nil(t, e.Website)
		assert.Nil(t, e.Rating)
		assert.Nil(t, e.ReviewCount)
		assert.Nil(t, e.PhotoURL)
		assert.Nil(t, e.GooglePlaceID)
		assert.Equal(t, 1, stats.DeclaredNameOnly)
	})

	t.Run("should fill a missing office on an existing record without counting", func(t *testing.T) {
		candidates := map[string]*models.Candidate{
			"L1": {LicenseNumber: "L1", PersonName: "Jane Doe", BusinessDBA: "Doe & Associates"},
		}
		phone := "312"
		out := map[string]*models.Enrichment{"L1": {Phone: &phone}}
		stats := models.MatchStats{}

		merger.ApplyDeclaredNames(candidates, out, &stats)

		require.NotNil(t, out["L1"].OfficeName)
		assert.Equal(t, "Doe & Associates", *out["L1"].OfficeName)
		assert.Equal(t, "312", *out["L1"].Phone)
		assert.Equal(t, 0, stats.DeclaredNameOnly)
	})

	t.Run("should leave an existing office name alone", func(t *testing.T) {
		candidates := map[string]*models.Candidate{
			"L1": {LicenseNumber: "L1", PersonName: "Jane Doe", BusinessDBA: "Doe & Associates"},
		}
		office := "Prior Office"
		out := map[string]*models.Enrichment{"L1": {OfficeName: &office}}
		stats := models.MatchStats{}

		merger.ApplyDeclaredNames(candidates, out, &stats)

		assert.Equal(t, "Prior Office", *out["L1"].OfficeName)
		assert.Equal(t, 0, stats.DeclaredNameOnly)
	})

	t.Run("should skip candidates without a meaningful declared name", func(t *testing.T) {
		candidates := map[string]*models.Candidate{
			"L1": {LicenseNumber: "L1", PersonName: "Jane Doe"},
			"L2": {LicenseNumber: "L2", PersonName: "Bob Smith", BusinessDBA: "Bob Smith"},
		}
		out := make(map[string]*models.Enrichment)
		stats := models.MatchStats{}

		merger.ApplyDeclaredNames(candidates, out, &stats)

		assert.Empty(t, out)
		assert.Equal(t, 0, stats.DeclaredNameOnly)
	})
}
