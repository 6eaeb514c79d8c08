package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/fern/pkg/normalizers"
)

func TestScorer_DiceSimilarity(t *testing.T) {
	scorer := NewScorer(normalizers.Default())

	t.Run("should return 1 for identical non-empty strings", func(t *testing.T) {
		assert.Equal(t, 1.0, scorer.DiceSimilarity("Jane Doe", "Jane Doe"))
		assert.Equal(t, 1.0, scorer.DiceSimilarity("Jane Doe", "JANE   DOE"))
	})

	t.Run("should return 0 when either side normalizes to empty", func(t *testing.T) {
		assert.Equal(t, 0.0, scorer.DiceSimilarity("", "Jane Doe"))
		assert.Equal(t, 0.0, scorer.DiceSimilarity("Jane Doe", ""))
		assert.Equal(t, 0.0, scorer.DiceSimilarity("LLC", "Jane Doe"))
	})

	t.Run("should stay within bounds", func(t *testing.T) {
		pairs := [][2]string{
			{"Jane Doe", "Jane Doe | Keller Williams"},
			{"Jane Doe", "John Smith"},
			{"Doe & Associates", "Jane Doe"},
			{"a", "b"},
			{"ab", "ba"},
		}
		for _, p := range pairs {
			score := scorer.DiceSimilarity(p[0], p[1])
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	})

	t.Run("should be symmetric", func(t *testing.T) {
		pairs := [][2]string{
			{"Jane Doe", "Jane Doe | Keller Williams"},
			{"Doe & Associates", "Jane Doe"},
			{"aaaa", "aa"},
		}
		for _, p := range pairs {
			assert.Equal(t, scorer.DiceSimilarity(p[0], p[1]), scorer.DiceSimilarity(p[1], p[0]))
		}
	})

	t.Run("should count repeated bigrams as a multiset", func(t *testing.T) {
		// bigrams("aaaa") = {aa, aa, aa}, bigrams("aa") = {aa}:
		// one shared occurrence, not three.
		assert.InDelta(t, 0.5, scorer.DiceSimilarity("aaaa", "aa"), 1e-9)
	})

	t.Run("should compare single-character strings", func(t *testing.T) {
		assert.Equal(t, 1.0, scorer.DiceSimilarity("a", "a"))
		assert.Equal(t, 0.0, scorer.DiceSimilarity("a", "b"))
	})

	t.Run("should score higher for closer names", func(t *testing.T) {
		close := scorer.DiceSimilarity("Jane Doe", "Jane Doe Realty")
		far := scorer.DiceSimilarity("Jane Doe", "Robert Smith")
		assert.Greater(t, close, far)
	})
}

func TestBigrams(t *testing.T) {
	t.Run("should window overlapping pairs", func(t *testing.T) {
		assert.Equal(t, []string{"ja", "an", "ne"}, bigrams("jane"))
	})

	t.Run("should yield the string itself for single characters", func(t *testing.T) {
		assert.Equal(t, []string{"a"}, bigrams("a"))
	})

	t.Run("should yield nil for empty input", func(t *testing.T) {
		assert.Nil(t, bigrams(""))
	})
}
