package matching

import (
	"github.com/Ramsey-B/fern/pkg/normalizers"
)

// Scorer provides string comparison for candidate resolution. All methods
// are pure; scores are bounded to [0, 1] and symmetric in their arguments.
type Scorer struct {
	norm *normalizers.NameNormalizer
}

// NewScorer creates a Scorer that normalizes inputs with the given
// normalizer before comparing them.
func NewScorer(norm *normalizers.NameNormalizer) *Scorer {
	return &Scorer{norm: norm}
}

// DiceSimilarity computes the Sørensen–Dice coefficient over character
// bigrams of the normalized inputs. Returns 0 when either side normalizes
// to empty, 1 for identical normalized strings.
func (s *Scorer) DiceSimilarity(a, b string) float64 {
	na := s.norm.Normalize(a)
	nb := s.norm.Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	ga := bigrams(na)
	gb := bigrams(nb)

	// Multiset intersection: each bigram occurrence on one side can satisfy
	// at most one occurrence on the other.
	counts := make(map[string]int, len(ga))
	for _, g := range ga {
		counts[g]++
	}
	intersection := 0
	for _, g := range gb {
		if counts[g] > 0 {
			intersection++
			counts[g]--
		}
	}

	return 2 * float64(intersection) / float64(len(ga)+len(gb))
}

// bigrams returns the overlapping 2-character windows of s. A
// single-character string yields one "bigram" equal to itself so very short
// names still compare, at reduced fidelity.
func bigrams(s string) []string {
	if len(s) < 2 {
		if s == "" {
			return nil
		}
		return []string{s}
	}
	out := make([]string, 0, len(s)-1)
	for i := 0; i < len(s)-1; i++ {
		out = append(out, s[i:i+2])
	}
	return out
}
