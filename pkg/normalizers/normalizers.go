// Package normalizers provides field normalization functions for candidate
// indexing and listing comparison.
package normalizers

import (
	"regexp"
	"strings"
)

// DefaultLegalSuffixes are corporate suffixes stripped from business names
// before comparison.
var DefaultLegalSuffixes = []string{
	"inc", "llc", "ltd", "corp", "corporation", "co", "company",
}

// DefaultGenericTerms are trade words so common in this vertical that they
// carry no identity signal.
var DefaultGenericTerms = []string{
	"realtor", "realtors", "real estate", "properties", "property",
	"team", "group", "brokerage", "broker", "agent", "agents",
}

var (
	nonAlnumSpace = regexp.MustCompile(`[^a-z0-9\s]+`)
	nonAlnum      = regexp.MustCompile(`[^a-z0-9]+`)
	whitespace    = regexp.MustCompile(`\s+`)
	saintAbbrev   = regexp.MustCompile(`\bst\.?\b`)
)

// NameNormalizer canonicalizes person and business names into comparable
// tokens. Stoplists are injected so they can be swapped per vertical
// without touching the algorithm.
type NameNormalizer struct {
	legalSuffixes *regexp.Regexp
	genericTerms  *regexp.Regexp
}

// NewNameNormalizer builds a normalizer from the given stoplists. Nil or
// empty lists disable the corresponding pass.
func NewNameNormalizer(legalSuffixes, genericTerms []string) *NameNormalizer {
	return &NameNormalizer{
		legalSuffixes: compileStoplist(legalSuffixes),
		genericTerms:  compileStoplist(genericTerms),
	}
}

// Default returns a normalizer with the built-in stoplists.
func Default() *NameNormalizer {
	return NewNameNormalizer(DefaultLegalSuffixes, DefaultGenericTerms)
}

// compileStoplist turns terms into a single word-bounded alternation.
// Spaces inside a term match any run of whitespace ("real estate").
func compileStoplist(terms []string) *regexp.Regexp {
	if len(terms) == 0 {
		return nil
	}
	alts := make([]string, 0, len(terms))
	for _, term := range terms {
		words := strings.Fields(strings.ToLower(term))
		if len(words) == 0 {
			continue
		}
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}
		alts = append(alts, strings.Join(words, `\s+`))
	}
	if len(alts) == 0 {
		return nil
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(alts, "|") + `)\b`)
}

// Normalize canonicalizes a free-text name: lowercase, "&" expanded to
// "and", punctuation collapsed, stoplist terms removed, whitespace
// collapsed. An empty result means the value is unnormalizable and must be
// excluded from matching by the caller.
func (n *NameNormalizer) Normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "&", " and ")
	s = nonAlnumSpace.ReplaceAllString(s, " ")
	if n.legalSuffixes != nil {
		s = n.legalSuffixes.ReplaceAllString(s, " ")
	}
	if n.genericTerms != nil {
		s = n.genericTerms.ReplaceAllString(s, " ")
	}
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Tokens splits the normalized name on whitespace, dropping empty tokens.
func (n *NameNormalizer) Tokens(s string) []string {
	norm := n.Normalize(s)
	if norm == "" {
		return nil
	}
	return strings.Fields(norm)
}

// LastToken returns the final token of the normalized name, or "" when the
// name has no tokens.
func (n *NameNormalizer) LastToken(s string) string {
	tokens := n.Tokens(s)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}

// City canonicalizes a city name for use as an index key: lowercase,
// "st"/"st." expanded to "saint", punctuation collapsed.
func City(s string) string {
	s = strings.ToLower(s)
	s = saintAbbrev.ReplaceAllString(s, "saint")
	s = nonAlnum.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
