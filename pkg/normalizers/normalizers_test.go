package normalizers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameNormalizer_Normalize(t *testing.T) {
	norm := Default()

	t.Run("should lowercase and collapse whitespace", func(t *testing.T) {
		assert.Equal(t, "jane doe", norm.Normalize("  Jane   DOE  "))
	})

	t.Run("should expand ampersand to and", func(t *testing.T) {
		assert.Equal(t, "doe and associates", norm.Normalize("Doe & Associates, Inc."))
	})

	t.Run("should strip legal suffixes", func(t *testing.T) {
		assert.Equal(t, "acme", norm.Normalize("Acme LLC"))
		assert.Equal(t, "acme", norm.Normalize("ACME Corp"))
		assert.Equal(t, "acme", norm.Normalize("Acme Company"))
	})

	t.Run("should strip generic trade terms including phrases", func(t *testing.T) {
		assert.Equal(t, "smith", norm.Normalize("Smith Real Estate Team"))
		assert.Equal(t, "re max", norm.Normalize("RE/MAX Properties"))
	})

	t.Run("should not strip terms embedded in words", func(t *testing.T) {
		// "co" inside "costello" is not a suffix
		assert.Equal(t, "costello", norm.Normalize("Costello"))
	})

	t.Run("should yield empty for empty or whitespace input", func(t *testing.T) {
		assert.Equal(t, "", norm.Normalize(""))
		assert.Equal(t, "", norm.Normalize("   "))
	})

	t.Run("should yield empty when only stoplist terms remain", func(t *testing.T) {
		assert.Equal(t, "", norm.Normalize("Group LLC"))
		assert.Equal(t, "", norm.Normalize("Real Estate Brokerage"))
	})

	t.Run("should honor injected stoplists", func(t *testing.T) {
		custom := NewNameNormalizer([]string{"gmbh"}, []string{"notariat"})
		assert.Equal(t, "muller", norm.Normalize("Muller"))
		assert.Equal(t, "muller", custom.Normalize("Muller Notariat GmbH"))
	})
}

func TestNameNormalizer_Tokens(t *testing.T) {
	norm := Default()

	t.Run("should split normalized name into tokens", func(t *testing.T) {
		assert.Equal(t, []string{"john", "q", "public"}, norm.Tokens("John Q. Public"))
	})

	t.Run("should return nil for unnormalizable input", func(t *testing.T) {
		assert.Nil(t, norm.Tokens("  "))
		assert.Nil(t, norm.Tokens("LLC"))
	})
}

func TestNameNormalizer_LastToken(t *testing.T) {
	norm := Default()

	t.Run("should return final token", func(t *testing.T) {
		assert.Equal(t, "public", norm.LastToken("John Q. Public"))
	})

	t.Run("should return empty for tokenless input", func(t *testing.T) {
		assert.Equal(t, "", norm.LastToken(""))
	})
}

func TestCity(t *testing.T) {
	t.Run("should lowercase and trim", func(t *testing.T) {
		assert.Equal(t, "chicago", City(" Chicago "))
	})

	t.Run("should expand saint abbreviation", func(t *testing.T) {
		assert.Equal(t, "saint louis", City("St. Louis"))
		assert.Equal(t, "saint charles", City("St Charles"))
	})

	t.Run("should leave embedded st alone", func(t *testing.T) {
		assert.Equal(t, "westmont", City("Westmont"))
	})

	t.Run("should collapse punctuation", func(t *testing.T) {
		assert.Equal(t, "o fallon", City("O'Fallon"))
	})

	t.Run("should yield empty for empty input", func(t *testing.T) {
		assert.Equal(t, "", City(""))
	})
}
