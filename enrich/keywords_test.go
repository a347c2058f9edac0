package enrich

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywordsFiltersNoise(t *testing.T) {
	keywords := ExtractKeywords("Whoever commits theft shall be punished with imprisonment.")

	assert.Contains(t, keywords, "theft")
	assert.Contains(t, keywords, "imprisonment")
	assert.NotContains(t, keywords, "shall")
	assert.NotContains(t, keywords, "be")
	assert.NotContains(t, keywords, "with")
}

func TestExtractKeywordsRanksByFrequency(t *testing.T) {
	keywords := ExtractKeywords("theft robbery theft dacoity theft robbery")

	assert.Equal(t, []string{"theft", "robbery", "dacoity"}, keywords)
}

func TestExtractKeywordsTieBreaksByFirstOccurrence(t *testing.T) {
	keywords := ExtractKeywords("robbery dacoity extortion")

	assert.Equal(t, []string{"robbery", "dacoity", "extortion"}, keywords)
}

func TestExtractKeywordsDropsShortTokens(t *testing.T) {
	keywords := ExtractKeywords("go do murder")

	assert.Equal(t, []string{"murder"}, keywords)
}

func TestExtractKeywordsCapsLength(t *testing.T) {
	parts := make([]string, 0, 50)
	for r := 'a'; r < 'a'+26; r++ {
		parts = append(parts, strings.Repeat(string(r), 4))
	}
	keywords := ExtractKeywords(strings.Join(parts, " "))

	assert.Len(t, keywords, maxKeywords)
}

func TestExtractKeywordsEmptyInput(t *testing.T) {
	assert.Empty(t, ExtractKeywords(""))
	assert.Empty(t, ExtractKeywords("  ,.;  "))
}

func TestTokenizeSplitsOnPunctuation(t *testing.T) {
	tokens := Tokenize("House-breaking by night; punishment.")

	assert.Equal(t, []string{"house", "breaking", "by", "night", "punishment"}, tokens)
}
