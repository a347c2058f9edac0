package enrich

import (
	"strings"
	"testing"

	"github.com/Sachin007-lgtm/Section-Sense/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEnricher(t *testing.T) *Enricher {
	t.Helper()
	enricher, err := NewEnricher()
	require.NoError(t, err)
	return enricher
}

func TestEnrichClassifiesMurderAsHeinous(t *testing.T) {
	enricher := newTestEnricher(t)

	section := &core.LawSection{
		SectionCode: "BNS 103",
		Title:       "Punishment for murder",
		Description: "Whoever commits murder shall be punished with death or imprisonment for life.",
	}
	enricher.Enrich(section)

	assert.Equal(t, "Offences Affecting the Human Body", section.Category)
	assert.Equal(t, "Murder", section.CrimeType)
	assert.Equal(t, core.SeverityHeinous, section.Severity)
	assert.Contains(t, section.Keywords, "murder")
}

func TestEnrichClassifiesTheftAsModerate(t *testing.T) {
	enricher := newTestEnricher(t)

	section := &core.LawSection{
		SectionCode: "BNS 303",
		Title:       "Theft",
		Description: "Whoever intends to take dishonestly any movable property commits theft.",
	}
	enricher.Enrich(section)

	assert.Equal(t, "Offences Against Property", section.Category)
	assert.Equal(t, "Theft", section.CrimeType)
	assert.Equal(t, core.SeverityModerate, section.Severity)
}

func TestEnrichFallsBackToDefaultCategory(t *testing.T) {
	enricher := newTestEnricher(t)

	section := &core.LawSection{
		SectionCode: "BNS 1",
		Title:       "Short title, commencement and application",
		Description: "This Act extends to the whole country.",
	}
	enricher.Enrich(section)

	assert.Equal(t, "General Provisions", section.Category)
	assert.Equal(t, "", section.CrimeType)
	assert.Equal(t, core.SeverityUnknown, section.Severity)
}

func TestEnrichFirstMatchWins(t *testing.T) {
	enricher := newTestEnricher(t)

	// Mentions both murder and theft; the human-body rule is listed
	// before the property rule so it must win.
	section := &core.LawSection{
		SectionCode: "BNS 310",
		Title:       "Dacoity with murder",
		Description: "If any one of five or more persons commits murder in committing dacoity.",
	}
	enricher.Enrich(section)

	assert.Equal(t, "Offences Affecting the Human Body", section.Category)
	assert.Equal(t, "Murder", section.CrimeType)
	assert.Equal(t, core.SeverityHeinous, section.Severity)
}

func TestEnrichPreservesCuratedFields(t *testing.T) {
	enricher := newTestEnricher(t)

	section := &core.LawSection{
		SectionCode: "BNS 303",
		Title:       "Theft",
		Description: "Whoever commits theft shall be punished.",
		Category:    "Curated Category",
		CrimeType:   "Curated Crime",
		Severity:    core.SeveritySerious,
		Keywords:    []string{"curated"},
	}
	enricher.Enrich(section)

	assert.Equal(t, "Curated Category", section.Category)
	assert.Equal(t, "Curated Crime", section.CrimeType)
	assert.Equal(t, core.SeveritySerious, section.Severity)
	assert.Equal(t, []string{"curated"}, section.Keywords)
}

func TestEnrichIsDeterministic(t *testing.T) {
	enricher := newTestEnricher(t)

	make := func() *core.LawSection {
		return &core.LawSection{
			SectionCode: "BNS 303",
			Title:       "Theft",
			Description: "Whoever commits theft of movable property commits theft.",
		}
	}

	a, b := make(), make()
	enricher.Enrich(a)
	enricher.Enrich(b)

	assert.Equal(t, a.Category, b.Category)
	assert.Equal(t, a.CrimeType, b.CrimeType)
	assert.Equal(t, a.Severity, b.Severity)
	assert.Equal(t, a.Keywords, b.Keywords)
}

func TestEnrichAll(t *testing.T) {
	enricher := newTestEnricher(t)

	sections := []*core.LawSection{
		{SectionCode: "BNS 103", Title: "Punishment for murder"},
		{SectionCode: "BNS 303", Title: "Theft"},
	}
	enricher.EnrichAll(sections)

	for _, section := range sections {
		assert.NotEmpty(t, section.Category)
	}
}

func TestLoadRulesRejectsInvalidTables(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing default", "categories:\n  - category: A\n    patterns: [x]\n"},
		{"no categories", "default_category: General\n"},
		{"category without label", "default_category: General\ncategories:\n  - patterns: [x]\n"},
		{"category without patterns", "default_category: General\ncategories:\n  - category: A\n"},
		{"crime without keywords", "default_category: General\ncategories:\n  - category: A\n    patterns: [x]\ncrimes:\n  - crime_type: B\n    severity: Moderate\n"},
		{"unknown field", "default_category: General\ncategories:\n  - category: A\n    patterns: [x]\nbogus: true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRules(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadRulesLowercasesPatterns(t *testing.T) {
	rules, err := LoadRules(strings.NewReader(
		"default_category: General\ncategories:\n  - category: A\n    patterns: [THEFT, ' Robbery ']\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"theft", "robbery"}, rules.Categories[0].Patterns)
}

func TestDefaultRulesParse(t *testing.T) {
	rules, err := DefaultRules()
	require.NoError(t, err)
	assert.Equal(t, "General Provisions", rules.DefaultCategory)
	assert.NotEmpty(t, rules.Categories)
	assert.NotEmpty(t, rules.Crimes)

	for _, crime := range rules.Crimes {
		assert.NotEqual(t, core.SeverityUnknown, crime.Severity,
			"crime rule %q must carry a known severity", crime.CrimeType)
	}
}
