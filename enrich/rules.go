package enrich

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Sachin007-lgtm/Section-Sense/core"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// CategoryRule maps a set of substring patterns to a category label.
type CategoryRule struct {
	Category string
	Patterns []string
}

// CrimeRule maps a set of substring keywords to a crime type and severity.
type CrimeRule struct {
	CrimeType string
	Severity  core.Severity
	Keywords  []string
}

// RuleSet is a compiled, ordered classification dispatch table.
// Rules are evaluated top to bottom; the first match wins.
type RuleSet struct {
	Categories      []CategoryRule
	DefaultCategory string
	Crimes          []CrimeRule
}

// yaml wire format
type ruleFile struct {
	DefaultCategory string             `yaml:"default_category"`
	Categories      []categoryRuleYAML `yaml:"categories"`
	Crimes          []crimeRuleYAML    `yaml:"crimes"`
}

type categoryRuleYAML struct {
	Category string   `yaml:"category"`
	Patterns []string `yaml:"patterns"`
}

type crimeRuleYAML struct {
	CrimeType string   `yaml:"crime_type"`
	Severity  string   `yaml:"severity"`
	Keywords  []string `yaml:"keywords"`
}

// LoadRules parses and compiles a YAML rule table.
// Patterns and keywords are lower-cased at load time so matching stays
// case-insensitive without per-record work.
func LoadRules(r io.Reader) (*RuleSet, error) {
	var file ruleFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}

	if file.DefaultCategory == "" {
		return nil, fmt.Errorf("rules: default_category is required")
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("rules: at least one category rule is required")
	}

	rules := &RuleSet{
		DefaultCategory: file.DefaultCategory,
		Categories:      make([]CategoryRule, 0, len(file.Categories)),
		Crimes:          make([]CrimeRule, 0, len(file.Crimes)),
	}

	for i, c := range file.Categories {
		if c.Category == "" {
			return nil, fmt.Errorf("rules: category rule %d has no label", i)
		}
		if len(c.Patterns) == 0 {
			return nil, fmt.Errorf("rules: category %q has no patterns", c.Category)
		}
		rules.Categories = append(rules.Categories, CategoryRule{
			Category: c.Category,
			Patterns: lowerAll(c.Patterns),
		})
	}

	for i, c := range file.Crimes {
		if c.CrimeType == "" {
			return nil, fmt.Errorf("rules: crime rule %d has no label", i)
		}
		if len(c.Keywords) == 0 {
			return nil, fmt.Errorf("rules: crime type %q has no keywords", c.CrimeType)
		}
		rules.Crimes = append(rules.Crimes, CrimeRule{
			CrimeType: c.CrimeType,
			Severity:  core.ParseSeverity(c.Severity),
			Keywords:  lowerAll(c.Keywords),
		})
	}

	return rules, nil
}

var loadDefaultRules = sync.OnceValues(func() (*RuleSet, error) {
	return LoadRules(bytes.NewReader(defaultRulesYAML))
})

// DefaultRules returns the compiled rule table embedded in the binary.
func DefaultRules() (*RuleSet, error) {
	return loadDefaultRules()
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}
