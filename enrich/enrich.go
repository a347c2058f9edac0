// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package enrich

import (
	"log/slog"
	"strings"

	"github.com/Sachin007-lgtm/Section-Sense/core"
)

// Enricher derives category, crime type, severity, and keywords for law
// sections that arrive without them. Classification is deterministic: the
// same section always produces the same enrichment.
type Enricher struct {
	rules  *RuleSet
	logger *slog.Logger
}

// EnricherOption configures an Enricher.
type EnricherOption func(*Enricher) error

// WithRules overrides the embedded rule table.
func WithRules(rules *RuleSet) EnricherOption {
	return func(e *Enricher) error {
		e.rules = rules
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) EnricherOption {
	return func(e *Enricher) error {
		e.logger = logger
		return nil
	}
}

// NewEnricher creates an Enricher backed by the embedded rule table unless
// WithRules overrides it.
func NewEnricher(opts ...EnricherOption) (*Enricher, error) {
	e := &Enricher{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	if e.rules == nil {
		rules, err := DefaultRules()
		if err != nil {
			return nil, err
		}
		e.rules = rules
	}

	e.logger = e.logger.With("component", "enricher")

	return e, nil
}

// Enrich fills in the derived fields of a section in place. Fields that
// already carry a value are left alone, so curated datasets survive a
// re-run unchanged.
func (e *Enricher) Enrich(section *core.LawSection) {
	text := strings.ToLower(section.CanonicalText())

	if section.Category == "" {
		section.Category = e.classifyCategory(text)
	}

	crimeType, severity := e.classifyCrime(text)
	if section.CrimeType == "" {
		section.CrimeType = crimeType
	}
	// The zero value means "never classified"; SeverityUnknown means a
	// previous run found no rule. Both are fair game for reclassification.
	if section.Severity == 0 || section.Severity == core.SeverityUnknown {
		section.Severity = severity
	}

	if len(section.Keywords) == 0 {
		section.Keywords = ExtractKeywords(section.CanonicalText())
	}
}

// EnrichAll enriches every section in the slice.
func (e *Enricher) EnrichAll(sections []*core.LawSection) {
	for _, section := range sections {
		e.Enrich(section)
	}
}

func (e *Enricher) classifyCategory(text string) string {
	for _, rule := range e.rules.Categories {
		for _, pattern := range rule.Patterns {
			if strings.Contains(text, pattern) {
				return rule.Category
			}
		}
	}
	return e.rules.DefaultCategory
}

func (e *Enricher) classifyCrime(text string) (string, core.Severity) {
	for _, rule := range e.rules.Crimes {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, keyword) {
				return rule.CrimeType, rule.Severity
			}
		}
	}
	return "", core.SeverityUnknown
}
