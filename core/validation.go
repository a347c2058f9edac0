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


package core

import (
	"fmt"
	"time"
)

// ValidateLawSection validates a LawSection according to domain rules.
//
// Validation rules:
//   - SectionCode must not be empty
//   - Title must not be empty
//   - Severity and tri-state fields must be valid enum values when set
//
// NOT validated (populated by enrichment):
//   - Category, CrimeType, Keywords (empty until the enrichment pipeline runs)
//   - ID (derived from SectionCode on store)
func ValidateLawSection(section *LawSection) error {
	if section == nil {
		return fmt.Errorf("%w: section is nil", ErrInvalidLawSection)
	}

	if section.SectionCode == "" {
		return fmt.Errorf("%w: %w", ErrInvalidLawSection, ErrEmptySectionCode)
	}

	if section.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidLawSection, ErrEmptyTitle)
	}

	if section.Severity != 0 {
		if err := ValidateSeverity(section.Severity); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidLawSection, err)
		}
	}

	for _, ts := range []TriState{section.Bailable, section.Cognizable, section.Compoundable} {
		if ts == 0 {
			continue
		}
		if err := ValidateTriState(ts); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidLawSection, err)
		}
	}

	return nil
}

// ValidateQueryRecord validates a QueryRecord according to domain rules.
//
// Validation rules:
//   - QueryText must not be empty
//   - SearchType must be a valid enum value
//   - Timestamp must not be in the future
func ValidateQueryRecord(record *QueryRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidQueryRecord)
	}

	if record.QueryText == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQueryRecord, ErrEmptyQueryText)
	}

	if err := ValidateSearchType(record.SearchType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQueryRecord, err)
	}

	if !IsValidTimestamp(record.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidQueryRecord, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateSeverity validates that a Severity has a valid value.
func ValidateSeverity(severity Severity) error {
	switch severity {
	case SeverityUnknown, SeverityModerate, SeveritySerious, SeverityHeinous:
		return nil
	}
	return fmt.Errorf("%w: value %d", ErrInvalidSeverity, severity)
}

// ValidateTriState validates that a TriState has a valid value.
func ValidateTriState(value TriState) error {
	switch value {
	case TriStateUnknown, TriStateYes, TriStateNo:
		return nil
	}
	return fmt.Errorf("%w: value %d", ErrInvalidTriState, value)
}

// ValidateSearchType validates that a SearchType has a valid value.
func ValidateSearchType(searchType SearchType) error {
	switch searchType {
	case SearchTypeSemantic, SearchTypeLexical, SearchTypeHybrid:
		return nil
	}
	return fmt.Errorf("%w: value %d", ErrInvalidSearchType, searchType)
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
