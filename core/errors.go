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

import "errors"

// Domain validation errors
var (
	// ErrInvalidLawSection indicates a LawSection failed validation.
	ErrInvalidLawSection = errors.New("invalid law section")

	// ErrInvalidQueryRecord indicates a QueryRecord failed validation.
	ErrInvalidQueryRecord = errors.New("invalid query record")

	// ErrEmptySectionCode indicates the SectionCode field is empty.
	ErrEmptySectionCode = errors.New("section code cannot be empty")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyQueryText indicates the QueryText field is empty.
	ErrEmptyQueryText = errors.New("query text cannot be empty")

	// ErrInvalidSeverity indicates an invalid Severity value.
	ErrInvalidSeverity = errors.New("invalid severity")

	// ErrInvalidTriState indicates an invalid TriState value.
	ErrInvalidTriState = errors.New("invalid tri-state value")

	// ErrInvalidSearchType indicates an invalid SearchType value.
	ErrInvalidSearchType = errors.New("invalid search type")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")
)
