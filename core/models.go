package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs. Sections are keyed
// by IDFromContent(SectionCode), which makes re-ingest an idempotent overwrite.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Severity classifies how grave an offence is.
type Severity int

const (
	// SeverityUnknown is the default when no classification rule fires.
	SeverityUnknown Severity = iota + 1
	// SeverityModerate covers minor offences.
	SeverityModerate
	// SeveritySerious covers grave but non-capital offences.
	SeveritySerious
	// SeverityHeinous covers offences punishable by death or life imprisonment.
	SeverityHeinous
)

// String returns the display form of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityModerate:
		return "Moderate"
	case SeveritySerious:
		return "Serious"
	case SeverityHeinous:
		return "Heinous"
	default:
		return "Unknown"
	}
}

// ParseSeverity maps a display string back onto a Severity.
// Unrecognized input maps to SeverityUnknown.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "moderate":
		return SeverityModerate
	case "serious":
		return SeveritySerious
	case "heinous":
		return SeverityHeinous
	default:
		return SeverityUnknown
	}
}

// TriState represents a yes/no attribute that may be unknown for a section,
// such as whether an offence is bailable.
type TriState int

const (
	// TriStateUnknown is the default when the source data carries no value.
	TriStateUnknown TriState = iota + 1
	// TriStateYes affirms the attribute.
	TriStateYes
	// TriStateNo negates the attribute.
	TriStateNo
)

// String returns the display form of the tri-state value.
func (t TriState) String() string {
	switch t {
	case TriStateYes:
		return "Yes"
	case TriStateNo:
		return "No"
	default:
		return "Unknown"
	}
}

// ParseTriState maps source-data strings such as "Bailable" / "Non-bailable"
// onto a TriState. Unrecognized input maps to TriStateUnknown.
func ParseTriState(s string) TriState {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "yes", "true", "bailable", "cognizable", "compoundable":
		return TriStateYes
	case "no", "false", "non-bailable", "non-cognizable", "non-compoundable":
		return TriStateNo
	default:
		return TriStateUnknown
	}
}

// SearchType identifies which scoring path served a query.
type SearchType int

const (
	// SearchTypeSemantic means the result set came from embedding similarity alone.
	SearchTypeSemantic SearchType = iota + 1
	// SearchTypeLexical means the result set came from the keyword fallback alone.
	SearchTypeLexical
	// SearchTypeHybrid means semantic results were merged with lexical results.
	SearchTypeHybrid
)

// String returns the display form of the search type.
func (s SearchType) String() string {
	switch s {
	case SearchTypeSemantic:
		return "Semantic"
	case SearchTypeLexical:
		return "Lexical"
	case SearchTypeHybrid:
		return "Hybrid"
	default:
		return "Unknown"
	}
}

// LawSection represents a single statutory provision enriched with
// classification metadata. Sections are immutable once indexed and are
// replaced wholesale on re-ingest.
type LawSection struct {
	Id                ID
	SectionCode       string // e.g. "IPC 302", unique and stable across acts
	SectionNumber     string // e.g. "302"
	Title             string // e.g. "Punishment for Murder"
	Description       string // full section text
	Category          string // e.g. "Offences Against Property" (populated by enrichment)
	CrimeType         string // e.g. "Murder" (populated by enrichment)
	Severity          Severity
	Punishment        string
	FineRange         string
	ImprisonmentRange string
	Bailable          TriState
	Cognizable        TriState
	Compoundable      TriState
	Keywords          []string // normalized tokens derived from title + description
	Source            string   // source website/URL
	InsertedAt        time.Time
	UpdatedAt         time.Time
}

// CanonicalText returns the text a section's embedding is computed from.
func (s *LawSection) CanonicalText() string {
	if s.Description == "" {
		return s.Title
	}
	return s.Title + ". " + s.Description
}

// QueryRecord captures one served search query for analytics.
// Records are append-only: created once per query, never mutated.
type QueryRecord struct {
	Id            ID
	QueryText     string
	SearchType    SearchType
	ResultsCount  int
	ExecutionTime time.Duration
	Timestamp     time.Time
}

// MatchSource tags a ranked result with the scoring path that produced it.
type MatchSource int

const (
	// MatchSemantic marks a result scored by cosine similarity.
	MatchSemantic MatchSource = iota + 1
	// MatchLexical marks a result scored by keyword overlap.
	MatchLexical
)

// String returns the display form of the match source.
func (m MatchSource) String() string {
	if m == MatchLexical {
		return "lexical"
	}
	return "semantic"
}

// RankedResult is a transient per-query result. Scores are in [0,1]
// regardless of source; Rank is 1-based within the response.
type RankedResult struct {
	Section *LawSection
	Score   float32
	Rank    int
	Source  MatchSource
}
