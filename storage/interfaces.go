package storage

import (
	"context"

	"github.com/Sachin007-lgtm/Section-Sense/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// SectionRepository provides operations for managing law sections.
// Sections are keyed by core.IDFromContent(SectionCode), so putting a section
// with an existing code replaces it wholesale.
type SectionRepository interface {
	Repository

	// PutSections stores one or more law sections, replacing any existing
	// section with the same code. IDs are derived from the section code and
	// InsertedAt is set for new records, UpdatedAt always.
	// Returns the sections with IDs and timestamps populated.
	PutSections(ctx context.Context, sections ...*core.LawSection) ([]*core.LawSection, error)

	// GetSection retrieves a single section by its code.
	// Returns ErrNotFound if the section doesn't exist.
	GetSection(ctx context.Context, sectionCode string) (*core.LawSection, error)

	// ListSections retrieves every stored section. This is the snapshot the
	// index builder consumes; ordering is unspecified.
	ListSections(ctx context.Context) ([]*core.LawSection, error)

	// CountSections returns the number of stored sections.
	CountSections(ctx context.Context) (int, error)

	// DeleteSections removes sections by their codes.
	// Returns ErrNotFound if any section doesn't exist.
	DeleteSections(ctx context.Context, sectionCodes ...string) error
}

// QueryLogRepository provides append-only storage for search analytics.
type QueryLogRepository interface {
	Repository

	// AppendQueryRecords appends one or more query records.
	// Generates IDs from sequence and sets the timestamp if not already set.
	// Records are never mutated after the append.
	// Returns the records with generated IDs and timestamps populated.
	AppendQueryRecords(ctx context.Context, records ...*core.QueryRecord) ([]*core.QueryRecord, error)

	// RecentQueryRecords retrieves the N most recent query records,
	// ordered by timestamp descending.
	RecentQueryRecords(ctx context.Context, limit int) ([]*core.QueryRecord, error)

	// CountQueryRecords returns the number of stored query records.
	CountQueryRecords(ctx context.Context) (int, error)
}
