package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Sachin007-lgtm/Section-Sense/core"
	"github.com/Sachin007-lgtm/Section-Sense/storage"
)

func TestQueryRecordBasics(t *testing.T) {
	sectionRepo, queryLogRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		queryLogRepo.Close()
		sectionRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	record := &core.QueryRecord{
		QueryText:     "theft of mobile phone",
		SearchType:    core.SearchTypeSemantic,
		ResultsCount:  4,
		ExecutionTime: 15 * time.Millisecond,
	}

	appended, err := queryLogRepo.AppendQueryRecords(ctx, record)
	if err != nil {
		t.Fatalf("Failed to append query record: %v", err)
	}
	if len(appended) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(appended))
	}
	if appended[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}
	if appended[0].Timestamp.IsZero() {
		t.Fatal("Expected timestamp to be set")
	}

	recent, err := queryLogRepo.RecentQueryRecords(ctx, 10)
	if err != nil {
		t.Fatalf("Failed to get recent records: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("Expected 1 recent record, got %d", len(recent))
	}
	if recent[0].QueryText != "theft of mobile phone" {
		t.Fatalf("Unexpected query text: %q", recent[0].QueryText)
	}
	if recent[0].ExecutionTime != 15*time.Millisecond {
		t.Fatalf("Unexpected execution time: %v", recent[0].ExecutionTime)
	}
}

func TestQueryRecordRecentOrdering(t *testing.T) {
	sectionRepo, queryLogRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		queryLogRepo.Close()
		sectionRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, query := range []string{"first", "second", "third"} {
		_, err := queryLogRepo.AppendQueryRecords(ctx, &core.QueryRecord{
			QueryText:  query,
			SearchType: core.SearchTypeLexical,
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Failed to append record %d: %v", i, err)
		}
	}

	recent, err := queryLogRepo.RecentQueryRecords(ctx, 2)
	if err != nil {
		t.Fatalf("Failed to get recent records: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(recent))
	}
	if recent[0].QueryText != "third" || recent[1].QueryText != "second" {
		t.Fatalf("Expected newest first, got %q then %q",
			recent[0].QueryText, recent[1].QueryText)
	}
}

func TestQueryRecordCount(t *testing.T) {
	sectionRepo, queryLogRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		queryLogRepo.Close()
		sectionRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := queryLogRepo.AppendQueryRecords(ctx, &core.QueryRecord{
			QueryText:  "q",
			SearchType: core.SearchTypeSemantic,
		})
		if err != nil {
			t.Fatalf("Failed to append record %d: %v", i, err)
		}
	}

	count, err := queryLogRepo.CountQueryRecords(ctx)
	if err != nil {
		t.Fatalf("Failed to count records: %v", err)
	}
	if count != 5 {
		t.Fatalf("Expected 5 records, got %d", count)
	}
}

func TestQueryRecordInvalidLimit(t *testing.T) {
	sectionRepo, queryLogRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		queryLogRepo.Close()
		sectionRepo.Close()
		backend.Close()
	}()

	_, err = queryLogRepo.RecentQueryRecords(context.Background(), 0)
	if !errors.Is(err, storage.ErrInvalidQuery) {
		t.Fatalf("Expected ErrInvalidQuery, got %v", err)
	}
}

func TestQueryRecordValidationRejected(t *testing.T) {
	sectionRepo, queryLogRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		queryLogRepo.Close()
		sectionRepo.Close()
		backend.Close()
	}()

	_, err = queryLogRepo.AppendQueryRecords(context.Background(), &core.QueryRecord{
		SearchType: core.SearchTypeSemantic,
	})
	if !errors.Is(err, core.ErrEmptyQueryText) {
		t.Fatalf("Expected ErrEmptyQueryText, got %v", err)
	}
}
