package badger

import (
	"context"
	"time"

	"github.com/Sachin007-lgtm/Section-Sense/core"
	"github.com/Sachin007-lgtm/Section-Sense/storage"
	"github.com/dgraph-io/badger/v4"
)

// SectionRepository implements storage.SectionRepository for BadgerDB.
type SectionRepository struct {
	backend *Backend
}

var _ storage.SectionRepository = (*SectionRepository)(nil)

// NewSectionRepository creates a new SectionRepository.
func NewSectionRepository(backend *Backend) (*SectionRepository, error) {
	return &SectionRepository{
		backend: backend,
	}, nil
}

// Close is a no-op; the repository holds no resources beyond the backend.
func (r *SectionRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *SectionRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutSections stores one or more law sections, replacing any existing section
// with the same code. The section ID is the content hash of the code, so
// re-ingesting a code is an idempotent overwrite.
func (r *SectionRepository) PutSections(ctx context.Context, sections ...*core.LawSection) ([]*core.LawSection, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		for _, section := range sections {
			if err := core.ValidateLawSection(section); err != nil {
				return err
			}

			section.Id = core.IDFromContent(section.SectionCode)

			key := makeSectionKey(section.Id)
			old, err := r.readSection(tx, key)
			if err != nil {
				return err
			}
			if old != nil {
				section.InsertedAt = old.InsertedAt
			} else {
				section.InsertedAt = now
			}
			section.UpdatedAt = now

			value := storage.MarshalLawSection(section)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return sections, err
}

// GetSection retrieves a single section by its code.
func (r *SectionRepository) GetSection(ctx context.Context, sectionCode string) (*core.LawSection, error) {
	var section *core.LawSection

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSectionKey(core.IDFromContent(sectionCode))
		var err error
		section, err = r.readSection(tx, key)
		return err
	}, false)
	if err != nil {
		return nil, err
	}

	if section == nil {
		return nil, storage.ErrNotFound
	}
	return section, nil
}

// ListSections retrieves every stored section.
func (r *SectionRepository) ListSections(ctx context.Context) ([]*core.LawSection, error) {
	var sections []*core.LawSection

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(sectionPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			err := item.Value(func(val []byte) error {
				section, err := storage.UnmarshalLawSection(val)
				if err != nil {
					return err
				}
				sections = append(sections, section)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return sections, nil
}

// CountSections returns the number of stored sections.
func (r *SectionRepository) CountSections(ctx context.Context) (int, error) {
	count := 0

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(sectionPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// DeleteSections removes sections by their codes.
func (r *SectionRepository) DeleteSections(ctx context.Context, sectionCodes ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, code := range sectionCodes {
			key := makeSectionKey(core.IDFromContent(code))

			old, err := r.readSection(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// readSection reads a section by key within a transaction.
// Returns nil (no error) if the key doesn't exist.
func (r *SectionRepository) readSection(tx *badger.Txn, key []byte) (*core.LawSection, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var section *core.LawSection
	err = item.Value(func(val []byte) error {
		var err error
		section, err = storage.UnmarshalLawSection(val)
		return err
	})
	if err != nil {
		return nil, err
	}

	return section, nil
}
