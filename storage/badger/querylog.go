package badger

import (
	"context"
	"time"

	"github.com/Sachin007-lgtm/Section-Sense/core"
	"github.com/Sachin007-lgtm/Section-Sense/storage"
	"github.com/dgraph-io/badger/v4"
)

// QueryLogRepository implements storage.QueryLogRepository for BadgerDB.
// Records are append-only; nothing in the engine mutates or deletes them.
type QueryLogRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.QueryLogRepository = (*QueryLogRepository)(nil)

// NewQueryLogRepository creates a new QueryLogRepository.
func NewQueryLogRepository(backend *Backend) (*QueryLogRepository, error) {
	idSeq, err := backend.GetSequence(queryRecordIDSeq)
	if err != nil {
		return nil, err
	}

	return &QueryLogRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *QueryLogRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *QueryLogRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AppendQueryRecords appends one or more query records.
func (r *QueryLogRepository) AppendQueryRecords(ctx context.Context, records ...*core.QueryRecord) ([]*core.QueryRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if record.Timestamp.IsZero() {
				record.Timestamp = time.Now().UTC()
			}
			if err := core.ValidateQueryRecord(record); err != nil {
				return err
			}

			// Always generate new ID from sequence
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			record.Id = core.ID(nextID)

			// Store primary record
			key := makeQueryRecordKey(record.Id)
			value := storage.MarshalQueryRecord(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update timestamp index
			tsKey := makeQueryTsKey(record.Timestamp, record.Id)
			if err := tx.Set(tsKey, storage.MarshalID(record.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// RecentQueryRecords retrieves the N most recent query records,
// ordered by timestamp descending.
func (r *QueryLogRepository) RecentQueryRecords(ctx context.Context, limit int) ([]*core.QueryRecord, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var ids []core.ID

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(queryRecordTsPrefix + ":")
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Reverse iteration needs a seek past the end of the prefix range.
		seek := append([]byte(queryRecordTsPrefix+":"), 0xFF)
		for iter.Seek(seek); iter.Valid() && len(ids) < limit; iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				id, err := storage.UnmarshalID(val)
				if err != nil {
					return err
				}
				ids = append(ids, id)
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

	records := make([]*core.QueryRecord, 0, len(ids))
	err = r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			item, err := tx.Get(makeQueryRecordKey(id))
			if err != nil {
				if err == badger.ErrKeyNotFound {
					continue
				}
				return err
			}
			err = item.Value(func(val []byte) error {
				record, err := storage.UnmarshalQueryRecord(val)
				if err != nil {
					return err
				}
				records = append(records, record)
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

	return records, nil
}

// CountQueryRecords returns the number of stored query records.
func (r *QueryLogRepository) CountQueryRecords(ctx context.Context) (int, error) {
	count := 0

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(queryRecordPrefix + ":")
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
