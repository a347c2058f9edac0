package badger

import (
	"github.com/dgraph-io/badger/v4"
)

// SetLastImportRun records the identifier of the most recent dataset import.
// The seeder tags every run so operators can tell which load produced the
// current corpus.
func (b *Backend) SetLastImportRun(runID string) error {
	return b.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(importRunKey), []byte(runID)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LastImportRun returns the identifier of the most recent dataset import,
// or an empty string if no import has been recorded.
func (b *Backend) LastImportRun() (string, error) {
	var runID string
	err := b.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(importRunKey))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			runID = string(val)
			return nil
		})
	}, false)
	return runID, err
}
