package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/Sachin007-lgtm/Section-Sense/core"
)

// Key prefixes for different data types
const (
	sectionPrefix       = "lawsec"
	queryRecordPrefix   = "qryrec"
	queryRecordTsPrefix = "qryrect"
	queryRecordIDSeq    = "qryrecseq"
	importRunKey        = "seedrun"
)

// makeSectionKey generates a key for a law section by ID.
// Section IDs are content hashes of the section code, so the same code
// always maps to the same key.
func makeSectionKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", sectionPrefix, id))
}

// makeQueryRecordKey generates a key for a query record by ID.
func makeQueryRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", queryRecordPrefix, id))
}

// makeQueryTsKey generates a composite key for the query-record timestamp index.
// Format: prefix:timestamp:id
func makeQueryTsKey(timestamp time.Time, id core.ID) []byte {
	prefix := queryRecordTsPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}
