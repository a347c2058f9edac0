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


package storage

import (
	"fmt"

	"github.com/Sachin007-lgtm/Section-Sense/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalLawSection serializes a LawSection to bytes.
func MarshalLawSection(section *core.LawSection) []byte {
	buf := make([]byte, core.LawSectionMUS.Size(*section))
	core.LawSectionMUS.Marshal(*section, buf)
	return buf
}

// UnmarshalLawSection deserializes a LawSection from bytes.
func UnmarshalLawSection(data []byte) (*core.LawSection, error) {
	section, _, err := core.LawSectionMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &section, nil
}

// MarshalQueryRecord serializes a QueryRecord to bytes.
func MarshalQueryRecord(record *core.QueryRecord) []byte {
	buf := make([]byte, core.QueryRecordMUS.Size(*record))
	core.QueryRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalQueryRecord deserializes a QueryRecord from bytes.
func UnmarshalQueryRecord(data []byte) (*core.QueryRecord, error) {
	record, _, err := core.QueryRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &record, nil
}
