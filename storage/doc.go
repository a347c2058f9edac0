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


// Package storage provides the storage abstraction layer for Section-Sense.
//
// It defines repository interfaces that decouple the retrieval engine from
// the storage implementation. The engine reads a snapshot of sections at
// index-build time (SectionRepository.ListSections) and appends analytics
// records (QueryLogRepository.AppendQueryRecords); nothing on the query path
// writes to section storage.
//
// # Architecture
//
//   - SectionRepository: law sections keyed by content-hashed section code
//   - QueryLogRepository: append-only search analytics with a timestamp index
//
// Public constructors return interface types so backends stay swappable.
// Use the in-memory Badger backend in tests:
//
//	sections, queries, backend, err := badger.NewMemoryRepositories()
//	defer func() { sections.Close(); queries.Close(); backend.Close() }()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines. Analytics appends must never expose
// partial records to readers.
package storage
