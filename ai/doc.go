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


// Package ai provides the embedding-provider abstraction for Section-Sense.
//
// The retrieval engine is written against a narrow capability interface
// (text -> fixed-length vector, may fail) so the concrete provider is
// swappable and mockable in tests.
//
// # Implementation Packages
//
//   - ai/openai: production implementation for OpenAI-compatible APIs
//   - ai/mock: deterministic test doubles with no external dependencies
//
// Public constructors (openai.NewProvider, openai.NewEmbedder) return
// interface types to enforce abstraction. Mock constructors return concrete
// types so tests can inject behavior and assert call counts.
//
// # Failure Mode
//
// Every embedder error means "provider unavailable". The engine never treats
// it as fatal: queries fall through to lexical scoring and index builds
// produce a degraded, lexically-searchable index.
package ai
