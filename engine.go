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


package sectionsense

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/Sachin007-lgtm/Section-Sense/ai"
	"github.com/Sachin007-lgtm/Section-Sense/ai/openai"
	"github.com/Sachin007-lgtm/Section-Sense/analytics"
	"github.com/Sachin007-lgtm/Section-Sense/core"
	"github.com/Sachin007-lgtm/Section-Sense/enrich"
	"github.com/Sachin007-lgtm/Section-Sense/index"
	"github.com/Sachin007-lgtm/Section-Sense/search"
	"github.com/Sachin007-lgtm/Section-Sense/storage"
	"github.com/Sachin007-lgtm/Section-Sense/storage/badger"
	"github.com/Sachin007-lgtm/Section-Sense/suggest"
)

// Engine is the top-level facade: storage, enrichment, index, search,
// suggestions, and analytics wired together. Open it once, rebuild the
// index after seeding, then serve queries concurrently.
type Engine struct {
	backend      *badger.Backend
	sectionRepo  storage.SectionRepository
	queryLogRepo storage.QueryLogRepository
	provider     ai.Provider
	enricher     *enrich.Enricher
	builder      *index.Builder
	holder       *index.Holder
	searcher     *search.Searcher
	suggester    *suggest.Suggester
	recorder     *analytics.Recorder
	logger       *slog.Logger

	rebuildMu sync.Mutex
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig    *ai.Config
	provider    ai.Provider
	inMemory    bool
	searchOpts  []search.Option
	builderOpts []index.BuilderOption
	logger      *slog.Logger
}

// WithAIConfig sets the embedding provider configuration.
func WithAIConfig(cfg *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider supplies a pre-built embedding provider instead of the
// OpenAI-compatible default. Used by tests and embedded deployments.
func WithProvider(provider ai.Provider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithInMemory opens the storage backend in memory, nothing on disk.
func WithInMemory() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// WithSearchOptions forwards options to the searcher.
func WithSearchOptions(opts ...search.Option) EngineOption {
	return func(o *engineOptions) {
		o.searchOpts = append(o.searchOpts, opts...)
	}
}

// WithBuilderOptions forwards options to the index builder.
func WithBuilderOptions(opts ...index.BuilderOption) EngineOption {
	return func(o *engineOptions) {
		o.builderOpts = append(o.builderOpts, opts...)
	}
}

// WithEngineLogger sets the logger for the engine and its components.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// OpenEngine opens storage at filePath and wires up every component.
// The index starts empty; call RebuildIndex before serving queries.
func OpenEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	sectionRepo, err := badger.NewSectionRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	queryLogRepo, err := badger.NewQueryLogRepository(backend)
	if err != nil {
		sectionRepo.Close()
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			queryLogRepo.Close()
			sectionRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	e := &Engine{
		backend:      backend,
		sectionRepo:  sectionRepo,
		queryLogRepo: queryLogRepo,
		provider:     provider,
		holder:       &index.Holder{},
		logger:       options.logger.With("component", "engine"),
	}

	fail := func(err error) (*Engine, error) {
		e.teardown()
		return nil, err
	}

	e.enricher, err = enrich.NewEnricher(enrich.WithLogger(options.logger))
	if err != nil {
		return fail(err)
	}

	e.builder, err = index.NewBuilder(sectionRepo, e.enricher, provider.Embedder(),
		provider.Dimension(), append([]index.BuilderOption{
			index.WithBuilderLogger(options.logger),
		}, options.builderOpts...)...)
	if err != nil {
		return fail(err)
	}

	e.searcher, err = search.NewSearcher(e.holder, provider.Embedder(),
		append([]search.Option{search.WithLogger(options.logger)}, options.searchOpts...)...)
	if err != nil {
		return fail(err)
	}

	e.suggester, err = suggest.NewSuggester(e.holder)
	if err != nil {
		return fail(err)
	}

	e.recorder, err = analytics.NewRecorder(queryLogRepo, analytics.WithLogger(options.logger))
	if err != nil {
		return fail(err)
	}

	return e, nil
}

// Search serves one query: rank, record analytics, and attach suggestions
// when nothing cleared the threshold. The analytics write is fire-and-forget
// and never affects the response.
func (e *Engine) Search(ctx context.Context, req search.Request) (*search.Response, error) {
	resp, err := e.searcher.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	e.recorder.Record(&core.QueryRecord{
		QueryText:     strings.TrimSpace(req.Query),
		SearchType:    resp.SearchType,
		ResultsCount:  resp.TotalResults,
		ExecutionTime: resp.ExecutionTime,
	})

	if resp.TotalResults == 0 {
		resp.Suggestions = e.suggestFor(req.Query)
	}

	return resp, nil
}

// suggestFor derives "did you mean" completions for a query that returned
// nothing: the full query first, then each of its words.
func (e *Engine) suggestFor(query string) []string {
	if suggestions := e.suggester.Suggest(query, suggest.DefaultMaxSuggestions); len(suggestions) > 0 {
		return suggestions
	}
	for _, word := range strings.Fields(query) {
		if suggestions := e.suggester.Suggest(word, suggest.DefaultMaxSuggestions); len(suggestions) > 0 {
			return suggestions
		}
	}
	return nil
}

// Suggest completes a partial query from section titles and keywords.
func (e *Engine) Suggest(partial string, maxSuggestions int) []string {
	return e.suggester.Suggest(partial, maxSuggestions)
}

// GetSection returns one section by code. The published index is consulted
// first so callers see enriched fields; sections stored but not yet indexed
// come back from storage with whatever fields they carry.
func (e *Engine) GetSection(ctx context.Context, sectionCode string) (*core.LawSection, error) {
	if idx := e.holder.Load(); idx != nil {
		if entry := idx.Lookup(sectionCode); entry != nil {
			return entry.Section, nil
		}
	}
	return e.sectionRepo.GetSection(ctx, sectionCode)
}

// Categories lists the distinct category labels in the published index.
func (e *Engine) Categories() []string {
	idx := e.holder.Load()
	if idx == nil {
		return nil
	}
	return idx.Categories()
}

// IndexSize returns the number of sections in the published index.
func (e *Engine) IndexSize() int {
	idx := e.holder.Load()
	if idx == nil {
		return 0
	}
	return idx.Size()
}

// RebuildIndex builds a fresh index from storage and atomically publishes
// it. Rebuilds are serialized; queries keep hitting the old index until the
// new one is complete. A failed build leaves the old index in place.
func (e *Engine) RebuildIndex(ctx context.Context) error {
	e.rebuildMu.Lock()
	defer e.rebuildMu.Unlock()

	idx, err := e.builder.Build(ctx)
	if err != nil {
		e.logger.Error("index rebuild failed, keeping previous index", "err", err)
		return err
	}

	e.holder.Publish(idx)
	return nil
}

// RecentQueries returns the most recent analytics records, newest first.
func (e *Engine) RecentQueries(ctx context.Context, limit int) ([]*core.QueryRecord, error) {
	return e.queryLogRepo.RecentQueryRecords(ctx, limit)
}

// QueryCount returns how many queries have been recorded.
func (e *Engine) QueryCount(ctx context.Context) (int, error) {
	return e.queryLogRepo.CountQueryRecords(ctx)
}

// DroppedQueryRecords returns how many analytics records were dropped.
func (e *Engine) DroppedQueryRecords() int64 {
	return e.recorder.Dropped()
}

// SectionRepository exposes the section store, mainly for seeding.
func (e *Engine) SectionRepository() storage.SectionRepository {
	return e.sectionRepo
}

// QueryLogRepository exposes the analytics store.
func (e *Engine) QueryLogRepository() storage.QueryLogRepository {
	return e.queryLogRepo
}

// Close flushes analytics and releases every component.
func (e *Engine) Close() error {
	if e.recorder != nil {
		if err := e.recorder.Close(); err != nil {
			e.logger.Error("error closing analytics recorder", "err", err)
		}
	}
	return e.teardown()
}

func (e *Engine) teardown() error {
	if e.builder != nil {
		e.builder.Release()
	}

	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	if err := e.queryLogRepo.Close(); err != nil {
		e.logger.Error("error closing query log repository", "err", err)
		return err
	}
	if err := e.sectionRepo.Close(); err != nil {
		e.logger.Error("error closing section repository", "err", err)
		return err
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
