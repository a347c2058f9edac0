package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Sachin007-lgtm/Section-Sense/ai"
	"github.com/Sachin007-lgtm/Section-Sense/core"
	"github.com/Sachin007-lgtm/Section-Sense/index"
)

const (
	// DefaultThreshold is the minimum score a result must exceed to be returned.
	DefaultThreshold float32 = 0.3
	// DefaultMaxResults applies when a request does not set MaxResults.
	DefaultMaxResults = 10
	// MaxResultsCap is the hard ceiling on MaxResults regardless of request.
	MaxResultsCap = 100
	// defaultEmbedTimeout bounds the per-query embedding call; on timeout the
	// query falls through to the lexical path instead of hanging.
	defaultEmbedTimeout = 2 * time.Second
	// defaultMinSemanticResults is the semantic hit count below which the
	// lexical fallback is also consulted.
	defaultMinSemanticResults = 1
)

// Request is one search invocation. Zero-valued filters are ignored; a
// filter set to TriStateYes or TriStateNo excludes non-matching sections
// from the output regardless of score.
type Request struct {
	Query      string
	MaxResults int
	Category   string
	Bailable   core.TriState
	Cognizable core.TriState
}

// Response is the ordered outcome of one search.
type Response struct {
	Results       []*core.RankedResult
	TotalResults  int
	ExecutionTime time.Duration
	SearchType    core.SearchType
	// Suggestions is left empty by the searcher; the engine fills it in
	// when the result list comes back empty.
	Suggestions []string
}

// Searcher ranks the indexed corpus against free-text queries.
type Searcher struct {
	holder             *index.Holder
	embedder           ai.Embedder
	threshold          float32
	embedTimeout       time.Duration
	minSemanticResults int
	logger             *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithThreshold overrides the minimum-relevance threshold.
func WithThreshold(threshold float32) Option {
	return func(s *Searcher) error {
		s.threshold = threshold
		return nil
	}
}

// WithEmbedTimeout bounds the per-query embedding call.
func WithEmbedTimeout(timeout time.Duration) Option {
	return func(s *Searcher) error {
		if timeout > 0 {
			s.embedTimeout = timeout
		}
		return nil
	}
}

// WithMinSemanticResults sets how many semantic hits are enough to skip the
// lexical fallback.
func WithMinSemanticResults(n int) Option {
	return func(s *Searcher) error {
		if n < 0 {
			n = 0
		}
		s.minSemanticResults = n
		return nil
	}
}

// NewSearcher creates a new searcher over the published index.
func NewSearcher(holder *index.Holder, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if holder == nil {
		return nil, ErrHolderRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		holder:             holder,
		embedder:           embedder,
		threshold:          DefaultThreshold,
		embedTimeout:       defaultEmbedTimeout,
		minSemanticResults: defaultMinSemanticResults,
		logger:             slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search ranks the corpus against the query.
func (s *Searcher) Search(ctx context.Context, req Request) (*Response, error) {
	return s.SearchWithMonitor(ctx, req, nil)
}

// SearchWithMonitor ranks the corpus against the query with monitoring.
// The monitor receives callbacks at each stage of the search process.
func (s *Searcher) SearchWithMonitor(ctx context.Context, req Request, monitor SearchMonitor) (*Response, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults > MaxResultsCap {
		maxResults = MaxResultsCap
	}

	idx := s.holder.Load()
	if idx == nil {
		return nil, index.ErrNoIndex
	}

	monitor.Start(query)
	start := time.Now()

	semantic, semanticOK := s.semanticPass(ctx, idx, query, req, monitor)

	results := semantic
	searchType := core.SearchTypeSemantic

	// The fallback runs when the semantic path failed outright, when the
	// index carries null vectors, or when semantic hits are too few to be
	// useful on their own.
	if !semanticOK || idx.Degraded() || len(semantic) < s.minSemanticResults {
		switch {
		case !semanticOK:
			monitor.FallbackTriggered("embedding unavailable")
		case idx.Degraded():
			monitor.FallbackTriggered("index degraded")
		default:
			monitor.FallbackTriggered("too few semantic results")
		}

		lexical := s.lexicalPass(idx, query, req, monitor)
		results = mergeRanked(semantic, lexical)

		switch {
		case len(semantic) == 0:
			searchType = core.SearchTypeLexical
		case len(results) > len(semantic):
			searchType = core.SearchTypeHybrid
		}
	}

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	for i, result := range results {
		result.Rank = i + 1
	}

	monitor.Finish(results)

	return &Response{
		Results:       results,
		TotalResults:  len(results),
		ExecutionTime: time.Since(start),
		SearchType:    searchType,
	}, nil
}

// semanticPass embeds the query and scores every indexed vector. The second
// return value reports whether the embedding step succeeded at all.
func (s *Searcher) semanticPass(ctx context.Context, idx *index.Index, query string, req Request, monitor SearchMonitor) ([]*core.RankedResult, bool) {
	embedCtx, cancel := context.WithTimeout(ctx, s.embedTimeout)
	defer cancel()

	queryVector, err := s.embedder.EmbedText(embedCtx, query)
	if err != nil {
		s.logger.Warn("query embedding failed, falling back to lexical scoring",
			"query", query, "err", err)
		return nil, false
	}
	monitor.AfterEmbedding(len(queryVector))

	results := make([]*core.RankedResult, 0)
	for entry := range idx.Entries() {
		if entry.Vector == nil || !matchesFilters(entry.Section, req) {
			continue
		}
		score := cosineSimilarity(queryVector, entry.Vector)
		if score <= s.threshold {
			continue
		}
		results = append(results, &core.RankedResult{
			Section: entry.Section,
			Score:   score,
			Source:  core.MatchSemantic,
		})
	}
	monitor.AfterSemanticScoring(len(results))

	sortRanked(results)
	return results, true
}

// lexicalPass scores the corpus by query-token overlap. It never fails: an
// empty term list simply yields no results.
func (s *Searcher) lexicalPass(idx *index.Index, query string, req Request, monitor SearchMonitor) []*core.RankedResult {
	terms := queryTerms(query)

	results := make([]*core.RankedResult, 0)
	for entry := range idx.Entries() {
		if !matchesFilters(entry.Section, req) {
			continue
		}
		score := lexicalScore(terms, entry.Section)
		if score <= s.threshold {
			continue
		}
		results = append(results, &core.RankedResult{
			Section: entry.Section,
			Score:   score,
			Source:  core.MatchLexical,
		})
	}
	monitor.AfterLexicalScoring(len(results))

	sortRanked(results)
	return results
}

// matchesFilters applies the request's category and tri-state filters.
func matchesFilters(section *core.LawSection, req Request) bool {
	if req.Category != "" && !strings.EqualFold(section.Category, req.Category) {
		return false
	}
	if req.Bailable == core.TriStateYes || req.Bailable == core.TriStateNo {
		if section.Bailable != req.Bailable {
			return false
		}
	}
	if req.Cognizable == core.TriStateYes || req.Cognizable == core.TriStateNo {
		if section.Cognizable != req.Cognizable {
			return false
		}
	}
	return true
}

// sortRanked orders results by score descending, ties broken by section
// code ascending for determinism.
func sortRanked(results []*core.RankedResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Section.SectionCode < results[j].Section.SectionCode
	})
}

// mergeRanked appends lexical results after semantic ones, dropping lexical
// hits for sections the semantic pass already returned. Semantic results
// rank above lexical regardless of raw score.
func mergeRanked(semantic, lexical []*core.RankedResult) []*core.RankedResult {
	if len(semantic) == 0 {
		return lexical
	}

	seen := make(map[string]bool, len(semantic))
	for _, result := range semantic {
		seen[result.Section.SectionCode] = true
	}

	merged := make([]*core.RankedResult, 0, len(semantic)+len(lexical))
	merged = append(merged, semantic...)
	for _, result := range lexical {
		if !seen[result.Section.SectionCode] {
			merged = append(merged, result)
		}
	}
	return merged
}
