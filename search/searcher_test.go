package search

import (
	"context"
	"errors"
	"testing"

	"github.com/Sachin007-lgtm/Section-Sense/ai/mock"
	"github.com/Sachin007-lgtm/Section-Sense/core"
	"github.com/Sachin007-lgtm/Section-Sense/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test corpus with hand-crafted 3-dim vectors so similarity scores are
// predictable: theft-like sections point along the x axis, murder along y.
func testEntries() []*index.Entry {
	return []*index.Entry{
		{
			Section: &core.LawSection{
				SectionCode: "BNS 303",
				Title:       "Theft",
				Description: "Dishonest taking of movable property out of the possession of another person.",
				Category:    "Offences Against Property",
				Bailable:    core.TriStateYes,
				Cognizable:  core.TriStateYes,
				Keywords:    []string{"theft", "property", "dishonest"},
			},
			Vector: []float32{1, 0, 0},
		},
		{
			Section: &core.LawSection{
				SectionCode: "BNS 305",
				Title:       "Theft in a dwelling house",
				Description: "Theft committed in any building used as a human dwelling.",
				Category:    "Offences Against Property",
				Bailable:    core.TriStateNo,
				Cognizable:  core.TriStateYes,
				Keywords:    []string{"theft", "dwelling", "house"},
			},
			Vector: []float32{0.95, 0.05, 0},
		},
		{
			Section: &core.LawSection{
				SectionCode: "BNS 103",
				Title:       "Punishment for murder",
				Description: "Whoever commits murder shall be punished with death or imprisonment for life.",
				Category:    "Offences Affecting the Human Body",
				Bailable:    core.TriStateNo,
				Cognizable:  core.TriStateYes,
				Keywords:    []string{"murder", "death", "imprisonment"},
			},
			Vector: []float32{0, 1, 0},
		},
	}
}

func newTestSearcher(t *testing.T, entries []*index.Entry, embedder *mock.MockEmbedder, opts ...Option) *Searcher {
	t.Helper()

	holder := &index.Holder{}
	holder.Publish(index.NewIndex(entries, 3, false))

	searcher, err := NewSearcher(holder, embedder, opts...)
	require.NoError(t, err)
	return searcher
}

func queryAlongX() *mock.MockEmbedder {
	embedder := mock.NewMockEmbedderWithDim(3)
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}
	return embedder
}

func TestSearchRanksBySimilarity(t *testing.T) {
	searcher := newTestSearcher(t, testEntries(), queryAlongX())

	resp, err := searcher.Search(context.Background(), Request{Query: "stealing a mobile phone"})
	require.NoError(t, err)

	require.Len(t, resp.Results, 2)
	assert.Equal(t, core.SearchTypeSemantic, resp.SearchType)
	assert.Equal(t, "BNS 303", resp.Results[0].Section.SectionCode)
	assert.Equal(t, "BNS 305", resp.Results[1].Section.SectionCode)
	assert.Greater(t, resp.Results[0].Score, resp.Results[1].Score)

	for i, result := range resp.Results {
		assert.Equal(t, i+1, result.Rank)
		assert.Equal(t, core.MatchSemantic, result.Source)
	}
	assert.Equal(t, 2, resp.TotalResults)
	assert.Greater(t, resp.ExecutionTime.Nanoseconds(), int64(0))
}

func TestSearchNoMatchesReturnsEmptyNotError(t *testing.T) {
	embedder := mock.NewMockEmbedderWithDim(3)
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		// Orthogonal to every indexed vector, and the query shares no
		// tokens with the corpus, so the fallback finds nothing either.
		return []float32{0, 0, 1}, nil
	}
	searcher := newTestSearcher(t, testEntries(), embedder)

	resp, err := searcher.Search(context.Background(), Request{Query: "zzzz qqqq"})
	require.NoError(t, err)

	assert.Empty(t, resp.Results)
	assert.Equal(t, 0, resp.TotalResults)
}

func TestSearchEmptyQuery(t *testing.T) {
	searcher := newTestSearcher(t, testEntries(), queryAlongX())

	_, err := searcher.Search(context.Background(), Request{Query: "   "})
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSearchWithoutPublishedIndex(t *testing.T) {
	holder := &index.Holder{}
	searcher, err := NewSearcher(holder, queryAlongX())
	require.NoError(t, err)

	_, err = searcher.Search(context.Background(), Request{Query: "theft"})
	assert.ErrorIs(t, err, index.ErrNoIndex)
}

func TestSearchFallsBackWhenEmbeddingFails(t *testing.T) {
	embedder := mock.NewMockEmbedderWithDim(3)
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("provider unavailable")
	}
	searcher := newTestSearcher(t, testEntries(), embedder)

	resp, err := searcher.Search(context.Background(), Request{Query: "theft of property"})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Results)
	assert.Equal(t, core.SearchTypeLexical, resp.SearchType)
	for _, result := range resp.Results {
		assert.Equal(t, core.MatchLexical, result.Source)
	}
	assert.Equal(t, "BNS 303", resp.Results[0].Section.SectionCode)
}

func TestSearchFallsBackOnDegradedIndex(t *testing.T) {
	entries := testEntries()
	for _, entry := range entries {
		entry.Vector = nil
	}

	holder := &index.Holder{}
	holder.Publish(index.NewIndex(entries, 3, true))
	searcher, err := NewSearcher(holder, queryAlongX())
	require.NoError(t, err)

	resp, err := searcher.Search(context.Background(), Request{Query: "murder"})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Results)
	assert.Equal(t, core.SearchTypeLexical, resp.SearchType)
	assert.Equal(t, "BNS 103", resp.Results[0].Section.SectionCode)
}

func TestSearchHybridMergeKeepsSemanticFirst(t *testing.T) {
	// Demand two semantic hits while the query vector only matches one
	// section well, so the lexical pass backfills.
	embedder := mock.NewMockEmbedderWithDim(3)
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{0, 1, 0}, nil
	}
	searcher := newTestSearcher(t, testEntries(), embedder, WithMinSemanticResults(2))

	resp, err := searcher.Search(context.Background(), Request{Query: "murder theft"})
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(resp.Results), 2)
	assert.Equal(t, core.SearchTypeHybrid, resp.SearchType)

	// Semantic hit leads even though the lexical scores below it may be
	// numerically higher.
	assert.Equal(t, "BNS 103", resp.Results[0].Section.SectionCode)
	assert.Equal(t, core.MatchSemantic, resp.Results[0].Source)

	seen := make(map[string]bool)
	for _, result := range resp.Results {
		assert.False(t, seen[result.Section.SectionCode], "duplicate section %s", result.Section.SectionCode)
		seen[result.Section.SectionCode] = true
	}
}

func TestSearchCategoryFilter(t *testing.T) {
	embedder := mock.NewMockEmbedderWithDim(3)
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{0, 1, 0}, nil
	}
	searcher := newTestSearcher(t, testEntries(), embedder)

	// Matching filter, case-insensitive.
	resp, err := searcher.Search(context.Background(), Request{
		Query:    "murder",
		Category: "offences affecting the human body",
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "BNS 103", resp.Results[0].Section.SectionCode)

	// A filter that excludes the best match keeps it out regardless of score.
	resp, err = searcher.Search(context.Background(), Request{
		Query:    "murder",
		Category: "Offences Against Property",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestSearchBailableFilter(t *testing.T) {
	searcher := newTestSearcher(t, testEntries(), queryAlongX())

	resp, err := searcher.Search(context.Background(), Request{
		Query:    "theft",
		Bailable: core.TriStateYes,
	})
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, "BNS 303", resp.Results[0].Section.SectionCode)
}

func TestSearchMaxResultsTruncates(t *testing.T) {
	searcher := newTestSearcher(t, testEntries(), queryAlongX())

	resp, err := searcher.Search(context.Background(), Request{Query: "theft", MaxResults: 1})
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, "BNS 303", resp.Results[0].Section.SectionCode)
}

func TestSearchMaxResultsCap(t *testing.T) {
	searcher := newTestSearcher(t, testEntries(), queryAlongX())

	resp, err := searcher.Search(context.Background(), Request{Query: "theft", MaxResults: 100000})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(resp.Results), MaxResultsCap)
}

func TestSearchTieBreaksByCode(t *testing.T) {
	entries := []*index.Entry{
		{
			Section: &core.LawSection{SectionCode: "BNS 200", Title: "B"},
			Vector:  []float32{1, 0, 0},
		},
		{
			Section: &core.LawSection{SectionCode: "BNS 100", Title: "A"},
			Vector:  []float32{1, 0, 0},
		},
	}
	searcher := newTestSearcher(t, entries, queryAlongX())

	resp, err := searcher.Search(context.Background(), Request{Query: "anything"})
	require.NoError(t, err)

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "BNS 100", resp.Results[0].Section.SectionCode)
	assert.Equal(t, "BNS 200", resp.Results[1].Section.SectionCode)
}

func TestSearchBelowThresholdExcluded(t *testing.T) {
	entries := []*index.Entry{
		{
			Section: &core.LawSection{SectionCode: "BNS 1", Title: "Weak match"},
			// cos with the x axis is 0.2, below the 0.3 threshold.
			Vector: []float32{0.2, 0.9797959, 0},
		},
	}
	searcher := newTestSearcher(t, entries, queryAlongX())

	resp, err := searcher.Search(context.Background(), Request{Query: "zzzz"})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestNewSearcherValidation(t *testing.T) {
	holder := &index.Holder{}

	_, err := NewSearcher(nil, mock.NewMockEmbedder())
	assert.ErrorIs(t, err, ErrHolderRequired)

	_, err = NewSearcher(holder, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestSearchMonitorCallbacks(t *testing.T) {
	searcher := newTestSearcher(t, testEntries(), queryAlongX())

	monitor := &recordingMonitor{}
	resp, err := searcher.SearchWithMonitor(context.Background(), Request{Query: "theft"}, monitor)
	require.NoError(t, err)

	assert.Equal(t, "theft", monitor.startedWith)
	assert.Equal(t, 3, monitor.embeddedDim)
	assert.Equal(t, len(resp.Results), monitor.finishedWith)
}

type recordingMonitor struct {
	startedWith  string
	embeddedDim  int
	fallback     []string
	finishedWith int
}

func (m *recordingMonitor) Start(query string)               { m.startedWith = query }
func (m *recordingMonitor) AfterEmbedding(dim int)           { m.embeddedDim = dim }
func (m *recordingMonitor) AfterSemanticScoring(_ int)       {}
func (m *recordingMonitor) FallbackTriggered(reason string)  { m.fallback = append(m.fallback, reason) }
func (m *recordingMonitor) AfterLexicalScoring(_ int)        {}
func (m *recordingMonitor) Finish(results []*core.RankedResult) {
	m.finishedWith = len(results)
}
