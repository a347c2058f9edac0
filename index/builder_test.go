package index

import (
	"context"
	"errors"
	"testing"

	"github.com/Sachin007-lgtm/Section-Sense/ai/mock"
	"github.com/Sachin007-lgtm/Section-Sense/core"
	"github.com/Sachin007-lgtm/Section-Sense/enrich"
	badgerstore "github.com/Sachin007-lgtm/Section-Sense/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDim = 16

func setupBuilder(t *testing.T, embedder *mock.MockEmbedder) (*Builder, func(...*core.LawSection)) {
	t.Helper()

	sectionRepo, queryLogRepo, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		queryLogRepo.Close()
		sectionRepo.Close()
		backend.Close()
	})

	enricher, err := enrich.NewEnricher()
	require.NoError(t, err)

	builder, err := NewBuilder(sectionRepo, enricher, embedder, testDim, WithBatchSize(2))
	require.NoError(t, err)
	t.Cleanup(builder.Release)

	put := func(sections ...*core.LawSection) {
		_, err := sectionRepo.PutSections(context.Background(), sections...)
		require.NoError(t, err)
	}
	return builder, put
}

func TestBuildEmbedsAndEnrichesCorpus(t *testing.T) {
	embedder := mock.NewMockEmbedderWithDim(testDim)
	builder, put := setupBuilder(t, embedder)

	put(
		&core.LawSection{SectionCode: "BNS 103", Title: "Punishment for murder"},
		&core.LawSection{SectionCode: "BNS 303", Title: "Theft"},
		&core.LawSection{SectionCode: "BNS 318", Title: "Cheating"},
	)

	idx, err := builder.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, idx.Size())
	assert.Equal(t, testDim, idx.Dimension())
	assert.False(t, idx.Degraded())

	for entry := range idx.Entries() {
		assert.Len(t, entry.Vector, testDim, "section %s", entry.Section.SectionCode)
		assert.NotEmpty(t, entry.Section.Category, "section %s", entry.Section.SectionCode)
	}

	murder := idx.Lookup("BNS 103")
	require.NotNil(t, murder)
	assert.Equal(t, core.SeverityHeinous, murder.Section.Severity)
}

func TestBuildEmptyCorpus(t *testing.T) {
	embedder := mock.NewMockEmbedderWithDim(testDim)
	builder, _ := setupBuilder(t, embedder)

	idx, err := builder.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Size())
	assert.False(t, idx.Degraded())
}

func TestBuildMarksDegradedOnEmbedFailure(t *testing.T) {
	embedder := mock.NewMockEmbedderWithDim(testDim)
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding service unavailable")
	}
	builder, put := setupBuilder(t, embedder)

	put(&core.LawSection{SectionCode: "BNS 103", Title: "Punishment for murder"})

	idx, err := builder.Build(context.Background())
	require.NoError(t, err)

	assert.True(t, idx.Degraded())
	assert.Equal(t, 1, idx.Size())
	assert.Nil(t, idx.Lookup("BNS 103").Vector)
}

func TestBuildMarksDegradedOnDimensionMismatch(t *testing.T) {
	embedder := mock.NewMockEmbedderWithDim(testDim)
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i := range vectors {
			vectors[i] = make([]float32, testDim+1)
		}
		return vectors, nil
	}
	builder, put := setupBuilder(t, embedder)

	put(&core.LawSection{SectionCode: "BNS 303", Title: "Theft"})

	idx, err := builder.Build(context.Background())
	require.NoError(t, err)
	assert.True(t, idx.Degraded())
	assert.Nil(t, idx.Lookup("BNS 303").Vector)
}

func TestBuildProducesIndependentIndexes(t *testing.T) {
	embedder := mock.NewMockEmbedderWithDim(testDim)
	builder, put := setupBuilder(t, embedder)

	put(&core.LawSection{SectionCode: "BNS 303", Title: "Theft"})

	first, err := builder.Build(context.Background())
	require.NoError(t, err)

	put(&core.LawSection{SectionCode: "BNS 103", Title: "Punishment for murder"})

	second, err := builder.Build(context.Background())
	require.NoError(t, err)

	// The first snapshot must not see sections stored after its build.
	assert.Equal(t, 1, first.Size())
	assert.Equal(t, 2, second.Size())
}

func TestNewBuilderValidation(t *testing.T) {
	embedder := mock.NewMockEmbedderWithDim(testDim)

	sectionRepo, queryLogRepo, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		queryLogRepo.Close()
		sectionRepo.Close()
		backend.Close()
	}()

	enricher, err := enrich.NewEnricher()
	require.NoError(t, err)

	_, err = NewBuilder(nil, enricher, embedder, testDim)
	assert.ErrorIs(t, err, ErrSectionRepositoryRequired)

	_, err = NewBuilder(sectionRepo, nil, embedder, testDim)
	assert.ErrorIs(t, err, ErrEnricherRequired)

	_, err = NewBuilder(sectionRepo, enricher, nil, testDim)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}
