package index

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Sachin007-lgtm/Section-Sense/ai"
	"github.com/Sachin007-lgtm/Section-Sense/enrich"
	"github.com/Sachin007-lgtm/Section-Sense/storage"
	"github.com/panjf2000/ants/v2"
)

// defaultBatchSize is how many section texts go to the embedder per call.
const defaultBatchSize = 32

// Builder constructs a fresh Index from the stored corpus: list, enrich,
// embed in concurrent batches, assemble. A Builder is reusable across
// rebuilds; each Build produces an independent Index.
type Builder struct {
	sections  storage.SectionRepository
	enricher  *enrich.Enricher
	embedder  ai.Embedder
	dimension int
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder) error

// WithPoolSize sets the worker pool size for concurrent embedding batches.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) BuilderOption {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}

		if b.pool != nil {
			b.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		b.pool = pool
		return nil
	}
}

// WithBatchSize sets how many texts are embedded per batch.
func WithBatchSize(size int) BuilderOption {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}
		b.batchSize = size
		return nil
	}
}

// WithBuilderLogger sets a custom logger.
func WithBuilderLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates an index builder.
func NewBuilder(
	sections storage.SectionRepository,
	enricher *enrich.Enricher,
	embedder ai.Embedder,
	dimension int,
	opts ...BuilderOption,
) (*Builder, error) {
	if sections == nil {
		return nil, ErrSectionRepositoryRequired
	}
	if enricher == nil {
		return nil, ErrEnricherRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if dimension <= 0 {
		dimension = ai.DefaultDimension
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		sections:  sections,
		enricher:  enricher,
		embedder:  embedder,
		dimension: dimension,
		pool:      pool,
		batchSize: defaultBatchSize,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(b); optErr != nil {
			b.Release()
			return nil, optErr
		}
	}

	b.logger = b.logger.With("component", "index-builder")

	return b, nil
}

// Build snapshots the stored corpus, enriches it, embeds every section, and
// returns a complete Index. The returned index is not published anywhere;
// the caller decides when to swap it in.
//
// Embedding failures never fail the build: affected sections keep a nil
// vector and the index is marked degraded, so the search path knows to lean
// on the lexical fallback.
func (b *Builder) Build(ctx context.Context) (*Index, error) {
	start := time.Now()

	sections, err := b.sections.ListSections(ctx)
	if err != nil {
		return nil, err
	}
	b.enricher.EnrichAll(sections)

	entries := make([]*Entry, len(sections))
	for i, section := range sections {
		entries[i] = &Entry{Section: section}
	}

	var degraded atomic.Bool
	var wg sync.WaitGroup

	for batchStart := 0; batchStart < len(entries); batchStart += b.batchSize {
		batch := entries[batchStart:min(batchStart+b.batchSize, len(entries))]

		wg.Add(1)
		submitErr := b.pool.Submit(func() {
			defer wg.Done()
			b.embedBatch(ctx, batch, &degraded)
		})
		if submitErr != nil {
			// Pool rejected the task; run inline rather than lose the batch.
			b.embedBatch(ctx, batch, &degraded)
			wg.Done()
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx := NewIndex(entries, b.dimension, degraded.Load())
	b.logger.Info("index build complete",
		"sections", idx.Size(),
		"dimension", idx.Dimension(),
		"degraded", idx.Degraded(),
		"elapsed", time.Since(start))

	return idx, nil
}

func (b *Builder) embedBatch(ctx context.Context, batch []*Entry, degraded *atomic.Bool) {
	texts := make([]string, len(batch))
	for i, entry := range batch {
		texts[i] = entry.Section.CanonicalText()
	}

	vectors, err := b.embedder.EmbedTexts(ctx, texts)
	if err != nil || len(vectors) != len(batch) {
		degraded.Store(true)
		b.logger.Warn("embedding batch failed, sections will fall back to lexical scoring",
			"batch_size", len(batch), "err", err)
		return
	}

	for i, vector := range vectors {
		if len(vector) != b.dimension {
			degraded.Store(true)
			b.logger.Warn("embedding dimension mismatch",
				"section", batch[i].Section.SectionCode,
				"got", len(vector), "want", b.dimension)
			continue
		}
		batch[i].Vector = vector
	}
}

// Release frees the worker pool. The builder should not be used afterwards.
func (b *Builder) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}
