package index

import (
	"iter"
	"sort"
	"sync/atomic"

	"github.com/Sachin007-lgtm/Section-Sense/core"
)

// Entry pairs a section with its embedding vector. Vector is nil when
// embedding failed for this section during the build; such entries still
// serve lookups and the lexical fallback, just not semantic scoring.
type Entry struct {
	Section *core.LawSection
	Vector  []float32
}

// Index is an immutable snapshot of the embedded corpus. All methods are
// safe for concurrent use because nothing mutates an Index after NewIndex
// returns.
type Index struct {
	entries    []*Entry // sorted by section code
	byCode     map[string]*Entry
	categories []string
	dimension  int
	degraded   bool
}

// NewIndex builds an Index from entries. Entries are ordered by section
// code, so iteration is deterministic. degraded marks a build in which one
// or more sections could not be embedded.
func NewIndex(entries []*Entry, dimension int, degraded bool) *Index {
	sorted := make([]*Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Section.SectionCode < sorted[j].Section.SectionCode
	})

	byCode := make(map[string]*Entry, len(sorted))
	categorySet := make(map[string]struct{})
	for _, entry := range sorted {
		byCode[entry.Section.SectionCode] = entry
		if entry.Section.Category != "" {
			categorySet[entry.Section.Category] = struct{}{}
		}
	}

	categories := make([]string, 0, len(categorySet))
	for category := range categorySet {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	return &Index{
		entries:    sorted,
		byCode:     byCode,
		categories: categories,
		dimension:  dimension,
		degraded:   degraded,
	}
}

// Lookup returns the entry for a section code, or nil if absent.
func (idx *Index) Lookup(sectionCode string) *Entry {
	return idx.byCode[sectionCode]
}

// Entries iterates over all entries in section-code order.
func (idx *Index) Entries() iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for _, entry := range idx.entries {
			if !yield(entry) {
				return
			}
		}
	}
}

// Size returns the number of indexed sections.
func (idx *Index) Size() int {
	return len(idx.entries)
}

// Dimension returns the embedding dimensionality of this build.
func (idx *Index) Dimension() int {
	return idx.dimension
}

// Degraded reports whether any section in this build is missing its vector.
func (idx *Index) Degraded() bool {
	return idx.degraded
}

// Categories returns the distinct category labels in the corpus, sorted.
func (idx *Index) Categories() []string {
	return idx.categories
}

// Holder publishes the current Index to readers. Swaps are atomic: a reader
// sees either the old complete index or the new complete index, never a mix.
type Holder struct {
	current atomic.Pointer[Index]
}

// Load returns the current index, or nil if none has been published yet.
func (h *Holder) Load() *Index {
	return h.current.Load()
}

// Publish installs a new index and returns the one it replaced.
func (h *Holder) Publish(idx *Index) *Index {
	return h.current.Swap(idx)
}
