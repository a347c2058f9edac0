package index

import (
	"testing"

	"github.com/Sachin007-lgtm/Section-Sense/core"
	"github.com/stretchr/testify/assert"
)

func makeEntry(code, title, category string) *Entry {
	return &Entry{
		Section: &core.LawSection{
			SectionCode: code,
			Title:       title,
			Category:    category,
		},
		Vector: []float32{1, 0, 0},
	}
}

func TestNewIndexSortsByCode(t *testing.T) {
	idx := NewIndex([]*Entry{
		makeEntry("BNS 303", "Theft", "Property"),
		makeEntry("BNS 103", "Murder", "Human Body"),
		makeEntry("BNS 201", "Forgery", "Documents"),
	}, 3, false)

	codes := make([]string, 0, idx.Size())
	for entry := range idx.Entries() {
		codes = append(codes, entry.Section.SectionCode)
	}
	assert.Equal(t, []string{"BNS 103", "BNS 201", "BNS 303"}, codes)
}

func TestIndexLookup(t *testing.T) {
	idx := NewIndex([]*Entry{
		makeEntry("BNS 103", "Murder", "Human Body"),
	}, 3, false)

	entry := idx.Lookup("BNS 103")
	assert.NotNil(t, entry)
	assert.Equal(t, "Murder", entry.Section.Title)

	assert.Nil(t, idx.Lookup("BNS 999"))
}

func TestIndexCategories(t *testing.T) {
	idx := NewIndex([]*Entry{
		makeEntry("BNS 303", "Theft", "Property"),
		makeEntry("BNS 304", "Robbery", "Property"),
		makeEntry("BNS 103", "Murder", "Human Body"),
		makeEntry("BNS 1", "Short title", ""),
	}, 3, false)

	assert.Equal(t, []string{"Human Body", "Property"}, idx.Categories())
}

func TestIndexEmptyCorpus(t *testing.T) {
	idx := NewIndex(nil, 384, false)

	assert.Equal(t, 0, idx.Size())
	assert.False(t, idx.Degraded())
	assert.Empty(t, idx.Categories())
	for range idx.Entries() {
		t.Fatal("empty index should yield no entries")
	}
}

func TestHolderSwap(t *testing.T) {
	var holder Holder
	assert.Nil(t, holder.Load())

	first := NewIndex(nil, 3, false)
	assert.Nil(t, holder.Publish(first))
	assert.Same(t, first, holder.Load())

	second := NewIndex([]*Entry{makeEntry("BNS 103", "Murder", "Human Body")}, 3, false)
	assert.Same(t, first, holder.Publish(second))
	assert.Same(t, second, holder.Load())
}
