package suggest

import (
	"errors"
	"iter"
	"sort"
	"strings"

	"github.com/Sachin007-lgtm/Section-Sense/index"
)

const (
	// DefaultMaxSuggestions applies when a caller does not set a limit.
	DefaultMaxSuggestions = 5
	// MinPartialLength is the shortest partial worth completing; anything
	// shorter returns no suggestions rather than the whole corpus.
	MinPartialLength = 2
)

// matchClass orders suggestion candidates: exact-prefix matches rank above
// plain substring matches.
type matchClass int

const (
	matchPrefix matchClass = iota
	matchSubstring
)

// Suggester completes partial queries from section titles and keywords.
type Suggester struct {
	holder *index.Holder
}

// ErrHolderRequired is returned when an index holder is not provided.
var ErrHolderRequired = errors.New("index holder required")

// NewSuggester creates a suggester over the published index.
func NewSuggester(holder *index.Holder) (*Suggester, error) {
	if holder == nil {
		return nil, ErrHolderRequired
	}
	return &Suggester{holder: holder}, nil
}

// Suggest returns up to maxSuggestions completions for partial, best first.
// Ranking: exact-prefix match, then substring match, then shortest
// candidate, then lexical order. A partial shorter than MinPartialLength
// yields nothing; so does an unpublished index.
func (s *Suggester) Suggest(partial string, maxSuggestions int) []string {
	normalized := strings.ToLower(strings.TrimSpace(partial))
	if len(normalized) < MinPartialLength {
		return nil
	}
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}

	idx := s.holder.Load()
	if idx == nil {
		return nil
	}

	type candidate struct {
		display string
		lower   string
		class   matchClass
	}

	seen := make(map[string]bool)
	candidates := make([]candidate, 0)

	for text := range corpusPhrases(idx) {
		lower := strings.ToLower(text)
		if seen[lower] {
			continue
		}

		var class matchClass
		switch {
		case strings.HasPrefix(lower, normalized):
			class = matchPrefix
		case strings.Contains(lower, normalized):
			class = matchSubstring
		default:
			continue
		}

		seen[lower] = true
		candidates = append(candidates, candidate{display: text, lower: lower, class: class})
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.class != b.class {
			return a.class < b.class
		}
		if len(a.display) != len(b.display) {
			return len(a.display) < len(b.display)
		}
		return a.lower < b.lower
	})

	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}

	suggestions := make([]string, len(candidates))
	for i, c := range candidates {
		suggestions[i] = c.display
	}
	return suggestions
}

// corpusPhrases yields every candidate phrase in the corpus: each section's
// title first, then its keywords. The sequence is finite and restartable;
// callers may stop early.
func corpusPhrases(idx *index.Index) iter.Seq[string] {
	return func(yield func(string) bool) {
		for entry := range idx.Entries() {
			if entry.Section.Title != "" {
				if !yield(entry.Section.Title) {
					return
				}
			}
			for _, keyword := range entry.Section.Keywords {
				if !yield(keyword) {
					return
				}
			}
		}
	}
}
