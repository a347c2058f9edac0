package enrich

import (
	"sort"
	"strings"
	"unicode"
)

// maxKeywords caps the keyword list per section.
const maxKeywords = 20

// minKeywordLength drops tokens too short to be useful search terms.
const minKeywordLength = 3

// stopwords is the shared noise-word list for keyword extraction.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "any": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "been": {}, "but": {}, "by": {}, "can": {}, "for": {},
	"from": {}, "had": {}, "has": {}, "have": {}, "he": {}, "her": {},
	"his": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {},
	"its": {}, "may": {}, "not": {}, "of": {}, "on": {}, "or": {},
	"other": {}, "shall": {}, "she": {}, "such": {}, "than": {},
	"that": {}, "the": {}, "their": {}, "them": {}, "then": {},
	"there": {}, "they": {}, "this": {}, "to": {}, "under": {},
	"upon": {}, "was": {}, "were": {}, "when": {}, "where": {},
	"which": {}, "who": {}, "whoever": {}, "will": {}, "with": {},
	"within": {}, "without": {},
}

// ExtractKeywords pulls representative terms out of free text. Tokens are
// lower-cased, stripped of punctuation, filtered against the stopword list,
// then ranked by frequency with ties broken by first occurrence.
func ExtractKeywords(text string) []string {
	type stat struct {
		count int
		first int
	}

	counts := make(map[string]*stat)
	order := make([]string, 0)

	for i, token := range Tokenize(text) {
		if len(token) < minKeywordLength {
			continue
		}
		if _, skip := stopwords[token]; skip {
			continue
		}
		if s, ok := counts[token]; ok {
			s.count++
		} else {
			counts[token] = &stat{count: 1, first: i}
			order = append(order, token)
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := counts[order[i]], counts[order[j]]
		if a.count != b.count {
			return a.count > b.count
		}
		return a.first < b.first
	})

	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	return order
}

// Tokenize splits text into lower-cased alphanumeric tokens.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
