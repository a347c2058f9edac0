package search

import "strings"

// Stop words to filter out of query tokens before lexical scoring
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "what": true, "which": true, "who": true,
	"when": true, "where": true, "how": true, "under": true, "about": true,
}

// queryTerms splits a query into distinct lower-cased tokens, trims
// punctuation, and removes stop words. Order of first occurrence is kept.
func queryTerms(query string) []string {
	words := strings.Fields(strings.ToLower(query))
	seen := make(map[string]bool, len(words))
	terms := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.Trim(word, ".,!?;:'\"-()[]{}")
		if cleaned == "" || stopWords[cleaned] || seen[cleaned] {
			continue
		}
		seen[cleaned] = true
		terms = append(terms, cleaned)
	}

	return terms
}
