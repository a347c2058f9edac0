// Package search implements the query path: embed the query, score it
// against the in-memory index by cosine similarity, filter, threshold, rank.
// When the semantic path errors, times out, or comes back too thin, the
// lexical fallback scores the same corpus by token overlap; semantic results
// always rank above lexical ones and every result is tagged with its source.
package search
