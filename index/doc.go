// Package index holds the in-memory embedding index the search path scores
// against. An Index is immutable once built; rebuilds construct a complete
// replacement off to the side and publish it atomically through a Holder, so
// queries never observe a half-built corpus.
package index
