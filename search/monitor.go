package search

import "github.com/Sachin007-lgtm/Section-Sense/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterEmbedding(dimension int)
	AfterSemanticScoring(aboveThreshold int)
	FallbackTriggered(reason string)
	AfterLexicalScoring(aboveThreshold int)
	Finish(results []*core.RankedResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                    {}
func (n *noopMonitor) AfterEmbedding(_ int)              {}
func (n *noopMonitor) AfterSemanticScoring(_ int)        {}
func (n *noopMonitor) FallbackTriggered(_ string)        {}
func (n *noopMonitor) AfterLexicalScoring(_ int)         {}
func (n *noopMonitor) Finish(_ []*core.RankedResult)     {}
