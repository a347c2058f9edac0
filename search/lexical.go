package search

import (
	"strings"

	"github.com/Sachin007-lgtm/Section-Sense/core"
)

// lexicalScore counts how many query terms appear as substrings of the
// section's title, description, or keyword set, normalized to [0,1] by the
// term count. It is the scoring function of the fallback path and needs no
// embedding.
func lexicalScore(terms []string, section *core.LawSection) float32 {
	if len(terms) == 0 {
		return 0
	}

	title := strings.ToLower(section.Title)
	description := strings.ToLower(section.Description)

	matched := 0
	for _, term := range terms {
		if strings.Contains(title, term) || strings.Contains(description, term) {
			matched++
			continue
		}
		for _, keyword := range section.Keywords {
			if strings.Contains(keyword, term) {
				matched++
				break
			}
		}
	}

	return float32(matched) / float32(len(terms))
}
