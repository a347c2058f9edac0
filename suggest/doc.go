// Package suggest serves autocomplete over the indexed corpus. Candidates
// come from section titles and keyword sets; no embedding is involved, so
// the path stays cheap enough to call on every keystroke.
package suggest
