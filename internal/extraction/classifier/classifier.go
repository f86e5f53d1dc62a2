// Package classifier picks the archetype whose keywords best match a description.
package classifier

import (
	"strings"

	"requirement-extractor/internal/extraction/keywords"
)

type Classifier struct {
	table *keywords.Table
}

func New(table *keywords.Table) *Classifier {
	return &Classifier{table: table}
}

func (c *Classifier) Classify(text string) (keywords.Archetype, int) {
	return Classify(c.table, text)
}

// Classify scores every archetype by how many of its keywords occur in text
// and returns the strictly highest, scanning in declared order so the earlier
// archetype wins a tie. With no match the table's fallback is returned with score 0.
func Classify(table *keywords.Table, text string) (keywords.Archetype, int) {
	lower := strings.ToLower(text)

	best := table.Fallback()
	bestScore := 0
	for _, archetype := range table.Archetypes() {
		if score := Score(archetype.Keywords, lower); score > bestScore {
			best = archetype
			bestScore = score
		}
	}
	return best, bestScore
}

// Score counts distinct keywords contained in lowerText. Keywords must already be lower-case.
func Score(keywords []string, lowerText string) int {
	score := 0
	for _, kw := range keywords {
		if strings.Contains(lowerText, kw) {
			score++
		}
	}
	return score
}

// Matches reports whether any trigger is contained in lowerText.
func Matches(triggers []string, lowerText string) bool {
	for _, trigger := range triggers {
		if strings.Contains(lowerText, trigger) {
			return true
		}
	}
	return false
}
