// Package engagement estimates how much effort went into a story with a
// pure length-plus-keyword heuristic. No external capability is involved, so
// the score is fully deterministic.
package engagement

import (
	"math"
	"strings"
)

const (
	minLength = 100
	maxLength = 1000

	lengthWeight  = 0.7
	keywordWeight = 0.3
)

// keywords signal a substantive narrative rather than filler text.
var keywords = []string{"challenge", "achievement", "motivation", "impact", "community"}

// Score returns the engagement heuristic in [0,1], rounded to 2 decimals.
func Score(story string) float64 {
	length := float64(len(story))
	if length < minLength {
		length = minLength
	}
	if length > maxLength {
		length = maxLength
	}
	lengthScore := length / maxLength

	lower := strings.ToLower(story)
	hits := 0
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			hits++
		}
	}
	keywordScore := float64(hits) / float64(len(keywords))

	return math.Round((lengthWeight*lengthScore+keywordWeight*keywordScore)*100) / 100
}
