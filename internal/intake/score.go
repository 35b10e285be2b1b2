// SPDX-License-Identifier: Apache-2.0

package intake

import (
	"math"
	"strings"
	"unicode/utf8"
)

// DefaultLowConfidence is the score below which an item needs human review.
const DefaultLowConfidence = 0.55

// Score weights; the sum is capped at 1.
const (
	weightStem         = 0.35
	weightQuestionMark = 0.10
	weightTwoOptions   = 0.25
	weightThreeOptions = 0.10
	weightCorrect      = 0.20
	weightRationale    = 0.15

	minStemLen      = 12
	minRationaleLen = 8
)

// Score rates how structurally complete a parsed block is, in [0,1], rounded
// to two decimals.
func Score(p ParsedBlock) float64 {
	score := 0.0
	if utf8.RuneCountInString(p.Stem) >= minStemLen {
		score += weightStem
	}
	if strings.HasSuffix(p.Stem, "?") {
		score += weightQuestionMark
	}
	if len(p.Options) >= 2 {
		score += weightTwoOptions
	}
	if len(p.Options) >= 3 {
		score += weightThreeOptions
	}
	if p.CorrectIndex != nil {
		score += weightCorrect
	}
	if len(p.Options) == 0 && utf8.RuneCountInString(p.Rationale) >= minRationaleLen {
		score += weightRationale
	}
	return math.Min(1, math.Round(score*100)/100)
}

// IsLowConfidence reports whether score falls below DefaultLowConfidence.
func IsLowConfidence(score float64) bool {
	return score < DefaultLowConfidence
}
