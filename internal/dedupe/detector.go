// SPDX-License-Identifier: Apache-2.0

// Package dedupe decides whether a question stem is a near-duplicate of an
// existing one.
package dedupe

import (
	"math"

	"github.com/qudoro/cardmint/internal/card"
	"github.com/qudoro/cardmint/internal/textnorm"
)

const (
	DefaultSimilarity       = 0.9
	DefaultMinLengthSlack   = 8
	DefaultLengthSlackRatio = 0.25
)

// Detector holds the near-duplicate thresholds. Two normalized stems are
// duplicates when they are equal, or when their Dice coefficient reaches
// Similarity and their lengths differ by at most
// max(MinLengthSlack, round(LengthSlackRatio * len(new stem))).
type Detector struct {
	Similarity       float64
	MinLengthSlack   int
	LengthSlackRatio float64
}

// NewDetector creates a Detector with the default thresholds.
func NewDetector() *Detector {
	return &Detector{
		Similarity:       DefaultSimilarity,
		MinLengthSlack:   DefaultMinLengthSlack,
		LengthSlackRatio: DefaultLengthSlackRatio,
	}
}

// FindDuplicate returns the first card in existing whose content duplicates
// stem. Only Content is read.
func (d *Detector) FindDuplicate(stem string, existing []card.Card) (card.Card, bool) {
	normalized := textnorm.ForComparison(stem)
	if normalized == "" {
		return card.Card{}, false
	}
	for _, c := range existing {
		if d.matches(normalized, textnorm.ForComparison(c.Content)) {
			return c, true
		}
	}
	return card.Card{}, false
}

// Match returns the index of the first entry in stems that duplicates stem, or -1.
func (d *Detector) Match(stem string, stems []string) int {
	normalized := textnorm.ForComparison(stem)
	if normalized == "" {
		return -1
	}
	for i, s := range stems {
		if d.matches(normalized, textnorm.ForComparison(s)) {
			return i
		}
	}
	return -1
}

// matches compares two already-normalized strings; candidate is the new stem.
func (d *Detector) matches(candidate, existing string) bool {
	if existing == "" {
		return false
	}
	if candidate == existing {
		return true
	}
	diff := len(candidate) - len(existing)
	if diff < 0 {
		diff = -diff
	}
	if diff > d.allowedLengthDiff(len(candidate)) {
		return false
	}
	return Dice(existing, candidate) >= d.Similarity
}

func (d *Detector) allowedLengthDiff(n int) int {
	allowed := int(math.Round(d.LengthSlackRatio * float64(n)))
	if allowed < d.MinLengthSlack {
		return d.MinLengthSlack
	}
	return allowed
}

// FindDuplicate uses a Detector with the default thresholds.
func FindDuplicate(stem string, existing []card.Card) (card.Card, bool) {
	return NewDetector().FindDuplicate(stem, existing)
}
