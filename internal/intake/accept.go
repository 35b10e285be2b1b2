// SPDX-License-Identifier: Apache-2.0

package intake

import (
	"github.com/qudoro/cardmint/internal/card"
	"github.com/qudoro/cardmint/internal/dedupe"
)

// Outcome is the result of accepting one batch item.
type Outcome int

const (
	OutcomeAdded Outcome = iota
	OutcomeDuplicate
	OutcomeNeedsReview
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAdded:
		return "added"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeNeedsReview:
		return "needs_review"
	default:
		return "unknown"
	}
}

// AcceptOptions controls acceptance. Nil Builder and Detector use defaults.
type AcceptOptions struct {
	// Force adds cards even when they duplicate existing ones.
	Force    bool
	Builder  *card.Builder
	Detector *dedupe.Detector
}

func (o AcceptOptions) builder() *card.Builder {
	if o.Builder == nil {
		return card.NewBuilder()
	}
	return o.Builder
}

func (o AcceptOptions) detector() *dedupe.Detector {
	if o.Detector == nil {
		return dedupe.NewDetector()
	}
	return o.Detector
}

// Decision records what happened to one item.
type Decision struct {
	Outcome   Outcome
	Card      card.Card
	Duplicate card.Card
	// Err is the builder rejection when Outcome is OutcomeNeedsReview.
	Err error
}

// Accept checks an item against the existing collection and builds a card.
// existing is only read; appending the card is the caller's job.
func Accept(item BatchItem, existing []card.Card, opts AcceptOptions) Decision {
	return accept(item, existing, opts.Force, opts.builder(), opts.detector())
}

func accept(item BatchItem, existing []card.Card, force bool, b *card.Builder, d *dedupe.Detector) Decision {
	if !force {
		if dup, ok := d.FindDuplicate(item.Parsed.Stem, existing); ok {
			return Decision{Outcome: OutcomeDuplicate, Duplicate: dup}
		}
	}
	p := item.Parsed
	c, err := b.Build(p.Stem, p.Rationale, p.Options, p.CorrectIndex)
	if err != nil {
		return Decision{Outcome: OutcomeNeedsReview, Err: err}
	}
	return Decision{Outcome: OutcomeAdded, Card: c}
}

// AcceptResult summarizes a bulk acceptance.
type AcceptResult struct {
	Added             []card.Card
	Remaining         []BatchItem
	SkippedDuplicates int
}

// AcceptHighConfidence builds cards for every item that is not low-confidence.
// Low-confidence and rejected items are returned for review; duplicates are
// dropped and counted. Cards added earlier in the call count as existing for
// later items.
func AcceptHighConfidence(items []BatchItem, existing []card.Card, opts AcceptOptions) AcceptResult {
	b, d := opts.builder(), opts.detector()
	pool := make([]card.Card, len(existing), len(existing)+len(items))
	copy(pool, existing)

	result := AcceptResult{Added: []card.Card{}, Remaining: []BatchItem{}}
	for _, item := range items {
		if item.IsLowConfidence {
			result.Remaining = append(result.Remaining, item)
			continue
		}
		dec := accept(item, pool, opts.Force, b, d)
		switch dec.Outcome {
		case OutcomeDuplicate:
			result.SkippedDuplicates++
		case OutcomeNeedsReview:
			result.Remaining = append(result.Remaining, item)
		case OutcomeAdded:
			result.Added = append(result.Added, dec.Card)
			pool = append(pool, dec.Card)
		}
	}
	return result
}
