// SPDX-License-Identifier: Apache-2.0

package intake_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qudoro/cardmint/internal/card"
	"github.com/qudoro/cardmint/internal/intake"
)

func item(raw string) intake.BatchItem {
	parsed := intake.ParseBlock(raw)
	score := intake.Score(parsed)
	return intake.BatchItem{ID: raw, Parsed: parsed, Confidence: score, IsLowConfidence: intake.IsLowConfidence(score)}
}

func TestAccept(t *testing.T) {
	existing := []card.Card{{ID: "old", Content: "What is 2+2?"}}

	tests := []struct {
		name        string
		item        intake.BatchItem
		existing    []card.Card
		force       bool
		wantOutcome intake.Outcome
		validate    func(t *testing.T, d intake.Decision)
	}{
		{
			name:        "complete multiple choice is added",
			item:        item("What is 2+2?\nA) 3\nB) 4\nC) 5\nAnswer: B"),
			wantOutcome: intake.OutcomeAdded,
			validate: func(t *testing.T, d intake.Decision) {
				assert.Equal(t, []string{"4"}, d.Card.Answer)
				assert.Equal(t, card.StyleMultipleChoice, d.Card.QuestionStyle)
			},
		},
		{
			name:        "flashcard is added",
			item:        item("Capital of France\nParis"),
			wantOutcome: intake.OutcomeAdded,
			validate: func(t *testing.T, d intake.Decision) {
				assert.Equal(t, []string{"Paris"}, d.Card.Answer)
				assert.Equal(t, card.StyleFlashcard, d.Card.QuestionStyle)
			},
		},
		{
			name:        "near duplicate of existing card is blocked",
			item:        item("What is 2 + 2?\nA) 3\nB) 4\nAnswer: B"),
			existing:    existing,
			wantOutcome: intake.OutcomeDuplicate,
			validate: func(t *testing.T, d intake.Decision) {
				assert.Equal(t, "old", d.Duplicate.ID)
			},
		},
		{
			name:        "force adds duplicates",
			item:        item("What is 2 + 2?\nA) 3\nB) 4\nAnswer: B"),
			existing:    existing,
			force:       true,
			wantOutcome: intake.OutcomeAdded,
		},
		{
			name:        "unmarked options need review",
			item:        item("1) Alpha\n2) Beta\n(correct)"),
			wantOutcome: intake.OutcomeNeedsReview,
			validate: func(t *testing.T, d intake.Decision) {
				assert.ErrorIs(t, d.Err, card.ErrRejected)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := intake.Accept(tt.item, tt.existing, intake.AcceptOptions{Force: tt.force})
			assert.Equal(t, tt.wantOutcome, d.Outcome, "outcome %s", d.Outcome)
			if tt.validate != nil {
				tt.validate(t, d)
			}
		})
	}
}

func TestAccept_BareCorrectMarkerIsLowConfidence(t *testing.T) {
	it := item("1) Alpha\n2) Beta\n(correct)")
	assert.Nil(t, it.Parsed.CorrectIndex)
	assert.True(t, it.IsLowConfidence)
}

func TestAcceptHighConfidence(t *testing.T) {
	existing := []card.Card{{ID: "old", Content: "What is the largest planet?"}}
	items := []intake.BatchItem{
		item("What is 2+2?\nA) 3\nB) 4\nC) 5\nAnswer: B"),
		item("Capital of France\nParis"),
		item("What is the largest planet?\nA) Mars\nB) Jupiter\nAnswer: B"),
		item("What is 2 + 2?\nA) 3\nB) 4\nAnswer: B"),
		item("Which option is right?\nA) x\nB) y\nC) z"),
	}
	require.False(t, items[4].IsLowConfidence, "three options and a question stem score high")

	res := intake.AcceptHighConfidence(items, existing, intake.AcceptOptions{})

	require.Len(t, res.Added, 1)
	assert.Equal(t, "What is 2+2?", res.Added[0].Content)
	assert.Equal(t, 2, res.SkippedDuplicates, "existing card and earlier added card both block")
	require.Len(t, res.Remaining, 2)
	assert.Equal(t, items[1].ID, res.Remaining[0].ID)
	assert.Equal(t, items[4].ID, res.Remaining[1].ID)
	assert.Len(t, existing, 1, "existing collection is not mutated")
}

func TestAcceptHighConfidence_Force(t *testing.T) {
	items := []intake.BatchItem{
		item("What is 2+2?\nA) 3\nB) 4\nAnswer: B"),
		item("What is 2 + 2?\nA) 3\nB) 4\nAnswer: B"),
	}
	res := intake.AcceptHighConfidence(items, nil, intake.AcceptOptions{Force: true})
	assert.Len(t, res.Added, 2)
	assert.Zero(t, res.SkippedDuplicates)
	assert.Empty(t, res.Remaining)
}
