// SPDX-License-Identifier: Apache-2.0

package card_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qudoro/cardmint/internal/card"
)

func intPtr(i int) *int { return &i }

func fixedBuilder() *card.Builder {
	b := card.NewBuilder()
	n := 0
	b.NewID = func() string {
		n++
		return fmt.Sprintf("card-%d", n)
	}
	b.Now = func() time.Time { return time.UnixMilli(1700000000000) }
	return b
}

func TestBuilder_Build(t *testing.T) {
	tests := []struct {
		name         string
		stem         string
		rationale    string
		options      []string
		correctIndex *int
		wantErr      error
		validate     func(t *testing.T, c card.Card)
	}{
		{
			name:         "multiple choice uses selected option as answer",
			stem:         "What is 2+2?",
			rationale:    "B",
			options:      []string{"3", "4", "5"},
			correctIndex: intPtr(1),
			validate: func(t *testing.T, c card.Card) {
				assert.Equal(t, card.StyleMultipleChoice, c.QuestionStyle)
				assert.Equal(t, []string{"4"}, c.Answer)
				assert.Equal(t, []string{"3", "4", "5"}, c.Options)
				assert.Equal(t, "B", c.Rationale)
			},
		},
		{
			name:         "multiple choice rationale falls back to answer",
			stem:         "Pick one",
			options:      []string{"x", "y"},
			correctIndex: intPtr(0),
			validate: func(t *testing.T, c card.Card) {
				assert.Equal(t, "x", c.Rationale)
			},
		},
		{
			name:      "flashcard answer is the rationale",
			stem:      "Capital of France",
			rationale: "Paris",
			validate: func(t *testing.T, c card.Card) {
				assert.Equal(t, card.StyleFlashcard, c.QuestionStyle)
				assert.Equal(t, []string{"Paris"}, c.Answer)
				assert.Empty(t, c.Options)
				assert.NotNil(t, c.Options)
			},
		},
		{
			name:         "single option is treated as flashcard",
			stem:         "Largest planet",
			rationale:    "Jupiter",
			options:      []string{"Jupiter"},
			correctIndex: intPtr(0),
			validate: func(t *testing.T, c card.Card) {
				assert.Equal(t, card.StyleFlashcard, c.QuestionStyle)
				assert.Empty(t, c.Options)
			},
		},
		{name: "empty stem rejected", stem: "  ", rationale: "x", wantErr: card.ErrMissingStem},
		{name: "flashcard without rationale rejected", stem: "Capital of France", wantErr: card.ErrMissingAnswer},
		{name: "multiple choice without index rejected", stem: "Q?", options: []string{"a", "b"}, wantErr: card.ErrNoCorrectOption},
		{name: "index out of range rejected", stem: "Q?", options: []string{"a", "b"}, correctIndex: intPtr(2), wantErr: card.ErrNoCorrectOption},
		{name: "negative index rejected", stem: "Q?", options: []string{"a", "b"}, correctIndex: intPtr(-1), wantErr: card.ErrNoCorrectOption},
		{name: "blank selected option rejected", stem: "Q?", options: []string{"a", " "}, correctIndex: intPtr(1), wantErr: card.ErrNoCorrectOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := fixedBuilder().Build(tt.stem, tt.rationale, tt.options, tt.correctIndex)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, errors.Is(err, card.ErrRejected), "rejections wrap ErrRejected")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "card-1", c.ID)
			assert.Equal(t, []string{card.DefaultTag}, c.Tags)
			assert.Equal(t, card.DefaultDomain, c.Domain)
			assert.Equal(t, card.DefaultBox, c.Box)
			assert.Equal(t, card.DefaultEaseFactor, c.EaseFactor)
			assert.Equal(t, int64(1700000000000), c.CreatedAt)
			assert.Equal(t, c.CreatedAt, c.NextReviewDate)
			assert.Zero(t, c.Repetitions)
			assert.Zero(t, c.Interval)
			assert.NoError(t, card.Validate(c))
			if tt.validate != nil {
				tt.validate(t, c)
			}
		})
	}
}

func TestBuild_RepeatedCallsYieldDistinctIDs(t *testing.T) {
	options := []string{"3", "4", "5"}
	first, err := card.Build("What is 2+2?", "", options, intPtr(1))
	require.NoError(t, err)
	second, err := card.Build("What is 2+2?", "", options, intPtr(1))
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, first.Answer, second.Answer)
	assert.Equal(t, first.Options, second.Options)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestBuild_OptionsAreCopied(t *testing.T) {
	options := []string{"a", "b"}
	c, err := card.Build("Q?", "", options, intPtr(0))
	require.NoError(t, err)
	options[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, c.Options)
}
