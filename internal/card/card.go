// SPDX-License-Identifier: Apache-2.0

// Package card materializes validated study cards from parsed candidates.
package card

// Style is the question style of a card.
type Style string

const (
	StyleMultipleChoice Style = "Multiple Choice"
	StyleFlashcard      Style = "Flashcard"
)

// Card is the unit handed to the caller's collection. Scheduling fields are
// defaulted here and only mutated later by a review scheduler.
type Card struct {
	ID            string   `json:"id" yaml:"id"`
	Content       string   `json:"content" yaml:"content"`
	Rationale     string   `json:"rationale" yaml:"rationale"`
	Answer        []string `json:"answer" yaml:"answer"`
	Options       []string `json:"options" yaml:"options"`
	Tags          []string `json:"tags" yaml:"tags"`
	Domain        string   `json:"domain" yaml:"domain"`
	QuestionStyle Style    `json:"questionStyle" yaml:"questionStyle"`

	// CreatedAt and NextReviewDate are unix milliseconds.
	CreatedAt      int64   `json:"createdAt" yaml:"createdAt"`
	Box            int     `json:"box" yaml:"box"`
	NextReviewDate int64   `json:"nextReviewDate" yaml:"nextReviewDate"`
	EaseFactor     float64 `json:"easeFactor" yaml:"easeFactor"`
	Repetitions    int     `json:"repetitions" yaml:"repetitions"`
	Interval       int     `json:"interval" yaml:"interval"`
}

// IsMultipleChoice reports whether the card carries selectable options.
func (c Card) IsMultipleChoice() bool {
	return c.QuestionStyle == StyleMultipleChoice
}

// AnswerText returns the single correct answer, or "" when none is set.
func (c Card) AnswerText() string {
	if len(c.Answer) == 0 {
		return ""
	}
	return c.Answer[0]
}
