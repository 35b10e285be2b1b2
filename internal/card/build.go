// SPDX-License-Identifier: Apache-2.0

package card

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/qudoro/cardmint/internal/textnorm"
)

// ErrRejected is returned when a candidate cannot become a card. Callers route
// rejected candidates back to manual editing; it is not a pipeline failure.
var ErrRejected = errors.New("card rejected")

var (
	ErrMissingStem     = fmt.Errorf("%w: missing question", ErrRejected)
	ErrMissingAnswer   = fmt.Errorf("%w: missing answer", ErrRejected)
	ErrNoCorrectOption = fmt.Errorf("%w: no valid correct option", ErrRejected)
)

// Scheduling defaults for a freshly built card.
const (
	DefaultBox        = 1
	DefaultEaseFactor = 2.5
	DefaultDomain     = "General"
	DefaultTag        = "extension-import"
)

// Builder creates cards with the configured bookkeeping defaults.
type Builder struct {
	Tags   []string
	Domain string

	// NewID and Now are replaceable for deterministic tests.
	NewID func() string
	Now   func() time.Time
}

// NewBuilder creates a Builder with the default tag and domain.
func NewBuilder() *Builder {
	return &Builder{
		Tags:   []string{DefaultTag},
		Domain: DefaultDomain,
		NewID:  uuid.NewString,
		Now:    time.Now,
	}
}

// Build validates a candidate and materializes a card. A candidate with two or
// more options is multiple-choice and needs a correctIndex into options; any
// other candidate is a flashcard and needs a rationale.
func (b *Builder) Build(stem, rationale string, options []string, correctIndex *int) (Card, error) {
	stem = textnorm.Normalize(stem)
	rationale = textnorm.Normalize(rationale)
	if stem == "" {
		return Card{}, ErrMissingStem
	}

	style := StyleFlashcard
	answer := rationale
	opts := []string{}
	if len(options) >= 2 {
		if correctIndex == nil || *correctIndex < 0 || *correctIndex >= len(options) {
			return Card{}, ErrNoCorrectOption
		}
		answer = strings.TrimSpace(options[*correctIndex])
		if answer == "" {
			return Card{}, ErrNoCorrectOption
		}
		style = StyleMultipleChoice
		opts = append(opts, options...)
	} else if rationale == "" {
		return Card{}, ErrMissingAnswer
	}

	if rationale == "" {
		rationale = answer
	}

	now := b.now().UnixMilli()
	return Card{
		ID:             b.newID(),
		Content:        stem,
		Rationale:      rationale,
		Answer:         []string{answer},
		Options:        opts,
		Tags:           append([]string{}, b.Tags...),
		Domain:         b.domain(),
		QuestionStyle:  style,
		CreatedAt:      now,
		Box:            DefaultBox,
		NextReviewDate: now,
		EaseFactor:     DefaultEaseFactor,
	}, nil
}

// Build uses a default Builder.
func Build(stem, rationale string, options []string, correctIndex *int) (Card, error) {
	return NewBuilder().Build(stem, rationale, options, correctIndex)
}

func (b *Builder) newID() string {
	if b.NewID == nil {
		return uuid.NewString()
	}
	return b.NewID()
}

func (b *Builder) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

func (b *Builder) domain() string {
	if b.Domain == "" {
		return DefaultDomain
	}
	return b.Domain
}
