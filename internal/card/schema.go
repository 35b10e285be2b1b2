// SPDX-License-Identifier: Apache-2.0

package card

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

// cardSchema encodes the card invariant: a multiple-choice card has at least
// two options and its answer is one of them; a flashcard has no options and a
// non-empty rationale.
const cardSchema = `
#Card: {
	id:        string & !=""
	content:   string & !=""
	rationale: string
	answer: [string & !=""]
	options: [...string]
	tags: [...string]
	domain:         string
	questionStyle:  "Multiple Choice" | "Flashcard"
	createdAt:      int
	box:            int & >=1
	nextReviewDate: int
	easeFactor:     number & >0
	repetitions:    int & >=0
	interval:       int & >=0

	if questionStyle == "Multiple Choice" {
		options: [string, string, ...string]
		answer: [or(options)]
	}
	if questionStyle == "Flashcard" {
		options: []
		rationale: !=""
	}
}
`

var (
	schemaMu   sync.Mutex
	schemaOnce sync.Once
	schemaCtx  *cue.Context
	schemaDef  cue.Value
	schemaErr  error
)

func loadSchema() {
	schemaCtx = cuecontext.New()
	v := schemaCtx.CompileString(cardSchema, cue.Filename("card.cue"))
	if err := v.Err(); err != nil {
		schemaErr = fmt.Errorf("compile card schema: %w", err)
		return
	}
	schemaDef = v.LookupPath(cue.ParsePath("#Card"))
	// The definition is open until unified with a card, so only non-concrete
	// validation applies here.
	if err := schemaDef.Validate(); err != nil {
		schemaErr = fmt.Errorf("load card schema: %w", err)
	}
}

// Validate checks a card against the card invariant. Cards produced by Build
// always pass; cards loaded from outside the pipeline may not.
func Validate(c Card) error {
	schemaOnce.Do(loadSchema)
	if schemaErr != nil {
		return schemaErr
	}
	// Nil slices encode as null; the schema expects lists.
	if c.Answer == nil {
		c.Answer = []string{}
	}
	if c.Options == nil {
		c.Options = []string{}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	schemaMu.Lock()
	defer schemaMu.Unlock()
	unified := schemaDef.Unify(schemaCtx.Encode(c))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("card %q: %s", c.ID, errors.Details(err, nil))
	}
	return nil
}
