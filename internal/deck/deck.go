// SPDX-License-Identifier: Apache-2.0

// Package deck reads an existing card collection so new candidates can be
// checked against it. The collection is owned by the caller; deck never writes it.
package deck

import (
	"bytes"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/qudoro/cardmint/internal/card"
)

// exportDoc is the companion export layout: cards under "questions".
type exportDoc struct {
	Questions []card.Card `yaml:"questions"`
}

// Load reads a YAML or JSON deck file.
func Load(path string) ([]card.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	cards, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cards, nil
}

// Parse decodes either a bare sequence of cards or an export document.
func Parse(data []byte) ([]card.Card, error) {
	if isSequence(data) {
		var cards []card.Card
		if err := yaml.Unmarshal(data, &cards); err != nil {
			return nil, fmt.Errorf("decode deck: %w", err)
		}
		return cards, nil
	}
	var doc exportDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode deck: %w", err)
	}
	if doc.Questions == nil {
		return []card.Card{}, nil
	}
	return doc.Questions, nil
}

// isSequence reports whether the first significant line opens a sequence.
func isSequence(data []byte) bool {
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' || bytes.Equal(line, []byte("---")) {
			continue
		}
		return line[0] == '[' || line[0] == '-'
	}
	return false
}

// Problem is a card that fails validation.
type Problem struct {
	Index int
	ID    string
	Err   error
}

// Check validates every card and returns the failures in deck order.
func Check(cards []card.Card) []Problem {
	var problems []Problem
	for i, c := range cards {
		if err := card.Validate(c); err != nil {
			problems = append(problems, Problem{Index: i, ID: c.ID, Err: err})
		}
	}
	return problems
}
