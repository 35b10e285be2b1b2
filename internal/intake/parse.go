// SPDX-License-Identifier: Apache-2.0

package intake

import (
	"regexp"
	"strings"

	"github.com/qudoro/cardmint/internal/textnorm"
)

var (
	optionLine      = regexp.MustCompile(`^(?:[-*•]\s*)?(?:\(?[A-Za-z]\)|[A-Za-z][).]|\d{1,2}[).])\s+(.+)$`)
	declarationHead = regexp.MustCompile(`(?i)^(?:answer|ans|correct)`)
	stemLabel       = regexp.MustCompile(`(?i)^q(?:uestion)?\s*[:.)\-]\s*`)
	bareDeclaration = regexp.MustCompile(`(?i)^(?:answer|ans|correct)\s*[:\-]?\s*$`)
)

// lineKind classifies one trimmed, non-empty line of a segment.
type lineKind int

const (
	kindText lineKind = iota
	kindOption
	kindDeclaration
)

func classify(line string) lineKind {
	switch {
	case optionLine.MatchString(line):
		return kindOption
	case declarationHead.MatchString(line):
		return kindDeclaration
	default:
		return kindText
	}
}

// parseState is the position of the line scanner within a segment.
type parseState int

const (
	stateBeforeOptions parseState = iota
	stateInOptions
	stateTrailing
)

func (s parseState) String() string {
	switch s {
	case stateBeforeOptions:
		return "BeforeOptions"
	case stateInOptions:
		return "InOptions"
	case stateTrailing:
		return "Trailing"
	default:
		return "unknown"
	}
}

// transition returns the next state for a line of the given kind, and whether
// a text line in InOptions continues the previous option.
func transition(s parseState, k lineKind) (next parseState, continuation bool) {
	switch s {
	case stateBeforeOptions:
		if k == kindOption {
			return stateInOptions, false
		}
		return stateBeforeOptions, false
	case stateInOptions:
		switch k {
		case kindOption:
			return stateInOptions, false
		case kindText:
			return stateInOptions, true
		default:
			return stateTrailing, false
		}
	default:
		return stateTrailing, false
	}
}

// sections is the line partition produced by the state machine.
type sections struct {
	stem     []string
	options  []string
	trailing []string
}

func scan(lines []string) sections {
	var out sections
	state := stateBeforeOptions
	for _, line := range lines {
		next, continuation := transition(state, classify(line))
		switch {
		case next == stateBeforeOptions:
			out.stem = append(out.stem, line)
		case next == stateInOptions && continuation:
			last := len(out.options) - 1
			out.options[last] = strings.TrimSpace(out.options[last] + " " + line)
		case next == stateInOptions:
			out.options = append(out.options, line)
		default:
			out.trailing = append(out.trailing, line)
		}
		state = next
	}
	return out
}

// ParseBlock reads one question segment. It never fails; unparseable input
// yields empty fields and an unset CorrectIndex.
func ParseBlock(segment string) ParsedBlock {
	text := textnorm.Normalize(segment)
	lines := nonEmptyLines(text)
	if len(lines) == 0 {
		return ParsedBlock{Options: []string{}}
	}

	sec := scan(lines)
	if len(sec.options) == 0 {
		return ParsedBlock{
			Stem:      lines[0],
			Rationale: strings.Join(lines[1:], "\n"),
			Options:   []string{},
		}
	}

	options := make([]string, 0, len(sec.options))
	for _, line := range sec.options {
		if opt := optionText(line); opt != "" {
			options = append(options, opt)
		}
	}

	trailing := strings.Join(sec.trailing, "\n")
	correct := detectAnswer(trailing, options)
	if correct == nil {
		correct = detectAnswer(text, options)
	}

	stem := strings.TrimSpace(stemLabel.ReplaceAllString(strings.Join(sec.stem, " "), ""))
	if stem == "" {
		stem = lines[0]
	}

	return ParsedBlock{
		Stem:         stem,
		Rationale:    declaredAnswer(sec.trailing),
		Options:      options,
		CorrectIndex: correct,
	}
}

func optionText(line string) string {
	m := optionLine.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// declaredAnswer returns the payload of the first "Answer: ..." line. A bare
// "Answer:" line takes its payload from the line after it.
func declaredAnswer(trailing []string) string {
	for i, line := range trailing {
		if bareDeclaration.MatchString(line) {
			if i+1 < len(trailing) {
				return textnorm.Normalize(trailing[i+1])
			}
			return ""
		}
		if m := declarationLine.FindStringSubmatch(line); m != nil {
			return textnorm.Normalize(m[1])
		}
	}
	return ""
}

func nonEmptyLines(text string) []string {
	if text == "" {
		return nil
	}
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
