// SPDX-License-Identifier: Apache-2.0

package intake

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/qudoro/cardmint/internal/textnorm"
)

var (
	// markedOption is an option line ending in "(correct)", "*" or "✔".
	markedOption    = regexp.MustCompile(`(?i)^(?:[-*•]\s*)?(?:\(?([A-Za-z0-9]{1,2})\)?[).:\-]?\s+)(.+)\s*(?:\(correct\)|\*|✔)$`)
	declarationLine = regexp.MustCompile(`(?i)^(?:answer|ans|correct)\s*[:\-]?\s*(.+)$`)
	labelOnly       = regexp.MustCompile(`^\(?([A-Za-z0-9]{1,2})\)?(?:[).:\-])?$`)
)

// detectAnswer scans text for an inline-marked option or an explicit answer
// declaration and resolves it against options. The first resolvable line wins.
func detectAnswer(text string, options []string) *int {
	for _, line := range nonEmptyLines(textnorm.Normalize(text)) {
		if m := markedOption.FindStringSubmatch(line); m != nil {
			if idx := resolveToken(m[1], options); idx != nil {
				return idx
			}
			if idx := resolveToken(m[2], options); idx != nil {
				return idx
			}
		}

		m := declarationLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		token := textnorm.Normalize(m[1])
		if label := labelOnly.FindStringSubmatch(token); label != nil {
			if idx := resolveToken(label[1], options); idx != nil {
				return idx
			}
		}
		if idx := resolveToken(token, options); idx != nil {
			return idx
		}
	}
	return nil
}

// resolveToken maps an answer token to an option index: a single letter by
// alphabet position, a number as 1-based, otherwise by alphanumeric-only,
// case-insensitive text match.
func resolveToken(token string, options []string) *int {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == "" || len(options) == 0 {
		return nil
	}
	if len(t) == 1 && t[0] >= 'a' && t[0] <= 'z' {
		if idx := int(t[0] - 'a'); idx < len(options) {
			return &idx
		}
	}
	if isDigits(t) {
		if n, err := strconv.Atoi(t); err == nil && n >= 1 && n <= len(options) {
			idx := n - 1
			return &idx
		}
	}
	compact := compactToken(t)
	if compact == "" {
		return nil
	}
	for i, opt := range options {
		if compactToken(strings.ToLower(opt)) == compact {
			idx := i
			return &idx
		}
	}
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func compactToken(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
