// SPDX-License-Identifier: Apache-2.0

package intake

import (
	"regexp"
	"strings"

	"github.com/qudoro/cardmint/internal/textnorm"
)

var (
	blankLineRun   = regexp.MustCompile(`\n\s*\n+`)
	questionMarker = regexp.MustCompile(`(?i)^(?:q(?:uestion)?\s*)?\d{1,3}[).:\-]\s+\S+`)
)

// SplitBlocks partitions raw text into per-question segments. Blank-line
// separation is tried first; numbered question markers ("1.", "Q2)") are the
// fallback for densely packed lists.
func SplitBlocks(raw string) []string {
	text := textnorm.Normalize(raw)
	if text == "" {
		return nil
	}

	var paragraphs []string
	for _, part := range blankLineRun.Split(text, -1) {
		if part = textnorm.Normalize(part); part != "" {
			paragraphs = append(paragraphs, part)
		}
	}
	if len(paragraphs) > 1 {
		return paragraphs
	}

	lines := strings.Split(text, "\n")
	var starts []int
	for i, line := range lines {
		if questionMarker.MatchString(strings.TrimSpace(line)) {
			starts = append(starts, i)
		}
	}
	if len(starts) < 2 {
		return []string{text}
	}

	blocks := make([]string, 0, len(starts))
	for i, start := range starts {
		end := len(lines)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		if block := textnorm.Normalize(strings.Join(lines[start:end], "\n")); block != "" {
			blocks = append(blocks, block)
		}
	}
	if len(blocks) == 0 {
		return []string{text}
	}
	return blocks
}
