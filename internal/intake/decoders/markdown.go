// SPDX-License-Identifier: Apache-2.0

package decoders

import (
	"context"
	"regexp"
	"strings"

	"github.com/qudoro/cardmint/internal/intake"
	"github.com/qudoro/cardmint/internal/textnorm"
)

var atxHeading = regexp.MustCompile(`^#{1,6}\s+(.*?)(?:\s+#+)?\s*$`)

// MarkdownDecoder splits Markdown notes on ATX headings and then splits each
// section's body into question segments. A heading phrased as a question
// ("## What is DNS?") becomes the first line of its section's first segment;
// any other heading is a label and is dropped.
type MarkdownDecoder struct{}

// NewMarkdownDecoder creates a new MarkdownDecoder.
func NewMarkdownDecoder() *MarkdownDecoder {
	return &MarkdownDecoder{}
}

func (d *MarkdownDecoder) Name() string {
	return "markdown"
}

// CanHandle returns true for the "markdown"/"md" hints, or content that
// contains at least one ATX heading line.
func (d *MarkdownDecoder) CanHandle(source intake.Source) bool {
	if strings.EqualFold(source.Format, "markdown") || strings.EqualFold(source.Format, "md") {
		return true
	}
	if source.Format != "" {
		return false
	}
	for _, line := range strings.Split(string(source.Content), "\n") {
		if atxHeading.MatchString(strings.TrimSpace(line)) {
			return true
		}
	}
	return false
}

func (d *MarkdownDecoder) Decode(_ context.Context, source intake.Source) ([]string, error) {
	lines := strings.Split(textnorm.Normalize(string(source.Content)), "\n")

	var segments []string
	var heading string
	var body []string

	flush := func() {
		blocks := intake.SplitBlocks(strings.Join(body, "\n"))
		if strings.HasSuffix(heading, "?") {
			if len(blocks) == 0 {
				blocks = []string{heading}
			} else {
				blocks[0] = heading + "\n" + blocks[0]
			}
		}
		segments = append(segments, blocks...)
	}

	for _, line := range lines {
		if m := atxHeading.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			flush()
			heading = m[1]
			body = nil
			continue
		}
		body = append(body, line)
	}
	flush()

	return segments, nil
}
