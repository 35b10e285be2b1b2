// SPDX-License-Identifier: Apache-2.0

// Package intake turns freeform captured text into scored study-card candidates.
package intake

import "context"

// ParsedBlock is the structured reading of one question segment.
// CorrectIndex, when set, always indexes into Options.
type ParsedBlock struct {
	Stem         string   `json:"stem" yaml:"stem"`
	Rationale    string   `json:"rationale" yaml:"rationale"`
	Options      []string `json:"options" yaml:"options"`
	CorrectIndex *int     `json:"correct_index,omitempty" yaml:"correct_index,omitempty"`
}

// IsEmpty reports whether nothing at all was parsed.
func (p ParsedBlock) IsEmpty() bool {
	return p.Stem == "" && p.Rationale == "" && len(p.Options) == 0
}

// BatchItem is one scored candidate awaiting acceptance or review.
type BatchItem struct {
	ID              string      `json:"id" yaml:"id"`
	Parsed          ParsedBlock `json:"parsed" yaml:"parsed"`
	Confidence      float64     `json:"confidence" yaml:"confidence"`
	IsLowConfidence bool        `json:"is_low_confidence" yaml:"is_low_confidence"`
	Signature       string      `json:"signature" yaml:"signature"`
	Segment         string      `json:"segment" yaml:"segment"`
}

// Source describes the raw input to the intake pipeline.
type Source struct {
	// Content is the raw captured text or document.
	Content []byte
	Format  string
	ID      string
}

// Decoder turns a source into raw question segments.
type Decoder interface {
	CanHandle(source Source) bool
	Decode(ctx context.Context, source Source) ([]string, error)
	Name() string
}
