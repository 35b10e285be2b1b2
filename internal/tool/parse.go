// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/qudoro/cardmint/internal/card"
	"github.com/qudoro/cardmint/internal/intake"
	"github.com/qudoro/cardmint/internal/intake/decoders"
)

// MetadataParseStudyText describes the parse_study_text tool.
var MetadataParseStudyText = &mcp.Tool{
	Name: "parse_study_text",
	Description: "Split freeform study notes, a browser selection, or OCR output into question " +
		"blocks and parse each into a study-card candidate. " +
		"Supported formats: plain, markdown, yaml, json. " +
		"Each item includes the question stem, any multiple-choice options, the detected correct " +
		"option index, a rationale, and a confidence score. Items with is_low_confidence=true " +
		"(confidence < 0.55) should be reviewed by a human before becoming cards.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"content"},
		"properties": map[string]interface{}{
			"content": map[string]interface{}{
				"type":        "string",
				"description": "Raw captured text to parse",
			},
			"format": map[string]interface{}{
				"type":        "string",
				"description": "Format hint. One of: plain, markdown, yaml, json. If omitted, auto-detection is used.",
				"enum":        []string{"plain", "markdown", "yaml", "json"},
			},
			"source_id": map[string]interface{}{
				"type":        "string",
				"description": "Optional identifier for the capture (page URL, file name, etc.).",
			},
		},
	},
}

// InputParseStudyText is the input for the ParseStudyText tool.
type InputParseStudyText struct {
	Content  string `json:"content"`
	Format   string `json:"format"`
	SourceID string `json:"source_id"`
}

// OutputParseStudyText is the output for the ParseStudyText tool.
type OutputParseStudyText struct {
	// Items are the parsed candidates in input order.
	Items []intake.BatchItem `json:"items"`
	// DecoderUsed is the name of the decoder that was selected.
	DecoderUsed string `json:"decoder_used"`
	// Segments is the number of question blocks found before filtering.
	Segments      int `json:"segments"`
	Suppressed    int `json:"suppressed"`
	LowConfidence int `json:"low_confidence"`
}

// Handlers serves the cardmint tools with a configured pipeline and builder.
type Handlers struct {
	pipeline *intake.Pipeline
	builder  *card.Builder
}

// NewHandlers returns tool handlers backed by p and b. A nil pipeline uses
// every default decoder; a nil builder uses the card defaults.
func NewHandlers(p *intake.Pipeline, b *card.Builder) *Handlers {
	if p == nil {
		p = intake.NewPipeline(decoders.Default()...)
	}
	if b == nil {
		b = card.NewBuilder()
	}
	return &Handlers{pipeline: p, builder: b}
}

// ParseStudyText runs the intake pipeline over the provided text with default settings.
func ParseStudyText(ctx context.Context, req *mcp.CallToolRequest, input InputParseStudyText) (*mcp.CallToolResult, OutputParseStudyText, error) {
	return NewHandlers(nil, nil).ParseStudyText(ctx, req, input)
}

// ParseStudyText runs the handler's pipeline over the provided text.
func (h *Handlers) ParseStudyText(ctx context.Context, _ *mcp.CallToolRequest, input InputParseStudyText) (*mcp.CallToolResult, OutputParseStudyText, error) {
	if input.Content == "" {
		return nil, OutputParseStudyText{}, fmt.Errorf("content is required")
	}

	sourceID := input.SourceID
	if sourceID == "" {
		sourceID = "unknown"
	}
	src := intake.Source{
		Content: []byte(input.Content),
		Format:  input.Format,
		ID:      sourceID,
	}

	batch, err := h.pipeline.Run(ctx, src)
	if err != nil {
		return nil, OutputParseStudyText{}, err
	}

	return nil, OutputParseStudyText{
		Items:         batch.Items,
		DecoderUsed:   batch.DecoderUsed,
		Segments:      batch.Segments,
		Suppressed:    batch.Suppressed,
		LowConfidence: batch.LowConfidence,
	}, nil
}
