// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/qudoro/cardmint/internal/card"
)

// MetadataBuildStudyCard describes the build_study_card tool.
var MetadataBuildStudyCard = &mcp.Tool{
	Name: "build_study_card",
	Description: "Validate a reviewed candidate and build a study card. " +
		"Two or more options make a multiple-choice card and require correct_index; " +
		"otherwise a flashcard is built and rationale is required. " +
		"A candidate that cannot be built is reported with rejected=true and a reason.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"stem"},
		"properties": map[string]interface{}{
			"stem": map[string]interface{}{
				"type":        "string",
				"description": "Question text",
			},
			"rationale": map[string]interface{}{
				"type":        "string",
				"description": "Answer or explanation text",
			},
			"options": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Answer choices in display order",
			},
			"correct_index": map[string]interface{}{
				"type":        "integer",
				"description": "Zero-based index of the correct option",
			},
		},
	},
}

type InputBuildStudyCard struct {
	Stem         string   `json:"stem"`
	Rationale    string   `json:"rationale"`
	Options      []string `json:"options"`
	CorrectIndex *int     `json:"correct_index"`
}

type OutputBuildStudyCard struct {
	Card     *card.Card `json:"card,omitempty"`
	Rejected bool       `json:"rejected"`
	Reason   string     `json:"reason,omitempty"`
}

// BuildStudyCard builds a card with the default builder.
func BuildStudyCard(ctx context.Context, req *mcp.CallToolRequest, input InputBuildStudyCard) (*mcp.CallToolResult, OutputBuildStudyCard, error) {
	return NewHandlers(nil, nil).BuildStudyCard(ctx, req, input)
}

// BuildStudyCard builds a card. Rejection is part of the output, not a tool error.
func (h *Handlers) BuildStudyCard(_ context.Context, _ *mcp.CallToolRequest, input InputBuildStudyCard) (*mcp.CallToolResult, OutputBuildStudyCard, error) {
	c, err := h.builder.Build(input.Stem, input.Rationale, input.Options, input.CorrectIndex)
	if errors.Is(err, card.ErrRejected) {
		return nil, OutputBuildStudyCard{Rejected: true, Reason: err.Error()}, nil
	}
	if err != nil {
		return nil, OutputBuildStudyCard{}, err
	}
	return nil, OutputBuildStudyCard{Card: &c}, nil
}

// Register adds every cardmint tool to server. A nil h uses default handlers.
func Register(server *mcp.Server, h *Handlers) {
	if h == nil {
		h = NewHandlers(nil, nil)
	}
	mcp.AddTool(server, MetadataParseStudyText, h.ParseStudyText)
	mcp.AddTool(server, MetadataBuildStudyCard, h.BuildStudyCard)
}
