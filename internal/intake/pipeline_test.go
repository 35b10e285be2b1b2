// SPDX-License-Identifier: Apache-2.0

package intake_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qudoro/cardmint/internal/intake"
	"github.com/qudoro/cardmint/internal/intake/decoders"
)

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("item-%d", n)
	}
}

// ---------------------------------------------------------------------------
// ParseBatch
// ---------------------------------------------------------------------------

func TestParseBatch_TwoQuestions(t *testing.T) {
	raw := "What is 2+2?\nA) 3\nB) 4\nC) 5\nAnswer: B\n\nCapital of France\nParis"
	items := intake.ParseBatch(raw)
	require.Len(t, items, 2)

	assert.NotEqual(t, items[0].ID, items[1].ID)
	assert.Equal(t, "What is 2+2?", items[0].Parsed.Stem)
	assert.Equal(t, 1.0, items[0].Confidence)
	assert.False(t, items[0].IsLowConfidence)
	assert.Equal(t, "what is 2 2", items[0].Signature)

	assert.Equal(t, "Capital of France", items[1].Parsed.Stem)
	assert.InDelta(t, 0.35, items[1].Confidence, 1e-9)
	assert.True(t, items[1].IsLowConfidence)
}

func TestParseBatch_Empty(t *testing.T) {
	assert.Empty(t, intake.ParseBatch(""))
	assert.Empty(t, intake.ParseBatch(" \n\n "))
}

func TestPipeline_Suppression(t *testing.T) {
	exact := "What is 2+2?\nA) 3\nB) 4\n\nWhat is 2 + 2?\nA) 3\nB) 4"
	fuzzy := "What is the capital of France?\nParis\n\nWhat is the capitol of France?\nParis"

	tests := []struct {
		name           string
		raw            string
		opts           intake.Options
		wantItems      int
		wantSuppressed int
	}{
		{name: "exact duplicate suppressed by default", raw: exact, opts: intake.DefaultOptions(), wantItems: 1, wantSuppressed: 1},
		{name: "exact suppression disabled", raw: exact, opts: intake.Options{}, wantItems: 2},
		{name: "near duplicate kept by default", raw: fuzzy, opts: intake.DefaultOptions(), wantItems: 2},
		{
			name:           "near duplicate suppressed when fuzzy enabled",
			raw:            fuzzy,
			opts:           intake.Options{SuppressExactDuplicates: true, FuzzyBatchDuplicates: true},
			wantItems:      1,
			wantSuppressed: 1,
		},
		{
			name:           "fuzzy alone also catches exact repeats",
			raw:            exact,
			opts:           intake.Options{FuzzyBatchDuplicates: true},
			wantItems:      1,
			wantSuppressed: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch, err := intake.NewPipeline().WithOptions(tt.opts).ParseBatch(context.Background(), tt.raw)
			require.NoError(t, err)
			assert.Len(t, batch.Items, tt.wantItems)
			assert.Equal(t, tt.wantSuppressed, batch.Suppressed)
			assert.Equal(t, 2, batch.Segments)
		})
	}
}

func TestPipeline_ProcessDropsEmptySegments(t *testing.T) {
	batch, err := intake.NewPipeline().Process(context.Background(), []string{"", "  ", "Capital of France\nParis"})
	require.NoError(t, err)
	assert.Equal(t, 3, batch.Segments)
	require.Len(t, batch.Items, 1)
	assert.Equal(t, 1, batch.LowConfidence)
}

func TestPipeline_LowConfidenceThreshold(t *testing.T) {
	p := intake.NewPipeline().WithOptions(intake.Options{LowConfidenceThreshold: 0.3})
	batch, err := p.ParseBatch(context.Background(), "Capital of France\nParis")
	require.NoError(t, err)
	require.Len(t, batch.Items, 1)
	assert.False(t, batch.Items[0].IsLowConfidence)
}

func TestPipeline_WorkersPreserveOrder(t *testing.T) {
	var parts []string
	for i := 1; i <= 25; i++ {
		parts = append(parts, fmt.Sprintf("Question number %d?\nA) yes\nB) no\nAnswer: A", i))
	}
	raw := strings.Join(parts, "\n\n")

	seq, err := intake.NewPipeline().WithIDs(counterIDs()).ParseBatch(context.Background(), raw)
	require.NoError(t, err)
	par, err := intake.NewPipeline().
		WithOptions(intake.Options{SuppressExactDuplicates: true, Workers: 4}).
		WithIDs(counterIDs()).
		ParseBatch(context.Background(), raw)
	require.NoError(t, err)

	require.Len(t, par.Items, 25)
	assert.Equal(t, seq, par)
	assert.Equal(t, "Question number 7?", par.Items[6].Parsed.Stem)
}

func TestPipeline_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := intake.NewPipeline().ParseBatch(ctx, "A?\n\nB?")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

// ---------------------------------------------------------------------------
// Run / decoder selection
// ---------------------------------------------------------------------------

func TestPipeline_UnsupportedFormat(t *testing.T) {
	p := intake.NewPipeline() // no decoders registered
	_, err := p.Run(context.Background(), intake.Source{Content: []byte("anything"), Format: "pdf", ID: "scan.pdf"})
	require.Error(t, err)
	assert.ErrorIs(t, err, intake.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "unsupported input format")
}

func TestPipeline_RegisteredDecoders(t *testing.T) {
	p := intake.NewPipeline(decoders.NewMarkdownDecoder(), decoders.NewPlainDecoder())
	assert.Equal(t, []string{"markdown", "plain"}, p.RegisteredDecoders())
}

func TestPipeline_Run(t *testing.T) {
	p := intake.NewPipeline(decoders.NewYAMLDecoder(), decoders.NewMarkdownDecoder(), decoders.NewPlainDecoder())

	tests := []struct {
		name        string
		source      intake.Source
		wantDecoder string
		wantItems   int
		wantErr     bool
	}{
		{
			name:        "plain notes",
			source:      intake.Source{Content: []byte("What is 2+2?\nA) 3\nB) 4\nAnswer: B\n\nCapital of France\nParis"), ID: "notes"},
			wantDecoder: "plain",
			wantItems:   2,
		},
		{
			name:        "markdown detected from headings",
			source:      intake.Source{Content: []byte("# Chapter 1\nWhat is 2+2?\nA) 3\nB) 4\nAnswer: B\n\n## What is DNS?\nName resolution service")},
			wantDecoder: "markdown",
			wantItems:   2,
		},
		{
			name:        "yaml snippets by hint",
			source:      intake.Source{Content: []byte("- \"Capital of France\\nParis\"\n- text: \"What is 2+2?\\nA) 3\\nB) 4\\nAnswer: B\"\n"), Format: "yaml"},
			wantDecoder: "yaml",
			wantItems:   2,
		},
		{
			name:    "broken yaml surfaces decoder error",
			source:  intake.Source{Content: []byte("- [unclosed"), Format: "yaml"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch, err := p.Run(context.Background(), tt.source)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), `decoder "yaml" failed`)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDecoder, batch.DecoderUsed)
			assert.Len(t, batch.Items, tt.wantItems)
		})
	}
}
