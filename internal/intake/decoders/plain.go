// SPDX-License-Identifier: Apache-2.0

package decoders

import (
	"context"

	"github.com/qudoro/cardmint/internal/intake"
)

// PlainDecoder splits pasted notes, selections, and OCR output with
// intake.SplitBlocks. It accepts any source and should be registered last.
type PlainDecoder struct{}

func NewPlainDecoder() *PlainDecoder {
	return &PlainDecoder{}
}

func (d *PlainDecoder) Name() string {
	return "plain"
}

func (d *PlainDecoder) CanHandle(_ intake.Source) bool {
	return true
}

func (d *PlainDecoder) Decode(_ context.Context, source intake.Source) ([]string, error) {
	return intake.SplitBlocks(string(source.Content)), nil
}

// Default returns every decoder in selection order. PlainDecoder accepts
// everything, so it stays last.
func Default() []intake.Decoder {
	return []intake.Decoder{
		NewYAMLDecoder(),
		NewMarkdownDecoder(),
		NewPlainDecoder(),
	}
}
