// SPDX-License-Identifier: Apache-2.0

package decoders

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/qudoro/cardmint/internal/intake"
	"github.com/qudoro/cardmint/internal/textnorm"
)

// YAMLDecoder reads a YAML or JSON sequence of captured snippets, such as the
// output of an OCR or clipping tool. Each entry is either a string or a
// mapping with a "text" key, and becomes exactly one segment.
type YAMLDecoder struct{}

func NewYAMLDecoder() *YAMLDecoder {
	return &YAMLDecoder{}
}

func (d *YAMLDecoder) Name() string {
	return "yaml"
}

// CanHandle only claims sources with an explicit hint; free text often looks
// like YAML ("- A) Paris").
func (d *YAMLDecoder) CanHandle(source intake.Source) bool {
	switch strings.ToLower(source.Format) {
	case "yaml", "yml", "json":
		return true
	}
	return false
}

func (d *YAMLDecoder) Decode(_ context.Context, source intake.Source) ([]string, error) {
	var entries []interface{}
	if err := yaml.Unmarshal(source.Content, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML/JSON snippets: %w", err)
	}

	segments := make([]string, 0, len(entries))
	for i, entry := range entries {
		text, err := entryText(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if text = textnorm.Normalize(text); text != "" {
			segments = append(segments, text)
		}
	}
	return segments, nil
}

func entryText(entry interface{}) (string, error) {
	switch v := entry.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case map[string]interface{}:
		text, ok := v["text"]
		if !ok {
			return "", fmt.Errorf("mapping has no %q key", "text")
		}
		return fmt.Sprint(text), nil
	default:
		return "", fmt.Errorf("unsupported entry type %T", entry)
	}
}
