// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/qudoro/cardmint/internal/card"
	"github.com/qudoro/cardmint/internal/deck"
	"github.com/qudoro/cardmint/internal/intake"
)

type parsedItem struct {
	intake.BatchItem `yaml:",inline"`
	// Outcome is what accept would do with the item against the existing deck.
	Outcome     string `yaml:"outcome"`
	DuplicateOf string `yaml:"duplicate_of,omitempty"`
}

type parseOutput struct {
	Decoder       string       `yaml:"decoder"`
	Segments      int          `yaml:"segments"`
	Suppressed    int          `yaml:"suppressed"`
	LowConfidence int          `yaml:"low_confidence"`
	Items         []parsedItem `yaml:"items"`
}

func newParseCmd(a *app) *cobra.Command {
	var format, existingPath string
	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse captured text into scored candidates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, sourceID, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			var existing []card.Card
			if existingPath != "" {
				if existing, err = deck.Load(existingPath); err != nil {
					return err
				}
			}

			batch, err := a.pipeline().Run(cmd.Context(), intake.Source{Content: data, Format: format, ID: sourceID})
			if err != nil {
				return err
			}

			preview := a.cfg.AcceptOptions()
			preview.Force = false
			out := parseOutput{
				Decoder:       batch.DecoderUsed,
				Segments:      batch.Segments,
				Suppressed:    batch.Suppressed,
				LowConfidence: batch.LowConfidence,
				Items:         make([]parsedItem, 0, len(batch.Items)),
			}
			for _, it := range batch.Items {
				dec := intake.Accept(it, existing, preview)
				pi := parsedItem{BatchItem: it, Outcome: dec.Outcome.String()}
				if dec.Outcome == intake.OutcomeDuplicate {
					pi.DuplicateOf = dec.Duplicate.ID
				} else if it.IsLowConfidence {
					pi.Outcome = intake.OutcomeNeedsReview.String()
				}
				out.Items = append(out.Items, pi)
			}
			return writeYAML(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "input format hint: plain, markdown, yaml, json")
	cmd.Flags().StringVar(&existingPath, "existing", "", "deck file to check candidates against")
	return cmd
}
