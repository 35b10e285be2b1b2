// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/qudoro/cardmint/internal/card"
	"github.com/qudoro/cardmint/internal/deck"
	"github.com/qudoro/cardmint/internal/intake"
)

type acceptOutput struct {
	Added             []card.Card        `yaml:"added"`
	SkippedDuplicates int                `yaml:"skipped_duplicates"`
	NeedsReview       []intake.BatchItem `yaml:"needs_review"`
}

func newAcceptCmd(a *app) *cobra.Command {
	var format, existingPath string
	var force bool
	cmd := &cobra.Command{
		Use:   "accept [file|-]",
		Short: "Build cards from high-confidence candidates and list the rest for review",
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

			opts := a.cfg.AcceptOptions()
			if cmd.Flags().Changed("force-duplicates") {
				opts.Force = force
			}
			res := intake.AcceptHighConfidence(batch.Items, existing, opts)
			for _, c := range res.Added {
				a.log.Debug("card added", "id", c.ID, "style", string(c.QuestionStyle), "answer", c.AnswerText())
			}
			a.log.Info("batch accepted",
				"source", sourceID,
				"added", len(res.Added),
				"skipped_duplicates", res.SkippedDuplicates,
				"needs_review", len(res.Remaining),
			)
			return writeYAML(cmd.OutOrStdout(), acceptOutput{
				Added:             res.Added,
				SkippedDuplicates: res.SkippedDuplicates,
				NeedsReview:       res.Remaining,
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "input format hint: plain, markdown, yaml, json")
	cmd.Flags().StringVar(&existingPath, "existing", "", "deck file to check candidates against")
	cmd.Flags().BoolVar(&force, "force-duplicates", false, "add cards even when they duplicate existing ones")
	return cmd
}
