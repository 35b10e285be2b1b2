// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qudoro/cardmint/internal/deck"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate deck.yaml",
		Short: "Check every card in a deck against the card rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := deck.Load(args[0])
			if err != nil {
				return err
			}
			problems := deck.Check(cards)
			out := cmd.OutOrStdout()
			for _, p := range problems {
				fmt.Fprintf(out, "card %d (%s): %v\n", p.Index, p.ID, p.Err)
			}
			if len(problems) > 0 {
				a.log.Warn("deck has invalid cards", "deck", args[0], "invalid", len(problems), "total", len(cards))
				return fmt.Errorf("%d of %d cards invalid", len(problems), len(cards))
			}
			mc := 0
			for _, c := range cards {
				if c.IsMultipleChoice() {
					mc++
				}
			}
			fmt.Fprintf(out, "ok: %d cards (%d multiple choice)\n", len(cards), mc)
			return nil
		},
	}
}
