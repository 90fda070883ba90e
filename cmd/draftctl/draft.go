package main

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/DoyleJ11/front-office-draft/internal/engine"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seed uint64

var draftCmd = &cobra.Command{
	Use:   "draft ITEM_ID...",
	Short: "Draft items in order against the rival and evaluate the result",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		if seed == 0 {
			seed = rand.Uint64()
		}
		rng := rand.New(rand.NewPCG(seed, seed))
		out := cmd.OutOrStdout()

		s := engine.NewEmptyState(modeName, true)
		for _, id := range ids {
			events, next, err := engine.Apply(cat, s, engine.Command{Type: engine.CmdAddItem, ItemID: id}, rng)
			if err != nil {
				var be *engine.BudgetError
				if errors.As(err, &be) {
					fmt.Fprintf(out, "skip %d: over budget by $%.1fM\n", id, be.Shortfall)
					continue
				}
				fmt.Fprintf(out, "skip %d: %v\n", id, err)
				continue
			}
			s = next
			for _, e := range events {
				it, _ := cat.Item(e.ItemID)
				switch e.Type {
				case engine.EvtItemAdded:
					fmt.Fprintf(out, "you:   %s\n", it.Name)
				case engine.EvtRivalClaimed:
					fmt.Fprintf(out, "rival: %s\n", it.Name)
				case engine.EvtRivalExhausted:
					fmt.Fprintln(out, "rival: nothing left to claim")
				}
			}
		}
		log.Debug("draft finished", zap.Uint64("seed", seed), zap.Ints("selected", s.Selected.Sorted()))

		ev, err := engine.Evaluate(cat, s.Mode, s.Selected)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		printEvaluation(out, ev)
		return nil
	},
}

func init() {
	draftCmd.Flags().Uint64Var(&seed, "seed", 0, "rival seed (default random)")
}
