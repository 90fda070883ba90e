package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/DoyleJ11/front-office-draft/internal/catalog"
	"github.com/DoyleJ11/front-office-draft/internal/engine"
	"github.com/DoyleJ11/front-office-draft/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dbPath string

var evaluateCmd = &cobra.Command{
	Use:   "evaluate ITEM_ID...",
	Short: "Score a build and say whether it passes",
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
		s, err := build(cat, ids)
		if err != nil {
			return err
		}
		ev, err := engine.Evaluate(cat, s.Mode, s.Selected)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printEvaluation(out, ev)

		if dbPath == "" {
			return nil
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		d, err := engine.Record(cmd.Context(), st, ev)
		if err != nil {
			log.Warn("failed to record evaluation", zap.Error(err))
			return nil
		}
		for _, name := range d.NewCombos {
			fmt.Fprintf(out, "New secret combo discovered: %s\n", name)
		}
		if d.NewBest {
			fmt.Fprintf(out, "New best score for %s!\n", ev.Mode)
		}
		return nil
	},
}

func init() {
	evaluateCmd.Flags().StringVar(&dbPath, "db", "", "record discoveries and best scores in this database")
}

// build applies ids as AddItem commands so the CLI enforces the same rules
// as a live draft.
func build(cat *catalog.Catalog, ids []int) (engine.State, error) {
	s := engine.NewEmptyState(modeName, false)
	if _, err := cat.Mode(modeName); err != nil {
		return s, err
	}
	for _, id := range ids {
		_, next, err := engine.Apply(cat, s, engine.Command{Type: engine.CmdAddItem, ItemID: id}, nil)
		if err != nil {
			return s, err
		}
		s = next
	}
	return s, nil
}

func printEvaluation(out io.Writer, ev engine.Evaluation) {
	r := ev.Result
	fmt.Fprintf(out, "Mode %s, cost $%.1fM\n", ev.Mode, ev.Cost)
	fmt.Fprintf(out, "  base impact      %6.2f\n", r.BaseImpact)
	fmt.Fprintf(out, "  synergies        %+6.2f  %s\n", r.SynergyBonus, strings.Join(names(r.ActiveSynergies, func(s catalog.Synergy) string { return s.Name }), ", "))
	fmt.Fprintf(out, "  secret combos    %+6.2f  %s\n", r.SecretComboBonus, strings.Join(names(r.ActiveSecretCombos, func(s catalog.SecretCombo) string { return s.Name }), ", "))
	fmt.Fprintf(out, "  anti-synergies   %+6.2f  %s\n", r.AntiSynergyPenalty, strings.Join(names(r.ActiveAntiSynergies, func(s catalog.AntiSynergy) string { return s.Name }), ", "))
	fmt.Fprintf(out, "  final score      %6.2f\n", r.FinalScore)

	if ev.Passed {
		fmt.Fprintf(out, "PASSED. Claim code: %s\n", ev.ClaimCode)
		return
	}
	fmt.Fprintln(out, "Not there yet.")
	for _, h := range ev.Hints {
		fmt.Fprintf(out, "  hint: %s\n", h)
	}
}

func names[T any](xs []T, name func(T) string) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		out = append(out, name(x))
	}
	return out
}
