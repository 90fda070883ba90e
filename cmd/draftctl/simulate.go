package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/DoyleJ11/front-office-draft/internal/engine"
	"github.com/spf13/cobra"
)

var removeID int
var addID int

var simulateCmd = &cobra.Command{
	Use:   "simulate ITEM_ID... [--remove ID] [--add ID]",
	Short: "Preview what a one-item swap would do to a build",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if removeID == 0 && addID == 0 {
			return fmt.Errorf("nothing to simulate: pass --remove, --add or both")
		}
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
		o, err := s.Simulate(cat, engine.Swap{RemoveID: removeID, AddID: addID})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if o.Status == engine.SwapOverBudget {
			fmt.Fprintf(out, "Over budget: $%.1fM is $%.1fM too much.\n", o.Cost, o.Shortfall)
			return nil
		}
		fmt.Fprintf(out, "Score %.2f -> %.2f (%+.2f), cost $%.1fM\n", o.CurrentScore, o.HypotheticalScore, o.Delta, o.Cost)
		printDiff(out, "synergies", o.GainedEffects, o.LostEffects)
		printDiff(out, "anti-synergies", o.GainedAntiSynergies, o.LostAntiSynergies)
		printDiff(out, "secret combos", o.GainedSecretCombos, o.LostSecretCombos)
		if o.CrossesPassThreshold {
			fmt.Fprintln(out, "This swap crosses the pass mark.")
		}
		return nil
	},
}

func init() {
	simulateCmd.Flags().IntVar(&removeID, "remove", 0, "item to take out")
	simulateCmd.Flags().IntVar(&addID, "add", 0, "item to put in")
}

func printDiff(out io.Writer, label string, gained, lost []string) {
	if len(gained) > 0 {
		fmt.Fprintf(out, "  + %s: %s\n", label, strings.Join(gained, ", "))
	}
	if len(lost) > 0 {
		fmt.Fprintf(out, "  - %s: %s\n", label, strings.Join(lost, ", "))
	}
}
