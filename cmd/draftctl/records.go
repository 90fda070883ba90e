package main

import (
	"fmt"

	"github.com/DoyleJ11/front-office-draft/internal/store"
	"github.com/spf13/cobra"
)

var recordsCmd = &cobra.Command{
	Use:   "records DB",
	Short: "Show best scores and discovered secret combos",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		st, err := store.Open(args[0])
		if err != nil {
			return err
		}
		defer st.Close()

		out := cmd.OutOrStdout()
		for _, m := range cat.Modes {
			best, ok, err := st.BestScore(cmd.Context(), m.Name)
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintf(out, "%-14s best %.2f\n", m.Name, best)
			} else {
				fmt.Fprintf(out, "%-14s no evaluations yet\n", m.Name)
			}
		}

		found, err := st.Discovered(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nSecret combos discovered: %d of %d\n", len(found), len(cat.SecretCombos))
		for _, name := range found {
			fmt.Fprintf(out, "  %s\n", name)
		}
		return nil
	},
}
