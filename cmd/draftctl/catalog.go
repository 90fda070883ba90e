package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the items, modes and known synergies",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		mode, err := cat.Mode(modeName)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Mode: %s (budget $%.1fM)\n", mode.Name, mode.BudgetLimit)
		if mode.Description != "" {
			fmt.Fprintf(out, "  %s\n", mode.Description)
		}
		fmt.Fprintln(out)

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tKIND\tCOST\tIMPACT\tTAGS")
		for _, it := range cat.Visible(mode) {
			fmt.Fprintf(w, "%d\t%s\t%s\t$%.1fM\t%.1f\t%s\n", it.ID, it.Name, it.Category, it.Cost, it.Impact, strings.Join(it.Tags, ","))
		}
		w.Flush()

		fmt.Fprintln(out, "\nSynergies:")
		for _, s := range cat.Synergies {
			fmt.Fprintf(out, "  %-28s +%.1f  %s\n", s.Name, s.Bonus, s.Reason)
		}
		fmt.Fprintln(out, "Anti-synergies:")
		for _, a := range cat.AntiSynergies {
			fmt.Fprintf(out, "  %-28s %.1f  %s\n", a.Name, a.Penalty, a.Reason)
		}
		fmt.Fprintf(out, "\nRequirements: %s\n", cat.Requirements.Message)
		return nil
	},
}
