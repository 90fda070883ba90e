package engine

import (
	"fmt"

	"github.com/DoyleJ11/front-office-draft/internal/catalog"
)

const fallbackHint = "Try swapping your lowest-impact pick for one that completes a synergy."

// Hints returns up to maxHints improvement suggestions for a build, most
// important first. Checks run in a fixed triage order and stop at the cap;
// the generic fallback is always eligible, so the list is never empty.
// A maxHints of zero or less means the catalog's Rules.MaxHints, and the
// cap never drops below one.
func Hints(cat *catalog.Catalog, mode catalog.ChallengeMode, ids IDSet, r Result, maxHints int) []string {
	rules := cat.Rules
	if maxHints <= 0 {
		maxHints = rules.MaxHints
	}
	maxHints = max(maxHints, 1)
	items := selectedItems(cat, ids)

	checks := []func() (string, bool){
		func() (string, bool) {
			if len(r.ActiveSecretCombos) > 0 {
				return "", false
			}
			return "No secret combo found yet. Some 3-item combinations unlock large hidden bonuses.", true
		},
		func() (string, bool) {
			if len(r.ActiveAntiSynergies) == 0 {
				return "", false
			}
			worst := r.ActiveAntiSynergies[0]
			for _, a := range r.ActiveAntiSynergies[1:] {
				if a.Penalty < worst.Penalty {
					worst = a
				}
			}
			return fmt.Sprintf("%q is costing you %.2f points. %s", worst.Name, -worst.Penalty, worst.Reason), true
		},
		func() (string, bool) {
			if r.BaseImpact >= rules.ImpactFloor {
				return "", false
			}
			return fmt.Sprintf("Base impact is only %.2f. The foundation is weak; add higher-impact picks.", r.BaseImpact), true
		},
		func() (string, bool) {
			if len(r.ActiveSynergies) > 0 {
				return "", false
			}
			return "No synergies are active. Pair complementary roles, like a hire with the tool that amplifies them.", true
		},
		func() (string, bool) {
			unspent := mode.BudgetLimit - costOf(cat, ids)
			if unspent <= rules.UnspentFraction*mode.BudgetLimit {
				return "", false
			}
			return fmt.Sprintf("You left $%.1fM of your $%.1fM budget unspent.", unspent, mode.BudgetLimit), true
		},
		func() (string, bool) {
			gap := rules.PassThreshold - r.FinalScore
			if gap <= 0 || gap > rules.NearMissMargin {
				return "", false
			}
			return fmt.Sprintf("So close: %.2f points short of the %.2f pass mark.", gap, rules.PassThreshold), true
		},
		func() (string, bool) {
			if rules.CollectorTag == "" {
				return "", false
			}
			var collector *catalog.Item
			for i, it := range items {
				if it.HasAnyTag(rules.InterpreterTags) {
					return "", false
				}
				if collector == nil && it.HasAnyTag([]string{rules.CollectorTag}) {
					collector = &items[i]
				}
			}
			if collector == nil {
				return "", false
			}
			return fmt.Sprintf("%s collects data nobody on your staff can interpret. Add an analyst or scientist.", collector.Name), true
		},
		func() (string, bool) {
			return fallbackHint, true
		},
	}

	out := make([]string, 0, maxHints)
	for _, check := range checks {
		if hint, ok := check(); ok {
			out = append(out, hint)
			if len(out) == maxHints {
				break
			}
		}
	}
	return out
}
