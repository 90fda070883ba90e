package engine

import (
	"fmt"
	"slices"

	"github.com/DoyleJ11/front-office-draft/internal/catalog"
)

type SwapStatus string

const (
	SwapScored     SwapStatus = "scored"
	SwapOverBudget SwapStatus = "over_budget"
)

// Swap is a hypothetical one-item substitution. A zero id leaves that side
// empty, so {RemoveID: 0, AddID: 7} asks "what if I also take 7".
type Swap struct {
	RemoveID int
	AddID    int
}

type SwapOutcome struct {
	Status    SwapStatus
	Cost      float64 // hypothetical total cost
	Shortfall float64 // only for SwapOverBudget

	CurrentScore      float64
	HypotheticalScore float64
	Delta             float64

	GainedEffects       []string // synergies
	LostEffects         []string
	GainedAntiSynergies []string
	LostAntiSynergies   []string
	GainedSecretCombos  []string
	LostSecretCombos    []string

	CrossesPassThreshold bool
}

// SimulateSwap scores current with swap applied, without touching current.
// Over-budget swaps stop before any detection or scoring.
func SimulateSwap(cat *catalog.Catalog, current IDSet, swap Swap, budgetLimit float64) (SwapOutcome, error) {
	if err := checkKnown(cat, current); err != nil {
		return SwapOutcome{}, err
	}
	if swap.RemoveID != 0 && !current.Has(swap.RemoveID) {
		return SwapOutcome{}, fmt.Errorf("%w: %d", ErrNotSelected, swap.RemoveID)
	}
	if swap.AddID != 0 {
		if _, ok := cat.Item(swap.AddID); !ok {
			return SwapOutcome{}, fmt.Errorf("%w: %d", ErrUnknownItem, swap.AddID)
		}
		if current.Has(swap.AddID) && swap.AddID != swap.RemoveID {
			return SwapOutcome{}, fmt.Errorf("%w: %d", ErrAlreadySelected, swap.AddID)
		}
	}

	hypothetical := current.Without(swap.RemoveID)
	if swap.AddID != 0 {
		hypothetical = hypothetical.With(swap.AddID)
	}

	out := SwapOutcome{Cost: costOf(cat, hypothetical)}
	if exceeds(out.Cost, budgetLimit) {
		out.Status = SwapOverBudget
		out.Shortfall = out.Cost - budgetLimit
		return out, nil
	}

	curDet := Detect(cat, current)
	hypDet := Detect(cat, hypothetical)
	cur := Score(cat, current, curDet)
	hyp := Score(cat, hypothetical, hypDet)

	out.Status = SwapScored
	out.CurrentScore = cur.FinalScore
	out.HypotheticalScore = hyp.FinalScore
	out.Delta = hyp.FinalScore - cur.FinalScore
	out.GainedEffects, out.LostEffects = nameDiff(curDet.SynergyNames(), hypDet.SynergyNames())
	out.GainedAntiSynergies, out.LostAntiSynergies = nameDiff(curDet.AntiSynergyNames(), hypDet.AntiSynergyNames())
	out.GainedSecretCombos, out.LostSecretCombos = nameDiff(curDet.SecretComboNames(), hypDet.SecretComboNames())

	threshold := cat.Rules.PassThreshold
	out.CrossesPassThreshold = hyp.FinalScore >= threshold && cur.FinalScore < threshold
	return out, nil
}

// Simulate runs SimulateSwap against the state's selection, refusing
// additions the player could not actually make.
func (s State) Simulate(cat *catalog.Catalog, swap Swap) (SwapOutcome, error) {
	mode, err := cat.Mode(s.Mode)
	if err != nil {
		return SwapOutcome{}, err
	}
	if swap.AddID != 0 && swap.AddID != swap.RemoveID {
		if err := canAdd(cat, s, mode, swap.AddID); err != nil {
			return SwapOutcome{}, err
		}
	}
	return SimulateSwap(cat, s.Selected, swap, mode.BudgetLimit)
}

// nameDiff returns names only in after (gained) and only in before (lost),
// keeping the input order.
func nameDiff(before, after []string) (gained, lost []string) {
	gained, lost = []string{}, []string{}
	for _, n := range after {
		if !slices.Contains(before, n) {
			gained = append(gained, n)
		}
	}
	for _, n := range before {
		if !slices.Contains(after, n) {
			lost = append(lost, n)
		}
	}
	return gained, lost
}
