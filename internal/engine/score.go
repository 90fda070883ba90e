package engine

import "github.com/DoyleJ11/front-office-draft/internal/catalog"

// Result is the score breakdown for one selection. It is derived data:
// any change to the selection makes it stale.
type Result struct {
	BaseImpact         float64
	SynergyBonus       float64
	SecretComboBonus   float64
	AntiSynergyPenalty float64 // <= 0
	FinalScore         float64

	ActiveSynergies     []catalog.Synergy
	ActiveAntiSynergies []catalog.AntiSynergy
	ActiveSecretCombos  []catalog.SecretCombo
}

// Score combines base impact with the detected effects. The final score is
// the plain sum of the four terms; nothing is clamped or rounded.
func Score(cat *catalog.Catalog, ids IDSet, d Detection) Result {
	r := Result{
		ActiveSynergies:     d.Synergies,
		ActiveAntiSynergies: d.AntiSynergies,
		ActiveSecretCombos:  d.SecretCombos,
	}
	for _, it := range selectedItems(cat, ids) {
		r.BaseImpact += it.Impact
	}
	for _, s := range d.Synergies {
		r.SynergyBonus += s.Bonus
	}
	for _, sc := range d.SecretCombos {
		r.SecretComboBonus += sc.Bonus
	}
	for _, a := range d.AntiSynergies {
		r.AntiSynergyPenalty += a.Penalty
	}
	r.FinalScore = r.BaseImpact + r.SynergyBonus + r.SecretComboBonus + r.AntiSynergyPenalty
	return r
}

// Measure runs Detect then Score.
func Measure(cat *catalog.Catalog, ids IDSet) Result {
	return Score(cat, ids, Detect(cat, ids))
}
