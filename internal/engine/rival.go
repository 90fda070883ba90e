package engine

import (
	"cmp"
	"math"
	"slices"

	"github.com/DoyleJ11/front-office-draft/internal/catalog"
)

// Rand is the rival's random source. *rand.Rand from math/rand/v2
// satisfies it; tests script it.
type Rand interface {
	Float64() float64
}

// NextPick chooses the rival's next claim from the items visible under mode
// that nobody has claimed yet. Candidates are ranked by impact per unit of
// cost; with the catalog's second-pick chance the runner-up is taken
// instead. ok is false when the pool is exhausted.
func NextPick(cat *catalog.Catalog, mode catalog.ChallengeMode, claimed IDSet, rng Rand) (catalog.Item, bool) {
	candidates := Candidates(cat, mode, claimed)
	if len(candidates) == 0 {
		return catalog.Item{}, false
	}
	if len(candidates) == 1 {
		return candidates[0], true
	}
	if rng.Float64() < cat.Rules.RivalSecondPickChance {
		return candidates[1], true
	}
	return candidates[0], true
}

// Candidates returns the unclaimed visible items, best efficiency first.
// Ties keep catalog order.
func Candidates(cat *catalog.Catalog, mode catalog.ChallengeMode, claimed IDSet) []catalog.Item {
	var out []catalog.Item
	for _, it := range cat.Visible(mode) {
		if !claimed.Has(it.ID) {
			out = append(out, it)
		}
	}
	slices.SortStableFunc(out, func(a, b catalog.Item) int {
		return cmp.Compare(efficiency(b), efficiency(a))
	})
	return out
}

func efficiency(it catalog.Item) float64 {
	if it.Cost == 0 {
		switch {
		case it.Impact > 0:
			return math.Inf(1)
		case it.Impact < 0:
			return math.Inf(-1)
		}
		return 0
	}
	return it.Impact / it.Cost
}
