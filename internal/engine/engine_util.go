package engine

import (
	"fmt"

	"github.com/DoyleJ11/front-office-draft/internal/catalog"
)

// budgetTolerance absorbs float noise from summing decimal costs.
const budgetTolerance = 1e-9

func NewEmptyState(mode string, rivalEnabled bool) State {
	return State{
		Mode:         mode,
		Selected:     IDSet{},
		Rival:        IDSet{},
		RivalEnabled: rivalEnabled,
	}
}

// costOf sums costs in catalog order so the total never depends on the
// order items were picked in.
func costOf(cat *catalog.Catalog, ids IDSet) float64 {
	total := 0.0
	for _, it := range cat.Items {
		if ids.Has(it.ID) {
			total += it.Cost
		}
	}
	return total
}

func exceeds(cost, limit float64) bool {
	return cost > limit+budgetTolerance
}

// selectedItems returns the catalog items in ids, in declaration order.
func selectedItems(cat *catalog.Catalog, ids IDSet) []catalog.Item {
	out := make([]catalog.Item, 0, len(ids))
	for _, it := range cat.Items {
		if ids.Has(it.ID) {
			out = append(out, it)
		}
	}
	return out
}

// checkKnown rejects a selection holding ids the catalog does not define.
func checkKnown(cat *catalog.Catalog, ids IDSet) error {
	for _, id := range ids.Sorted() {
		if _, ok := cat.Item(id); !ok {
			return fmt.Errorf("%w: %d", ErrUnknownItem, id)
		}
	}
	return nil
}
