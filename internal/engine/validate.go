package engine

import (
	"github.com/DoyleJ11/front-office-draft/internal/catalog"
	"go.uber.org/multierr"
)

// Validate checks the role mix of a selection. An exact-size mode is
// checked first and on its own; otherwise every hire/tool shortfall is
// folded into one *RequirementError. The minimum total is reported only
// when the category counts pass. Ids the catalog does not know are not
// counted.
func Validate(cat *catalog.Catalog, ids IDSet, mode catalog.ChallengeMode) error {
	req := cat.Requirements
	items := selectedItems(cat, ids)
	rerr := &RequirementError{Message: req.Message, Total: len(items)}
	for _, it := range items {
		switch it.Category {
		case catalog.CategoryHire:
			rerr.Hires++
		case catalog.CategoryTool:
			rerr.Tools++
		}
	}

	if mode.ExactItems > 0 && rerr.Total != mode.ExactItems {
		rerr.Want = mode.ExactItems
		rerr.Err = ErrWrongItemCount
		return rerr
	}

	var errs error
	if rerr.Hires < req.MinPeople {
		errs = multierr.Append(errs, ErrInsufficientHires)
	}
	if rerr.Tools < req.MinTools {
		errs = multierr.Append(errs, ErrInsufficientTools)
	}
	if errs == nil && rerr.Total < req.MinTotal {
		rerr.Want = req.MinTotal
		errs = ErrInsufficientItems
	}
	if errs != nil {
		rerr.Err = errs
		return rerr
	}
	return nil
}
