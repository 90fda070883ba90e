package engine

import "github.com/DoyleJ11/front-office-draft/internal/catalog"

type Evaluation struct {
	Mode      string
	Cost      float64
	Result    Result
	Passed    bool
	ClaimCode string   // set only when Passed
	Hints     []string // set only when not Passed
}

// Evaluate is the explicit "evaluate my build" request: an empty or
// under-staffed build is rejected before any scoring happens.
func Evaluate(cat *catalog.Catalog, modeName string, ids IDSet) (Evaluation, error) {
	mode, err := cat.Mode(modeName)
	if err != nil {
		return Evaluation{}, err
	}
	if len(ids) == 0 {
		return Evaluation{}, ErrEmptySelection
	}
	if err := checkKnown(cat, ids); err != nil {
		return Evaluation{}, err
	}
	if err := Validate(cat, ids, mode); err != nil {
		return Evaluation{}, err
	}

	ev := Evaluation{
		Mode:   mode.Name,
		Cost:   costOf(cat, ids),
		Result: Measure(cat, ids),
	}
	ev.Passed = ev.Result.FinalScore >= cat.Rules.PassThreshold
	if ev.Passed {
		ev.ClaimCode = cat.Rules.ClaimCode
	} else {
		ev.Hints = Hints(cat, mode, ids, ev.Result, cat.Rules.MaxHints)
	}
	return ev, nil
}
