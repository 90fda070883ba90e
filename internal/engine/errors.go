package engine

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownItem = errors.New("unknown item")
var ErrItemHidden = errors.New("item hidden by challenge mode")
var ErrAlreadySelected = errors.New("item already selected")
var ErrNotSelected = errors.New("item not selected")
var ErrClaimedByRival = errors.New("item claimed by rival")
var ErrBudgetExceeded = errors.New("budget exceeded")
var ErrModeLocked = errors.New("mode can only change on an empty selection")
var ErrUnsupportedCommand = errors.New("unsupported command")
var ErrEmptySelection = errors.New("empty selection")

var ErrInsufficientHires = errors.New("insufficient hires")
var ErrInsufficientTools = errors.New("insufficient tools")
var ErrInsufficientItems = errors.New("insufficient items")
var ErrWrongItemCount = errors.New("wrong item count")

// BudgetError is returned when an addition would push the cost past the
// active limit. The selection it was checked against is unchanged.
type BudgetError struct {
	Cost      float64 // cost the selection would have had
	Limit     float64
	Shortfall float64
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("budget exceeded by %.2f (cost %.2f, limit %.2f)", e.Shortfall, e.Cost, e.Limit)
}

func (e *BudgetError) Unwrap() error { return ErrBudgetExceeded }

// RequirementError reports every requirement the build misses as one
// failure. Err combines the matching ErrInsufficient*/ErrWrongItemCount
// sentinels so errors.Is works for each of them.
type RequirementError struct {
	Message string // catalog failure message, shown verbatim
	Hires   int
	Tools   int
	Total   int
	Want    int // exact or minimum total, for item-count failures
	Err     error
}

func (e *RequirementError) Error() string {
	var missing []string
	switch {
	case errors.Is(e.Err, ErrWrongItemCount):
		return fmt.Sprintf("wrong item count: have %d, need exactly %d", e.Total, e.Want)
	case errors.Is(e.Err, ErrInsufficientItems):
		return fmt.Sprintf("insufficient items: have %d, need %d", e.Total, e.Want)
	}
	if errors.Is(e.Err, ErrInsufficientHires) {
		missing = append(missing, "hires")
	}
	if errors.Is(e.Err, ErrInsufficientTools) {
		missing = append(missing, "tools")
	}
	return "insufficient " + strings.Join(missing, " and ")
}

func (e *RequirementError) Unwrap() error { return e.Err }
