package catalog

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

// Validate checks the catalog's internal consistency and builds the id
// index. It must run before the catalog is shared between goroutines.
func (c *Catalog) Validate() error {
	var errs error
	bad := func(format string, args ...any) {
		errs = multierr.Append(errs, fmt.Errorf(format, args...))
	}
	// NaN slips past every ordered comparison below, so check it first.
	finite := func(what string, v float64) bool {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			bad("%s must be a finite number, got %v", what, v)
			return false
		}
		return true
	}

	seen := make(map[int]bool, len(c.Items))
	for _, it := range c.Items {
		if it.ID <= 0 {
			bad("item %q: id must be positive, got %d", it.Name, it.ID)
		}
		if seen[it.ID] {
			bad("item %q: duplicate id %d", it.Name, it.ID)
		}
		seen[it.ID] = true
		finite(fmt.Sprintf("item %d: impact", it.ID), it.Impact)
		if finite(fmt.Sprintf("item %d: cost", it.ID), it.Cost) && it.Cost < 0 {
			bad("item %d: negative cost %v", it.ID, it.Cost)
		}
		if it.Category != CategoryHire && it.Category != CategoryTool {
			bad("item %d: unknown category %q", it.ID, it.Category)
		}
	}

	known := func(rule string, ids []int) {
		if len(ids) == 0 {
			bad("%s: empty id list", rule)
		}
		for _, id := range ids {
			if !seen[id] {
				bad("%s: unknown item id %d", rule, id)
			}
		}
	}

	names := map[string]bool{}
	unique := func(kind, name string) {
		key := kind + "/" + name
		if name == "" {
			bad("%s with empty name", kind)
		}
		if names[key] {
			bad("%s %q declared twice", kind, name)
		}
		names[key] = true
	}

	for _, s := range c.Synergies {
		unique("synergy", s.Name)
		if finite(fmt.Sprintf("synergy %q: bonus", s.Name), s.Bonus) && s.Bonus <= 0 {
			bad("synergy %q: bonus must be positive", s.Name)
		}
		switch t := s.Trigger.(type) {
		case AllOf:
			known("synergy "+s.Name, t.IDs)
		case HireThreshold:
			known("synergy "+s.Name, []int{t.Anchor})
			if t.MinHires < 1 {
				bad("synergy %q: min hires must be at least 1", s.Name)
			}
		default:
			bad("synergy %q: missing trigger", s.Name)
		}
	}

	for _, a := range c.AntiSynergies {
		unique("anti-synergy", a.Name)
		if finite(fmt.Sprintf("anti-synergy %q: penalty", a.Name), a.Penalty) && a.Penalty >= 0 {
			bad("anti-synergy %q: penalty must be negative", a.Name)
		}
		switch t := a.Trigger.(type) {
		case AllOf:
			known("anti-synergy "+a.Name, t.IDs)
		case TagCount:
			if len(t.Tags) == 0 {
				bad("anti-synergy %q: empty tag set", a.Name)
			}
			if t.Min < 1 {
				bad("anti-synergy %q: min count must be at least 1", a.Name)
			}
		default:
			bad("anti-synergy %q: missing trigger", a.Name)
		}
	}

	for _, sc := range c.SecretCombos {
		unique("secret combo", sc.Name)
		if finite(fmt.Sprintf("secret combo %q: bonus", sc.Name), sc.Bonus) && sc.Bonus <= 0 {
			bad("secret combo %q: bonus must be positive", sc.Name)
		}
		known("secret combo "+sc.Name, sc.IDs)
	}

	r := c.Requirements
	if r.MinPeople < 0 || r.MinTools < 0 || r.MinTotal < 0 {
		bad("requirements: minimums must not be negative")
	}

	defaultFound := false
	for _, m := range c.Modes {
		unique("mode", m.Name)
		if finite(fmt.Sprintf("mode %q: budget limit", m.Name), m.BudgetLimit) && m.BudgetLimit <= 0 {
			bad("mode %q: budget limit must be positive", m.Name)
		}
		if m.ExactItems < 0 {
			bad("mode %q: exact item count must not be negative", m.Name)
		}
		if m.Name == c.DefaultMode {
			defaultFound = true
		}
	}
	if !defaultFound {
		bad("default mode %q is not declared", c.DefaultMode)
	}

	finite("rules: pass threshold", c.Rules.PassThreshold)
	finite("rules: impact floor", c.Rules.ImpactFloor)
	finite("rules: unspent fraction", c.Rules.UnspentFraction)
	finite("rules: near miss margin", c.Rules.NearMissMargin)
	chance := c.Rules.RivalSecondPickChance
	if finite("rules: rival second pick chance", chance) && (chance < 0 || chance > 1) {
		bad("rules: rival second pick chance must be within [0,1]")
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, errs)
	}
	c.index()
	return nil
}
