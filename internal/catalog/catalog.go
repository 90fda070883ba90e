package catalog

import (
	"errors"
	"fmt"
	"slices"
)

var ErrUnknownMode = errors.New("unknown challenge mode")

type Category string

const (
	CategoryHire Category = "hire"
	CategoryTool Category = "tool"
)

type Item struct {
	ID          int
	Name        string
	Description string
	Cost        float64
	Impact      float64
	Category    Category
	Tags        []string
}

// HasAnyTag reports whether the item carries at least one of tags.
func (it Item) HasAnyTag(tags []string) bool {
	for _, t := range tags {
		if slices.Contains(it.Tags, t) {
			return true
		}
	}
	return false
}

// SynergyTrigger is the condition under which a synergy is active.
// Implemented by AllOf and HireThreshold.
type SynergyTrigger interface{ isSynergyTrigger() }

// AntiTrigger is the condition under which an anti-synergy is active.
// Implemented by AllOf and TagCount.
type AntiTrigger interface{ isAntiTrigger() }

// AllOf is active when every listed id is selected.
type AllOf struct {
	IDs []int
}

func (AllOf) isSynergyTrigger() {}
func (AllOf) isAntiTrigger()    {}

// HireThreshold is active when Anchor is selected and at least MinHires
// hires are selected, the anchor included.
type HireThreshold struct {
	Anchor   int
	MinHires int
}

func (HireThreshold) isSynergyTrigger() {}

// TagCount is active when at least Min selected items carry one of Tags.
type TagCount struct {
	Tags []string
	Min  int
}

func (TagCount) isAntiTrigger() {}

type Synergy struct {
	Name    string
	Reason  string
	Bonus   float64
	Trigger SynergyTrigger
}

type AntiSynergy struct {
	Name    string
	Reason  string
	Penalty float64 // always negative
	Trigger AntiTrigger
}

type SecretCombo struct {
	Name    string
	Message string
	Bonus   float64
	IDs     []int
}

type Requirements struct {
	MinPeople int
	MinTools  int
	MinTotal  int
	Message   string
}

type ChallengeMode struct {
	Name        string
	Description string
	BudgetLimit float64
	HiddenTags  []string
	ExactItems  int // 0 means no exact-size constraint
}

// Hides reports whether the mode makes it unselectable.
func (m ChallengeMode) Hides(it Item) bool {
	return it.HasAnyTag(m.HiddenTags)
}

type Rules struct {
	PassThreshold         float64
	ClaimCode             string
	RivalSecondPickChance float64

	MaxHints        int
	ImpactFloor     float64
	UnspentFraction float64
	NearMissMargin  float64
	CollectorTag    string
	InterpreterTags []string
}

// Catalog is loaded once and never mutated afterwards. Slices keep
// declaration order, which is also the presentation order of every
// engine output.
type Catalog struct {
	Items         []Item
	Synergies     []Synergy
	AntiSynergies []AntiSynergy
	SecretCombos  []SecretCombo
	Requirements  Requirements
	Modes         []ChallengeMode
	DefaultMode   string
	Rules         Rules

	byID map[int]int
}

func (c *Catalog) index() {
	c.byID = make(map[int]int, len(c.Items))
	for i, it := range c.Items {
		c.byID[it.ID] = i
	}
}

func (c *Catalog) Item(id int) (Item, bool) {
	if c.byID == nil {
		// hand-built catalog that skipped Validate; fall back to a scan
		for _, it := range c.Items {
			if it.ID == id {
				return it, true
			}
		}
		return Item{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.Items[i], true
}

func (c *Catalog) Mode(name string) (ChallengeMode, error) {
	if name == "" {
		name = c.DefaultMode
	}
	for _, m := range c.Modes {
		if m.Name == name {
			return m, nil
		}
	}
	return ChallengeMode{}, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// Visible returns the items selectable under mode, in declaration order.
func (c *Catalog) Visible(mode ChallengeMode) []Item {
	out := make([]Item, 0, len(c.Items))
	for _, it := range c.Items {
		if !mode.Hides(it) {
			out = append(out, it)
		}
	}
	return out
}
