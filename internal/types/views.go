package types

import (
	"errors"

	"github.com/DoyleJ11/front-office-draft/internal/catalog"
	"github.com/DoyleJ11/front-office-draft/internal/engine"
)

type ItemView struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Cost        float64  `json:"cost"`
	Impact      float64  `json:"impact"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

type ModeView struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	BudgetLimit float64 `json:"budget_limit"`
	ExactItems  int     `json:"exact_items,omitempty"`
}

type RequirementsView struct {
	MinPeople int    `json:"min_people"`
	MinTools  int    `json:"min_tools"`
	MinTotal  int    `json:"min_total"`
	Message   string `json:"message"`
}

// CatalogView is what a player may see before drafting. Synergies are
// listed by name and reason; secret combos stay secret.
type CatalogView struct {
	Mode          ModeView         `json:"mode"`
	Items         []ItemView       `json:"items"`
	Synergies     []EffectView     `json:"synergies"`
	AntiSynergies []EffectView     `json:"anti_synergies"`
	Requirements  RequirementsView `json:"requirements"`
	PassThreshold float64          `json:"pass_threshold"`
}

type EffectView struct {
	Name   string  `json:"name"`
	Reason string  `json:"reason"`
	Value  float64 `json:"value"`
}

type StateView struct {
	Mode         string  `json:"mode"`
	Selected     []int   `json:"selected"`
	Rival        []int   `json:"rival"`
	Cost         float64 `json:"cost"`
	RivalEnabled bool    `json:"rival_enabled"`
}

type EventView struct {
	Type   string `json:"type"`
	ItemID int    `json:"item_id,omitempty"`
	Mode   string `json:"mode,omitempty"`
}

type ResultView struct {
	BaseImpact          float64      `json:"base_impact"`
	SynergyBonus        float64      `json:"synergy_bonus"`
	SecretComboBonus    float64      `json:"secret_combo_bonus"`
	AntiSynergyPenalty  float64      `json:"anti_synergy_penalty"`
	FinalScore          float64      `json:"final_score"`
	ActiveSynergies     []EffectView `json:"active_synergies"`
	ActiveAntiSynergies []EffectView `json:"active_anti_synergies"`
	ActiveSecretCombos  []EffectView `json:"active_secret_combos"`
}

type EvaluationView struct {
	Mode      string     `json:"mode"`
	Cost      float64    `json:"cost"`
	Result    ResultView `json:"result"`
	Passed    bool       `json:"passed"`
	ClaimCode string     `json:"claim_code,omitempty"`
	Hints     []string   `json:"hints,omitempty"`
}

type DiscoveryView struct {
	NewCombos    []string `json:"new_combos"`
	NewBest      bool     `json:"new_best"`
	PreviousBest *float64 `json:"previous_best,omitempty"`
}

type SwapView struct {
	Status               string   `json:"status"`
	Cost                 float64  `json:"cost"`
	Shortfall            float64  `json:"shortfall,omitempty"`
	CurrentScore         float64  `json:"current_score"`
	HypotheticalScore    float64  `json:"hypothetical_score"`
	Delta                float64  `json:"delta"`
	GainedEffects        []string `json:"gained_effects"`
	LostEffects          []string `json:"lost_effects"`
	GainedAntiSynergies  []string `json:"gained_anti_synergies"`
	LostAntiSynergies    []string `json:"lost_anti_synergies"`
	GainedSecretCombos   []string `json:"gained_secret_combos"`
	LostSecretCombos     []string `json:"lost_secret_combos"`
	CrossesPassThreshold bool     `json:"crosses_pass_threshold"`
}

type ErrorView struct {
	Code      string  `json:"code"`
	Message   string  `json:"message"`
	Shortfall float64 `json:"shortfall,omitempty"`
	Hint      string  `json:"hint,omitempty"`
}

func NewItemView(it catalog.Item) ItemView {
	tags := it.Tags
	if tags == nil {
		tags = []string{}
	}
	return ItemView{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Cost:        it.Cost,
		Impact:      it.Impact,
		Category:    string(it.Category),
		Tags:        tags,
	}
}

func NewModeView(m catalog.ChallengeMode) ModeView {
	return ModeView{
		Name:        m.Name,
		Description: m.Description,
		BudgetLimit: m.BudgetLimit,
		ExactItems:  m.ExactItems,
	}
}

func NewCatalogView(cat *catalog.Catalog, mode catalog.ChallengeMode) CatalogView {
	v := CatalogView{
		Mode:          NewModeView(mode),
		Items:         []ItemView{},
		Synergies:     make([]EffectView, 0, len(cat.Synergies)),
		AntiSynergies: make([]EffectView, 0, len(cat.AntiSynergies)),
		Requirements: RequirementsView{
			MinPeople: cat.Requirements.MinPeople,
			MinTools:  cat.Requirements.MinTools,
			MinTotal:  cat.Requirements.MinTotal,
			Message:   cat.Requirements.Message,
		},
		PassThreshold: cat.Rules.PassThreshold,
	}
	for _, it := range cat.Visible(mode) {
		v.Items = append(v.Items, NewItemView(it))
	}
	for _, s := range cat.Synergies {
		v.Synergies = append(v.Synergies, EffectView{Name: s.Name, Reason: s.Reason, Value: s.Bonus})
	}
	for _, a := range cat.AntiSynergies {
		v.AntiSynergies = append(v.AntiSynergies, EffectView{Name: a.Name, Reason: a.Reason, Value: a.Penalty})
	}
	return v
}

func NewStateView(s engine.State) *StateView {
	return &StateView{
		Mode:         s.Mode,
		Selected:     s.Selected.Sorted(),
		Rival:        s.Rival.Sorted(),
		Cost:         s.Cost,
		RivalEnabled: s.RivalEnabled,
	}
}

func NewEventViews(events []engine.Event) []EventView {
	out := make([]EventView, 0, len(events))
	for _, e := range events {
		out = append(out, EventView{Type: string(e.Type), ItemID: e.ItemID, Mode: e.Mode})
	}
	return out
}

func NewResultView(r engine.Result) ResultView {
	v := ResultView{
		BaseImpact:          r.BaseImpact,
		SynergyBonus:        r.SynergyBonus,
		SecretComboBonus:    r.SecretComboBonus,
		AntiSynergyPenalty:  r.AntiSynergyPenalty,
		FinalScore:          r.FinalScore,
		ActiveSynergies:     make([]EffectView, 0, len(r.ActiveSynergies)),
		ActiveAntiSynergies: make([]EffectView, 0, len(r.ActiveAntiSynergies)),
		ActiveSecretCombos:  make([]EffectView, 0, len(r.ActiveSecretCombos)),
	}
	for _, s := range r.ActiveSynergies {
		v.ActiveSynergies = append(v.ActiveSynergies, EffectView{Name: s.Name, Reason: s.Reason, Value: s.Bonus})
	}
	for _, a := range r.ActiveAntiSynergies {
		v.ActiveAntiSynergies = append(v.ActiveAntiSynergies, EffectView{Name: a.Name, Reason: a.Reason, Value: a.Penalty})
	}
	for _, c := range r.ActiveSecretCombos {
		v.ActiveSecretCombos = append(v.ActiveSecretCombos, EffectView{Name: c.Name, Reason: c.Message, Value: c.Bonus})
	}
	return v
}

func NewEvaluationView(ev engine.Evaluation) *EvaluationView {
	return &EvaluationView{
		Mode:      ev.Mode,
		Cost:      ev.Cost,
		Result:    NewResultView(ev.Result),
		Passed:    ev.Passed,
		ClaimCode: ev.ClaimCode,
		Hints:     ev.Hints,
	}
}

func NewDiscoveryView(d engine.Discovery) *DiscoveryView {
	v := &DiscoveryView{NewCombos: d.NewCombos, NewBest: d.NewBest}
	if v.NewCombos == nil {
		v.NewCombos = []string{}
	}
	if d.HadBest {
		prev := d.PreviousBest
		v.PreviousBest = &prev
	}
	return v
}

func NewSwapView(o engine.SwapOutcome) *SwapView {
	return &SwapView{
		Status:               string(o.Status),
		Cost:                 o.Cost,
		Shortfall:            o.Shortfall,
		CurrentScore:         o.CurrentScore,
		HypotheticalScore:    o.HypotheticalScore,
		Delta:                o.Delta,
		GainedEffects:        nonNil(o.GainedEffects),
		LostEffects:          nonNil(o.LostEffects),
		GainedAntiSynergies:  nonNil(o.GainedAntiSynergies),
		LostAntiSynergies:    nonNil(o.LostAntiSynergies),
		GainedSecretCombos:   nonNil(o.GainedSecretCombos),
		LostSecretCombos:     nonNil(o.LostSecretCombos),
		CrossesPassThreshold: o.CrossesPassThreshold,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

var errorCodes = []struct {
	err  error
	code string
}{
	{engine.ErrUnknownItem, "unknown_item"},
	{engine.ErrItemHidden, "item_hidden"},
	{engine.ErrAlreadySelected, "already_selected"},
	{engine.ErrNotSelected, "not_selected"},
	{engine.ErrClaimedByRival, "claimed_by_rival"},
	{engine.ErrBudgetExceeded, "budget_exceeded"},
	{engine.ErrModeLocked, "mode_locked"},
	{engine.ErrUnsupportedCommand, "unsupported_command"},
	{engine.ErrEmptySelection, "empty_selection"},
	{engine.ErrWrongItemCount, "requirements_not_met"},
	{engine.ErrInsufficientHires, "requirements_not_met"},
	{engine.ErrInsufficientTools, "requirements_not_met"},
	{engine.ErrInsufficientItems, "requirements_not_met"},
	{catalog.ErrUnknownMode, "unknown_mode"},
}

// ErrorCode names err for clients. Errors the engine does not define map to
// "internal".
func ErrorCode(err error) string {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "internal"
}

func NewErrorView(err error) *ErrorView {
	v := &ErrorView{Code: ErrorCode(err), Message: err.Error()}
	var be *engine.BudgetError
	if errors.As(err, &be) {
		v.Shortfall = be.Shortfall
	}
	var re *engine.RequirementError
	if errors.As(err, &re) {
		v.Hint = re.Message
	}
	return v
}
