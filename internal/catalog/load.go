package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type fileItem struct {
	ID          int      `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Cost        float64  `yaml:"cost"`
	Impact      float64  `yaml:"impact"`
	Category    Category `yaml:"category"`
	Tags        []string `yaml:"tags"`
}

// fileTrigger carries every trigger variant's fields; exactly one variant
// may be populated.
type fileTrigger struct {
	IDs      []int    `yaml:"ids"`
	Anchor   int      `yaml:"anchor"`
	MinHires int      `yaml:"min_hires"`
	Tags     []string `yaml:"tags"`
	MinCount int      `yaml:"min_count"`
}

type fileSynergy struct {
	Name        string  `yaml:"name"`
	Reason      string  `yaml:"reason"`
	Bonus       float64 `yaml:"bonus"`
	fileTrigger `yaml:",inline"`
}

type fileAntiSynergy struct {
	Name        string  `yaml:"name"`
	Reason      string  `yaml:"reason"`
	Penalty     float64 `yaml:"penalty"`
	fileTrigger `yaml:",inline"`
}

type fileSecretCombo struct {
	Name    string  `yaml:"name"`
	Message string  `yaml:"message"`
	Bonus   float64 `yaml:"bonus"`
	IDs     []int   `yaml:"ids"`
}

type fileRequirements struct {
	MinPeople int    `yaml:"min_people"`
	MinTools  int    `yaml:"min_tools"`
	MinTotal  int    `yaml:"min_total"`
	Message   string `yaml:"message"`
}

type fileMode struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	BudgetLimit float64  `yaml:"budget_limit"`
	HiddenTags  []string `yaml:"hidden_tags"`
	ExactItems  int      `yaml:"exact_items"`
}

type fileRules struct {
	PassThreshold         float64  `yaml:"pass_threshold"`
	ClaimCode             string   `yaml:"claim_code"`
	RivalSecondPickChance *float64 `yaml:"rival_second_pick_chance"`
	MaxHints              int      `yaml:"max_hints"`
	ImpactFloor           float64  `yaml:"impact_floor"`
	UnspentFraction       float64  `yaml:"unspent_fraction"`
	NearMissMargin        float64  `yaml:"near_miss_margin"`
	CollectorTag          string   `yaml:"collector_tag"`
	InterpreterTags       []string `yaml:"interpreter_tags"`
}

type file struct {
	Items         []fileItem        `yaml:"items"`
	Synergies     []fileSynergy     `yaml:"synergies"`
	AntiSynergies []fileAntiSynergy `yaml:"anti_synergies"`
	SecretCombos  []fileSecretCombo `yaml:"secret_combos"`
	Requirements  fileRequirements  `yaml:"requirements"`
	Modes         []fileMode        `yaml:"modes"`
	DefaultMode   string            `yaml:"default_mode"`
	Rules         fileRules         `yaml:"rules"`
}

func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog and validates it.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog yaml: %w", err)
	}

	c := &Catalog{
		Requirements: Requirements(f.Requirements),
		DefaultMode:  f.DefaultMode,
	}
	for _, it := range f.Items {
		c.Items = append(c.Items, Item(it))
	}

	for _, s := range f.Synergies {
		t, err := s.synergyTrigger()
		if err != nil {
			return nil, fmt.Errorf("%w: synergy %q: %w", ErrInvalidCatalog, s.Name, err)
		}
		c.Synergies = append(c.Synergies, Synergy{Name: s.Name, Reason: s.Reason, Bonus: s.Bonus, Trigger: t})
	}
	for _, a := range f.AntiSynergies {
		t, err := a.antiTrigger()
		if err != nil {
			return nil, fmt.Errorf("%w: anti-synergy %q: %w", ErrInvalidCatalog, a.Name, err)
		}
		c.AntiSynergies = append(c.AntiSynergies, AntiSynergy{Name: a.Name, Reason: a.Reason, Penalty: a.Penalty, Trigger: t})
	}
	for _, sc := range f.SecretCombos {
		c.SecretCombos = append(c.SecretCombos, SecretCombo(sc))
	}
	for _, m := range f.Modes {
		c.Modes = append(c.Modes, ChallengeMode(m))
	}
	if c.DefaultMode == "" && len(c.Modes) > 0 {
		c.DefaultMode = c.Modes[0].Name
	}

	c.Rules = Rules{
		PassThreshold:         f.Rules.PassThreshold,
		ClaimCode:             f.Rules.ClaimCode,
		RivalSecondPickChance: 0.30,
		MaxHints:              f.Rules.MaxHints,
		ImpactFloor:           f.Rules.ImpactFloor,
		UnspentFraction:       f.Rules.UnspentFraction,
		NearMissMargin:        f.Rules.NearMissMargin,
		CollectorTag:          f.Rules.CollectorTag,
		InterpreterTags:       f.Rules.InterpreterTags,
	}
	if f.Rules.RivalSecondPickChance != nil {
		c.Rules.RivalSecondPickChance = *f.Rules.RivalSecondPickChance
	}
	if c.Rules.MaxHints <= 0 {
		c.Rules.MaxHints = 2
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (t fileTrigger) synergyTrigger() (SynergyTrigger, error) {
	switch {
	case len(t.Tags) > 0 || t.MinCount != 0:
		return nil, fmt.Errorf("tag triggers are only valid for anti-synergies")
	case len(t.IDs) > 0 && t.Anchor != 0:
		return nil, fmt.Errorf("ids and anchor are mutually exclusive")
	case len(t.IDs) > 0:
		return AllOf{IDs: t.IDs}, nil
	case t.Anchor != 0:
		return HireThreshold{Anchor: t.Anchor, MinHires: t.MinHires}, nil
	}
	return nil, fmt.Errorf("one of ids or anchor is required")
}

func (t fileTrigger) antiTrigger() (AntiTrigger, error) {
	switch {
	case t.Anchor != 0 || t.MinHires != 0:
		return nil, fmt.Errorf("anchor triggers are only valid for synergies")
	case len(t.IDs) > 0 && len(t.Tags) > 0:
		return nil, fmt.Errorf("ids and tags are mutually exclusive")
	case len(t.IDs) > 0:
		return AllOf{IDs: t.IDs}, nil
	case len(t.Tags) > 0:
		return TagCount{Tags: t.Tags, Min: t.MinCount}, nil
	}
	return nil, fmt.Errorf("one of ids or tags is required")
}
