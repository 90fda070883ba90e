package engine

import (
	"testing"

	"github.com/DoyleJ11/front-office-draft/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_CompletePackage(t *testing.T) {
	cat := catalog.Reference()

	d := Detect(cat, NewIDSet(1, 6, 9))

	assert.Equal(t, []string{"Tech Stack + Data Scientist"}, d.SynergyNames())
	assert.Equal(t, []string{"The Complete Package"}, d.SecretComboNames())
	assert.Empty(t, d.AntiSynergies)

	r := Score(cat, NewIDSet(1, 6, 9), d)
	assert.Equal(t, 3.5, r.BaseImpact)
	assert.Equal(t, 1.5, r.SynergyBonus)
	assert.Equal(t, 2.5, r.SecretComboBonus)
	assert.Zero(t, r.AntiSynergyPenalty)
	assert.Equal(t, 7.5, r.FinalScore)
}

func TestDetect_Triggers(t *testing.T) {
	cat := catalog.Reference()

	cases := []struct {
		name      string
		ids       IDSet
		synergies []string
		antis     []string
		secrets   []string
	}{
		{
			name:      "empty selection",
			ids:       NewIDSet(),
			synergies: []string{},
			antis:     []string{},
			secrets:   []string{},
		},
		{
			name:      "hire threshold needs the anchor",
			ids:       NewIDSet(2, 3, 4, 10),
			synergies: []string{},
			antis:     []string{},
			secrets:   []string{"Moneyball"},
		},
		{
			name:      "anchor counts toward its own hire threshold",
			ids:       NewIDSet(2, 3, 9, 10),
			synergies: []string{"Culture Carries the Room"},
			antis:     []string{},
			secrets:   []string{},
		},
		{
			name:      "three hires with the anchor is not enough",
			ids:       NewIDSet(3, 9, 10, 6),
			synergies: []string{},
			antis:     []string{},
			secrets:   []string{},
		},
		{
			name:      "tag anti-synergy counts items, not tags",
			ids:       NewIDSet(1, 4, 5, 10),
			synergies: []string{"ML Engineer + Tech Stack"},
			antis:     []string{"Too Many Cooks"},
			secrets:   []string{},
		},
		{
			name:      "effects overlap on shared items",
			ids:       NewIDSet(2, 7, 8, 10, 4),
			synergies: []string{"Wearables + Sports Science", "Live Quant Scouting"},
			antis:     []string{"Sensor Overload"},
			secrets:   []string{"Iron Roster"},
		},
		{
			name:      "id-list anti-synergy",
			ids:       NewIDSet(3, 5),
			synergies: []string{},
			antis:     []string{"Old School vs New School"},
			secrets:   []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Detect(cat, tc.ids)
			assert.Equal(t, tc.synergies, d.SynergyNames())
			assert.Equal(t, tc.antis, d.AntiSynergyNames())
			assert.Equal(t, tc.secrets, d.SecretComboNames())
		})
	}
}

func TestDetect_OrderIndependentAndIdempotent(t *testing.T) {
	cat := catalog.Reference()

	forward := NewIDSet()
	for _, id := range []int{1, 2, 4, 6, 7, 8, 10} {
		forward = forward.With(id)
	}
	backward := NewIDSet()
	for _, id := range []int{10, 8, 7, 6, 4, 2, 1} {
		backward = backward.With(id)
	}

	first := Measure(cat, forward)
	require.Equal(t, first, Measure(cat, backward))
	require.Equal(t, first, Measure(cat, forward))
}

func TestScore_FinalIsSumOfTerms(t *testing.T) {
	cat := catalog.Reference()

	// every subset of the catalog
	for mask := 0; mask < 1<<len(cat.Items); mask++ {
		ids := NewIDSet()
		for i, it := range cat.Items {
			if mask&(1<<i) != 0 {
				ids = ids.With(it.ID)
			}
		}
		r := Measure(cat, ids)
		require.Equal(t, r.BaseImpact+r.SynergyBonus+r.SecretComboBonus+r.AntiSynergyPenalty, r.FinalScore)
		require.LessOrEqual(t, r.AntiSynergyPenalty, 0.0)
	}
}

func TestScore_CanGoNegative(t *testing.T) {
	cat := &catalog.Catalog{
		Items: []catalog.Item{
			{ID: 1, Name: "a", Cost: 1, Impact: 0.1, Category: catalog.CategoryHire},
			{ID: 2, Name: "b", Cost: 1, Impact: 0.1, Category: catalog.CategoryTool},
		},
		AntiSynergies: []catalog.AntiSynergy{
			{Name: "clash", Penalty: -5, Trigger: catalog.AllOf{IDs: []int{1, 2}}},
		},
		Modes:       []catalog.ChallengeMode{{Name: "m", BudgetLimit: 5}},
		DefaultMode: "m",
	}
	require.NoError(t, cat.Validate())

	r := Measure(cat, NewIDSet(1, 2))
	assert.InDelta(t, -4.8, r.FinalScore, 1e-9)
}
