package engine

import "github.com/DoyleJ11/front-office-draft/internal/catalog"

// Detection lists the effects active for one selection, each in catalog
// declaration order.
type Detection struct {
	Synergies     []catalog.Synergy
	AntiSynergies []catalog.AntiSynergy
	SecretCombos  []catalog.SecretCombo
}

// Detect finds every synergy, anti-synergy and secret combo the selection
// triggers. Effects are independent: one item may feed several of them.
func Detect(cat *catalog.Catalog, ids IDSet) Detection {
	items := selectedItems(cat, ids)
	hires := 0
	for _, it := range items {
		if it.Category == catalog.CategoryHire {
			hires++
		}
	}

	d := Detection{
		Synergies:     []catalog.Synergy{},
		AntiSynergies: []catalog.AntiSynergy{},
		SecretCombos:  []catalog.SecretCombo{},
	}

	for _, s := range cat.Synergies {
		switch t := s.Trigger.(type) {
		case catalog.AllOf:
			if ids.HasAll(t.IDs) {
				d.Synergies = append(d.Synergies, s)
			}
		case catalog.HireThreshold:
			if ids.Has(t.Anchor) && hires >= t.MinHires {
				d.Synergies = append(d.Synergies, s)
			}
		}
	}

	for _, a := range cat.AntiSynergies {
		switch t := a.Trigger.(type) {
		case catalog.AllOf:
			if ids.HasAll(t.IDs) {
				d.AntiSynergies = append(d.AntiSynergies, a)
			}
		case catalog.TagCount:
			n := 0
			for _, it := range items {
				if it.HasAnyTag(t.Tags) {
					n++
				}
			}
			if n >= t.Min {
				d.AntiSynergies = append(d.AntiSynergies, a)
			}
		}
	}

	for _, sc := range cat.SecretCombos {
		if ids.HasAll(sc.IDs) {
			d.SecretCombos = append(d.SecretCombos, sc)
		}
	}
	return d
}

func (d Detection) SynergyNames() []string {
	out := make([]string, len(d.Synergies))
	for i, s := range d.Synergies {
		out[i] = s.Name
	}
	return out
}

func (d Detection) AntiSynergyNames() []string {
	out := make([]string, len(d.AntiSynergies))
	for i, a := range d.AntiSynergies {
		out[i] = a.Name
	}
	return out
}

func (d Detection) SecretComboNames() []string {
	out := make([]string, len(d.SecretCombos))
	for i, sc := range d.SecretCombos {
		out[i] = sc.Name
	}
	return out
}
