package ppom

import (
	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
)

// FindMatchingCombination returns the first active, available combination
// whose option tuple exactly equals the normalized selections: same group
// keys, same sorted value list per group. Rows whose combination string
// fails to parse are skipped; malformed persisted data must not break the
// selection flow. Returns nil when nothing matches.
func FindMatchingCombination(combinations []model.OptionCombination, selections Selections) *model.OptionCombination {
	want := selections.normalized()
	if len(want) == 0 {
		return nil
	}

	for i := range combinations {
		c := &combinations[i]
		if !c.IsActive || !c.IsAvailable {
			continue
		}
		got, ok := decodeCombination(c.Combination)
		if !ok {
			continue
		}
		if combinationEqual(want, got) {
			return c
		}
	}
	return nil
}

func combinationEqual(a, b map[uint][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for groupID, av := range a {
		bv, ok := b[groupID]
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
	}
	return true
}

// EffectivePrice resolves the final quote for a selection set. A matched
// combination overrides ad-hoc calculation entirely: its own base price and
// calculated price are returned with no modifier breakdown, plus the
// combination itself for downstream stock checks. Without a match the
// result falls back to CalculatePrice.
func EffectivePrice(basePrice float64, groups []model.OptionGroup, selections Selections, combinations []model.OptionCombination) PriceCalculation {
	if matched := FindMatchingCombination(combinations, selections); matched != nil {
		return PriceCalculation{
			BasePrice:   matched.BasePrice,
			Modifiers:   []Modifier{},
			TotalPrice:  matched.CalculatedPrice,
			Combination: matched,
		}
	}
	return CalculatePrice(basePrice, groups, selections)
}
