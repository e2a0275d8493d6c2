package ppom

import (
	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
)

// Modifier is one option's contribution to the total price.
type Modifier struct {
	GroupID    uint    `json:"group_id"`
	GroupName  string  `json:"group_name"`
	OptionID   string  `json:"option_id"`
	OptionName string  `json:"option_name"`
	Amount     float64 `json:"amount"`
}

// PriceCalculation is the result handed to the cart/order layer.
type PriceCalculation struct {
	BasePrice   float64                  `json:"base_price"`
	Modifiers   []Modifier               `json:"modifiers"`
	TotalPrice  float64                  `json:"total_price"`
	Combination *model.OptionCombination `json:"combination,omitempty"`
}

// CalculatePrice sums the selected options' price modifiers on top of the
// base price. Percentage modifiers are computed from the base price only,
// never from a running total, so selection order cannot change the result.
// Selections referencing unknown options contribute nothing: the live UI
// may hold stale references mid-edit, and that must not fail the quote.
// The total is clamped at zero.
func CalculatePrice(basePrice float64, groups []model.OptionGroup, selections Selections) PriceCalculation {
	result := PriceCalculation{
		BasePrice:  basePrice,
		Modifiers:  []Modifier{},
		TotalPrice: basePrice,
	}

	for _, group := range groups {
		selection, ok := selections[group.ID]
		if !ok || len(group.Options) == 0 {
			continue
		}

		for _, optionID := range selection.Values() {
			option, found := findOption(group, optionID)
			if !found {
				continue
			}

			amount := modifierAmount(basePrice, option)
			if amount == 0 {
				continue
			}

			result.Modifiers = append(result.Modifiers, Modifier{
				GroupID:    group.ID,
				GroupName:  group.Name,
				OptionID:   optionID,
				OptionName: option.Name,
				Amount:     amount,
			})
			result.TotalPrice += amount
		}
	}

	if result.TotalPrice < 0 {
		result.TotalPrice = 0
	}
	return result
}

func modifierAmount(basePrice float64, option *model.Option) float64 {
	if option.PriceModifierType == model.ModifierPercentage {
		return basePrice * option.PriceModifier / 100
	}
	return option.PriceModifier
}

func findOption(group model.OptionGroup, optionID string) (*model.Option, bool) {
	for i := range group.Options {
		if formatID(group.Options[i].ID) == optionID {
			return &group.Options[i], true
		}
	}
	return nil, false
}
