package ppom

import (
	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
)

// OptionAvailable reports whether an option can currently be selected.
// Inactive options are never available. Options inheriting product stock or
// marked unlimited are always available regardless of their quantity field.
func OptionAvailable(option model.Option) bool {
	if !option.IsActive {
		return false
	}
	if option.StockType == model.StockUnlimited || option.StockType == model.StockInherit {
		return true
	}
	return option.StockQuantity > 0
}

// CombinationAvailable reports whether a combination can be purchased.
// Reserved quantity counts against tracked stock. These are advisory
// checks for gating checkout; the actual decrement happens at order time.
func CombinationAvailable(c model.OptionCombination) bool {
	if !c.IsActive || !c.IsAvailable {
		return false
	}
	if c.StockType == model.StockUnlimited || c.StockType == model.StockInherit {
		return true
	}
	return c.StockQuantity-c.ReservedQuantity > 0
}
