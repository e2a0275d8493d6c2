package ppom

import (
	"testing"

	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
)

func TestOptionAvailable(t *testing.T) {
	tests := []struct {
		name   string
		option model.Option
		want   bool
	}{
		{
			name:   "Inactive option is never available",
			option: model.Option{IsActive: false, StockType: model.StockUnlimited, StockQuantity: 100},
			want:   false,
		},
		{
			name:   "Unlimited stock ignores quantity",
			option: model.Option{IsActive: true, StockType: model.StockUnlimited, StockQuantity: 0},
			want:   true,
		},
		{
			name:   "Inherit follows the product stock",
			option: model.Option{IsActive: true, StockType: model.StockInherit, StockQuantity: -5},
			want:   true,
		},
		{
			name:   "Tracked with zero quantity is sold out",
			option: model.Option{IsActive: true, StockType: model.StockTracked, StockQuantity: 0},
			want:   false,
		},
		{
			name:   "Tracked with remaining quantity",
			option: model.Option{IsActive: true, StockType: model.StockTracked, StockQuantity: 3},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OptionAvailable(tt.option))
		})
	}
}

func TestCombinationAvailable(t *testing.T) {
	tests := []struct {
		name  string
		combo model.OptionCombination
		want  bool
	}{
		{
			name:  "Inactive overrides any stock numbers",
			combo: model.OptionCombination{IsActive: false, IsAvailable: true, StockType: model.StockUnlimited, StockQuantity: 999},
			want:  false,
		},
		{
			name:  "Explicitly unavailable",
			combo: model.OptionCombination{IsActive: true, IsAvailable: false, StockType: model.StockUnlimited},
			want:  false,
		},
		{
			name:  "Unlimited with negative quantity still available",
			combo: model.OptionCombination{IsActive: true, IsAvailable: true, StockType: model.StockUnlimited, StockQuantity: -1, ReservedQuantity: 10},
			want:  true,
		},
		{
			name:  "Reserved quantity consumes tracked stock",
			combo: model.OptionCombination{IsActive: true, IsAvailable: true, StockType: model.StockTracked, StockQuantity: 5, ReservedQuantity: 5},
			want:  false,
		},
		{
			name:  "Tracked with headroom",
			combo: model.OptionCombination{IsActive: true, IsAvailable: true, StockType: model.StockTracked, StockQuantity: 5, ReservedQuantity: 4},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CombinationAvailable(tt.combo))
		})
	}
}
