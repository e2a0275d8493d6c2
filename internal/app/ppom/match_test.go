package ppom

import (
	"testing"

	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regionTierCatalog() []model.OptionGroup {
	return []model.OptionGroup{
		{
			ID:            10,
			Name:          "Region",
			SelectionType: model.SelectionSingle,
			Options: []model.Option{
				{ID: 101, OptionGroupID: 10, Name: "US", IsActive: true},
				{ID: 102, OptionGroupID: 10, Name: "EU", IsActive: true},
			},
		},
		{
			ID:            20,
			Name:          "Tier",
			SelectionType: model.SelectionSingle,
			Options: []model.Option{
				{ID: 201, OptionGroupID: 20, Name: "Basic", PriceModifier: 0, PriceModifierType: model.ModifierFixed, IsActive: true},
				{ID: 202, OptionGroupID: 20, Name: "Pro", PriceModifier: 200, PriceModifierType: model.ModifierFixed, IsActive: true},
			},
		},
	}
}

func TestFindMatchingCombination(t *testing.T) {
	combos := []model.OptionCombination{
		{ID: 1, Combination: `{"10":"101","20":"201"}`, CalculatedPrice: 1000, IsActive: true, IsAvailable: true},
		{ID: 2, Combination: `{"10":"102","20":"202"}`, CalculatedPrice: 1500, IsActive: true, IsAvailable: true},
	}

	tests := []struct {
		name       string
		selections Selections
		wantID     uint
	}{
		{
			name:       "Exact match",
			selections: Selections{10: Choice("102"), 20: Choice("202")},
			wantID:     2,
		},
		{
			name:       "Partial selection does not match",
			selections: Selections{10: Choice("102")},
			wantID:     0,
		},
		{
			name:       "Extra group does not match",
			selections: Selections{10: Choice("102"), 20: Choice("202"), 30: Choice("x")},
			wantID:     0,
		},
		{
			name:       "Empty selections match nothing",
			selections: Selections{},
			wantID:     0,
		},
		{
			name:       "Empty-valued selection dropped from equality",
			selections: Selections{10: Choice("102"), 20: Choice("202"), 30: Choice("")},
			wantID:     2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched := FindMatchingCombination(combos, tt.selections)

			if tt.wantID == 0 {
				assert.Nil(t, matched)
			} else {
				require.NotNil(t, matched)
				assert.Equal(t, tt.wantID, matched.ID)
			}
		})
	}
}

func TestFindMatchingCombination_SelectionOrderIndependent(t *testing.T) {
	combos := []model.OptionCombination{
		{ID: 5, Combination: `{"40":["401","402"]}`, IsActive: true, IsAvailable: true},
	}

	forward := FindMatchingCombination(combos, Selections{40: Choices("401", "402")})
	backward := FindMatchingCombination(combos, Selections{40: Choices("402", "401")})

	require.NotNil(t, forward)
	require.NotNil(t, backward)
	assert.Equal(t, forward.ID, backward.ID)
}

func TestFindMatchingCombination_SkipsInactiveAndMalformed(t *testing.T) {
	combos := []model.OptionCombination{
		{ID: 1, Combination: `{"10":"101"}`, IsActive: false, IsAvailable: true},
		{ID: 2, Combination: `{"10":"101"}`, IsActive: true, IsAvailable: false},
		{ID: 3, Combination: `not json`, IsActive: true, IsAvailable: true},
		{ID: 4, Combination: `{"10":"101"}`, IsActive: true, IsAvailable: true},
	}

	matched := FindMatchingCombination(combos, Selections{10: Choice("101")})

	require.NotNil(t, matched)
	assert.Equal(t, uint(4), matched.ID)
}

func TestEffectivePrice_CombinationOverridesCalculation(t *testing.T) {
	groups := regionTierCatalog()
	combos := []model.OptionCombination{
		{ID: 7, Combination: `{"10":"102","20":"202"}`, BasePrice: 1500, CalculatedPrice: 1500, IsActive: true, IsAvailable: true},
	}

	// Ad-hoc modifier math over the same selections would give 1200; the
	// admin-set bundle price wins.
	result := EffectivePrice(1000, groups, Selections{10: Choice("102"), 20: Choice("202")}, combos)

	require.NotNil(t, result.Combination)
	assert.Equal(t, uint(7), result.Combination.ID)
	assert.Equal(t, float64(1500), result.TotalPrice)
	assert.Equal(t, float64(1500), result.BasePrice)
	assert.Empty(t, result.Modifiers)
}

func TestEffectivePrice_FallsBackToCalculation(t *testing.T) {
	groups := regionTierCatalog()

	result := EffectivePrice(1000, groups, Selections{10: Choice("101"), 20: Choice("202")}, nil)

	assert.Nil(t, result.Combination)
	assert.Equal(t, float64(1200), result.TotalPrice)
	assert.Len(t, result.Modifiers, 1)
}
