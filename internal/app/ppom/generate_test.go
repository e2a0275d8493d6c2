package ppom

import (
	"testing"

	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generatorCatalog() []model.OptionGroup {
	return []model.OptionGroup{
		{
			ID:            1,
			Name:          "Region",
			SelectionType: model.SelectionSingle,
			Options: []model.Option{
				{ID: 11, OptionGroupID: 1, IsActive: true},
				{ID: 12, OptionGroupID: 1, IsActive: true},
			},
		},
		{
			ID:            2,
			Name:          "Tier",
			SelectionType: model.SelectionSingle,
			Options: []model.Option{
				{ID: 21, OptionGroupID: 2, IsActive: true},
				{ID: 22, OptionGroupID: 2, IsActive: true},
				{ID: 23, OptionGroupID: 2, IsActive: true},
			},
		},
		{
			// Multi-select groups do not partition the combination space.
			ID:            3,
			Name:          "Extras",
			SelectionType: model.SelectionMultiple,
			Options: []model.Option{
				{ID: 31, OptionGroupID: 3, IsActive: true},
			},
		},
	}
}

func TestGenerate_Exhaustive(t *testing.T) {
	assignments, err := Generate(generatorCatalog(), 0)
	require.NoError(t, err)

	// 2 regions x 3 tiers = 6 distinct tuples; the multi-select group is
	// excluded.
	require.Len(t, assignments, 6)

	seen := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		assert.Len(t, a, 2)
		assert.Contains(t, a, uint(1))
		assert.Contains(t, a, uint(2))
		seen[EncodeAssignment(a)] = true
	}
	assert.Len(t, seen, 6)
}

func TestGenerate_SkipsInactiveOptions(t *testing.T) {
	groups := generatorCatalog()
	groups[1].Options[2].IsActive = false

	assignments, err := Generate(groups, 0)
	require.NoError(t, err)
	assert.Len(t, assignments, 4)
}

func TestGenerate_NoSingleSelectGroups(t *testing.T) {
	groups := []model.OptionGroup{
		{ID: 3, SelectionType: model.SelectionMultiple, Options: []model.Option{{ID: 31, IsActive: true}}},
	}

	assignments, err := Generate(groups, 0)

	assert.ErrorIs(t, err, ErrNoSingleSelectGroups)
	assert.Nil(t, assignments)
}

func TestGenerate_RefusesOversizedProduct(t *testing.T) {
	assignments, err := Generate(generatorCatalog(), 5)

	assert.ErrorIs(t, err, ErrTooManyCombinations)
	assert.Nil(t, assignments)
}

func TestEncodeAssignment_CanonicalKeyOrder(t *testing.T) {
	a := Assignment{20: 202, 3: 33, 100: 1001}
	b := Assignment{100: 1001, 3: 33, 20: 202}

	// Same tuple must serialize identically regardless of insertion order,
	// otherwise string-equality de-duplication produces false negatives.
	assert.Equal(t, EncodeAssignment(a), EncodeAssignment(b))
	assert.Equal(t, `{"3":"33","20":"202","100":"1001"}`, EncodeAssignment(a))
}

func TestEncodeAssignment_RoundTripsThroughMatcher(t *testing.T) {
	encoded := EncodeAssignment(Assignment{1: 11, 2: 21})

	combos := []model.OptionCombination{
		{ID: 9, Combination: encoded, IsActive: true, IsAvailable: true},
	}
	matched := FindMatchingCombination(combos, Selections{1: Choice("11"), 2: Choice("21")})

	require.NotNil(t, matched)
	assert.Equal(t, uint(9), matched.ID)
}
