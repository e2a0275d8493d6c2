package ppom

import (
	"testing"

	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSelections(t *testing.T) {
	groups := []model.OptionGroup{
		{ID: 1, Name: "Account ID", DisplayType: model.DisplayTextInput, SelectionType: model.SelectionSingle, IsRequired: true},
		{ID: 2, Name: "Server", SelectionType: model.SelectionSingle, IsRequired: true},
		{ID: 3, Name: "Extras", SelectionType: model.SelectionMultiple, IsRequired: false},
	}

	tests := []struct {
		name        string
		selections  Selections
		overrides   map[uint]bool
		wantValid   bool
		wantMissing int
	}{
		{
			name:        "All required groups unselected are all reported",
			selections:  Selections{},
			wantValid:   false,
			wantMissing: 2,
		},
		{
			name:        "Empty text input counts as missing",
			selections:  Selections{1: Choice(""), 2: Choice("21")},
			wantValid:   false,
			wantMissing: 1,
		},
		{
			name:        "Filling the text input clears the report",
			selections:  Selections{1: Choice("player#1234"), 2: Choice("21")},
			wantValid:   true,
			wantMissing: 0,
		},
		{
			name:        "Empty multi selection on required group is missing",
			selections:  Selections{1: Choice("x"), 2: Choice("21"), 3: Choices()},
			overrides:   map[uint]bool{3: true},
			wantValid:   false,
			wantMissing: 1,
		},
		{
			name:        "Override can relax a required group",
			selections:  Selections{1: Choice("x")},
			overrides:   map[uint]bool{2: false},
			wantValid:   true,
			wantMissing: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateSelections(groups, tt.selections, tt.overrides)

			assert.Equal(t, tt.wantValid, result.Valid)
			assert.Len(t, result.MissingGroups, tt.wantMissing)
		})
	}
}

func TestValidateSelections_ReportsEveryGap(t *testing.T) {
	groups := make([]model.OptionGroup, 0, 5)
	for i := uint(1); i <= 5; i++ {
		groups = append(groups, model.OptionGroup{ID: i, Name: "G", IsRequired: true})
	}

	result := ValidateSelections(groups, Selections{}, nil)

	require.False(t, result.Valid)
	assert.Len(t, result.MissingGroups, 5)
}
