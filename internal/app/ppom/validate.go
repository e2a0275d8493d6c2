package ppom

import (
	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
)

// ValidationResult lists every required group left unselected, so the
// caller can surface all gaps at once instead of one per submit.
type ValidationResult struct {
	Valid         bool                `json:"valid"`
	MissingGroups []model.OptionGroup `json:"missing_groups"`
}

// ValidateSelections checks that every required group has a non-empty
// selection. requiredOverrides carries per-product overrides keyed by group
// ID; groups absent from the map fall back to their own is_required flag.
// Pure and side-effect free, safe to run on every keystroke.
func ValidateSelections(groups []model.OptionGroup, selections Selections, requiredOverrides map[uint]bool) ValidationResult {
	result := ValidationResult{Valid: true, MissingGroups: []model.OptionGroup{}}

	for _, group := range groups {
		required := group.IsRequired
		if override, ok := requiredOverrides[group.ID]; ok {
			required = override
		}
		if !required {
			continue
		}

		selection, ok := selections[group.ID]
		if !ok || selection.IsEmpty() {
			result.MissingGroups = append(result.MissingGroups, group)
		}
	}

	result.Valid = len(result.MissingGroups) == 0
	return result
}
