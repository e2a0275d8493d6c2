package ppom

import (
	"errors"

	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
)

// DefaultCombinationLimit caps how many combinations one generation run may
// produce. The cartesian product grows multiplicatively with each group, so
// an unbounded run over a fat catalog could materialize millions of rows
// from a single admin click.
const DefaultCombinationLimit = 5000

var (
	ErrNoSingleSelectGroups = errors.New("no single-select option groups with active options")
	ErrTooManyCombinations  = errors.New("combination count exceeds the configured limit")
)

// Generate produces the cartesian product of every single-select group's
// active options. Multi-select and text/number-input groups do not
// partition the combination space and are excluded. limit <= 0 falls back
// to DefaultCombinationLimit; the expected count is checked before any
// expansion happens so an oversized catalog fails fast.
func Generate(groups []model.OptionGroup, limit int) ([]Assignment, error) {
	if limit <= 0 {
		limit = DefaultCombinationLimit
	}

	type axis struct {
		groupID uint
		options []model.Option
	}

	axes := make([]axis, 0, len(groups))
	total := 1
	for _, group := range groups {
		if group.SelectionType != model.SelectionSingle {
			continue
		}
		active := group.ActiveOptions()
		if len(active) == 0 {
			continue
		}
		axes = append(axes, axis{groupID: group.ID, options: active})

		total *= len(active)
		if total > limit {
			return nil, ErrTooManyCombinations
		}
	}

	if len(axes) == 0 {
		return nil, ErrNoSingleSelectGroups
	}

	// Iterative cartesian expansion: each axis multiplies every partial
	// assignment accumulated so far by its option count.
	assignments := []Assignment{{}}
	for _, ax := range axes {
		expanded := make([]Assignment, 0, len(assignments)*len(ax.options))
		for _, partial := range assignments {
			for _, option := range ax.options {
				next := make(Assignment, len(partial)+1)
				for k, v := range partial {
					next[k] = v
				}
				next[ax.groupID] = option.ID
				expanded = append(expanded, next)
			}
		}
		assignments = expanded
	}

	return assignments, nil
}
