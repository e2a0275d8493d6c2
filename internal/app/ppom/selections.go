// Package ppom implements the product option pricing engine: price
// calculation from option modifiers, combination matching, selection
// validation, availability checks and combination generation.
//
// Every function in this package is a pure transform over its arguments.
// The package performs no I/O and holds no state, so it is safe to call
// from concurrent requests without synchronization. Persistence and stock
// mutation belong to the surrounding service layer.
package ppom

import (
	"encoding/json"
	"sort"
)

// Selection holds the chosen value(s) for one option group. Single-select
// groups (and text/number inputs, where the value is the raw entered text)
// carry one value; checkbox-style groups carry a set of values.
type Selection struct {
	multiple bool
	values   []string
}

// Choice returns a single-valued selection.
func Choice(value string) Selection {
	return Selection{values: []string{value}}
}

// Choices returns a multi-valued selection. Order does not matter.
func Choices(values ...string) Selection {
	vs := make([]string, len(values))
	copy(vs, values)
	return Selection{multiple: true, values: vs}
}

// IsMultiple reports whether the selection came from a multi-select group.
func (s Selection) IsMultiple() bool {
	return s.multiple
}

// IsEmpty reports whether the selection carries no usable value.
func (s Selection) IsEmpty() bool {
	for _, v := range s.values {
		if v != "" {
			return false
		}
	}
	return true
}

// Values returns a copy of the selected values.
func (s Selection) Values() []string {
	vs := make([]string, len(s.values))
	copy(vs, s.values)
	return vs
}

func (s Selection) sortedValues() []string {
	vs := make([]string, 0, len(s.values))
	for _, v := range s.values {
		if v != "" {
			vs = append(vs, v)
		}
	}
	sort.Strings(vs)
	return vs
}

// Selections maps an option-group ID to the user's selection for it.
type Selections map[uint]Selection

// normalized converts selections to a canonical form for combination
// matching: sorted value lists keyed by group ID, with empty selections
// dropped so they do not participate in equality.
func (s Selections) normalized() map[uint][]string {
	out := make(map[uint][]string, len(s))
	for groupID, sel := range s {
		if sel.IsEmpty() {
			continue
		}
		out[groupID] = sel.sortedValues()
	}
	return out
}

// MarshalJSON serializes selections as an object keyed by group ID, with a
// plain string for single selections and an array for multi selections.
// This is the shape persisted on cart and order item snapshots.
func (s Selections) MarshalJSON() ([]byte, error) {
	raw := make(map[string]interface{}, len(s))
	for groupID, sel := range s {
		key := formatID(groupID)
		if sel.multiple {
			raw[key] = sel.Values()
		} else if len(sel.values) > 0 {
			raw[key] = sel.values[0]
		} else {
			raw[key] = ""
		}
	}
	return json.Marshal(raw)
}

// UnmarshalJSON accepts the snapshot shape produced by MarshalJSON. Scalar
// values (strings and numbers) become single selections, arrays become
// multi selections. Keys that do not parse as group IDs are dropped.
func (s *Selections) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Selections, len(raw))
	for key, value := range raw {
		groupID, ok := parseID(key)
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			out[groupID] = Choice(v)
		case float64:
			out[groupID] = Choice(formatNumber(v))
		case []interface{}:
			values := make([]string, 0, len(v))
			for _, item := range v {
				if str, ok := coerceString(item); ok {
					values = append(values, str)
				}
			}
			out[groupID] = Choices(values...)
		}
	}
	*s = out
	return nil
}
