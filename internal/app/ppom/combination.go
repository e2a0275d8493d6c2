package ppom

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Assignment is one point in the cartesian space of single-select groups:
// for every participating group, the single chosen option ID.
type Assignment map[uint]uint

// EncodeAssignment serializes an assignment to the canonical string form
// persisted on option_combinations rows: a JSON object whose keys are
// group IDs in ascending order. Sorting the keys makes string equality a
// sound set-membership test during generation de-duplication.
func EncodeAssignment(a Assignment) string {
	groupIDs := make([]uint, 0, len(a))
	for groupID := range a {
		groupIDs = append(groupIDs, groupID)
	}
	sort.Slice(groupIDs, func(i, j int) bool { return groupIDs[i] < groupIDs[j] })

	buf := make([]byte, 0, 16*len(a)+2)
	buf = append(buf, '{')
	for i, groupID := range groupIDs {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendQuote(buf, formatID(groupID))
		buf = append(buf, ':')
		buf = strconv.AppendQuote(buf, formatID(a[groupID]))
	}
	buf = append(buf, '}')
	return string(buf)
}

// decodeCombination parses a persisted combination string into the
// normalized matching form. Values are coerced to strings so that rows
// written with numeric option IDs still match. Returns false when the
// string is not a JSON object; such rows are excluded from matching.
func decodeCombination(raw string) (map[uint][]string, bool) {
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, false
	}

	out := make(map[uint][]string, len(parsed))
	for key, value := range parsed {
		groupID, ok := parseID(key)
		if !ok {
			continue
		}
		switch v := value.(type) {
		case []interface{}:
			values := make([]string, 0, len(v))
			for _, item := range v {
				if str, ok := coerceString(item); ok && str != "" {
					values = append(values, str)
				}
			}
			if len(values) == 0 {
				continue
			}
			sort.Strings(values)
			out[groupID] = values
		default:
			str, ok := coerceString(v)
			if !ok || str == "" {
				continue
			}
			out[groupID] = []string{str}
		}
	}
	return out, true
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func parseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func coerceString(v interface{}) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		return formatNumber(s), true
	default:
		return "", false
	}
}
