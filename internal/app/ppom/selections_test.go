package ppom

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelections_JSONRoundTrip(t *testing.T) {
	original := Selections{
		1: Choice("11"),
		2: Choices("21", "22"),
		3: Choice("player#1234"),
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Selections
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Len(t, decoded, 3)
	assert.Equal(t, []string{"11"}, decoded[1].Values())
	assert.ElementsMatch(t, []string{"21", "22"}, decoded[2].Values())
	assert.Equal(t, []string{"player#1234"}, decoded[3].Values())
	assert.True(t, decoded[2].IsMultiple())
	assert.False(t, decoded[1].IsMultiple())
}

func TestSelections_UnmarshalCoercesNumbers(t *testing.T) {
	// Clients may send numeric option IDs; they normalize to strings.
	var s Selections
	require.NoError(t, json.Unmarshal([]byte(`{"1":11,"2":[21,22]}`), &s))

	assert.Equal(t, []string{"11"}, s[1].Values())
	assert.ElementsMatch(t, []string{"21", "22"}, s[2].Values())
}

func TestSelections_UnmarshalDropsBadKeys(t *testing.T) {
	var s Selections
	require.NoError(t, json.Unmarshal([]byte(`{"abc":"1","2":"21"}`), &s))

	assert.Len(t, s, 1)
	assert.Contains(t, s, uint(2))
}

func TestSelection_IsEmpty(t *testing.T) {
	assert.True(t, Choice("").IsEmpty())
	assert.True(t, Choices().IsEmpty())
	assert.True(t, Choices("", "").IsEmpty())
	assert.False(t, Choice("x").IsEmpty())
	assert.False(t, Choices("", "y").IsEmpty())
}
