package testserdes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// MarshalUnmarshalJSON checks if expected stays the same after
// marshal/unmarshal via JSON.
func MarshalUnmarshalJSON(t *testing.T, expected, actual any) {
	data, err := json.Marshal(expected)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, actual))
	require.Equal(t, expected, actual)
}

// UnmarshalMarshalJSON checks that data is reproduced exactly after
// unmarshal/marshal via JSON, ignoring indentation.
func UnmarshalMarshalJSON(t *testing.T, data []byte, v any) {
	require.NoError(t, json.Unmarshal(data, v))
	actual, err := json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, string(data), string(actual))
}
