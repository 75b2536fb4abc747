package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexNumberUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantSet   bool
		wantValue float64
	}{
		{"json number", `42`, true, 42},
		{"json float", `12.5`, true, 12.5},
		{"numeric string", `"30"`, true, 30},
		{"numeric string with spaces", `" 7 "`, true, 7},
		{"empty string", `""`, false, 0},
		{"garbage string", `"abc"`, false, 0},
		{"null", `null`, false, 0},
		{"boolean", `true`, false, 0},
		{"zero", `0`, true, 0},
		{"negative string", `"-3"`, true, -3},
		{"NaN string", `"NaN"`, false, 0},
		{"Inf string", `"Inf"`, false, 0},
		{"negative Inf string", `"-Inf"`, false, 0},
		{"infinity spelled out", `"+Infinity"`, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n FlexNumber
			require.NoError(t, json.Unmarshal([]byte(tt.input), &n))
			assert.Equal(t, tt.wantSet, n.IsSet())
			assert.Equal(t, tt.wantValue, n.Float64())
		})
	}
}

func TestFlexNumberUnmarshalInsideStruct(t *testing.T) {
	var payload struct {
		PointsCost FlexNumber `json:"pointsCost"`
		Limit      FlexNumber `json:"limit"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"pointsCost":"100"}`), &payload))
	assert.True(t, payload.PointsCost.IsSet())
	assert.Equal(t, 100, payload.PointsCost.Int())
	assert.False(t, payload.Limit.IsSet(), "absent field stays unset")
}

func TestFlexNumberString(t *testing.T) {
	assert.Equal(t, "10", NewFlexNumber(10).String(), "whole values render without a decimal point")
	assert.Equal(t, "12.5", NewFlexNumber(12.5).String())
	assert.Equal(t, "0", NewFlexNumber(0).String())
	assert.Equal(t, "", FlexNumber{}.String(), "unset renders empty")
}

func TestFlexFromString(t *testing.T) {
	assert.True(t, FlexFromString("25").IsSet())
	assert.Equal(t, 25.0, FlexFromString("25").Float64())
	assert.False(t, FlexFromString("").IsSet())
	assert.False(t, FlexFromString("   ").IsSet())
	assert.False(t, FlexFromString("ten").IsSet())

	// Non-finite spellings parse as floats but are not usable values.
	assert.False(t, FlexFromString("NaN").IsSet())
	assert.False(t, FlexFromString("nan").IsSet())
	assert.False(t, FlexFromString("Inf").IsSet())
	assert.False(t, FlexFromString("-inf").IsSet())
}

func TestFlexNumberMarshalJSON(t *testing.T) {
	set, err := json.Marshal(NewFlexNumber(15))
	require.NoError(t, err)
	assert.Equal(t, "15", string(set))

	unset, err := json.Marshal(FlexNumber{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(unset))
}
