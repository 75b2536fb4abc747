package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexNumber decodes wizard fields that arrive as either a JSON number or
// a (possibly empty) string. An empty or non-numeric value is treated as
// unset, matching the source wizard where blank inputs simply omit the
// derived condition.
type FlexNumber struct {
	value float64
	set   bool
}

func NewFlexNumber(v float64) FlexNumber {
	return FlexNumber{value: v, set: true}
}

// FlexFromString parses s the way the wizard does: blank or garbage means
// unset. ParseFloat accepts "NaN" and "Inf" spellings; those are garbage
// here too, since no condition or limitation carries a non-finite value.
func FlexFromString(s string) FlexNumber {
	s = strings.TrimSpace(s)
	if s == "" {
		return FlexNumber{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return FlexNumber{}
	}
	return FlexNumber{value: v, set: true}
}

func (n FlexNumber) IsSet() bool { return n.set }

func (n FlexNumber) Float64() float64 { return n.value }

func (n FlexNumber) Int() int { return int(n.value) }

// String renders the numeric value without trailing zeros, or "" when
// unset. Used verbatim inside reward summaries.
func (n FlexNumber) String() string {
	if !n.set {
		return ""
	}
	return strconv.FormatFloat(n.value, 'f', -1, 64)
}

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*n = FlexNumber{value: v, set: true}
	case string:
		*n = FlexFromString(v)
	default:
		*n = FlexNumber{}
	}
	return nil
}

func (n FlexNumber) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}
