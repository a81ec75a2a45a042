package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Number is a float64 that marshals non-finite values as the JSON strings
// "+Inf", "-Inf" and "NaN" instead of failing.
//
// Design decision: Infinity is a legitimate physical answer here (redshift
// on the horizon, lifetime of an extremal hole). encoding/json refuses to
// encode it, and dropping the value would lose the distinction between
// "diverges" and "not computed", so non-finite values are spelled out.
type Number float64

// Float64 returns the underlying value.
func (n Number) Float64() float64 {
	return float64(n)
}

// IsFinite reports whether n is neither infinite nor NaN.
func (n Number) IsFinite() bool {
	f := float64(n)
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// String formats n with the shortest exact representation.
func (n Number) String() string {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.IsFinite() {
		return json.Marshal(n.String())
	}
	return []byte(strconv.FormatFloat(float64(n), 'g', -1, 64)), nil
}

// UnmarshalJSON implements json.Unmarshaler. It accepts plain numbers and
// the three non-finite spellings.
func (n *Number) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case "+Inf", "Inf":
			*n = Number(math.Inf(1))
		case "-Inf":
			*n = Number(math.Inf(-1))
		case "NaN":
			*n = Number(math.NaN())
		default:
			return fmt.Errorf("invalid number %q", s)
		}
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("invalid number %s: %w", string(data), err)
	}
	*n = Number(f)
	return nil
}
