package model

import (
	"database/sql/driver"
	"math"
	"strconv"
)

// Value is one position of a derived series. Valid is false where the
// indicator has insufficient history.
type Value struct {
	V     float64
	Valid bool
}

// Some returns a defined Value.
func Some(v float64) Value { return Value{V: v, Valid: true} }

// None is the undefined Value.
var None = Value{}

// Get returns the float and whether it is defined.
func (v Value) Get() (float64, bool) { return v.V, v.Valid }

// MarshalJSON encodes an undefined or non-finite Value as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid || math.IsNaN(v.V) || math.IsInf(v.V, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v.V, 'g', -1, 64), nil
}

// Value implements driver.Valuer so undefined entries are stored as NULL.
func (v Value) Value() (driver.Value, error) {
	if !v.Valid {
		return nil, nil
	}
	return v.V, nil
}

// Series is a derived series aligned with its input prices.
type Series []Value

// Last returns the final entry, or None for an empty series.
func (s Series) Last() Value {
	if len(s) == 0 {
		return None
	}
	return s[len(s)-1]
}

// FirstValid returns the index of the first defined entry, or -1.
func (s Series) FirstValid() int {
	for i, v := range s {
		if v.Valid {
			return i
		}
	}
	return -1
}
