package wallet

import (
	"strconv"
)

// AdaToLovelace lovelace per ada
const AdaToLovelace = 1_000_000

// Unit tags the construction unit of an Amount.
type Unit int

const (
	UnitLovelace Unit = iota
	UnitAda
)

// Amount is a unit-safe quantity of the native currency. Both views are
// computed at construction: lovelace->ada divides by 1e6 exactly, ada->lovelace
// multiplies and truncates toward zero. Arithmetic results carry the left
// operand's unit.
type Amount struct {
	unit     Unit
	lovelace int64
	ada      float64
}

// Lovelace new amount from a whole lovelace value
func Lovelace(v int64) Amount {
	return Amount{
		unit:     UnitLovelace,
		lovelace: v,
		ada:      float64(v) / AdaToLovelace,
	}
}

// Ada new amount from a fractional ada value
func Ada(v float64) Amount {
	return Amount{
		unit:     UnitAda,
		lovelace: int64(v * AdaToLovelace),
		ada:      v,
	}
}

// Unit the construction unit
func (a Amount) Unit() Unit { return a.unit }

// Lovelace the minor-unit view
func (a Amount) Lovelace() int64 { return a.lovelace }

// Ada the major-unit view
func (a Amount) Ada() float64 { return a.ada }

// IsZero reports whether the amount is exactly zero lovelace.
func (a Amount) IsZero() bool { return a.lovelace == 0 }

// Add returns a+b in a's unit.
func (a Amount) Add(b Amount) Amount {
	if a.unit == UnitAda {
		return Ada(a.ada + b.ada)
	}
	return Lovelace(a.lovelace + b.lovelace)
}

// Sub returns a-b in a's unit.
func (a Amount) Sub(b Amount) Amount {
	if a.unit == UnitAda {
		return Ada(a.ada - b.ada)
	}
	return Lovelace(a.lovelace - b.lovelace)
}

// Cmp compares by lovelace value: -1 if a<b, 0 if equal, 1 if a>b.
func (a Amount) Cmp(b Amount) int {
	switch {
	case a.lovelace < b.lovelace:
		return -1
	case a.lovelace > b.lovelace:
		return 1
	default:
		return 0
	}
}

func (a Amount) String() string {
	if a.unit == UnitAda {
		return strconv.FormatFloat(a.ada, 'f', -1, 64) + " ada"
	}
	return strconv.FormatInt(a.lovelace, 10) + " lovelace"
}

// CoerceAmount interprets a loosely-typed value as an Amount. Bare integers
// are lovelace, floats are ada, an Amount passes through. Anything else is
// ErrTypeMismatch.
func CoerceAmount(v interface{}) (Amount, error) {
	switch value := v.(type) {
	case Amount:
		return value, nil
	case int:
		return Lovelace(int64(value)), nil
	case int64:
		return Lovelace(value), nil
	case uint64:
		return Lovelace(int64(value)), nil
	case float64:
		return Ada(value), nil
	default:
		return Amount{}, ErrTypeMismatch
	}
}
