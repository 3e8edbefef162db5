// SPDX-License-Identifier: Apache-2.0

// Package extval implements the totally ordered value carrier described in
// the analyzer's data model: integers, strings, and dates extended with the
// sentinel bounds -inf and +inf.
package extval

import (
	"fmt"
	"time"

	"github.com/samber/oops"
)

// Value is a concrete, unextended policy value. IntVal, StrVal, and DateVal
// are the only implementations.
type Value interface {
	// Compare returns -1, 0, or 1 when v is less than, equal to, or greater
	// than other. Comparing values of different concrete kinds is an
	// invariant violation: the carrier is typed but Compare has no type
	// parameter to enforce that statically.
	Compare(other Value) int
	String() string
}

// IntVal is an integer policy value.
type IntVal int64

func (v IntVal) Compare(other Value) int {
	o, ok := other.(IntVal)
	if !ok {
		panic(mismatch(v, other))
	}
	switch {
	case v < o:
		return -1
	case v > o:
		return 1
	default:
		return 0
	}
}

func (v IntVal) String() string { return fmt.Sprintf("%d", int64(v)) }

// StrVal is a string policy value, ordered lexicographically.
type StrVal string

func (v StrVal) Compare(other Value) int {
	o, ok := other.(StrVal)
	if !ok {
		panic(mismatch(v, other))
	}
	switch {
	case v < o:
		return -1
	case v > o:
		return 1
	default:
		return 0
	}
}

func (v StrVal) String() string { return string(v) }

// DateVal is a chronological policy value.
type DateVal time.Time

func (v DateVal) Compare(other Value) int {
	o, ok := other.(DateVal)
	if !ok {
		panic(mismatch(v, other))
	}
	t, ot := time.Time(v), time.Time(o)
	switch {
	case t.Before(ot):
		return -1
	case t.After(ot):
		return 1
	default:
		return 0
	}
}

func (v DateVal) String() string { return time.Time(v).Format(time.RFC3339) }

func mismatch(v, other Value) error {
	return oops.
		Code("INVARIANT_VIOLATION").
		With("lhs_type", fmt.Sprintf("%T", v)).
		With("rhs_type", fmt.Sprintf("%T", other)).
		Errorf("cannot compare values of different kinds")
}

// sentinel identifies the ±∞ bounds. Sentinels are compared by tag, never by
// identity (see spec design note "Sentinel identity").
type sentinel int

const (
	notSentinel sentinel = iota
	negInf
	posInf
)

// Extended is a Value extended with -inf and +inf. The zero Extended is
// invalid; use NegInf, PosInf, or Of to construct one.
type Extended struct {
	val      Value
	sentinel sentinel
}

// NegInf is the extended lower sentinel, -infinity.
var NegInf = Extended{sentinel: negInf}

// PosInf is the extended upper sentinel, +infinity.
var PosInf = Extended{sentinel: posInf}

// Of wraps a concrete Value as an Extended. Double-extension — wrapping a
// Value that is already an Extended — is an invariant violation, mirroring
// the original ExtendV constructor's RuntimeError on double-extend.
func Of(v Value) Extended {
	if _, ok := v.(Extended); ok {
		panic(oops.
			Code("INVARIANT_VIOLATION").
			Errorf("tried to double-extend the value %v", v))
	}
	return Extended{val: v}
}

// compareExtended is the sentinel-aware comparison core shared by Compare
// and the typed relational helpers below.
func (e Extended) compareExtended(other Extended) int {
	if e.sentinel == other.sentinel && e.sentinel != notSentinel {
		return 0
	}
	if e.sentinel == negInf || other.sentinel == posInf {
		if e.sentinel == other.sentinel {
			return 0
		}
		return -1
	}
	if e.sentinel == posInf || other.sentinel == negInf {
		return 1
	}
	return e.val.Compare(other.val)
}

// IsNegInf reports whether e is the -infinity sentinel.
func (e Extended) IsNegInf() bool { return e.sentinel == negInf }

// IsPosInf reports whether e is the +infinity sentinel.
func (e Extended) IsPosInf() bool { return e.sentinel == posInf }

// Value returns the wrapped concrete value and true, or (nil, false) if e is
// a sentinel.
func (e Extended) Value() (Value, bool) {
	if e.sentinel != notSentinel {
		return nil, false
	}
	return e.val, true
}

func (e Extended) String() string {
	switch e.sentinel {
	case negInf:
		return "-inf"
	case posInf:
		return "+inf"
	default:
		return e.val.String()
	}
}

// Compare orders e relative to other: -inf < anything < +inf, and two
// sentinels of the same kind are equal. Comparing an Extended against a
// non-Extended Value is an invariant violation, consistent with IntVal,
// StrVal, and DateVal's cross-kind guards.
func (e Extended) Compare(other Value) int {
	o, ok := other.(Extended)
	if !ok {
		panic(mismatch(e, other))
	}
	return e.compareExtended(o)
}

// Less reports e < other.
func (e Extended) Less(other Extended) bool { return e.compareExtended(other) < 0 }

// LessEq reports e <= other.
func (e Extended) LessEq(other Extended) bool { return e.compareExtended(other) <= 0 }

// Equal reports e == other.
func (e Extended) Equal(other Extended) bool { return e.compareExtended(other) == 0 }

// NotEqual reports e != other.
func (e Extended) NotEqual(other Extended) bool { return !e.Equal(other) }

// GreaterEq reports e >= other.
func (e Extended) GreaterEq(other Extended) bool { return e.compareExtended(other) >= 0 }

// Greater reports e > other.
func (e Extended) Greater(other Extended) bool { return e.compareExtended(other) > 0 }

// MinExtended returns the smaller of two extended values.
func MinExtended(a, b Extended) Extended {
	if a.LessEq(b) {
		return a
	}
	return b
}

// MaxExtended returns the larger of two extended values.
func MaxExtended(a, b Extended) Extended {
	if a.GreaterEq(b) {
		return a
	}
	return b
}
