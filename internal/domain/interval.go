// SPDX-License-Identifier: Apache-2.0

// Package domain implements the abstract domains over which policy
// attributes reason: a closed interval lattice over extended values, and a
// column-name schema lattice.
package domain

import "github.com/sunblaze-ucb/privguard/internal/extval"

// Interval is a closed interval [Lower, Upper] over extended values. The
// optional LowerBound/UpperBound record the originally declared outer range,
// independent of how far the interval has since been tightened by discharge.
type Interval struct {
	Lower, Upper           extval.Extended
	LowerBound, UpperBound *extval.Extended
}

// NewInterval builds an interval with no recorded outer bounds.
func NewInterval(lower, upper extval.Extended) Interval {
	return Interval{Lower: lower, Upper: upper}
}

// IsSubsetOf reports whether i is contained in other: other.Lower <= i.Lower
// and i.Upper <= other.Upper.
func (i Interval) IsSubsetOf(other Interval) bool {
	return other.Lower.LessEq(i.Lower) && i.Upper.LessEq(other.Upper)
}

// Meet is the greatest lower bound: the narrower of the two ranges.
func (i Interval) Meet(other Interval) Interval {
	return Interval{
		Lower:      extval.MaxExtended(i.Lower, other.Lower),
		Upper:      extval.MinExtended(i.Upper, other.Upper),
		LowerBound: i.LowerBound,
		UpperBound: i.UpperBound,
	}
}

// Join is the least upper bound: the wider of the two ranges.
func (i Interval) Join(other Interval) Interval {
	return Interval{
		Lower:      extval.MinExtended(i.Lower, other.Lower),
		Upper:      extval.MaxExtended(i.Upper, other.Upper),
		LowerBound: i.LowerBound,
		UpperBound: i.UpperBound,
	}
}

func (i Interval) String() string {
	return "[" + i.Lower.String() + ", " + i.Upper.String() + "]"
}
