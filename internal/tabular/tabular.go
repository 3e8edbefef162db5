// SPDX-License-Identifier: Apache-2.0

// Package tabular implements the surrogate value types the analyzer's
// program API threads through an analyst's code in place of real data:
// DataFrame, Series, NdArray, and Blackbox, each carrying a residual
// Policy instead of actual values.
package tabular

import (
	"fmt"

	"github.com/samber/oops"

	"github.com/sunblaze-ucb/privguard/internal/domain"
	"github.com/sunblaze-ucb/privguard/internal/extval"
	"github.com/sunblaze-ucb/privguard/internal/policy"
)

// Carrier is any surrogate value that carries a residual policy.
type Carrier interface {
	PolicyOf() policy.Policy
}

// DataFrame is a named-column abstract table: its Shape is [rows, cols],
// tracked only for bookkeeping since no operation inspects actual values.
type DataFrame struct {
	Schema domain.Schema
	Policy policy.Policy
	Shape  [2]int
}

func (d *DataFrame) PolicyOf() policy.Policy { return d.Policy }

func (d *DataFrame) String() string {
	return fmt.Sprintf("DataFrame%s shape=%v\n  %s", d.Schema, d.Shape, d.Policy)
}

// Values implements `df.values`: the underlying ndarray surrogate, carrying
// the DataFrame's current policy (stub_pandas.py's DataFrame.__init__ sets
// `self.values = ndarray(self.policy)` up front, so it always reflects
// whatever policy the frame holds at the time of access).
func (d *DataFrame) Values() NdArray { return NdArray{Policy: d.Policy} }

// Series is one column, optionally carrying the comparison interval that
// makes it usable as a boolean filter key for indexing its Parent.
type Series struct {
	Column   string
	Parent   *DataFrame
	Policy   policy.Policy
	Interval *domain.Interval
}

func (s *Series) PolicyOf() policy.Policy { return s.Policy }

func (s *Series) String() string {
	if s.Interval != nil {
		return fmt.Sprintf("Series(%s) interval=%s", s.Column, s.Interval)
	}
	return fmt.Sprintf("Series(%s)", s.Column)
}

// Values implements `series.values`, mirroring DataFrame.Values.
func (s *Series) Values() NdArray { return NdArray{Policy: s.Policy} }

// NdArray is a shape-less numeric tensor surrogate.
type NdArray struct {
	Policy policy.Policy
}

func (n NdArray) PolicyOf() policy.Policy { return n.Policy }

func (n NdArray) String() string { return fmt.Sprintf("NdArray\n  %s", n.Policy) }

// compare builds the comparison-result Series shared by CompareEQ/GE/LE: a
// fresh Series over the same column and policy, with Interval populated to
// the truth-set bound the comparison describes. Re-comparing a Series that
// already carries an interval is rejected (spec §4.6's InvalidReuse rule).
func (s *Series) compare(iv domain.Interval) (*Series, error) {
	if s.Interval != nil {
		return nil, NewInvalidReuse(s.Column)
	}
	return &Series{Column: s.Column, Parent: s.Parent, Policy: s.Policy, Interval: &iv}, nil
}

// CompareEQ yields the Series representing `column == value`.
func (s *Series) CompareEQ(value extval.Value) (*Series, error) {
	v := extval.Of(value)
	return s.compare(domain.NewInterval(v, v))
}

// CompareGE yields the Series representing `column >= value`.
func (s *Series) CompareGE(value extval.Value) (*Series, error) {
	return s.compare(domain.NewInterval(extval.Of(value), extval.PosInf))
}

// CompareLE yields the Series representing `column <= value`.
func (s *Series) CompareLE(value extval.Value) (*Series, error) {
	return s.compare(domain.NewInterval(extval.NegInf, extval.Of(value)))
}

// Copy duplicates the policy reference; Policy is an immutable value type
// so no deeper copy is required (spec §4.6).
func (n NdArray) Copy() NdArray { return NdArray{Policy: n.Policy} }

// Blackbox is the opaque result of any operation not modeled in detail. It
// sinks further data by joining policies into itself.
type Blackbox struct {
	Policy policy.Policy
}

func (b Blackbox) PolicyOf() policy.Policy { return b.Policy }

func (b Blackbox) String() string { return fmt.Sprintf("Blackbox\n  %s", b.Policy) }

// Join folds other's policy into b, modeling "anything downstream cannot
// reduce obligations": attribute access on a Blackbox returns a callable
// that, when invoked, joins its arguments' policies into the Blackbox and
// returns it (spec §4.7's closing paragraph). Call sites obtain that
// callable's effect by calling Join directly with each argument Carrier.
func (b Blackbox) Join(other Carrier) Blackbox {
	return Blackbox{Policy: b.Policy.Join(other.PolicyOf())}
}

// Count implements a post-groupby `.count()` call. Grounded on blackbox.py's
// method_missing: any attribute access the Blackbox doesn't model explicitly
// falls through to returning itself unchanged, so a `count()` chained after
// `groupby(...)` has no further policy effect beyond the foreclosure GroupBy
// already applied.
func (b Blackbox) Count() Blackbox { return b }

// NewInvalidReuse builds the InvalidReuse error for re-comparing a Series
// that already carries an interval (spec §7).
func NewInvalidReuse(column string) error {
	return oops.
		Code("INVALID_REUSE").
		With("column", column).
		Errorf("series %q already carries a comparison interval and cannot be re-compared", column)
}

// NewCrossFrameSeries builds the CrossFrameSeries error for indexing a
// DataFrame with a Series whose Parent is a different frame (spec §7).
func NewCrossFrameSeries(column string) error {
	return oops.
		Code("CROSS_FRAME_SERIES").
		With("column", column).
		Errorf("series %q belongs to a different DataFrame than the one it is indexing", column)
}

// NewSchemaError builds the SchemaError for referencing a column absent
// from a DataFrame's schema (spec §7).
func NewSchemaError(col string, schema domain.Schema) error {
	return oops.
		Code("SCHEMA_ERROR").
		With("column", col).
		With("schema", schema.String()).
		Errorf("column %q not found in schema %s", col, schema)
}
