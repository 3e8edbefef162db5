// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"strings"

	"github.com/samber/oops"

	"github.com/sunblaze-ucb/privguard/internal/attribute"
	"github.com/sunblaze-ucb/privguard/internal/domain"
	"github.com/sunblaze-ucb/privguard/internal/extval"
)

// Policy is a Legalease policy: a DNF of attribute clauses.
type Policy struct {
	DNF DNF
}

// Top is the trivially satisfied policy, used as the identity for programs
// that load no declared policy.
func Top() Policy {
	return FromClauses([][]attribute.Attribute{{attribute.Satisfied{}}})
}

// FromClauses canonicalizes a raw list of attribute conjunctions into a
// Policy, re-running Clause.Add and DNF.Add over every element so the
// resulting DNF satisfies the subsumption invariant.
func FromClauses(raw [][]attribute.Attribute) Policy {
	d := DNF{}
	for _, cl := range raw {
		built := Clause{}
		for _, req := range cl {
			built = built.Add(req)
		}
		d = d.Add(built)
	}
	return Policy{DNF: d}
}

func (p Policy) String() string {
	parts := make([]string, len(p.DNF))
	for i, c := range p.DNF {
		attrs := make([]string, len(c))
		for j, a := range c {
			attrs[j] = a.String()
		}
		parts[i] = "(" + strings.Join(attrs, " AND ") + ")"
	}
	return strings.Join(parts, ",\n  ")
}

// Join computes the least upper bound of p and other: the full cross
// product of their clauses, each pairwise union built with Clause.Add.
// (The reference implementation's join only ever kept the last pairwise
// union per outer clause; the spec's ⋁ᵢ,ⱼ formula is the corrected,
// authoritative definition and is what this implements.)
func (p Policy) Join(other Policy) Policy {
	var raw [][]attribute.Attribute
	for _, c1 := range p.DNF {
		for _, c2 := range other.DNF {
			merged := make(Clause, len(c1))
			copy(merged, c1)
			for _, req := range c2 {
				merged = merged.Add(req)
			}
			raw = append(raw, merged.raw())
		}
	}
	return FromClauses(raw)
}

func (p Policy) mapAttrs(f func(attribute.Attribute) attribute.Attribute) Policy {
	raw := make([][]attribute.Attribute, len(p.DNF))
	for i, c := range p.DNF {
		nc := make([]attribute.Attribute, len(c))
		for j, req := range c {
			nc[j] = f(req)
		}
		raw[i] = nc
	}
	return FromClauses(raw).DealSat().DealUnsat()
}

// FilterOp is a comparison operator accepted by RunFilter.
type FilterOp string

const (
	OpEq FilterOp = "eq"
	OpLE FilterOp = "le"
	OpGE FilterOp = "ge"
)

// RunFilter discharges or tightens Filter attributes on col in light of a
// filter operation `col <op> value` performed by the analyzed program.
func (p Policy) RunFilter(col string, value extval.Value, op FilterOp) (Policy, error) {
	switch op {
	case OpEq, OpLE, OpGE:
	default:
		return Policy{}, oops.
			Code("UNSUPPORTED_OPERATOR").
			With("operator", string(op)).
			Errorf("unsupported filter operator %q", op)
	}

	v := extval.Of(value)
	return p.mapAttrs(func(req attribute.Attribute) attribute.Attribute {
		f, ok := req.(attribute.Filter)
		if !ok || f.Col != col {
			return req
		}
		l, u := f.Interval.Lower, f.Interval.Upper

		switch op {
		case OpEq:
			if l.LessEq(v) && v.LessEq(u) {
				return attribute.Satisfied{}
			}
			return attribute.Unsatisfiable{}

		case OpLE:
			if v.LessEq(u) {
				switch {
				case l.IsNegInf():
					return attribute.Satisfied{}
				case v.Less(l):
					return attribute.Unsatisfiable{}
				default:
					return attribute.Filter{Col: col, Interval: domain.NewInterval(l, extval.PosInf)}
				}
			}
			// v > u: the filter does not cover this obligation; the
			// analysis over-approximates by returning it unchanged.
			return req

		case OpGE:
			if v.GreaterEq(l) {
				switch {
				case u.IsPosInf():
					return attribute.Satisfied{}
				case v.Greater(u):
					return attribute.Unsatisfiable{}
				default:
					return attribute.Filter{Col: col, Interval: domain.NewInterval(extval.NegInf, u)}
				}
			}
			return req
		}
		return req
	}), nil
}

// RunProject discharges or rejects Filter, Redact, and SchemaAttr attributes
// in light of a projection onto cols.
func (p Policy) RunProject(cols domain.Schema) Policy {
	return p.mapAttrs(func(req attribute.Attribute) attribute.Attribute {
		switch r := req.(type) {
		case attribute.SchemaAttr:
			kept := r.Columns.Meet(cols)
			switch {
			case len(kept) == 0:
				return attribute.Unsatisfiable{}
			case cols.IsSubsetOf(r.Columns):
				return attribute.Satisfied{}
			default:
				return attribute.SchemaAttr{Columns: kept}
			}

		case attribute.Filter:
			if !cols.Has(r.Col) {
				return attribute.Unsatisfiable{}
			}
			return r

		case attribute.Redact:
			if !cols.Has(r.Col) {
				return attribute.Satisfied{}
			}
			return r

		default:
			return req
		}
	})
}

// RunRedact discharges Redact attributes on col whose bounds are covered by
// [left, right). A nil bound is open. Unlike the reference implementation
// (which returned a bool), this mirrors RunFilter's shape and returns a
// rewritten Policy.
func (p Policy) RunRedact(col string, left, right *int) Policy {
	return p.mapAttrs(func(req attribute.Attribute) attribute.Attribute {
		r, ok := req.(attribute.Redact)
		if !ok || r.Col != col {
			return req
		}
		leftOK := left == nil || (r.Left != nil && *left <= *r.Left)
		rightOK := right == nil || (r.Right != nil && *right >= *r.Right)
		if leftOK && rightOK {
			return attribute.Satisfied{}
		}
		return req
	})
}

// RunPrivacy discharges Privacy attributes for tech when the supplied
// parameters dominate the declared ones.
func (p Policy) RunPrivacy(tech attribute.PrivacyTech, k *int, eps, delta *float64) Policy {
	return p.mapAttrs(func(req attribute.Attribute) attribute.Attribute {
		r, ok := req.(attribute.Privacy)
		if !ok || r.Tech != tech {
			return req
		}
		switch tech {
		case attribute.KAnonymity:
			if k != nil && r.K != nil && *k >= *r.K {
				return attribute.Satisfied{}
			}
		case attribute.LDiversity, attribute.TCloseness:
			// Not modeled upstream; conservatively never discharged here.
		case attribute.DP:
			if eps != nil && delta != nil && r.Eps != nil && r.Delta != nil &&
				*eps < *r.Eps && *delta < *r.Delta {
				return attribute.Satisfied{}
			}
		default:
			return attribute.Satisfied{}
		}
		return req
	})
}

// AttrKind names the families of attribute UnSat can forcibly discharge to
// Unsatisfiable.
type AttrKind string

const (
	KindFilter  AttrKind = "filter"
	KindPrivacy AttrKind = "privacy"
)

// UnSat forcibly marks every attribute of the given kind matching key as
// Unsatisfiable, then canonicalizes. An empty key matches every attribute of
// that kind regardless of column or technique — used by operations, such as
// grouping, that foreclose an entire family of future obligations rather
// than one specific instance.
func (p Policy) UnSat(kind AttrKind, key string) Policy {
	raw := make([][]attribute.Attribute, len(p.DNF))
	for i, c := range p.DNF {
		nc := make([]attribute.Attribute, len(c))
		for j, req := range c {
			switch kind {
			case KindFilter:
				if f, ok := req.(attribute.Filter); ok && (key == "" || f.Col == key) {
					nc[j] = attribute.Unsatisfiable{}
					continue
				}
			case KindPrivacy:
				if pr, ok := req.(attribute.Privacy); ok && (key == "" || string(pr.Tech) == key) {
					nc[j] = attribute.Unsatisfiable{}
					continue
				}
			}
			nc[j] = req
		}
		raw[i] = nc
	}
	return FromClauses(raw).DealUnsat()
}

// ForecloseAllExcept marks every attribute Unsatisfiable except a Privacy
// attribute matching tech, which is left untouched so a later operation can
// still discharge it. Grouping operations use this: once rows are
// aggregated, no per-row Filter/Redact/Schema obligation can be soundly
// discharged, but the Aggregation privacy obligation remains dischargeable
// by a subsequent reduction such as a column sum.
func (p Policy) ForecloseAllExcept(tech attribute.PrivacyTech) Policy {
	raw := make([][]attribute.Attribute, len(p.DNF))
	for i, c := range p.DNF {
		nc := make([]attribute.Attribute, len(c))
		for j, req := range c {
			if pr, ok := req.(attribute.Privacy); ok && pr.Tech == tech {
				nc[j] = req
				continue
			}
			nc[j] = attribute.Unsatisfiable{}
		}
		raw[i] = nc
	}
	return FromClauses(raw).DealUnsat()
}

// DealUnsat drops every clause containing an Unsatisfiable attribute,
// collapsing to [[Unsatisfiable]] if nothing remains.
func (p Policy) DealUnsat() Policy {
	var kept [][]attribute.Attribute
	for _, c := range p.DNF {
		hasUnsat := false
		for _, req := range c {
			if _, ok := req.(attribute.Unsatisfiable); ok {
				hasUnsat = true
				break
			}
		}
		if !hasUnsat {
			kept = append(kept, c.raw())
		}
	}
	if len(kept) == 0 {
		kept = [][]attribute.Attribute{{attribute.Unsatisfiable{}}}
	}
	return FromClauses(kept)
}

// DealSat collapses the whole policy to [[Satisfied]] as soon as it finds a
// clause whose every attribute is Satisfied; otherwise it strips Satisfied
// attributes out of each clause, mirroring the reference implementation's
// first-match short-circuit exactly.
func (p Policy) DealSat() Policy {
	var kept [][]attribute.Attribute
	for _, c := range p.DNF {
		var nc []attribute.Attribute
		allSat := true
		for _, req := range c {
			if _, ok := req.(attribute.Satisfied); !ok {
				allSat = false
				nc = append(nc, req)
			}
		}
		if allSat {
			return FromClauses([][]attribute.Attribute{{attribute.Satisfied{}}})
		}
		kept = append(kept, nc)
	}
	return FromClauses(kept)
}

// IsSat reports whether the policy is exactly [[Satisfied]].
func (p Policy) IsSat() bool {
	if len(p.DNF) != 1 || len(p.DNF[0]) != 1 {
		return false
	}
	_, ok := p.DNF[0][0].(attribute.Satisfied)
	return ok
}

// IsUnsat reports whether the policy is exactly [[Unsatisfiable]].
func (p Policy) IsUnsat() bool {
	if len(p.DNF) != 1 || len(p.DNF[0]) != 1 {
		return false
	}
	_, ok := p.DNF[0][0].(attribute.Unsatisfiable)
	return ok
}
