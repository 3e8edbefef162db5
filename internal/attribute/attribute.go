// SPDX-License-Identifier: Apache-2.0

// Package attribute implements the closed set of policy obligations that a
// clause in a Legalease policy can carry: Satisfied, Unsatisfiable, Filter,
// Redact, Schema, Role, Purpose, and Privacy. Each is a tagged variant of the
// Attribute interface rather than a subclass, per Go convention.
package attribute

import (
	"fmt"

	"github.com/samber/oops"

	"github.com/sunblaze-ucb/privguard/internal/domain"
)

// Attribute is a single obligation carried by a policy clause. IsStricterThan
// implements the "⊑" partial order: self ⊑ other holds when other is implied
// by self. Comparing attributes of different concrete kinds is always false,
// never an error.
type Attribute interface {
	IsStricterThan(other Attribute) bool
	Cols() domain.Schema
	String() string
}

// Satisfied marks an obligation that already holds; nothing more is needed.
type Satisfied struct{}

func (Satisfied) IsStricterThan(other Attribute) bool {
	_, ok := other.(Satisfied)
	return ok
}

func (Satisfied) Cols() domain.Schema { return domain.NewSchema() }
func (Satisfied) String() string      { return "SAT" }

// Unsatisfiable marks an obligation that can never be discharged.
type Unsatisfiable struct{}

func (Unsatisfiable) IsStricterThan(other Attribute) bool {
	_, ok := other.(Unsatisfiable)
	return ok
}

func (Unsatisfiable) Cols() domain.Schema { return domain.NewSchema() }
func (Unsatisfiable) String() string      { return "UNSAT" }

// Filter requires that Col's value lie within Interval.
type Filter struct {
	Col      string
	Interval domain.Interval
}

func (f Filter) IsStricterThan(other Attribute) bool {
	o, ok := other.(Filter)
	if !ok || f.Col != o.Col {
		return false
	}
	return f.Interval.IsSubsetOf(o.Interval)
}

func (f Filter) Cols() domain.Schema { return domain.NewSchema(f.Col) }

func (f Filter) String() string {
	return "filter: " + f.Col + " " + f.Interval.String()
}

// Redact requires that Col[Left:Right] be redacted. A nil bound is open
// (unbounded on that side).
type Redact struct {
	Col         string
	Left, Right *int
}

func (r Redact) IsStricterThan(other Attribute) bool {
	o, ok := other.(Redact)
	if !ok || r.Col != o.Col {
		return false
	}
	leftOK := r.Left == nil || (o.Left != nil && *r.Left <= *o.Left)
	rightOK := r.Right == nil || (o.Right != nil && *r.Right >= *o.Right)
	return leftOK && rightOK
}

func (r Redact) Cols() domain.Schema { return domain.NewSchema(r.Col) }

func (r Redact) String() string {
	return fmt.Sprintf("redact: %s(%s:%s)", r.Col, intPtrString(r.Left), intPtrString(r.Right))
}

func intPtrString(p *int) string {
	if p == nil {
		return "None"
	}
	return fmt.Sprintf("%d", *p)
}

// SchemaAttr requires that exactly Cols remain in the projected relation.
// Comparison is exact equality: the original's imprecise schema comparison
// ("is_stricter_than" printing a warning and falling back to equality) is
// kept as exact-equality-only rather than adding an unimplemented subset
// check (see the internal/attribute entry in DESIGN.md).
type SchemaAttr struct {
	Columns domain.Schema
}

func (s SchemaAttr) IsStricterThan(other Attribute) bool {
	o, ok := other.(SchemaAttr)
	if !ok {
		return false
	}
	return s.Columns.Equal(o.Columns)
}

func (s SchemaAttr) Cols() domain.Schema { return s.Columns }
func (s SchemaAttr) String() string      { return "schema: " + s.Columns.String() }

// Role requires that the accessing principal hold the named role.
type Role struct {
	Name string
}

func (r Role) IsStricterThan(other Attribute) bool {
	o, ok := other.(Role)
	return ok && r.Name == o.Name
}

func (r Role) Cols() domain.Schema { return domain.NewSchema() }
func (r Role) String() string      { return "role: " + r.Name }

// Purpose requires that the access be for the named purpose. The original
// left is_stricter_than unimplemented ("under construction"); the analyzer
// treats two Purpose attributes as comparable only when they name the same
// purpose, mirroring Role.
type Purpose struct {
	Name string
}

func (p Purpose) IsStricterThan(other Attribute) bool {
	o, ok := other.(Purpose)
	return ok && p.Name == o.Name
}

func (p Purpose) Cols() domain.Schema { return domain.NewSchema() }
func (p Purpose) String() string      { return "purpose: " + p.Name }

// PrivacyTech is the closed set of privacy techniques a Privacy attribute may
// name.
type PrivacyTech string

const (
	Anonymization PrivacyTech = "Anonymization"
	Aggregation   PrivacyTech = "Aggregation"
	KAnonymity    PrivacyTech = "k-anonymity"
	LDiversity    PrivacyTech = "l-diversity"
	TCloseness    PrivacyTech = "t-closeness"
	DP            PrivacyTech = "DP"
)

// Privacy requires that data be processed under the named privacy technique,
// parameterized per-technique (K for k-anonymity, L for l-diversity, T for
// t-closeness, Eps/Delta for differential privacy).
type Privacy struct {
	Tech       PrivacyTech
	K, L, T    *int
	Eps, Delta *float64
}

// NewPrivacy validates tech and builds a Privacy attribute, mirroring
// PrivacyAttribute.__init__'s ValueError on an unrecognized technique.
func NewPrivacy(tech PrivacyTech, k, l, t *int, eps, delta *float64) (Privacy, error) {
	switch tech {
	case Anonymization, Aggregation, KAnonymity, LDiversity, TCloseness, DP:
		return Privacy{Tech: tech, K: k, L: l, T: t, Eps: eps, Delta: delta}, nil
	default:
		return Privacy{}, oops.
			Code("UNSUPPORTED_PRIVACY_TECH").
			With("tech", string(tech)).
			Errorf("invalid or unsupported privacy technique %q", tech)
	}
}

func (p Privacy) IsStricterThan(other Attribute) bool {
	o, ok := other.(Privacy)
	if !ok || p.Tech != o.Tech {
		return false
	}
	switch p.Tech {
	case KAnonymity:
		return p.K != nil && o.K != nil && *p.K >= *o.K
	case LDiversity, TCloseness:
		// The original raises NotImplementedError for these techniques;
		// the analyzer conservatively treats them as incomparable.
		return false
	case DP:
		return p.Eps != nil && o.Eps != nil && p.Delta != nil && o.Delta != nil &&
			*p.Eps < *o.Eps && *p.Delta < *o.Delta
	default:
		return true
	}
}

func (p Privacy) Cols() domain.Schema { return domain.NewSchema() }

func (p Privacy) String() string {
	switch p.Tech {
	case KAnonymity:
		return fmt.Sprintf("privacy: %d-anonymity", intDeref(p.K))
	case LDiversity:
		return fmt.Sprintf("privacy: %d-diversity", intDeref(p.L))
	case TCloseness:
		return fmt.Sprintf("privacy: %d-closeness", intDeref(p.T))
	case DP:
		return fmt.Sprintf("privacy: DP (%v, %v)", floatDeref(p.Eps), floatDeref(p.Delta))
	default:
		return "privacy: " + string(p.Tech)
	}
}

func intDeref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func floatDeref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
