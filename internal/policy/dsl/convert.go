// SPDX-License-Identifier: Apache-2.0

package dsl

import (
	"strconv"

	"github.com/samber/oops"

	"github.com/sunblaze-ucb/privguard/internal/attribute"
	"github.com/sunblaze-ucb/privguard/internal/domain"
	"github.com/sunblaze-ucb/privguard/internal/extval"
)

// exprToDNF converts a parsed expression tree to disjunctive normal form,
// distributing AND over OR exactly as clause2DNF does: AND binds tighter,
// and both operators are right-associative in the grammar already, so the
// tree shape alone determines the distribution order.
func exprToDNF(e *Expr) ([][]attribute.Attribute, error) {
	return orToDNF(e.Or)
}

func orToDNF(o *OrExpr) ([][]attribute.Attribute, error) {
	left, err := andToDNF(o.Left)
	if err != nil {
		return nil, err
	}
	if o.Right == nil {
		return left, nil
	}
	right, err := orToDNF(o.Right)
	if err != nil {
		return nil, err
	}
	return append(left, right...), nil
}

func andToDNF(a *AndExpr) ([][]attribute.Attribute, error) {
	left, err := primaryToDNF(a.Left)
	if err != nil {
		return nil, err
	}
	if a.Right == nil {
		return left, nil
	}
	right, err := andToDNF(a.Right)
	if err != nil {
		return nil, err
	}
	result := make([][]attribute.Attribute, 0, len(left)*len(right))
	for _, lv := range left {
		for _, rv := range right {
			conj := make([]attribute.Attribute, 0, len(lv)+len(rv))
			conj = append(conj, lv...)
			conj = append(conj, rv...)
			result = append(result, conj)
		}
	}
	return result, nil
}

func primaryToDNF(p *Primary) ([][]attribute.Attribute, error) {
	if p.Attr != nil {
		a, err := attrNodeToAttribute(p.Attr)
		if err != nil {
			return nil, err
		}
		return [][]attribute.Attribute{{a}}, nil
	}
	return exprToDNF(p.SubExpr)
}

func attrNodeToAttribute(n *AttrNode) (attribute.Attribute, error) {
	switch {
	case n.Filter != nil:
		return filterNodeToAttribute(n.Filter)
	case n.Redact != nil:
		return redactNodeToAttribute(n.Redact)
	case n.Schema != nil:
		return attribute.SchemaAttr{Columns: domain.NewSchema(n.Schema.Cols...)}, nil
	case n.Privacy != nil:
		return privacyNodeToAttribute(n.Privacy)
	case n.Role != nil:
		return attribute.Role{Name: n.Role.Name}, nil
	case n.Purpose != nil:
		return attribute.Purpose{Name: n.Purpose.Name}, nil
	default:
		return nil, oops.Code("PARSE_ERROR").Errorf("empty attribute node")
	}
}

func filterNodeToAttribute(n *FilterNode) (attribute.Attribute, error) {
	var iv domain.Interval
	switch n.Comparator {
	case "==":
		v, err := parseFilterValue(n.Value)
		if err != nil {
			return nil, err
		}
		ev := extval.Of(v)
		iv = domain.NewInterval(ev, ev)
	case "<=":
		v, err := parseFilterValue(n.Value)
		if err != nil {
			return nil, err
		}
		iv = domain.NewInterval(extval.NegInf, extval.Of(v))
	case ">=":
		v, err := parseFilterValue(n.Value)
		if err != nil {
			return nil, err
		}
		iv = domain.NewInterval(extval.Of(v), extval.PosInf)
	default:
		return nil, oops.
			Code("UNSUPPORTED_OPERATOR").
			With("operator", n.Comparator).
			Errorf("comparator %q is reserved and not implemented", n.Comparator)
	}
	return attribute.Filter{Col: n.Col, Interval: iv}, nil
}

func parseFilterValue(v *FilterValue) (extval.Value, error) {
	switch {
	case v.Int != nil:
		i, err := strconv.ParseInt(*v.Int, 10, 64)
		if err != nil {
			return nil, oops.Code("PARSE_ERROR").Wrapf(err, "invalid integer literal %q", *v.Int)
		}
		return extval.IntVal(i), nil
	case v.Str != nil:
		return extval.StrVal(*v.Str), nil
	default:
		return nil, oops.Code("PARSE_ERROR").Errorf("empty filter value")
	}
}

func redactNodeToAttribute(n *RedactNode) (attribute.Attribute, error) {
	left, err := parseOptionalInt(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := parseOptionalInt(n.Right)
	if err != nil {
		return nil, err
	}
	return attribute.Redact{Col: n.Col, Left: left, Right: right}, nil
}

func parseOptionalInt(s *string) (*int, error) {
	if s == nil {
		return nil, nil
	}
	i, err := strconv.Atoi(*s)
	if err != nil {
		return nil, oops.Code("PARSE_ERROR").Wrapf(err, "invalid integer literal %q", *s)
	}
	return &i, nil
}

func privacyNodeToAttribute(n *PrivacyNode) (attribute.Attribute, error) {
	var (
		p   attribute.Privacy
		err error
	)
	switch {
	case n.Anonymization:
		p, err = attribute.NewPrivacy(attribute.Anonymization, nil, nil, nil, nil, nil)
	case n.Aggregation:
		p, err = attribute.NewPrivacy(attribute.Aggregation, nil, nil, nil, nil, nil)
	case n.KAnonymity != nil:
		var k int
		if k, err = strconv.Atoi(*n.KAnonymity); err != nil {
			return nil, oops.Code("PARSE_ERROR").Wrapf(err, "invalid k-anonymity parameter %q", *n.KAnonymity)
		}
		p, err = attribute.NewPrivacy(attribute.KAnonymity, &k, nil, nil, nil, nil)
	case n.LDiversity != nil:
		var l int
		if l, err = strconv.Atoi(*n.LDiversity); err != nil {
			return nil, oops.Code("PARSE_ERROR").Wrapf(err, "invalid l-diversity parameter %q", *n.LDiversity)
		}
		p, err = attribute.NewPrivacy(attribute.LDiversity, nil, &l, nil, nil, nil)
	case n.TCloseness != nil:
		var tc int
		if tc, err = strconv.Atoi(*n.TCloseness); err != nil {
			return nil, oops.Code("PARSE_ERROR").Wrapf(err, "invalid t-closeness parameter %q", *n.TCloseness)
		}
		p, err = attribute.NewPrivacy(attribute.TCloseness, nil, nil, &tc, nil, nil)
	case n.DP != nil:
		eps, perr := strconv.ParseFloat(n.DP.Eps, 64)
		if perr != nil {
			return nil, oops.Code("PARSE_ERROR").Wrapf(perr, "invalid DP epsilon %q", n.DP.Eps)
		}
		delta, derr := strconv.ParseFloat(n.DP.Delta, 64)
		if derr != nil {
			return nil, oops.Code("PARSE_ERROR").Wrapf(derr, "invalid DP delta %q", n.DP.Delta)
		}
		p, err = attribute.NewPrivacy(attribute.DP, nil, nil, nil, &eps, &delta)
	default:
		return nil, oops.Code("PARSE_ERROR").Errorf("empty privacy node")
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
