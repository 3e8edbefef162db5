// SPDX-License-Identifier: Apache-2.0

package dsl

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/oops"

	"github.com/sunblaze-ucb/privguard/internal/attribute"
	"github.com/sunblaze-ucb/privguard/internal/policy"
)

var pragmaPattern = regexp.MustCompile(`(?m)^\s*#!\s*grammar\s+(\S+)\s*\r?\n`)

// engineGrammarConstraint accepts any policy declaring a grammar version
// compatible with the engine's GrammarVersion under semver caret rules.
var engineGrammarConstraint = mustConstraint("^" + GrammarVersion)

func mustConstraint(expr string) *semver.Constraints {
	c, err := semver.NewConstraint(expr)
	if err != nil {
		panic(err)
	}
	return c
}

// Parse parses Legalease policy source into a canonicalized Policy. An
// optional leading `#! grammar <semver>` pragma is checked against the
// engine's declared grammar version before the policy body is parsed.
func Parse(src string) (policy.Policy, error) {
	body := src
	if m := pragmaPattern.FindStringSubmatch(src); m != nil {
		v, err := semver.NewVersion(m[1])
		if err != nil {
			return policy.Policy{}, oops.
				Code("PARSE_ERROR").
				With("pragma_version", m[1]).
				Wrapf(err, "invalid grammar version pragma")
		}
		if !engineGrammarConstraint.Check(v) {
			return policy.Policy{}, oops.
				Code("PARSE_ERROR").
				With("pragma_version", v.String()).
				With("engine_grammar_version", GrammarVersion).
				Errorf("policy declares grammar version %s, incompatible with engine grammar %s", v, GrammarVersion)
		}
		body = strings.TrimPrefix(src, m[0])
	}

	parser, err := newParser()
	if err != nil {
		return policy.Policy{}, oops.Code("PARSE_ERROR").Wrapf(err, "failed to build policy parser")
	}

	doc, err := parser.ParseString("", body)
	if err != nil {
		return policy.Policy{}, oops.Code("PARSE_ERROR").Wrapf(err, "failed to parse policy")
	}

	var raw [][]attribute.Attribute
	for _, clause := range doc.Clauses {
		dnf, err := exprToDNF(clause.Expr)
		if err != nil {
			return policy.Policy{}, err
		}
		raw = append(raw, dnf...)
	}
	return policy.FromClauses(raw), nil
}
