// SPDX-License-Identifier: Apache-2.0

// Package policy implements the Legalease policy tree: conjunctive clauses,
// their disjunction in DNF, and the discharge operations that rewrite a
// policy as the analyzed program demonstrates obligations are met.
package policy

import "github.com/sunblaze-ucb/privguard/internal/attribute"

// Clause is a conjunction of attributes: every element must hold for the
// clause to be satisfied.
type Clause []attribute.Attribute

// Add appends req to the clause unless some existing attribute is already
// at least as strict, in which case the clause is returned unchanged. Add
// never removes an attribute that req would dominate — over-approximation
// is safe, per the algebra's rationale.
func (c Clause) Add(req attribute.Attribute) Clause {
	for _, existing := range c {
		if existing.IsStricterThan(req) {
			return c
		}
	}
	out := make(Clause, len(c), len(c)+1)
	copy(out, c)
	return append(out, req)
}

func (c Clause) raw() []attribute.Attribute { return []attribute.Attribute(c) }
