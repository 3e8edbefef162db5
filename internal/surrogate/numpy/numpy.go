// SPDX-License-Identifier: Apache-2.0

// Package numpy implements the surrogate operation library bound to the
// analyst program's "numpy" name: every function sinks its arguments'
// policies into a Blackbox, grounded on stub_numpy.py.
package numpy

import (
	"github.com/sunblaze-ucb/privguard/internal/policy"
	"github.com/sunblaze-ucb/privguard/internal/tabular"
)

// Library is the numpy surrogate binding injected into analyst programs.
type Library struct{}

// New constructs a numpy Library.
func New() *Library { return &Library{} }

// Sum joins the policies of every element, mirroring stub_numpy.sum's
// iterative policy.join over its argument. An empty slice yields the
// trivially satisfied policy.
func (*Library) Sum(a []tabular.Carrier) tabular.Blackbox {
	if len(a) == 0 {
		return tabular.Blackbox{Policy: policy.Top()}
	}
	p := a[0].PolicyOf()
	for _, c := range a[1:] {
		p = p.Join(c.PolicyOf())
	}
	return tabular.Blackbox{Policy: p}
}

// Tanh, Log, Log1p, Exp, and Expm1 all pass their argument's policy through
// unchanged into a Blackbox (the numeric transform is elementwise and
// policy-preserving).
func (*Library) Tanh(x tabular.Carrier) tabular.Blackbox  { return tabular.Blackbox{Policy: x.PolicyOf()} }
func (*Library) Log(x tabular.Carrier) tabular.Blackbox   { return tabular.Blackbox{Policy: x.PolicyOf()} }
func (*Library) Log1p(x tabular.Carrier) tabular.Blackbox { return tabular.Blackbox{Policy: x.PolicyOf()} }
func (*Library) Exp(x tabular.Carrier) tabular.Blackbox   { return tabular.Blackbox{Policy: x.PolicyOf()} }
func (*Library) Expm1(x tabular.Carrier) tabular.Blackbox { return tabular.Blackbox{Policy: x.PolicyOf()} }

// Corrcoef joins the policies of its two arguments.
func (*Library) Corrcoef(x, y tabular.Carrier) tabular.Blackbox {
	return tabular.Blackbox{Policy: x.PolicyOf().Join(y.PolicyOf())}
}
