// SPDX-License-Identifier: Apache-2.0

// Package sklearn implements the optional `sklearn.metrics` and
// `sklearn.model_selection` surrogate bindings (spec §6). Neither submodule
// was modeled in detail by the original (stub_sklearn.py is imported by the
// reference examples but never exercises a privacy-relevant branch), so
// every function here is an intentionally minimal Blackbox-producing shim:
// it joins its inputs' policies and sinks the result, same as an
// unmodeled numpy transform.
package sklearn

import "github.com/sunblaze-ucb/privguard/internal/tabular"

// Metrics is the `sklearn.metrics` surrogate binding.
type Metrics struct{}

// NewMetrics constructs a Metrics binding.
func NewMetrics() *Metrics { return &Metrics{} }

// Score joins the policies of predicted and true labels into a Blackbox,
// standing in for accuracy/F1/AUC and any other scalar metric.
func (*Metrics) Score(yTrue, yPred tabular.Carrier) tabular.Blackbox {
	return tabular.Blackbox{Policy: yTrue.PolicyOf().Join(yPred.PolicyOf())}
}

// ModelSelection is the `sklearn.model_selection` surrogate binding.
type ModelSelection struct{}

// NewModelSelection constructs a ModelSelection binding.
func NewModelSelection() *ModelSelection { return &ModelSelection{} }

// TrainTestSplit returns two Blackboxes both carrying X's (and, if
// provided, y's) joined policy: splitting rows cannot discharge any
// obligation, so both halves carry everything the whole did.
func (*ModelSelection) TrainTestSplit(x tabular.Carrier, y tabular.Carrier) (train, test tabular.Blackbox) {
	p := x.PolicyOf()
	if y != nil {
		p = p.Join(y.PolicyOf())
	}
	return tabular.Blackbox{Policy: p}, tabular.Blackbox{Policy: p}
}
