// SPDX-License-Identifier: Apache-2.0

// Package lightgbm implements the surrogate operation library bound to the
// analyst program's "lightgbm" name: a Dataset wrapper and an
// LGBMClassifier whose Fit/Predict apply the training/inference policy
// effect from spec §4.7, grounded on stub_lightgbm.py.
package lightgbm

import (
	"github.com/sunblaze-ucb/privguard/internal/attribute"
	"github.com/sunblaze-ucb/privguard/internal/policy"
	"github.com/sunblaze-ucb/privguard/internal/tabular"
)

// Dataset wraps a feature Carrier the way lightgbm.Dataset wraps a pandas
// DataFrame, carrying the same residual policy.
type Dataset struct {
	Data   tabular.Carrier
	Policy policy.Policy
}

// NewDataset builds a Dataset over data, inheriting its policy.
func NewDataset(data tabular.Carrier) *Dataset {
	return &Dataset{Data: data, Policy: data.PolicyOf()}
}

func (d *Dataset) PolicyOf() policy.Policy { return d.Policy }

// LGBMClassifier models gradient-boosted classification. Fit and Predict
// are the only methods with a policy effect; everything else about model
// configuration is irrelevant to the analysis.
type LGBMClassifier struct {
	trainPolicy policy.Policy
	fitted      bool
}

// NewLGBMClassifier constructs an unfitted classifier.
func NewLGBMClassifier() *LGBMClassifier { return &LGBMClassifier{} }

// Fit trains on X/y, discharging the Aggregation privacy obligation the way
// a trained model summarizes many rows into bounded statistics. The
// training policy (joined X and y, post-discharge) is retained so Predict
// can join it back into any downstream result.
func (c *LGBMClassifier) Fit(x, y tabular.Carrier) tabular.Blackbox {
	trained := x.PolicyOf().Join(y.PolicyOf()).RunPrivacy(attribute.Aggregation, nil, nil, nil)
	c.trainPolicy = trained
	c.fitted = true
	return tabular.Blackbox{Policy: trained}
}

// Predict joins the retained training policy with the policy of new input
// data, modeling that predictions still depend on everything the model was
// trained on.
func (c *LGBMClassifier) Predict(x tabular.Carrier) tabular.NdArray {
	if !c.fitted {
		return tabular.NdArray{Policy: x.PolicyOf()}
	}
	return tabular.NdArray{Policy: c.trainPolicy.Join(x.PolicyOf())}
}

// Booster is the lower-level trained-model handle produced by Train,
// mirroring stub_lightgbm.Booster.
type Booster struct {
	Policy policy.Policy
}

// Train builds a Booster from a Dataset, inheriting its policy.
func Train(trainSet *Dataset) *Booster {
	return &Booster{Policy: trainSet.Policy}
}

// Predict joins the Booster's training policy with the input data's policy.
func (b *Booster) Predict(data tabular.Carrier) tabular.NdArray {
	return tabular.NdArray{Policy: b.Policy.Join(data.PolicyOf())}
}
