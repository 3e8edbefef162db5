// SPDX-License-Identifier: Apache-2.0

package sklearn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sunblaze-ucb/privguard/internal/attribute"
	"github.com/sunblaze-ucb/privguard/internal/policy"
	"github.com/sunblaze-ucb/privguard/internal/surrogate/sklearn"
	"github.com/sunblaze-ucb/privguard/internal/tabular"
)

func TestScore_JoinsBothPolicies(t *testing.T) {
	yTrue := tabular.NdArray{Policy: policy.FromClauses([][]attribute.Attribute{{attribute.Role{Name: "A"}}})}
	yPred := tabular.NdArray{Policy: policy.FromClauses([][]attribute.Attribute{{attribute.Role{Name: "B"}}})}

	metrics := sklearn.NewMetrics()
	result := metrics.Score(yTrue, yPred)
	assert.Len(t, result.Policy.DNF[0], 2)
}

func TestTrainTestSplit_BothHalvesCarryFullPolicy(t *testing.T) {
	x := tabular.NdArray{Policy: policy.FromClauses([][]attribute.Attribute{{attribute.Role{Name: "A"}}})}
	y := tabular.NdArray{Policy: policy.FromClauses([][]attribute.Attribute{{attribute.Role{Name: "B"}}})}

	ms := sklearn.NewModelSelection()
	train, test := ms.TrainTestSplit(x, y)
	assert.Equal(t, train.Policy.String(), test.Policy.String())
	assert.Len(t, train.Policy.DNF[0], 2)
}
