// SPDX-License-Identifier: Apache-2.0

package tabular_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunblaze-ucb/privguard/internal/domain"
	"github.com/sunblaze-ucb/privguard/internal/errutil"
	"github.com/sunblaze-ucb/privguard/internal/extval"
	"github.com/sunblaze-ucb/privguard/internal/policy"
	"github.com/sunblaze-ucb/privguard/internal/tabular"
)

func TestSeries_CompareProducesInterval(t *testing.T) {
	df := &tabular.DataFrame{Schema: domain.NewSchema("age"), Policy: policy.Top()}
	s := &tabular.Series{Column: "age", Parent: df, Policy: policy.Top()}

	ge, err := s.CompareGE(extval.IntVal(18))
	require.NoError(t, err)
	require.NotNil(t, ge.Interval)
	assert.True(t, ge.Interval.Lower.Equal(extval.Of(extval.IntVal(18))))
	assert.True(t, ge.Interval.Upper.IsPosInf())
}

func TestSeries_ReCompareIsInvalidReuse(t *testing.T) {
	df := &tabular.DataFrame{Schema: domain.NewSchema("age")}
	iv := domain.NewInterval(extval.Of(extval.IntVal(18)), extval.PosInf)
	s := &tabular.Series{Column: "age", Parent: df, Interval: &iv}

	_, err := s.CompareLE(extval.IntVal(30))
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "INVALID_REUSE")
}

func TestBlackbox_JoinFoldsPolicies(t *testing.T) {
	bb := tabular.Blackbox{Policy: policy.Top()}
	other := tabular.NdArray{Policy: policy.Top()}
	joined := bb.Join(other)
	assert.True(t, joined.Policy.IsSat())
}

func TestCrossFrameSeriesError(t *testing.T) {
	err := tabular.NewCrossFrameSeries("age")
	errutil.AssertErrorCode(t, err, "CROSS_FRAME_SERIES")
}
