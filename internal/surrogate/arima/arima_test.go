// SPDX-License-Identifier: Apache-2.0

package arima_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sunblaze-ucb/privguard/internal/attribute"
	"github.com/sunblaze-ucb/privguard/internal/policy"
	"github.com/sunblaze-ucb/privguard/internal/surrogate/arima"
	"github.com/sunblaze-ucb/privguard/internal/tabular"
)

func TestForecast_CarriesTrainingPolicy(t *testing.T) {
	series := tabular.NdArray{Policy: policy.FromClauses([][]attribute.Attribute{{attribute.Role{Name: "A"}}})}

	model := arima.NewModel()
	model.Fit(series)
	forecast := model.Forecast()
	assert.Equal(t, series.Policy.String(), forecast.Policy.String())
}

func TestForecast_BeforeFitIsSat(t *testing.T) {
	model := arima.NewModel()
	assert.True(t, model.Forecast().Policy.IsSat())
}
