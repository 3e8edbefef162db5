// SPDX-License-Identifier: Apache-2.0

// Package arima implements the optional `arima` surrogate binding (spec
// §6). Like sklearn, the original never models this library's internals in
// detail (stub_arima.py is imported by the forecasting example but every
// call immediately sinks to a Blackbox), so this is an intentionally
// minimal Blackbox-producing shim.
package arima

import (
	"github.com/sunblaze-ucb/privguard/internal/policy"
	"github.com/sunblaze-ucb/privguard/internal/tabular"
)

// Model is the `arima.ARIMA`-equivalent surrogate binding: fitting and
// forecasting both fold their inputs' policies into an opaque result.
type Model struct {
	trainPolicy policy.Policy
	fitted      bool
}

// NewModel constructs an unfitted ARIMA model surrogate.
func NewModel() *Model { return &Model{} }

// Fit trains on series, retaining its policy for Forecast.
func (m *Model) Fit(series tabular.Carrier) tabular.Blackbox {
	m.trainPolicy = series.PolicyOf()
	m.fitted = true
	return tabular.Blackbox{Policy: m.trainPolicy}
}

// Forecast returns the retained training policy, modeling that a forecast
// still depends on everything the model saw.
func (m *Model) Forecast() tabular.Blackbox {
	if !m.fitted {
		return tabular.Blackbox{Policy: policy.Top()}
	}
	return tabular.Blackbox{Policy: m.trainPolicy}
}
