// SPDX-License-Identifier: Apache-2.0

// Package surrogate bundles the per-library surrogate bindings (pandas,
// numpy, lightgbm, and the optional sklearn/arima bindings) that the
// analyzer injects into an analyst Program, mirroring the original's
// `run(data_folder, **libs)` library-injection contract (spec §6).
package surrogate

import (
	"github.com/sunblaze-ucb/privguard/internal/surrogate/arima"
	"github.com/sunblaze-ucb/privguard/internal/surrogate/lightgbm"
	"github.com/sunblaze-ucb/privguard/internal/surrogate/numpy"
	"github.com/sunblaze-ucb/privguard/internal/surrogate/pandas"
	"github.com/sunblaze-ucb/privguard/internal/surrogate/sklearn"
)

// SklearnBindings groups the two optional sklearn submodules spec §6 names.
type SklearnBindings struct {
	Metrics        *sklearn.Metrics
	ModelSelection *sklearn.ModelSelection
}

// Libraries is the full set of surrogate library bindings available to an
// analyst Program. Pandas, Numpy, and the LightGBM/Arima constructors are
// always available ("at minimum", per spec §6, plus the optional bindings,
// which cost nothing to always provide since a Program simply never calls
// the ones it doesn't need).
type Libraries struct {
	Pandas  *pandas.Library
	Numpy   *numpy.Library
	Sklearn SklearnBindings
}

// New builds the default Libraries bundle injected into every analyzed
// Program.
func New() Libraries {
	return Libraries{
		Pandas: pandas.New(),
		Numpy:  numpy.New(),
		Sklearn: SklearnBindings{
			Metrics:        sklearn.NewMetrics(),
			ModelSelection: sklearn.NewModelSelection(),
		},
	}
}

// NewLGBMClassifier constructs the `lightgbm.LGBMClassifier` binding.
// LightGBM's surface is a single model class rather than a namespace of
// free functions, so it's exposed as a constructor instead of a field.
func (Libraries) NewLGBMClassifier() *lightgbm.LGBMClassifier { return lightgbm.NewLGBMClassifier() }

// NewArimaModel constructs the optional `arima.ARIMA`-equivalent binding.
func (Libraries) NewArimaModel() *arima.Model { return arima.NewModel() }
