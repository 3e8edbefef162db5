// SPDX-License-Identifier: Apache-2.0

package builtin

import (
	"context"
	"path/filepath"

	"github.com/sunblaze-ucb/privguard/internal/surrogate"
	"github.com/sunblaze-ucb/privguard/internal/tabular"
)

// CustomerSatisfaction is the second of the two registry-only examples
// (spec §6); it has no original_source/ counterpart either, so it is
// invented to exercise the optional `sklearn.model_selection` and
// `sklearn.metrics` bindings: a train/test split followed by a LightGBM fit
// and a held-out score.
func CustomerSatisfaction(ctx context.Context, libs surrogate.Libraries, dataFolder string) (tabular.Carrier, error) {
	pd := libs.Pandas

	survey, err := pd.ReadCSV(ctx, filepath.Join(dataFolder, "survey", "data.csv"))
	if err != nil {
		return nil, err
	}
	target, err := pd.Col(survey, "satisfied")
	if err != nil {
		return nil, err
	}
	features, err := pd.Drop(survey, []string{"satisfied"})
	if err != nil {
		return nil, err
	}

	train, test := libs.Sklearn.ModelSelection.TrainTestSplit(features, target)

	clf := libs.NewLGBMClassifier()
	clf.Fit(train, train)
	predicted := clf.Predict(test)

	return libs.Sklearn.Metrics.Score(test, predicted), nil
}
