// SPDX-License-Identifier: Apache-2.0

package builtin

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/sunblaze-ucb/privguard/internal/surrogate"
	"github.com/sunblaze-ucb/privguard/internal/tabular"
)

// TransactionPrediction reimplements trans_pred_example.py (also shipped as
// 5_customer_transaction_prediction.py): select every "var"-prefixed
// feature column plus the "target" column out of a training set, and fit a
// LightGBM classifier against them.
func TransactionPrediction(ctx context.Context, libs surrogate.Libraries, dataFolder string) (tabular.Carrier, error) {
	pd := libs.Pandas

	trainDF, err := pd.ReadCSV(ctx, filepath.Join(dataFolder, "train", "data.csv"))
	if err != nil {
		return nil, err
	}

	var featureCols []string
	for _, col := range trainDF.Schema.Cols() {
		if strings.HasPrefix(col, "var") {
			featureCols = append(featureCols, col)
		}
	}
	features, err := pd.Cols(trainDF, featureCols)
	if err != nil {
		return nil, err
	}
	target, err := pd.Col(trainDF, "target")
	if err != nil {
		return nil, err
	}

	clf := libs.NewLGBMClassifier()
	return clf.Fit(features.Values(), target.Values()), nil
}
