// SPDX-License-Identifier: Apache-2.0

package builtin

import (
	"context"
	"path/filepath"

	"github.com/sunblaze-ucb/privguard/internal/surrogate"
	"github.com/sunblaze-ucb/privguard/internal/tabular"
)

// WebTrafficForecast is one of the two examples the registry supplies in
// addition to the two carried over from the original (spec §6): it has no
// original_source/ counterpart, so it is invented in the teacher's idiom,
// exercising the optional `arima` binding the original stub imports but
// never meaningfully exercises. It forecasts a single "hits" series from a
// day-by-day web traffic log.
func WebTrafficForecast(ctx context.Context, libs surrogate.Libraries, dataFolder string) (tabular.Carrier, error) {
	pd := libs.Pandas

	traffic, err := pd.ReadCSV(ctx, filepath.Join(dataFolder, "traffic", "data.csv"))
	if err != nil {
		return nil, err
	}
	hits, err := pd.Col(traffic, "hits")
	if err != nil {
		return nil, err
	}

	model := libs.NewArimaModel()
	model.Fit(hits)
	return model.Forecast(), nil
}
