// SPDX-License-Identifier: Apache-2.0

// Package builtin holds the CLI's built-in analyst programs: native Go
// reimplementations of the original examples (spec §6), since the program
// loader itself (dynamic loading of analyst-supplied code) is an explicit
// external collaborator out of scope for this analyzer.
package builtin

import (
	"context"
	"path/filepath"

	"github.com/sunblaze-ucb/privguard/internal/extval"
	"github.com/sunblaze-ucb/privguard/internal/surrogate"
	"github.com/sunblaze-ucb/privguard/internal/surrogate/pandas"
	"github.com/sunblaze-ucb/privguard/internal/tabular"
)

// EHR reimplements ehr_example.py: merge a patients and a conditions
// dataset, filter to consenting, viral-sinusitis, male, adult records, and
// aggregate by race.
func EHR(ctx context.Context, libs surrogate.Libraries, dataFolder string) (tabular.Carrier, error) {
	pd := libs.Pandas

	patients, err := pd.ReadCSV(ctx, filepath.Join(dataFolder, "patients", "data.csv"))
	if err != nil {
		return nil, err
	}
	conditions, err := pd.ReadCSV(ctx, filepath.Join(dataFolder, "conditions", "data.csv"))
	if err != nil {
		return nil, err
	}

	ehr := pd.Merge(patients, conditions)

	ehr, err = filterEQ(pd, ehr, "CONSENT", extval.StrVal("Y"))
	if err != nil {
		return nil, err
	}
	ehr, err = filterEQ(pd, ehr, "DESCRIPTION", extval.StrVal("ViralSinusitisDisorder"))
	if err != nil {
		return nil, err
	}
	ehr, err = filterEQ(pd, ehr, "GENDER", extval.StrVal("M"))
	if err != nil {
		return nil, err
	}
	ehr, err = filterGE(pd, ehr, "AGE", extval.IntVal(18))
	if err != nil {
		return nil, err
	}

	grouped := pd.GroupBy(ehr)
	return grouped.Count(), nil
}

// filterEQ implements `df = df[df.col == value]`.
func filterEQ(pd *pandas.Library, df *tabular.DataFrame, col string, v extval.Value) (*tabular.DataFrame, error) {
	s, err := pd.Col(df, col)
	if err != nil {
		return nil, err
	}
	s, err = s.CompareEQ(v)
	if err != nil {
		return nil, err
	}
	return pd.IndexBySeries(df, s)
}

// filterGE implements `df = df[df.col >= value]`.
func filterGE(pd *pandas.Library, df *tabular.DataFrame, col string, v extval.Value) (*tabular.DataFrame, error) {
	s, err := pd.Col(df, col)
	if err != nil {
		return nil, err
	}
	s, err = s.CompareGE(v)
	if err != nil {
		return nil, err
	}
	return pd.IndexBySeries(df, s)
}
