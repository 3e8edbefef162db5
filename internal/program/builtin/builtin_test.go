// SPDX-License-Identifier: Apache-2.0

package builtin_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunblaze-ucb/privguard/internal/program/builtin"
	"github.com/sunblaze-ucb/privguard/internal/surrogate"
)

// writeSubdataset writes a policy.txt/meta.txt/data.csv triple under
// dataFolder/subdir, mirroring the spec §6 file layout for one dataset.
func writeSubdataset(t *testing.T, dataFolder, subdir, policySrc, schemaLine string, rows int) {
	t.Helper()
	dir := filepath.Join(dataFolder, subdir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "policy.txt"), []byte(policySrc), 0o644))
	meta := schemaLine + "\n" + itoa(rows) + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meta.txt"), []byte(meta), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.csv"), []byte("ignored\n"), 0o644))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func TestEHR_MergesFiltersAndAggregates(t *testing.T) {
	dataFolder := t.TempDir()
	writeSubdataset(t, dataFolder, "patients",
		"ALLOW FILTER AGE >= 18 AND SCHEMA ID,CONSENT,GENDER,RACE,AGE",
		`"ID","CONSENT","GENDER","RACE","AGE"`, 50)
	writeSubdataset(t, dataFolder, "conditions",
		"ALLOW SCHEMA ID,DESCRIPTION",
		`"ID","DESCRIPTION"`, 200)

	libs := surrogate.New()
	result, err := builtin.EHR(context.Background(), libs, dataFolder)
	require.NoError(t, err)
	require.NotNil(t, result)
	// The AGE filter discharges the age obligation, but the merged frame
	// declares no Aggregation obligation, so GroupBy forecloses the remaining
	// SCHEMA obligations to Unsatisfiable (everything except a matching
	// Aggregation attribute is foreclosed by GroupBy).
	assert.True(t, result.PolicyOf().IsUnsat())
}

func TestEHR_PropagatesReadCSVError(t *testing.T) {
	dataFolder := t.TempDir()
	// conditions/ deliberately missing.
	writeSubdataset(t, dataFolder, "patients", "ALLOW ROLE analyst", `"ID"`, 1)

	libs := surrogate.New()
	_, err := builtin.EHR(context.Background(), libs, dataFolder)
	require.Error(t, err)
}

func TestTransactionPrediction_FitsOnVarPrefixedFeatures(t *testing.T) {
	dataFolder := t.TempDir()
	writeSubdataset(t, dataFolder, "train",
		"ALLOW PRIVACY Aggregation",
		`"var_0","var_1","target"`, 1000)

	libs := surrogate.New()
	result, err := builtin.TransactionPrediction(context.Background(), libs, dataFolder)
	require.NoError(t, err)
	// Fitting discharges the sole Aggregation obligation declared on the
	// training set.
	assert.True(t, result.PolicyOf().IsSat())
}

func TestWebTrafficForecast_CarriesSeriesPolicy(t *testing.T) {
	dataFolder := t.TempDir()
	writeSubdataset(t, dataFolder, "traffic", "ALLOW ROLE analyst", `"hits","date"`, 365)

	libs := surrogate.New()
	result, err := builtin.WebTrafficForecast(context.Background(), libs, dataFolder)
	require.NoError(t, err)
	// Arima never discharges a Role obligation: the forecast still carries
	// whatever the series' own policy declared.
	assert.Contains(t, result.PolicyOf().String(), "role: analyst")
}

func TestCustomerSatisfaction_SplitsFitsAndScores(t *testing.T) {
	dataFolder := t.TempDir()
	writeSubdataset(t, dataFolder, "survey",
		"ALLOW PRIVACY Aggregation",
		`"feature_0","satisfied"`, 500)

	libs := surrogate.New()
	result, err := builtin.CustomerSatisfaction(context.Background(), libs, dataFolder)
	require.NoError(t, err)
	require.NotNil(t, result)
}
