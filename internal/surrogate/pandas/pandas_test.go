// SPDX-License-Identifier: Apache-2.0

package pandas_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunblaze-ucb/privguard/internal/attribute"
	"github.com/sunblaze-ucb/privguard/internal/domain"
	"github.com/sunblaze-ucb/privguard/internal/errutil"
	"github.com/sunblaze-ucb/privguard/internal/extval"
	"github.com/sunblaze-ucb/privguard/internal/policy"
	"github.com/sunblaze-ucb/privguard/internal/surrogate/pandas"
	"github.com/sunblaze-ucb/privguard/internal/tabular"
)

func writeDataset(t *testing.T, policySrc, schemaLine string, rows int) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "policy.txt"), []byte(policySrc), 0o644))
	meta := schemaLine + "\n" + strconv.Itoa(rows) + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meta.txt"), []byte(meta), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.csv"), []byte("ignored\n"), 0o644))
	return filepath.Join(dir, "data.csv")
}

func TestReadCSV_ParsesPolicyAndSchema(t *testing.T) {
	path := writeDataset(t, "ALLOW FILTER age >= 18", `"age","gender"`, 100)

	lib := pandas.New()
	df, err := lib.ReadCSV(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, df.Schema.Has("age"))
	assert.True(t, df.Schema.Has("gender"))
	assert.Equal(t, 100, df.Shape[0])
	require.Len(t, df.Policy.DNF, 1)
}

func TestReadCSV_MissingPolicyIsIOError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meta.txt"), []byte("age\n10\n"), 0o644))
	path := filepath.Join(dir, "data.csv")

	lib := pandas.New()
	_, err := lib.ReadCSV(context.Background(), path)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "IO_ERROR")
}

func TestCol_ProjectsOntoColumn(t *testing.T) {
	df := &tabular.DataFrame{
		Schema: domain.NewSchema("age", "gender"),
		Policy: policy.FromClauses([][]attribute.Attribute{
			{attribute.Filter{Col: "age", Interval: domain.NewInterval(extval.Of(extval.IntVal(18)), extval.PosInf)}},
		}),
	}
	lib := pandas.New()
	s, err := lib.Col(df, "age")
	require.NoError(t, err)
	assert.Equal(t, "age", s.Column)
	assert.Same(t, df, s.Parent)
}

func TestCol_UnknownColumnIsSchemaError(t *testing.T) {
	df := &tabular.DataFrame{Schema: domain.NewSchema("age")}
	lib := pandas.New()
	_, err := lib.Col(df, "ssn")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "SCHEMA_ERROR")
}

func TestIndexBySeries_CrossFrameRejected(t *testing.T) {
	df1 := &tabular.DataFrame{Schema: domain.NewSchema("age"), Policy: policy.Top()}
	df2 := &tabular.DataFrame{Schema: domain.NewSchema("age"), Policy: policy.Top()}
	iv := domain.NewInterval(extval.Of(extval.IntVal(18)), extval.PosInf)
	s := &tabular.Series{Column: "age", Parent: df2, Interval: &iv}

	lib := pandas.New()
	_, err := lib.IndexBySeries(df1, s)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "CROSS_FRAME_SERIES")
}

func TestIndexBySeries_AppliesBothBounds(t *testing.T) {
	df := &tabular.DataFrame{
		Schema: domain.NewSchema("age"),
		Policy: policy.FromClauses([][]attribute.Attribute{
			{attribute.Filter{Col: "age", Interval: domain.NewInterval(extval.Of(extval.IntVal(18)), extval.PosInf)}},
		}),
	}
	iv := domain.NewInterval(extval.Of(extval.IntVal(18)), extval.Of(extval.IntVal(65)))
	s := &tabular.Series{Column: "age", Parent: df, Interval: &iv}

	lib := pandas.New()
	filtered, err := lib.IndexBySeries(df, s)
	require.NoError(t, err)
	assert.True(t, filtered.Policy.IsSat())
}

func TestGroupBy_ForecloseAllExceptAggregation(t *testing.T) {
	df := &tabular.DataFrame{
		Schema: domain.NewSchema("age"),
		Policy: policy.FromClauses([][]attribute.Attribute{
			{
				attribute.Filter{Col: "age", Interval: domain.NewInterval(extval.Of(extval.IntVal(18)), extval.PosInf)},
				attribute.Privacy{Tech: attribute.Aggregation},
			},
		}),
	}
	lib := pandas.New()
	bb := lib.GroupBy(df)
	assert.True(t, bb.Policy.IsUnsat())
}

func TestSumAxis0_DischargesAggregation(t *testing.T) {
	df := &tabular.DataFrame{
		Schema: domain.NewSchema("count"),
		Policy: policy.FromClauses([][]attribute.Attribute{
			{attribute.Privacy{Tech: attribute.Aggregation}},
		}),
	}
	lib := pandas.New()
	summed, err := lib.Sum(df, 0)
	require.NoError(t, err)
	assert.True(t, summed.PolicyOf().IsSat())
}

func TestMerge_UnionsSchemaAndJoinsPolicy(t *testing.T) {
	a := &tabular.DataFrame{Schema: domain.NewSchema("age"), Policy: policy.Top(), Shape: [2]int{10, 1}}
	b := &tabular.DataFrame{Schema: domain.NewSchema("gender"), Policy: policy.Top(), Shape: [2]int{10, 1}}

	lib := pandas.New()
	merged := lib.Merge(a, b)
	assert.True(t, merged.Schema.Has("age"))
	assert.True(t, merged.Schema.Has("gender"))
}
