// SPDX-License-Identifier: Apache-2.0

// Package pandas implements the surrogate operation library bound to the
// analyst program's "pandas" name: DataFrame/Series construction and the
// policy effect of each operation, grounded on stub_pandas.py.
package pandas

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/sunblaze-ucb/privguard/internal/attribute"
	"github.com/sunblaze-ucb/privguard/internal/domain"
	"github.com/sunblaze-ucb/privguard/internal/policy"
	"github.com/sunblaze-ucb/privguard/internal/policy/dsl"
	"github.com/sunblaze-ucb/privguard/internal/tabular"
)

// Library is the pandas surrogate binding injected into analyst programs.
type Library struct{}

// New constructs a pandas Library.
func New() *Library { return &Library{} }

// ReadCSV reads the policy and schema metadata for the dataset directory
// containing path's data file, ignoring the CSV's actual contents (spec
// §4.7: "numeric semantics are irrelevant"). The two metadata reads are
// wrapped in a short retry, mirroring the teacher's emitWithRetry idiom,
// since both are the one synchronous I/O the analyzer performs per dataset.
func (*Library) ReadCSV(ctx context.Context, path string) (*tabular.DataFrame, error) {
	dataFolder := filepath.Dir(path)

	policySrc, err := readFileWithRetry(ctx, filepath.Join(dataFolder, "policy.txt"))
	if err != nil {
		return nil, oops.
			Code("IO_ERROR").
			With("path", filepath.Join(dataFolder, "policy.txt")).
			Wrapf(err, "failed to read policy file")
	}
	pol, err := dsl.Parse(strings.TrimSpace(policySrc))
	if err != nil {
		return nil, err
	}

	metaSrc, err := readFileWithRetry(ctx, filepath.Join(dataFolder, "meta.txt"))
	if err != nil {
		return nil, oops.
			Code("IO_ERROR").
			With("path", filepath.Join(dataFolder, "meta.txt")).
			Wrapf(err, "failed to read meta file")
	}
	schema, rows, err := parseMeta(metaSrc)
	if err != nil {
		return nil, err
	}

	return &tabular.DataFrame{
		Schema: schema,
		Policy: pol,
		Shape:  [2]int{rows, len(schema.Cols())},
	}, nil
}

func readFileWithRetry(ctx context.Context, path string) (string, error) {
	backoff := retry.WithMaxRetries(3, retry.NewExponential(10*time.Millisecond))
	var content []byte
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		b, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return err // missing file is not transient, don't retry
			}
			return retry.RetryableError(err)
		}
		content = b
		return nil
	})
	return string(content), err
}

func parseMeta(src string) (domain.Schema, int, error) {
	scanner := bufio.NewScanner(strings.NewReader(src))
	if !scanner.Scan() {
		return nil, 0, oops.Code("IO_ERROR").Errorf("meta.txt is missing its schema line")
	}
	rawCols := strings.Split(scanner.Text(), ",")
	cols := make([]string, len(rawCols))
	for i, c := range rawCols {
		cols[i] = strings.Trim(strings.TrimSpace(c), `"`)
	}

	if !scanner.Scan() {
		return nil, 0, oops.Code("IO_ERROR").Errorf("meta.txt is missing its row-count line")
	}
	rows, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, 0, oops.Code("IO_ERROR").Wrapf(err, "meta.txt row count is not an integer")
	}

	return domain.NewSchema(cols...), rows, nil
}

// Col implements `df[str]`: project onto the single column, returning it as
// a Series tied to df.
func (*Library) Col(df *tabular.DataFrame, col string) (*tabular.Series, error) {
	if !df.Schema.Has(col) {
		return nil, tabular.NewSchemaError(col, df.Schema)
	}
	return &tabular.Series{
		Column: col,
		Parent: df,
		Policy: df.Policy.RunProject(domain.NewSchema(col)),
	}, nil
}

// Cols implements `df[list[str]]`: project onto a column subset, returning
// a narrowed DataFrame.
func (*Library) Cols(df *tabular.DataFrame, cols []string) (*tabular.DataFrame, error) {
	for _, c := range cols {
		if !df.Schema.Has(c) {
			return nil, tabular.NewSchemaError(c, df.Schema)
		}
	}
	newSchema := domain.NewSchema(cols...)
	return &tabular.DataFrame{
		Schema: newSchema,
		Policy: df.Policy.RunProject(newSchema),
		Shape:  df.Shape,
	}, nil
}

// IndexBySeries implements `df[series]`: filter df by the bounds a prior
// comparison series recorded. Requires series.Parent == df (spec's
// CrossFrameSeries invariant).
func (*Library) IndexBySeries(df *tabular.DataFrame, s *tabular.Series) (*tabular.DataFrame, error) {
	if s.Parent != df {
		return nil, tabular.NewCrossFrameSeries(s.Column)
	}
	if s.Interval == nil {
		return nil, oops.
			Code("INVARIANT_VIOLATION").
			With("column", s.Column).
			Errorf("series %q has no comparison interval to index by", s.Column)
	}

	newPolicy := df.Policy
	var err error
	if !s.Interval.Lower.IsNegInf() {
		lo, ok := s.Interval.Lower.Value()
		if !ok {
			return nil, oops.Code("INVARIANT_VIOLATION").Errorf("lower bound is a sentinel with no value")
		}
		if newPolicy, err = newPolicy.RunFilter(s.Column, lo, policy.OpGE); err != nil {
			return nil, err
		}
	}
	if !s.Interval.Upper.IsPosInf() {
		hi, ok := s.Interval.Upper.Value()
		if !ok {
			return nil, oops.Code("INVARIANT_VIOLATION").Errorf("upper bound is a sentinel with no value")
		}
		if newPolicy, err = newPolicy.RunFilter(s.Column, hi, policy.OpLE); err != nil {
			return nil, err
		}
	}
	return &tabular.DataFrame{Schema: df.Schema, Policy: newPolicy, Shape: df.Shape}, nil
}

// Drop implements `df.drop(labels, axis=columns)`.
func (*Library) Drop(df *tabular.DataFrame, labels []string) (*tabular.DataFrame, error) {
	drop := domain.NewSchema(labels...)
	newSchema := complement(df.Schema, drop)
	return &tabular.DataFrame{
		Schema: newSchema,
		Policy: df.Policy.RunProject(newSchema),
		Shape:  df.Shape,
	}, nil
}

func complement(universe, remove domain.Schema) domain.Schema {
	out := domain.NewSchema()
	for _, c := range universe.Cols() {
		if !remove.Has(c) {
			out = out.Join(domain.NewSchema(c))
		}
	}
	return out
}

// GroupBy implements `df.groupby(...)`: per spec §4.7, grouping forecloses
// every obligation except Aggregation, which remains dischargeable by a
// following reduction such as Sum.
func (*Library) GroupBy(df *tabular.DataFrame) tabular.Blackbox {
	return tabular.Blackbox{Policy: df.Policy.ForecloseAllExcept(attribute.Aggregation)}
}

// Merge implements `df.merge(other)` / top-level `merge(a, b)`: schema
// union, policy join.
func (*Library) Merge(a, b *tabular.DataFrame) *tabular.DataFrame {
	return &tabular.DataFrame{
		Schema: a.Schema.Join(b.Schema),
		Policy: a.Policy.Join(b.Policy),
		Shape:  [2]int{maxInt(a.Shape[0], b.Shape[0]), len(a.Schema.Join(b.Schema).Cols())},
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Sum implements `df.sum(axis=...)`. axis=0 discharges Aggregation
// column-wise; axis=1 is unmodeled and sinks to a Blackbox.
func (*Library) Sum(df *tabular.DataFrame, axis int) (tabular.Carrier, error) {
	switch axis {
	case 0:
		return &tabular.DataFrame{
			Schema: df.Schema,
			Policy: df.Policy.RunPrivacy(attribute.Aggregation, nil, nil, nil),
			Shape:  [2]int{1, df.Shape[1]},
		}, nil
	case 1:
		return tabular.Blackbox{Policy: df.Policy}, nil
	default:
		return nil, oops.Code("INVARIANT_VIOLATION").Errorf("sum only supports axis 0 or 1, got %d", axis)
	}
}
