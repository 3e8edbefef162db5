// SPDX-License-Identifier: Apache-2.0

package analyzer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunblaze-ucb/privguard/internal/analyzer"
	"github.com/sunblaze-ucb/privguard/internal/attribute"
	"github.com/sunblaze-ucb/privguard/internal/policy"
	"github.com/sunblaze-ucb/privguard/internal/program"
	"github.com/sunblaze-ucb/privguard/internal/registry"
	"github.com/sunblaze-ucb/privguard/internal/surrogate"
	"github.com/sunblaze-ucb/privguard/internal/tabular"
)

func programReturning(p policy.Policy) program.Program {
	return func(ctx context.Context, libs surrogate.Libraries, dataFolder string) (tabular.Carrier, error) {
		return tabular.Blackbox{Policy: p}, nil
	}
}

func TestAnalyze_ClassifiesSatisfiedResidual(t *testing.T) {
	entry := registry.Entry{ID: 0, Name: "test", Program: programReturning(policy.Top())}
	result, err := analyzer.Analyze(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, analyzer.EffectSat, result.Effect)
	assert.NotEqual(t, "", result.RunID.String())
}

func TestAnalyze_ClassifiesUnsatisfiableResidual(t *testing.T) {
	unsat := policy.FromClauses([][]attribute.Attribute{{attribute.Unsatisfiable{}}})
	entry := registry.Entry{ID: 1, Name: "test", Program: programReturning(unsat)}
	result, err := analyzer.Analyze(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, analyzer.EffectUnsat, result.Effect)
}

func TestAnalyze_ClassifiesPartialResidual(t *testing.T) {
	partial := policy.FromClauses([][]attribute.Attribute{{attribute.Role{Name: "analyst"}}})
	entry := registry.Entry{ID: 2, Name: "test", Program: programReturning(partial)}
	result, err := analyzer.Analyze(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, analyzer.EffectPartial, result.Effect)
}

func TestAnalyze_PropagatesProgramError(t *testing.T) {
	failing := func(ctx context.Context, libs surrogate.Libraries, dataFolder string) (tabular.Carrier, error) {
		return nil, assertErr
	}
	entry := registry.Entry{ID: 3, Name: "test", Program: failing}
	_, err := analyzer.Analyze(context.Background(), entry)
	require.Error(t, err)
}

var assertErr = &testError{"boom"}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }
