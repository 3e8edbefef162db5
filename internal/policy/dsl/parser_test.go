// SPDX-License-Identifier: Apache-2.0

package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunblaze-ucb/privguard/internal/attribute"
	"github.com/sunblaze-ucb/privguard/internal/policy/dsl"
)

func TestParse_SimpleFilter(t *testing.T) {
	p, err := dsl.Parse("ALLOW FILTER age >= 18")
	require.NoError(t, err)
	require.Len(t, p.DNF, 1)
	require.Len(t, p.DNF[0], 1)
	f, ok := p.DNF[0][0].(attribute.Filter)
	require.True(t, ok)
	assert.Equal(t, "age", f.Col)
}

func TestParse_ComplexPolicy(t *testing.T) {
	src := "ALLOW FILTER age >= 18 AND (SCHEMA age OR (FILTER gender == 'M' AND (ROLE MANAGER OR FILTER age <= 90)))"
	p, err := dsl.Parse(src)
	require.NoError(t, err)
	// AND binds tighter than OR, both right-associative: distributing gives
	// three clauses, matching the worked example in the policy tree tests.
	assert.Len(t, p.DNF, 3)
}

func TestParse_RedactAndPrivacy(t *testing.T) {
	p, err := dsl.Parse("ALLOW REDACT ssn(0:4) AND PRIVACY DP(1.0, 1e-5)")
	require.NoError(t, err)
	require.Len(t, p.DNF, 1)
	require.Len(t, p.DNF[0], 2)
}

func TestParse_KAnonymity(t *testing.T) {
	p, err := dsl.Parse("ALLOW PRIVACY k-anonymity 10")
	require.NoError(t, err)
	priv, ok := p.DNF[0][0].(attribute.Privacy)
	require.True(t, ok)
	assert.Equal(t, attribute.KAnonymity, priv.Tech)
	require.NotNil(t, priv.K)
	assert.Equal(t, 10, *priv.K)
}

func TestParse_UnsupportedOperatorRejected(t *testing.T) {
	_, err := dsl.Parse("ALLOW FILTER age != 18")
	require.Error(t, err)

	_, err = dsl.Parse("ALLOW FILTER age > 18")
	require.Error(t, err)
}

func TestParse_GrammarPragma_Compatible(t *testing.T) {
	_, err := dsl.Parse("#! grammar 1.0.0\nALLOW ROLE doctor")
	require.NoError(t, err)
}

func TestParse_GrammarPragma_Incompatible(t *testing.T) {
	_, err := dsl.Parse("#! grammar 2.0.0\nALLOW ROLE doctor")
	require.Error(t, err)
}

func TestParse_StringFilterValue(t *testing.T) {
	p, err := dsl.Parse("ALLOW FILTER gender == 'M'")
	require.NoError(t, err)
	f, ok := p.DNF[0][0].(attribute.Filter)
	require.True(t, ok)
	assert.Equal(t, "gender", f.Col)
}

func TestParse_MultipleClauses(t *testing.T) {
	p, err := dsl.Parse("ALLOW ROLE A\nALLOW ROLE B")
	require.NoError(t, err)
	assert.Len(t, p.DNF, 2)
}
