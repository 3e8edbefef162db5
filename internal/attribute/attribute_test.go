// SPDX-License-Identifier: Apache-2.0

package attribute_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunblaze-ucb/privguard/internal/attribute"
	"github.com/sunblaze-ucb/privguard/internal/domain"
	"github.com/sunblaze-ucb/privguard/internal/extval"
)

func intp(i int) *int        { return &i }
func fp(f float64) *float64 { return &f }

func interval(lo, hi int64) domain.Interval {
	return domain.NewInterval(extval.Of(extval.IntVal(lo)), extval.Of(extval.IntVal(hi)))
}

func TestSatisfiedUnsatisfiable(t *testing.T) {
	assert.True(t, attribute.Satisfied{}.IsStricterThan(attribute.Satisfied{}))
	assert.False(t, attribute.Satisfied{}.IsStricterThan(attribute.Unsatisfiable{}))
	assert.True(t, attribute.Unsatisfiable{}.IsStricterThan(attribute.Unsatisfiable{}))
}

func TestFilter_IsStricterThan(t *testing.T) {
	narrow := attribute.Filter{Col: "age", Interval: interval(20, 30)}
	wide := attribute.Filter{Col: "age", Interval: interval(0, 100)}
	assert.True(t, narrow.IsStricterThan(wide))
	assert.False(t, wide.IsStricterThan(narrow))

	other := attribute.Filter{Col: "income", Interval: interval(20, 30)}
	assert.False(t, narrow.IsStricterThan(other))

	assert.False(t, narrow.IsStricterThan(attribute.Satisfied{}))
}

func TestRedact_IsStricterThan(t *testing.T) {
	full := attribute.Redact{Col: "ssn"}
	bounded := attribute.Redact{Col: "ssn", Left: intp(0), Right: intp(4)}
	assert.True(t, bounded.IsStricterThan(full))
	assert.False(t, full.IsStricterThan(bounded))

	tighter := attribute.Redact{Col: "ssn", Left: intp(2), Right: intp(4)}
	assert.True(t, tighter.IsStricterThan(bounded))
	assert.False(t, bounded.IsStricterThan(tighter))
}

func TestSchemaAttr_ExactEquality(t *testing.T) {
	a := attribute.SchemaAttr{Columns: domain.NewSchema("a", "b")}
	b := attribute.SchemaAttr{Columns: domain.NewSchema("b", "a")}
	c := attribute.SchemaAttr{Columns: domain.NewSchema("a")}
	assert.True(t, a.IsStricterThan(b))
	assert.False(t, a.IsStricterThan(c))
}

func TestPrivacy_KAnonymity(t *testing.T) {
	strict, err := attribute.NewPrivacy(attribute.KAnonymity, intp(10), nil, nil, nil, nil)
	require.NoError(t, err)
	loose, err := attribute.NewPrivacy(attribute.KAnonymity, intp(5), nil, nil, nil, nil)
	require.NoError(t, err)
	assert.True(t, strict.IsStricterThan(loose))
	assert.False(t, loose.IsStricterThan(strict))
}

func TestPrivacy_DP(t *testing.T) {
	strict, err := attribute.NewPrivacy(attribute.DP, nil, nil, nil, fp(0.1), fp(0.01))
	require.NoError(t, err)
	loose, err := attribute.NewPrivacy(attribute.DP, nil, nil, nil, fp(1.0), fp(0.5))
	require.NoError(t, err)
	assert.True(t, strict.IsStricterThan(loose))
	assert.False(t, loose.IsStricterThan(strict))
}

func TestPrivacy_UnsupportedTech(t *testing.T) {
	_, err := attribute.NewPrivacy(attribute.PrivacyTech("quantum-magic"), nil, nil, nil, nil, nil)
	require.Error(t, err)
}

func TestRole_Purpose(t *testing.T) {
	assert.True(t, attribute.Role{Name: "doctor"}.IsStricterThan(attribute.Role{Name: "doctor"}))
	assert.False(t, attribute.Role{Name: "doctor"}.IsStricterThan(attribute.Role{Name: "nurse"}))
	assert.True(t, attribute.Purpose{Name: "research"}.IsStricterThan(attribute.Purpose{Name: "research"}))
}
