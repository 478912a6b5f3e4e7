package power

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalize_RejectsNonFinite(t *testing.T) {
	for _, raw := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := finalize(FieldPower, TTestTwoSample, raw)
		assert.ErrorIs(t, err, ErrNonFiniteResult)
	}
}

func TestFinalize_ProbabilityClampAndRounding(t *testing.T) {
	v, err := finalize(FieldPower, TTestTwoSample, 0.99999)
	require.NoError(t, err)
	assert.Equal(t, 0.999, v)

	v, err = finalize(FieldAlpha, TTestTwoSample, 1e-9)
	require.NoError(t, err)
	assert.Equal(t, 0.001, v)

	v, err = finalize(FieldPower, TTestTwoSample, 0.80151)
	require.NoError(t, err)
	assert.Equal(t, 0.802, v)
}

func TestFinalize_SampleSizeCeilingAndCap(t *testing.T) {
	v, err := finalize(FieldSampleSize, TTestTwoSample, 63.01)
	require.NoError(t, err)
	assert.Equal(t, 64.0, v)

	v, err = finalize(FieldSampleSize, TTestTwoSample, 1.2)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)

	v, err = finalize(FieldSampleSize, TTestTwoSample, 5e6)
	require.NoError(t, err)
	assert.Equal(t, 10000.0, v)
}

func TestFinalize_EffectBoundsPerMetric(t *testing.T) {
	v, err := finalize(FieldEffectSize, TTestTwoSample, 7.3)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	v, err = finalize(FieldEffectSize, Correlation, 1.5)
	require.NoError(t, err)
	assert.Equal(t, 0.99, v)

	v, err = finalize(FieldEffectSize, SignTest, 0.001)
	require.NoError(t, err)
	assert.Equal(t, 0.01, v)
}

// Two immediate identical calls may never disagree after rounding.
func TestFinalize_StableAcrossRepeatedCalls(t *testing.T) {
	first, err := finalize(FieldPower, TTestTwoSample, 0.8014999999)
	require.NoError(t, err)
	second, err := finalize(FieldPower, TTestTwoSample, 0.8014999999)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
