package distributions

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCentralQuantiles_MatchReferenceValues(t *testing.T) {
	assert.InDelta(t, 1.95996, NormalQuantile(0.975), 1e-4)
	assert.InDelta(t, 1.64485, NormalQuantile(0.95), 1e-4)
	assert.InDelta(t, 2.04523, TQuantile(0.975, 29), 1e-4)
	assert.InDelta(t, 7.81473, ChiSquareQuantile(0.95, 3), 1e-4)
	assert.InDelta(t, 3.15041, FQuantile(0.95, 2, 60), 1e-3)
}

func TestNoncentralChiSquareCDF_ZeroLambdaIsCentral(t *testing.T) {
	for _, x := range []float64{0.5, 2, 5, 12} {
		assert.InDelta(t, ChiSquareCDF(x, 4), NoncentralChiSquareCDF(x, 4, 0), 1e-12)
	}
}

// For df=1 the noncentral chi-square is a squared shifted normal:
// P(chi2_1(delta^2) <= x) = Phi(sqrt(x)-delta) - Phi(-sqrt(x)-delta).
func TestNoncentralChiSquareCDF_MatchesShiftedNormalAtOneDF(t *testing.T) {
	for _, tc := range []struct{ x, delta float64 }{
		{4, 2}, {1, 0.5}, {9, 1}, {16, 3.5},
	} {
		want := NormalCDF(math.Sqrt(tc.x)-tc.delta) - NormalCDF(-math.Sqrt(tc.x)-tc.delta)
		got := NoncentralChiSquareCDF(tc.x, 1, tc.delta*tc.delta)
		assert.InDelta(t, want, got, 1e-8, "x=%v delta=%v", tc.x, tc.delta)
	}
}

func TestNoncentralChiSquareCDF_MonotoneDecreasingInLambda(t *testing.T) {
	prev := 1.1
	for _, lambda := range []float64{0, 1, 4, 9, 25, 100} {
		cur := NoncentralChiSquareCDF(10, 4, lambda)
		require.Less(t, cur, prev, "lambda=%v", lambda)
		prev = cur
	}
}

func TestNoncentralTCDF_ZeroDeltaIsCentral(t *testing.T) {
	for _, x := range []float64{-2, -0.5, 0, 1, 2.5} {
		assert.InDelta(t, TCDF(x, 12), NoncentralTCDF(x, 12, 0), 1e-12)
	}
}

func TestNoncentralTCDF_LargeDFApproachesShiftedNormal(t *testing.T) {
	assert.InDelta(t, NormalCDF(1.96-2.8), NoncentralTCDF(1.96, 20000, 2.8), 1e-3)
	assert.InDelta(t, NormalCDF(-1.0-0.5), NoncentralTCDF(-1.0, 20000, 0.5), 1e-3)
}

func TestNoncentralTCDF_NegativeTSymmetry(t *testing.T) {
	got := NoncentralTCDF(-1.5, 10, 2)
	want := 1 - NoncentralTCDF(1.5, 10, -2)
	assert.InDelta(t, want, got, 1e-10)
}

// The square of a noncentral t is a noncentral F with one numerator df, so
// the two series implementations must agree with each other.
func TestNoncentralFCDF_ConsistentWithNoncentralT(t *testing.T) {
	for _, tc := range []struct{ x, df, delta float64 }{
		{4, 20, 1.5}, {2.5, 60, 2.0}, {6, 10, 3.0},
	} {
		root := math.Sqrt(tc.x)
		want := NoncentralTCDF(root, tc.df, tc.delta) - NoncentralTCDF(-root, tc.df, tc.delta)
		got := NoncentralFCDF(tc.x, 1, tc.df, tc.delta*tc.delta)
		assert.InDelta(t, want, got, 1e-7, "x=%v df=%v delta=%v", tc.x, tc.df, tc.delta)
	}
}

func TestNoncentralFCDF_ZeroLambdaIsCentral(t *testing.T) {
	assert.InDelta(t, FCDF(3.2, 2, 50), NoncentralFCDF(3.2, 2, 50, 0), 1e-12)
}

func TestNoncentralSeries_StableForLargeNoncentrality(t *testing.T) {
	// Large lambda must not underflow the Poisson weights to a zero sum.
	got := NoncentralChiSquareCDF(2500, 4, 2500)
	assert.Greater(t, got, 0.0)
	assert.Less(t, got, 1.0)

	gotT := NoncentralTCDF(50, 9999, 50)
	assert.InDelta(t, 0.5, gotT, 0.05)
}
