package power

import (
	"math"

	"gopower/internal/distributions"
)

// hsiehSampleSize computes the required sample size for a logistic
// regression on a standardized continuous covariate via the closed form of
// Hsieh, Bloch and Larsen (1998):
//
//	n = (z_{1-alpha/tails} + z_{power})^2 / (p0 (1-p0) beta^2)
//
// inflated by the variance inflation factor 1/(1-R^2) when the covariate is
// correlated with the other predictors. This is a direct formula, not a
// lambda-based search, and is the inverse of the normal-approximation power
// this family reports, so the round-trip stays consistent.
func hsiehSampleSize(p Parameters, effect, alpha, target float64) (float64, error) {
	beta, err := toNoncentralityEffect(LogisticRegression, effect, p)
	if err != nil {
		return 0, err
	}
	zAlpha := distributions.NormalQuantile(1 - alpha/float64(p.Tails))
	zBeta := distributions.NormalQuantile(target)

	variance := p.BaselineProb * (1 - p.BaselineProb) * beta * beta * (1 - p.CovariateR2)
	if variance <= 0 {
		return 0, NewInvalidDomainError("covariate variance", variance)
	}

	n := (zAlpha + zBeta) * (zAlpha + zBeta) / variance
	if p.DropoutRate > 0 {
		n /= 1 - p.DropoutRate
	}
	if !isFinite(n) {
		return 0, ErrNonFiniteResult
	}
	if n > maxSampleSize {
		return 0, ErrNoSolutionInRange
	}
	return math.Max(n, minSampleSize), nil
}
