package power

import (
	"gopower/internal/distributions"
)

// achievedPower returns the survival mass of the noncentral sampling
// distribution beyond the critical value. Monotonically increasing in
// Lambda for a fixed critical value and degrees of freedom; the inverse
// solver depends on that property.
func achievedPower(ctx NoncentralityContext) (float64, error) {
	var pw float64
	switch ctx.Reference {
	case RefNormal:
		pw = distributions.NormalCDF(ctx.Lambda - ctx.Critical)
		if ctx.Tails == 2 {
			pw += distributions.NormalCDF(-ctx.Lambda - ctx.Critical)
		}
	case RefStudentT:
		pw = 1 - distributions.NoncentralTCDF(ctx.Critical, ctx.DF1, ctx.Lambda)
		if ctx.Tails == 2 {
			pw += distributions.NoncentralTCDF(-ctx.Critical, ctx.DF1, ctx.Lambda)
		}
	case RefFisherF:
		pw = 1 - distributions.NoncentralFCDF(ctx.Critical, ctx.DF1, ctx.DF2, ctx.Lambda)
	case RefChiSquare:
		pw = 1 - distributions.NoncentralChiSquareCDF(ctx.Critical, ctx.DF1, ctx.Lambda)
	default:
		return 0, ErrUnsupportedFamily
	}

	if !isFinite(pw) {
		return 0, ErrNonFiniteResult
	}
	if pw < 0 {
		pw = 0
	}
	if pw > 1 {
		pw = 1
	}
	return pw, nil
}

// forwardPower runs the full forward chain for resolved values of sample
// size, effect size and alpha.
func forwardPower(p Parameters, n, effect, alpha float64) (float64, error) {
	ctx, err := buildContext(p, n, effect, alpha)
	if err != nil {
		return 0, err
	}
	return achievedPower(ctx)
}
