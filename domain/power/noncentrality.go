package power

import (
	"math"

	"gopower/internal/distributions"
)

// areRankTest is the asymptotic relative efficiency applied to the sample
// size of the rank tests (Mann-Whitney, Wilcoxon) relative to their
// parametric counterparts, assuming normal parent distributions.
const areRankTest = 0.955

// NoncentralityContext carries the transient quantities one calculation
// derives for its power evaluation: the critical value of the test statistic
// at alpha, the reference degrees of freedom, and the noncentrality implied
// by the effect size and sample size. Built fresh per call, never cached;
// its validity depends entirely on the specific input combination.
type NoncentralityContext struct {
	Reference Reference
	Critical  float64
	DF1       float64 // t/chi-square df, or F numerator df
	DF2       float64 // F denominator df
	Lambda    float64 // noncentrality (delta for t/normal references)
	Tails     int
}

// buildContext computes the critical value and noncentrality parameter for a
// fully-resolved request. Degrees of freedom that fall to zero or below are
// rejected here, before any distribution arithmetic can mask them.
func buildContext(p Parameters, n, effect, alpha float64) (NoncentralityContext, error) {
	e, err := toNoncentralityEffect(p.Family, effect, p)
	if err != nil {
		return NoncentralityContext{}, err
	}

	// Dropout shrinks the analyzable sample.
	ne := n * (1 - p.DropoutRate)
	if ne < 2 {
		return NoncentralityContext{}, NewInvalidDomainError("effective sample size", ne)
	}

	ctx := NoncentralityContext{Reference: ReferenceOf(p.Family), Tails: p.Tails}

	switch p.Family {
	case TTestOneSample:
		ctx.DF1 = ne - 1
		ctx.Lambda = e * math.Sqrt(ne)
	case TTestTwoSample:
		ctx.DF1 = ne - 2
		ctx.Lambda = e * math.Sqrt(ne/2) // equal allocation across both groups
	case TTestPaired:
		ctx.DF1 = ne - 1
		ctx.Lambda = e * math.Sqrt(ne)
	case MannWhitney:
		nr := areRankTest * ne
		ctx.DF1 = nr - 2
		ctx.Lambda = e * math.Sqrt(nr/2)
	case WilcoxonSignedRank:
		nr := areRankTest * ne
		ctx.DF1 = nr - 1
		ctx.Lambda = e * math.Sqrt(nr)
	case ANOVAOneWay:
		ctx.DF1 = float64(p.Groups - 1)
		ctx.DF2 = ne - float64(p.Groups)
		ctx.Lambda = e * e * ne
	case ANOVATwoWay:
		ctx.DF1 = float64(p.Groups - 1)
		ctx.DF2 = ne - float64(p.Cells)
		ctx.Lambda = e * e * ne
	case ANOVARepeated:
		m := float64(p.Measurements)
		ctx.DF1 = m - 1
		ctx.DF2 = (ne - 1) * (m - 1)
		ctx.Lambda = e * e * ne * m / (1 - p.Correlation)
	case ANCOVA:
		ctx.DF1 = float64(p.Groups - 1)
		ctx.DF2 = ne - float64(p.Groups) - float64(p.Covariates)
		ctx.Lambda = e * e * ne
	case Correlation:
		if ne <= 3 {
			return NoncentralityContext{}, NewInvalidDomainError("n-3", ne-3)
		}
		ctx.Lambda = e * math.Sqrt(ne-3)
	case PartialCorrelation:
		free := ne - 3 - float64(p.Covariates)
		if free <= 0 {
			return NoncentralityContext{}, NewInvalidDomainError("n-3-controls", free)
		}
		ctx.Lambda = e * math.Sqrt(free)
	case ChiSquareGoF:
		ctx.DF1 = float64(p.Groups - 1)
		ctx.Lambda = e * e * ne
	case ChiSquareContingency:
		ctx.DF1 = float64(p.ModelDF)
		ctx.Lambda = e * e * ne
	case LinearRegression:
		ctx.DF1 = float64(p.Predictors)
		ctx.DF2 = ne - float64(p.Predictors) - 1
		ctx.Lambda = e * ctx.DF2 // effect is f-squared already
	case RegressionIncrease:
		ctx.DF1 = float64(p.Tested)
		ctx.DF2 = ne - float64(p.Predictors) - 1
		ctx.Lambda = e * ctx.DF2
	case LogisticRegression:
		ctx.Lambda = e * math.Sqrt(ne*p.BaselineProb*(1-p.BaselineProb)*(1-p.CovariateR2))
	case SEM:
		ctx.DF1 = float64(p.ModelDF)
		ctx.Lambda = (ne - 1) * ctx.DF1 * e * e
	case ProportionOneSample, SignTest:
		ctx.Lambda = e * math.Sqrt(ne)
	case ProportionTwoSample:
		ctx.Lambda = e * math.Sqrt(ne/2)
	default:
		return NoncentralityContext{}, ErrUnsupportedFamily
	}

	switch ctx.Reference {
	case RefStudentT:
		if ctx.DF1 <= 0 {
			return NoncentralityContext{}, NewInvalidDomainError("degrees of freedom", ctx.DF1)
		}
		ctx.Critical = distributions.TQuantile(1-alpha/float64(ctx.Tails), ctx.DF1)
	case RefFisherF:
		if ctx.DF1 <= 0 || ctx.DF2 <= 0 {
			return NoncentralityContext{}, NewInvalidDomainError("denominator degrees of freedom", ctx.DF2)
		}
		ctx.Critical = distributions.FQuantile(1-alpha, ctx.DF1, ctx.DF2)
	case RefChiSquare:
		if ctx.DF1 <= 0 {
			return NoncentralityContext{}, NewInvalidDomainError("degrees of freedom", ctx.DF1)
		}
		ctx.Critical = distributions.ChiSquareQuantile(1-alpha, ctx.DF1)
	case RefNormal:
		ctx.Critical = distributions.NormalQuantile(1 - alpha/float64(ctx.Tails))
	}

	if !isFinite(ctx.Critical) || !isFinite(ctx.Lambda) {
		return NoncentralityContext{}, ErrNonFiniteResult
	}
	return ctx, nil
}
