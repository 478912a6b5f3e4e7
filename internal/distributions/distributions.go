// Package distributions provides the central and noncentral sampling
// distributions used by the power engine. Central quantiles and CDFs come
// from gonum's distuv; the noncentral CDFs are evaluated as Poisson-weighted
// series over gonum's regularized incomplete gamma and beta functions.
package distributions

import (
	"math"

	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// NormalCDF computes the standard normal cumulative distribution function.
func NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// NormalQuantile computes the standard normal quantile (inverse CDF).
func NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// TQuantile computes the Student's t quantile at df degrees of freedom.
func TQuantile(p, df float64) float64 {
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Quantile(p)
}

// TCDF computes the central Student's t CDF at df degrees of freedom.
func TCDF(x, df float64) float64 {
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.CDF(x)
}

// ChiSquareQuantile computes the central chi-square quantile.
func ChiSquareQuantile(p, df float64) float64 {
	return distuv.ChiSquared{K: df}.Quantile(p)
}

// ChiSquareCDF computes the central chi-square CDF.
func ChiSquareCDF(x, df float64) float64 {
	return distuv.ChiSquared{K: df}.CDF(x)
}

// FQuantile computes the central F quantile through the beta quantile:
// if X ~ F(d1, d2) then d1*X/(d1*X+d2) ~ Beta(d1/2, d2/2).
func FQuantile(p, d1, d2 float64) float64 {
	q := distuv.Beta{Alpha: d1 / 2, Beta: d2 / 2}.Quantile(p)
	if q >= 1 {
		return math.Inf(1)
	}
	return d2 * q / (d1 * (1 - q))
}

// FCDF computes the central F CDF.
func FCDF(x, d1, d2 float64) float64 {
	if x <= 0 {
		return 0
	}
	return distuv.F{D1: d1, D2: d2}.CDF(x)
}

const (
	seriesTol      = 1e-12
	seriesMaxTerms = 10000
)

// NoncentralChiSquareCDF computes P(X <= x) for the noncentral chi-square
// distribution with df degrees of freedom and noncentrality lambda, as a
// Poisson(lambda/2) mixture of central chi-square CDFs. The series is summed
// outward from the Poisson mode so large noncentralities do not underflow.
func NoncentralChiSquareCDF(x, df, lambda float64) float64 {
	if x <= 0 {
		return 0
	}
	if lambda <= 0 {
		return ChiSquareCDF(x, df)
	}
	half := lambda / 2
	term := func(j int) float64 {
		w := poissonWeight(half, j)
		if w == 0 {
			return 0
		}
		return w * mathext.GammaIncReg(df/2+float64(j), x/2)
	}
	return clampUnit(sumFromMode(int(half), term))
}

// NoncentralFCDF computes P(F <= x) for the noncentral F distribution with
// (d1, d2) degrees of freedom and noncentrality lambda, via the
// Poisson-weighted regularized incomplete beta series.
func NoncentralFCDF(x, d1, d2, lambda float64) float64 {
	if x <= 0 {
		return 0
	}
	if lambda <= 0 {
		return FCDF(x, d1, d2)
	}
	y := d1 * x / (d1*x + d2)
	half := lambda / 2
	term := func(j int) float64 {
		w := poissonWeight(half, j)
		if w == 0 {
			return 0
		}
		return w * mathext.RegIncBeta(d1/2+float64(j), d2/2, y)
	}
	return clampUnit(sumFromMode(int(half), term))
}

// NoncentralTCDF computes P(T <= t) for the noncentral t distribution with
// df degrees of freedom and noncentrality delta, using Lenth's (1989)
// incomplete-beta series. Negative t is handled through the symmetry
// P(T <= t; delta) = 1 - P(T <= -t; -delta).
func NoncentralTCDF(t, df, delta float64) float64 {
	if delta == 0 {
		return TCDF(t, df)
	}
	if t < 0 {
		return 1 - NoncentralTCDF(-t, df, -delta)
	}

	x := t * t / (t*t + df)
	half := delta * delta / 2
	logHalf := math.Log(half)
	sign := 1.0
	if delta < 0 {
		sign = -1
	}
	absDelta := math.Abs(delta)

	term := func(j int) float64 {
		fj := float64(j)
		// p_j = Poisson(half) mass, q_j its half-integer companion.
		lgP, _ := math.Lgamma(fj + 1)
		lgQ, _ := math.Lgamma(fj + 1.5)
		logW := -half + fj*logHalf
		p := math.Exp(logW - lgP)
		q := sign * math.Exp(logW-lgQ+math.Log(absDelta)-0.5*math.Ln2)
		s := 0.0
		if p != 0 {
			s += p * mathext.RegIncBeta(fj+0.5, df/2, x)
		}
		if q != 0 {
			s += q * mathext.RegIncBeta(fj+1, df/2, x)
		}
		return s
	}

	sum := sumFromMode(int(half), term)
	cdf := NormalCDF(-delta) + 0.5*sum
	return clampUnit(cdf)
}

// poissonWeight computes exp(-mean) * mean^j / j! in log space.
func poissonWeight(mean float64, j int) float64 {
	if mean == 0 {
		if j == 0 {
			return 1
		}
		return 0
	}
	lg, _ := math.Lgamma(float64(j) + 1)
	return math.Exp(-mean + float64(j)*math.Log(mean) - lg)
}

// sumFromMode sums term(j) for j >= 0, expanding outward from the mode of
// the weight distribution so the dominant terms are accumulated before the
// tolerance cutoff applies.
func sumFromMode(mode int, term func(int) float64) float64 {
	if mode < 0 {
		mode = 0
	}
	sum := 0.0
	for j, steps := mode, 0; j >= 0 && steps < seriesMaxTerms; j, steps = j-1, steps+1 {
		t := term(j)
		sum += t
		if steps > 0 && math.Abs(t) < seriesTol*math.Abs(sum) {
			break
		}
	}
	for j, steps := mode+1, 0; steps < seriesMaxTerms; j, steps = j+1, steps+1 {
		t := term(j)
		sum += t
		if math.Abs(t) < seriesTol*math.Abs(sum) {
			break
		}
	}
	return sum
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
