package power

import (
	"errors"
	"math"
)

// Solver iteration limits. Bisection halves the bracket each step, so the
// cap is generous for any interval the engine searches.
const (
	solverMaxIterations = 200
	solverPowerEpsilon  = 1e-6
	solverWidthEpsilon  = 1e-9
)

// solveSampleSize finds the smallest sample size whose achieved power
// reaches the target, by bisection over [4, 10000], then rounds up to the
// next integer. Ceiling rounding is a firm contract: the returned n always
// achieves at least the target power.
func solveSampleSize(p Parameters, effect, alpha, target float64) (float64, error) {
	if p.Family == LogisticRegression {
		return hsiehSampleSize(p, effect, alpha, target)
	}

	f := func(n float64) (float64, error) {
		pw, err := forwardPower(p, n, effect, alpha)
		if err != nil {
			return 0, err
		}
		return pw - target, nil
	}

	lo, hi := float64(minSampleSize), float64(maxSampleSize)

	// Some families need a larger floor before their df turn positive.
	for lo < hi {
		_, err := f(lo)
		if err == nil {
			break
		}
		if !errors.Is(err, ErrInvalidDomain) {
			return 0, err
		}
		lo++
	}

	fLo, err := f(lo)
	if err != nil {
		return 0, err
	}
	if fLo >= 0 {
		return lo, nil
	}
	fHi, err := f(hi)
	if err != nil {
		return 0, err
	}
	if fHi < 0 {
		return 0, ErrNoSolutionInRange
	}

	root, err := bisect(f, lo, hi)
	if err != nil {
		return 0, err
	}
	return math.Ceil(root), nil
}

// solveEffectSize finds the smallest effect size achieving the target power
// within the family's plausible interval.
func solveEffectSize(p Parameters, n, alpha, target float64) (float64, error) {
	lo, hi := effectBounds(p.Family)
	f := func(e float64) (float64, error) {
		pw, err := forwardPower(p, n, e, alpha)
		if err != nil {
			return 0, err
		}
		return pw - target, nil
	}

	fLo, err := f(lo)
	if err != nil {
		return 0, err
	}
	if fLo >= 0 {
		return lo, nil
	}
	fHi, err := f(hi)
	if err != nil {
		return 0, err
	}
	if fHi < 0 {
		return 0, ErrNoSolutionInRange
	}
	return bisect(f, lo, hi)
}

// solveAlpha finds the significance level at which the configuration reaches
// the target power. Power increases with alpha, so the search direction
// mirrors the sample-size and effect-size cases: the bracket's low end is
// the strict criterion, the high end the permissive one.
func solveAlpha(p Parameters, n, effect, target float64) (float64, error) {
	lo, hi := minProbability, maxProbability
	f := func(a float64) (float64, error) {
		pw, err := forwardPower(p, n, effect, a)
		if err != nil {
			return 0, err
		}
		return pw - target, nil
	}

	fLo, err := f(lo)
	if err != nil {
		return 0, err
	}
	if fLo >= 0 {
		// Even the strictest alpha reaches the target.
		return lo, nil
	}
	fHi, err := f(hi)
	if err != nil {
		return 0, err
	}
	if fHi < 0 {
		return 0, ErrNoSolutionInRange
	}
	return bisect(f, lo, hi)
}

// bisect performs bracketed bisection on a monotonically increasing scalar
// function with f(lo) < 0 <= f(hi). Terminates on the power epsilon, the
// bracket width epsilon, or the iteration cap, whichever comes first, and
// returns the upper end of the final bracket so the result never
// undershoots the target.
func bisect(f func(float64) (float64, error), lo, hi float64) (float64, error) {
	for i := 0; i < solverMaxIterations; i++ {
		mid := lo + (hi-lo)/2
		fMid, err := f(mid)
		if err != nil {
			return 0, err
		}
		if math.Abs(fMid) < solverPowerEpsilon {
			return mid, nil
		}
		if fMid < 0 {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < solverWidthEpsilon {
			break
		}
	}
	return hi, nil
}
