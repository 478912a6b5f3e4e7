package power

import "math"

// Engine-wide result bounds. The stability layer is the single place these
// are enforced; no other component rounds or clamps.
const (
	minSampleSize = 4
	maxSampleSize = 10000

	minProbability = 0.001
	maxProbability = 0.999

	minEffectBound = 0.01
	maxEffectBound = 5.0
)

// effectBounds returns the plausible search interval for a family's effect
// metric. Correlations and the sign test displacement live on restricted
// scales; the odds ratio searches above 1 by convention.
func effectBounds(f Family) (lo, hi float64) {
	switch f {
	case Correlation, PartialCorrelation:
		return minEffectBound, 0.99
	case SignTest:
		return minEffectBound, 0.49
	case LogisticRegression:
		return 1.01, 50
	case SEM:
		return minEffectBound, 1.0
	default:
		return minEffectBound, maxEffectBound
	}
}

// finalize bounds and rounds a raw solved value for its field type, and
// rejects non-finite values. Power and alpha are clamped to [0.001, 0.999]
// and rounded to three decimals so repeated identical calls can never
// oscillate across rounding boundaries; sample sizes round up, because
// fractional participants are not realizable.
func finalize(field Field, family Family, raw float64) (float64, error) {
	if !isFinite(raw) {
		return 0, ErrNonFiniteResult
	}
	switch field {
	case FieldPower, FieldAlpha:
		return roundTo(clamp(raw, minProbability, maxProbability), 3), nil
	case FieldSampleSize:
		n := math.Ceil(raw)
		return clamp(n, minSampleSize, maxSampleSize), nil
	case FieldEffectSize:
		lo, hi := effectBounds(family)
		return roundTo(clamp(raw, lo, hi), 3), nil
	default:
		return 0, NewOutOfDomainError(string(field), "unknown result field")
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
