package power

import "math"

// EffectSizeMetric describes a family's standardized effect-size measure and
// its conventional reference magnitudes. Read-only; consulted for
// interpretation and defaults, not for the arithmetic itself.
type EffectSizeMetric struct {
	Name   string  `json:"name"`  // symbol, e.g. "d", "f", "r", "w"
	Label  string  `json:"label"` // e.g. "Cohen's d"
	Small  float64 `json:"small"`
	Medium float64 `json:"medium"`
	Large  float64 `json:"large"`
}

var metricRegistry = map[Family]EffectSizeMetric{
	TTestOneSample:       {Name: "d", Label: "Cohen's d", Small: 0.2, Medium: 0.5, Large: 0.8},
	TTestTwoSample:       {Name: "d", Label: "Cohen's d", Small: 0.2, Medium: 0.5, Large: 0.8},
	TTestPaired:          {Name: "d", Label: "Cohen's d", Small: 0.2, Medium: 0.5, Large: 0.8},
	MannWhitney:          {Name: "d", Label: "Cohen's d", Small: 0.2, Medium: 0.5, Large: 0.8},
	WilcoxonSignedRank:   {Name: "d", Label: "Cohen's d", Small: 0.2, Medium: 0.5, Large: 0.8},
	ANOVAOneWay:          {Name: "f", Label: "Cohen's f", Small: 0.1, Medium: 0.25, Large: 0.4},
	ANOVATwoWay:          {Name: "f", Label: "Cohen's f", Small: 0.1, Medium: 0.25, Large: 0.4},
	ANOVARepeated:        {Name: "f", Label: "Cohen's f", Small: 0.1, Medium: 0.25, Large: 0.4},
	ANCOVA:               {Name: "f", Label: "Cohen's f", Small: 0.1, Medium: 0.25, Large: 0.4},
	Correlation:          {Name: "r", Label: "Pearson r", Small: 0.1, Medium: 0.3, Large: 0.5},
	PartialCorrelation:   {Name: "r", Label: "Partial r", Small: 0.1, Medium: 0.3, Large: 0.5},
	ChiSquareGoF:         {Name: "w", Label: "Cohen's w", Small: 0.1, Medium: 0.3, Large: 0.5},
	ChiSquareContingency: {Name: "w", Label: "Cohen's w", Small: 0.1, Medium: 0.3, Large: 0.5},
	LinearRegression:     {Name: "f2", Label: "Cohen's f-squared", Small: 0.02, Medium: 0.15, Large: 0.35},
	RegressionIncrease:   {Name: "f2", Label: "Cohen's f-squared", Small: 0.02, Medium: 0.15, Large: 0.35},
	LogisticRegression:   {Name: "OR", Label: "Odds ratio", Small: 1.68, Medium: 3.47, Large: 6.71},
	SEM:                  {Name: "rmsea", Label: "RMSEA", Small: 0.05, Medium: 0.08, Large: 0.1},
	ProportionOneSample:  {Name: "h", Label: "Cohen's h", Small: 0.2, Medium: 0.5, Large: 0.8},
	ProportionTwoSample:  {Name: "h", Label: "Cohen's h", Small: 0.2, Medium: 0.5, Large: 0.8},
	SignTest:             {Name: "g", Label: "Cohen's g", Small: 0.05, Medium: 0.15, Large: 0.25},
}

// Metric returns the effect-size descriptor for a family.
func Metric(f Family) (EffectSizeMetric, bool) {
	m, ok := metricRegistry[f]
	return m, ok
}

// Classify maps an effect magnitude onto the family's small/medium/large
// convention for labeling.
func Classify(f Family, effect float64) string {
	m, ok := metricRegistry[f]
	if !ok {
		return "unknown"
	}
	v := math.Abs(effect)
	if f == LogisticRegression {
		// Odds ratios below 1 are protective; classify by distance from 1.
		if v < 1 && v > 0 {
			v = 1 / v
		}
	}
	switch {
	case v < m.Small:
		return "negligible"
	case v < m.Medium:
		return "small"
	case v < m.Large:
		return "medium"
	default:
		return "large"
	}
}

// validateEffect rejects effect sizes outside the metric's domain:
// non-positive values where the metric is defined to be positive,
// correlations outside (-1, 1), odds ratios of exactly 1.
func validateEffect(f Family, effect float64) error {
	if !isFinite(effect) {
		return ErrInvalidEffectSize
	}
	switch f {
	case Correlation, PartialCorrelation:
		if effect <= -1 || effect >= 1 || effect == 0 {
			return ErrInvalidEffectSize
		}
	case LogisticRegression:
		if effect <= 0 || effect == 1 {
			return ErrInvalidEffectSize
		}
	case SignTest:
		// g is the displacement of the success probability from one half.
		if effect <= 0 || effect >= 0.5 {
			return ErrInvalidEffectSize
		}
	default:
		if effect <= 0 {
			return ErrInvalidEffectSize
		}
	}
	return nil
}

// toNoncentralityEffect converts a family's standardized metric into the
// quantity the noncentrality calculator scales by sample size. For most
// families the metric passes through; the exceptions transform it.
func toNoncentralityEffect(f Family, effect float64, p Parameters) (float64, error) {
	if err := validateEffect(f, effect); err != nil {
		return 0, err
	}
	switch f {
	case TTestPaired, WilcoxonSignedRank:
		// Within-pair correlation shrinks the difference-score SD:
		// d' = d / sqrt(2(1-rho)).
		denom := math.Sqrt(2 * (1 - p.Correlation))
		if denom == 0 {
			return 0, NewInvalidDomainError("difference-score scale", denom)
		}
		return effect / denom, nil
	case Correlation, PartialCorrelation:
		// Fisher z-transform; magnitude only, tails handle direction.
		r := math.Abs(effect)
		return 0.5 * math.Log((1+r)/(1-r)), nil
	case LogisticRegression:
		// Regression coefficient implied by the odds ratio.
		return math.Abs(math.Log(effect)), nil
	case SignTest:
		// Normal-approximation z scale per unit sqrt(n) is 2g.
		return 2 * effect, nil
	default:
		return effect, nil
	}
}
