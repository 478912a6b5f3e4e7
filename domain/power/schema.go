package power

import (
	"math"
)

// WarningCode represents structured advisory warnings raised during
// validation. Warnings never block a calculation; they flag configurations
// whose result deserves reduced confidence.
type WarningCode string

const (
	WarningLowN             WarningCode = "LOW_N"               // total sample size < 30
	WarningLowNPerPredictor WarningCode = "LOW_N_PER_PREDICTOR" // fewer than 10 cases per predictor
	WarningExtremeEffect    WarningCode = "EXTREME_EFFECT"      // effect size beyond the large threshold x2
	WarningHighDropout      WarningCode = "HIGH_DROPOUT"        // dropout rate above 50%
)

// RequiredFields returns the names of the core and nuisance fields a family
// needs. The four core fields are always listed; exactly one of them is left
// unknown at calculation time.
func RequiredFields(f Family) []string {
	core := []string{
		string(FieldSampleSize), string(FieldEffectSize),
		string(FieldAlpha), string(FieldPower),
	}
	return append(core, nuisanceFields(f)...)
}

func nuisanceFields(f Family) []string {
	switch f {
	case TTestOneSample, TTestTwoSample, MannWhitney, WilcoxonSignedRank,
		Correlation, ProportionOneSample, ProportionTwoSample, SignTest:
		return []string{FieldTails}
	case TTestPaired:
		return []string{FieldTails, FieldCorrelation}
	case ANOVAOneWay:
		return []string{FieldGroups}
	case ANOVATwoWay:
		return []string{FieldGroups, FieldCells}
	case ANOVARepeated:
		return []string{FieldMeasurements, FieldCorrelation}
	case ANCOVA:
		return []string{FieldGroups, FieldCovariates}
	case PartialCorrelation:
		return []string{FieldTails, FieldCovariates}
	case ChiSquareGoF:
		return []string{FieldGroups}
	case ChiSquareContingency, SEM:
		return []string{FieldModelDF}
	case LinearRegression:
		return []string{FieldPredictors}
	case RegressionIncrease:
		return []string{FieldPredictors, FieldTested}
	case LogisticRegression:
		return []string{FieldTails, FieldBaselineProb, FieldCovariateR2}
	default:
		return nil
	}
}

// Defaults returns a parameter record carrying the conventional starting
// values for a family: alpha 0.05, power 0.80, the family's medium effect
// size, and sensible nuisance values. Callers overlay it with ApplyDefaults
// when switching families so that already-set relevant fields survive.
func Defaults(f Family) Parameters {
	p := Parameters{
		Family:       f,
		Alpha:        Float(0.05),
		Power:        Float(0.80),
		Tails:        2,
		Groups:       3,
		Cells:        6,
		Measurements: 3,
		Predictors:   3,
		Tested:       1,
		Covariates:   1,
		Correlation:  0.5,
		ModelDF:      1,
		BaselineProb: 0.5,
	}
	if m, ok := Metric(f); ok {
		p.EffectSize = Float(m.Medium)
	}
	if f == SEM {
		p.ModelDF = 10
	}
	return p
}

// ApplyDefaults overlays the family defaults onto an existing record,
// preserving every field the caller already set. Every nil core field is
// backfilled, so callers that know which field is the unknown must clear it
// again afterwards with ClearField.
func ApplyDefaults(p Parameters, f Family) Parameters {
	d := Defaults(f)
	out := p
	out.Family = f
	if out.Alpha == nil {
		out.Alpha = d.Alpha
	}
	if out.Power == nil {
		out.Power = d.Power
	}
	if out.EffectSize == nil {
		out.EffectSize = d.EffectSize
	}
	if out.Tails == 0 {
		out.Tails = d.Tails
	}
	if out.Groups == 0 {
		out.Groups = d.Groups
	}
	if out.Cells == 0 {
		out.Cells = d.Cells
	}
	if out.Measurements == 0 {
		out.Measurements = d.Measurements
	}
	if out.Predictors == 0 {
		out.Predictors = d.Predictors
	}
	if out.Tested == 0 {
		out.Tested = d.Tested
	}
	if out.Covariates == 0 {
		out.Covariates = d.Covariates
	}
	if out.Correlation == 0 {
		out.Correlation = d.Correlation
	}
	if out.ModelDF == 0 {
		out.ModelDF = d.ModelDF
	}
	if out.BaselineProb == 0 {
		out.BaselineProb = d.BaselineProb
	}
	return out
}

// Validate checks a parameter record against the schema for its family:
// exactly one unknown core field, all required nuisance fields present and
// within domain. It returns advisory warnings alongside hard errors; a
// non-nil error means computation must not be attempted.
func Validate(p Parameters) ([]WarningCode, error) {
	if !Supported(p.Family) {
		return nil, ErrUnsupportedFamily
	}
	if _, ok := p.Unknown(); !ok {
		return nil, NewOutOfDomainError("parameters", "exactly one core field must be unknown")
	}

	if p.Alpha != nil {
		if !isFinite(*p.Alpha) || *p.Alpha <= 0 || *p.Alpha >= 1 {
			return nil, NewOutOfDomainError(string(FieldAlpha), "must be in (0, 1)")
		}
	}
	if p.Power != nil {
		if !isFinite(*p.Power) || *p.Power <= 0 || *p.Power >= 1 {
			return nil, NewOutOfDomainError(string(FieldPower), "must be in (0, 1)")
		}
	}
	if p.SampleSize != nil {
		if !isFinite(*p.SampleSize) || *p.SampleSize < minSampleSize {
			return nil, NewOutOfDomainError(string(FieldSampleSize), "must be at least 4")
		}
	}
	if p.EffectSize != nil {
		if err := validateEffect(p.Family, *p.EffectSize); err != nil {
			return nil, err
		}
	}
	if err := validateNuisance(p); err != nil {
		return nil, err
	}
	return collectWarnings(p), nil
}

func validateNuisance(p Parameters) error {
	for _, field := range nuisanceFields(p.Family) {
		switch field {
		case FieldTails:
			if p.Tails != 1 && p.Tails != 2 {
				return NewOutOfDomainError(FieldTails, "must be 1 or 2")
			}
		case FieldGroups:
			if p.Groups < 2 {
				return NewOutOfDomainError(FieldGroups, "must be at least 2")
			}
		case FieldCells:
			if p.Cells < p.Groups {
				return NewOutOfDomainError(FieldCells, "must be at least the number of groups")
			}
		case FieldMeasurements:
			if p.Measurements < 2 {
				return NewOutOfDomainError(FieldMeasurements, "must be at least 2")
			}
		case FieldPredictors:
			if p.Predictors < 1 {
				return NewOutOfDomainError(FieldPredictors, "must be at least 1")
			}
		case FieldTested:
			if p.Tested < 1 || p.Tested > p.Predictors {
				return NewOutOfDomainError(FieldTested, "must be between 1 and the predictor count")
			}
		case FieldCovariates:
			if p.Covariates < 1 {
				return NewOutOfDomainError(FieldCovariates, "must be at least 1")
			}
		case FieldCorrelation:
			if !isFinite(p.Correlation) || p.Correlation <= -1 || p.Correlation >= 1 {
				return NewOutOfDomainError(FieldCorrelation, "must be in (-1, 1)")
			}
		case FieldModelDF:
			if p.ModelDF < 1 {
				return NewOutOfDomainError(FieldModelDF, "must be at least 1")
			}
		case FieldBaselineProb:
			if !isFinite(p.BaselineProb) || p.BaselineProb <= 0 || p.BaselineProb >= 1 {
				return NewOutOfDomainError(FieldBaselineProb, "must be in (0, 1)")
			}
		case FieldCovariateR2:
			if !isFinite(p.CovariateR2) || p.CovariateR2 < 0 || p.CovariateR2 >= 1 {
				return NewOutOfDomainError(FieldCovariateR2, "must be in [0, 1)")
			}
		}
	}
	if p.DropoutRate < 0 || p.DropoutRate >= 1 {
		return NewOutOfDomainError(FieldDropoutRate, "must be in [0, 1)")
	}
	return nil
}

func collectWarnings(p Parameters) []WarningCode {
	var warnings []WarningCode
	if p.SampleSize != nil && *p.SampleSize < 30 {
		warnings = append(warnings, WarningLowN)
	}
	if p.SampleSize != nil && p.Predictors > 0 &&
		(p.Family == LinearRegression || p.Family == RegressionIncrease) &&
		*p.SampleSize/float64(p.Predictors) < 10 {
		warnings = append(warnings, WarningLowNPerPredictor)
	}
	if p.EffectSize != nil {
		if m, ok := Metric(p.Family); ok && math.Abs(*p.EffectSize) > 2*m.Large {
			warnings = append(warnings, WarningExtremeEffect)
		}
	}
	if p.DropoutRate > 0.5 {
		warnings = append(warnings, WarningHighDropout)
	}
	return warnings
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
