package power

// Field names one of the four core parameters of a power analysis. Exactly
// one of them is unknown per calculation request.
type Field string

const (
	FieldSampleSize Field = "sample_size"
	FieldEffectSize Field = "effect_size"
	FieldAlpha      Field = "significance_level"
	FieldPower      Field = "power"
)

// Nuisance field names used by the schema and validation reporting.
const (
	FieldTails        = "tails"
	FieldGroups       = "groups"
	FieldCells        = "cells"
	FieldMeasurements = "measurements"
	FieldPredictors   = "predictors"
	FieldTested       = "tested_predictors"
	FieldCovariates   = "covariates"
	FieldCorrelation  = "correlation"
	FieldModelDF      = "model_df"
	FieldBaselineProb = "baseline_probability"
	FieldCovariateR2  = "covariate_r_squared"
	FieldDropoutRate  = "dropout_rate"
)

// Parameters is one calculation request. The four core fields are pointers:
// nil marks the unknown to solve for. Nuisance fields are plain values; only
// the ones the chosen family requires (per the schema) are validated, the
// rest are ignored downstream.
type Parameters struct {
	Family Family `json:"family"`

	SampleSize *float64 `json:"sample_size,omitempty"` // total N across groups
	EffectSize *float64 `json:"effect_size,omitempty"`
	Alpha      *float64 `json:"significance_level,omitempty"`
	Power      *float64 `json:"power,omitempty"`

	Tails        int     `json:"tails,omitempty"`             // 1 or 2 (z/t references)
	Groups       int     `json:"groups,omitempty"`            // groups, cells (GoF) or factor levels
	Cells        int     `json:"cells,omitempty"`             // total design cells (two-way ANOVA)
	Measurements int     `json:"measurements,omitempty"`      // repeated measurements per subject
	Predictors   int     `json:"predictors,omitempty"`        // total model predictors
	Tested       int     `json:"tested_predictors,omitempty"` // predictors in the tested set
	Covariates   int     `json:"covariates,omitempty"`        // ANCOVA covariates / partialled controls
	Correlation  float64 `json:"correlation,omitempty"`       // within-pair or between-measure rho
	ModelDF      int     `json:"model_df,omitempty"`          // contingency / SEM degrees of freedom
	BaselineProb float64 `json:"baseline_probability,omitempty"`
	CovariateR2  float64 `json:"covariate_r_squared,omitempty"`
	DropoutRate  float64 `json:"dropout_rate,omitempty"`
}

// Unknown returns the single unknown core field, or ok=false when zero or
// more than one core field is nil.
func (p Parameters) Unknown() (Field, bool) {
	var missing []Field
	if p.SampleSize == nil {
		missing = append(missing, FieldSampleSize)
	}
	if p.EffectSize == nil {
		missing = append(missing, FieldEffectSize)
	}
	if p.Alpha == nil {
		missing = append(missing, FieldAlpha)
	}
	if p.Power == nil {
		missing = append(missing, FieldPower)
	}
	if len(missing) != 1 {
		return "", false
	}
	return missing[0], true
}

// Float is a convenience for building request literals.
func Float(v float64) *float64 { return &v }

// ClearField marks f as the unknown by setting it back to nil. Needed after
// ApplyDefaults, which backfills every core field.
func (p *Parameters) ClearField(f Field) {
	switch f {
	case FieldSampleSize:
		p.SampleSize = nil
	case FieldEffectSize:
		p.EffectSize = nil
	case FieldAlpha:
		p.Alpha = nil
	case FieldPower:
		p.Power = nil
	}
}

// Result is the outcome of one calculation: the solved value for the unknown
// field, already bounded and rounded by the stability layer, plus the
// achieved power of the finalized configuration.
type Result struct {
	Field         Field   `json:"field"`
	Value         float64 `json:"value"`
	AchievedPower float64 `json:"achieved_power"`
}
