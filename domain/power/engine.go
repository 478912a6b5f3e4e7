// Package power computes one unknown quantity among the four classical
// power-analysis parameters - sample size, effect size, significance level
// and power - given the other three, for a family of named statistical
// tests. Every calculation is a pure, synchronous function of its inputs
// plus the static schema and effect-size registries: no state is retained
// across calls and concurrent requests need no coordination.
package power

// Compute solves for the unknown core field of a parameter record. The
// record must leave exactly the field named by unknown as nil; every other
// field required by the family's schema must be present and within domain.
// Validation warnings accompany the result without blocking it; every
// failure converges to a no-value error whose kind is preserved for
// diagnostics.
func Compute(p Parameters, unknown Field) (Result, []WarningCode, error) {
	warnings, err := Validate(p)
	if err != nil {
		return Result{}, nil, err
	}
	actual, _ := p.Unknown()
	if actual != unknown {
		return Result{}, nil, NewOutOfDomainError(string(unknown), "field is not the unknown in the parameter record")
	}

	var raw float64
	switch unknown {
	case FieldPower:
		raw, err = forwardPower(p, *p.SampleSize, *p.EffectSize, *p.Alpha)
	case FieldSampleSize:
		raw, err = solveSampleSize(p, *p.EffectSize, *p.Alpha, *p.Power)
	case FieldEffectSize:
		raw, err = solveEffectSize(p, *p.SampleSize, *p.Alpha, *p.Power)
	case FieldAlpha:
		raw, err = solveAlpha(p, *p.SampleSize, *p.EffectSize, *p.Power)
	default:
		return Result{}, nil, NewOutOfDomainError(string(unknown), "not a core field")
	}
	if err != nil {
		return Result{}, warnings, err
	}

	value, err := finalize(unknown, p.Family, raw)
	if err != nil {
		return Result{}, warnings, err
	}

	achieved, err := achievedAt(p, unknown, value)
	if err != nil {
		return Result{}, warnings, err
	}

	return Result{Field: unknown, Value: value, AchievedPower: achieved}, warnings, nil
}

// achievedAt reports the power of the configuration after the solved value
// has been bounded and rounded, so callers see the power their realizable
// parameters actually deliver.
func achievedAt(p Parameters, unknown Field, value float64) (float64, error) {
	n, e, a := p.SampleSize, p.EffectSize, p.Alpha
	switch unknown {
	case FieldPower:
		return value, nil
	case FieldSampleSize:
		n = &value
	case FieldEffectSize:
		e = &value
	case FieldAlpha:
		a = &value
	}
	pw, err := forwardPower(p, *n, *e, *a)
	if err != nil {
		return 0, err
	}
	return finalize(FieldPower, p.Family, pw)
}
