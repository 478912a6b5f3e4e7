package power

import (
	"testing"
)

func TestValidate_ParameterDomains(t *testing.T) {
	tests := []struct {
		name        string
		params      Parameters
		expectError bool
	}{
		{
			name: "valid two-sample t request",
			params: Parameters{
				Family:     TTestTwoSample,
				SampleSize: Float(64),
				EffectSize: Float(0.5),
				Alpha:      Float(0.05),
				Tails:      2,
			},
			expectError: false,
		},
		{
			name: "no unknown field",
			params: Parameters{
				Family:     TTestTwoSample,
				SampleSize: Float(64),
				EffectSize: Float(0.5),
				Alpha:      Float(0.05),
				Power:      Float(0.8),
				Tails:      2,
			},
			expectError: true,
		},
		{
			name: "two unknown fields",
			params: Parameters{
				Family:     TTestTwoSample,
				SampleSize: Float(64),
				Alpha:      Float(0.05),
				Tails:      2,
			},
			expectError: true,
		},
		{
			name: "alpha out of domain",
			params: Parameters{
				Family:     TTestTwoSample,
				SampleSize: Float(64),
				EffectSize: Float(0.5),
				Alpha:      Float(1.5),
				Tails:      2,
			},
			expectError: true,
		},
		{
			name: "sample size below minimum",
			params: Parameters{
				Family:     TTestTwoSample,
				SampleSize: Float(2),
				EffectSize: Float(0.5),
				Alpha:      Float(0.05),
				Tails:      2,
			},
			expectError: true,
		},
		{
			name: "bad tails",
			params: Parameters{
				Family:     TTestTwoSample,
				SampleSize: Float(64),
				EffectSize: Float(0.5),
				Alpha:      Float(0.05),
				Tails:      3,
			},
			expectError: true,
		},
		{
			name: "paired t with correlation outside (-1,1)",
			params: Parameters{
				Family:      TTestPaired,
				SampleSize:  Float(30),
				EffectSize:  Float(0.5),
				Alpha:       Float(0.05),
				Tails:       2,
				Correlation: 1.0,
			},
			expectError: true,
		},
		{
			name: "anova with a single group",
			params: Parameters{
				Family:     ANOVAOneWay,
				SampleSize: Float(60),
				EffectSize: Float(0.25),
				Alpha:      Float(0.05),
				Groups:     1,
			},
			expectError: true,
		},
		{
			name: "regression increase tested beyond total",
			params: Parameters{
				Family:     RegressionIncrease,
				SampleSize: Float(100),
				EffectSize: Float(0.15),
				Alpha:      Float(0.05),
				Predictors: 3,
				Tested:     5,
			},
			expectError: true,
		},
		{
			name: "logistic with degenerate baseline",
			params: Parameters{
				Family:       LogisticRegression,
				SampleSize:   Float(200),
				EffectSize:   Float(1.5),
				Alpha:        Float(0.05),
				Tails:        2,
				BaselineProb: 1.0,
			},
			expectError: true,
		},
		{
			name: "unsupported family",
			params: Parameters{
				Family:     Family("mystery_test"),
				SampleSize: Float(64),
				EffectSize: Float(0.5),
				Alpha:      Float(0.05),
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.params)
			if tt.expectError && err == nil {
				t.Errorf("expected validation error, got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestValidate_WarnsOnSmallSamples(t *testing.T) {
	p := Parameters{
		Family:     TTestTwoSample,
		SampleSize: Float(20),
		EffectSize: Float(0.5),
		Alpha:      Float(0.05),
		Tails:      2,
	}
	warnings, err := Validate(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, w := range warnings {
		if w == WarningLowN {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s warning for n=20, got %v", WarningLowN, warnings)
	}
}

func TestRequiredFields_CoreAlwaysPresent(t *testing.T) {
	for _, family := range Families() {
		fields := RequiredFields(family)
		for _, core := range []string{"sample_size", "effect_size", "significance_level", "power"} {
			found := false
			for _, f := range fields {
				if f == core {
					found = true
				}
			}
			if !found {
				t.Errorf("family %s missing core field %s", family, core)
			}
		}
	}
}

func TestApplyDefaults_PreservesCallerFields(t *testing.T) {
	p := Parameters{
		Family: TTestTwoSample,
		Alpha:  Float(0.01),
		Tails:  1,
	}
	out := ApplyDefaults(p, ANOVAOneWay)

	if out.Family != ANOVAOneWay {
		t.Errorf("family not switched: %s", out.Family)
	}
	if out.Alpha == nil || *out.Alpha != 0.01 {
		t.Errorf("caller alpha not preserved")
	}
	if out.Tails != 1 {
		t.Errorf("caller tails not preserved")
	}
	if out.Groups != 3 {
		t.Errorf("group default not applied, got %d", out.Groups)
	}
}

func TestApplyDefaults_BackfillsNilCoreFields(t *testing.T) {
	p := Parameters{
		Family:     TTestTwoSample,
		SampleSize: Float(64),
	}
	out := ApplyDefaults(p, TTestTwoSample)

	if out.Alpha == nil || *out.Alpha != 0.05 {
		t.Errorf("alpha not backfilled")
	}
	if out.Power == nil || *out.Power != 0.80 {
		t.Errorf("power not backfilled")
	}
	if out.EffectSize == nil || *out.EffectSize != 0.5 {
		t.Errorf("effect size not backfilled to the family medium")
	}
	if out.SampleSize == nil || *out.SampleSize != 64 {
		t.Errorf("caller sample size not preserved")
	}
}

// There is no conventional default sample size, so it is the one core field
// defaults never touch.
func TestApplyDefaults_LeavesSampleSizeNil(t *testing.T) {
	out := ApplyDefaults(Parameters{Family: TTestTwoSample}, TTestTwoSample)
	if out.SampleSize != nil {
		t.Errorf("sample size must stay nil, got %v", *out.SampleSize)
	}
}

func TestClearField_MarksUnknownAfterDefaults(t *testing.T) {
	p := ApplyDefaults(Parameters{
		Family:     TTestTwoSample,
		SampleSize: Float(64),
	}, TTestTwoSample)
	p.ClearField(FieldPower)

	unknown, ok := p.Unknown()
	if !ok {
		t.Fatalf("expected exactly one unknown after ClearField")
	}
	if unknown != FieldPower {
		t.Errorf("expected power as the unknown, got %s", unknown)
	}
}
