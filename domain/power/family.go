package power

// Family identifies one of the supported statistical tests. Each family has
// its own effect-size metric, reference distribution and noncentrality rule.
type Family string

const (
	TTestOneSample       Family = "ttest_one_sample"
	TTestTwoSample       Family = "ttest_two_sample"
	TTestPaired          Family = "ttest_paired"
	MannWhitney          Family = "mann_whitney"
	WilcoxonSignedRank   Family = "wilcoxon_signed_rank"
	ANOVAOneWay          Family = "anova_one_way"
	ANOVATwoWay          Family = "anova_two_way"
	ANOVARepeated        Family = "anova_repeated_measures"
	ANCOVA               Family = "ancova"
	Correlation          Family = "correlation"
	PartialCorrelation   Family = "partial_correlation"
	ChiSquareGoF         Family = "chisquare_gof"
	ChiSquareContingency Family = "chisquare_contingency"
	LinearRegression     Family = "linear_regression"
	RegressionIncrease   Family = "regression_r2_increase"
	LogisticRegression   Family = "logistic_regression"
	SEM                  Family = "sem_rmsea"
	ProportionOneSample  Family = "proportion_one_sample"
	ProportionTwoSample  Family = "proportion_two_sample"
	SignTest             Family = "sign_test"
)

// Reference identifies the sampling distribution a family's test statistic
// follows. Rank tests run through the t reference on an ARE-deflated sample
// size; proportion, sign and logistic tests use the large-sample normal
// approximation.
type Reference string

const (
	RefNormal    Reference = "normal"
	RefStudentT  Reference = "t"
	RefFisherF   Reference = "F"
	RefChiSquare Reference = "chisquare"
)

// Families lists every supported family in stable display order.
func Families() []Family {
	return []Family{
		TTestOneSample, TTestTwoSample, TTestPaired,
		MannWhitney, WilcoxonSignedRank,
		ANOVAOneWay, ANOVATwoWay, ANOVARepeated, ANCOVA,
		Correlation, PartialCorrelation,
		ChiSquareGoF, ChiSquareContingency,
		LinearRegression, RegressionIncrease, LogisticRegression,
		SEM, ProportionOneSample, ProportionTwoSample, SignTest,
	}
}

// Supported reports whether f names a known family.
func Supported(f Family) bool {
	for _, known := range Families() {
		if known == f {
			return true
		}
	}
	return false
}

// ReferenceOf returns the reference distribution for a family.
func ReferenceOf(f Family) Reference {
	switch f {
	case TTestOneSample, TTestTwoSample, TTestPaired, MannWhitney, WilcoxonSignedRank:
		return RefStudentT
	case ANOVAOneWay, ANOVATwoWay, ANOVARepeated, ANCOVA, LinearRegression, RegressionIncrease:
		return RefFisherF
	case ChiSquareGoF, ChiSquareContingency, SEM:
		return RefChiSquare
	default:
		return RefNormal
	}
}

// Label returns a human-readable name for a family.
func Label(f Family) string {
	switch f {
	case TTestOneSample:
		return "One-sample t-test"
	case TTestTwoSample:
		return "Two-sample t-test"
	case TTestPaired:
		return "Paired t-test"
	case MannWhitney:
		return "Mann-Whitney U test"
	case WilcoxonSignedRank:
		return "Wilcoxon signed-rank test"
	case ANOVAOneWay:
		return "One-way ANOVA"
	case ANOVATwoWay:
		return "Two-way ANOVA (main effect)"
	case ANOVARepeated:
		return "Repeated-measures ANOVA (within factor)"
	case ANCOVA:
		return "ANCOVA"
	case Correlation:
		return "Correlation (Pearson r)"
	case PartialCorrelation:
		return "Partial correlation"
	case ChiSquareGoF:
		return "Chi-square goodness-of-fit"
	case ChiSquareContingency:
		return "Chi-square contingency"
	case LinearRegression:
		return "Linear regression (R-squared deviation from zero)"
	case RegressionIncrease:
		return "Linear regression (R-squared increase)"
	case LogisticRegression:
		return "Logistic regression"
	case SEM:
		return "Structural equation model (RMSEA)"
	case ProportionOneSample:
		return "One-sample proportion"
	case ProportionTwoSample:
		return "Two-sample proportion"
	case SignTest:
		return "Sign test"
	default:
		return string(f)
	}
}
