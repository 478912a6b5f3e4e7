// Package docs builds human-readable documentation for each test family:
// what the test is, which effect-size metric it uses, which inputs it needs,
// and the conventional magnitudes. Markdown is the source form; HTML is
// rendered on demand for the web UI.
package docs

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"gopower/domain/power"
	"gopower/internal/errors"
)

// Renderer produces per-family documentation pages.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// familyNotes holds prose that cannot be derived from the schema.
var familyNotes = map[power.Family]string{
	power.TTestOneSample:       "Compares a single sample mean against a known or hypothesized population mean.",
	power.TTestTwoSample:       "Compares the means of two independent groups. Sample size is the total across both groups, assuming equal allocation.",
	power.TTestPaired:          "Compares two measurements on the same subjects. The within-pair correlation shrinks the effective noise, so higher correlation means fewer subjects.",
	power.MannWhitney:          "Rank-based alternative to the two-sample t-test. Planned with the parametric formula deflated by the asymptotic relative efficiency of 0.955.",
	power.WilcoxonSignedRank:   "Rank-based alternative to the paired t-test, planned like the paired test with an efficiency deflation of 0.955.",
	power.ANOVAOneWay:          "Tests whether any of several group means differ. Sample size is the total across all groups.",
	power.ANOVATwoWay:          "Tests a main effect or interaction in a factorial design. Cells is the total number of design cells, groups the levels of the tested factor.",
	power.ANOVARepeated:        "Within-subjects ANOVA. The correlation between repeated measurements inflates the noncentrality, so correlated measures need fewer subjects.",
	power.ANCOVA:               "One-way ANOVA with covariate adjustment. Each covariate costs one error degree of freedom.",
	power.Correlation:          "Tests whether a Pearson correlation differs from zero, using the Fisher z transformation.",
	power.PartialCorrelation:   "Tests a correlation after partialling out control variables. Each control costs one degree of freedom.",
	power.ChiSquareGoF:         "Tests observed cell proportions against expected ones. Degrees of freedom are cells minus one.",
	power.ChiSquareContingency: "Tests independence in a contingency table. Supply the table degrees of freedom, (rows-1)(cols-1).",
	power.LinearRegression:     "Tests whether a set of predictors explains variance in the outcome, via the F test on the tested set.",
	power.RegressionIncrease:   "Tests the R-squared increase from adding predictors to an existing model.",
	power.LogisticRegression:   "Tests a single predictor's odds ratio, using the Hsieh (1998) closed-form sample size with adjustment for covariate correlation.",
	power.SEM:                  "Tests exact fit of a structural equation model via the RMSEA-based noncentral chi-square approach (MacCallum, Browne and Sugawara).",
	power.ProportionOneSample:  "Compares a single proportion against a reference value, using the arcsine transformation (Cohen's h).",
	power.ProportionTwoSample:  "Compares two independent proportions via the arcsine transformation. Sample size is the total across both groups.",
	power.SignTest:             "Tests whether the proportion of positive differences departs from one half. Cohen's g is that departure.",
}

// Markdown builds the documentation page for one family.
func (r *Renderer) Markdown(f power.Family) (string, error) {
	if !power.Supported(f) {
		return "", errors.NotFound(fmt.Sprintf("test family %q", f))
	}
	metric, _ := power.Metric(f)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", power.Label(f))
	if note, ok := familyNotes[f]; ok {
		fmt.Fprintf(&b, "%s\n\n", note)
	}

	fmt.Fprintf(&b, "## Effect size\n\n")
	fmt.Fprintf(&b, "Measured as **%s** (%s).\n\n", metric.Label, metric.Name)
	fmt.Fprintf(&b, "| Magnitude | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| small | %g |\n| medium | %g |\n| large | %g |\n\n",
		metric.Small, metric.Medium, metric.Large)

	fmt.Fprintf(&b, "## Required inputs\n\n")
	for _, field := range power.RequiredFields(f) {
		fmt.Fprintf(&b, "- `%s`\n", field)
	}
	b.WriteString("\nProvide any three of sample size, effect size, significance level and power; the remaining one is solved.\n")

	return b.String(), nil
}

// HTML renders the family page to an HTML fragment.
func (r *Renderer) HTML(f power.Family) (string, error) {
	md, err := r.Markdown(f)
	if err != nil {
		return "", err
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	out := markdown.ToHTML([]byte(md), p, renderer)
	return string(out), nil
}
