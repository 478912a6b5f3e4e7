package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gopower/adapters/docs"
	"gopower/app"
	"gopower/domain/power"
	"gopower/internal"
	"gopower/internal/errors"
)

//go:embed templates/*
var embeddedFiles embed.FS

// App is the HTML front end: a calculator form, per-test documentation and
// the calculation history.
type App struct {
	router       *chi.Mux
	calculations *app.CalculationService
	docs         *docs.Renderer
	templates    *template.Template
	logger       *internal.Logger
}

// Config holds UI application configuration
type Config struct {
	Port string
}

// NewApp creates the UI application
func NewApp(calculations *app.CalculationService, docRenderer *docs.Renderer, logger *internal.Logger) (*App, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	funcMap := template.FuncMap{
		"printFloat": func(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:       chi.NewRouter(),
		calculations: calculations,
		docs:         docRenderer,
		templates:    templates,
		logger:       logger,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a, nil
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Post("/calculate", a.handleCalculate)
	a.router.Get("/tests/{family}", a.handleTestDoc)
	a.router.Get("/history", a.handleHistory)
}

// Router returns the chi router for mounting or serving.
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the HTTP server on the configured port.
func (a *App) Start(config Config) error {
	addr := ":" + config.Port
	a.logger.Info("ui listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// familyOption is one row of the test picker.
type familyOption struct {
	Family   power.Family
	Label    string
	Metric   power.EffectSizeMetric
	Required []string
}

func familyOptions() []familyOption {
	families := power.Families()
	opts := make([]familyOption, 0, len(families))
	for _, f := range families {
		metric, _ := power.Metric(f)
		opts = append(opts, familyOption{
			Family:   f,
			Label:    power.Label(f),
			Metric:   metric,
			Required: power.RequiredFields(f),
		})
	}
	return opts
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.render(w, "index.html", map[string]interface{}{
		"Families": familyOptions(),
	})
}

// handleCalculate reads the calculator form, solves the unknown and renders
// the result fragment. The field left blank in the form is the unknown.
func (a *App) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.renderError(w, "could not read form")
		return
	}

	params := power.Parameters{Family: power.Family(r.FormValue("family"))}
	for field, dst := range map[string]**float64{
		"sample_size":        &params.SampleSize,
		"effect_size":        &params.EffectSize,
		"significance_level": &params.Alpha,
		"power":              &params.Power,
	} {
		raw := r.FormValue(field)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			a.renderError(w, fmt.Sprintf("%s is not a number", field))
			return
		}
		*dst = power.Float(v)
	}
	a.readNuisanceFields(r, &params)

	// The blank field is the unknown; fix it before defaults backfill it.
	unknown, ok := params.Unknown()
	if !ok {
		a.renderError(w, "leave exactly one of sample size, effect size, significance level and power blank")
		return
	}
	params = power.ApplyDefaults(params, params.Family)
	params.ClearField(unknown)

	calc, err := a.calculations.Calculate(r.Context(), params, unknown)
	if err != nil {
		a.renderError(w, err.Error())
		return
	}

	a.render(w, "result.html", map[string]interface{}{
		"Calc":    calc,
		"Label":   power.Label(calc.Family),
		"Unknown": string(calc.Unknown),
	})
}

// readNuisanceFields copies optional design fields from the form. Zero and
// malformed values are left for ApplyDefaults to fill.
func (a *App) readNuisanceFields(r *http.Request, p *power.Parameters) {
	intField := func(name string) int {
		v, _ := strconv.Atoi(r.FormValue(name))
		return v
	}
	floatField := func(name string) float64 {
		v, _ := strconv.ParseFloat(r.FormValue(name), 64)
		return v
	}

	p.Tails = intField("tails")
	p.Groups = intField("groups")
	p.Cells = intField("cells")
	p.Measurements = intField("measurements")
	p.Predictors = intField("predictors")
	p.Tested = intField("tested_predictors")
	p.Covariates = intField("covariates")
	p.ModelDF = intField("model_df")
	p.Correlation = floatField("correlation")
	p.BaselineProb = floatField("baseline_probability")
	p.CovariateR2 = floatField("covariate_r_squared")
	p.DropoutRate = floatField("dropout_rate")
}

func (a *App) handleTestDoc(w http.ResponseWriter, r *http.Request) {
	family := power.Family(chi.URLParam(r, "family"))
	page, err := a.docs.HTML(family)
	if err != nil {
		if errors.GetCode(err) == errors.CodeNotFound {
			http.NotFound(w, r)
			return
		}
		a.renderError(w, err.Error())
		return
	}

	a.render(w, "doc.html", map[string]interface{}{
		"Label":   power.Label(family),
		"Content": template.HTML(page),
	})
}

func (a *App) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	calcs, err := a.calculations.History(r.Context(), limit)
	if err != nil {
		a.renderError(w, err.Error())
		return
	}
	a.render(w, "history.html", map[string]interface{}{
		"Calculations": calcs,
	})
}

func (a *App) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, name, data); err != nil {
		a.logger.Error("template %s failed: %v", name, err)
		http.Error(w, "template rendering failed", http.StatusInternalServerError)
	}
}

func (a *App) renderError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	if err := a.templates.ExecuteTemplate(w, "error.html", map[string]interface{}{"Message": message}); err != nil {
		a.logger.Error("template error.html failed: %v", err)
	}
}
