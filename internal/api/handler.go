package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gopower/adapters/docs"
	"gopower/adapters/excel"
	"gopower/app"
	"gopower/domain/power"
	"gopower/internal"
	"gopower/internal/errors"
)

// Handler exposes the calculation engine over JSON.
type Handler struct {
	calculations *app.CalculationService
	sweeps       *app.SweepService
	exporter     *excel.SweepWriter
	docs         *docs.Renderer
	logger       *internal.Logger
}

// NewHandler creates the API handler
func NewHandler(
	calculations *app.CalculationService,
	sweeps *app.SweepService,
	exporter *excel.SweepWriter,
	docRenderer *docs.Renderer,
	logger *internal.Logger,
) *Handler {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Handler{
		calculations: calculations,
		sweeps:       sweeps,
		exporter:     exporter,
		docs:         docRenderer,
		logger:       logger,
	}
}

// Register mounts all API routes on the router.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/health", h.Health)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/calculations", h.CreateCalculation)
		v1.GET("/calculations", h.ListCalculations)
		v1.GET("/calculations/:id", h.GetCalculation)
		v1.POST("/sweeps", h.RunSweep)
		v1.POST("/sweeps/export", h.ExportSweep)
		v1.GET("/tests", h.ListTests)
		v1.GET("/tests/:family/doc", h.TestDoc)
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CalculationRequest is the JSON body for POST /calculations. Unknown is
// optional; when absent the nil core field of the parameters decides.
type CalculationRequest struct {
	power.Parameters
	Unknown power.Field `json:"unknown,omitempty"`
}

// CreateCalculation solves the unknown field of a request.
func (h *Handler) CreateCalculation(c *gin.Context) {
	var req CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "detail": err.Error()})
		return
	}

	// The unknown must be fixed before defaults are applied, since
	// ApplyDefaults backfills every nil core field.
	unknown := req.Unknown
	if unknown == "" {
		var ok bool
		unknown, ok = req.Parameters.Unknown()
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "exactly one of sample_size, effect_size, significance_level, power must be omitted",
				"code":  errors.CodeInvalidInput,
			})
			return
		}
	}
	params := power.ApplyDefaults(req.Parameters, req.Parameters.Family)
	params.ClearField(unknown)

	calc, err := h.calculations.Calculate(c.Request.Context(), params, unknown)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, calc)
}

// ListCalculations returns recent history records.
func (h *Handler) ListCalculations(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	calcs, err := h.calculations.History(c.Request.Context(), limit)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"calculations": calcs, "count": len(calcs)})
}

// GetCalculation returns one history record by id.
func (h *Handler) GetCalculation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid calculation id"})
		return
	}

	calc, err := h.calculations.Lookup(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if calc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "calculation not found", "code": errors.CodeNotFound})
		return
	}
	c.JSON(http.StatusOK, calc)
}

// RunSweep evaluates a grid of calculations.
func (h *Handler) RunSweep(c *gin.Context) {
	var req app.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "detail": err.Error()})
		return
	}
	req.Base = power.ApplyDefaults(req.Base, req.Base.Family)

	result, err := h.sweeps.Run(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportSweep evaluates a grid and writes it to an .xlsx workbook.
func (h *Handler) ExportSweep(c *gin.Context) {
	var req app.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "detail": err.Error()})
		return
	}
	req.Base = power.ApplyDefaults(req.Base, req.Base.Family)

	result, err := h.sweeps.Run(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	path, err := h.exporter.WriteSweep(result)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": path, "summary": result.Summary})
}

// testInfo is the catalog entry for one supported family.
type testInfo struct {
	Family   power.Family           `json:"family"`
	Label    string                 `json:"label"`
	Metric   power.EffectSizeMetric `json:"metric"`
	Required []string               `json:"required_fields"`
}

// ListTests returns the catalog of supported test families.
func (h *Handler) ListTests(c *gin.Context) {
	families := power.Families()
	infos := make([]testInfo, 0, len(families))
	for _, f := range families {
		metric, _ := power.Metric(f)
		infos = append(infos, testInfo{
			Family:   f,
			Label:    power.Label(f),
			Metric:   metric,
			Required: power.RequiredFields(f),
		})
	}
	c.JSON(http.StatusOK, gin.H{"tests": infos, "count": len(infos)})
}

// TestDoc returns the documentation page for one family. format=markdown
// returns the raw markdown, the default is rendered HTML.
func (h *Handler) TestDoc(c *gin.Context) {
	family := power.Family(c.Param("family"))

	if c.Query("format") == "markdown" {
		md, err := h.docs.Markdown(family)
		if err != nil {
			h.renderError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
		return
	}

	page, err := h.docs.HTML(family)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// renderError maps service error codes onto HTTP statuses.
func (h *Handler) renderError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeValidationError, errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeNoSolution, errors.CodeCalculation:
		status = http.StatusUnprocessableEntity
	case errors.CodeNotFound:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("api error: %v", err)
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}
