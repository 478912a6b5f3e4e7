package app

import (
	"context"
	"fmt"
	"time"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"gopower/domain/power"
	"gopower/internal"
	"gopower/internal/errors"
)

// SweepService evaluates a grid of power calculations: one axis varies an
// input field, an optional second axis varies another, and every grid point
// solves the same unknown. Rows run in parallel; each cell is an independent
// call into the engine so a failed cell never poisons its neighbours.
type SweepService struct {
	maxPoints int
	workers   int
	logger    *internal.Logger
}

// SweepRequest describes the grid. Base carries the fixed parameters; the
// axis fields override the matching base field at each point. YSteps of zero
// makes the sweep one-dimensional.
type SweepRequest struct {
	Base    power.Parameters `json:"base"`
	Unknown power.Field      `json:"unknown"`

	XField power.Field `json:"x_field"`
	XFrom  float64     `json:"x_from"`
	XTo    float64     `json:"x_to"`
	XSteps int         `json:"x_steps"`

	YField power.Field `json:"y_field,omitempty"`
	YFrom  float64     `json:"y_from,omitempty"`
	YTo    float64     `json:"y_to,omitempty"`
	YSteps int         `json:"y_steps,omitempty"`
}

// SweepPoint is one solved grid cell. Solved is false when the engine could
// not produce a value there (no solution in range, invalid domain).
type SweepPoint struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y,omitempty"`
	Value  float64 `json:"value"`
	Solved bool    `json:"solved"`
	Error  string  `json:"error,omitempty"`
}

// SweepSummary aggregates the solved cells of a sweep.
type SweepSummary struct {
	Solved int     `json:"solved"`
	Failed int     `json:"failed"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// SweepResult is the full grid plus its summary. Rows holds one slice per
// Y value (a single row for one-dimensional sweeps), cells ordered by X.
type SweepResult struct {
	Family    power.Family   `json:"family"`
	Unknown   power.Field    `json:"unknown"`
	XValues   []float64      `json:"x_values"`
	YValues   []float64      `json:"y_values,omitempty"`
	Rows      [][]SweepPoint `json:"rows"`
	Summary   SweepSummary   `json:"summary"`
	RuntimeMs int64          `json:"runtime_ms"`
}

// NewSweepService creates a sweep service. maxPoints caps the grid size,
// workers bounds row-level parallelism.
func NewSweepService(maxPoints, workers int, logger *internal.Logger) *SweepService {
	if maxPoints <= 0 {
		maxPoints = 10000
	}
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &SweepService{maxPoints: maxPoints, workers: workers, logger: logger}
}

// Run evaluates the grid and returns every point with a summary over the
// solved cells.
func (s *SweepService) Run(ctx context.Context, req SweepRequest) (*SweepResult, error) {
	start := time.Now()

	xs, err := axisValues(req.XField, req.XFrom, req.XTo, req.XSteps)
	if err != nil {
		return nil, err
	}

	ys := []float64{0}
	twoDim := req.YSteps > 0
	if twoDim {
		if req.YField == req.XField {
			return nil, errors.InvalidInput("sweep axes must vary different fields")
		}
		ys, err = axisValues(req.YField, req.YFrom, req.YTo, req.YSteps)
		if err != nil {
			return nil, err
		}
	}

	if len(xs)*len(ys) > s.maxPoints {
		return nil, errors.InvalidInput(fmt.Sprintf(
			"sweep grid has %d points, limit is %d", len(xs)*len(ys), s.maxPoints))
	}
	if req.Unknown == req.XField || (twoDim && req.Unknown == req.YField) {
		return nil, errors.InvalidInput("sweep axis cannot vary the unknown field")
	}

	rows := make([][]SweepPoint, len(ys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for yi, y := range ys {
		yi, y := yi, y
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := make([]SweepPoint, len(xs))
			for xi, x := range xs {
				row[xi] = s.evaluatePoint(req, x, y, twoDim)
			}
			rows[yi] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "sweep aborted")
	}

	result := &SweepResult{
		Family:    req.Base.Family,
		Unknown:   req.Unknown,
		XValues:   xs,
		Rows:      rows,
		Summary:   summarize(rows),
		RuntimeMs: time.Since(start).Milliseconds(),
	}
	if twoDim {
		result.YValues = ys
	}

	s.logger.Info("sweep %s/%s: %d points, %d solved, %dms",
		req.Base.Family, req.Unknown, len(xs)*len(ys), result.Summary.Solved, result.RuntimeMs)
	return result, nil
}

// evaluatePoint runs the engine for one grid cell with axis overrides applied.
func (s *SweepService) evaluatePoint(req SweepRequest, x, y float64, twoDim bool) SweepPoint {
	p := req.Base
	setCoreField(&p, req.XField, x)
	if twoDim {
		setCoreField(&p, req.YField, y)
	}
	p.ClearField(req.Unknown)

	point := SweepPoint{X: x}
	if twoDim {
		point.Y = y
	}

	res, _, err := power.Compute(p, req.Unknown)
	if err != nil {
		point.Error = err.Error()
		return point
	}
	point.Value = res.Value
	point.Solved = true
	return point
}

// axisValues expands an axis into evenly spaced grid values, inclusive of
// both ends. Sample-size axes keep integral steps.
func axisValues(field power.Field, from, to float64, steps int) ([]float64, error) {
	if field == "" {
		return nil, errors.InvalidInput("sweep axis field is required")
	}
	if steps < 1 {
		return nil, errors.InvalidInput(fmt.Sprintf("%s axis needs at least one step", field))
	}
	if to < from {
		return nil, errors.InvalidInput(fmt.Sprintf("%s axis range is inverted", field))
	}

	if steps == 1 || to == from {
		return []float64{from}, nil
	}
	values := make([]float64, steps)
	width := (to - from) / float64(steps-1)
	for i := range values {
		v := from + float64(i)*width
		if field == power.FieldSampleSize {
			v = float64(int(v + 0.5))
		}
		values[i] = v
	}
	return values, nil
}

func setCoreField(p *power.Parameters, f power.Field, v float64) {
	switch f {
	case power.FieldSampleSize:
		p.SampleSize = power.Float(v)
	case power.FieldEffectSize:
		p.EffectSize = power.Float(v)
	case power.FieldAlpha:
		p.Alpha = power.Float(v)
	case power.FieldPower:
		p.Power = power.Float(v)
	}
}

// summarize aggregates solved values across the grid. Descriptive stats are
// zero when nothing solved.
func summarize(rows [][]SweepPoint) SweepSummary {
	var solved []float64
	var failed int
	for _, row := range rows {
		for _, pt := range row {
			if pt.Solved {
				solved = append(solved, pt.Value)
			} else {
				failed++
			}
		}
	}

	summary := SweepSummary{Solved: len(solved), Failed: failed}
	if len(solved) == 0 {
		return summary
	}

	data := stats.Float64Data(solved)
	summary.Min, _ = stats.Min(data)
	summary.Max, _ = stats.Max(data)
	summary.Mean, _ = stats.Mean(data)
	summary.Median, _ = stats.Median(data)
	return summary
}
