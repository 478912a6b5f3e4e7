package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopower/domain/power"
	"gopower/internal/errors"
)

func twoSampleBase() power.Parameters {
	return power.ApplyDefaults(power.Parameters{
		Family:     power.TTestTwoSample,
		EffectSize: power.Float(0.5),
		Alpha:      power.Float(0.05),
		SampleSize: power.Float(64),
		Tails:      2,
	}, power.TTestTwoSample)
}

func TestSweepPowerOverSampleSize(t *testing.T) {
	svc := NewSweepService(10000, 4, nil)

	result, err := svc.Run(context.Background(), SweepRequest{
		Base:    twoSampleBase(),
		Unknown: power.FieldPower,
		XField:  power.FieldSampleSize,
		XFrom:   20,
		XTo:     200,
		XSteps:  10,
	})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	require.Len(t, result.Rows[0], 10)
	assert.Empty(t, result.YValues)
	assert.Equal(t, 10, result.Summary.Solved)
	assert.Equal(t, 0, result.Summary.Failed)

	// Power grows with sample size at fixed effect and alpha.
	row := result.Rows[0]
	for i := 1; i < len(row); i++ {
		require.True(t, row[i].Solved)
		assert.GreaterOrEqual(t, row[i].Value, row[i-1].Value,
			"power should not decrease from n=%v to n=%v", row[i-1].X, row[i].X)
	}
	assert.InDelta(t, result.Summary.Max, row[len(row)-1].Value, 1e-12)
}

func TestSweepTwoDimensional(t *testing.T) {
	svc := NewSweepService(10000, 2, nil)

	result, err := svc.Run(context.Background(), SweepRequest{
		Base:    twoSampleBase(),
		Unknown: power.FieldPower,
		XField:  power.FieldSampleSize,
		XFrom:   40,
		XTo:     120,
		XSteps:  5,
		YField:  power.FieldEffectSize,
		YFrom:   0.2,
		YTo:     0.8,
		YSteps:  4,
	})
	require.NoError(t, err)
	require.Len(t, result.Rows, 4)
	require.Len(t, result.YValues, 4)
	for _, row := range result.Rows {
		assert.Len(t, row, 5)
	}
	assert.Equal(t, 20, result.Summary.Solved+result.Summary.Failed)
}

func TestSweepRejectsOversizedGrid(t *testing.T) {
	svc := NewSweepService(100, 2, nil)

	_, err := svc.Run(context.Background(), SweepRequest{
		Base:    twoSampleBase(),
		Unknown: power.FieldPower,
		XField:  power.FieldSampleSize,
		XFrom:   10,
		XTo:     1000,
		XSteps:  50,
		YField:  power.FieldEffectSize,
		YFrom:   0.1,
		YTo:     0.9,
		YSteps:  50,
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestSweepRejectsAxisOnUnknown(t *testing.T) {
	svc := NewSweepService(10000, 2, nil)

	_, err := svc.Run(context.Background(), SweepRequest{
		Base:    twoSampleBase(),
		Unknown: power.FieldPower,
		XField:  power.FieldPower,
		XFrom:   0.5,
		XTo:     0.9,
		XSteps:  5,
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestSweepRejectsInvertedAxis(t *testing.T) {
	svc := NewSweepService(10000, 2, nil)

	_, err := svc.Run(context.Background(), SweepRequest{
		Base:    twoSampleBase(),
		Unknown: power.FieldPower,
		XField:  power.FieldSampleSize,
		XFrom:   200,
		XTo:     20,
		XSteps:  5,
	})
	require.Error(t, err)
}

func TestSweepFailedCellsDoNotAbort(t *testing.T) {
	svc := NewSweepService(10000, 2, nil)

	// Tiny effects make the sample-size solve run out of range while the
	// large ones solve fine; both kinds of cell must be reported.
	result, err := svc.Run(context.Background(), SweepRequest{
		Base:    twoSampleBase(),
		Unknown: power.FieldSampleSize,
		XField:  power.FieldEffectSize,
		XFrom:   0.01,
		XTo:     0.8,
		XSteps:  8,
	})
	require.NoError(t, err)
	assert.Greater(t, result.Summary.Solved, 0)
	for _, pt := range result.Rows[0] {
		if !pt.Solved {
			assert.NotEmpty(t, pt.Error)
		}
	}
}

func TestSweepSampleSizeAxisIsIntegral(t *testing.T) {
	values, err := axisValues(power.FieldSampleSize, 10, 25, 4)
	require.NoError(t, err)
	for _, v := range values {
		assert.Equal(t, float64(int(v)), v)
	}
	assert.Equal(t, 10.0, values[0])
	assert.Equal(t, 25.0, values[len(values)-1])
}

func TestSweepSummaryValues(t *testing.T) {
	rows := [][]SweepPoint{{
		{Value: 0.2, Solved: true},
		{Value: 0.4, Solved: true},
		{Value: 0.9, Solved: true},
		{Solved: false},
	}}
	s := summarize(rows)
	assert.Equal(t, 3, s.Solved)
	assert.Equal(t, 1, s.Failed)
	assert.InDelta(t, 0.2, s.Min, 1e-12)
	assert.InDelta(t, 0.9, s.Max, 1e-12)
	assert.InDelta(t, 0.5, s.Mean, 1e-12)
	assert.InDelta(t, 0.4, s.Median, 1e-12)
}

// A base built from sparse inputs leans on the family defaults for alpha,
// power and effect size; every cell must still validate and solve.
func TestSweepDefaultedBaseSolvesEveryCell(t *testing.T) {
	svc := NewSweepService(10000, 2, nil)
	base := power.ApplyDefaults(power.Parameters{Family: power.TTestTwoSample}, power.TTestTwoSample)

	result, err := svc.Run(context.Background(), SweepRequest{
		Base:    base,
		Unknown: power.FieldSampleSize,
		XField:  power.FieldEffectSize,
		XFrom:   0.3,
		XTo:     0.8,
		XSteps:  6,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, result.Summary.Solved)
	assert.Equal(t, 0, result.Summary.Failed)
}
