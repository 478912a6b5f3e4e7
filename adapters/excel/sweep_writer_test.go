package excel

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gopower/app"
	"gopower/domain/power"
	"gopower/models"
)

func TestWriteSweepCreatesWorkbook(t *testing.T) {
	w := NewSweepWriter(t.TempDir())

	result := &app.SweepResult{
		Family:  power.TTestTwoSample,
		Unknown: power.FieldPower,
		XValues: []float64{20, 60, 100},
		Rows: [][]app.SweepPoint{{
			{X: 20, Value: 0.33, Solved: true},
			{X: 60, Value: 0.77, Solved: true},
			{X: 100, Value: 0.94, Solved: true},
		}},
		Summary: app.SweepSummary{Solved: 3, Min: 0.33, Max: 0.94, Mean: 0.68, Median: 0.77},
	}

	path, err := w.WriteSweep(result)
	require.NoError(t, err)
	require.NotEmpty(t, path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Grid")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "x", rows[0][0])

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	assert.Equal(t, "family", summary[0][0])
	assert.Equal(t, string(power.TTestTwoSample), summary[0][1])
}

func TestWriteHistoryCreatesWorkbook(t *testing.T) {
	w := NewSweepWriter(t.TempDir())

	calcs := []*models.Calculation{{
		ID:            uuid.New(),
		Family:        power.Correlation,
		Unknown:       power.FieldSampleSize,
		Value:         84,
		AchievedPower: 0.8,
		EffectLabel:   "medium",
		CreatedAt:     time.Now().UTC(),
	}}

	path, err := w.WriteHistory(calcs)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("History")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "correlation", rows[1][1])
}
