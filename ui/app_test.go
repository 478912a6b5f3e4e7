package ui

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopower/adapters/docs"
	"gopower/app"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := NewApp(app.NewCalculationService(nil, nil), docs.NewRenderer(), nil)
	require.NoError(t, err)
	return a
}

func TestIndexListsFamilies(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "ttest_two_sample")
	assert.Contains(t, body, "Power Calculator")
}

func TestCalculateFormSolvesSampleSize(t *testing.T) {
	a := newTestApp(t)

	form := url.Values{}
	form.Set("family", "ttest_two_sample")
	form.Set("effect_size", "0.5")
	form.Set("significance_level", "0.05")
	form.Set("power", "0.8")
	form.Set("tails", "2")

	req := httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "sample_size")
	assert.Contains(t, w.Body.String(), "medium")
}

func TestCalculateFormRejectsAmbiguousUnknown(t *testing.T) {
	a := newTestApp(t)

	form := url.Values{}
	form.Set("family", "ttest_two_sample")
	form.Set("sample_size", "64")
	form.Set("effect_size", "0.5")
	form.Set("significance_level", "0.05")
	form.Set("power", "0.8")

	req := httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "leave exactly one")
}

func TestTestDocPage(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/tests/correlation", nil)
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pearson r")

	req = httptest.NewRequest(http.MethodGet, "/tests/not_a_test", nil)
	w = httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHistoryPageWithoutRepository(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No calculations recorded")
}

// The blank field must stay the unknown even though defaults carry a value
// for it.
func TestCalculateFormBlankPowerSolvesPower(t *testing.T) {
	a := newTestApp(t)

	form := url.Values{}
	form.Set("family", "ttest_two_sample")
	form.Set("sample_size", "64")
	form.Set("effect_size", "0.5")
	form.Set("significance_level", "0.05")
	form.Set("tails", "2")

	req := httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "power")
	assert.Contains(t, w.Body.String(), "0.8")
}
