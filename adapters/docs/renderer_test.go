package docs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopower/domain/power"
	"gopower/internal/errors"
)

func TestMarkdownCoversEveryFamily(t *testing.T) {
	r := NewRenderer()

	for _, f := range power.Families() {
		md, err := r.Markdown(f)
		require.NoError(t, err, "family %s", f)
		assert.True(t, strings.HasPrefix(md, "# "+power.Label(f)), "family %s", f)
		assert.Contains(t, md, "## Effect size")
		assert.Contains(t, md, "## Required inputs")

		// Prose notes exist for every supported family.
		_, hasNote := familyNotes[f]
		assert.True(t, hasNote, "missing note for %s", f)
	}
}

func TestMarkdownListsMetricConventions(t *testing.T) {
	r := NewRenderer()

	md, err := r.Markdown(power.Correlation)
	require.NoError(t, err)
	assert.Contains(t, md, "Pearson r")
	assert.Contains(t, md, "| small | 0.1 |")
	assert.Contains(t, md, "| large | 0.5 |")
}

func TestHTMLRendersTables(t *testing.T) {
	r := NewRenderer()

	page, err := r.HTML(power.TTestTwoSample)
	require.NoError(t, err)
	assert.Contains(t, page, "<h1")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "Cohen")
}

func TestUnknownFamilyIsNotFound(t *testing.T) {
	r := NewRenderer()

	_, err := r.Markdown(power.Family("made_up_test"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}
