package vega

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bedwards/wdi-go/domain/frame"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLinkedCharts(t *testing.T) {
	f, err := frame.New(
		[]string{"country_name", "x_value", "y_value", "region"},
		[][]any{
			{"United States", 70000.0, 77.2, "North America"},
			{"China", 12000.0, 78.2, "East Asia & Pacific"},
		},
	)
	require.NoError(t, err)

	scatter, brush, err := ScatterWithFilter(f, ScatterOptions{X: "x_value", Y: "y_value", Color: "region"})
	require.NoError(t, err)
	bar, err := BarChartFiltered(f, BarOptions{X: "region", Y: "count()", Selection: &brush})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "report.html")
	err = SaveLinkedCharts(scatter, bar, path, ReportOptions{
		Title:     "Linked Report",
		Narrative: "## Context\n\nSome **bold** prose.",
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(raw)

	assert.Contains(t, html, "vegaEmbed")
	assert.Contains(t, html, "vega-lite@5")
	assert.Contains(t, html, `"hconcat"`)
	assert.Contains(t, html, `"param":"brush"`)
	assert.Contains(t, html, "<h2>Context</h2>")
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.Contains(t, html, "Linked Report")
	assert.Contains(t, html, `id="viz-`)
}

func TestSaveChart(t *testing.T) {
	f, err := frame.New(
		[]string{"value"},
		[][]any{{1.0}, {2.0}, {3.0}},
	)
	require.NoError(t, err)

	chart, err := HistogramFiltered(f, HistogramOptions{Column: "value"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "single.html")
	require.NoError(t, err)
	err = SaveChart(chart, path, ReportOptions{Title: "Histogram"})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), vegaLiteSchema)
}

func TestRenderNarrativeEmpty(t *testing.T) {
	assert.Empty(t, renderNarrative(""))
}
