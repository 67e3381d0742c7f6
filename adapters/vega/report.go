package vega

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/bedwards/wdi-go/internal/errors"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/google/uuid"
)

const vegaLiteSchema = "https://vega.github.io/schema/vega-lite/v5.json"

// ReportOptions decorates a saved report. Narrative is markdown
// rendered above the charts.
type ReportOptions struct {
	Title     string
	Subtitle  string
	Narrative string
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.PageTitle}}</title>
<script src="https://cdn.jsdelivr.net/npm/vega@5"></script>
<script src="https://cdn.jsdelivr.net/npm/vega-lite@5"></script>
<script src="https://cdn.jsdelivr.net/npm/vega-embed@6"></script>
<style>
  body {
    font-family: {{.FontFamily}};
    background: {{.Background}};
    margin: 0;
    padding: {{.Padding}}px;
  }
  .narrative {
    max-width: 760px;
    color: #334155;
    line-height: 1.6;
  }
</style>
</head>
<body>
{{if .Narrative}}<div class="narrative">{{.Narrative}}</div>{{end}}
<div id="{{.ChartID}}"></div>
<script>
  vegaEmbed("#{{.ChartID}}", {{.Spec}}, {actions: false});
</script>
</body>
</html>
`))

type reportData struct {
	PageTitle  string
	FontFamily template.CSS
	Background template.CSS
	Padding    int
	Narrative  template.HTML
	ChartID    string
	Spec       template.JS
}

// SaveLinkedCharts writes two horizontally concatenated charts to a
// self-contained HTML file. A brush defined by the left chart filters
// the right one because params resolve across the concatenation.
func SaveLinkedCharts(left, right *Chart, path string, opt ReportOptions) error {
	combined := map[string]any{
		"$schema":    vegaLiteSchema,
		"hconcat":    []map[string]any{left.Spec(), right.Spec()},
		"padding":    Padding,
		"background": BackgroundColor,
	}
	if opt.Title != "" {
		combined["title"] = titleParams(opt.Title, opt.Subtitle)
	}
	return writeReport(combined, path, opt)
}

// SaveChart writes a single chart to a self-contained HTML file.
func SaveChart(chart *Chart, path string, opt ReportOptions) error {
	spec := make(map[string]any, len(chart.Spec())+3)
	for k, v := range chart.Spec() {
		spec[k] = v
	}
	spec["$schema"] = vegaLiteSchema
	spec["padding"] = Padding
	spec["background"] = BackgroundColor
	if opt.Title != "" {
		spec["title"] = titleParams(opt.Title, opt.Subtitle)
	}
	return writeReport(spec, path, opt)
}

func writeReport(spec map[string]any, path string, opt ReportOptions) error {
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return errors.RenderFailed("failed to serialize chart spec", err)
	}

	data := reportData{
		PageTitle:  firstNonEmpty(opt.Title, "Report"),
		FontFamily: FontFamily,
		Background: BackgroundColor,
		Padding:    Padding,
		Narrative:  renderNarrative(opt.Narrative),
		ChartID:    "viz-" + uuid.NewString(),
		Spec:       template.JS(specJSON),
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create output directory %s", dir)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer file.Close()

	if err := reportTemplate.Execute(file, data); err != nil {
		return errors.RenderFailed(fmt.Sprintf("failed to render %s", path), err)
	}
	return nil
}

// renderNarrative converts markdown prose to HTML for the report
// header.
func renderNarrative(source string) template.HTML {
	if source == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return template.HTML(markdown.ToHTML([]byte(source), p, renderer))
}
