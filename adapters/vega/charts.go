package vega

import (
	"encoding/json"
	"strings"

	"github.com/bedwards/wdi-go/domain/frame"
	"github.com/bedwards/wdi-go/internal/errors"
)

// worldTopoJSON is the topojson feed backing choropleth maps.
const worldTopoJSON = "https://cdn.jsdelivr.net/npm/vega-datasets@2/data/world-110m.json"

// Chart wraps a Vega-Lite v5 unit spec with inline data.
type Chart struct {
	spec map[string]any
}

// Spec returns the underlying spec map.
func (c *Chart) Spec() map[string]any {
	return c.spec
}

// JSON serializes the spec.
func (c *Chart) JSON() ([]byte, error) {
	return json.Marshal(c.spec)
}

// Selection names an interval brush defined by one chart and referenced
// by filter transforms in others.
type Selection struct {
	Name string
}

// ScatterOptions configures ScatterWithFilter. X and Y are required
// column names; zero-valued dimensions fall back to theme defaults.
type ScatterOptions struct {
	X        string
	Y        string
	Color    string
	Tooltip  []string
	Title    string
	Subtitle string
	XTitle   string
	YTitle   string
	XFormat  string
	YFormat  string
	LogX     bool
	LogY     bool
	Width    int
	Height   int
}

// ScatterWithFilter builds a point chart carrying an interval brush.
// The returned selection filters any companion chart built with it.
func ScatterWithFilter(f *frame.Frame, opt ScatterOptions) (*Chart, Selection, error) {
	for _, col := range []string{opt.X, opt.Y} {
		if !f.HasColumn(col) {
			return nil, Selection{}, errors.ColumnMissing(col)
		}
	}
	if opt.Title == "" {
		opt.Title = "Scatter Plot"
	}
	if opt.Width == 0 {
		opt.Width = DefaultWidth
	}
	if opt.Height == 0 {
		opt.Height = DefaultHeight
	}

	brush := Selection{Name: "brush"}

	xEnc := map[string]any{
		"field": opt.X,
		"type":  "quantitative",
		"title": firstNonEmpty(opt.XTitle, opt.X),
		"axis":  axis(FormatNumber(opt.XFormat)),
	}
	yEnc := map[string]any{
		"field": opt.Y,
		"type":  "quantitative",
		"title": firstNonEmpty(opt.YTitle, opt.Y),
		"axis":  axis(FormatNumber(opt.YFormat)),
	}
	if opt.LogX {
		xEnc["scale"] = map[string]any{"type": "log"}
	}
	if opt.LogY {
		yEnc["scale"] = map[string]any{"type": "log"}
	}

	tooltipCols := opt.Tooltip
	if len(tooltipCols) == 0 {
		tooltipCols = []string{opt.X, opt.Y}
	}
	if opt.Color != "" && !contains(tooltipCols, opt.Color) {
		tooltipCols = append(tooltipCols, opt.Color)
	}

	var colorEnc map[string]any
	if opt.Color != "" {
		colorEnc = map[string]any{
			"condition": map[string]any{
				"param":  brush.Name,
				"field":  opt.Color,
				"type":   "nominal",
				"scale":  colorScale(nil),
				"legend": legend(opt.Color),
			},
			"value": DeselectedColor,
		}
	} else {
		colorEnc = map[string]any{"value": Palette[0]}
	}

	spec := map[string]any{
		"data": map[string]any{"values": f.Records()},
		"mark": map[string]any{
			"type":    "point",
			"size":    PointSize,
			"opacity": PointOpacity,
			"filled":  true,
		},
		"params": []map[string]any{
			{"name": brush.Name, "select": "interval"},
		},
		"encoding": map[string]any{
			"x":     xEnc,
			"y":     yEnc,
			"color": colorEnc,
			"opacity": map[string]any{
				"condition": map[string]any{"param": brush.Name, "value": PointOpacitySelected},
				"value":     0.3,
			},
			"tooltip": tooltipFields(f, tooltipCols),
		},
		"width":  opt.Width,
		"height": opt.Height,
		"title":  titleParams(opt.Title, opt.Subtitle),
	}

	return &Chart{spec: spec}, brush, nil
}

// BarOptions configures BarChartFiltered. Y may be a column or the
// literal "count()".
type BarOptions struct {
	X         string
	Y         string
	Color     string
	Title     string
	Subtitle  string
	XTitle    string
	YTitle    string
	YFormat   string
	Width     int
	Height    int
	Selection *Selection
}

// BarChartFiltered builds a bar chart, optionally narrowed by a brush
// selection from another chart.
func BarChartFiltered(f *frame.Frame, opt BarOptions) (*Chart, error) {
	if !f.HasColumn(opt.X) {
		return nil, errors.ColumnMissing(opt.X)
	}
	if opt.Title == "" {
		opt.Title = "Bar Chart"
	}
	if opt.Width == 0 {
		opt.Width = 450
	}
	if opt.Height == 0 {
		opt.Height = DefaultHeight
	}

	labelAngle := 0
	if uniques, err := f.Unique(opt.X); err == nil && len(uniques) > 5 {
		labelAngle = -45
	}

	var yEnc, yTooltip map[string]any
	if opt.Y == "count()" {
		yEnc = map[string]any{
			"aggregate": "count",
			"type":      "quantitative",
			"title":     firstNonEmpty(opt.YTitle, "Count"),
			"axis":      axis(FormatNumber(opt.YFormat)),
		}
		yTooltip = map[string]any{"aggregate": "count", "title": "Count"}
	} else {
		if !f.HasColumn(opt.Y) {
			return nil, errors.ColumnMissing(opt.Y)
		}
		yEnc = map[string]any{
			"field": opt.Y,
			"type":  "quantitative",
			"title": firstNonEmpty(opt.YTitle, opt.Y),
			"axis":  axis(FormatNumber(opt.YFormat)),
		}
		yTooltip = map[string]any{
			"field":  opt.Y,
			"type":   "quantitative",
			"format": FormatNumber(opt.YFormat),
		}
	}

	var colorEnc map[string]any
	if opt.Color != "" {
		colorEnc = map[string]any{
			"field":  opt.Color,
			"type":   "nominal",
			"scale":  colorScale(nil),
			"legend": legend(opt.Color),
		}
	} else {
		colorEnc = map[string]any{"value": Palette[0]}
	}

	spec := map[string]any{
		"data": map[string]any{"values": f.Records()},
		"mark": map[string]any{
			"type":                 "bar",
			"opacity":              BarOpacity,
			"cornerRadiusTopLeft":  2,
			"cornerRadiusTopRight": 2,
		},
		"encoding": map[string]any{
			"x": map[string]any{
				"field": opt.X,
				"type":  "nominal",
				"title": firstNonEmpty(opt.XTitle, opt.X),
				"axis": map[string]any{
					"labelAngle":    labelAngle,
					"labelFontSize": LabelFontSize,
					"titleFontSize": LabelFontSize + 1,
				},
			},
			"y":     yEnc,
			"color": colorEnc,
			"tooltip": []map[string]any{
				{"field": opt.X, "type": "nominal"},
				yTooltip,
			},
		},
		"width":  opt.Width,
		"height": opt.Height,
		"title":  titleParams(opt.Title, opt.Subtitle),
	}
	applySelection(spec, opt.Selection)

	return &Chart{spec: spec}, nil
}

// HistogramOptions configures HistogramFiltered.
type HistogramOptions struct {
	Column    string
	Bins      int
	Title     string
	Subtitle  string
	XTitle    string
	XFormat   string
	Width     int
	Height    int
	Selection *Selection
}

// HistogramFiltered builds a binned count chart, optionally narrowed by
// a brush selection from another chart.
func HistogramFiltered(f *frame.Frame, opt HistogramOptions) (*Chart, error) {
	if !f.HasColumn(opt.Column) {
		return nil, errors.ColumnMissing(opt.Column)
	}
	if opt.Bins == 0 {
		opt.Bins = 30
	}
	if opt.Title == "" {
		opt.Title = "Histogram"
	}
	if opt.Width == 0 {
		opt.Width = 450
	}
	if opt.Height == 0 {
		opt.Height = DefaultHeight
	}

	spec := map[string]any{
		"data": map[string]any{"values": f.Records()},
		"mark": map[string]any{
			"type":                 "bar",
			"opacity":              BarOpacity,
			"cornerRadiusTopLeft":  2,
			"cornerRadiusTopRight": 2,
			"color":                Palette[0],
		},
		"encoding": map[string]any{
			"x": map[string]any{
				"field": opt.Column,
				"type":  "quantitative",
				"bin":   map[string]any{"maxbins": opt.Bins},
				"title": firstNonEmpty(opt.XTitle, opt.Column),
				"axis": map[string]any{
					"format":        FormatNumber(opt.XFormat),
					"labelFontSize": LabelFontSize,
					"titleFontSize": LabelFontSize + 1,
				},
			},
			"y": map[string]any{
				"aggregate": "count",
				"type":      "quantitative",
				"title":     "Count",
				"axis": map[string]any{
					"labelFontSize": LabelFontSize,
					"titleFontSize": LabelFontSize + 1,
					"gridColor":     GridColor,
				},
			},
			"tooltip": []map[string]any{
				{"field": opt.Column, "type": "quantitative", "bin": true, "format": FormatNumber(opt.XFormat)},
				{"aggregate": "count", "title": "Count"},
			},
		},
		"width":  opt.Width,
		"height": opt.Height,
		"title":  titleParams(opt.Title, opt.Subtitle),
	}
	applySelection(spec, opt.Selection)

	return &Chart{spec: spec}, nil
}

// LineOptions configures LineChartFiltered. Y2 names an optional
// companion series surfaced in the tooltip as a percent label.
type LineOptions struct {
	X         string
	Y         string
	Color     string
	Title     string
	Subtitle  string
	XTitle    string
	YTitle    string
	YFormat   string
	Width     int
	Height    int
	Selection *Selection
	Y2        string
	Y2Title   string
}

// LineChartFiltered builds a line chart with point overlays, optionally
// narrowed by a brush selection from another chart.
func LineChartFiltered(f *frame.Frame, opt LineOptions) (*Chart, error) {
	for _, col := range []string{opt.X, opt.Y} {
		if !f.HasColumn(col) {
			return nil, errors.ColumnMissing(col)
		}
	}
	if opt.Title == "" {
		opt.Title = "Line Chart"
	}
	if opt.Width == 0 {
		opt.Width = 450
	}
	if opt.Height == 0 {
		opt.Height = DefaultHeight
	}

	xAxisFormat := FormatNumber("default")
	if strings.Contains(strings.ToLower(opt.X), "year") {
		xAxisFormat = formatAxisYear()
	}

	var colorEnc map[string]any
	if opt.Color != "" {
		colorEnc = map[string]any{
			"field":  opt.Color,
			"type":   "nominal",
			"scale":  colorScale(nil),
			"legend": legend(opt.Color),
		}
	} else {
		colorEnc = map[string]any{"value": Palette[0]}
	}

	encoding := map[string]any{
		"x": map[string]any{
			"field": opt.X,
			"type":  "quantitative",
			"title": capitalize(firstNonEmpty(opt.XTitle, opt.X)),
			"axis":  axis(xAxisFormat),
		},
		"y": map[string]any{
			"field": opt.Y,
			"type":  "quantitative",
			"title": capitalize(firstNonEmpty(opt.YTitle, opt.Y)),
			"axis":  axis(FormatNumber(opt.YFormat)),
		},
		"color": colorEnc,
	}
	if opt.Color != "" && opt.YTitle != "" {
		encoding["tooltip"] = lineTooltip(
			f, opt.X, opt.Y, opt.Color, xAxisFormat, opt.YFormat, opt.YTitle, opt.Y2, opt.Y2Title)
	}

	spec := map[string]any{
		"data": map[string]any{"values": f.Records()},
		"mark": map[string]any{
			"type":        "line",
			"strokeWidth": LineStrokeWidth,
			"point":       map[string]any{"size": 40, "filled": true},
		},
		"encoding": encoding,
		"width":    opt.Width,
		"height":   opt.Height,
		"title":    titleParams(opt.Title, opt.Subtitle),
	}

	if opt.Y2 != "" {
		spec["transform"] = []map[string]any{
			{"calculate": "datum." + opt.Y2 + " == null ? 'Not available' : toString(round(datum." + opt.Y2 + " * 100)) + '%'",
				"as": "y2_label"},
		}
	}
	applySelection(spec, opt.Selection)

	return &Chart{spec: spec}, nil
}

// MapOptions configures MapChartFiltered. Country codes must join the
// topojson feature ids.
type MapOptions struct {
	CountryCol string
	ValueCol   string
	Title      string
	Subtitle   string
	Width      int
	Height     int
	Selection  *Selection
}

// MapChartFiltered builds a world choropleth shaded by the value
// column, optionally narrowed by a brush selection from another chart.
func MapChartFiltered(f *frame.Frame, opt MapOptions) (*Chart, error) {
	if opt.CountryCol == "" {
		opt.CountryCol = "country_code"
	}
	if opt.ValueCol == "" {
		opt.ValueCol = "value"
	}
	for _, col := range []string{opt.CountryCol, opt.ValueCol} {
		if !f.HasColumn(col) {
			return nil, errors.ColumnMissing(col)
		}
	}
	if opt.Title == "" {
		opt.Title = "World Map"
	}
	if opt.Width == 0 {
		opt.Width = 600
	}
	if opt.Height == 0 {
		opt.Height = 400
	}

	spec := map[string]any{
		"data": map[string]any{
			"url":    worldTopoJSON,
			"format": map[string]any{"type": "topojson", "feature": "countries"},
		},
		"mark": map[string]any{
			"type":        "geoshape",
			"stroke":      AxisColor,
			"strokeWidth": 0.5,
		},
		"transform": []map[string]any{
			{
				"lookup": "id",
				"from": map[string]any{
					"data":   map[string]any{"values": f.Records()},
					"key":    opt.CountryCol,
					"fields": []string{opt.ValueCol},
				},
			},
		},
		"encoding": map[string]any{
			"color": map[string]any{
				"field":  opt.ValueCol,
				"type":   "quantitative",
				"scale":  map[string]any{"scheme": "blues"},
				"legend": legend(opt.ValueCol),
			},
			"tooltip": []map[string]any{
				{"field": opt.CountryCol, "type": "nominal"},
				{"field": opt.ValueCol, "type": "quantitative", "format": FormatNumber("default")},
			},
		},
		"projection": map[string]any{"type": "naturalEarth1"},
		"width":      opt.Width,
		"height":     opt.Height,
		"title":      titleParams(opt.Title, opt.Subtitle),
	}
	applySelection(spec, opt.Selection)

	return &Chart{spec: spec}, nil
}

// applySelection appends a brush filter transform when a selection is
// provided.
func applySelection(spec map[string]any, sel *Selection) {
	if sel == nil {
		return
	}
	filter := map[string]any{"filter": map[string]any{"param": sel.Name}}
	if existing, ok := spec["transform"].([]map[string]any); ok {
		spec["transform"] = append(existing, filter)
	} else {
		spec["transform"] = []map[string]any{filter}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
