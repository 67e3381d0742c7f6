package vega

import (
	"strings"

	"github.com/bedwards/wdi-go/domain/frame"
)

// axis builds a themed axis block with the given d3 number format.
func axis(format string) map[string]any {
	return map[string]any{
		"format":        format,
		"labelFontSize": LabelFontSize,
		"titleFontSize": LabelFontSize + 1,
		"gridColor":     GridColor,
	}
}

// inferTooltipFormat picks a d3 format from column name hints: money
// columns get SI currency, rates one decimal, the rest two decimals.
func inferTooltipFormat(column string) string {
	lower := strings.ToLower(column)
	if strings.Contains(lower, "gdp") || strings.Contains(lower, "income") || strings.Contains(lower, "capita") {
		return "$,.2s"
	}
	if strings.Contains(lower, "percent") || strings.Contains(lower, "rate") {
		return ".1f"
	}
	return ",.2f"
}

// tooltipFields builds tooltip entries for the named columns. Format
// inference applies to float columns only; integer columns like year
// render as-is.
func tooltipFields(f *frame.Frame, cols []string) []map[string]any {
	fields := make([]map[string]any, 0, len(cols))
	for _, col := range cols {
		switch {
		case f.IsFloat(col):
			fields = append(fields, map[string]any{
				"field":  col,
				"type":   "quantitative",
				"format": inferTooltipFormat(col),
			})
		case f.IsNumeric(col):
			fields = append(fields, map[string]any{"field": col, "type": "quantitative"})
		default:
			fields = append(fields, map[string]any{"field": col, "type": "nominal"})
		}
	}
	return fields
}

// firstWords keeps at most n leading words of a title.
func firstWords(title string, n int) string {
	words := strings.Fields(title)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

// lineTooltip builds the line-chart tooltip: color and income group
// context when present, then the x and y values, then the optional
// secondary label.
func lineTooltip(f *frame.Frame, x, y, color, xAxisFormat, yFormat, yTitle, y2, y2Title string) []map[string]any {
	var fields []map[string]any

	if color != "" {
		fields = append(fields, map[string]any{"field": color, "type": "nominal", "title": toTitle(color)})
	}
	if f.HasColumn("income_group") {
		fields = append(fields, map[string]any{"field": "income_group", "type": "nominal", "title": "Income"})
	}

	if yTitle == "" {
		yTitle = toTitle(y)
	}
	yTitle = firstWords(yTitle, 2)

	fields = append(fields,
		map[string]any{"field": x, "type": "quantitative", "format": xAxisFormat, "title": toTitle(x)},
		map[string]any{"field": y, "type": "quantitative", "format": FormatNumber(yFormat), "title": yTitle},
	)

	if y2 != "" {
		if y2Title == "" {
			y2Title = toTitle(y2)
		}
		fields = append(fields, map[string]any{
			"field": "y2_label",
			"type":  "nominal",
			"title": firstWords(y2Title, 2),
		})
	}
	return fields
}
