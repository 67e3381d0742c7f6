package vega

import (
	"strings"
)

// Opinionated design theme for the toolkit's visualizations. Inspired
// by modern data journalism, it keeps a distinctive look while staying
// readable.

// Palette holds the categorical colors, in assignment order.
var Palette = []string{
	"#1f77b4", // Steel blue
	"#ff7f0e", // Vibrant orange
	"#2ca02c", // Forest green
	"#d62728", // Crimson
	"#9467bd", // Purple
	"#8c564b", // Brown
	"#e377c2", // Pink
	"#7f7f7f", // Gray
	"#bcbd22", // Olive
	"#17becf", // Cyan
	"#393b79", // Deep blue
	"#e7ba52", // Gold
	"#5254a3", // Dark purple
	"#8c6d31", // Dark olive
	"#d95f0e", // Dark orange
}

const (
	// Accent colors
	AccentPrimary   = "#ff6b6b" // Coral red
	AccentSecondary = "#4ecdc4" // Turquoise
	SelectionColor  = "#2d3748" // Dark slate
	DeselectedColor = "#e2e8f0" // Light gray

	// Typography
	FontFamily         = "Inter, -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif"
	TitleFontSize      = 16
	TitleFontWeight    = 600
	SubtitleFontSize   = 13
	SubtitleFontWeight = 400
	SubtitleColor      = "#64748b"
	LabelFontSize      = 11

	// Layout
	BackgroundColor = "#ffffff"
	GridColor       = "#f1f5f9"
	AxisColor       = "#cbd5e1"
	Padding         = 20

	// Chart dimensions (default)
	DefaultWidth  = 500
	DefaultHeight = 400

	// Point/mark properties
	PointSize            = 80
	PointOpacity         = 0.75
	PointOpacitySelected = 0.95
	LineStrokeWidth      = 2.5
	BarOpacity           = 0.9
)

// FormatNumber returns the d3 format string for a value type: currency,
// percent, large, decimal, integer, or default.
func FormatNumber(valueType string) string {
	formats := map[string]string{
		"currency": "$,.2s", // $1.2M, $345.6k
		"percent":  ".0%",
		"large":    ",.2s", // 1.2M, 345.6k
		"decimal":  ".2f",  // 12.34
		"integer":  "d",    // 1234
		"default":  ",.0f", // 1,234
	}
	if format, ok := formats[valueType]; ok {
		return format
	}
	return formats["default"]
}

// formatAxisYear formats year axes without decimals or commas.
func formatAxisYear() string {
	return "d"
}

// colorScale returns the themed categorical scale, optionally pinned to
// a domain.
func colorScale(domain []string) map[string]any {
	scale := map[string]any{"range": Palette}
	if domain != nil {
		scale["domain"] = domain
	}
	return scale
}

// titleParams builds a centered title block with optional subtitle,
// matching the notebook convention of capitalized title and subtitle.
func titleParams(title, subtitle string) map[string]any {
	params := map[string]any{
		"anchor":     "middle",
		"align":      "center",
		"fontSize":   TitleFontSize,
		"fontWeight": TitleFontWeight,
		"offset":     15,
		"orient":     "top",
	}
	if subtitle == "" {
		params["text"] = title
		return params
	}
	params["text"] = capitalize(title)
	params["subtitle"] = capitalize(subtitle)
	params["subtitleFontSize"] = SubtitleFontSize
	params["subtitleFontWeight"] = SubtitleFontWeight
	params["subtitleColor"] = SubtitleColor
	params["subtitlePadding"] = 8
	return params
}

// toTitle converts a column name to a human-readable title: underscores
// to spaces, first letter capitalized, with a couple of fixed renames.
func toTitle(column string) string {
	if column == "income_group" {
		return "Income"
	}
	if column == "country_name" {
		return "Country"
	}
	return capitalize(strings.Join(strings.Split(column, "_"), " "))
}

// legend builds a themed legend for a color column.
func legend(color string) map[string]any {
	return map[string]any{
		"titleFontSize": LabelFontSize + 1,
		"labelFontSize": LabelFontSize,
		"title":         toTitle(color),
	}
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
}
