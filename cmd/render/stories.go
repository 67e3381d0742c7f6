package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/bedwards/wdi-go/adapters/excel"
	"github.com/bedwards/wdi-go/adapters/vega"
	"github.com/bedwards/wdi-go/app"
	"github.com/bedwards/wdi-go/domain/frame"
)

// Story is one analytical narrative: a query-transform-render pipeline
// writing a linked-chart HTML report, some with an xlsx data appendix.
type Story struct {
	Name    string
	Summary string
	Run     func(ctx context.Context, analysis *app.Analysis, outDir string) error
}

var stories = []Story{
	{
		Name:    "wealth_wellbeing",
		Summary: "GDP per capita against life expectancy",
		Run:     wealthWellbeing,
	},
	{
		Name:    "debt_development",
		Summary: "external debt burdens against GDP growth",
		Run:     debtDevelopment,
	},
	{
		Name:    "education_opportunity",
		Summary: "school enrollment against unemployment",
		Run:     educationOpportunity,
	},
	{
		Name:    "inequality_ladder",
		Summary: "countries ranked by Gini coefficient",
		Run:     inequalityLadder,
	},
	{
		Name:    "productivity_trends",
		Summary: "GDP per worker across wealthy nations over time",
		Run:     productivityTrends,
	},
	{
		Name:    "regional_snapshot",
		Summary: "GDP per capita on the world map with regional averages",
		Run:     regionalSnapshot,
	},
}

// wealthWellbeing: does more wealth equal better health outcomes?
func wealthWellbeing(ctx context.Context, analysis *app.Analysis, outDir string) error {
	pairs, err := analysis.IndicatorPairs(ctx, app.IndicatorPairsRequest{
		IndicatorX:         "NY.GDP.PCAP.CD", // GDP per capita
		IndicatorY:         "SP.DYN.LE00.IN", // Life expectancy at birth
		Year:               2021,
		IncludeRegion:      true,
		IncludeIncomeGroup: true,
	})
	if err != nil {
		return err
	}
	pairs = pairs.DropNull("x_value", "y_value")

	pairStats, err := app.ComputePairStats(pairs, "x_value", "y_value")
	if err != nil {
		return err
	}

	scatter, brush, err := vega.ScatterWithFilter(pairs, vega.ScatterOptions{
		X:        "x_value",
		Y:        "y_value",
		Color:    "region",
		Tooltip:  []string{"country_name", "x_value", "y_value", "region", "income_group"},
		Title:    "GDP per Capita vs Life Expectancy (2021)",
		Subtitle: fmt.Sprintf("r = %.2f across %d countries", pairStats.R, pairStats.N),
		XTitle:   "GDP per Capita (US$, log scale)",
		YTitle:   "Life Expectancy (years)",
		LogX:     true,
		Width:    500,
		Height:   500,
	})
	if err != nil {
		return err
	}

	bar, err := vega.BarChartFiltered(pairs, vega.BarOptions{
		X:         "income_group",
		Y:         "count()",
		Color:     "income_group",
		Title:     "Income Group Distribution (Selected Countries)",
		XTitle:    "Income Group",
		YTitle:    "Number of Countries",
		Width:     450,
		Height:    500,
		Selection: &brush,
	})
	if err != nil {
		return err
	}

	if err := vega.SaveLinkedCharts(scatter, bar, filepath.Join(outDir, "wealth_wellbeing.html"), vega.ReportOptions{
		Title: "Beyond GDP: Select countries to explore the wealth-health relationship",
		Narrative: "## Wealth and Wellbeing\n\n" +
			"Does more wealth equal better health outcomes?\n\n" +
			"- Do diminishing returns set in for life expectancy gains?\n" +
			"- Which countries achieve high life expectancy despite modest GDP?\n" +
			"- What role does inequality play in the outliers?",
	}); err != nil {
		return err
	}

	return writeAppendix(pairs, filepath.Join(outDir, "wealth_wellbeing.xlsx"))
}

// debtDevelopment: are heavily indebted countries trapped in low
// growth?
func debtDevelopment(ctx context.Context, analysis *app.Analysis, outDir string) error {
	pairs, err := analysis.IndicatorPairs(ctx, app.IndicatorPairsRequest{
		IndicatorX:         "DT.DOD.DECT.GN.ZS", // External debt stocks (% of GNI)
		IndicatorY:         "NY.GDP.MKTP.KD.ZG", // GDP growth (annual %)
		Year:               2020,
		IncludeRegion:      true,
		IncludeIncomeGroup: true,
	})
	if err != nil {
		return err
	}

	// Remove nulls and extreme debt outliers
	pairs = pairs.DropNull("x_value", "y_value").Filter(func(r frame.Row) bool {
		debt, _ := r.Float("x_value")
		return debt < 300
	})

	scatter, brush, err := vega.ScatterWithFilter(pairs, vega.ScatterOptions{
		X:       "x_value",
		Y:       "y_value",
		Color:   "income_group",
		Tooltip: []string{"country_name", "x_value", "y_value", "region", "income_group"},
		Title:   "External Debt vs GDP Growth (2020)",
		XTitle:  "External Debt (% of GNI)",
		YTitle:  "GDP Growth Rate (%)",
		Width:   500,
		Height:  500,
	})
	if err != nil {
		return err
	}

	bar, err := vega.BarChartFiltered(pairs, vega.BarOptions{
		X:         "region",
		Y:         "count()",
		Color:     "region",
		Title:     "Regional Distribution (Selected Countries)",
		XTitle:    "Region",
		YTitle:    "Number of Countries",
		Width:     450,
		Height:    500,
		Selection: &brush,
	})
	if err != nil {
		return err
	}

	return vega.SaveLinkedCharts(scatter, bar, filepath.Join(outDir, "debt_development.html"), vega.ReportOptions{
		Title: "The Debt Burden: Select countries to explore regional debt patterns",
		Narrative: "## External Debt and Development\n\n" +
			"- Is high debt associated with low or negative growth?\n" +
			"- Which regions have the highest debt burdens?\n" +
			"- Are there countries with high debt but positive growth?",
	})
}

// educationOpportunity: does more education guarantee economic
// security?
func educationOpportunity(ctx context.Context, analysis *app.Analysis, outDir string) error {
	pairs, err := analysis.IndicatorPairs(ctx, app.IndicatorPairsRequest{
		IndicatorX:         "SE.SEC.ENRR",    // School enrollment, secondary (% gross)
		IndicatorY:         "SL.UEM.TOTL.ZS", // Unemployment, total (% of labor force)
		Year:               2020,
		IncludeRegion:      true,
		IncludeIncomeGroup: true,
	})
	if err != nil {
		return err
	}
	pairs = pairs.DropNull("x_value", "y_value")

	scatter, brush, err := vega.ScatterWithFilter(pairs, vega.ScatterOptions{
		X:       "x_value",
		Y:       "y_value",
		Color:   "income_group",
		Tooltip: []string{"country_name", "x_value", "y_value", "region", "income_group"},
		Title:   "Secondary School Enrollment vs Unemployment (2020)",
		XTitle:  "Secondary School Enrollment (% gross)",
		YTitle:  "Unemployment Rate (%)",
		Width:   500,
		Height:  500,
	})
	if err != nil {
		return err
	}

	hist, err := vega.HistogramFiltered(pairs, vega.HistogramOptions{
		Column:    "y_value",
		Bins:      25,
		Title:     "Unemployment Distribution (Selected Countries)",
		XTitle:    "Unemployment Rate (%)",
		XFormat:   "decimal",
		Width:     450,
		Height:    500,
		Selection: &brush,
	})
	if err != nil {
		return err
	}

	return vega.SaveLinkedCharts(scatter, hist, filepath.Join(outDir, "education_opportunity.html"), vega.ReportOptions{
		Title: "The Education Paradox: Select countries to explore enrollment-employment patterns",
		Narrative: "## Education and Economic Opportunity\n\n" +
			"- Does higher enrollment correlate with lower unemployment?\n" +
			"- Which countries have high education but high unemployment?\n" +
			"- How do income groups cluster in this relationship?",
	})
}

// inequalityLadder: the freshest Gini observation per country, ranked.
func inequalityLadder(ctx context.Context, analysis *app.Analysis, outDir string) error {
	gini, err := analysis.IndicatorData(ctx, app.IndicatorDataRequest{
		IndicatorCode:      "SI.POV.GINI", // Gini index
		IncludeRegion:      true,
		IncludeIncomeGroup: true,
	})
	if err != nil {
		return err
	}

	gini, err = gini.LatestYear("country_code", "year")
	if err != nil {
		return err
	}
	gini = gini.DropNull("value")
	gini, err = gini.Rank("value", true)
	if err != nil {
		return err
	}

	scatter, brush, err := vega.ScatterWithFilter(gini, vega.ScatterOptions{
		X:       "value",
		Y:       "rank",
		Color:   "region",
		Tooltip: []string{"country_name", "value", "year", "region", "income_group"},
		Title:   "Income Inequality by Country (Gini Coefficient)",
		XTitle:  "Gini Coefficient (higher = more unequal)",
		YTitle:  "Rank",
		XFormat: "decimal",
		YFormat: "integer",
		Width:   500,
		Height:  600,
	})
	if err != nil {
		return err
	}

	bar, err := vega.BarChartFiltered(gini, vega.BarOptions{
		X:         "region",
		Y:         "count()",
		Color:     "region",
		Title:     "Regional Distribution of Selected Countries",
		XTitle:    "Region",
		YTitle:    "Number of Countries",
		Width:     450,
		Height:    600,
		Selection: &brush,
	})
	if err != nil {
		return err
	}

	return vega.SaveLinkedCharts(scatter, bar, filepath.Join(outDir, "inequality_ladder.html"), vega.ReportOptions{
		Title: "Global Income Inequality: Select countries to explore regional patterns",
		Narrative: "## Inequality and Geography\n\n" +
			"- Which regions have the highest concentration of unequal countries?\n" +
			"- Are high-inequality countries clustered geographically?\n" +
			"- How does inequality vary within regions?",
	})
}

// Wealthy nations compared in productivityTrends, plus Nordics for
// contrast.
var productivityCountries = []string{
	"USA", "CAN", "GBR", "DEU", "FRA", "JPN",
	"AUS", "SWE", "NOR", "DNK", "CHE", "NLD",
}

// productivityTrends: has productivity growth translated to workers?
func productivityTrends(ctx context.Context, analysis *app.Analysis, outDir string) error {
	series, err := analysis.TimeSeries(ctx, "SL.GDP.PCAP.EM.KD", productivityCountries, 1990, 2023)
	if err != nil {
		return err
	}
	series = series.DropNull("value")

	line, err := vega.LineChartFiltered(series, vega.LineOptions{
		X:        "year",
		Y:        "value",
		Color:    "country_code",
		Title:    "Productivity Growth Over Time",
		Subtitle: "GDP per worker, 1990-2023",
		XTitle:   "Year",
		YTitle:   "GDP per Person Employed (constant 2017 PPP $)",
		YFormat:  "currency",
		Width:    600,
		Height:   500,
	})
	if err != nil {
		return err
	}

	latest, err := series.LatestYear("country_code", "year")
	if err != nil {
		return err
	}
	bar, err := vega.BarChartFiltered(latest, vega.BarOptions{
		X:       "country_code",
		Y:       "value",
		Color:   "country_code",
		Title:   "GDP per Worker (Most Recent)",
		XTitle:  "Country",
		YTitle:  "GDP per Person Employed",
		YFormat: "currency",
		Width:   450,
		Height:  500,
	})
	if err != nil {
		return err
	}

	if err := vega.SaveLinkedCharts(bar, line, filepath.Join(outDir, "productivity_trends.html"), vega.ReportOptions{
		Title:    "The Productivity-Pay Gap",
		Subtitle: "Has worker productivity growth translated to wage growth?",
		Narrative: "## Wage Stagnation\n\n" +
			"- Where has productivity growth gone if not to workers?\n" +
			"- Which countries maintain stronger connections between productivity and wages?\n" +
			"- How does the US compare to social democracies in Europe?",
	}); err != nil {
		return err
	}

	// Appendix: wide year-by-country matrix plus per-year growth rates.
	wide, err := series.PivotWide("country_code", "year", "value")
	if err != nil {
		return err
	}
	withGrowth, err := series.GrowthRateBy("country_code", "value", 1)
	if err != nil {
		return err
	}
	return excel.WriteSheets(filepath.Join(outDir, "productivity_trends.xlsx"), []excel.Sheet{
		{Name: "wide", Frame: wide},
		{Name: "growth", Frame: withGrowth},
	})
}

// regionalSnapshot: the freshest GDP per capita per country on a map,
// with regional averages alongside.
func regionalSnapshot(ctx context.Context, analysis *app.Analysis, outDir string) error {
	gdp, err := analysis.IndicatorData(ctx, app.IndicatorDataRequest{
		IndicatorCode: "NY.GDP.PCAP.CD",
		StartYear:     2015,
		IncludeRegion: true,
	})
	if err != nil {
		return err
	}
	gdp, err = gdp.LatestYear("country_code", "year")
	if err != nil {
		return err
	}
	gdp = gdp.DropNull("value")

	worldMap, err := vega.MapChartFiltered(gdp, vega.MapOptions{
		Title:  "GDP per Capita Around the World",
		Width:  600,
		Height: 400,
	})
	if err != nil {
		return err
	}

	regional, err := gdp.AggregateBy("region", "value", frame.AggMean)
	if err != nil {
		return err
	}
	bar, err := vega.BarChartFiltered(regional, vega.BarOptions{
		X:       "region",
		Y:       "value_mean",
		Color:   "region",
		Title:   "Average GDP per Capita by Region",
		XTitle:  "Region",
		YTitle:  "GDP per Capita (US$)",
		YFormat: "currency",
		Width:   450,
		Height:  400,
	})
	if err != nil {
		return err
	}

	return vega.SaveLinkedCharts(worldMap, bar, filepath.Join(outDir, "regional_snapshot.html"), vega.ReportOptions{
		Title: "A World of Difference: GDP per capita by country and region",
	})
}

// writeAppendix drops the chart data and its descriptive statistics
// next to the report.
func writeAppendix(pairs *frame.Frame, path string) error {
	xStats, err := pairs.Describe("x_value")
	if err != nil {
		return err
	}
	yStats, err := pairs.Describe("y_value")
	if err != nil {
		return err
	}

	summary, err := frame.New(
		[]string{"statistic", "x_value", "y_value"},
		[][]any{
			{"count", float64(xStats.Count), float64(yStats.Count)},
			{"mean", xStats.Mean, yStats.Mean},
			{"stddev", xStats.StdDev, yStats.StdDev},
			{"min", xStats.Min, yStats.Min},
			{"median", xStats.Median, yStats.Median},
			{"max", xStats.Max, yStats.Max},
		},
	)
	if err != nil {
		return err
	}

	return excel.WriteSheets(path, []excel.Sheet{
		{Name: "data", Frame: pairs},
		{Name: "summary", Frame: summary},
	})
}
