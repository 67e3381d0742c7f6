package frame

import (
	"testing"

	"github.com/bedwards/wdi-go/internal/errors"
)

func longFrame(t *testing.T) *Frame {
	t.Helper()
	f, err := New(
		[]string{"country_code", "year", "value"},
		[][]any{
			{"USA", 2019, 100.0},
			{"USA", 2020, 105.0},
			{"CHN", 2019, 50.0},
			{"CHN", 2020, 55.0},
		},
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return f
}

func TestPivotWide(t *testing.T) {
	f := longFrame(t)
	wide, err := f.PivotWide("country_code", "year", "value")
	if err != nil {
		t.Fatalf("PivotWide failed: %v", err)
	}

	cols := wide.Columns()
	if len(cols) != 3 || cols[0] != "country_code" || cols[1] != "2019" || cols[2] != "2020" {
		t.Fatalf("unexpected columns: %v", cols)
	}
	if wide.Len() != 2 {
		t.Fatalf("got %d rows, want 2", wide.Len())
	}
	if v, _ := wide.Row(0).Float("2019"); v != 100.0 {
		t.Errorf("USA 2019 = %v, want 100", v)
	}
	if v, _ := wide.Row(1).Float("2020"); v != 55.0 {
		t.Errorf("CHN 2020 = %v, want 55", v)
	}
}

func TestPivotWideMissingCombination(t *testing.T) {
	f, _ := New(
		[]string{"country_code", "year", "value"},
		[][]any{
			{"USA", 2019, 100.0},
			{"USA", 2020, 105.0},
			{"CHN", 2020, 55.0},
		},
	)
	wide, err := f.PivotWide("country_code", "year", "value")
	if err != nil {
		t.Fatalf("PivotWide failed: %v", err)
	}
	if !wide.Row(1).IsNull("2019") {
		t.Error("missing combination should be null")
	}
}

func TestGrowthRate(t *testing.T) {
	f := longFrame(t)
	usa := f.Filter(func(r Row) bool { return r.String("country_code") == "USA" })

	withGrowth, err := usa.GrowthRate("value", 1)
	if err != nil {
		t.Fatalf("GrowthRate failed: %v", err)
	}
	if !withGrowth.Row(0).IsNull("growth_rate") {
		t.Error("first row has no prior period, should be null")
	}
	if v, _ := withGrowth.Row(1).Float("growth_rate"); v != 5.0 {
		t.Errorf("growth = %v, want 5.0", v)
	}
}

func TestGrowthRateZeroBase(t *testing.T) {
	f, _ := New(
		[]string{"value"},
		[][]any{{0.0}, {10.0}},
	)
	withGrowth, err := f.GrowthRate("value", 1)
	if err != nil {
		t.Fatalf("GrowthRate failed: %v", err)
	}
	if !withGrowth.Row(1).IsNull("growth_rate") {
		t.Error("zero base should yield null, not infinity")
	}
}

func TestGrowthRateByGroupBoundary(t *testing.T) {
	f, _ := New(
		[]string{"country_code", "year", "value"},
		[][]any{
			{"CAN", 2019, 100.0},
			{"CAN", 2020, 110.0},
			{"USA", 2019, 50.0},
			{"USA", 2020, 55.0},
		},
	)

	withGrowth, err := f.GrowthRateBy("country_code", "value", 1)
	if err != nil {
		t.Fatalf("GrowthRateBy failed: %v", err)
	}
	if !withGrowth.Row(0).IsNull("growth_rate") {
		t.Error("CAN first year has no prior period, should be null")
	}
	if v, _ := withGrowth.Row(1).Float("growth_rate"); v != 10.0 {
		t.Errorf("CAN growth = %v, want 10.0", v)
	}
	if !withGrowth.Row(2).IsNull("growth_rate") {
		t.Error("USA first year should be null, not computed against CAN")
	}
	if v, _ := withGrowth.Row(3).Float("growth_rate"); v != 10.0 {
		t.Errorf("USA growth = %v, want 10.0", v)
	}
}

func TestRank(t *testing.T) {
	f, _ := New(
		[]string{"country_code", "value"},
		[][]any{
			{"USA", 100.0},
			{"CHN", 50.0},
			{"IND", nil},
			{"BRA", 75.0},
		},
	)

	ranked, err := f.Rank("value", true)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if r, _ := ranked.Row(0).Int("rank"); r != 1 {
		t.Errorf("USA rank = %d, want 1", r)
	}
	if r, _ := ranked.Row(1).Int("rank"); r != 3 {
		t.Errorf("CHN rank = %d, want 3", r)
	}
	if r, _ := ranked.Row(3).Int("rank"); r != 2 {
		t.Errorf("BRA rank = %d, want 2", r)
	}
	if !ranked.Row(2).IsNull("rank") {
		t.Error("null value should be unranked")
	}
}

func TestAggregateBy(t *testing.T) {
	f, _ := New(
		[]string{"region", "value"},
		[][]any{
			{"Asia", 10.0},
			{"Asia", 20.0},
			{"Europe", 30.0},
			{"Europe", nil},
		},
	)

	agg, err := f.AggregateBy("region", "value", AggMean)
	if err != nil {
		t.Fatalf("AggregateBy failed: %v", err)
	}
	cols := agg.Columns()
	if len(cols) != 2 || cols[0] != "region" || cols[1] != "value_mean" {
		t.Fatalf("unexpected columns: %v", cols)
	}
	if agg.Len() != 2 {
		t.Fatalf("got %d groups, want 2", agg.Len())
	}
	if v, _ := agg.Row(0).Float("value_mean"); v != 15.0 {
		t.Errorf("Asia mean = %v, want 15", v)
	}
	if v, _ := agg.Row(1).Float("value_mean"); v != 30.0 {
		t.Errorf("Europe mean = %v, want 30 (null skipped)", v)
	}
}

func TestAggregateByMissingColumn(t *testing.T) {
	f := longFrame(t)
	if _, err := f.AggregateBy("region", "value", AggMean); errors.GetCode(err) != errors.CodeColumnMissing {
		t.Errorf("expected COLUMN_MISSING, got %v", err)
	}
}

func TestAggregateByUnknownFn(t *testing.T) {
	f := longFrame(t)
	if _, err := f.AggregateBy("country_code", "value", "mode"); err == nil {
		t.Error("expected error for unsupported aggregation")
	}
}

func TestLatestYear(t *testing.T) {
	f := longFrame(t)
	latest, err := f.LatestYear("country_code", "year")
	if err != nil {
		t.Fatalf("LatestYear failed: %v", err)
	}
	if latest.Len() != 2 {
		t.Fatalf("got %d rows, want 2", latest.Len())
	}
	for i := 0; i < latest.Len(); i++ {
		if y, _ := latest.Row(i).Int("year"); y != 2020 {
			t.Errorf("row %d year = %d, want 2020", i, y)
		}
	}
}

func TestDescribe(t *testing.T) {
	f, _ := New(
		[]string{"value"},
		[][]any{{1.0}, {2.0}, {3.0}, {4.0}, {nil}},
	)

	summary, err := f.Describe("value")
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if summary.Count != 4 {
		t.Errorf("Count = %d, want 4", summary.Count)
	}
	if summary.Mean != 2.5 {
		t.Errorf("Mean = %v, want 2.5", summary.Mean)
	}
	if summary.Min != 1.0 || summary.Max != 4.0 {
		t.Errorf("Min/Max = %v/%v", summary.Min, summary.Max)
	}
	if summary.Median != 2.5 {
		t.Errorf("Median = %v, want 2.5", summary.Median)
	}
}

func TestDescribeEmpty(t *testing.T) {
	f := Empty("value")
	if _, err := f.Describe("value"); errors.GetCode(err) != errors.CodeEmptyResult {
		t.Errorf("expected EMPTY_RESULT, got %v", err)
	}
}
