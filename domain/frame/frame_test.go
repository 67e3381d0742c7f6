package frame

import (
	"testing"

	"github.com/bedwards/wdi-go/internal/errors"
)

func testFrame(t *testing.T) *Frame {
	t.Helper()
	f, err := New(
		[]string{"country_code", "country_name", "year", "value"},
		[][]any{
			{"USA", "United States", 2019, 100.0},
			{"USA", "United States", 2020, 105.0},
			{"CHN", "China", 2019, 50.0},
			{"CHN", "China", 2020, 55.0},
			{"IND", "India", 2020, nil},
		},
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return f
}

func TestNewValidation(t *testing.T) {
	if _, err := New([]string{"a", "a"}, nil); err == nil {
		t.Error("expected error for duplicate column names")
	}
	if _, err := New([]string{"a", "b"}, [][]any{{1}}); err == nil {
		t.Error("expected error for ragged row")
	}
}

func TestColumnsAndLen(t *testing.T) {
	f := testFrame(t)
	if f.Len() != 5 {
		t.Errorf("Len = %d, want 5", f.Len())
	}
	cols := f.Columns()
	if len(cols) != 4 || cols[0] != "country_code" || cols[3] != "value" {
		t.Errorf("unexpected columns: %v", cols)
	}
	if !f.HasColumn("year") || f.HasColumn("region") {
		t.Error("HasColumn misreported")
	}
}

func TestRowAccessors(t *testing.T) {
	f := testFrame(t)
	r := f.Row(0)

	if got := r.String("country_code"); got != "USA" {
		t.Errorf("String = %q, want USA", got)
	}
	if v, ok := r.Float("value"); !ok || v != 100.0 {
		t.Errorf("Float = %v, %v", v, ok)
	}
	if y, ok := r.Int("year"); !ok || y != 2019 {
		t.Errorf("Int = %v, %v", y, ok)
	}
	if !f.Row(4).IsNull("value") {
		t.Error("expected null value in last row")
	}
	if f.Row(4).String("value") != "" {
		t.Error("String of null should be empty")
	}
}

func TestFloatsSkipsNulls(t *testing.T) {
	f := testFrame(t)
	values, err := f.Floats("value")
	if err != nil {
		t.Fatalf("Floats failed: %v", err)
	}
	if len(values) != 4 {
		t.Errorf("got %d values, want 4 (null skipped)", len(values))
	}

	if _, err := f.Floats("missing"); errors.GetCode(err) != errors.CodeColumnMissing {
		t.Errorf("expected COLUMN_MISSING, got %v", err)
	}
}

func TestUnique(t *testing.T) {
	f := testFrame(t)
	values, err := f.Unique("country_code")
	if err != nil {
		t.Fatalf("Unique failed: %v", err)
	}
	want := []any{"USA", "CHN", "IND"}
	if len(values) != len(want) {
		t.Fatalf("got %d uniques, want %d", len(values), len(want))
	}
	for i, v := range want {
		if values[i] != v {
			t.Errorf("uniques[%d] = %v, want %v", i, values[i], v)
		}
	}
}

func TestRecords(t *testing.T) {
	f := testFrame(t)
	records := f.Records()
	if len(records) != 5 {
		t.Fatalf("got %d records", len(records))
	}
	if records[0]["country_code"] != "USA" || records[0]["value"] != 100.0 {
		t.Errorf("unexpected first record: %v", records[0])
	}
	if records[4]["value"] != nil {
		t.Error("null cell should stay nil in records")
	}
}

func TestIsNumeric(t *testing.T) {
	f := testFrame(t)
	if !f.IsNumeric("value") {
		t.Error("value should be numeric")
	}
	if f.IsNumeric("country_name") {
		t.Error("country_name should not be numeric")
	}
}

func TestSelect(t *testing.T) {
	f := testFrame(t)
	sub, err := f.Select("country_code", "value")
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if len(sub.Columns()) != 2 || sub.Len() != 5 {
		t.Errorf("unexpected shape: %v x %d", sub.Columns(), sub.Len())
	}
	if _, err := f.Select("nope"); errors.GetCode(err) != errors.CodeColumnMissing {
		t.Errorf("expected COLUMN_MISSING, got %v", err)
	}
}

func TestFilterAndDropNull(t *testing.T) {
	f := testFrame(t)

	usa := f.Filter(func(r Row) bool { return r.String("country_code") == "USA" })
	if usa.Len() != 2 {
		t.Errorf("filter kept %d rows, want 2", usa.Len())
	}

	clean := f.DropNull("value")
	if clean.Len() != 4 {
		t.Errorf("DropNull kept %d rows, want 4", clean.Len())
	}
	if f.DropNull().Len() != 4 {
		t.Error("DropNull() without columns should consider every column")
	}
}

func TestRename(t *testing.T) {
	f := testFrame(t)
	renamed, err := f.Rename("value", "x_value")
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if !renamed.HasColumn("x_value") || renamed.HasColumn("value") {
		t.Errorf("columns after rename: %v", renamed.Columns())
	}
}

func TestSort(t *testing.T) {
	f := testFrame(t)
	asc, err := f.Sort("value", false)
	if err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	if v, _ := asc.Row(0).Float("value"); v != 50.0 {
		t.Errorf("first ascending value = %v, want 50", v)
	}
	if !asc.Row(asc.Len() - 1).IsNull("value") {
		t.Error("nulls should sort last ascending")
	}

	desc, err := f.Sort("value", true)
	if err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	if v, _ := desc.Row(0).Float("value"); v != 105.0 {
		t.Errorf("first descending value = %v, want 105", v)
	}
	if !desc.Row(desc.Len() - 1).IsNull("value") {
		t.Error("nulls should sort last descending too")
	}
}

func TestLeftJoin(t *testing.T) {
	f := testFrame(t)
	meta, err := New(
		[]string{"country_code", "region", "income_group"},
		[][]any{
			{"USA", "North America", "High income"},
			{"CHN", "East Asia & Pacific", "Upper middle income"},
		},
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	joined, err := f.LeftJoin(meta, "country_code", "region")
	if err != nil {
		t.Fatalf("LeftJoin failed: %v", err)
	}
	if joined.Len() != f.Len() {
		t.Errorf("left join changed row count: %d", joined.Len())
	}
	if got := joined.Row(0).String("region"); got != "North America" {
		t.Errorf("region = %q", got)
	}
	if !joined.Row(4).IsNull("region") {
		t.Error("unmatched row should carry null region")
	}
}

func TestInnerJoinSuffixesCollisions(t *testing.T) {
	x, _ := New(
		[]string{"country_code", "value"},
		[][]any{{"USA", 1.0}, {"CHN", 2.0}, {"BRA", 3.0}},
	)
	y, _ := New(
		[]string{"country_code", "value"},
		[][]any{{"USA", 10.0}, {"CHN", 20.0}},
	)

	joined, err := x.InnerJoin(y, "country_code")
	if err != nil {
		t.Fatalf("InnerJoin failed: %v", err)
	}
	if joined.Len() != 2 {
		t.Errorf("inner join kept %d rows, want 2", joined.Len())
	}
	if !joined.HasColumn("value_y") {
		t.Errorf("expected value_y column, got %v", joined.Columns())
	}
	if v, _ := joined.Row(0).Float("value_y"); v != 10.0 {
		t.Errorf("value_y = %v, want 10", v)
	}
}

func TestInnerJoinDuplicateRightKeys(t *testing.T) {
	x, _ := New(
		[]string{"country_code", "value"},
		[][]any{{"USA", 1.0}},
	)
	y, _ := New(
		[]string{"country_code", "region"},
		[][]any{
			{"USA", "North America"},
			{"USA", "duplicate"},
		},
	)

	joined, err := x.InnerJoin(y, "country_code")
	if err != nil {
		t.Fatalf("InnerJoin failed: %v", err)
	}
	if joined.Len() != 1 {
		t.Fatalf("duplicate right keys should not multiply rows, got %d", joined.Len())
	}
	if got := joined.Row(0).String("region"); got != "North America" {
		t.Errorf("region = %q, want first match", got)
	}
}

func TestWithColumn(t *testing.T) {
	f := testFrame(t)
	doubled, err := f.WithColumn("double", func(r Row) any {
		v, ok := r.Float("value")
		if !ok {
			return nil
		}
		return v * 2
	})
	if err != nil {
		t.Fatalf("WithColumn failed: %v", err)
	}
	if v, _ := doubled.Row(0).Float("double"); v != 200.0 {
		t.Errorf("double = %v, want 200", v)
	}
	if !doubled.Row(4).IsNull("double") {
		t.Error("derived cell over null should stay null")
	}
}
