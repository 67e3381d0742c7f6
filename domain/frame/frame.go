package frame

import (
	"fmt"

	"github.com/bedwards/wdi-go/internal/errors"
)

// Frame is an ordered, in-memory tabular result set. Cells are held as
// untyped values with nil representing SQL NULL; numeric cells are
// normalized to float64 or int by the producing layer.
type Frame struct {
	cols  []string
	index map[string]int
	rows  [][]any
}

// New creates a frame from column names and row-major cells. Every row
// must match the column count.
func New(cols []string, rows [][]any) (*Frame, error) {
	index := make(map[string]int, len(cols))
	for i, col := range cols {
		if _, ok := index[col]; ok {
			return nil, errors.InternalError(fmt.Sprintf("duplicate column %q", col))
		}
		index[col] = i
	}
	for i, row := range rows {
		if len(row) != len(cols) {
			return nil, errors.InternalError(
				fmt.Sprintf("row %d has %d cells, want %d", i, len(row), len(cols)))
		}
	}
	f := &Frame{
		cols:  append([]string(nil), cols...),
		index: index,
		rows:  make([][]any, len(rows)),
	}
	for i, row := range rows {
		f.rows[i] = append([]any(nil), row...)
	}
	return f, nil
}

// Empty creates a frame with the given columns and no rows.
func Empty(cols ...string) *Frame {
	f, _ := New(cols, nil)
	return f
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.cols...)
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.rows)
}

// HasColumn reports whether the named column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Row returns an accessor for row i.
func (f *Frame) Row(i int) Row {
	return Row{f: f, i: i}
}

// Records returns the rows as column-keyed maps, the shape chart data
// inlining expects.
func (f *Frame) Records() []map[string]any {
	records := make([]map[string]any, len(f.rows))
	for i, row := range f.rows {
		record := make(map[string]any, len(f.cols))
		for j, col := range f.cols {
			record[col] = row[j]
		}
		records[i] = record
	}
	return records
}

// Floats returns the non-null values of a column as float64, skipping
// nulls and non-numeric cells.
func (f *Frame) Floats(col string) ([]float64, error) {
	j, ok := f.index[col]
	if !ok {
		return nil, errors.ColumnMissing(col)
	}
	values := make([]float64, 0, len(f.rows))
	for _, row := range f.rows {
		if v, ok := asFloat(row[j]); ok {
			values = append(values, v)
		}
	}
	return values, nil
}

// Strings returns the column rendered as strings, with empty strings
// for nulls.
func (f *Frame) Strings(col string) ([]string, error) {
	j, ok := f.index[col]
	if !ok {
		return nil, errors.ColumnMissing(col)
	}
	values := make([]string, len(f.rows))
	for i, row := range f.rows {
		if row[j] != nil {
			values[i] = fmt.Sprint(row[j])
		}
	}
	return values, nil
}

// Unique returns the distinct non-null values of a column in order of
// first appearance.
func (f *Frame) Unique(col string) ([]any, error) {
	j, ok := f.index[col]
	if !ok {
		return nil, errors.ColumnMissing(col)
	}
	seen := make(map[any]bool)
	var values []any
	for _, row := range f.rows {
		v := row[j]
		if v == nil || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values, nil
}

// IsNumeric reports whether the first non-null cell of a column holds a
// numeric value.
func (f *Frame) IsNumeric(col string) bool {
	j, ok := f.index[col]
	if !ok {
		return false
	}
	for _, row := range f.rows {
		if row[j] == nil {
			continue
		}
		_, numeric := asFloat(row[j])
		return numeric
	}
	return false
}

// IsFloat reports whether the first non-null cell of a column holds a
// floating point value. Integer columns such as year are numeric but
// not float, which keeps them out of decimal tooltip formatting.
func (f *Frame) IsFloat(col string) bool {
	j, ok := f.index[col]
	if !ok {
		return false
	}
	for _, row := range f.rows {
		if row[j] == nil {
			continue
		}
		switch row[j].(type) {
		case float64, float32:
			return true
		}
		return false
	}
	return false
}

// Row is a cursor over a single frame row.
type Row struct {
	f *Frame
	i int
}

// Value returns the raw cell, or nil for nulls and unknown columns.
func (r Row) Value(col string) any {
	j, ok := r.f.index[col]
	if !ok {
		return nil
	}
	return r.f.rows[r.i][j]
}

// IsNull reports whether the cell is null or the column is unknown.
func (r Row) IsNull(col string) bool {
	return r.Value(col) == nil
}

// Float returns the cell as float64 when it holds a numeric value.
func (r Row) Float(col string) (float64, bool) {
	return asFloat(r.Value(col))
}

// Int returns the cell as int when it holds an integral value.
func (r Row) Int(col string) (int, bool) {
	switch v := r.Value(col).(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

// String returns the cell rendered as a string, empty for nulls.
func (r Row) String(col string) string {
	v := r.Value(col)
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func asFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func (f *Frame) colIndex(name string) (int, error) {
	j, ok := f.index[name]
	if !ok {
		return 0, errors.ColumnMissing(name)
	}
	return j, nil
}

func (f *Frame) withRows(rows [][]any) *Frame {
	return &Frame{cols: f.cols, index: f.index, rows: rows}
}
