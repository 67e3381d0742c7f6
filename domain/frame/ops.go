package frame

import (
	"fmt"
	"sort"
	"strings"
)

// Select returns a frame containing only the named columns, in the
// requested order.
func (f *Frame) Select(cols ...string) (*Frame, error) {
	indices := make([]int, len(cols))
	for i, col := range cols {
		j, err := f.colIndex(col)
		if err != nil {
			return nil, err
		}
		indices[i] = j
	}
	rows := make([][]any, len(f.rows))
	for i, row := range f.rows {
		out := make([]any, len(indices))
		for k, j := range indices {
			out[k] = row[j]
		}
		rows[i] = out
	}
	return New(cols, rows)
}

// Filter returns the rows for which keep reports true.
func (f *Frame) Filter(keep func(Row) bool) *Frame {
	var rows [][]any
	for i := range f.rows {
		if keep(Row{f: f, i: i}) {
			rows = append(rows, f.rows[i])
		}
	}
	return f.withRows(rows)
}

// DropNull removes rows holding a null in any of the named columns.
// With no columns it considers every column.
func (f *Frame) DropNull(cols ...string) *Frame {
	if len(cols) == 0 {
		cols = f.cols
	}
	return f.Filter(func(r Row) bool {
		for _, col := range cols {
			if r.IsNull(col) {
				return false
			}
		}
		return true
	})
}

// WithColumn appends a derived column computed per row.
func (f *Frame) WithColumn(name string, fn func(Row) any) (*Frame, error) {
	cols := append(f.Columns(), name)
	rows := make([][]any, len(f.rows))
	for i, row := range f.rows {
		rows[i] = append(append([]any(nil), row...), fn(Row{f: f, i: i}))
	}
	return New(cols, rows)
}

// Rename changes a column name in place order.
func (f *Frame) Rename(old, new string) (*Frame, error) {
	j, err := f.colIndex(old)
	if err != nil {
		return nil, err
	}
	cols := f.Columns()
	cols[j] = new
	return New(cols, f.rows)
}

// Sort returns the rows ordered by a single column, nulls last. Numeric
// cells compare numerically, everything else as strings. The sort is
// stable so prior ordering breaks ties.
func (f *Frame) Sort(col string, descending bool) (*Frame, error) {
	j, err := f.colIndex(col)
	if err != nil {
		return nil, err
	}
	rows := append([][]any(nil), f.rows...)
	sort.SliceStable(rows, func(a, b int) bool {
		va, vb := rows[a][j], rows[b][j]
		if va == nil {
			return false // nulls last in either direction
		}
		if vb == nil {
			return true
		}
		if descending {
			va, vb = vb, va
		}
		return cellLess(va, vb)
	})
	return f.withRows(rows), nil
}

// SortBy returns the rows ordered by an arbitrary comparison.
func (f *Frame) SortBy(less func(a, b Row) bool) *Frame {
	indices := make([]int, len(f.rows))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return less(Row{f: f, i: indices[a]}, Row{f: f, i: indices[b]})
	})
	rows := make([][]any, len(f.rows))
	for k, i := range indices {
		rows[k] = f.rows[i]
	}
	return f.withRows(rows)
}

// LeftJoin joins metadata columns from other onto f by equality on the
// key column. Unmatched rows keep nulls. With no columns named, every
// non-key column of other is brought across.
func (f *Frame) LeftJoin(other *Frame, on string, cols ...string) (*Frame, error) {
	if _, err := f.colIndex(on); err != nil {
		return nil, err
	}
	keyIdx, err := other.colIndex(on)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		for _, col := range other.cols {
			if col != on {
				cols = append(cols, col)
			}
		}
	}
	indices := make([]int, len(cols))
	for i, col := range cols {
		j, err := other.colIndex(col)
		if err != nil {
			return nil, err
		}
		indices[i] = j
	}

	lookup := make(map[any][]any, other.Len())
	for _, row := range other.rows {
		key := row[keyIdx]
		if key == nil {
			continue
		}
		if _, ok := lookup[key]; !ok {
			out := make([]any, len(indices))
			for k, j := range indices {
				out[k] = row[j]
			}
			lookup[key] = out
		}
	}

	outCols := append(f.Columns(), cols...)
	rows := make([][]any, len(f.rows))
	for i, row := range f.rows {
		out := append([]any(nil), row...)
		if extra, ok := lookup[row[f.index[on]]]; ok {
			out = append(out, extra...)
		} else {
			out = append(out, make([]any, len(cols))...)
		}
		rows[i] = out
	}
	return New(outCols, rows)
}

// InnerJoin joins every non-key column of other onto f by equality on
// the key column, dropping unmatched rows. Colliding column names from
// other get a "_y" suffix. Duplicate keys in other keep only their
// first row, so the result never has more rows than f.
func (f *Frame) InnerJoin(other *Frame, on string) (*Frame, error) {
	if _, err := f.colIndex(on); err != nil {
		return nil, err
	}
	keyIdx, err := other.colIndex(on)
	if err != nil {
		return nil, err
	}

	var extraCols []string
	var extraIdx []int
	for j, col := range other.cols {
		if col == on {
			continue
		}
		if f.HasColumn(col) {
			col += "_y"
		}
		extraCols = append(extraCols, col)
		extraIdx = append(extraIdx, j)
	}

	lookup := make(map[any][]any, other.Len())
	for _, row := range other.rows {
		key := row[keyIdx]
		if key == nil {
			continue
		}
		if _, ok := lookup[key]; !ok {
			out := make([]any, len(extraIdx))
			for k, j := range extraIdx {
				out[k] = row[j]
			}
			lookup[key] = out
		}
	}

	outCols := append(f.Columns(), extraCols...)
	var rows [][]any
	for _, row := range f.rows {
		extra, ok := lookup[row[f.index[on]]]
		if !ok {
			continue
		}
		rows = append(rows, append(append([]any(nil), row...), extra...))
	}
	return New(outCols, rows)
}

// cellLess orders numbers numerically and everything else by string
// rendering. Callers handle nulls.
func cellLess(a, b any) bool {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return af < bf
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b)) < 0
}
