package frame

import (
	"fmt"
	"sort"

	"github.com/bedwards/wdi-go/internal/errors"
	"github.com/montanaflynn/stats"
)

// PivotWide reshapes long-format rows into one row per index value with
// a column per distinct on-value (typically years). Columns appear in
// ascending on-value order; missing combinations stay null.
func (f *Frame) PivotWide(indexCol, onCol, valueCol string) (*Frame, error) {
	idxJ, err := f.colIndex(indexCol)
	if err != nil {
		return nil, err
	}
	onJ, err := f.colIndex(onCol)
	if err != nil {
		return nil, err
	}
	valJ, err := f.colIndex(valueCol)
	if err != nil {
		return nil, err
	}

	var onValues []any
	seenOn := make(map[string]bool)
	var indexValues []any
	cells := make(map[string]map[string]any)
	for _, row := range f.rows {
		idx, on := row[idxJ], row[onJ]
		if idx == nil || on == nil {
			continue
		}
		idxKey, onKey := fmt.Sprint(idx), fmt.Sprint(on)
		if !seenOn[onKey] {
			seenOn[onKey] = true
			onValues = append(onValues, on)
		}
		if _, ok := cells[idxKey]; !ok {
			cells[idxKey] = make(map[string]any)
			indexValues = append(indexValues, idx)
		}
		cells[idxKey][onKey] = row[valJ]
	}

	sort.Slice(onValues, func(a, b int) bool { return cellLess(onValues[a], onValues[b]) })

	cols := []string{indexCol}
	for _, on := range onValues {
		cols = append(cols, fmt.Sprint(on))
	}
	rows := make([][]any, len(indexValues))
	for i, idx := range indexValues {
		row := make([]any, len(cols))
		row[0] = idx
		for k, on := range onValues {
			row[k+1] = cells[fmt.Sprint(idx)][fmt.Sprint(on)]
		}
		rows[i] = row
	}
	return New(cols, rows)
}

// GrowthRate appends a growth_rate column holding the period-over-period
// percent change of valueCol, computed over the frame as ordered. The
// first periods rows, and rows without a usable base value, stay null.
func (f *Frame) GrowthRate(valueCol string, periods int) (*Frame, error) {
	j, err := f.colIndex(valueCol)
	if err != nil {
		return nil, err
	}
	if periods < 1 {
		periods = 1
	}
	return f.WithColumn("growth_rate", func(r Row) any {
		i := r.i
		if i < periods {
			return nil
		}
		current, ok := asFloat(f.rows[i][j])
		if !ok {
			return nil
		}
		base, ok := asFloat(f.rows[i-periods][j])
		if !ok || base == 0 {
			return nil
		}
		return (current - base) / base * 100
	})
}

// GrowthRateBy appends growth_rate computed within each group in frame
// order, so a group's first periods rows stay null instead of picking
// up the tail of the previous group.
func (f *Frame) GrowthRateBy(groupCol, valueCol string, periods int) (*Frame, error) {
	groupJ, err := f.colIndex(groupCol)
	if err != nil {
		return nil, err
	}
	valJ, err := f.colIndex(valueCol)
	if err != nil {
		return nil, err
	}
	if periods < 1 {
		periods = 1
	}

	seen := make(map[string][]int)
	growth := make([]any, len(f.rows))
	for i, row := range f.rows {
		g := row[groupJ]
		if g == nil {
			continue
		}
		key := fmt.Sprint(g)
		history := seen[key]
		seen[key] = append(history, i)
		if len(history) < periods {
			continue
		}
		current, ok := asFloat(row[valJ])
		if !ok {
			continue
		}
		base, ok := asFloat(f.rows[history[len(history)-periods]][valJ])
		if !ok || base == 0 {
			continue
		}
		growth[i] = (current - base) / base * 100
	}

	return f.WithColumn("growth_rate", func(r Row) any {
		return growth[r.i]
	})
}

// Rank appends an ordinal rank column over valueCol, 1 for the first
// position. Nulls are unranked. Ties keep their original order.
func (f *Frame) Rank(valueCol string, descending bool) (*Frame, error) {
	j, err := f.colIndex(valueCol)
	if err != nil {
		return nil, err
	}

	var order []int
	for i, row := range f.rows {
		if row[j] != nil {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		va, vb := f.rows[order[a]][j], f.rows[order[b]][j]
		if descending {
			va, vb = vb, va
		}
		return cellLess(va, vb)
	})
	ranks := make(map[int]int, len(order))
	for pos, i := range order {
		ranks[i] = pos + 1
	}

	return f.WithColumn("rank", func(r Row) any {
		rank, ok := ranks[r.i]
		if !ok {
			return nil
		}
		return rank
	})
}

// Aggregations supported by AggregateBy.
const (
	AggMean   = "mean"
	AggMedian = "median"
	AggSum    = "sum"
	AggMin    = "min"
	AggMax    = "max"
	AggStdDev = "stddev"
)

// AggregateBy groups rows on groupCol and reduces valueCol with the
// named aggregation. Output columns are groupCol and valueCol_fn, with
// groups in order of first appearance.
func (f *Frame) AggregateBy(groupCol, valueCol, fn string) (*Frame, error) {
	groupJ, err := f.colIndex(groupCol)
	if err != nil {
		return nil, err
	}
	valJ, err := f.colIndex(valueCol)
	if err != nil {
		return nil, err
	}

	var groups []any
	grouped := make(map[string][]float64)
	for _, row := range f.rows {
		g := row[groupJ]
		if g == nil {
			continue
		}
		key := fmt.Sprint(g)
		if _, ok := grouped[key]; !ok {
			groups = append(groups, g)
			grouped[key] = nil
		}
		if v, ok := asFloat(row[valJ]); ok {
			grouped[key] = append(grouped[key], v)
		}
	}

	cols := []string{groupCol, fmt.Sprintf("%s_%s", valueCol, fn)}
	rows := make([][]any, 0, len(groups))
	for _, g := range groups {
		agg, err := aggregate(grouped[fmt.Sprint(g)], fn)
		if err != nil {
			return nil, err
		}
		rows = append(rows, []any{g, agg})
	}
	return New(cols, rows)
}

func aggregate(values []float64, fn string) (any, error) {
	if len(values) == 0 {
		return nil, nil
	}
	var (
		v   float64
		err error
	)
	switch fn {
	case AggMean:
		v, err = stats.Mean(values)
	case AggMedian:
		v, err = stats.Median(values)
	case AggSum:
		v, err = stats.Sum(values)
	case AggMin:
		v, err = stats.Min(values)
	case AggMax:
		v, err = stats.Max(values)
	case AggStdDev:
		v, err = stats.StandardDeviation(values)
	default:
		return nil, errors.InternalError(fmt.Sprintf("unsupported aggregation %q", fn))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "aggregation %s failed", fn)
	}
	return v, nil
}

// LatestYear keeps the rows whose year matches the per-group maximum,
// the standard way to snapshot the freshest observation per country.
func (f *Frame) LatestYear(groupCol, yearCol string) (*Frame, error) {
	groupJ, err := f.colIndex(groupCol)
	if err != nil {
		return nil, err
	}
	yearJ, err := f.colIndex(yearCol)
	if err != nil {
		return nil, err
	}

	maxYear := make(map[string]float64)
	for _, row := range f.rows {
		g := row[groupJ]
		y, ok := asFloat(row[yearJ])
		if g == nil || !ok {
			continue
		}
		key := fmt.Sprint(g)
		if current, ok := maxYear[key]; !ok || y > current {
			maxYear[key] = y
		}
	}

	return f.Filter(func(r Row) bool {
		g := r.Value(groupCol)
		y, ok := r.Float(yearCol)
		if g == nil || !ok {
			return false
		}
		return y == maxYear[fmt.Sprint(g)]
	}), nil
}
