package app

import (
	"github.com/bedwards/wdi-go/domain/frame"
	"github.com/bedwards/wdi-go/internal/errors"

	"gonum.org/v1/gonum/stat"
)

// PairStats summarizes the linear relationship between two numeric
// columns: Pearson correlation and ordinary least squares intercept and
// slope over the paired non-null observations.
type PairStats struct {
	N     int
	R     float64
	Alpha float64
	Beta  float64
}

// ComputePairStats computes correlation and a least-squares fit for a
// paired-indicator frame. Rows missing either value are skipped.
func ComputePairStats(f *frame.Frame, xCol, yCol string) (PairStats, error) {
	if !f.HasColumn(xCol) {
		return PairStats{}, errors.ColumnMissing(xCol)
	}
	if !f.HasColumn(yCol) {
		return PairStats{}, errors.ColumnMissing(yCol)
	}

	var xs, ys []float64
	for i := 0; i < f.Len(); i++ {
		row := f.Row(i)
		x, okX := row.Float(xCol)
		y, okY := row.Float(yCol)
		if !okX || !okY {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if len(xs) < 2 {
		return PairStats{}, errors.EmptyResult("paired observations")
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return PairStats{
		N:     len(xs),
		R:     stat.Correlation(xs, ys, nil),
		Alpha: alpha,
		Beta:  beta,
	}, nil
}
