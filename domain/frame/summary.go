package frame

import (
	"github.com/bedwards/wdi-go/internal/errors"
	"github.com/montanaflynn/stats"
)

// SummaryStats holds descriptive statistics for a numeric column.
type SummaryStats struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Median float64
	Q25    float64
	Q75    float64
}

// Describe computes descriptive statistics over the non-null values of
// a column.
func (f *Frame) Describe(col string) (SummaryStats, error) {
	values, err := f.Floats(col)
	if err != nil {
		return SummaryStats{}, err
	}
	if len(values) == 0 {
		return SummaryStats{}, errors.EmptyResult("column " + col)
	}

	mean, _ := stats.Mean(values)
	stdDev, _ := stats.StandardDeviation(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	median, _ := stats.Median(values)
	q25, _ := stats.Percentile(values, 25)
	q75, _ := stats.Percentile(values, 75)

	return SummaryStats{
		Count:  len(values),
		Mean:   mean,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		Median: median,
		Q25:    q25,
		Q75:    q75,
	}, nil
}
