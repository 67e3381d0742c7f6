package ports

import (
	"context"

	"github.com/bedwards/wdi-go/domain/frame"
)

// CountryFilter narrows country metadata queries. Zero values mean no
// filtering.
type CountryFilter struct {
	Region      string
	IncomeGroup string
}

// IndicatorFilter narrows indicator catalog queries. Search matches
// indicator names case-insensitively.
type IndicatorFilter struct {
	Topic  string
	Search string
}

// ValuesFilter narrows time-series value queries. IndicatorCode is
// required. Year, when set, overrides the StartYear/EndYear range
// (both inclusive).
type ValuesFilter struct {
	IndicatorCode string
	Year          int
	StartYear     int
	EndYear       int
	CountryCode   string
}

// Store is the read-side port over the indicator database. All results
// arrive as frames preserving the query's column order.
type Store interface {
	Countries(ctx context.Context, filter CountryFilter) (*frame.Frame, error)
	Indicators(ctx context.Context, filter IndicatorFilter) (*frame.Frame, error)
	Values(ctx context.Context, filter ValuesFilter) (*frame.Frame, error)
	Query(ctx context.Context, query string, args ...any) (*frame.Frame, error)
}
