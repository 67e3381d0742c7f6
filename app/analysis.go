package app

import (
	"context"
	"fmt"

	"github.com/bedwards/wdi-go/domain/frame"
	"github.com/bedwards/wdi-go/internal"
	"github.com/bedwards/wdi-go/internal/errors"
	"github.com/bedwards/wdi-go/ports"
)

// Analysis prepares chart-ready frames from the indicator store. Every
// method is a synchronous query-then-reshape pipeline.
type Analysis struct {
	store ports.Store
	log   *internal.Logger
}

// NewAnalysis creates the analysis service over a store.
func NewAnalysis(store ports.Store) *Analysis {
	return &Analysis{store: store, log: internal.DefaultLogger}
}

// IndicatorDataRequest selects a single indicator's observations with
// optional country metadata joined on.
type IndicatorDataRequest struct {
	IndicatorCode      string
	Year               int
	StartYear          int
	EndYear            int
	IncludeRegion      bool
	IncludeIncomeGroup bool
}

// IndicatorData returns observations for one indicator, left-joined
// with region and income group metadata when requested.
func (a *Analysis) IndicatorData(ctx context.Context, req IndicatorDataRequest) (*frame.Frame, error) {
	values, err := a.store.Values(ctx, ports.ValuesFilter{
		IndicatorCode: req.IndicatorCode,
		Year:          req.Year,
		StartYear:     req.StartYear,
		EndYear:       req.EndYear,
	})
	if err != nil {
		return nil, err
	}

	return a.joinCountryMetadata(ctx, values, req.IncludeRegion, req.IncludeIncomeGroup)
}

// IndicatorPairsRequest pairs two indicators for one year, typically
// for a scatter plot.
type IndicatorPairsRequest struct {
	IndicatorX         string
	IndicatorY         string
	Year               int
	IncludeRegion      bool
	IncludeIncomeGroup bool
}

// IndicatorPairs inner-joins two indicators on country, renaming the
// value columns to x_value and y_value. Countries reporting only one of
// the two indicators drop out of the join.
func (a *Analysis) IndicatorPairs(ctx context.Context, req IndicatorPairsRequest) (*frame.Frame, error) {
	fx, err := a.store.Values(ctx, ports.ValuesFilter{IndicatorCode: req.IndicatorX, Year: req.Year})
	if err != nil {
		return nil, err
	}
	fy, err := a.store.Values(ctx, ports.ValuesFilter{IndicatorCode: req.IndicatorY, Year: req.Year})
	if err != nil {
		return nil, err
	}

	fySlim, err := fy.Select("country_code", "value")
	if err != nil {
		return nil, err
	}
	joined, err := fx.InnerJoin(fySlim, "country_code")
	if err != nil {
		return nil, err
	}
	if joined.Len() == 0 {
		return nil, errors.EmptyResult(
			fmt.Sprintf("indicator pair %s/%s for %d", req.IndicatorX, req.IndicatorY, req.Year))
	}

	joined, err = joined.Rename("value", "x_value")
	if err != nil {
		return nil, err
	}
	joined, err = joined.Rename("value_y", "y_value")
	if err != nil {
		return nil, err
	}

	a.log.Debug("paired %d countries for %s vs %s", joined.Len(), req.IndicatorX, req.IndicatorY)
	return a.joinCountryMetadata(ctx, joined, req.IncludeRegion, req.IncludeIncomeGroup)
}

// TimeSeries returns one indicator's observations for the named
// countries over an optional year range.
func (a *Analysis) TimeSeries(ctx context.Context, indicatorCode string, countryCodes []string, startYear, endYear int) (*frame.Frame, error) {
	values, err := a.store.Values(ctx, ports.ValuesFilter{
		IndicatorCode: indicatorCode,
		StartYear:     startYear,
		EndYear:       endYear,
	})
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(countryCodes))
	for _, code := range countryCodes {
		wanted[code] = true
	}
	series := values.Filter(func(r frame.Row) bool {
		return wanted[r.String("country_code")]
	})
	if series.Len() == 0 {
		return nil, errors.EmptyResult(fmt.Sprintf("time series for %s", indicatorCode))
	}
	return series, nil
}

func (a *Analysis) joinCountryMetadata(ctx context.Context, f *frame.Frame, includeRegion, includeIncomeGroup bool) (*frame.Frame, error) {
	if !includeRegion && !includeIncomeGroup {
		return f, nil
	}

	countries, err := a.store.Countries(ctx, ports.CountryFilter{})
	if err != nil {
		return nil, err
	}

	var cols []string
	if includeRegion {
		cols = append(cols, "region")
	}
	if includeIncomeGroup {
		cols = append(cols, "income_group")
	}
	return f.LeftJoin(countries, "country_code", cols...)
}
