package postgres

import (
	"fmt"

	"github.com/bedwards/wdi-go/ports"
)

// Query builders are pure so the generated SQL stays testable without a
// live database. Placeholders are numbered in argument order.

func buildCountriesQuery(filter ports.CountryFilter) (string, []any) {
	query := "SELECT country_code, country_name, region, income_group FROM wdi.countries WHERE 1=1"
	var args []any

	if filter.Region != "" {
		args = append(args, filter.Region)
		query += fmt.Sprintf(" AND region = $%d", len(args))
	}
	if filter.IncomeGroup != "" {
		args = append(args, filter.IncomeGroup)
		query += fmt.Sprintf(" AND income_group = $%d", len(args))
	}

	query += " ORDER BY country_name"
	return query, args
}

func buildIndicatorsQuery(filter ports.IndicatorFilter) (string, []any) {
	query := "SELECT * FROM wdi.indicators WHERE 1=1"
	var args []any

	if filter.Topic != "" {
		args = append(args, filter.Topic)
		query += fmt.Sprintf(" AND topic = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND LOWER(indicator_name) LIKE LOWER($%d)", len(args))
	}

	query += " ORDER BY indicator_name"
	return query, args
}

func buildValuesQuery(filter ports.ValuesFilter) (string, []any) {
	query := "SELECT * FROM wdi.values WHERE indicator_code = $1"
	args := []any{filter.IndicatorCode}

	if filter.Year != 0 {
		args = append(args, filter.Year)
		query += fmt.Sprintf(" AND year = $%d", len(args))
	} else {
		if filter.StartYear != 0 {
			args = append(args, filter.StartYear)
			query += fmt.Sprintf(" AND year >= $%d", len(args))
		}
		if filter.EndYear != 0 {
			args = append(args, filter.EndYear)
			query += fmt.Sprintf(" AND year <= $%d", len(args))
		}
	}
	if filter.CountryCode != "" {
		args = append(args, filter.CountryCode)
		query += fmt.Sprintf(" AND country_code = $%d", len(args))
	}

	query += " ORDER BY country_name, year"
	return query, args
}
