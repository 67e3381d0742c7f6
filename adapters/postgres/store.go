package postgres

import (
	"context"
	"strconv"

	"github.com/bedwards/wdi-go/domain/frame"
	"github.com/bedwards/wdi-go/internal"
	"github.com/bedwards/wdi-go/internal/config"
	"github.com/bedwards/wdi-go/internal/errors"
	"github.com/bedwards/wdi-go/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Store implements ports.Store over a PostgreSQL database holding the
// wdi.countries, wdi.indicators, and wdi.values tables.
type Store struct {
	db  *sqlx.DB
	log *internal.Logger
}

// Open connects to the database and verifies the connection.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	db, err := sqlx.Connect("postgres", cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	return NewStore(db), nil
}

// NewStore wraps an existing connection.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db, log: internal.DefaultLogger}
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Query executes arbitrary SQL and marshals the rows into a frame,
// preserving column order. Numeric columns that the driver surfaces as
// raw bytes are converted to float64.
func (s *Store) Query(ctx context.Context, query string, args ...any) (*frame.Frame, error) {
	s.log.Debug("executing query: %s", query)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.QueryFailed(err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.QueryFailed(err)
	}

	var data [][]any
	for rows.Next() {
		cells := make([]any, len(cols))
		dests := make([]any, len(cols))
		for i := range cells {
			dests[i] = &cells[i]
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, errors.Wrap(err, "failed to scan row")
		}
		for i, cell := range cells {
			cells[i] = convertCell(cell)
		}
		data = append(data, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.QueryFailed(err)
	}

	s.log.Debug("query returned %d rows", len(data))
	return frame.New(cols, data)
}

// Countries returns country metadata, optionally filtered by region or
// income group, ordered by country name.
func (s *Store) Countries(ctx context.Context, filter ports.CountryFilter) (*frame.Frame, error) {
	query, args := buildCountriesQuery(filter)
	return s.Query(ctx, query, args...)
}

// Indicators returns the indicator catalog, optionally filtered by
// topic or a case-insensitive name search, ordered by indicator name.
func (s *Store) Indicators(ctx context.Context, filter ports.IndicatorFilter) (*frame.Frame, error) {
	query, args := buildIndicatorsQuery(filter)
	return s.Query(ctx, query, args...)
}

// Values returns indicator observations ordered by country name then
// year. The indicator code is required; a specific year overrides the
// start/end range.
func (s *Store) Values(ctx context.Context, filter ports.ValuesFilter) (*frame.Frame, error) {
	if filter.IndicatorCode == "" {
		return nil, errors.InvalidInput("indicator code is required")
	}
	query, args := buildValuesQuery(filter)
	return s.Query(ctx, query, args...)
}

// convertCell normalizes driver values for in-memory use. lib/pq hands
// NUMERIC columns back as raw bytes; those become float64, anything
// else textual stays a string.
func convertCell(v any) any {
	switch v := v.(type) {
	case []byte:
		if f, err := strconv.ParseFloat(string(v), 64); err == nil {
			return f
		}
		return string(v)
	default:
		return v
	}
}
