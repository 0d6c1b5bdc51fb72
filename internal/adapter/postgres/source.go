// Package postgres reads the price table from Postgres and seeds it for
// local development.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/couchcryptid/market-prices-dashboard/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Source implements dataset.Source with a SELECT * over the price table.
type Source struct {
	pool   *pgxpool.Pool
	table  pgx.Identifier
	logger *slog.Logger
}

// NewSource creates a pooled source. No connection is made until Fetch.
func NewSource(ctx context.Context, databaseURL, table string, connectTimeout time.Duration, logger *slog.Logger) (*Source, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	cfg.ConnConfig.ConnectTimeout = connectTimeout
	cfg.MaxConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: create pool: %w", domain.ErrConnection, err)
	}
	return &Source{pool: pool, table: TableIdentifier(table), logger: logger}, nil
}

// TableIdentifier splits a possibly schema-qualified table name.
func TableIdentifier(table string) pgx.Identifier {
	return pgx.Identifier(strings.Split(strings.TrimSpace(table), "."))
}

// Fetch reads every row of the price table.
func (s *Source) Fetch(ctx context.Context) ([]domain.PriceRecord, error) {
	query := "SELECT * FROM " + s.table.Sanitize()
	s.logger.Debug("fetching price table", "table", s.table.Sanitize())

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f.Name
	}
	idx, err := domain.MapColumns(header)
	if err != nil {
		return nil, err
	}

	var records []domain.PriceRecord
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, classify(err)
		}
		rec, err := recordFromValues(values, idx)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return records, nil
}

// Ping checks that the store is reachable.
func (s *Source) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return classify(err)
	}
	return nil
}

// Close releases pooled connections.
func (s *Source) Close() {
	s.pool.Close()
}

// Postgres error codes that mean the table does not have the expected shape.
const (
	codeUndefinedTable  = "42P01"
	codeUndefinedColumn = "42703"
)

// classify maps driver errors onto the domain error kinds. Server-reported
// errors about missing relations are schema errors; anything that never
// reached the server is a connection error.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUndefinedTable, codeUndefinedColumn:
			return fmt.Errorf("%w: %s", domain.ErrSchema, pgErr.Message)
		}
		return fmt.Errorf("query price table: %w", err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrConnection, err)
}
