package postgres

import (
	"context"
	"fmt"

	"github.com/couchcryptid/market-prices-dashboard/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// copyColumns is the column order used by CreateTable and CopyRecords.
var copyColumns = []string{"county", "market", "Commodity", "unit", "kg", "price", "year", "month"}

// Execer is the subset of pgx.Conn and pgxpool.Pool used for seeding.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// CreateTable creates the price table if it does not exist. The mixed-case
// "Commodity" column matches the spreadsheet export the table came from.
func CreateTable(ctx context.Context, db Execer, table string) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	county      text,
	market      text,
	"Commodity" text,
	unit        text,
	kg          double precision,
	price       double precision,
	year        bigint,
	month       text
)`, TableIdentifier(table).Sanitize())

	if _, err := db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}
	return nil
}

// CopyRecords bulk-inserts records and returns the number of rows written.
func CopyRecords(ctx context.Context, db Execer, table string, records []domain.PriceRecord) (int64, error) {
	n, err := db.CopyFrom(ctx, TableIdentifier(table), copyColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			return []any{r.County, r.Market, r.Commodity, r.Unit, r.Kg, r.Price, int64(r.Year), r.Month}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", table, err)
	}
	return n, nil
}

// Truncate removes every row from the price table.
func Truncate(ctx context.Context, db Execer, table string) error {
	if _, err := db.Exec(ctx, "TRUNCATE "+TableIdentifier(table).Sanitize()); err != nil {
		return fmt.Errorf("truncate %s: %w", table, err)
	}
	return nil
}
