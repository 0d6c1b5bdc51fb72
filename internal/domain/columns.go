package domain

import (
	"fmt"
	"strings"
)

// Column names of the price table, lower-cased.
const (
	ColCounty    = "county"
	ColMarket    = "market"
	ColCommodity = "commodity"
	ColUnit      = "unit"
	ColKg        = "kg"
	ColPrice     = "price"
	ColYear      = "year"
	ColMonth     = "month"
)

// RequiredColumns lists every column a price table must carry.
var RequiredColumns = []string{ColCounty, ColMarket, ColCommodity, ColUnit, ColKg, ColPrice, ColYear, ColMonth}

// ColumnIndex maps a required column name to its position in a row.
type ColumnIndex map[string]int

// MapColumns locates the required columns in a header, ignoring case and
// surrounding whitespace. Missing columns are reported together as ErrSchema.
func MapColumns(header []string) (ColumnIndex, error) {
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, dup := seen[name]; !dup {
			seen[name] = i
		}
	}

	idx := make(ColumnIndex, len(RequiredColumns))
	var missing []string
	for _, col := range RequiredColumns {
		pos, ok := seen[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		idx[col] = pos
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrSchema, strings.Join(missing, ", "))
	}
	return idx, nil
}
