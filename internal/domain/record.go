package domain

import (
	"errors"

	"github.com/couchcryptid/market-prices-dashboard/internal/geo"
)

var (
	// ErrConnection means the backing store could not be reached.
	ErrConnection = errors.New("price store unreachable")

	// ErrSchema means the price table lacks an expected column or holds a
	// value of the wrong type.
	ErrSchema = errors.New("price table schema mismatch")

	// ErrInvalidCriteria means a filter value could not be parsed.
	ErrInvalidCriteria = errors.New("invalid filter criteria")
)

// PriceRecord is one row of the price table.
type PriceRecord struct {
	County    string  `json:"county"`
	Market    string  `json:"market"`
	Commodity string  `json:"commodity"`
	Unit      string  `json:"unit"`
	Kg        float64 `json:"kg"`
	Price     float64 `json:"price"`
	Year      int     `json:"year"`
	Month     string  `json:"month"`
}

// NormalizeCounty returns the canonical county key. It matches the geo
// index normalization exactly.
func NormalizeCounty(county string) string {
	return geo.NormalizeName(county)
}

// NormalizeRecords normalizes the county of every record in place.
func NormalizeRecords(records []PriceRecord) {
	for i := range records {
		records[i].County = NormalizeCounty(records[i].County)
	}
}
